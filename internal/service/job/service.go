package job

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/heartmarshall/carematch-backend/internal/domain"
)

type jobRepo interface {
	Create(ctx context.Context, j domain.Job) (*domain.Job, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Job, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Job, error)
	Update(ctx context.Context, j domain.Job) (*domain.Job, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter domain.JobFilter) ([]domain.Job, error)
	ListByGuardian(ctx context.Context, guardianID uuid.UUID) ([]domain.Job, error)
}

type appRepo interface {
	HasAccepted(ctx context.Context, jobID uuid.UUID) (bool, error)
	GetAccepted(ctx context.Context, jobID uuid.UUID) (*domain.Application, error)
	ExistsFor(ctx context.Context, jobID, caregiverID uuid.UUID) (bool, error)
	List(ctx context.Context, filter domain.ApplicationFilter) ([]domain.ApplicationView, error)
}

type userRepo interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.User, error)
}

type notifier interface {
	Notify(ctx context.Context, n domain.Notification)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

const (
	DefaultListLimit = 50
	MaxListLimit     = 100
)

// Service manages guardians' job postings.
type Service struct {
	jobs     jobRepo
	apps     appRepo
	users    userRepo
	notifier notifier
	tx       txManager
	log      *slog.Logger
}

// NewService creates a new Job service.
func NewService(
	log *slog.Logger,
	jobs jobRepo,
	apps appRepo,
	users userRepo,
	notifier notifier,
	tx txManager,
) *Service {
	return &Service{
		jobs:     jobs,
		apps:     apps,
		users:    users,
		notifier: notifier,
		tx:       tx,
		log:      log.With("service", "job"),
	}
}

// JobDetail is a posting as seen by one viewer.
type JobDetail struct {
	Job        domain.Job
	HasApplied bool
}
