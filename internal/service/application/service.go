package application

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/heartmarshall/carematch-backend/internal/domain"
)

type appRepo interface {
	Create(ctx context.Context, jobID, caregiverID uuid.UUID, message *string) (*domain.Application, error)
	GetView(ctx context.Context, id uuid.UUID) (*domain.ApplicationView, error)
	Decide(ctx context.Context, id, guardianID uuid.UUID, status domain.ApplicationStatus) (*domain.Application, error)
	Withdraw(ctx context.Context, id, caregiverID uuid.UUID) error
	List(ctx context.Context, filter domain.ApplicationFilter) ([]domain.ApplicationView, error)
}

type jobRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Job, error)
	GetForShare(ctx context.Context, id uuid.UUID) (*domain.Job, error)
}

type userRepo interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.User, error)
}

type roomEnsurer interface {
	EnsureRoom(ctx context.Context, caregiverID, guardianID uuid.UUID, jobID *uuid.UUID) (*domain.Room, error)
}

type notifier interface {
	Notify(ctx context.Context, n domain.Notification)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service runs the application state machine: pending applications are
// accepted, rejected or withdrawn exactly once.
type Service struct {
	apps     appRepo
	jobs     jobRepo
	users    userRepo
	chat     roomEnsurer
	notifier notifier
	tx       txManager
	log      *slog.Logger
}

// NewService creates a new Application service.
func NewService(
	log *slog.Logger,
	apps appRepo,
	jobs jobRepo,
	users userRepo,
	chat roomEnsurer,
	notifier notifier,
	tx txManager,
) *Service {
	return &Service{
		apps:     apps,
		jobs:     jobs,
		users:    users,
		chat:     chat,
		notifier: notifier,
		tx:       tx,
		log:      log.With("service", "application"),
	}
}

// lookupUsers loads the contacts needed for a notification. Failures are
// logged and reported as ok=false so the caller can skip sending.
func (s *Service) lookupUsers(ctx context.Context, kind domain.NotificationKind, ids ...uuid.UUID) (map[uuid.UUID]domain.User, bool) {
	users, err := s.users.GetByIDs(ctx, ids)
	if err != nil {
		s.log.WarnContext(ctx, "notification skipped",
			slog.String("kind", kind.String()),
			slog.String("error", err.Error()),
		)
		return nil, false
	}
	for _, id := range ids {
		if _, ok := users[id]; !ok {
			return nil, false
		}
	}
	return users, true
}
