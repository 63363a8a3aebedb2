package review

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/heartmarshall/carematch-backend/internal/domain"
)

type reviewRepo interface {
	Create(ctx context.Context, rv domain.Review) (*domain.Review, error)
	Exists(ctx context.Context, jobID, reviewerID, revieweeID uuid.UUID) (bool, error)
	List(ctx context.Context, filter domain.ReviewFilter) ([]domain.Review, error)
	Summary(ctx context.Context, filter domain.ReviewFilter) (domain.RatingSummary, error)
}

type jobRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Job, error)
}

type appRepo interface {
	GetAccepted(ctx context.Context, jobID uuid.UUID) (*domain.Application, error)
}

type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// Service gates reviews: each party of a completed job may review the other
// exactly once.
type Service struct {
	reviews reviewRepo
	jobs    jobRepo
	apps    appRepo
	users   userRepo
	log     *slog.Logger
}

// NewService creates a new Review service.
func NewService(
	log *slog.Logger,
	reviews reviewRepo,
	jobs jobRepo,
	apps appRepo,
	users userRepo,
) *Service {
	return &Service{
		reviews: reviews,
		jobs:    jobs,
		apps:    apps,
		users:   users,
		log:     log.With("service", "review"),
	}
}

// ReviewList is a listing together with its aggregate.
type ReviewList struct {
	Reviews []domain.Review
	Summary domain.RatingSummary
}
