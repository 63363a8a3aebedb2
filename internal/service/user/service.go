package user

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/heartmarshall/carematch-backend/internal/domain"
)

// userRepo defines the user repository interface needed by user service.
type userRepo interface {
	Create(ctx context.Context, u domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// caregiverRepo persists the work profiles of caregivers.
type caregiverRepo interface {
	Create(ctx context.Context, p domain.CaregiverProfile) (*domain.CaregiverProfile, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.CaregiverProfile, error)
	Upsert(ctx context.Context, p domain.CaregiverProfile) (*domain.CaregiverProfile, error)
	List(ctx context.Context, filter domain.CaregiverFilter) ([]domain.CaregiverCard, error)
}

// ratingSource provides the review aggregate shown on a profile.
type ratingSource interface {
	Summary(ctx context.Context, userID uuid.UUID) (domain.RatingSummary, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements profile completion, caregiver profiles and public
// profile lookups.
type Service struct {
	log        *slog.Logger
	users      userRepo
	caregivers caregiverRepo
	ratings    ratingSource
	tx         txManager
}

// NewService creates a new user service instance.
func NewService(logger *slog.Logger, users userRepo, caregivers caregiverRepo, ratings ratingSource, tx txManager) *Service {
	return &Service{
		log:        logger.With("service", "user"),
		users:      users,
		caregivers: caregivers,
		ratings:    ratings,
		tx:         tx,
	}
}

// Profile is a user's public identity with their review aggregate.
// Caregiver is set for caregivers only.
type Profile struct {
	User      domain.PublicUser
	Rating    domain.RatingSummary
	Caregiver *domain.CaregiverProfile
}

// Directory is the public caregiver listing with the areas it covers.
type Directory struct {
	Caregivers []domain.CaregiverCard
	Locations  []string
}
