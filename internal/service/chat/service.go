package chat

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/heartmarshall/carematch-backend/internal/domain"
)

type roomRepo interface {
	Ensure(ctx context.Context, caregiverID, guardianID uuid.UUID, jobID *uuid.UUID) (*domain.Room, bool, error)
	ListSummaries(ctx context.Context, userID uuid.UUID, role domain.UserRole) ([]domain.RoomSummary, error)
}

// Service materializes chat rooms and lists them for participants.
type Service struct {
	rooms roomRepo
	log   *slog.Logger
}

// NewService creates a new Chat service.
func NewService(log *slog.Logger, rooms roomRepo) *Service {
	return &Service{
		rooms: rooms,
		log:   log.With("service", "chat"),
	}
}
