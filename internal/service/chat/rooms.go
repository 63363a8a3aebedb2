package chat

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/heartmarshall/carematch-backend/internal/domain"
	"github.com/heartmarshall/carematch-backend/pkg/ctxutil"
)

// EnsureRoom returns the room of the caregiver/guardian pair, creating it on
// first use. Concurrent callers for the same pair all get the same room.
// jobID is recorded only when the room is created.
func (s *Service) EnsureRoom(ctx context.Context, caregiverID, guardianID uuid.UUID, jobID *uuid.UUID) (*domain.Room, error) {
	if caregiverID == uuid.Nil || guardianID == uuid.Nil {
		return nil, domain.NewValidationError("participants", "required")
	}
	if caregiverID == guardianID {
		return nil, domain.NewValidationError("participants", "must be different users")
	}

	room, created, err := s.rooms.Ensure(ctx, caregiverID, guardianID, jobID)
	if err != nil {
		return nil, fmt.Errorf("ensure room: %w", err)
	}

	if created {
		s.log.InfoContext(ctx, "chat room created",
			slog.String("room_id", room.ID.String()),
			slog.String("caregiver_id", caregiverID.String()),
			slog.String("guardian_id", guardianID.String()),
		)
	}

	return room, nil
}

// ListRooms returns the caller's rooms, most recently active first.
func (s *Service) ListRooms(ctx context.Context) ([]domain.RoomSummary, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	role := domain.UserRole(ctxutil.RoleFromCtx(ctx))
	if !role.IsValid() {
		return nil, domain.ErrForbidden
	}

	rooms, err := s.rooms.ListSummaries(ctx, userID, role)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return rooms, nil
}
