package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/heartmarshall/carematch-backend/internal/domain"
	"github.com/heartmarshall/carematch-backend/pkg/ctxutil"
)

// CompleteProfile creates the caller's user record. The id comes from the
// session; a second completion is a Conflict, so the role cannot change.
// When the session already carries a role it must match the requested one.
func (s *Service) CompleteProfile(ctx context.Context, input CompleteProfileInput) (*domain.User, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}
	if role := ctxutil.RoleFromCtx(ctx); role != "" && domain.UserRole(role) != input.Role {
		return nil, domain.NewValidationError("role", "does not match the session role")
	}

	u := input.toUser()
	u.ID = userID

	var user *domain.User
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		user, err = s.users.Create(txCtx, u)
		if err != nil {
			if domain.IsConflict(err) {
				return fmt.Errorf("profile already completed: %w", domain.ErrConflict)
			}
			return fmt.Errorf("create user: %w", err)
		}
		if user.Role != domain.UserRoleCaregiver {
			return nil
		}
		if _, err := s.caregivers.Create(txCtx, domain.NewCaregiverProfile(user.ID, trimOrNil(input.Introduction))); err != nil {
			return fmt.Errorf("create caregiver profile: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "profile completed",
		slog.String("user_id", userID.String()),
		slog.String("role", user.Role.String()),
	)

	return user, nil
}

// Get returns a user's public identity with their rating, and for a
// caregiver their work profile.
func (s *Service) Get(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	rating, err := s.ratings.Summary(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get rating: %w", err)
	}

	profile := &Profile{User: user.Public(), Rating: rating}
	if user.Role != domain.UserRoleCaregiver {
		return profile, nil
	}

	cp, err := s.caregivers.GetByUserID(ctx, userID)
	switch {
	case err == nil:
		profile.Caregiver = cp
	case errors.Is(err, domain.ErrNotFound):
	default:
		return nil, fmt.Errorf("get caregiver profile: %w", err)
	}
	return profile, nil
}
