package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/heartmarshall/carematch-backend/internal/domain"
	"github.com/heartmarshall/carematch-backend/pkg/ctxutil"
)

// Withdraw deletes the caller's pending application. Withdrawing twice is
// NotFound the second time.
func (s *Service) Withdraw(ctx context.Context, applicationID uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}
	if domain.UserRole(ctxutil.RoleFromCtx(ctx)) != domain.UserRoleCaregiver {
		return domain.ErrForbidden
	}
	if applicationID == uuid.Nil {
		return domain.NewValidationError("application_id", "required")
	}

	err := s.apps.Withdraw(ctx, applicationID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return s.classify(ctx, applicationID, func(v *domain.ApplicationView) bool {
				return v.CaregiverID == userID
			})
		}
		return fmt.Errorf("withdraw application: %w", err)
	}

	s.log.InfoContext(ctx, "application withdrawn",
		slog.String("application_id", applicationID.String()),
		slog.String("caregiver_id", userID.String()),
	)

	return nil
}
