package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/heartmarshall/carematch-backend/internal/domain"
	"github.com/heartmarshall/carematch-backend/pkg/ctxutil"
)

// Get returns an application visible to its applicant or the job's guardian.
func (s *Service) Get(ctx context.Context, applicationID uuid.UUID) (*domain.ApplicationView, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	view, err := s.apps.GetView(ctx, applicationID)
	if err != nil {
		return nil, fmt.Errorf("get application: %w", err)
	}
	if view.CaregiverID != userID && view.GuardianID != userID {
		return nil, domain.ErrForbidden
	}
	return view, nil
}

// List returns a caregiver's own applications, or the applications to a
// guardian's jobs optionally narrowed to one job.
func (s *Service) List(ctx context.Context, jobID *uuid.UUID) ([]domain.ApplicationView, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	filter := domain.ApplicationFilter{JobID: jobID}
	switch domain.UserRole(ctxutil.RoleFromCtx(ctx)) {
	case domain.UserRoleCaregiver:
		filter.CaregiverID = &userID
	case domain.UserRoleGuardian:
		filter.GuardianID = &userID
	default:
		return nil, domain.ErrForbidden
	}

	apps, err := s.apps.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	return apps, nil
}
