package job

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/carematch-backend/internal/domain"
	"github.com/heartmarshall/carematch-backend/pkg/ctxutil"
)

// Create posts a new open job for the calling guardian.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Job, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if domain.UserRole(ctxutil.RoleFromCtx(ctx)) != domain.UserRoleGuardian {
		return nil, domain.ErrForbidden
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	j := input.toJob()
	j.GuardianID = userID

	job, err := s.jobs.Create(ctx, j)
	if err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}

	s.log.InfoContext(ctx, "job created",
		slog.String("job_id", job.ID.String()),
		slog.String("guardian_id", userID.String()),
	)

	return job, nil
}
