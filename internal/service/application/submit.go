package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/carematch-backend/internal/domain"
	"github.com/heartmarshall/carematch-backend/pkg/ctxutil"
)

// Submit applies the calling caregiver to an open job. The job row is held
// FOR SHARE until the insert commits, so a concurrent close cannot slip in
// between the status check and the insert.
func (s *Service) Submit(ctx context.Context, input SubmitInput) (*domain.Application, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if domain.UserRole(ctxutil.RoleFromCtx(ctx)) != domain.UserRoleCaregiver {
		return nil, domain.ErrForbidden
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	var (
		app *domain.Application
		job *domain.Job
	)
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		job, err = s.jobs.GetForShare(txCtx, input.JobID)
		if err != nil {
			return fmt.Errorf("get job: %w", err)
		}
		if job.Status != domain.JobStatusOpen {
			return fmt.Errorf("job is %s: %w", job.Status, domain.ErrInvalidState)
		}

		app, err = s.apps.Create(txCtx, job.ID, userID, trimOrNil(input.Message))
		if err != nil {
			if domain.IsConflict(err) {
				return fmt.Errorf("already applied: %w", domain.ErrConflict)
			}
			return fmt.Errorf("create application: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "application submitted",
		slog.String("application_id", app.ID.String()),
		slog.String("job_id", job.ID.String()),
		slog.String("caregiver_id", userID.String()),
	)

	if users, ok := s.lookupUsers(ctx, domain.NotificationApplicationReceived, job.GuardianID, userID); ok {
		s.notifier.Notify(ctx, domain.ApplicationReceived(users[job.GuardianID], users[userID].Name, job.Title))
	}

	return app, nil
}
