package job

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/heartmarshall/carematch-backend/internal/domain"
	"github.com/heartmarshall/carematch-backend/pkg/ctxutil"
)

// Patch applies a guardian's changes to their own posting. The row is locked
// for the duration so concurrent patches and applications see a consistent
// status. Completing a job asks both matched parties for a review.
func (s *Service) Patch(ctx context.Context, input PatchInput) (*domain.Job, error) {
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
	patch := input.normalized()

	var before, after *domain.Job
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		before, err = s.ownedForUpdate(txCtx, input.JobID, userID)
		if err != nil {
			return err
		}

		next := patch.Apply(*before)
		if errs := validateJob(next); len(errs) > 0 {
			return &domain.ValidationError{Errors: errs}
		}

		if next.Status != before.Status {
			hasAccepted, err := s.apps.HasAccepted(txCtx, before.ID)
			if err != nil {
				return fmt.Errorf("check accepted: %w", err)
			}
			if err := domain.CheckJobTransition(before.Status, next.Status, hasAccepted); err != nil {
				return err
			}
		}

		after, err = s.jobs.Update(txCtx, next)
		if err != nil {
			return fmt.Errorf("update job: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "job updated",
		slog.String("job_id", after.ID.String()),
		slog.String("status", after.Status.String()),
	)

	if before.Status != domain.JobStatusCompleted && after.Status == domain.JobStatusCompleted {
		s.requestReviews(ctx, after)
	}

	return after, nil
}

// Delete removes the caller's posting unless work on it is in progress.
func (s *Service) Delete(ctx context.Context, jobID uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}
	if domain.UserRole(ctxutil.RoleFromCtx(ctx)) != domain.UserRoleGuardian {
		return domain.ErrForbidden
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		job, err := s.ownedForUpdate(txCtx, jobID, userID)
		if err != nil {
			return err
		}
		if job.Status == domain.JobStatusInProgress {
			return fmt.Errorf("job is in progress: %w", domain.ErrInvalidState)
		}
		if err := s.jobs.Delete(txCtx, job.ID); err != nil {
			return fmt.Errorf("delete job: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "job deleted",
		slog.String("job_id", jobID.String()),
		slog.String("guardian_id", userID.String()),
	)

	return nil
}

// ownedForUpdate locks a posting owned by guardianID. Foreign postings are
// reported as NotFound.
func (s *Service) ownedForUpdate(ctx context.Context, jobID, guardianID uuid.UUID) (*domain.Job, error) {
	job, err := s.jobs.GetForUpdate(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("get job: %w", err)
	}
	if job.GuardianID != guardianID {
		return nil, fmt.Errorf("job %s: %w", jobID, domain.ErrNotFound)
	}
	return job, nil
}

func (s *Service) requestReviews(ctx context.Context, job *domain.Job) {
	accepted, err := s.apps.GetAccepted(ctx, job.ID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.log.WarnContext(ctx, "review_request skipped",
				slog.String("job_id", job.ID.String()),
				slog.String("error", err.Error()),
			)
		}
		return
	}

	users, err := s.users.GetByIDs(ctx, []uuid.UUID{job.GuardianID, accepted.CaregiverID})
	if err != nil {
		s.log.WarnContext(ctx, "review_request skipped",
			slog.String("job_id", job.ID.String()),
			slog.String("error", err.Error()),
		)
		return
	}
	guardian, okG := users[job.GuardianID]
	caregiver, okC := users[accepted.CaregiverID]
	if !okG || !okC {
		return
	}

	s.notifier.Notify(ctx, domain.ReviewRequest(guardian, caregiver.Name, job.Title))
	s.notifier.Notify(ctx, domain.ReviewRequest(caregiver, guardian.Name, job.Title))
}
