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

// Decide accepts or rejects a pending application of one of the caller's
// jobs. Acceptance and the chat room it opens commit together. A second
// acceptance on the same job is a Conflict and leaves the first untouched.
func (s *Service) Decide(ctx context.Context, input DecideInput) (*domain.Application, error) {
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

	var (
		app  *domain.Application
		room *domain.Room
	)
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		app, err = s.apps.Decide(txCtx, input.ApplicationID, userID, input.Status)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrNotFound):
				return s.classify(txCtx, input.ApplicationID, func(v *domain.ApplicationView) bool {
					return v.GuardianID == userID
				})
			case domain.IsConflict(err):
				return fmt.Errorf("job already has an accepted application: %w", domain.ErrConflict)
			}
			return fmt.Errorf("decide application: %w", err)
		}

		if app.Status != domain.ApplicationStatusAccepted {
			return nil
		}
		room, err = s.chat.EnsureRoom(txCtx, app.CaregiverID, userID, &app.JobID)
		if err != nil {
			return fmt.Errorf("ensure room: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	attrs := []any{
		slog.String("application_id", app.ID.String()),
		slog.String("status", app.Status.String()),
		slog.String("guardian_id", userID.String()),
	}
	if room != nil {
		attrs = append(attrs, slog.String("room_id", room.ID.String()))
	}
	s.log.InfoContext(ctx, "application decided", attrs...)

	s.notifyDecision(ctx, app, userID)

	return app, nil
}

func (s *Service) notifyDecision(ctx context.Context, app *domain.Application, guardianID uuid.UUID) {
	kind := domain.NotificationApplicationRejected
	if app.Status == domain.ApplicationStatusAccepted {
		kind = domain.NotificationApplicationAccepted
	}

	job, err := s.jobs.GetByID(ctx, app.JobID)
	if err != nil {
		s.log.WarnContext(ctx, "notification skipped",
			slog.String("kind", kind.String()),
			slog.String("error", err.Error()),
		)
		return
	}
	users, ok := s.lookupUsers(ctx, kind, app.CaregiverID, guardianID)
	if !ok {
		return
	}

	caregiver := users[app.CaregiverID]
	if kind == domain.NotificationApplicationAccepted {
		s.notifier.Notify(ctx, domain.ApplicationAccepted(caregiver, users[guardianID].Name, job.Title))
		return
	}
	s.notifier.Notify(ctx, domain.ApplicationRejected(caregiver, job.Title))
}

// classify explains why a conditional transition matched no row: the
// application is gone, the caller may not act on it, or it already left the
// pending state.
func (s *Service) classify(ctx context.Context, id uuid.UUID, allowed func(*domain.ApplicationView) bool) error {
	view, err := s.apps.GetView(ctx, id)
	if err != nil {
		return fmt.Errorf("get application: %w", err)
	}
	if !allowed(view) {
		return domain.ErrForbidden
	}
	if view.Status != domain.ApplicationStatusPending {
		return fmt.Errorf("application is %s: %w", view.Status, domain.ErrInvalidState)
	}
	// Pending and owned: the row changed between the two statements.
	return fmt.Errorf("application changed concurrently: %w", domain.ErrConflict)
}
