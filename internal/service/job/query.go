package job

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/heartmarshall/carematch-backend/internal/domain"
	"github.com/heartmarshall/carematch-backend/pkg/ctxutil"
	"golang.org/x/sync/errgroup"
)

// Get returns a posting. For a caregiver viewer HasApplied reports whether
// they have a live application to it.
func (s *Service) Get(ctx context.Context, jobID uuid.UUID) (*JobDetail, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("get job: %w", err)
	}

	detail := &JobDetail{Job: *job}

	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if ok && domain.UserRole(ctxutil.RoleFromCtx(ctx)) == domain.UserRoleCaregiver {
		detail.HasApplied, err = s.apps.ExistsFor(ctx, job.ID, userID)
		if err != nil {
			return nil, fmt.Errorf("check application: %w", err)
		}
	}

	return detail, nil
}

// List returns public postings, newest first. An unknown status falls back
// to open.
func (s *Service) List(ctx context.Context, filter domain.JobFilter) ([]domain.Job, error) {
	if !filter.Status.IsValid() {
		filter.Status = domain.JobStatusOpen
	}
	switch {
	case filter.Limit <= 0:
		filter.Limit = DefaultListLimit
	case filter.Limit > MaxListLimit:
		filter.Limit = MaxListLimit
	}

	jobs, err := s.jobs.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	if jobs == nil {
		jobs = []domain.Job{}
	}
	return jobs, nil
}

// ListOwn returns the calling guardian's postings with their applications.
func (s *Service) ListOwn(ctx context.Context) ([]domain.JobWithApplications, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if domain.UserRole(ctxutil.RoleFromCtx(ctx)) != domain.UserRoleGuardian {
		return nil, domain.ErrForbidden
	}

	var (
		jobs []domain.Job
		apps []domain.ApplicationView
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		jobs, err = s.jobs.ListByGuardian(gctx, userID)
		if err != nil {
			return fmt.Errorf("list jobs: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		apps, err = s.apps.List(gctx, domain.ApplicationFilter{GuardianID: &userID})
		if err != nil {
			return fmt.Errorf("list applications: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byJob := make(map[uuid.UUID][]domain.ApplicationView, len(jobs))
	for _, a := range apps {
		byJob[a.JobID] = append(byJob[a.JobID], a)
	}

	out := make([]domain.JobWithApplications, len(jobs))
	for i, j := range jobs {
		list := byJob[j.ID]
		if list == nil {
			list = []domain.ApplicationView{}
		}
		out[i] = domain.JobWithApplications{Job: j, Applications: list}
	}
	return out, nil
}
