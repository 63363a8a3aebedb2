// Package dashboard assembles the landing summaries of guardians and
// caregivers from the job, application and profile stores.
package dashboard

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/heartmarshall/carematch-backend/internal/domain"
	"github.com/heartmarshall/carematch-backend/pkg/ctxutil"
	"golang.org/x/sync/errgroup"
)

// RecentLimit caps the recent items shown on a dashboard.
const RecentLimit = 5

type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type caregiverRepo interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.CaregiverProfile, error)
}

// ownJobs lists the calling guardian's postings with their applications.
type ownJobs interface {
	ListOwn(ctx context.Context) ([]domain.JobWithApplications, error)
}

type appRepo interface {
	List(ctx context.Context, filter domain.ApplicationFilter) ([]domain.ApplicationView, error)
}

// Service builds role dashboards. Counts are taken from the same listing
// as the recent items, so both describe one snapshot.
type Service struct {
	users      userRepo
	caregivers caregiverRepo
	jobs       ownJobs
	apps       appRepo
}

// NewService creates a dashboard service.
func NewService(users userRepo, caregivers caregiverRepo, jobs ownJobs, apps appRepo) *Service {
	return &Service{users: users, caregivers: caregivers, jobs: jobs, apps: apps}
}

// GuardianStats counts a guardian's postings and what was applied to them.
type GuardianStats struct {
	TotalJobs           int
	OpenJobs            int
	TotalApplications   int
	PendingApplications int
}

// GuardianDashboard is the guardian's account with their newest postings.
type GuardianDashboard struct {
	User  domain.User
	Jobs  []domain.JobWithApplications
	Stats GuardianStats
}

// CaregiverStats counts a caregiver's applications by outcome.
type CaregiverStats struct {
	TotalApplications    int
	PendingApplications  int
	AcceptedApplications int
}

// CaregiverDashboard is the caregiver's account, work profile and newest
// applications. Profile is nil when none was saved.
type CaregiverDashboard struct {
	User         domain.User
	Profile      *domain.CaregiverProfile
	Applications []domain.ApplicationView
	Stats        CaregiverStats
}

// Guardian returns the calling guardian's dashboard.
func (s *Service) Guardian(ctx context.Context) (*GuardianDashboard, error) {
	userID, err := callerWithRole(ctx, domain.UserRoleGuardian)
	if err != nil {
		return nil, err
	}

	var (
		user *domain.User
		jobs []domain.JobWithApplications
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		user, err = s.users.GetByID(gctx, userID)
		if err != nil {
			return fmt.Errorf("get user: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		jobs, err = s.jobs.ListOwn(gctx)
		if err != nil {
			return fmt.Errorf("list jobs: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var stats GuardianStats
	stats.TotalJobs = len(jobs)
	for _, j := range jobs {
		if j.Job.Status == domain.JobStatusOpen {
			stats.OpenJobs++
		}
		stats.TotalApplications += len(j.Applications)
		for _, a := range j.Applications {
			if a.Status == domain.ApplicationStatusPending {
				stats.PendingApplications++
			}
		}
	}

	return &GuardianDashboard{User: *user, Jobs: head(jobs, RecentLimit), Stats: stats}, nil
}

// Caregiver returns the calling caregiver's dashboard.
func (s *Service) Caregiver(ctx context.Context) (*CaregiverDashboard, error) {
	userID, err := callerWithRole(ctx, domain.UserRoleCaregiver)
	if err != nil {
		return nil, err
	}

	var (
		user    *domain.User
		profile *domain.CaregiverProfile
		apps    []domain.ApplicationView
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		user, err = s.users.GetByID(gctx, userID)
		if err != nil {
			return fmt.Errorf("get user: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		p, err := s.caregivers.GetByUserID(gctx, userID)
		switch {
		case err == nil:
			profile = p
		case errors.Is(err, domain.ErrNotFound):
		default:
			return fmt.Errorf("get caregiver profile: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		apps, err = s.apps.List(gctx, domain.ApplicationFilter{CaregiverID: &userID})
		if err != nil {
			return fmt.Errorf("list applications: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := CaregiverStats{TotalApplications: len(apps)}
	for _, a := range apps {
		switch a.Status {
		case domain.ApplicationStatusPending:
			stats.PendingApplications++
		case domain.ApplicationStatusAccepted:
			stats.AcceptedApplications++
		}
	}

	return &CaregiverDashboard{
		User:         *user,
		Profile:      profile,
		Applications: head(apps, RecentLimit),
		Stats:        stats,
	}, nil
}

func callerWithRole(ctx context.Context, role domain.UserRole) (uuid.UUID, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return uuid.Nil, domain.ErrUnauthorized
	}
	if domain.UserRole(ctxutil.RoleFromCtx(ctx)) != role {
		return uuid.Nil, domain.ErrForbidden
	}
	return userID, nil
}

// head returns at most n leading items, never nil.
func head[T any](items []T, n int) []T {
	if len(items) > n {
		items = items[:n]
	}
	if items == nil {
		return []T{}
	}
	return items
}
