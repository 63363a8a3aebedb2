package review

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/heartmarshall/carematch-backend/internal/domain"
	"github.com/heartmarshall/carematch-backend/pkg/ctxutil"
)

// Eligibility tells the caller whom they may review for a job and whether
// they already have.
func (s *Service) Eligibility(ctx context.Context, jobID uuid.UUID) (*domain.ReviewEligibility, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	job, revieweeID, err := s.counterpart(ctx, jobID, userID)
	if err != nil {
		return nil, err
	}

	reviewee, err := s.users.GetByID(ctx, revieweeID)
	if err != nil {
		return nil, fmt.Errorf("get reviewee: %w", err)
	}

	exists, err := s.reviews.Exists(ctx, job.ID, userID, revieweeID)
	if err != nil {
		return nil, fmt.Errorf("check review: %w", err)
	}

	return &domain.ReviewEligibility{
		Job:             *job,
		Reviewee:        reviewee.Public(),
		AlreadyReviewed: exists,
	}, nil
}

// counterpart resolves the completed job and the party userID may review on
// it: the guardian reviews the accepted caregiver and vice versa.
func (s *Service) counterpart(ctx context.Context, jobID, userID uuid.UUID) (*domain.Job, uuid.UUID, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("get job: %w", err)
	}
	if job.Status != domain.JobStatusCompleted {
		return nil, uuid.Nil, fmt.Errorf("job is not completed: %w", domain.ErrNotFound)
	}

	accepted, err := s.apps.GetAccepted(ctx, job.ID)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("get accepted application: %w", err)
	}

	switch userID {
	case job.GuardianID:
		return job, accepted.CaregiverID, nil
	case accepted.CaregiverID:
		return job, job.GuardianID, nil
	}
	return nil, uuid.Nil, domain.ErrForbidden
}
