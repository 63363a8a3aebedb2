package review

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/carematch-backend/internal/domain"
	"github.com/heartmarshall/carematch-backend/pkg/ctxutil"
)

// Submit records the caller's review of their counterpart on a completed job.
// A second review of the same triple is a Conflict, detected on insert.
func (s *Service) Submit(ctx context.Context, input SubmitInput) (*domain.Review, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}
	if input.RevieweeID == userID {
		return nil, domain.NewValidationError("reviewee_id", "cannot review yourself")
	}

	job, counterpartID, err := s.counterpart(ctx, input.JobID, userID)
	if err != nil {
		return nil, err
	}
	if input.RevieweeID != counterpartID {
		return nil, domain.NewValidationError("reviewee_id", "not your counterpart on this job")
	}

	rv, err := s.reviews.Create(ctx, domain.Review{
		JobID:      job.ID,
		ReviewerID: userID,
		RevieweeID: input.RevieweeID,
		Rating:     input.Rating,
		Comment:    trimOrNil(input.Comment),
	})
	if err != nil {
		if domain.IsConflict(err) {
			return nil, fmt.Errorf("already reviewed: %w", domain.ErrConflict)
		}
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.log.InfoContext(ctx, "review submitted",
		slog.String("review_id", rv.ID.String()),
		slog.String("job_id", job.ID.String()),
		slog.String("reviewer_id", userID.String()),
		slog.String("reviewee_id", input.RevieweeID.String()),
		slog.Int("rating", rv.Rating),
	)

	return rv, nil
}
