package review

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/heartmarshall/carematch-backend/internal/domain"
)

// List returns reviews newest first with their average and count.
func (s *Service) List(ctx context.Context, filter domain.ReviewFilter) (*ReviewList, error) {
	reviews, err := s.reviews.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}

	if reviews == nil {
		reviews = []domain.Review{}
	}
	return &ReviewList{
		Reviews: reviews,
		Summary: domain.NewRatingSummary(sum, len(reviews)),
	}, nil
}

// Summary returns the rating aggregate of a reviewee.
func (s *Service) Summary(ctx context.Context, userID uuid.UUID) (domain.RatingSummary, error) {
	summary, err := s.reviews.Summary(ctx, domain.ReviewFilter{RevieweeID: &userID})
	if err != nil {
		return domain.RatingSummary{}, fmt.Errorf("review summary: %w", err)
	}
	return summary, nil
}
