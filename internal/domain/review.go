package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Review is one party's rating of the other after a completed job.
type Review struct {
	ID         uuid.UUID
	JobID      uuid.UUID
	ReviewerID uuid.UUID
	RevieweeID uuid.UUID
	Rating     int
	Comment    *string
	CreatedAt  time.Time
	Reviewer   PublicUser
}

// ReviewFilter narrows the review listing.
type ReviewFilter struct {
	RevieweeID *uuid.UUID
	JobID      *uuid.UUID
}

// RatingSummary aggregates the reviews of a user or job.
type RatingSummary struct {
	AverageRating float64
	TotalCount    int
}

// NewRatingSummary rounds the mean to one decimal place. Zero reviews yield zero.
func NewRatingSummary(sum, count int) RatingSummary {
	if count == 0 {
		return RatingSummary{}
	}
	avg := float64(sum) / float64(count)
	return RatingSummary{
		AverageRating: math.Round(avg*10) / 10,
		TotalCount:    count,
	}
}

// ReviewEligibility describes whether and whom the caller may review for a job.
type ReviewEligibility struct {
	Job             Job
	Reviewee        PublicUser
	AlreadyReviewed bool
}
