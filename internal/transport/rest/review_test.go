package rest

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/heartmarshall/carematch-backend/internal/domain"
	"github.com/heartmarshall/carematch-backend/internal/service/review"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewHandler_Eligibility(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)
	j := sampleJob()
	j.Status = domain.JobStatusCompleted
	reviewee := domain.PublicUser{ID: uuid.New(), Name: "Park", Role: domain.UserRoleCaregiver}
	api.reviews.EligibilityFunc = func(_ context.Context, jobID uuid.UUID) (*domain.ReviewEligibility, error) {
		assert.Equal(t, j.ID, jobID)
		return &domain.ReviewEligibility{Job: j, Reviewee: reviewee, AlreadyReviewed: false}, nil
	}

	rec := api.do(t, http.MethodGet, "/reviews/write/"+j.ID.String(), "")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["alreadyReviewed"])
	assert.Equal(t, "Park", body["reviewee"].(map[string]any)["name"])
	assert.Equal(t, "completed", body["job"].(map[string]any)["status"])
}

func TestReviewHandler_Eligibility_NotCompleted(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)
	api.reviews.EligibilityFunc = func(_ context.Context, _ uuid.UUID) (*domain.ReviewEligibility, error) {
		return nil, fmt.Errorf("job not completed: %w", domain.ErrInvalidState)
	}

	rec := api.do(t, http.MethodGet, "/reviews/write/"+uuid.NewString(), "")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, codeInvalidState, decodeError(t, rec).Code)
}

func TestReviewHandler_Submit(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)
	jobID, revieweeID := uuid.New(), uuid.New()
	var got review.SubmitInput
	api.reviews.SubmitFunc = func(_ context.Context, input review.SubmitInput) (*domain.Review, error) {
		got = input
		return &domain.Review{ID: uuid.New(), JobID: input.JobID, RevieweeID: input.RevieweeID, Rating: input.Rating}, nil
	}

	rec := api.do(t, http.MethodPost, "/reviews",
		fmt.Sprintf(`{"jobId":%q,"revieweeId":%q,"rating":5,"comment":"Kind and punctual"}`, jobID, revieweeID))

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, jobID, got.JobID)
	assert.Equal(t, revieweeID, got.RevieweeID)
	assert.Equal(t, 5, got.Rating)
	require.NotNil(t, got.Comment)

	rv := decodeBody(t, rec)["review"].(map[string]any)
	assert.EqualValues(t, 5, rv["rating"])
	_, hasReviewer := rv["reviewer"]
	assert.False(t, hasReviewer)
}

func TestReviewHandler_Submit_Duplicate(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)
	api.reviews.SubmitFunc = func(_ context.Context, _ review.SubmitInput) (*domain.Review, error) {
		return nil, fmt.Errorf("insert review: %w", domain.ErrAlreadyExists)
	}

	rec := api.do(t, http.MethodPost, "/reviews", fmt.Sprintf(`{"jobId":%q,"revieweeId":%q,"rating":4}`, uuid.New(), uuid.New()))

	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestReviewHandler_List(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)
	userID := uuid.New()
	api.reviews.ListFunc = func(_ context.Context, f domain.ReviewFilter) (*review.ReviewList, error) {
		require.NotNil(t, f.RevieweeID)
		assert.Equal(t, userID, *f.RevieweeID)
		assert.Nil(t, f.JobID)
		return &review.ReviewList{
			Reviews: []domain.Review{
				{ID: uuid.New(), Rating: 5, Reviewer: domain.PublicUser{ID: uuid.New(), Name: "Choi"}},
				{ID: uuid.New(), Rating: 4, Reviewer: domain.PublicUser{ID: uuid.New(), Name: "Jung"}},
			},
			Summary: domain.NewRatingSummary(9, 2),
		}, nil
	}

	rec := api.do(t, http.MethodGet, "/reviews?userId="+userID.String(), "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.EqualValues(t, 4.5, body["averageRating"])
	assert.EqualValues(t, 2, body["totalCount"])
	reviews := body["reviews"].([]any)
	require.Len(t, reviews, 2)
	assert.Equal(t, "Choi", reviews[0].(map[string]any)["reviewer"].(map[string]any)["name"])
}
