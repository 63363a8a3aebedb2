package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/heartmarshall/carematch-backend/internal/domain"
	"github.com/heartmarshall/carematch-backend/internal/service/review"
)

type reviewService interface {
	Eligibility(ctx context.Context, jobID uuid.UUID) (*domain.ReviewEligibility, error)
	Submit(ctx context.Context, input review.SubmitInput) (*domain.Review, error)
	List(ctx context.Context, filter domain.ReviewFilter) (*review.ReviewList, error)
}

// ReviewHandler serves post-job reviews.
type ReviewHandler struct {
	reviews reviewService
	log     *slog.Logger
}

// NewReviewHandler creates a ReviewHandler.
func NewReviewHandler(log *slog.Logger, reviews reviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, log: log.With("handler", "review")}
}

// Eligibility handles GET /reviews/write/{jobId}.
func (h *ReviewHandler) Eligibility(w http.ResponseWriter, r *http.Request) {
	jobID, err := pathUUID(r, "jobId")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	e, err := h.reviews.Eligibility(r.Context(), jobID)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"job":             toJobDTO(e.Job),
		"reviewee":        toUserDTO(e.Reviewee),
		"alreadyReviewed": e.AlreadyReviewed,
	})
}

// Submit handles POST /reviews.
func (h *ReviewHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitReviewRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	created, err := h.reviews.Submit(r.Context(), review.SubmitInput{
		JobID:      req.JobID,
		RevieweeID: req.RevieweeID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"review": toReviewDTO(*created)})
}

// List handles GET /reviews?userId=&jobId=.
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := queryUUID(r, "userId")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	jobID, err := queryUUID(r, "jobId")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	list, err := h.reviews.List(r.Context(), domain.ReviewFilter{RevieweeID: userID, JobID: jobID})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	out := make([]reviewDTO, 0, len(list.Reviews))
	for _, rv := range list.Reviews {
		out = append(out, toReviewDTO(rv))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"reviews":       out,
		"averageRating": list.Summary.AverageRating,
		"totalCount":    list.Summary.TotalCount,
	})
}
