package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/heartmarshall/carematch-backend/internal/domain"
	"github.com/heartmarshall/carematch-backend/internal/service/application"
)

type applicationService interface {
	Submit(ctx context.Context, input application.SubmitInput) (*domain.Application, error)
	Decide(ctx context.Context, input application.DecideInput) (*domain.Application, error)
	Withdraw(ctx context.Context, applicationID uuid.UUID) error
	Get(ctx context.Context, applicationID uuid.UUID) (*domain.ApplicationView, error)
	List(ctx context.Context, jobID *uuid.UUID) ([]domain.ApplicationView, error)
}

// ApplicationHandler serves job applications.
type ApplicationHandler struct {
	apps applicationService
	log  *slog.Logger
}

// NewApplicationHandler creates an ApplicationHandler.
func NewApplicationHandler(log *slog.Logger, apps applicationService) *ApplicationHandler {
	return &ApplicationHandler{apps: apps, log: log.With("handler", "application")}
}

// Submit handles POST /applications.
func (h *ApplicationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitApplicationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	app, err := h.apps.Submit(r.Context(), application.SubmitInput{JobID: req.JobID, Message: req.Message})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"application": toApplicationDTO(*app)})
}

// List handles GET /applications?jobId=.
func (h *ApplicationHandler) List(w http.ResponseWriter, r *http.Request) {
	jobID, err := queryUUID(r, "jobId")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	views, err := h.apps.List(r.Context(), jobID)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"applications": toApplicationViewDTOs(views)})
}

// Get handles GET /applications/{id}.
func (h *ApplicationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	view, err := h.apps.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"application": toApplicationViewDTO(*view)})
}

// Decide handles PATCH /applications/{id}.
func (h *ApplicationHandler) Decide(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	var req decideApplicationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	app, err := h.apps.Decide(r.Context(), application.DecideInput{
		ApplicationID: id,
		Status:        domain.ApplicationStatus(req.Status),
	})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"application": toApplicationDTO(*app)})
}

// Withdraw handles DELETE /applications/{id}.
func (h *ApplicationHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if err := h.apps.Withdraw(r.Context(), id); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}
