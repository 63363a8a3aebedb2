package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/heartmarshall/carematch-backend/internal/domain"
	"github.com/heartmarshall/carematch-backend/internal/service/job"
)

type jobService interface {
	Create(ctx context.Context, input job.CreateInput) (*domain.Job, error)
	Get(ctx context.Context, jobID uuid.UUID) (*job.JobDetail, error)
	List(ctx context.Context, filter domain.JobFilter) ([]domain.Job, error)
	ListOwn(ctx context.Context) ([]domain.JobWithApplications, error)
	Patch(ctx context.Context, input job.PatchInput) (*domain.Job, error)
	Delete(ctx context.Context, jobID uuid.UUID) error
}

// JobHandler serves job postings.
type JobHandler struct {
	jobs jobService
	log  *slog.Logger
}

// NewJobHandler creates a JobHandler.
func NewJobHandler(log *slog.Logger, jobs jobService) *JobHandler {
	return &JobHandler{jobs: jobs, log: log.With("handler", "job")}
}

// Create handles POST /jobs.
func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createJobRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	input := job.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		CareType:    req.CareType,
		EndDate:     req.EndDate.timePtr(),
		HourlyRate:  req.HourlyRate,
		Patient:     req.PatientInfo.toDomain(),
	}
	if t := req.StartDate.timePtr(); t != nil {
		input.StartDate = *t
	}

	created, err := h.jobs.Create(r.Context(), input)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"job": toJobDTO(*created)})
}

// List handles GET /jobs?status=&location=&careType=&limit=.
func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	q := r.URL.Query()
	filter := domain.JobFilter{
		Status:   domain.JobStatus(q.Get("status")),
		Location: q.Get("location"),
		CareType: q.Get("careType"),
		Limit:    limit,
	}

	jobs, err := h.jobs.List(r.Context(), filter)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"jobs": toJobDTOs(jobs)})
}

// Get handles GET /jobs/{id}.
func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	detail, err := h.jobs.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"job":        toJobDTO(detail.Job),
		"hasApplied": detail.HasApplied,
	})
}

// Patch handles PATCH /jobs/{id}.
func (h *JobHandler) Patch(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	var req patchJobRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	updated, err := h.jobs.Patch(r.Context(), job.PatchInput{JobID: id, Patch: req.toDomain()})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"job": toJobDTO(*updated)})
}

// Delete handles DELETE /jobs/{id}.
func (h *JobHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if err := h.jobs.Delete(r.Context(), id); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

type ownJobDTO struct {
	Job          jobDTO               `json:"job"`
	Applications []applicationViewDTO `json:"applications"`
}

// ListOwn handles GET /guardian/jobs.
func (h *JobHandler) ListOwn(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.jobs.ListOwn(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	out := make([]ownJobDTO, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, ownJobDTO{
			Job:          toJobDTO(j.Job),
			Applications: toApplicationViewDTOs(j.Applications),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"jobs": out})
}
