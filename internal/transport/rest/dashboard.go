package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/carematch-backend/internal/service/dashboard"
)

type dashboardService interface {
	Guardian(ctx context.Context) (*dashboard.GuardianDashboard, error)
	Caregiver(ctx context.Context) (*dashboard.CaregiverDashboard, error)
}

// DashboardHandler serves the per-role landing summaries.
type DashboardHandler struct {
	dashboards dashboardService
	log        *slog.Logger
}

// NewDashboardHandler creates a DashboardHandler.
func NewDashboardHandler(log *slog.Logger, dashboards dashboardService) *DashboardHandler {
	return &DashboardHandler{dashboards: dashboards, log: log.With("handler", "dashboard")}
}

// Guardian handles GET /guardian/dashboard.
func (h *DashboardHandler) Guardian(w http.ResponseWriter, r *http.Request) {
	d, err := h.dashboards.Guardian(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	jobs := make([]ownJobDTO, 0, len(d.Jobs))
	for _, j := range d.Jobs {
		jobs = append(jobs, ownJobDTO{
			Job:          toJobDTO(j.Job),
			Applications: toApplicationViewDTOs(j.Applications),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"user": toAccountDTO(d.User),
		"jobs": jobs,
		"stats": map[string]int{
			"totalJobs":           d.Stats.TotalJobs,
			"openJobs":            d.Stats.OpenJobs,
			"totalApplications":   d.Stats.TotalApplications,
			"pendingApplications": d.Stats.PendingApplications,
		},
	})
}

// Caregiver handles GET /caregiver/dashboard.
func (h *DashboardHandler) Caregiver(w http.ResponseWriter, r *http.Request) {
	d, err := h.dashboards.Caregiver(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	var profile *caregiverProfileDTO
	if d.Profile != nil {
		dto := toCaregiverProfileDTO(*d.Profile)
		profile = &dto
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"user":         toAccountDTO(d.User),
		"profile":      profile,
		"applications": toApplicationViewDTOs(d.Applications),
		"stats": map[string]int{
			"totalApplications":    d.Stats.TotalApplications,
			"pendingApplications":  d.Stats.PendingApplications,
			"acceptedApplications": d.Stats.AcceptedApplications,
		},
	})
}
