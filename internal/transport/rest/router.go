package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/heartmarshall/carematch-backend/internal/transport/middleware"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Health       *HealthHandler
	Users        *UserHandler
	Jobs         *JobHandler
	Applications *ApplicationHandler
	Chat         *ChatHandler
	Reviews      *ReviewHandler
	Dashboards   *DashboardHandler
}

// NewRouter wires the HTTP surface. global wraps every route; auth guards
// everything except the probes.
func NewRouter(h Handlers, global, auth middleware.Middleware) http.Handler {
	r := chi.NewRouter()
	r.Use(global)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, errorEnvelope{Error: errorBody{Code: codeNotFound, Message: "route not found"}})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorEnvelope{Error: errorBody{Code: "method_not_allowed", Message: "method not allowed"}})
	})

	r.Get("/live", h.Health.Live)
	r.Get("/ready", h.Health.Ready)
	r.Get("/health", h.Health.Health)

	r.Group(func(r chi.Router) {
		r.Use(auth)

		r.Post("/users/profile", h.Users.CompleteProfile)
		r.Get("/users/{id}", h.Users.Get)
		r.Get("/caregiver/profile", h.Users.CaregiverProfile)
		r.Put("/caregiver/profile", h.Users.UpdateCaregiverProfile)
		r.Get("/caregivers", h.Users.ListCaregivers)
		r.Get("/caregiver/dashboard", h.Dashboards.Caregiver)

		r.Get("/jobs", h.Jobs.List)
		r.Post("/jobs", h.Jobs.Create)
		r.Get("/jobs/{id}", h.Jobs.Get)
		r.Patch("/jobs/{id}", h.Jobs.Patch)
		r.Delete("/jobs/{id}", h.Jobs.Delete)
		r.Get("/guardian/jobs", h.Jobs.ListOwn)
		r.Get("/guardian/dashboard", h.Dashboards.Guardian)

		r.Route("/applications", func(r chi.Router) {
			r.Get("/", h.Applications.List)
			r.Post("/", h.Applications.Submit)
			r.Get("/{id}", h.Applications.Get)
			r.Patch("/{id}", h.Applications.Decide)
			r.Delete("/{id}", h.Applications.Withdraw)
		})

		r.Get("/chat/rooms", h.Chat.ListRooms)
		r.Get("/chat/rooms/{id}/messages", h.Chat.ListMessages)
		r.Post("/chat/rooms/{id}/messages", h.Chat.SendMessage)

		r.Get("/reviews", h.Reviews.List)
		r.Post("/reviews", h.Reviews.Submit)
		r.Get("/reviews/write/{jobId}", h.Reviews.Eligibility)
	})

	return r
}
