package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/heartmarshall/carematch-backend/internal/domain"
	"github.com/heartmarshall/carematch-backend/internal/service/user"
)

type userService interface {
	CompleteProfile(ctx context.Context, input user.CompleteProfileInput) (*domain.User, error)
	Get(ctx context.Context, userID uuid.UUID) (*user.Profile, error)
	CaregiverProfile(ctx context.Context) (*domain.CaregiverProfile, error)
	UpdateCaregiverProfile(ctx context.Context, input user.UpdateCaregiverProfileInput) (*domain.CaregiverProfile, error)
	ListCaregivers(ctx context.Context, filter domain.CaregiverFilter) (*user.Directory, error)
}

// UserHandler serves profiles.
type UserHandler struct {
	users userService
	log   *slog.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(log *slog.Logger, users userService) *UserHandler {
	return &UserHandler{users: users, log: log.With("handler", "user")}
}

// CompleteProfile handles POST /users/profile.
func (h *UserHandler) CompleteProfile(w http.ResponseWriter, r *http.Request) {
	var req completeProfileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	u, err := h.users.CompleteProfile(r.Context(), user.CompleteProfileInput{
		Email:        req.Email,
		Name:         req.Name,
		Phone:        req.Phone,
		Role:         domain.UserRole(req.Role),
		AvatarURL:    req.AvatarURL,
		Introduction: req.Introduction,
	})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"user": toAccountDTO(*u)})
}

// Get handles GET /users/{id}.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	p, err := h.users.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	var caregiver *caregiverProfileDTO
	if p.Caregiver != nil {
		dto := toCaregiverProfileDTO(*p.Caregiver)
		caregiver = &dto
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"user":             toUserDTO(p.User),
		"averageRating":    p.Rating.AverageRating,
		"reviewCount":      p.Rating.TotalCount,
		"caregiverProfile": caregiver,
	})
}

// CaregiverProfile handles GET /caregiver/profile.
func (h *UserHandler) CaregiverProfile(w http.ResponseWriter, r *http.Request) {
	p, err := h.users.CaregiverProfile(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"profile": toCaregiverProfileDTO(*p)})
}

// UpdateCaregiverProfile handles PUT /caregiver/profile.
func (h *UserHandler) UpdateCaregiverProfile(w http.ResponseWriter, r *http.Request) {
	var req updateCaregiverProfileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	p, err := h.users.UpdateCaregiverProfile(r.Context(), user.UpdateCaregiverProfileInput{
		ExperienceYears: req.ExperienceYears,
		Certifications:  req.Certifications,
		Specializations: req.Specializations,
		Introduction:    req.Introduction,
		HourlyRate:      req.HourlyRate,
		IsAvailable:     req.IsAvailable,
		Location:        req.Location,
	})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"profile": toCaregiverProfileDTO(*p)})
}

// ListCaregivers handles GET /caregivers.
func (h *UserHandler) ListCaregivers(w http.ResponseWriter, r *http.Request) {
	available, err := queryBool(r, "available")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	dir, err := h.users.ListCaregivers(r.Context(), domain.CaregiverFilter{
		Location:      r.URL.Query().Get("location"),
		AvailableOnly: available,
		Limit:         limit,
	})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	cards := make([]caregiverCardDTO, len(dir.Caregivers))
	for i, c := range dir.Caregivers {
		cards[i] = caregiverCardDTO{User: toUserDTO(c.User), Profile: toCaregiverProfileDTO(c.Profile)}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"caregivers": cards,
		"locations":  dir.Locations,
	})
}
