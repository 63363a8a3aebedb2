package user

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/heartmarshall/carematch-backend/internal/domain"
	"github.com/heartmarshall/carematch-backend/pkg/ctxutil"
)

const (
	defaultDirectoryLimit = 50
	maxDirectoryLimit     = 100
)

// CaregiverProfile returns the caller's own caregiver profile.
func (s *Service) CaregiverProfile(ctx context.Context) (*domain.CaregiverProfile, error) {
	userID, err := caregiverFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	p, err := s.caregivers.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get caregiver profile: %w", err)
	}
	return p, nil
}

// UpdateCaregiverProfile replaces the caller's caregiver profile. The user
// record must exist, so the profile cannot outrun profile completion.
func (s *Service) UpdateCaregiverProfile(ctx context.Context, input UpdateCaregiverProfileInput) (*domain.CaregiverProfile, error) {
	userID, err := caregiverFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	p, err := s.caregivers.Upsert(ctx, input.toProfile(userID))
	if err != nil {
		return nil, fmt.Errorf("save caregiver profile: %w", err)
	}

	s.log.InfoContext(ctx, "caregiver profile updated",
		slog.String("user_id", userID.String()),
		slog.Bool("available", p.IsAvailable),
	)

	return p, nil
}

// ListCaregivers returns the public caregiver directory and the distinct
// areas (first word of each location) it covers, in listing order.
func (s *Service) ListCaregivers(ctx context.Context, filter domain.CaregiverFilter) (*Directory, error) {
	filter.Location = strings.TrimSpace(filter.Location)
	switch {
	case filter.Limit <= 0:
		filter.Limit = defaultDirectoryLimit
	case filter.Limit > maxDirectoryLimit:
		filter.Limit = maxDirectoryLimit
	}

	cards, err := s.caregivers.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list caregivers: %w", err)
	}

	return &Directory{Caregivers: cards, Locations: areas(cards)}, nil
}

func areas(cards []domain.CaregiverCard) []string {
	out := []string{}
	seen := make(map[string]struct{})
	for _, c := range cards {
		if c.Profile.Location == nil {
			continue
		}
		fields := strings.Fields(*c.Profile.Location)
		if len(fields) == 0 {
			continue
		}
		if _, ok := seen[fields[0]]; ok {
			continue
		}
		seen[fields[0]] = struct{}{}
		out = append(out, fields[0])
	}
	return out
}

func caregiverFromCtx(ctx context.Context) (uuid.UUID, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return uuid.Nil, domain.ErrUnauthorized
	}
	if domain.UserRole(ctxutil.RoleFromCtx(ctx)) != domain.UserRoleCaregiver {
		return uuid.Nil, domain.ErrForbidden
	}
	return userID, nil
}
