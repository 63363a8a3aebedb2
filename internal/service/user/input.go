package user

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/heartmarshall/carematch-backend/internal/domain"
)

var phonePattern = regexp.MustCompile(`^01[0-9][0-9]{7,8}$`)

// CompleteProfileInput holds the fields a new user supplies once after
// signing in.
type CompleteProfileInput struct {
	Email        string
	Name         string
	Phone        string
	Role         domain.UserRole
	AvatarURL    *string
	Introduction *string // ignored for guardians
}

// Validate checks all fields and collects all errors.
func (i CompleteProfileInput) Validate() error {
	var errs []domain.FieldError

	email := strings.TrimSpace(i.Email)
	if email == "" {
		errs = append(errs, domain.FieldError{Field: "email", Message: "required"})
	} else if !strings.Contains(email, "@") || len(email) > 255 {
		errs = append(errs, domain.FieldError{Field: "email", Message: "invalid email"})
	}

	if n := utf8.RuneCountInString(strings.TrimSpace(i.Name)); n < 2 {
		errs = append(errs, domain.FieldError{Field: "name", Message: "min 2 characters"})
	} else if n > 100 {
		errs = append(errs, domain.FieldError{Field: "name", Message: "max 100 characters"})
	}

	if !phonePattern.MatchString(normalizePhone(i.Phone)) {
		errs = append(errs, domain.FieldError{Field: "phone", Message: "invalid mobile number"})
	}

	if !i.Role.IsValid() {
		errs = append(errs, domain.FieldError{Field: "role", Message: "must be caregiver or guardian"})
	}

	if i.AvatarURL != nil && len(*i.AvatarURL) > 512 {
		errs = append(errs, domain.FieldError{Field: "avatar_url", Message: "too long"})
	}

	errs = domain.CheckText(errs, "email", i.Email)
	errs = domain.CheckText(errs, "name", i.Name)
	errs = domain.CheckTextPtr(errs, "avatar_url", i.AvatarURL)

	if i.Introduction != nil {
		if utf8.RuneCountInString(strings.TrimSpace(*i.Introduction)) > domain.MaxIntroductionLength {
			errs = append(errs, domain.FieldError{Field: "introduction", Message: fmt.Sprintf("max %d characters", domain.MaxIntroductionLength)})
		}
		errs = domain.CheckText(errs, "introduction", *i.Introduction)
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func (i CompleteProfileInput) toUser() domain.User {
	u := domain.User{
		Email: strings.ToLower(strings.TrimSpace(i.Email)),
		Name:  strings.TrimSpace(i.Name),
		Phone: normalizePhone(i.Phone),
		Role:  i.Role,
	}
	if i.AvatarURL != nil {
		if url := strings.TrimSpace(*i.AvatarURL); url != "" {
			u.AvatarURL = &url
		}
	}
	return u
}

func normalizePhone(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "-", "")
}

// UpdateCaregiverProfileInput replaces the editable fields of the caller's
// caregiver profile. IsAvailable defaults to true when omitted.
type UpdateCaregiverProfileInput struct {
	ExperienceYears int
	Certifications  []string
	Specializations []string
	Introduction    *string
	HourlyRate      *int
	IsAvailable     *bool
	Location        *string
}

// Validate checks all fields and collects all errors.
func (i UpdateCaregiverProfileInput) Validate() error {
	var errs []domain.FieldError

	if i.ExperienceYears < 0 || i.ExperienceYears > domain.MaxExperienceYears {
		errs = append(errs, domain.FieldError{Field: "experience_years", Message: fmt.Sprintf("must be between 0 and %d", domain.MaxExperienceYears)})
	}
	errs = validateTags(errs, "certifications", i.Certifications)
	errs = validateTags(errs, "specializations", i.Specializations)

	if i.Introduction != nil {
		if utf8.RuneCountInString(strings.TrimSpace(*i.Introduction)) > domain.MaxIntroductionLength {
			errs = append(errs, domain.FieldError{Field: "introduction", Message: fmt.Sprintf("max %d characters", domain.MaxIntroductionLength)})
		}
		errs = domain.CheckText(errs, "introduction", *i.Introduction)
	}
	if i.HourlyRate != nil && *i.HourlyRate < domain.MinHourlyRate {
		errs = append(errs, domain.FieldError{Field: "hourly_rate", Message: fmt.Sprintf("min %d", domain.MinHourlyRate)})
	}
	if i.Location != nil {
		if utf8.RuneCountInString(strings.TrimSpace(*i.Location)) > domain.MaxProfileLocation {
			errs = append(errs, domain.FieldError{Field: "location", Message: fmt.Sprintf("max %d characters", domain.MaxProfileLocation)})
		}
		errs = domain.CheckText(errs, "location", *i.Location)
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func (i UpdateCaregiverProfileInput) toProfile(userID uuid.UUID) domain.CaregiverProfile {
	available := true
	if i.IsAvailable != nil {
		available = *i.IsAvailable
	}
	return domain.CaregiverProfile{
		UserID:          userID,
		ExperienceYears: i.ExperienceYears,
		Certifications:  normalizeTags(i.Certifications),
		Specializations: normalizeTags(i.Specializations),
		Introduction:    trimOrNil(i.Introduction),
		HourlyRate:      i.HourlyRate,
		IsAvailable:     available,
		Location:        trimOrNil(i.Location),
	}
}

func validateTags(errs []domain.FieldError, field string, tags []string) []domain.FieldError {
	if len(tags) > domain.MaxProfileTags {
		return append(errs, domain.FieldError{Field: field, Message: fmt.Sprintf("max %d entries", domain.MaxProfileTags)})
	}
	for _, tag := range tags {
		if utf8.RuneCountInString(strings.TrimSpace(tag)) > domain.MaxProfileTagLength {
			return append(errs, domain.FieldError{Field: field, Message: fmt.Sprintf("entries max %d characters", domain.MaxProfileTagLength)})
		}
		if domain.HasNUL(tag) {
			return domain.CheckText(errs, field, tag)
		}
	}
	return errs
}

// normalizeTags trims entries and drops blanks and repeats, keeping order.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

func trimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
