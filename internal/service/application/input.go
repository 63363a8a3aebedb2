package application

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/heartmarshall/carematch-backend/internal/domain"
)

// MaxMessageLength bounds the cover message of an application, in code points.
const MaxMessageLength = 1000

// SubmitInput holds the parameters for applying to a job.
type SubmitInput struct {
	JobID   uuid.UUID
	Message *string
}

// Validate checks all fields and collects all errors.
func (i SubmitInput) Validate() error {
	var errs []domain.FieldError

	if i.JobID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "job_id", Message: "required"})
	}
	if i.Message != nil && utf8.RuneCountInString(strings.TrimSpace(*i.Message)) > MaxMessageLength {
		errs = append(errs, domain.FieldError{Field: "message", Message: "max 1000 characters"})
	}
	errs = domain.CheckTextPtr(errs, "message", i.Message)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// DecideInput holds a guardian's decision on an application.
type DecideInput struct {
	ApplicationID uuid.UUID
	Status        domain.ApplicationStatus
}

// Validate checks all fields and collects all errors.
func (i DecideInput) Validate() error {
	var errs []domain.FieldError

	if i.ApplicationID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "application_id", Message: "required"})
	}
	if !i.Status.IsDecision() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "must be accepted or rejected"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// trimOrNil trims whitespace. Returns nil if result is empty.
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
