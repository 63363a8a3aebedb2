package review

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/heartmarshall/carematch-backend/internal/domain"
)

// MaxCommentLength bounds a review comment, in code points.
const MaxCommentLength = 1000

// SubmitInput holds the parameters for writing a review.
type SubmitInput struct {
	JobID      uuid.UUID
	RevieweeID uuid.UUID
	Rating     int
	Comment    *string
}

// Validate checks all fields and collects all errors.
func (i SubmitInput) Validate() error {
	var errs []domain.FieldError

	if i.JobID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "job_id", Message: "required"})
	}
	if i.RevieweeID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "reviewee_id", Message: "required"})
	}
	if i.Rating < 1 || i.Rating > 5 {
		errs = append(errs, domain.FieldError{Field: "rating", Message: "must be between 1 and 5"})
	}
	if i.Comment != nil && utf8.RuneCountInString(strings.TrimSpace(*i.Comment)) > MaxCommentLength {
		errs = append(errs, domain.FieldError{Field: "comment", Message: "max 1000 characters"})
	}
	errs = domain.CheckTextPtr(errs, "comment", i.Comment)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
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
