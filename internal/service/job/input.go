package job

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/heartmarshall/carematch-backend/internal/domain"
)

// CreateInput holds the parameters for posting a job.
type CreateInput struct {
	Title       string
	Description string
	Location    string
	CareType    string
	StartDate   time.Time
	EndDate     *time.Time
	HourlyRate  int
	Patient     domain.PatientInfo
}

// Validate checks all fields and collects all errors.
func (i CreateInput) Validate() error {
	errs := validateJob(i.toJob())
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func (i CreateInput) toJob() domain.Job {
	return domain.Job{
		Title:       strings.TrimSpace(i.Title),
		Description: strings.TrimSpace(i.Description),
		Location:    strings.TrimSpace(i.Location),
		CareType:    strings.TrimSpace(i.CareType),
		StartDate:   i.StartDate,
		EndDate:     i.EndDate,
		HourlyRate:  i.HourlyRate,
		Patient:     trimPatient(i.Patient),
		Status:      domain.JobStatusOpen,
	}
}

// PatchInput holds a guardian's changes to one of their postings.
type PatchInput struct {
	JobID uuid.UUID
	Patch domain.JobPatch
}

// Validate checks the shape of the patch. Field rules are checked on the
// patched job.
func (i PatchInput) Validate() error {
	var errs []domain.FieldError

	if i.JobID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "job_id", Message: "required"})
	}
	if i.Patch.IsEmpty() {
		errs = append(errs, domain.FieldError{Field: "input", Message: "at least one field must be provided"})
	}
	if i.Patch.Status != nil && !i.Patch.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "unknown status"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// normalized trims the text fields of the patch.
func (i PatchInput) normalized() domain.JobPatch {
	p := i.Patch
	p.Title = trimPtr(p.Title)
	p.Description = trimPtr(p.Description)
	p.Location = trimPtr(p.Location)
	p.CareType = trimPtr(p.CareType)
	if p.Patient != nil {
		patient := trimPatient(*p.Patient)
		p.Patient = &patient
	}
	return p
}

// validateJob applies the posting rules to a complete job.
func validateJob(j domain.Job) []domain.FieldError {
	var errs []domain.FieldError

	if n := utf8.RuneCountInString(j.Title); n < 5 {
		errs = append(errs, domain.FieldError{Field: "title", Message: "min 5 characters"})
	} else if n > 200 {
		errs = append(errs, domain.FieldError{Field: "title", Message: "max 200 characters"})
	}
	if utf8.RuneCountInString(j.Description) < 20 {
		errs = append(errs, domain.FieldError{Field: "description", Message: "min 20 characters"})
	}
	if j.Location == "" {
		errs = append(errs, domain.FieldError{Field: "location", Message: "required"})
	}
	if j.CareType == "" {
		errs = append(errs, domain.FieldError{Field: "care_type", Message: "required"})
	}
	if j.StartDate.IsZero() {
		errs = append(errs, domain.FieldError{Field: "start_date", Message: "required"})
	}
	if j.EndDate != nil && !j.StartDate.IsZero() && j.EndDate.Before(j.StartDate) {
		errs = append(errs, domain.FieldError{Field: "end_date", Message: "must not be before start_date"})
	}
	if j.HourlyRate < domain.MinHourlyRate {
		errs = append(errs, domain.FieldError{Field: "hourly_rate", Message: fmt.Sprintf("min %d", domain.MinHourlyRate)})
	}

	p := j.Patient
	if p.Age != nil && (*p.Age < 0 || *p.Age > 150) {
		errs = append(errs, domain.FieldError{Field: "patient.age", Message: "must be between 0 and 150"})
	}
	if p.Gender != nil && !p.Gender.IsValid() {
		errs = append(errs, domain.FieldError{Field: "patient.gender", Message: "must be male or female"})
	}
	if p.Condition != nil && utf8.RuneCountInString(*p.Condition) > 500 {
		errs = append(errs, domain.FieldError{Field: "patient.condition", Message: "max 500 characters"})
	}

	errs = domain.CheckText(errs, "title", j.Title)
	errs = domain.CheckText(errs, "description", j.Description)
	errs = domain.CheckText(errs, "location", j.Location)
	errs = domain.CheckText(errs, "care_type", j.CareType)
	errs = domain.CheckTextPtr(errs, "patient.condition", p.Condition)

	return errs
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	return &trimmed
}

func trimPatient(p domain.PatientInfo) domain.PatientInfo {
	if p.Condition != nil {
		c := strings.TrimSpace(*p.Condition)
		if c == "" {
			p.Condition = nil
		} else {
			p.Condition = &c
		}
	}
	return p
}
