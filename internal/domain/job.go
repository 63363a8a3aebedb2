package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MinHourlyRate is the statutory minimum hourly wage, in KRW.
const MinHourlyRate = 9860

// PatientInfo describes the person receiving care. Every field is optional.
type PatientInfo struct {
	Age       *int
	Gender    *PatientGender
	Condition *string
}

// Job is a guardian's posting for care work.
type Job struct {
	ID          uuid.UUID
	GuardianID  uuid.UUID
	Title       string
	Description string
	Location    string
	CareType    string
	StartDate   time.Time
	EndDate     *time.Time
	HourlyRate  int
	Patient     PatientInfo
	Status      JobStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// JobPatch carries the fields a guardian may change. Nil means "keep".
type JobPatch struct {
	Title       *string
	Description *string
	Location    *string
	CareType    *string
	StartDate   *time.Time
	EndDate     *time.Time
	HourlyRate  *int
	Patient     *PatientInfo
	Status      *JobStatus
}

// IsEmpty reports whether the patch changes nothing.
func (p JobPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Location == nil &&
		p.CareType == nil && p.StartDate == nil && p.EndDate == nil &&
		p.HourlyRate == nil && p.Patient == nil && p.Status == nil
}

// Apply returns a copy of j with the patch fields replaced.
func (p JobPatch) Apply(j Job) Job {
	if p.Title != nil {
		j.Title = *p.Title
	}
	if p.Description != nil {
		j.Description = *p.Description
	}
	if p.Location != nil {
		j.Location = *p.Location
	}
	if p.CareType != nil {
		j.CareType = *p.CareType
	}
	if p.StartDate != nil {
		j.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		j.EndDate = p.EndDate
	}
	if p.HourlyRate != nil {
		j.HourlyRate = *p.HourlyRate
	}
	if p.Patient != nil {
		j.Patient = *p.Patient
	}
	if p.Status != nil {
		j.Status = *p.Status
	}
	return j
}

// CheckJobTransition validates a status change. open and closed may be
// swapped only while nobody has been accepted; statuses never move back a
// tier and completed is terminal.
func CheckJobTransition(from, to JobStatus, hasAccepted bool) error {
	if !to.IsValid() {
		return NewValidationError("status", "unknown status")
	}
	if from == to {
		return nil
	}
	if from == JobStatusCompleted {
		return fmt.Errorf("job is completed: %w", ErrInvalidState)
	}
	if to.tier() < from.tier() {
		return fmt.Errorf("job status %s -> %s: %w", from, to, ErrInvalidState)
	}
	if from.tier() == to.tier() && hasAccepted {
		return fmt.Errorf("job has an accepted application: %w", ErrInvalidState)
	}
	return nil
}

// JobFilter narrows the public job listing.
type JobFilter struct {
	Status   JobStatus
	Location string
	CareType string
	Limit    int
}

// JobWithApplications is a guardian's own posting with everything applied to it.
type JobWithApplications struct {
	Job          Job
	Applications []ApplicationView
}
