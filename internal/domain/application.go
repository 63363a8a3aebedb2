package domain

import (
	"time"

	"github.com/google/uuid"
)

// Application is a caregiver's request to take a job.
type Application struct {
	ID          uuid.UUID
	JobID       uuid.UUID
	CaregiverID uuid.UUID
	Message     *string
	Status      ApplicationStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ApplicationView is an application joined with the parties and posting it
// concerns, used for listings and authorization checks.
type ApplicationView struct {
	Application
	GuardianID uuid.UUID
	JobTitle   string
	JobStatus  JobStatus
	Caregiver  PublicUser
}

// ApplicationFilter selects applications for a listing. Exactly one of
// CaregiverID or GuardianID is set by the service.
type ApplicationFilter struct {
	CaregiverID *uuid.UUID
	GuardianID  *uuid.UUID
	JobID       *uuid.UUID
	Status      *ApplicationStatus
}
