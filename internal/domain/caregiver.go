package domain

import (
	"time"

	"github.com/google/uuid"
)

// Caregiver profile limits.
const (
	MaxExperienceYears    = 80
	MaxIntroductionLength = 2000
	MaxProfileTags        = 20
	MaxProfileTagLength   = 50
	MaxProfileLocation    = 200
)

// CaregiverProfile is the work record a caregiver shows to guardians.
// Every caregiver has exactly one, created with their account.
type CaregiverProfile struct {
	UserID          uuid.UUID
	ExperienceYears int
	Certifications  []string
	Specializations []string
	Introduction    *string
	HourlyRate      *int
	IsAvailable     bool
	Location        *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewCaregiverProfile returns the profile a caregiver starts with.
func NewCaregiverProfile(userID uuid.UUID, introduction *string) CaregiverProfile {
	return CaregiverProfile{
		UserID:          userID,
		Certifications:  []string{},
		Specializations: []string{},
		Introduction:    introduction,
		IsAvailable:     true,
	}
}

// CaregiverFilter narrows the public caregiver directory.
type CaregiverFilter struct {
	Location      string
	AvailableOnly bool
	Limit         int
}

// CaregiverCard is a directory entry.
type CaregiverCard struct {
	User    PublicUser
	Profile CaregiverProfile
}
