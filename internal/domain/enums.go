package domain

// UserRole is the side of the marketplace a user acts on. It is fixed once
// the profile is completed.
type UserRole string

const (
	UserRoleCaregiver UserRole = "caregiver"
	UserRoleGuardian  UserRole = "guardian"
)

func (r UserRole) String() string { return string(r) }

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleCaregiver, UserRoleGuardian:
		return true
	}
	return false
}

// JobStatus is the lifecycle state of a job posting.
type JobStatus string

const (
	JobStatusOpen       JobStatus = "open"
	JobStatusClosed     JobStatus = "closed"
	JobStatusInProgress JobStatus = "in_progress"
	JobStatusCompleted  JobStatus = "completed"
)

func (s JobStatus) String() string { return string(s) }

func (s JobStatus) IsValid() bool {
	switch s {
	case JobStatusOpen, JobStatusClosed, JobStatusInProgress, JobStatusCompleted:
		return true
	}
	return false
}

// tier orders statuses for the no-regression rule. open and closed share a tier.
func (s JobStatus) tier() int {
	switch s {
	case JobStatusOpen, JobStatusClosed:
		return 0
	case JobStatusInProgress:
		return 1
	case JobStatusCompleted:
		return 2
	}
	return -1
}

// ApplicationStatus is the state of an application. Withdrawal deletes the
// row, so there is no stored "withdrawn" state.
type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusAccepted ApplicationStatus = "accepted"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

func (s ApplicationStatus) String() string { return string(s) }

func (s ApplicationStatus) IsValid() bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusAccepted, ApplicationStatusRejected:
		return true
	}
	return false
}

// IsDecision reports whether s is a status a guardian may decide on.
func (s ApplicationStatus) IsDecision() bool {
	return s == ApplicationStatusAccepted || s == ApplicationStatusRejected
}

// PatientGender is the optional gender of the person receiving care.
type PatientGender string

const (
	PatientGenderMale   PatientGender = "male"
	PatientGenderFemale PatientGender = "female"
)

func (g PatientGender) String() string { return string(g) }

func (g PatientGender) IsValid() bool {
	switch g {
	case PatientGenderMale, PatientGenderFemale:
		return true
	}
	return false
}

// PageDirection selects which side of a cursor a message page is read from.
type PageDirection string

const (
	PageBefore PageDirection = "before"
	PageAfter  PageDirection = "after"
)

func (d PageDirection) String() string { return string(d) }

func (d PageDirection) IsValid() bool {
	switch d {
	case PageBefore, PageAfter:
		return true
	}
	return false
}

// NotificationKind identifies a notification template.
type NotificationKind string

const (
	NotificationApplicationReceived NotificationKind = "application_received"
	NotificationApplicationAccepted NotificationKind = "application_accepted"
	NotificationApplicationRejected NotificationKind = "application_rejected"
	NotificationNewMessage          NotificationKind = "new_message"
	NotificationReviewRequest       NotificationKind = "review_request"
)

func (k NotificationKind) String() string { return string(k) }

func (k NotificationKind) IsValid() bool {
	switch k {
	case NotificationApplicationReceived, NotificationApplicationAccepted,
		NotificationApplicationRejected, NotificationNewMessage, NotificationReviewRequest:
		return true
	}
	return false
}
