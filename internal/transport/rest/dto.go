package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/carematch-backend/internal/domain"
)

// dateValue accepts either a calendar date or a full RFC 3339 timestamp.
// Dates are taken as midnight UTC.
type dateValue time.Time

func (d *dateValue) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	for _, layout := range []string{time.DateOnly, time.RFC3339Nano} {
		if t, err := time.Parse(layout, raw); err == nil {
			*d = dateValue(t)
			return nil
		}
	}
	return fmt.Errorf("invalid date %q", raw)
}

func (d *dateValue) timePtr() *time.Time {
	if d == nil {
		return nil
	}
	t := time.Time(*d)
	return &t
}

// --- users ---

type userDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	AvatarURL *string   `json:"avatarUrl"`
}

func toUserDTO(u domain.PublicUser) userDTO {
	return userDTO{ID: u.ID, Name: u.Name, Role: u.Role.String(), AvatarURL: u.AvatarURL}
}

type accountDTO struct {
	userDTO
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
}

func toAccountDTO(u domain.User) accountDTO {
	return accountDTO{
		userDTO:   toUserDTO(u.Public()),
		Email:     u.Email,
		Phone:     u.Phone,
		CreatedAt: u.CreatedAt.UTC(),
	}
}

type completeProfileRequest struct {
	Email        string  `json:"email"`
	Name         string  `json:"name"`
	Phone        string  `json:"phone"`
	Role         string  `json:"role"`
	AvatarURL    *string `json:"avatarUrl"`
	Introduction *string `json:"introduction"`
}

type caregiverProfileDTO struct {
	ExperienceYears int       `json:"experienceYears"`
	Certifications  []string  `json:"certifications"`
	Specializations []string  `json:"specializations"`
	Introduction    *string   `json:"introduction"`
	HourlyRate      *int      `json:"hourlyRate"`
	IsAvailable     bool      `json:"isAvailable"`
	Location        *string   `json:"location"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func toCaregiverProfileDTO(p domain.CaregiverProfile) caregiverProfileDTO {
	return caregiverProfileDTO{
		ExperienceYears: p.ExperienceYears,
		Certifications:  p.Certifications,
		Specializations: p.Specializations,
		Introduction:    p.Introduction,
		HourlyRate:      p.HourlyRate,
		IsAvailable:     p.IsAvailable,
		Location:        p.Location,
		CreatedAt:       p.CreatedAt.UTC(),
		UpdatedAt:       p.UpdatedAt.UTC(),
	}
}

type caregiverCardDTO struct {
	User    userDTO             `json:"user"`
	Profile caregiverProfileDTO `json:"profile"`
}

type updateCaregiverProfileRequest struct {
	ExperienceYears int      `json:"experienceYears"`
	Certifications  []string `json:"certifications"`
	Specializations []string `json:"specializations"`
	Introduction    *string  `json:"introduction"`
	HourlyRate      *int     `json:"hourlyRate"`
	IsAvailable     *bool    `json:"isAvailable"`
	Location        *string  `json:"location"`
}

// --- jobs ---

type patientInfoDTO struct {
	Age       *int    `json:"age"`
	Gender    *string `json:"gender"`
	Condition *string `json:"condition"`
}

func (p *patientInfoDTO) toDomain() domain.PatientInfo {
	if p == nil {
		return domain.PatientInfo{}
	}
	info := domain.PatientInfo{Age: p.Age, Condition: p.Condition}
	if p.Gender != nil {
		g := domain.PatientGender(*p.Gender)
		info.Gender = &g
	}
	return info
}

func toPatientInfoDTO(p domain.PatientInfo) patientInfoDTO {
	dto := patientInfoDTO{Age: p.Age, Condition: p.Condition}
	if p.Gender != nil {
		g := p.Gender.String()
		dto.Gender = &g
	}
	return dto
}

type jobDTO struct {
	ID          uuid.UUID      `json:"id"`
	GuardianID  uuid.UUID      `json:"guardianId"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Location    string         `json:"location"`
	CareType    string         `json:"careType"`
	StartDate   time.Time      `json:"startDate"`
	EndDate     *time.Time     `json:"endDate"`
	HourlyRate  int            `json:"hourlyRate"`
	PatientInfo patientInfoDTO `json:"patientInfo"`
	Status      string         `json:"status"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

func toJobDTO(j domain.Job) jobDTO {
	return jobDTO{
		ID:          j.ID,
		GuardianID:  j.GuardianID,
		Title:       j.Title,
		Description: j.Description,
		Location:    j.Location,
		CareType:    j.CareType,
		StartDate:   j.StartDate,
		EndDate:     j.EndDate,
		HourlyRate:  j.HourlyRate,
		PatientInfo: toPatientInfoDTO(j.Patient),
		Status:      j.Status.String(),
		CreatedAt:   j.CreatedAt.UTC(),
		UpdatedAt:   j.UpdatedAt.UTC(),
	}
}

func toJobDTOs(jobs []domain.Job) []jobDTO {
	out := make([]jobDTO, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, toJobDTO(j))
	}
	return out
}

type createJobRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Location    string          `json:"location"`
	CareType    string          `json:"careType"`
	StartDate   *dateValue      `json:"startDate"`
	EndDate     *dateValue      `json:"endDate"`
	HourlyRate  int             `json:"hourlyRate"`
	PatientInfo *patientInfoDTO `json:"patientInfo"`
}

type patchJobRequest struct {
	Title       *string         `json:"title"`
	Description *string         `json:"description"`
	Location    *string         `json:"location"`
	CareType    *string         `json:"careType"`
	StartDate   *dateValue      `json:"startDate"`
	EndDate     *dateValue      `json:"endDate"`
	HourlyRate  *int            `json:"hourlyRate"`
	PatientInfo *patientInfoDTO `json:"patientInfo"`
	Status      *string         `json:"status"`
}

func (r patchJobRequest) toDomain() domain.JobPatch {
	p := domain.JobPatch{
		Title:       r.Title,
		Description: r.Description,
		Location:    r.Location,
		CareType:    r.CareType,
		StartDate:   r.StartDate.timePtr(),
		EndDate:     r.EndDate.timePtr(),
		HourlyRate:  r.HourlyRate,
	}
	if r.PatientInfo != nil {
		info := r.PatientInfo.toDomain()
		p.Patient = &info
	}
	if r.Status != nil {
		s := domain.JobStatus(*r.Status)
		p.Status = &s
	}
	return p
}

// --- applications ---

type applicationDTO struct {
	ID          uuid.UUID `json:"id"`
	JobID       uuid.UUID `json:"jobId"`
	CaregiverID uuid.UUID `json:"caregiverId"`
	Message     *string   `json:"message"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toApplicationDTO(a domain.Application) applicationDTO {
	return applicationDTO{
		ID:          a.ID,
		JobID:       a.JobID,
		CaregiverID: a.CaregiverID,
		Message:     a.Message,
		Status:      a.Status.String(),
		CreatedAt:   a.CreatedAt.UTC(),
		UpdatedAt:   a.UpdatedAt.UTC(),
	}
}

type applicationViewDTO struct {
	applicationDTO
	GuardianID uuid.UUID `json:"guardianId"`
	JobTitle   string    `json:"jobTitle"`
	JobStatus  string    `json:"jobStatus"`
	Caregiver  userDTO   `json:"caregiver"`
}

func toApplicationViewDTO(v domain.ApplicationView) applicationViewDTO {
	return applicationViewDTO{
		applicationDTO: toApplicationDTO(v.Application),
		GuardianID:     v.GuardianID,
		JobTitle:       v.JobTitle,
		JobStatus:      v.JobStatus.String(),
		Caregiver:      toUserDTO(v.Caregiver),
	}
}

func toApplicationViewDTOs(views []domain.ApplicationView) []applicationViewDTO {
	out := make([]applicationViewDTO, 0, len(views))
	for _, v := range views {
		out = append(out, toApplicationViewDTO(v))
	}
	return out
}

type submitApplicationRequest struct {
	JobID   uuid.UUID `json:"jobId"`
	Message *string   `json:"message"`
}

type decideApplicationRequest struct {
	Status string `json:"status"`
}

// --- chat ---

type messageDTO struct {
	ID        uuid.UUID `json:"id"`
	RoomID    uuid.UUID `json:"roomId"`
	SenderID  uuid.UUID `json:"senderId"`
	Content   string    `json:"content"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

func toMessageDTO(m domain.Message) messageDTO {
	return messageDTO{
		ID:        m.ID,
		RoomID:    m.RoomID,
		SenderID:  m.SenderID,
		Content:   m.Content,
		IsRead:    m.IsRead,
		CreatedAt: m.CreatedAt.UTC(),
	}
}

type roomDTO struct {
	ID          uuid.UUID   `json:"id"`
	CaregiverID uuid.UUID   `json:"caregiverId"`
	GuardianID  uuid.UUID   `json:"guardianId"`
	JobID       *uuid.UUID  `json:"jobId"`
	JobTitle    *string     `json:"jobTitle"`
	Counterpart userDTO     `json:"otherUser"`
	LastMessage *messageDTO `json:"lastMessage"`
	UnreadCount int         `json:"unreadCount"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

func toRoomDTO(s domain.RoomSummary) roomDTO {
	dto := roomDTO{
		ID:          s.ID,
		CaregiverID: s.CaregiverID,
		GuardianID:  s.GuardianID,
		JobID:       s.JobID,
		JobTitle:    s.JobTitle,
		Counterpart: toUserDTO(s.Counterpart),
		UnreadCount: s.UnreadCount,
		CreatedAt:   s.CreatedAt.UTC(),
		UpdatedAt:   s.UpdatedAt.UTC(),
	}
	if s.LastMessage != nil {
		m := toMessageDTO(*s.LastMessage)
		dto.LastMessage = &m
	}
	return dto
}

type sendMessageRequest struct {
	Content string `json:"content"`
}

// --- reviews ---

type reviewDTO struct {
	ID         uuid.UUID `json:"id"`
	JobID      uuid.UUID `json:"jobId"`
	ReviewerID uuid.UUID `json:"reviewerId"`
	RevieweeID uuid.UUID `json:"revieweeId"`
	Rating     int       `json:"rating"`
	Comment    *string   `json:"comment"`
	Reviewer   *userDTO  `json:"reviewer,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

func toReviewDTO(r domain.Review) reviewDTO {
	dto := reviewDTO{
		ID:         r.ID,
		JobID:      r.JobID,
		ReviewerID: r.ReviewerID,
		RevieweeID: r.RevieweeID,
		Rating:     r.Rating,
		Comment:    r.Comment,
		CreatedAt:  r.CreatedAt.UTC(),
	}
	if r.Reviewer.ID != uuid.Nil {
		u := toUserDTO(r.Reviewer)
		dto.Reviewer = &u
	}
	return dto
}

type submitReviewRequest struct {
	JobID      uuid.UUID `json:"jobId"`
	RevieweeID uuid.UUID `json:"revieweeId"`
	Rating     int       `json:"rating"`
	Comment    *string   `json:"comment"`
}
