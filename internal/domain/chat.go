package domain

import (
	"time"

	"github.com/google/uuid"
)

// MaxMessageLength is the maximum message length in Unicode code points.
const MaxMessageLength = 1000

// Room is the single conversation between a caregiver and a guardian.
type Room struct {
	ID          uuid.UUID
	CaregiverID uuid.UUID
	GuardianID  uuid.UUID
	JobID       *uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasParticipant reports whether userID is one of the two room members.
func (r Room) HasParticipant(userID uuid.UUID) bool {
	return r.CaregiverID == userID || r.GuardianID == userID
}

// Counterpart returns the other participant. Only meaningful for participants.
func (r Room) Counterpart(userID uuid.UUID) uuid.UUID {
	if r.CaregiverID == userID {
		return r.GuardianID
	}
	return r.CaregiverID
}

// RoomSummary is a room annotated at read time for the room list.
type RoomSummary struct {
	Room
	Counterpart PublicUser
	JobTitle    *string
	LastMessage *Message
	UnreadCount int
}

// Message is one entry of a room's log. Timestamps are strictly increasing
// within a room.
type Message struct {
	ID        uuid.UUID
	RoomID    uuid.UUID
	SenderID  uuid.UUID
	Content   string
	IsRead    bool
	CreatedAt time.Time
}

// PageQuery selects a window of a room's message log.
type PageQuery struct {
	Cursor    *time.Time
	Direction PageDirection
	Limit     int
}

// MessagePage is an ascending slice of messages.
type MessagePage struct {
	Messages []Message
	HasMore  bool
}
