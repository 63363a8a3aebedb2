package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is a marketplace participant. Phone is the notification contact.
type User struct {
	ID        uuid.UUID
	Email     string
	Name      string
	Phone     string
	Role      UserRole
	AvatarURL *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PublicUser is the identity of a counterpart as shown to another user.
type PublicUser struct {
	ID        uuid.UUID
	Name      string
	Role      UserRole
	AvatarURL *string
}

// Public strips contact details.
func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Role: u.Role, AvatarURL: u.AvatarURL}
}

// Identity is the authenticated caller as established by the session provider.
type Identity struct {
	UserID uuid.UUID
	Role   UserRole
}
