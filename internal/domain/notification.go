package domain

// Notification is a fire-and-forget message to one recipient. Vars fill the
// template selected by Kind.
type Notification struct {
	Kind      NotificationKind  `json:"kind"`
	Recipient Recipient         `json:"recipient"`
	Vars      map[string]string `json:"vars,omitempty"`
}

// Recipient is the addressable contact of a user.
type Recipient struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Phone  string `json:"phone"`
}

// RecipientOf builds the contact for a user.
func RecipientOf(u User) Recipient {
	return Recipient{UserID: u.ID.String(), Name: u.Name, Phone: u.Phone}
}

// MessagePreviewLength is the number of runes of a message quoted in a
// new_message notification.
const MessagePreviewLength = 50

// ApplicationReceived tells a guardian that a caregiver applied to their job.
func ApplicationReceived(guardian User, caregiverName, jobTitle string) Notification {
	return Notification{
		Kind:      NotificationApplicationReceived,
		Recipient: RecipientOf(guardian),
		Vars:      map[string]string{"caregiverName": caregiverName, "jobTitle": jobTitle},
	}
}

// ApplicationAccepted tells a caregiver their application was accepted.
func ApplicationAccepted(caregiver User, guardianName, jobTitle string) Notification {
	return Notification{
		Kind:      NotificationApplicationAccepted,
		Recipient: RecipientOf(caregiver),
		Vars:      map[string]string{"guardianName": guardianName, "jobTitle": jobTitle},
	}
}

// ApplicationRejected tells a caregiver their application was rejected.
func ApplicationRejected(caregiver User, jobTitle string) Notification {
	return Notification{
		Kind:      NotificationApplicationRejected,
		Recipient: RecipientOf(caregiver),
		Vars:      map[string]string{"jobTitle": jobTitle},
	}
}

// NewMessage tells a room participant that the other side wrote to them.
func NewMessage(recipient User, senderName, content string) Notification {
	return Notification{
		Kind:      NotificationNewMessage,
		Recipient: RecipientOf(recipient),
		Vars:      map[string]string{"senderName": senderName, "messagePreview": preview(content, MessagePreviewLength)},
	}
}

// ReviewRequest asks one party of a completed job to review the other.
func ReviewRequest(recipient User, otherUserName, jobTitle string) Notification {
	return Notification{
		Kind:      NotificationReviewRequest,
		Recipient: RecipientOf(recipient),
		Vars:      map[string]string{"otherUserName": otherUserName, "jobTitle": jobTitle},
	}
}

func preview(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
