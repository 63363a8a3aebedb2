package message

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/heartmarshall/carematch-backend/internal/domain"
)

// SendInput holds the parameters for appending a message.
type SendInput struct {
	RoomID  uuid.UUID
	Content string
}

// Validate checks all fields and collects all errors. maxLen counts code points.
func (i SendInput) Validate(maxLen int) error {
	var errs []domain.FieldError

	if i.RoomID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "room_id", Message: "required"})
	}
	content := strings.TrimSpace(i.Content)
	if content == "" {
		errs = append(errs, domain.FieldError{Field: "content", Message: "required"})
	}
	if utf8.RuneCountInString(content) > maxLen {
		errs = append(errs, domain.FieldError{Field: "content", Message: fmt.Sprintf("max %d characters", maxLen)})
	}
	errs = domain.CheckText(errs, "content", content)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// PageInput selects a page of a room's log. At most one cursor may be set;
// with neither, the most recent messages are returned.
type PageInput struct {
	RoomID uuid.UUID
	Before *time.Time
	After  *time.Time
	Limit  int
}

// Validate checks all fields and collects all errors.
func (i PageInput) Validate() error {
	var errs []domain.FieldError

	if i.RoomID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "room_id", Message: "required"})
	}
	if i.Before != nil && i.After != nil {
		errs = append(errs, domain.FieldError{Field: "cursor", Message: "before and after are mutually exclusive"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// query resolves the input into a storage query with a clamped limit.
func (i PageInput) query(defaultLimit, maxLimit int) domain.PageQuery {
	limit := i.Limit
	switch {
	case limit == 0:
		limit = defaultLimit
	case limit < 1:
		limit = 1
	case limit > maxLimit:
		limit = maxLimit
	}

	if i.After != nil {
		return domain.PageQuery{Cursor: i.After, Direction: domain.PageAfter, Limit: limit}
	}
	return domain.PageQuery{Cursor: i.Before, Direction: domain.PageBefore, Limit: limit}
}
