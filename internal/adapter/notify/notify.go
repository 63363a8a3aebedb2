// Package notify delivers notifications off the request path.
package notify

import (
	"context"
	"errors"

	"github.com/heartmarshall/carematch-backend/internal/domain"
)

// ErrUndeliverable marks a notification that will never succeed, such as a
// malformed phone number or a rejected template. Queues drop these instead
// of retrying.
var ErrUndeliverable = errors.New("undeliverable notification")

// Sender delivers a single notification.
type Sender interface {
	Send(ctx context.Context, n domain.Notification) error
}
