package notify

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/carematch-backend/internal/domain"
)

// LogSender writes notifications to the log instead of delivering them.
type LogSender struct {
	log *slog.Logger
}

// NewLogSender creates a LogSender.
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{log: logger.With("adapter", "notify.log")}
}

// Send logs n at info level.
func (s *LogSender) Send(ctx context.Context, n domain.Notification) error {
	attrs := []any{
		slog.String("kind", n.Kind.String()),
		slog.String("user_id", n.Recipient.UserID),
	}
	for k, v := range n.Vars {
		attrs = append(attrs, slog.String("var."+k, v))
	}
	s.log.InfoContext(ctx, "notification", attrs...)
	return nil
}
