package message

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/carematch-backend/internal/domain"
	"github.com/heartmarshall/carematch-backend/pkg/ctxutil"
)

// Page returns an ascending window of a room's log. Reading backwards (which
// includes the initial load without a cursor) marks the counterpart's
// messages as read; polling forwards with After does not.
func (s *Service) Page(ctx context.Context, input PageInput) (*domain.MessagePage, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	room, err := s.participantRoom(ctx, input.RoomID, userID)
	if err != nil {
		return nil, fmt.Errorf("get room: %w", err)
	}

	q := input.query(s.cfg.DefaultPageSize, s.cfg.MaxPageSize)

	msgs, err := s.messages.Page(ctx, room.ID, q)
	if err != nil {
		return nil, fmt.Errorf("page messages: %w", err)
	}

	if q.Direction == domain.PageBefore {
		marked, err := s.messages.MarkRead(ctx, room.ID, userID)
		if err != nil {
			s.log.WarnContext(ctx, "mark read failed",
				slog.String("room_id", room.ID.String()),
				slog.String("error", err.Error()),
			)
		} else if marked > 0 {
			s.log.DebugContext(ctx, "messages marked read",
				slog.String("room_id", room.ID.String()),
				slog.Int64("count", marked),
			)
		}
	}

	if msgs == nil {
		msgs = []domain.Message{}
	}

	return &domain.MessagePage{
		Messages: msgs,
		HasMore:  len(msgs) == q.Limit,
	}, nil
}
