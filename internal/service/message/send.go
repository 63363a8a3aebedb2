package message

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/heartmarshall/carematch-backend/internal/domain"
	"github.com/heartmarshall/carematch-backend/pkg/ctxutil"
)

// Send appends a message to a room the caller participates in. The room row
// is locked first, which serializes appends per room so that commit order
// equals timestamp order.
func (s *Service) Send(ctx context.Context, input SendInput) (*domain.Message, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(s.cfg.MaxMessageLength); err != nil {
		return nil, err
	}
	content := strings.TrimSpace(input.Content)

	room, err := s.participantRoom(ctx, input.RoomID, userID)
	if err != nil {
		return nil, fmt.Errorf("get room: %w", err)
	}

	var msg *domain.Message
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.rooms.Touch(txCtx, room.ID); err != nil {
			return fmt.Errorf("touch room: %w", err)
		}
		var insertErr error
		msg, insertErr = s.messages.Insert(txCtx, room.ID, userID, content)
		if insertErr != nil {
			return fmt.Errorf("insert message: %w", insertErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "message sent",
		slog.String("room_id", room.ID.String()),
		slog.String("message_id", msg.ID.String()),
		slog.String("sender_id", userID.String()),
	)

	s.notifyRecipient(ctx, room, userID, content)

	return msg, nil
}

func (s *Service) notifyRecipient(ctx context.Context, room *domain.Room, senderID uuid.UUID, content string) {
	recipientID := room.Counterpart(senderID)

	users, err := s.users.GetByIDs(ctx, []uuid.UUID{senderID, recipientID})
	if err != nil {
		s.log.WarnContext(ctx, "new_message notification skipped",
			slog.String("room_id", room.ID.String()),
			slog.String("error", err.Error()),
		)
		return
	}
	recipient, ok := users[recipientID]
	if !ok {
		return
	}

	s.notifier.Notify(ctx, domain.NewMessage(recipient, users[senderID].Name, content))
}
