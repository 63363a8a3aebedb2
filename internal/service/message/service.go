package message

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/heartmarshall/carematch-backend/internal/config"
	"github.com/heartmarshall/carematch-backend/internal/domain"
)

type roomRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Room, error)
	Touch(ctx context.Context, id uuid.UUID) error
}

type messageRepo interface {
	Insert(ctx context.Context, roomID, senderID uuid.UUID, content string) (*domain.Message, error)
	Page(ctx context.Context, roomID uuid.UUID, page domain.PageQuery) ([]domain.Message, error)
	MarkRead(ctx context.Context, roomID, readerID uuid.UUID) (int64, error)
}

type userRepo interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.User, error)
}

type notifier interface {
	Notify(ctx context.Context, n domain.Notification)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service appends to and pages through a room's message log.
type Service struct {
	rooms    roomRepo
	messages messageRepo
	users    userRepo
	notifier notifier
	tx       txManager
	cfg      config.ChatConfig
	log      *slog.Logger
}

// NewService creates a new Message service.
func NewService(
	log *slog.Logger,
	rooms roomRepo,
	messages messageRepo,
	users userRepo,
	notifier notifier,
	tx txManager,
	cfg config.ChatConfig,
) *Service {
	return &Service{
		rooms:    rooms,
		messages: messages,
		users:    users,
		notifier: notifier,
		tx:       tx,
		cfg:      cfg,
		log:      log.With("service", "message"),
	}
}

// participantRoom loads a room and checks that userID belongs to it.
func (s *Service) participantRoom(ctx context.Context, roomID, userID uuid.UUID) (*domain.Room, error) {
	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if !room.HasParticipant(userID) {
		return nil, domain.ErrForbidden
	}
	return room, nil
}
