package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/carematch-backend/internal/domain"
	"github.com/heartmarshall/carematch-backend/internal/service/message"
)

type roomLister interface {
	ListRooms(ctx context.Context) ([]domain.RoomSummary, error)
}

type messageService interface {
	Send(ctx context.Context, input message.SendInput) (*domain.Message, error)
	Page(ctx context.Context, input message.PageInput) (*domain.MessagePage, error)
}

// ChatHandler serves chat rooms and their message logs.
type ChatHandler struct {
	rooms    roomLister
	messages messageService
	log      *slog.Logger
}

// NewChatHandler creates a ChatHandler.
func NewChatHandler(log *slog.Logger, rooms roomLister, messages messageService) *ChatHandler {
	return &ChatHandler{rooms: rooms, messages: messages, log: log.With("handler", "chat")}
}

// ListRooms handles GET /chat/rooms.
func (h *ChatHandler) ListRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.rooms.ListRooms(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	out := make([]roomDTO, 0, len(rooms))
	for _, s := range rooms {
		out = append(out, toRoomDTO(s))
	}
	writeJSON(w, http.StatusOK, map[string]any{"rooms": out})
}

// ListMessages handles GET /chat/rooms/{id}/messages?before=&after=&limit=.
func (h *ChatHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	input, err := pageInput(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	page, err := h.messages.Page(r.Context(), input)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	out := make([]messageDTO, 0, len(page.Messages))
	for _, m := range page.Messages {
		out = append(out, toMessageDTO(m))
	}
	writeJSON(w, http.StatusOK, map[string]any{"messages": out, "hasMore": page.HasMore})
}

func pageInput(r *http.Request) (message.PageInput, error) {
	roomID, err := pathUUID(r, "id")
	if err != nil {
		return message.PageInput{}, err
	}
	before, err := queryTime(r, "before")
	if err != nil {
		return message.PageInput{}, err
	}
	after, err := queryTime(r, "after")
	if err != nil {
		return message.PageInput{}, err
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		return message.PageInput{}, err
	}
	return message.PageInput{RoomID: roomID, Before: before, After: after, Limit: limit}, nil
}

// SendMessage handles POST /chat/rooms/{id}/messages.
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	roomID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	var req sendMessageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	msg, err := h.messages.Send(r.Context(), message.SendInput{RoomID: roomID, Content: req.Content})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"message": toMessageDTO(*msg)})
}
