// Package message implements the per-room message log using PostgreSQL.
package message

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/heartmarshall/carematch-backend/internal/adapter/postgres"
	"github.com/heartmarshall/carematch-backend/internal/domain"
)

const messageColumns = `id, room_id, sender_id, content, is_read, created_at`

const (
	// insertMessageSQL keeps created_at strictly increasing within a room. It
	// must run after the room row is locked so no append can interleave.
	insertMessageSQL = `
INSERT INTO messages (room_id, sender_id, content, created_at)
VALUES ($1, $2, $3,
        GREATEST(clock_timestamp(),
                 (SELECT max(created_at) FROM messages WHERE room_id = $1) + interval '1 microsecond'))
RETURNING ` + messageColumns

	markReadSQL = `
UPDATE messages
   SET is_read = true
 WHERE room_id = $1 AND sender_id <> $2 AND NOT is_read`
)

// Repo provides message persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new message repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Insert appends a message to a room.
func (r *Repo) Insert(ctx context.Context, roomID, senderID uuid.UUID, content string) (*domain.Message, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var row messageRow
	if err := pgxscan.Get(ctx, q, &row, insertMessageSQL, roomID, senderID, content); err != nil {
		return nil, postgres.MapError(err, "message in room", roomID)
	}

	result := row.toDomain()
	return &result, nil
}

// Page returns up to page.Limit messages on the requested side of the
// cursor, always in ascending order. A before-page without cursor is the
// most recent window.
func (r *Repo) Page(ctx context.Context, roomID uuid.UUID, page domain.PageQuery) ([]domain.Message, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	query := postgres.Builder().
		Select(messageColumns).
		From("messages").
		Where(squirrel.Eq{"room_id": roomID}).
		Limit(uint64(page.Limit))

	descending := page.Direction != domain.PageAfter
	if descending {
		if page.Cursor != nil {
			query = query.Where(squirrel.Lt{"created_at": *page.Cursor})
		}
		query = query.OrderBy("created_at DESC", "seq DESC")
	} else {
		if page.Cursor != nil {
			query = query.Where(squirrel.Gt{"created_at": *page.Cursor})
		}
		query = query.OrderBy("created_at ASC", "seq ASC")
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build message page query: %w", err)
	}

	var rows []messageRow
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, "messages of room", roomID)
	}

	out := make([]domain.Message, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
	}
	if descending {
		slices.Reverse(out)
	}
	return out, nil
}

// MarkRead marks every unread message in the room not sent by readerID as
// read and returns how many changed.
func (r *Repo) MarkRead(ctx context.Context, roomID, readerID uuid.UUID) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := q.Exec(ctx, markReadSQL, roomID, readerID)
	if err != nil {
		return 0, postgres.MapError(err, "messages of room", roomID)
	}
	return tag.RowsAffected(), nil
}

type messageRow struct {
	ID        uuid.UUID `db:"id"`
	RoomID    uuid.UUID `db:"room_id"`
	SenderID  uuid.UUID `db:"sender_id"`
	Content   string    `db:"content"`
	IsRead    bool      `db:"is_read"`
	CreatedAt time.Time `db:"created_at"`
}

func (r messageRow) toDomain() domain.Message {
	return domain.Message{
		ID:        r.ID,
		RoomID:    r.RoomID,
		SenderID:  r.SenderID,
		Content:   r.Content,
		IsRead:    r.IsRead,
		CreatedAt: r.CreatedAt.UTC(),
	}
}
