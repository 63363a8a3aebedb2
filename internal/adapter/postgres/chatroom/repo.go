// Package chatroom implements the chat room repository using PostgreSQL.
package chatroom

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/heartmarshall/carematch-backend/internal/adapter/postgres"
	"github.com/heartmarshall/carematch-backend/internal/domain"
)

const roomColumns = `id, caregiver_id, guardian_id, job_id, created_at, updated_at`

const (
	insertRoomSQL = `
INSERT INTO chat_rooms (caregiver_id, guardian_id, job_id)
VALUES ($1, $2, $3)
ON CONFLICT (caregiver_id, guardian_id) DO NOTHING
RETURNING ` + roomColumns

	getRoomByPairSQL = `SELECT ` + roomColumns + ` FROM chat_rooms WHERE caregiver_id = $1 AND guardian_id = $2`

	getRoomSQL = `SELECT ` + roomColumns + ` FROM chat_rooms WHERE id = $1`

	// touchRoomSQL takes the room row lock; appends to one room serialize on it.
	touchRoomSQL = `UPDATE chat_rooms SET updated_at = now() WHERE id = $1`

	listSummariesSQL = `
SELECT r.id, r.caregiver_id, r.guardian_id, r.job_id, r.created_at, r.updated_at,
       u.id         AS counterpart_id,
       u.name       AS counterpart_name,
       u.role       AS counterpart_role,
       u.avatar_url AS counterpart_avatar_url,
       j.title      AS job_title,
       lm.id         AS last_message_id,
       lm.sender_id  AS last_message_sender_id,
       lm.content    AS last_message_content,
       lm.is_read    AS last_message_is_read,
       lm.created_at AS last_message_created_at,
       (SELECT count(*)
          FROM messages m
         WHERE m.room_id = r.id AND m.sender_id <> $1 AND NOT m.is_read) AS unread_count
  FROM chat_rooms r
  JOIN users u ON u.id = CASE WHEN r.caregiver_id = $1 THEN r.guardian_id ELSE r.caregiver_id END
  LEFT JOIN job_postings j ON j.id = r.job_id
  LEFT JOIN LATERAL (
        SELECT id, sender_id, content, is_read, created_at
          FROM messages
         WHERE room_id = r.id
         ORDER BY created_at DESC, seq DESC
         LIMIT 1) lm ON true
 WHERE r.%s = $1
 ORDER BY r.updated_at DESC, r.id`
)

// Repo provides chat room persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new chat room repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Ensure returns the room for the pair, creating it if needed. created is
// false when another caller already materialized the room; the existing
// room keeps its original job_id.
func (r *Repo) Ensure(ctx context.Context, caregiverID, guardianID uuid.UUID, jobID *uuid.UUID) (room *domain.Room, created bool, err error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var row roomRow
	err = pgxscan.Get(ctx, q, &row, insertRoomSQL, caregiverID, guardianID, jobID)
	if err == nil {
		result := row.toDomain()
		return &result, true, nil
	}

	if !postgres.IsNoRows(err) {
		return nil, false, postgres.MapError(err, "chat_room for caregiver", caregiverID)
	}

	if err := pgxscan.Get(ctx, q, &row, getRoomByPairSQL, caregiverID, guardianID); err != nil {
		return nil, false, postgres.MapError(err, "chat_room for caregiver", caregiverID)
	}

	result := row.toDomain()
	return &result, false, nil
}

// GetByID returns a room by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Room, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var row roomRow
	if err := pgxscan.Get(ctx, q, &row, getRoomSQL, id); err != nil {
		return nil, postgres.MapError(err, "chat_room", id)
	}

	result := row.toDomain()
	return &result, nil
}

// Touch bumps updated_at and locks the room row until the transaction ends.
func (r *Repo) Touch(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := q.Exec(ctx, touchRoomSQL, id)
	if err != nil {
		return postgres.MapError(err, "chat_room", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("chat_room %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ListSummaries returns the rooms where userID participates on the given
// side, most recently active first, with last message and unread count.
func (r *Repo) ListSummaries(ctx context.Context, userID uuid.UUID, role domain.UserRole) ([]domain.RoomSummary, error) {
	column := "caregiver_id"
	if role == domain.UserRoleGuardian {
		column = "guardian_id"
	}

	q := postgres.QuerierFromCtx(ctx, r.db)

	var rows []summaryRow
	if err := pgxscan.Select(ctx, q, &rows, fmt.Sprintf(listSummariesSQL, column), userID); err != nil {
		return nil, postgres.MapError(err, "chat_rooms of user", userID)
	}

	out := make([]domain.RoomSummary, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
	}
	return out, nil
}

type roomRow struct {
	ID          uuid.UUID  `db:"id"`
	CaregiverID uuid.UUID  `db:"caregiver_id"`
	GuardianID  uuid.UUID  `db:"guardian_id"`
	JobID       *uuid.UUID `db:"job_id"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

func (r roomRow) toDomain() domain.Room {
	return domain.Room{
		ID:          r.ID,
		CaregiverID: r.CaregiverID,
		GuardianID:  r.GuardianID,
		JobID:       r.JobID,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type summaryRow struct {
	ID                   uuid.UUID  `db:"id"`
	CaregiverID          uuid.UUID  `db:"caregiver_id"`
	GuardianID           uuid.UUID  `db:"guardian_id"`
	JobID                *uuid.UUID `db:"job_id"`
	CreatedAt            time.Time  `db:"created_at"`
	UpdatedAt            time.Time  `db:"updated_at"`
	CounterpartID        uuid.UUID  `db:"counterpart_id"`
	CounterpartName      string     `db:"counterpart_name"`
	CounterpartRole      string     `db:"counterpart_role"`
	CounterpartAvatarURL *string    `db:"counterpart_avatar_url"`
	JobTitle             *string    `db:"job_title"`
	LastMessageID        *uuid.UUID `db:"last_message_id"`
	LastMessageSenderID  *uuid.UUID `db:"last_message_sender_id"`
	LastMessageContent   *string    `db:"last_message_content"`
	LastMessageIsRead    *bool      `db:"last_message_is_read"`
	LastMessageCreatedAt *time.Time `db:"last_message_created_at"`
	UnreadCount          int        `db:"unread_count"`
}

func (r summaryRow) toDomain() domain.RoomSummary {
	s := domain.RoomSummary{
		Room: roomRow{
			ID:          r.ID,
			CaregiverID: r.CaregiverID,
			GuardianID:  r.GuardianID,
			JobID:       r.JobID,
			CreatedAt:   r.CreatedAt,
			UpdatedAt:   r.UpdatedAt,
		}.toDomain(),
		Counterpart: domain.PublicUser{
			ID:        r.CounterpartID,
			Name:      r.CounterpartName,
			Role:      domain.UserRole(r.CounterpartRole),
			AvatarURL: r.CounterpartAvatarURL,
		},
		JobTitle:    r.JobTitle,
		UnreadCount: r.UnreadCount,
	}
	if r.LastMessageID != nil {
		s.LastMessage = &domain.Message{
			ID:        *r.LastMessageID,
			RoomID:    r.ID,
			SenderID:  deref(r.LastMessageSenderID),
			Content:   deref(r.LastMessageContent),
			IsRead:    deref(r.LastMessageIsRead),
			CreatedAt: deref(r.LastMessageCreatedAt),
		}
	}
	return s
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
