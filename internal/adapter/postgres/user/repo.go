// Package user implements the User repository using PostgreSQL.
package user

import (
	"context"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/heartmarshall/carematch-backend/internal/adapter/postgres"
	"github.com/heartmarshall/carematch-backend/internal/domain"
)

const userColumns = `id, email, name, phone, role, avatar_url, created_at, updated_at`

const (
	insertUserSQL = `
INSERT INTO users (id, email, name, phone, role, avatar_url)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + userColumns

	getUserByIDSQL = `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	getUsersByIDsSQL = `SELECT ` + userColumns + ` FROM users WHERE id = ANY($1)`
)

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new user repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Create inserts a user with a completed profile. A second insert for the
// same id or email fails with domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, u domain.User) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var row userRow
	err := pgxscan.Get(ctx, q, &row, insertUserSQL,
		u.ID, u.Email, u.Name, u.Phone, string(u.Role), u.AvatarURL,
	)
	if err != nil {
		return nil, postgres.MapError(err, "user", u.ID)
	}

	result := row.toDomain()
	return &result, nil
}

// GetByID returns a user by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var row userRow
	if err := pgxscan.Get(ctx, q, &row, getUserByIDSQL, id); err != nil {
		return nil, postgres.MapError(err, "user", id)
	}

	result := row.toDomain()
	return &result, nil
}

// GetByIDs returns the users found among ids, keyed by id. Missing ids are absent.
func (r *Repo) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.User, error) {
	out := make(map[uuid.UUID]domain.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	q := postgres.QuerierFromCtx(ctx, r.db)

	var rows []userRow
	if err := pgxscan.Select(ctx, q, &rows, getUsersByIDsSQL, ids); err != nil {
		return nil, postgres.MapError(err, "user", uuid.Nil)
	}

	for _, row := range rows {
		out[row.ID] = row.toDomain()
	}
	return out, nil
}

type userRow struct {
	ID        uuid.UUID `db:"id"`
	Email     string    `db:"email"`
	Name      string    `db:"name"`
	Phone     string    `db:"phone"`
	Role      string    `db:"role"`
	AvatarURL *string   `db:"avatar_url"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r userRow) toDomain() domain.User {
	return domain.User{
		ID:        r.ID,
		Email:     r.Email,
		Name:      r.Name,
		Phone:     r.Phone,
		Role:      domain.UserRole(r.Role),
		AvatarURL: r.AvatarURL,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
