// Package caregiver implements the caregiver profile repository using PostgreSQL.
package caregiver

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/heartmarshall/carematch-backend/internal/adapter/postgres"
	"github.com/heartmarshall/carematch-backend/internal/domain"
)

const profileColumns = `user_id, experience_years, certifications, specializations, introduction,
       hourly_rate, is_available, location, created_at, updated_at`

var cardColumns = []string{
	"p.user_id", "p.experience_years", "p.certifications", "p.specializations", "p.introduction",
	"p.hourly_rate", "p.is_available", "p.location", "p.created_at", "p.updated_at",
	"u.name", "u.role", "u.avatar_url",
}

const (
	insertProfileSQL = `
INSERT INTO caregiver_profiles (user_id, introduction, is_available)
VALUES ($1, $2, $3)
RETURNING ` + profileColumns

	getProfileSQL = `SELECT ` + profileColumns + ` FROM caregiver_profiles WHERE user_id = $1`

	upsertProfileSQL = `
INSERT INTO caregiver_profiles
       (user_id, experience_years, certifications, specializations, introduction,
        hourly_rate, is_available, location)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (user_id) DO UPDATE
   SET experience_years = EXCLUDED.experience_years,
       certifications   = EXCLUDED.certifications,
       specializations  = EXCLUDED.specializations,
       introduction     = EXCLUDED.introduction,
       hourly_rate      = EXCLUDED.hourly_rate,
       is_available     = EXCLUDED.is_available,
       location         = EXCLUDED.location,
       updated_at       = now()
RETURNING ` + profileColumns
)

// Repo provides caregiver profile persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new caregiver profile repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Create inserts the starting profile of a caregiver.
func (r *Repo) Create(ctx context.Context, p domain.CaregiverProfile) (*domain.CaregiverProfile, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var row profileRow
	if err := pgxscan.Get(ctx, q, &row, insertProfileSQL, p.UserID, p.Introduction, p.IsAvailable); err != nil {
		return nil, postgres.MapError(err, "caregiver_profile", p.UserID)
	}

	result := row.toDomain()
	return &result, nil
}

// GetByUserID returns the profile of a caregiver.
func (r *Repo) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.CaregiverProfile, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var row profileRow
	if err := pgxscan.Get(ctx, q, &row, getProfileSQL, userID); err != nil {
		return nil, postgres.MapError(err, "caregiver_profile", userID)
	}

	result := row.toDomain()
	return &result, nil
}

// Upsert replaces the editable fields of a profile, creating it when the
// caregiver has none. An unknown user fails with domain.ErrNotFound.
func (r *Repo) Upsert(ctx context.Context, p domain.CaregiverProfile) (*domain.CaregiverProfile, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var row profileRow
	err := pgxscan.Get(ctx, q, &row, upsertProfileSQL,
		p.UserID, p.ExperienceYears, nonNil(p.Certifications), nonNil(p.Specializations),
		p.Introduction, p.HourlyRate, p.IsAvailable, p.Location,
	)
	if err != nil {
		return nil, postgres.MapError(err, "caregiver_profile", p.UserID)
	}

	result := row.toDomain()
	return &result, nil
}

// List returns directory entries matching the filter, most recently
// updated first.
func (r *Repo) List(ctx context.Context, filter domain.CaregiverFilter) ([]domain.CaregiverCard, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	query := postgres.Builder().
		Select(cardColumns...).
		From("caregiver_profiles p").
		Join("users u ON u.id = p.user_id").
		Where(squirrel.Eq{"u.role": string(domain.UserRoleCaregiver)}).
		OrderBy("p.updated_at DESC", "p.user_id")

	if filter.AvailableOnly {
		query = query.Where(squirrel.Eq{"p.is_available": true})
	}
	if filter.Location != "" {
		query = query.Where(squirrel.ILike{"p.location": postgres.ContainsPattern(filter.Location)})
	}
	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build caregiver list query: %w", err)
	}

	var rows []cardRow
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, "caregiver_profile", uuid.Nil)
	}

	cards := make([]domain.CaregiverCard, len(rows))
	for i, row := range rows {
		cards[i] = row.toDomain()
	}
	return cards, nil
}

type profileRow struct {
	UserID          uuid.UUID `db:"user_id"`
	ExperienceYears int       `db:"experience_years"`
	Certifications  []string  `db:"certifications"`
	Specializations []string  `db:"specializations"`
	Introduction    *string   `db:"introduction"`
	HourlyRate      *int      `db:"hourly_rate"`
	IsAvailable     bool      `db:"is_available"`
	Location        *string   `db:"location"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

func (r profileRow) toDomain() domain.CaregiverProfile {
	return domain.CaregiverProfile{
		UserID:          r.UserID,
		ExperienceYears: r.ExperienceYears,
		Certifications:  nonNil(r.Certifications),
		Specializations: nonNil(r.Specializations),
		Introduction:    r.Introduction,
		HourlyRate:      r.HourlyRate,
		IsAvailable:     r.IsAvailable,
		Location:        r.Location,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

type cardRow struct {
	profileRow
	Name      string  `db:"name"`
	Role      string  `db:"role"`
	AvatarURL *string `db:"avatar_url"`
}

func (r cardRow) toDomain() domain.CaregiverCard {
	return domain.CaregiverCard{
		User: domain.PublicUser{
			ID:        r.UserID,
			Name:      r.Name,
			Role:      domain.UserRole(r.Role),
			AvatarURL: r.AvatarURL,
		},
		Profile: r.profileRow.toDomain(),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
