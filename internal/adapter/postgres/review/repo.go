// Package review implements the review repository using PostgreSQL.
package review

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

const (
	insertReviewSQL = `
WITH inserted AS (
    INSERT INTO reviews (job_id, reviewer_id, reviewee_id, rating, comment)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING id, job_id, reviewer_id, reviewee_id, rating, comment, created_at
)
SELECT i.id, i.job_id, i.reviewer_id, i.reviewee_id, i.rating, i.comment, i.created_at,
       u.name AS reviewer_name, u.role AS reviewer_role, u.avatar_url AS reviewer_avatar_url
  FROM inserted i
  JOIN users u ON u.id = i.reviewer_id`

	existsReviewSQL = `
SELECT EXISTS (
    SELECT 1 FROM reviews WHERE job_id = $1 AND reviewer_id = $2 AND reviewee_id = $3)`
)

var reviewColumns = []string{
	"r.id", "r.job_id", "r.reviewer_id", "r.reviewee_id", "r.rating", "r.comment", "r.created_at",
	"u.name AS reviewer_name", "u.role AS reviewer_role", "u.avatar_url AS reviewer_avatar_url",
}

// Repo provides review persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new review repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Create inserts a review. A second review for the same (job, reviewer,
// reviewee) triple fails with domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, rv domain.Review) (*domain.Review, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var row reviewRow
	err := pgxscan.Get(ctx, q, &row, insertReviewSQL,
		rv.JobID, rv.ReviewerID, rv.RevieweeID, rv.Rating, rv.Comment,
	)
	if err != nil {
		return nil, postgres.MapError(err, "review for job", rv.JobID)
	}

	result := row.toDomain()
	return &result, nil
}

// Exists reports whether the reviewer already reviewed the reviewee for the job.
func (r *Repo) Exists(ctx context.Context, jobID, reviewerID, revieweeID uuid.UUID) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var ok bool
	if err := q.QueryRow(ctx, existsReviewSQL, jobID, reviewerID, revieweeID).Scan(&ok); err != nil {
		return false, postgres.MapError(err, "review for job", jobID)
	}
	return ok, nil
}

// List returns reviews matching the filter, newest first.
func (r *Repo) List(ctx context.Context, filter domain.ReviewFilter) ([]domain.Review, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	query := applyFilter(postgres.Builder().
		Select(reviewColumns...).
		From("reviews r").
		Join("users u ON u.id = r.reviewer_id").
		OrderBy("r.created_at DESC", "r.id"), filter)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build review list query: %w", err)
	}

	var rows []reviewRow
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, "reviews", uuid.Nil)
	}

	out := make([]domain.Review, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
	}
	return out, nil
}

// Summary aggregates the ratings matching the filter.
func (r *Repo) Summary(ctx context.Context, filter domain.ReviewFilter) (domain.RatingSummary, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	query := applyFilter(postgres.Builder().
		Select("COALESCE(sum(r.rating), 0)", "count(*)").
		From("reviews r"), filter)

	sql, args, err := query.ToSql()
	if err != nil {
		return domain.RatingSummary{}, fmt.Errorf("build review summary query: %w", err)
	}

	var sum, count int
	if err := q.QueryRow(ctx, sql, args...).Scan(&sum, &count); err != nil {
		return domain.RatingSummary{}, postgres.MapError(err, "reviews", uuid.Nil)
	}
	return domain.NewRatingSummary(sum, count), nil
}

func applyFilter(query squirrel.SelectBuilder, filter domain.ReviewFilter) squirrel.SelectBuilder {
	if filter.RevieweeID != nil {
		query = query.Where(squirrel.Eq{"r.reviewee_id": *filter.RevieweeID})
	}
	if filter.JobID != nil {
		query = query.Where(squirrel.Eq{"r.job_id": *filter.JobID})
	}
	return query
}

type reviewRow struct {
	ID                uuid.UUID `db:"id"`
	JobID             uuid.UUID `db:"job_id"`
	ReviewerID        uuid.UUID `db:"reviewer_id"`
	RevieweeID        uuid.UUID `db:"reviewee_id"`
	Rating            int       `db:"rating"`
	Comment           *string   `db:"comment"`
	CreatedAt         time.Time `db:"created_at"`
	ReviewerName      string    `db:"reviewer_name"`
	ReviewerRole      string    `db:"reviewer_role"`
	ReviewerAvatarURL *string   `db:"reviewer_avatar_url"`
}

func (r reviewRow) toDomain() domain.Review {
	return domain.Review{
		ID:         r.ID,
		JobID:      r.JobID,
		ReviewerID: r.ReviewerID,
		RevieweeID: r.RevieweeID,
		Rating:     r.Rating,
		Comment:    r.Comment,
		CreatedAt:  r.CreatedAt,
		Reviewer: domain.PublicUser{
			ID:        r.ReviewerID,
			Name:      r.ReviewerName,
			Role:      domain.UserRole(r.ReviewerRole),
			AvatarURL: r.ReviewerAvatarURL,
		},
	}
}
