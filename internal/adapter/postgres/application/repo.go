// Package application implements the application repository using PostgreSQL.
// State transitions are single conditional statements; a statement that
// matches no row reports domain.ErrNotFound and leaves classification to the
// caller.
package application

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

const appColumns = `id, job_id, caregiver_id, message, status, created_at, updated_at`

var viewColumns = []string{
	"a.id", "a.job_id", "a.caregiver_id", "a.message", "a.status", "a.created_at", "a.updated_at",
	"j.guardian_id", "j.title AS job_title", "j.status AS job_status",
	"u.name AS caregiver_name", "u.role AS caregiver_role", "u.avatar_url AS caregiver_avatar_url",
}

const (
	insertAppSQL = `
INSERT INTO applications (job_id, caregiver_id, message, status)
VALUES ($1, $2, $3, 'pending')
RETURNING ` + appColumns

	// The job row is share-locked first so a decision serializes with a
	// status patch holding the posting FOR UPDATE.
	decideAppSQL = `
WITH j AS (
    SELECT jp.id
      FROM job_postings jp
      JOIN applications ap ON ap.job_id = jp.id
     WHERE ap.id = $1
       AND jp.guardian_id = $2
       FOR SHARE OF jp
)
UPDATE applications a
   SET status = $3, updated_at = now()
  FROM j
 WHERE a.id = $1
   AND a.job_id = j.id
   AND a.status = 'pending'
RETURNING a.id, a.job_id, a.caregiver_id, a.message, a.status, a.created_at, a.updated_at`

	withdrawAppSQL = `
DELETE FROM applications
 WHERE id = $1 AND caregiver_id = $2 AND status = 'pending'`

	hasAcceptedSQL = `SELECT EXISTS (SELECT 1 FROM applications WHERE job_id = $1 AND status = 'accepted')`

	getAcceptedSQL = `SELECT ` + appColumns + ` FROM applications WHERE job_id = $1 AND status = 'accepted'`

	existsForSQL = `SELECT EXISTS (SELECT 1 FROM applications WHERE job_id = $1 AND caregiver_id = $2)`
)

// Repo provides application persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new application repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Create inserts a pending application. A second application for the same
// (job, caregiver) pair fails with domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, jobID, caregiverID uuid.UUID, message *string) (*domain.Application, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var row appRow
	if err := pgxscan.Get(ctx, q, &row, insertAppSQL, jobID, caregiverID, message); err != nil {
		return nil, postgres.MapError(err, "application for job", jobID)
	}

	result := row.toDomain()
	return &result, nil
}

// GetView returns an application joined with its job and caregiver.
func (r *Repo) GetView(ctx context.Context, id uuid.UUID) (*domain.ApplicationView, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := viewQuery().Where(squirrel.Eq{"a.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build application query: %w", err)
	}

	var row viewRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "application", id)
	}

	result := row.toDomain()
	return &result, nil
}

// Decide moves a pending application of a job owned by guardianID to status.
// The job stays share-locked until the surrounding transaction ends.
// It returns domain.ErrNotFound when no row qualifies, and
// domain.ErrAlreadyExists when the job already has an accepted application.
func (r *Repo) Decide(ctx context.Context, id, guardianID uuid.UUID, status domain.ApplicationStatus) (*domain.Application, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var row appRow
	if err := pgxscan.Get(ctx, q, &row, decideAppSQL, id, guardianID, string(status)); err != nil {
		return nil, postgres.MapError(err, "application", id)
	}

	result := row.toDomain()
	return &result, nil
}

// Withdraw deletes a pending application owned by caregiverID. It returns
// domain.ErrNotFound when no row qualifies.
func (r *Repo) Withdraw(ctx context.Context, id, caregiverID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := q.Exec(ctx, withdrawAppSQL, id, caregiverID)
	if err != nil {
		return postgres.MapError(err, "application", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("application %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// List returns applications matching the filter, newest first.
func (r *Repo) List(ctx context.Context, filter domain.ApplicationFilter) ([]domain.ApplicationView, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	query := viewQuery().OrderBy("a.created_at DESC")
	if filter.CaregiverID != nil {
		query = query.Where(squirrel.Eq{"a.caregiver_id": *filter.CaregiverID})
	}
	if filter.GuardianID != nil {
		query = query.Where(squirrel.Eq{"j.guardian_id": *filter.GuardianID})
	}
	if filter.JobID != nil {
		query = query.Where(squirrel.Eq{"a.job_id": *filter.JobID})
	}
	if filter.Status != nil {
		query = query.Where(squirrel.Eq{"a.status": string(*filter.Status)})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build application list query: %w", err)
	}

	var rows []viewRow
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, "application", uuid.Nil)
	}

	out := make([]domain.ApplicationView, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
	}
	return out, nil
}

// HasAccepted reports whether the job has an accepted application.
func (r *Repo) HasAccepted(ctx context.Context, jobID uuid.UUID) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var ok bool
	if err := q.QueryRow(ctx, hasAcceptedSQL, jobID).Scan(&ok); err != nil {
		return false, postgres.MapError(err, "job", jobID)
	}
	return ok, nil
}

// GetAccepted returns the job's accepted application or domain.ErrNotFound.
func (r *Repo) GetAccepted(ctx context.Context, jobID uuid.UUID) (*domain.Application, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var row appRow
	if err := pgxscan.Get(ctx, q, &row, getAcceptedSQL, jobID); err != nil {
		return nil, postgres.MapError(err, "accepted application for job", jobID)
	}

	result := row.toDomain()
	return &result, nil
}

// ExistsFor reports whether caregiverID has applied to jobID.
func (r *Repo) ExistsFor(ctx context.Context, jobID, caregiverID uuid.UUID) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var ok bool
	if err := q.QueryRow(ctx, existsForSQL, jobID, caregiverID).Scan(&ok); err != nil {
		return false, postgres.MapError(err, "job", jobID)
	}
	return ok, nil
}

func viewQuery() squirrel.SelectBuilder {
	return postgres.Builder().
		Select(viewColumns...).
		From("applications a").
		Join("job_postings j ON j.id = a.job_id").
		Join("users u ON u.id = a.caregiver_id")
}

type appRow struct {
	ID          uuid.UUID `db:"id"`
	JobID       uuid.UUID `db:"job_id"`
	CaregiverID uuid.UUID `db:"caregiver_id"`
	Message     *string   `db:"message"`
	Status      string    `db:"status"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (r appRow) toDomain() domain.Application {
	return domain.Application{
		ID:          r.ID,
		JobID:       r.JobID,
		CaregiverID: r.CaregiverID,
		Message:     r.Message,
		Status:      domain.ApplicationStatus(r.Status),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type viewRow struct {
	ID                 uuid.UUID `db:"id"`
	JobID              uuid.UUID `db:"job_id"`
	CaregiverID        uuid.UUID `db:"caregiver_id"`
	Message            *string   `db:"message"`
	Status             string    `db:"status"`
	CreatedAt          time.Time `db:"created_at"`
	UpdatedAt          time.Time `db:"updated_at"`
	GuardianID         uuid.UUID `db:"guardian_id"`
	JobTitle           string    `db:"job_title"`
	JobStatus          string    `db:"job_status"`
	CaregiverName      string    `db:"caregiver_name"`
	CaregiverRole      string    `db:"caregiver_role"`
	CaregiverAvatarURL *string   `db:"caregiver_avatar_url"`
}

func (r viewRow) toDomain() domain.ApplicationView {
	return domain.ApplicationView{
		Application: appRow{
			ID:          r.ID,
			JobID:       r.JobID,
			CaregiverID: r.CaregiverID,
			Message:     r.Message,
			Status:      r.Status,
			CreatedAt:   r.CreatedAt,
			UpdatedAt:   r.UpdatedAt,
		}.toDomain(),
		GuardianID:  r.GuardianID,
		JobTitle:    r.JobTitle,
		JobStatus:   domain.JobStatus(r.JobStatus),
		Caregiver: domain.PublicUser{
			ID:        r.CaregiverID,
			Name:      r.CaregiverName,
			Role:      domain.UserRole(r.CaregiverRole),
			AvatarURL: r.CaregiverAvatarURL,
		},
	}
}
