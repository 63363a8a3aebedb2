// Package job implements the job posting repository using PostgreSQL.
package job

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

const jobColumns = `id, guardian_id, title, description, location, care_type, start_date, end_date,
hourly_rate, patient_age, patient_gender, patient_condition, status, created_at, updated_at`

const (
	insertJobSQL = `
INSERT INTO job_postings (guardian_id, title, description, location, care_type, start_date, end_date,
                          hourly_rate, patient_age, patient_gender, patient_condition, status)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
RETURNING ` + jobColumns

	getJobSQL          = `SELECT ` + jobColumns + ` FROM job_postings WHERE id = $1`
	getJobForShareSQL  = getJobSQL + ` FOR SHARE`
	getJobForUpdateSQL = getJobSQL + ` FOR UPDATE`

	updateJobSQL = `
UPDATE job_postings
   SET title = $2, description = $3, location = $4, care_type = $5, start_date = $6, end_date = $7,
       hourly_rate = $8, patient_age = $9, patient_gender = $10, patient_condition = $11, status = $12,
       updated_at = now()
 WHERE id = $1
RETURNING ` + jobColumns

	deleteJobSQL = `DELETE FROM job_postings WHERE id = $1`

	listByGuardianSQL = `SELECT ` + jobColumns + ` FROM job_postings WHERE guardian_id = $1 ORDER BY created_at DESC`
)

// Repo provides job posting persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new job repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Create inserts a posting and returns it with generated fields.
func (r *Repo) Create(ctx context.Context, j domain.Job) (*domain.Job, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var row jobRow
	err := pgxscan.Get(ctx, q, &row, insertJobSQL,
		j.GuardianID, j.Title, j.Description, j.Location, j.CareType, j.StartDate, j.EndDate,
		j.HourlyRate, j.Patient.Age, genderArg(j.Patient.Gender), j.Patient.Condition, string(j.Status),
	)
	if err != nil {
		return nil, postgres.MapError(err, "job", j.GuardianID)
	}

	result := row.toDomain()
	return &result, nil
}

// GetByID returns a posting by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	return r.get(ctx, getJobSQL, id)
}

// GetForShare reads a posting and holds a share lock until the surrounding
// transaction ends, so its status cannot change underneath the caller.
func (r *Repo) GetForShare(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	return r.get(ctx, getJobForShareSQL, id)
}

// GetForUpdate reads a posting and locks it for modification.
func (r *Repo) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	return r.get(ctx, getJobForUpdateSQL, id)
}

func (r *Repo) get(ctx context.Context, sql string, id uuid.UUID) (*domain.Job, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var row jobRow
	if err := pgxscan.Get(ctx, q, &row, sql, id); err != nil {
		return nil, postgres.MapError(err, "job", id)
	}

	result := row.toDomain()
	return &result, nil
}

// Update persists every mutable field of j.
func (r *Repo) Update(ctx context.Context, j domain.Job) (*domain.Job, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var row jobRow
	err := pgxscan.Get(ctx, q, &row, updateJobSQL,
		j.ID, j.Title, j.Description, j.Location, j.CareType, j.StartDate, j.EndDate,
		j.HourlyRate, j.Patient.Age, genderArg(j.Patient.Gender), j.Patient.Condition, string(j.Status),
	)
	if err != nil {
		return nil, postgres.MapError(err, "job", j.ID)
	}

	result := row.toDomain()
	return &result, nil
}

// Delete removes a posting. Applications cascade; chat rooms keep their row
// with job_id cleared.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := q.Exec(ctx, deleteJobSQL, id)
	if err != nil {
		return postgres.MapError(err, "job", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("job %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// List returns postings matching the filter, newest first.
func (r *Repo) List(ctx context.Context, filter domain.JobFilter) ([]domain.Job, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	query := postgres.Builder().
		Select(jobColumns).
		From("job_postings").
		OrderBy("created_at DESC")

	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"status": string(filter.Status)})
	}
	if filter.Location != "" {
		query = query.Where(squirrel.ILike{"location": postgres.ContainsPattern(filter.Location)})
	}
	if filter.CareType != "" {
		query = query.Where(squirrel.Eq{"care_type": filter.CareType})
	}
	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build job list query: %w", err)
	}

	var rows []jobRow
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, "job", uuid.Nil)
	}

	return toDomainJobs(rows), nil
}

// ListByGuardian returns a guardian's own postings, newest first.
func (r *Repo) ListByGuardian(ctx context.Context, guardianID uuid.UUID) ([]domain.Job, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var rows []jobRow
	if err := pgxscan.Select(ctx, q, &rows, listByGuardianSQL, guardianID); err != nil {
		return nil, postgres.MapError(err, "job", guardianID)
	}

	return toDomainJobs(rows), nil
}

type jobRow struct {
	ID               uuid.UUID  `db:"id"`
	GuardianID       uuid.UUID  `db:"guardian_id"`
	Title            string     `db:"title"`
	Description      string     `db:"description"`
	Location         string     `db:"location"`
	CareType         string     `db:"care_type"`
	StartDate        time.Time  `db:"start_date"`
	EndDate          *time.Time `db:"end_date"`
	HourlyRate       int        `db:"hourly_rate"`
	PatientAge       *int       `db:"patient_age"`
	PatientGender    *string    `db:"patient_gender"`
	PatientCondition *string    `db:"patient_condition"`
	Status           string     `db:"status"`
	CreatedAt        time.Time  `db:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at"`
}

func (r jobRow) toDomain() domain.Job {
	var gender *domain.PatientGender
	if r.PatientGender != nil {
		g := domain.PatientGender(*r.PatientGender)
		gender = &g
	}
	return domain.Job{
		ID:          r.ID,
		GuardianID:  r.GuardianID,
		Title:       r.Title,
		Description: r.Description,
		Location:    r.Location,
		CareType:    r.CareType,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		HourlyRate:  r.HourlyRate,
		Patient: domain.PatientInfo{
			Age:       r.PatientAge,
			Gender:    gender,
			Condition: r.PatientCondition,
		},
		Status:    domain.JobStatus(r.Status),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func toDomainJobs(rows []jobRow) []domain.Job {
	jobs := make([]domain.Job, len(rows))
	for i, row := range rows {
		jobs[i] = row.toDomain()
	}
	return jobs
}

func genderArg(g *domain.PatientGender) *string {
	if g == nil {
		return nil
	}
	s := string(*g)
	return &s
}
