package testhelper

import (
	"context"
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/carematch-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates a user with a completed profile for the given role.
func SeedUser(t *testing.T, pool *pgxpool.Pool, role domain.UserRole) domain.User {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	user := domain.User{
		ID:        uuid.New(),
		Email:     "testuser-" + suffix + "@example.com",
		Name:      "Test " + suffix,
		Phone:     fmt.Sprintf("010%08d", rand.IntN(100_000_000)),
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO users (id, email, name, phone, role, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		user.ID, user.Email, user.Name, user.Phone, string(user.Role), user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert user: %v", err)
	}

	return user
}

// SeedJob creates a job posting owned by guardianID with the given status.
func SeedJob(t *testing.T, pool *pgxpool.Pool, guardianID uuid.UUID, status domain.JobStatus) domain.Job {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	job := domain.Job{
		ID:          uuid.New(),
		GuardianID:  guardianID,
		Title:       "Daytime care " + suffix,
		Description: "Looking for a caregiver for my father " + suffix,
		Location:    "Seoul Mapo-gu",
		CareType:    "hospital",
		StartDate:   time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC),
		HourlyRate:  15000,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO job_postings (id, guardian_id, title, description, location, care_type,
		                           start_date, hourly_rate, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		job.ID, job.GuardianID, job.Title, job.Description, job.Location, job.CareType,
		job.StartDate, job.HourlyRate, string(job.Status), job.CreatedAt, job.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedJob insert job: %v", err)
	}

	return job
}

// SeedApplication creates an application for jobID by caregiverID.
func SeedApplication(t *testing.T, pool *pgxpool.Pool, jobID, caregiverID uuid.UUID, status domain.ApplicationStatus) domain.Application {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	app := domain.Application{
		ID:          uuid.New(),
		JobID:       jobID,
		CaregiverID: caregiverID,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO applications (id, job_id, caregiver_id, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		app.ID, app.JobID, app.CaregiverID, string(app.Status), app.CreatedAt, app.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedApplication insert application: %v", err)
	}

	return app
}

// SeedRoom creates a chat room between a caregiver and a guardian.
func SeedRoom(t *testing.T, pool *pgxpool.Pool, caregiverID, guardianID uuid.UUID, jobID *uuid.UUID) domain.Room {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	room := domain.Room{
		ID:          uuid.New(),
		CaregiverID: caregiverID,
		GuardianID:  guardianID,
		JobID:       jobID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO chat_rooms (id, caregiver_id, guardian_id, job_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		room.ID, room.CaregiverID, room.GuardianID, room.JobID, room.CreatedAt, room.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedRoom insert room: %v", err)
	}

	return room
}

// SeedMatch creates a guardian, a caregiver, a job with the given status and
// an accepted application linking them.
func SeedMatch(t *testing.T, pool *pgxpool.Pool, status domain.JobStatus) (guardian, caregiver domain.User, job domain.Job) {
	t.Helper()

	guardian = SeedUser(t, pool, domain.UserRoleGuardian)
	caregiver = SeedUser(t, pool, domain.UserRoleCaregiver)
	job = SeedJob(t, pool, guardian.ID, status)
	SeedApplication(t, pool, job.ID, caregiver.ID, domain.ApplicationStatusAccepted)

	return guardian, caregiver, job
}
