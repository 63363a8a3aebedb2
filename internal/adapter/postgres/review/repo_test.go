package review_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/carematch-backend/internal/adapter/postgres/review"
	"github.com/heartmarshall/carematch-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/carematch-backend/internal/domain"
)

func newRepo(t *testing.T) (*review.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return review.New(pool), pool
}

func TestRepo_Create_HappyPath(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	guardian, caregiver, job := testhelper.SeedMatch(t, pool, domain.JobStatusCompleted)
	comment := "Very attentive and kind"

	got, err := repo.Create(ctx, domain.Review{
		JobID: job.ID, ReviewerID: guardian.ID, RevieweeID: caregiver.ID, Rating: 5, Comment: &comment,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got.ID == uuid.Nil || got.Rating != 5 {
		t.Errorf("review = %+v", got)
	}
	if got.Reviewer.Name != guardian.Name || got.Reviewer.Role != domain.UserRoleGuardian {
		t.Errorf("Reviewer = %+v", got.Reviewer)
	}

	exists, err := repo.Exists(ctx, job.ID, guardian.ID, caregiver.ID)
	if err != nil || !exists {
		t.Fatalf("Exists = %v, %v", exists, err)
	}
	reverse, err := repo.Exists(ctx, job.ID, caregiver.ID, guardian.ID)
	if err != nil || reverse {
		t.Fatalf("reverse direction Exists = %v, %v", reverse, err)
	}
}

func TestRepo_Create_DuplicateTriple(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	guardian, caregiver, job := testhelper.SeedMatch(t, pool, domain.JobStatusCompleted)
	rv := domain.Review{JobID: job.ID, ReviewerID: guardian.ID, RevieweeID: caregiver.ID, Rating: 4}

	if _, err := repo.Create(ctx, rv); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	if _, err := repo.Create(ctx, rv); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("second Create error = %v, want ErrAlreadyExists", err)
	}

	// The opposite direction is a different triple.
	if _, err := repo.Create(ctx, domain.Review{
		JobID: job.ID, ReviewerID: caregiver.ID, RevieweeID: guardian.ID, Rating: 3,
	}); err != nil {
		t.Fatalf("reverse Create: %v", err)
	}
}

func TestRepo_Create_Constraints(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	guardian, caregiver, job := testhelper.SeedMatch(t, pool, domain.JobStatusCompleted)

	tests := []struct {
		name string
		rv   domain.Review
	}{
		{"rating too high", domain.Review{JobID: job.ID, ReviewerID: guardian.ID, RevieweeID: caregiver.ID, Rating: 6}},
		{"rating zero", domain.Review{JobID: job.ID, ReviewerID: guardian.ID, RevieweeID: caregiver.ID, Rating: 0}},
		{"self review", domain.Review{JobID: job.ID, ReviewerID: guardian.ID, RevieweeID: guardian.ID, Rating: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := repo.Create(ctx, tt.rv); !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("Create error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestRepo_ListAndSummary(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	caregiver := testhelper.SeedUser(t, pool, domain.UserRoleCaregiver)
	ratings := []int{5, 4, 4}
	var jobIDs []uuid.UUID
	for _, rating := range ratings {
		g := testhelper.SeedUser(t, pool, domain.UserRoleGuardian)
		j := testhelper.SeedJob(t, pool, g.ID, domain.JobStatusCompleted)
		testhelper.SeedApplication(t, pool, j.ID, caregiver.ID, domain.ApplicationStatusAccepted)
		if _, err := repo.Create(ctx, domain.Review{
			JobID: j.ID, ReviewerID: g.ID, RevieweeID: caregiver.ID, Rating: rating,
		}); err != nil {
			t.Fatalf("Create: %v", err)
		}
		jobIDs = append(jobIDs, j.ID)
	}

	list, err := repo.List(ctx, domain.ReviewFilter{RevieweeID: &caregiver.ID})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("List returned %d reviews, want 3", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i].CreatedAt.After(list[i-1].CreatedAt) {
			t.Fatalf("reviews not newest first at %d", i)
		}
	}

	sum, err := repo.Summary(ctx, domain.ReviewFilter{RevieweeID: &caregiver.ID})
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if sum.TotalCount != 3 || sum.AverageRating != 4.3 {
		t.Errorf("Summary = %+v, want {4.3 3}", sum)
	}

	byJob, err := repo.List(ctx, domain.ReviewFilter{JobID: &jobIDs[0]})
	if err != nil {
		t.Fatalf("List by job: %v", err)
	}
	if len(byJob) != 1 || byJob[0].Rating != 5 {
		t.Errorf("List by job = %+v", byJob)
	}

	nobody := uuid.New()
	empty, err := repo.Summary(ctx, domain.ReviewFilter{RevieweeID: &nobody})
	if err != nil {
		t.Fatalf("Summary empty: %v", err)
	}
	if empty != (domain.RatingSummary{}) {
		t.Errorf("empty Summary = %+v", empty)
	}
}
