package user

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/carematch-backend/internal/domain"
	"github.com/heartmarshall/carematch-backend/pkg/ctxutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

func newTestService(users userRepo, ratings ratingSource) *Service {
	return newTestServiceWith(users, &caregiverRepoMock{CreateFunc: echoProfile}, ratings, &txManagerMock{})
}

func newTestServiceWith(users userRepo, caregivers caregiverRepo, ratings ratingSource, tx txManager) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewService(logger, users, caregivers, ratings, tx)
}

func ptr[T any](v T) *T { return &v }

func validInput() CompleteProfileInput {
	return CompleteProfileInput{
		Email: "Kim@Example.com ",
		Name:  " Kim Minji ",
		Phone: "010-1234-5678",
		Role:  domain.UserRoleCaregiver,
	}
}

func echoCreate(_ context.Context, u domain.User) (*domain.User, error) {
	u.CreatedAt = time.Now().UTC()
	u.UpdatedAt = u.CreatedAt
	return &u, nil
}

func echoProfile(_ context.Context, p domain.CaregiverProfile) (*domain.CaregiverProfile, error) {
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = p.CreatedAt
	return &p, nil
}

func caregiverCtx(id uuid.UUID) context.Context {
	ctx := ctxutil.WithUserID(context.Background(), id)
	return ctxutil.WithRole(ctx, domain.UserRoleCaregiver.String())
}

// ---------------------------------------------------------------------------
// CompleteProfile tests
// ---------------------------------------------------------------------------

func TestService_CompleteProfile_Success(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	ctx := ctxutil.WithUserID(context.Background(), userID)

	users := &userRepoMock{CreateFunc: echoCreate}
	svc := newTestService(users, nil)

	user, err := svc.CompleteProfile(ctx, validInput())

	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	assert.Equal(t, "kim@example.com", user.Email)
	assert.Equal(t, "Kim Minji", user.Name)
	assert.Equal(t, "01012345678", user.Phone)
	assert.Equal(t, domain.UserRoleCaregiver, user.Role)
	assert.Nil(t, user.AvatarURL)
	assert.Len(t, users.CreateCalls(), 1)
}

func TestService_CompleteProfile_SessionRoleMustMatch(t *testing.T) {
	t.Parallel()

	ctx := ctxutil.WithUserID(context.Background(), uuid.New())
	ctx = ctxutil.WithRole(ctx, domain.UserRoleGuardian.String())

	users := &userRepoMock{CreateFunc: echoCreate}
	svc := newTestService(users, nil)

	_, err := svc.CompleteProfile(ctx, validInput())

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "role", ve.Errors[0].Field)
	assert.Empty(t, users.CreateCalls())
}

func TestService_CompleteProfile_MatchingSessionRole(t *testing.T) {
	t.Parallel()

	ctx := ctxutil.WithUserID(context.Background(), uuid.New())
	ctx = ctxutil.WithRole(ctx, domain.UserRoleCaregiver.String())

	svc := newTestService(&userRepoMock{CreateFunc: echoCreate}, nil)

	_, err := svc.CompleteProfile(ctx, validInput())
	require.NoError(t, err)
}

func TestService_CompleteProfile_AlreadyCompleted(t *testing.T) {
	t.Parallel()

	ctx := ctxutil.WithUserID(context.Background(), uuid.New())
	users := &userRepoMock{
		CreateFunc: func(_ context.Context, _ domain.User) (*domain.User, error) {
			return nil, domain.ErrAlreadyExists
		},
	}
	svc := newTestService(users, nil)

	_, err := svc.CompleteProfile(ctx, validInput())

	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestService_CompleteProfile_RepoError(t *testing.T) {
	t.Parallel()

	ctx := ctxutil.WithUserID(context.Background(), uuid.New())
	repoErr := errors.New("connection reset")
	users := &userRepoMock{
		CreateFunc: func(_ context.Context, _ domain.User) (*domain.User, error) {
			return nil, repoErr
		},
	}
	svc := newTestService(users, nil)

	_, err := svc.CompleteProfile(ctx, validInput())

	require.ErrorIs(t, err, repoErr)
	assert.NotErrorIs(t, err, domain.ErrConflict)
}

func TestService_CompleteProfile_InvalidInput(t *testing.T) {
	t.Parallel()

	ctx := ctxutil.WithUserID(context.Background(), uuid.New())
	users := &userRepoMock{}
	svc := newTestService(users, nil)

	in := validInput()
	in.Phone = "02-123-4567"

	_, err := svc.CompleteProfile(ctx, in)

	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, users.CreateCalls())
}

func TestService_CompleteProfile_NoUserIDInContext(t *testing.T) {
	t.Parallel()

	svc := newTestService(&userRepoMock{}, nil)

	user, err := svc.CompleteProfile(context.Background(), validInput())

	require.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Nil(t, user)
}

// ---------------------------------------------------------------------------
// Get tests
// ---------------------------------------------------------------------------

func TestService_Get_Success(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	stored := domain.User{
		ID:        userID,
		Email:     "park@example.com",
		Name:      "Park Jisoo",
		Phone:     "01098765432",
		Role:      domain.UserRoleGuardian,
		AvatarURL: ptr("https://cdn.example.com/a.png"),
	}

	users := &userRepoMock{
		GetByIDFunc: func(_ context.Context, id uuid.UUID) (*domain.User, error) {
			assert.Equal(t, userID, id)
			return &stored, nil
		},
	}
	ratings := &ratingSourceMock{
		SummaryFunc: func(_ context.Context, id uuid.UUID) (domain.RatingSummary, error) {
			assert.Equal(t, userID, id)
			return domain.RatingSummary{AverageRating: 4.5, TotalCount: 2}, nil
		},
	}
	svc := newTestService(users, ratings)

	profile, err := svc.Get(context.Background(), userID)

	require.NoError(t, err)
	assert.Equal(t, stored.Public(), profile.User)
	assert.Equal(t, 4.5, profile.Rating.AverageRating)
	assert.Equal(t, 2, profile.Rating.TotalCount)
	assert.Len(t, users.GetByIDCalls(), 1)
}

func TestService_Get_NotFound(t *testing.T) {
	t.Parallel()

	users := &userRepoMock{
		GetByIDFunc: func(_ context.Context, _ uuid.UUID) (*domain.User, error) {
			return nil, domain.ErrNotFound
		},
	}
	svc := newTestService(users, &ratingSourceMock{})

	profile, err := svc.Get(context.Background(), uuid.New())

	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, profile)
}

func TestService_Get_RatingError(t *testing.T) {
	t.Parallel()

	users := &userRepoMock{
		GetByIDFunc: func(_ context.Context, id uuid.UUID) (*domain.User, error) {
			return &domain.User{ID: id, Name: "Lee", Role: domain.UserRoleCaregiver}, nil
		},
	}
	ratings := &ratingSourceMock{
		SummaryFunc: func(_ context.Context, _ uuid.UUID) (domain.RatingSummary, error) {
			return domain.RatingSummary{}, domain.ErrTransient
		},
	}
	svc := newTestService(users, ratings)

	_, err := svc.Get(context.Background(), uuid.New())

	require.ErrorIs(t, err, domain.ErrTransient)
}

func TestService_CompleteProfile_CaregiverGetsProfileInTx(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	ctx := ctxutil.WithUserID(context.Background(), userID)
	caregivers := &caregiverRepoMock{CreateFunc: echoProfile}
	tx := &txManagerMock{}
	svc := newTestServiceWith(&userRepoMock{CreateFunc: echoCreate}, caregivers, nil, tx)

	in := validInput()
	in.Introduction = ptr("  Night shifts welcome  ")

	_, err := svc.CompleteProfile(ctx, in)

	require.NoError(t, err)
	assert.Equal(t, 1, tx.Calls())
	require.Len(t, caregivers.CreateCalls(), 1)
	created := caregivers.CreateCalls()[0]
	assert.Equal(t, userID, created.UserID)
	assert.True(t, created.IsAvailable)
	require.NotNil(t, created.Introduction)
	assert.Equal(t, "Night shifts welcome", *created.Introduction)
}

func TestService_CompleteProfile_GuardianHasNoCaregiverProfile(t *testing.T) {
	t.Parallel()

	ctx := ctxutil.WithUserID(context.Background(), uuid.New())
	caregivers := &caregiverRepoMock{}
	svc := newTestServiceWith(&userRepoMock{CreateFunc: echoCreate}, caregivers, nil, &txManagerMock{})

	in := validInput()
	in.Role = domain.UserRoleGuardian
	in.Introduction = ptr("ignored")

	_, err := svc.CompleteProfile(ctx, in)

	require.NoError(t, err)
	assert.Empty(t, caregivers.CreateCalls())
}

func TestService_CompleteProfile_CaregiverProfileErrorFails(t *testing.T) {
	t.Parallel()

	ctx := ctxutil.WithUserID(context.Background(), uuid.New())
	caregivers := &caregiverRepoMock{
		CreateFunc: func(_ context.Context, _ domain.CaregiverProfile) (*domain.CaregiverProfile, error) {
			return nil, domain.ErrTransient
		},
	}
	svc := newTestServiceWith(&userRepoMock{CreateFunc: echoCreate}, caregivers, nil, &txManagerMock{})

	user, err := svc.CompleteProfile(ctx, validInput())

	require.ErrorIs(t, err, domain.ErrTransient)
	assert.Nil(t, user)
}

func TestService_Get_IncludesCaregiverProfile(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	users := &userRepoMock{
		GetByIDFunc: func(_ context.Context, id uuid.UUID) (*domain.User, error) {
			return &domain.User{ID: id, Name: "Lee", Role: domain.UserRoleCaregiver}, nil
		},
	}
	ratings := &ratingSourceMock{
		SummaryFunc: func(_ context.Context, _ uuid.UUID) (domain.RatingSummary, error) {
			return domain.RatingSummary{}, nil
		},
	}
	caregivers := &caregiverRepoMock{
		GetByUserIDFunc: func(_ context.Context, id uuid.UUID) (*domain.CaregiverProfile, error) {
			return &domain.CaregiverProfile{UserID: id, ExperienceYears: 7, IsAvailable: true}, nil
		},
	}
	svc := newTestServiceWith(users, caregivers, ratings, &txManagerMock{})

	profile, err := svc.Get(context.Background(), userID)

	require.NoError(t, err)
	require.NotNil(t, profile.Caregiver)
	assert.Equal(t, 7, profile.Caregiver.ExperienceYears)
}

func TestService_Get_CaregiverWithoutProfile(t *testing.T) {
	t.Parallel()

	users := &userRepoMock{
		GetByIDFunc: func(_ context.Context, id uuid.UUID) (*domain.User, error) {
			return &domain.User{ID: id, Name: "Lee", Role: domain.UserRoleCaregiver}, nil
		},
	}
	ratings := &ratingSourceMock{
		SummaryFunc: func(_ context.Context, _ uuid.UUID) (domain.RatingSummary, error) {
			return domain.RatingSummary{}, nil
		},
	}
	caregivers := &caregiverRepoMock{
		GetByUserIDFunc: func(_ context.Context, _ uuid.UUID) (*domain.CaregiverProfile, error) {
			return nil, domain.ErrNotFound
		},
	}
	svc := newTestServiceWith(users, caregivers, ratings, &txManagerMock{})

	profile, err := svc.Get(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.Nil(t, profile.Caregiver)
}

// ---------------------------------------------------------------------------
// Caregiver profile tests
// ---------------------------------------------------------------------------

func TestService_CaregiverProfile_GuardianForbidden(t *testing.T) {
	t.Parallel()

	ctx := ctxutil.WithUserID(context.Background(), uuid.New())
	ctx = ctxutil.WithRole(ctx, domain.UserRoleGuardian.String())
	svc := newTestServiceWith(&userRepoMock{}, &caregiverRepoMock{}, nil, &txManagerMock{})

	_, err := svc.CaregiverProfile(ctx)
	require.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.UpdateCaregiverProfile(ctx, UpdateCaregiverProfileInput{})
	require.ErrorIs(t, err, domain.ErrForbidden)
}

func TestService_CaregiverProfile_NoSession(t *testing.T) {
	t.Parallel()

	svc := newTestServiceWith(&userRepoMock{}, &caregiverRepoMock{}, nil, &txManagerMock{})

	_, err := svc.CaregiverProfile(context.Background())
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestService_UpdateCaregiverProfile_Success(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	caregivers := &caregiverRepoMock{
		UpsertFunc: func(_ context.Context, p domain.CaregiverProfile) (*domain.CaregiverProfile, error) {
			return &p, nil
		},
	}
	svc := newTestServiceWith(&userRepoMock{}, caregivers, nil, &txManagerMock{})

	got, err := svc.UpdateCaregiverProfile(caregiverCtx(userID), UpdateCaregiverProfileInput{
		ExperienceYears: 5,
		Certifications:  []string{" 요양보호사 ", "요양보호사", ""},
		HourlyRate:      ptr(12000),
		Location:        ptr("  "),
	})

	require.NoError(t, err)
	assert.Equal(t, userID, got.UserID)
	assert.Equal(t, []string{"요양보호사"}, got.Certifications)
	assert.Empty(t, got.Specializations)
	assert.True(t, got.IsAvailable)
	assert.Nil(t, got.Location)
	assert.Len(t, caregivers.UpsertCalls(), 1)
}

func TestService_UpdateCaregiverProfile_Validation(t *testing.T) {
	t.Parallel()

	tooMany := make([]string, domain.MaxProfileTags+1)
	for i := range tooMany {
		tooMany[i] = "tag"
	}

	tests := []struct {
		name  string
		input UpdateCaregiverProfileInput
		field string
	}{
		{"negative experience", UpdateCaregiverProfileInput{ExperienceYears: -1}, "experience_years"},
		{"experience too high", UpdateCaregiverProfileInput{ExperienceYears: domain.MaxExperienceYears + 1}, "experience_years"},
		{"rate below minimum", UpdateCaregiverProfileInput{HourlyRate: ptr(domain.MinHourlyRate - 1)}, "hourly_rate"},
		{"too many certifications", UpdateCaregiverProfileInput{Certifications: tooMany}, "certifications"},
		{"nul in specialization", UpdateCaregiverProfileInput{Specializations: []string{"de\x00mentia"}}, "specializations"},
		{"nul in introduction", UpdateCaregiverProfileInput{Introduction: ptr("hello\x00")}, "introduction"},
		{"nul in location", UpdateCaregiverProfileInput{Location: ptr("Seoul\x00")}, "location"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			caregivers := &caregiverRepoMock{}
			svc := newTestServiceWith(&userRepoMock{}, caregivers, nil, &txManagerMock{})

			_, err := svc.UpdateCaregiverProfile(caregiverCtx(uuid.New()), tt.input)

			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Errors[0].Field)
			assert.Empty(t, caregivers.UpsertCalls())
		})
	}
}

func TestService_ListCaregivers_LimitsAndAreas(t *testing.T) {
	t.Parallel()

	var gotFilter domain.CaregiverFilter
	caregivers := &caregiverRepoMock{
		ListFunc: func(_ context.Context, f domain.CaregiverFilter) ([]domain.CaregiverCard, error) {
			gotFilter = f
			return []domain.CaregiverCard{
				{Profile: domain.CaregiverProfile{Location: ptr("Seoul Mapo-gu")}},
				{Profile: domain.CaregiverProfile{}},
				{Profile: domain.CaregiverProfile{Location: ptr("Busan")}},
				{Profile: domain.CaregiverProfile{Location: ptr("Seoul Gangnam-gu")}},
			}, nil
		},
	}
	svc := newTestServiceWith(&userRepoMock{}, caregivers, nil, &txManagerMock{})

	dir, err := svc.ListCaregivers(context.Background(), domain.CaregiverFilter{Location: " Seoul ", Limit: 500})

	require.NoError(t, err)
	assert.Equal(t, "Seoul", gotFilter.Location)
	assert.Equal(t, maxDirectoryLimit, gotFilter.Limit)
	assert.Len(t, dir.Caregivers, 4)
	assert.Equal(t, []string{"Seoul", "Busan"}, dir.Locations)
}

func TestService_ListCaregivers_DefaultLimit(t *testing.T) {
	t.Parallel()

	caregivers := &caregiverRepoMock{
		ListFunc: func(_ context.Context, f domain.CaregiverFilter) ([]domain.CaregiverCard, error) {
			assert.Equal(t, defaultDirectoryLimit, f.Limit)
			return nil, nil
		},
	}
	svc := newTestServiceWith(&userRepoMock{}, caregivers, nil, &txManagerMock{})

	dir, err := svc.ListCaregivers(context.Background(), domain.CaregiverFilter{})

	require.NoError(t, err)
	assert.NotNil(t, dir.Locations)
}
