package user

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/carematch-backend/internal/domain"
)

type userRepoMock struct {
	CreateFunc  func(ctx context.Context, u domain.User) (*domain.User, error)
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.User, error)

	mu          sync.Mutex
	createCalls []domain.User
	getCalls    []uuid.UUID
}

func (m *userRepoMock) Create(ctx context.Context, u domain.User) (*domain.User, error) {
	m.mu.Lock()
	m.createCalls = append(m.createCalls, u)
	m.mu.Unlock()
	if m.CreateFunc == nil {
		panic("userRepoMock.CreateFunc: method is nil but userRepo.Create was just called")
	}
	return m.CreateFunc(ctx, u)
}

func (m *userRepoMock) CreateCalls() []domain.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createCalls
}

func (m *userRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	m.mu.Lock()
	m.getCalls = append(m.getCalls, id)
	m.mu.Unlock()
	if m.GetByIDFunc == nil {
		panic("userRepoMock.GetByIDFunc: method is nil but userRepo.GetByID was just called")
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *userRepoMock) GetByIDCalls() []uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getCalls
}

type ratingSourceMock struct {
	SummaryFunc func(ctx context.Context, userID uuid.UUID) (domain.RatingSummary, error)
}

func (m *ratingSourceMock) Summary(ctx context.Context, userID uuid.UUID) (domain.RatingSummary, error) {
	if m.SummaryFunc == nil {
		panic("ratingSourceMock.SummaryFunc: method is nil but ratingSource.Summary was just called")
	}
	return m.SummaryFunc(ctx, userID)
}

type caregiverRepoMock struct {
	CreateFunc      func(ctx context.Context, p domain.CaregiverProfile) (*domain.CaregiverProfile, error)
	GetByUserIDFunc func(ctx context.Context, userID uuid.UUID) (*domain.CaregiverProfile, error)
	UpsertFunc      func(ctx context.Context, p domain.CaregiverProfile) (*domain.CaregiverProfile, error)
	ListFunc        func(ctx context.Context, filter domain.CaregiverFilter) ([]domain.CaregiverCard, error)

	mu          sync.Mutex
	createCalls []domain.CaregiverProfile
	upsertCalls []domain.CaregiverProfile
}

func (m *caregiverRepoMock) Create(ctx context.Context, p domain.CaregiverProfile) (*domain.CaregiverProfile, error) {
	m.mu.Lock()
	m.createCalls = append(m.createCalls, p)
	m.mu.Unlock()
	if m.CreateFunc == nil {
		panic("caregiverRepoMock.CreateFunc: method is nil but caregiverRepo.Create was just called")
	}
	return m.CreateFunc(ctx, p)
}

func (m *caregiverRepoMock) CreateCalls() []domain.CaregiverProfile {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createCalls
}

func (m *caregiverRepoMock) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.CaregiverProfile, error) {
	if m.GetByUserIDFunc == nil {
		panic("caregiverRepoMock.GetByUserIDFunc: method is nil but caregiverRepo.GetByUserID was just called")
	}
	return m.GetByUserIDFunc(ctx, userID)
}

func (m *caregiverRepoMock) Upsert(ctx context.Context, p domain.CaregiverProfile) (*domain.CaregiverProfile, error) {
	m.mu.Lock()
	m.upsertCalls = append(m.upsertCalls, p)
	m.mu.Unlock()
	if m.UpsertFunc == nil {
		panic("caregiverRepoMock.UpsertFunc: method is nil but caregiverRepo.Upsert was just called")
	}
	return m.UpsertFunc(ctx, p)
}

func (m *caregiverRepoMock) UpsertCalls() []domain.CaregiverProfile {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.upsertCalls
}

func (m *caregiverRepoMock) List(ctx context.Context, filter domain.CaregiverFilter) ([]domain.CaregiverCard, error) {
	if m.ListFunc == nil {
		panic("caregiverRepoMock.ListFunc: method is nil but caregiverRepo.List was just called")
	}
	return m.ListFunc(ctx, filter)
}

// txManagerMock runs fn inline and counts transactions.
type txManagerMock struct {
	mu    sync.Mutex
	calls int
}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	return fn(ctx)
}

func (m *txManagerMock) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
