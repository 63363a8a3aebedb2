package application

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/carematch-backend/internal/domain"
)

// memStore is an in-memory stand-in for the applications and job_postings
// tables. It enforces the same conditional transitions and unique
// constraints as the SQL it replaces.
type memStore struct {
	mu    sync.Mutex
	jobs  map[uuid.UUID]domain.Job
	apps  map[uuid.UUID]domain.Application
	users map[uuid.UUID]domain.User
}

func newMemStore() *memStore {
	return &memStore{
		jobs:  map[uuid.UUID]domain.Job{},
		apps:  map[uuid.UUID]domain.Application{},
		users: map[uuid.UUID]domain.User{},
	}
}

func (m *memStore) addUser(role domain.UserRole, name string) domain.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := domain.User{ID: uuid.New(), Name: name, Role: role, Phone: "010-1234-5678"}
	m.users[u.ID] = u
	return u
}

func (m *memStore) addJob(guardianID uuid.UUID, status domain.JobStatus) domain.Job {
	m.mu.Lock()
	defer m.mu.Unlock()
	j := domain.Job{ID: uuid.New(), GuardianID: guardianID, Title: "Night care in Mapo", Status: status}
	m.jobs[j.ID] = j
	return j
}

// appRepo

func (m *memStore) Create(_ context.Context, jobID, caregiverID uuid.UUID, message *string) (*domain.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.apps {
		if a.JobID == jobID && a.CaregiverID == caregiverID {
			return nil, domain.ErrAlreadyExists
		}
	}
	now := time.Now()
	a := domain.Application{ID: uuid.New(), JobID: jobID, CaregiverID: caregiverID, Message: message,
		Status: domain.ApplicationStatusPending, CreatedAt: now, UpdatedAt: now}
	m.apps[a.ID] = a
	return &a, nil
}

func (m *memStore) GetView(_ context.Context, id uuid.UUID) (*domain.ApplicationView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.apps[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	j := m.jobs[a.JobID]
	return &domain.ApplicationView{Application: a, GuardianID: j.GuardianID, JobTitle: j.Title, JobStatus: j.Status,
		Caregiver: m.users[a.CaregiverID].Public()}, nil
}

func (m *memStore) Decide(_ context.Context, id, guardianID uuid.UUID, status domain.ApplicationStatus) (*domain.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.apps[id]
	if !ok || m.jobs[a.JobID].GuardianID != guardianID || a.Status != domain.ApplicationStatusPending {
		return nil, domain.ErrNotFound
	}
	if status == domain.ApplicationStatusAccepted {
		for _, other := range m.apps {
			if other.JobID == a.JobID && other.Status == domain.ApplicationStatusAccepted {
				return nil, domain.ErrAlreadyExists
			}
		}
	}
	a.Status = status
	a.UpdatedAt = time.Now()
	m.apps[id] = a
	return &a, nil
}

func (m *memStore) Withdraw(_ context.Context, id, caregiverID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.apps[id]
	if !ok || a.CaregiverID != caregiverID || a.Status != domain.ApplicationStatusPending {
		return domain.ErrNotFound
	}
	delete(m.apps, id)
	return nil
}

func (m *memStore) List(_ context.Context, filter domain.ApplicationFilter) ([]domain.ApplicationView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.ApplicationView
	for _, a := range m.apps {
		j := m.jobs[a.JobID]
		if filter.CaregiverID != nil && a.CaregiverID != *filter.CaregiverID {
			continue
		}
		if filter.GuardianID != nil && j.GuardianID != *filter.GuardianID {
			continue
		}
		if filter.JobID != nil && a.JobID != *filter.JobID {
			continue
		}
		out = append(out, domain.ApplicationView{Application: a, GuardianID: j.GuardianID, JobTitle: j.Title, JobStatus: j.Status})
	}
	return out, nil
}

// jobRepo

type memJobs struct{ *memStore }

func (m memJobs) GetByID(_ context.Context, id uuid.UUID) (*domain.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &j, nil
}

func (m memJobs) GetForShare(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	return m.GetByID(ctx, id)
}

// userRepo

type memUsers struct{ *memStore }

func (m memUsers) GetByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[uuid.UUID]domain.User, len(ids))
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}
