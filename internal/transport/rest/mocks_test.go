package rest

import (
	"context"

	"github.com/google/uuid"
	"github.com/heartmarshall/carematch-backend/internal/domain"
	"github.com/heartmarshall/carematch-backend/internal/service/application"
	"github.com/heartmarshall/carematch-backend/internal/service/dashboard"
	"github.com/heartmarshall/carematch-backend/internal/service/job"
	"github.com/heartmarshall/carematch-backend/internal/service/message"
	"github.com/heartmarshall/carematch-backend/internal/service/review"
	"github.com/heartmarshall/carematch-backend/internal/service/user"
)

var (
	_ jobService         = &jobServiceMock{}
	_ applicationService = &applicationServiceMock{}
	_ roomLister         = &roomListerMock{}
	_ messageService     = &messageServiceMock{}
	_ reviewService      = &reviewServiceMock{}
	_ userService        = &userServiceMock{}
	_ dashboardService   = &dashboardServiceMock{}
)

type jobServiceMock struct {
	CreateFunc  func(ctx context.Context, input job.CreateInput) (*domain.Job, error)
	GetFunc     func(ctx context.Context, jobID uuid.UUID) (*job.JobDetail, error)
	ListFunc    func(ctx context.Context, filter domain.JobFilter) ([]domain.Job, error)
	ListOwnFunc func(ctx context.Context) ([]domain.JobWithApplications, error)
	PatchFunc   func(ctx context.Context, input job.PatchInput) (*domain.Job, error)
	DeleteFunc  func(ctx context.Context, jobID uuid.UUID) error
}

func (m *jobServiceMock) Create(ctx context.Context, input job.CreateInput) (*domain.Job, error) {
	if m.CreateFunc == nil {
		panic("jobServiceMock.CreateFunc: method is nil but jobService.Create was just called")
	}
	return m.CreateFunc(ctx, input)
}

func (m *jobServiceMock) Get(ctx context.Context, jobID uuid.UUID) (*job.JobDetail, error) {
	if m.GetFunc == nil {
		panic("jobServiceMock.GetFunc: method is nil but jobService.Get was just called")
	}
	return m.GetFunc(ctx, jobID)
}

func (m *jobServiceMock) List(ctx context.Context, filter domain.JobFilter) ([]domain.Job, error) {
	if m.ListFunc == nil {
		panic("jobServiceMock.ListFunc: method is nil but jobService.List was just called")
	}
	return m.ListFunc(ctx, filter)
}

func (m *jobServiceMock) ListOwn(ctx context.Context) ([]domain.JobWithApplications, error) {
	if m.ListOwnFunc == nil {
		panic("jobServiceMock.ListOwnFunc: method is nil but jobService.ListOwn was just called")
	}
	return m.ListOwnFunc(ctx)
}

func (m *jobServiceMock) Patch(ctx context.Context, input job.PatchInput) (*domain.Job, error) {
	if m.PatchFunc == nil {
		panic("jobServiceMock.PatchFunc: method is nil but jobService.Patch was just called")
	}
	return m.PatchFunc(ctx, input)
}

func (m *jobServiceMock) Delete(ctx context.Context, jobID uuid.UUID) error {
	if m.DeleteFunc == nil {
		panic("jobServiceMock.DeleteFunc: method is nil but jobService.Delete was just called")
	}
	return m.DeleteFunc(ctx, jobID)
}

type applicationServiceMock struct {
	SubmitFunc   func(ctx context.Context, input application.SubmitInput) (*domain.Application, error)
	DecideFunc   func(ctx context.Context, input application.DecideInput) (*domain.Application, error)
	WithdrawFunc func(ctx context.Context, applicationID uuid.UUID) error
	GetFunc      func(ctx context.Context, applicationID uuid.UUID) (*domain.ApplicationView, error)
	ListFunc     func(ctx context.Context, jobID *uuid.UUID) ([]domain.ApplicationView, error)
}

func (m *applicationServiceMock) Submit(ctx context.Context, input application.SubmitInput) (*domain.Application, error) {
	if m.SubmitFunc == nil {
		panic("applicationServiceMock.SubmitFunc: method is nil but applicationService.Submit was just called")
	}
	return m.SubmitFunc(ctx, input)
}

func (m *applicationServiceMock) Decide(ctx context.Context, input application.DecideInput) (*domain.Application, error) {
	if m.DecideFunc == nil {
		panic("applicationServiceMock.DecideFunc: method is nil but applicationService.Decide was just called")
	}
	return m.DecideFunc(ctx, input)
}

func (m *applicationServiceMock) Withdraw(ctx context.Context, applicationID uuid.UUID) error {
	if m.WithdrawFunc == nil {
		panic("applicationServiceMock.WithdrawFunc: method is nil but applicationService.Withdraw was just called")
	}
	return m.WithdrawFunc(ctx, applicationID)
}

func (m *applicationServiceMock) Get(ctx context.Context, applicationID uuid.UUID) (*domain.ApplicationView, error) {
	if m.GetFunc == nil {
		panic("applicationServiceMock.GetFunc: method is nil but applicationService.Get was just called")
	}
	return m.GetFunc(ctx, applicationID)
}

func (m *applicationServiceMock) List(ctx context.Context, jobID *uuid.UUID) ([]domain.ApplicationView, error) {
	if m.ListFunc == nil {
		panic("applicationServiceMock.ListFunc: method is nil but applicationService.List was just called")
	}
	return m.ListFunc(ctx, jobID)
}

type roomListerMock struct {
	ListRoomsFunc func(ctx context.Context) ([]domain.RoomSummary, error)
}

func (m *roomListerMock) ListRooms(ctx context.Context) ([]domain.RoomSummary, error) {
	if m.ListRoomsFunc == nil {
		panic("roomListerMock.ListRoomsFunc: method is nil but roomLister.ListRooms was just called")
	}
	return m.ListRoomsFunc(ctx)
}

type messageServiceMock struct {
	SendFunc func(ctx context.Context, input message.SendInput) (*domain.Message, error)
	PageFunc func(ctx context.Context, input message.PageInput) (*domain.MessagePage, error)
}

func (m *messageServiceMock) Send(ctx context.Context, input message.SendInput) (*domain.Message, error) {
	if m.SendFunc == nil {
		panic("messageServiceMock.SendFunc: method is nil but messageService.Send was just called")
	}
	return m.SendFunc(ctx, input)
}

func (m *messageServiceMock) Page(ctx context.Context, input message.PageInput) (*domain.MessagePage, error) {
	if m.PageFunc == nil {
		panic("messageServiceMock.PageFunc: method is nil but messageService.Page was just called")
	}
	return m.PageFunc(ctx, input)
}

type reviewServiceMock struct {
	EligibilityFunc func(ctx context.Context, jobID uuid.UUID) (*domain.ReviewEligibility, error)
	SubmitFunc      func(ctx context.Context, input review.SubmitInput) (*domain.Review, error)
	ListFunc        func(ctx context.Context, filter domain.ReviewFilter) (*review.ReviewList, error)
}

func (m *reviewServiceMock) Eligibility(ctx context.Context, jobID uuid.UUID) (*domain.ReviewEligibility, error) {
	if m.EligibilityFunc == nil {
		panic("reviewServiceMock.EligibilityFunc: method is nil but reviewService.Eligibility was just called")
	}
	return m.EligibilityFunc(ctx, jobID)
}

func (m *reviewServiceMock) Submit(ctx context.Context, input review.SubmitInput) (*domain.Review, error) {
	if m.SubmitFunc == nil {
		panic("reviewServiceMock.SubmitFunc: method is nil but reviewService.Submit was just called")
	}
	return m.SubmitFunc(ctx, input)
}

func (m *reviewServiceMock) List(ctx context.Context, filter domain.ReviewFilter) (*review.ReviewList, error) {
	if m.ListFunc == nil {
		panic("reviewServiceMock.ListFunc: method is nil but reviewService.List was just called")
	}
	return m.ListFunc(ctx, filter)
}

type userServiceMock struct {
	CompleteProfileFunc        func(ctx context.Context, input user.CompleteProfileInput) (*domain.User, error)
	GetFunc                    func(ctx context.Context, userID uuid.UUID) (*user.Profile, error)
	CaregiverProfileFunc       func(ctx context.Context) (*domain.CaregiverProfile, error)
	UpdateCaregiverProfileFunc func(ctx context.Context, input user.UpdateCaregiverProfileInput) (*domain.CaregiverProfile, error)
	ListCaregiversFunc         func(ctx context.Context, filter domain.CaregiverFilter) (*user.Directory, error)
}

func (m *userServiceMock) CaregiverProfile(ctx context.Context) (*domain.CaregiverProfile, error) {
	if m.CaregiverProfileFunc == nil {
		panic("userServiceMock.CaregiverProfileFunc: method is nil but userService.CaregiverProfile was just called")
	}
	return m.CaregiverProfileFunc(ctx)
}

func (m *userServiceMock) UpdateCaregiverProfile(ctx context.Context, input user.UpdateCaregiverProfileInput) (*domain.CaregiverProfile, error) {
	if m.UpdateCaregiverProfileFunc == nil {
		panic("userServiceMock.UpdateCaregiverProfileFunc: method is nil but userService.UpdateCaregiverProfile was just called")
	}
	return m.UpdateCaregiverProfileFunc(ctx, input)
}

func (m *userServiceMock) ListCaregivers(ctx context.Context, filter domain.CaregiverFilter) (*user.Directory, error) {
	if m.ListCaregiversFunc == nil {
		panic("userServiceMock.ListCaregiversFunc: method is nil but userService.ListCaregivers was just called")
	}
	return m.ListCaregiversFunc(ctx, filter)
}

func (m *userServiceMock) CompleteProfile(ctx context.Context, input user.CompleteProfileInput) (*domain.User, error) {
	if m.CompleteProfileFunc == nil {
		panic("userServiceMock.CompleteProfileFunc: method is nil but userService.CompleteProfile was just called")
	}
	return m.CompleteProfileFunc(ctx, input)
}

func (m *userServiceMock) Get(ctx context.Context, userID uuid.UUID) (*user.Profile, error) {
	if m.GetFunc == nil {
		panic("userServiceMock.GetFunc: method is nil but userService.Get was just called")
	}
	return m.GetFunc(ctx, userID)
}

type dashboardServiceMock struct {
	GuardianFunc  func(ctx context.Context) (*dashboard.GuardianDashboard, error)
	CaregiverFunc func(ctx context.Context) (*dashboard.CaregiverDashboard, error)
}

func (m *dashboardServiceMock) Guardian(ctx context.Context) (*dashboard.GuardianDashboard, error) {
	if m.GuardianFunc == nil {
		panic("dashboardServiceMock.GuardianFunc: method is nil but dashboardService.Guardian was just called")
	}
	return m.GuardianFunc(ctx)
}

func (m *dashboardServiceMock) Caregiver(ctx context.Context) (*dashboard.CaregiverDashboard, error) {
	if m.CaregiverFunc == nil {
		panic("dashboardServiceMock.CaregiverFunc: method is nil but dashboardService.Caregiver was just called")
	}
	return m.CaregiverFunc(ctx)
}
