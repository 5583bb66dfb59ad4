package rest

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/libris-backend/internal/domain"
	"github.com/heartmarshall/libris-backend/internal/service/fine"
)

var _ fineService = &fineServiceMock{}

type fineServiceMock struct {
	ListFunc         func(ctx context.Context, filter domain.FineFilter) ([]domain.Fine, error)
	ListByUserFunc   func(ctx context.Context, userID uuid.UUID) ([]domain.Fine, error)
	GetFunc          func(ctx context.Context, id uuid.UUID) (*domain.Fine, error)
	CreateFunc       func(ctx context.Context, input fine.CreateFineInput) (*domain.Fine, error)
	UpdateStatusFunc func(ctx context.Context, input fine.UpdateStatusInput) (*domain.Fine, error)
	DeleteFunc       func(ctx context.Context, id uuid.UUID) error
	SweepFunc        func(ctx context.Context, userID *uuid.UUID) (domain.SweepResult, error)

	calls struct {
		List []struct {
			Ctx    context.Context
			Filter domain.FineFilter
		}
		ListByUser []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
		Get []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		Create []struct {
			Ctx   context.Context
			Input fine.CreateFineInput
		}
		UpdateStatus []struct {
			Ctx   context.Context
			Input fine.UpdateStatusInput
		}
		Delete []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		Sweep []struct {
			Ctx    context.Context
			UserID *uuid.UUID
		}
	}
	lockList         sync.RWMutex
	lockListByUser   sync.RWMutex
	lockGet          sync.RWMutex
	lockCreate       sync.RWMutex
	lockUpdateStatus sync.RWMutex
	lockDelete       sync.RWMutex
	lockSweep        sync.RWMutex
}

func (mock *fineServiceMock) List(ctx context.Context, filter domain.FineFilter) ([]domain.Fine, error) {
	if mock.ListFunc == nil {
		panic("fineServiceMock.ListFunc: method is nil but fineService.List was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Filter domain.FineFilter
	}{
		Ctx:    ctx,
		Filter: filter,
	}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, filter)
}

func (mock *fineServiceMock) ListCalls() []struct {
	Ctx    context.Context
	Filter domain.FineFilter
} {
	var calls []struct {
		Ctx    context.Context
		Filter domain.FineFilter
	}
	mock.lockList.RLock()
	calls = mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *fineServiceMock) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Fine, error) {
	if mock.ListByUserFunc == nil {
		panic("fineServiceMock.ListByUserFunc: method is nil but fineService.ListByUser was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{
		Ctx:    ctx,
		UserID: userID,
	}
	mock.lockListByUser.Lock()
	mock.calls.ListByUser = append(mock.calls.ListByUser, callInfo)
	mock.lockListByUser.Unlock()
	return mock.ListByUserFunc(ctx, userID)
}

func (mock *fineServiceMock) ListByUserCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	var calls []struct {
		Ctx    context.Context
		UserID uuid.UUID
	}
	mock.lockListByUser.RLock()
	calls = mock.calls.ListByUser
	mock.lockListByUser.RUnlock()
	return calls
}

func (mock *fineServiceMock) Get(ctx context.Context, id uuid.UUID) (*domain.Fine, error) {
	if mock.GetFunc == nil {
		panic("fineServiceMock.GetFunc: method is nil but fineService.Get was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
	}{
		Ctx: ctx,
		Id:  id,
	}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, id)
}

func (mock *fineServiceMock) GetCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	var calls []struct {
		Ctx context.Context
		Id  uuid.UUID
	}
	mock.lockGet.RLock()
	calls = mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *fineServiceMock) Create(ctx context.Context, input fine.CreateFineInput) (*domain.Fine, error) {
	if mock.CreateFunc == nil {
		panic("fineServiceMock.CreateFunc: method is nil but fineService.Create was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input fine.CreateFineInput
	}{
		Ctx:   ctx,
		Input: input,
	}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, input)
}

func (mock *fineServiceMock) CreateCalls() []struct {
	Ctx   context.Context
	Input fine.CreateFineInput
} {
	var calls []struct {
		Ctx   context.Context
		Input fine.CreateFineInput
	}
	mock.lockCreate.RLock()
	calls = mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *fineServiceMock) UpdateStatus(ctx context.Context, input fine.UpdateStatusInput) (*domain.Fine, error) {
	if mock.UpdateStatusFunc == nil {
		panic("fineServiceMock.UpdateStatusFunc: method is nil but fineService.UpdateStatus was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input fine.UpdateStatusInput
	}{
		Ctx:   ctx,
		Input: input,
	}
	mock.lockUpdateStatus.Lock()
	mock.calls.UpdateStatus = append(mock.calls.UpdateStatus, callInfo)
	mock.lockUpdateStatus.Unlock()
	return mock.UpdateStatusFunc(ctx, input)
}

func (mock *fineServiceMock) UpdateStatusCalls() []struct {
	Ctx   context.Context
	Input fine.UpdateStatusInput
} {
	var calls []struct {
		Ctx   context.Context
		Input fine.UpdateStatusInput
	}
	mock.lockUpdateStatus.RLock()
	calls = mock.calls.UpdateStatus
	mock.lockUpdateStatus.RUnlock()
	return calls
}

func (mock *fineServiceMock) Delete(ctx context.Context, id uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("fineServiceMock.DeleteFunc: method is nil but fineService.Delete was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
	}{
		Ctx: ctx,
		Id:  id,
	}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, id)
}

func (mock *fineServiceMock) DeleteCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	var calls []struct {
		Ctx context.Context
		Id  uuid.UUID
	}
	mock.lockDelete.RLock()
	calls = mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}

func (mock *fineServiceMock) Sweep(ctx context.Context, userID *uuid.UUID) (domain.SweepResult, error) {
	if mock.SweepFunc == nil {
		panic("fineServiceMock.SweepFunc: method is nil but fineService.Sweep was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID *uuid.UUID
	}{
		Ctx:    ctx,
		UserID: userID,
	}
	mock.lockSweep.Lock()
	mock.calls.Sweep = append(mock.calls.Sweep, callInfo)
	mock.lockSweep.Unlock()
	return mock.SweepFunc(ctx, userID)
}

func (mock *fineServiceMock) SweepCalls() []struct {
	Ctx    context.Context
	UserID *uuid.UUID
} {
	var calls []struct {
		Ctx    context.Context
		UserID *uuid.UUID
	}
	mock.lockSweep.RLock()
	calls = mock.calls.Sweep
	mock.lockSweep.RUnlock()
	return calls
}
