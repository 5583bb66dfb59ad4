package fine

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/libris-backend/internal/domain"
)

var _ fineRepo = &fineRepoMock{}

type fineRepoMock struct {
	ListFunc          func(ctx context.Context, filter domain.FineFilter) ([]domain.Fine, error)
	GetByIDFunc       func(ctx context.Context, id uuid.UUID) (*domain.Fine, error)
	CreateFunc        func(ctx context.Context, f *domain.Fine) (*domain.Fine, error)
	UpdateStatusFunc  func(ctx context.Context, id uuid.UUID, status domain.FineStatus) (*domain.Fine, error)
	DeleteFunc        func(ctx context.Context, id uuid.UUID) (*domain.Fine, error)
	UpsertOverdueFunc func(ctx context.Context, charge domain.OverdueCharge, now time.Time) (*domain.Fine, domain.ChargeOutcome, error)

	calls struct {
		List []struct {
			Ctx    context.Context
			Filter domain.FineFilter
		}
		GetByID []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		Create []struct {
			Ctx context.Context
			F   *domain.Fine
		}
		UpdateStatus []struct {
			Ctx    context.Context
			Id     uuid.UUID
			Status domain.FineStatus
		}
		Delete []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		UpsertOverdue []struct {
			Ctx    context.Context
			Charge domain.OverdueCharge
			Now    time.Time
		}
	}
	lockList          sync.RWMutex
	lockGetByID       sync.RWMutex
	lockCreate        sync.RWMutex
	lockUpdateStatus  sync.RWMutex
	lockDelete        sync.RWMutex
	lockUpsertOverdue sync.RWMutex
}

func (mock *fineRepoMock) List(ctx context.Context, filter domain.FineFilter) ([]domain.Fine, error) {
	if mock.ListFunc == nil {
		panic("fineRepoMock.ListFunc: method is nil but fineRepo.List was just called")
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

func (mock *fineRepoMock) ListCalls() []struct {
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

func (mock *fineRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Fine, error) {
	if mock.GetByIDFunc == nil {
		panic("fineRepoMock.GetByIDFunc: method is nil but fineRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
	}{
		Ctx: ctx,
		Id:  id,
	}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *fineRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	var calls []struct {
		Ctx context.Context
		Id  uuid.UUID
	}
	mock.lockGetByID.RLock()
	calls = mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *fineRepoMock) Create(ctx context.Context, f *domain.Fine) (*domain.Fine, error) {
	if mock.CreateFunc == nil {
		panic("fineRepoMock.CreateFunc: method is nil but fineRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		F   *domain.Fine
	}{
		Ctx: ctx,
		F:   f,
	}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, f)
}

func (mock *fineRepoMock) CreateCalls() []struct {
	Ctx context.Context
	F   *domain.Fine
} {
	var calls []struct {
		Ctx context.Context
		F   *domain.Fine
	}
	mock.lockCreate.RLock()
	calls = mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *fineRepoMock) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.FineStatus) (*domain.Fine, error) {
	if mock.UpdateStatusFunc == nil {
		panic("fineRepoMock.UpdateStatusFunc: method is nil but fineRepo.UpdateStatus was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Id     uuid.UUID
		Status domain.FineStatus
	}{
		Ctx:    ctx,
		Id:     id,
		Status: status,
	}
	mock.lockUpdateStatus.Lock()
	mock.calls.UpdateStatus = append(mock.calls.UpdateStatus, callInfo)
	mock.lockUpdateStatus.Unlock()
	return mock.UpdateStatusFunc(ctx, id, status)
}

func (mock *fineRepoMock) UpdateStatusCalls() []struct {
	Ctx    context.Context
	Id     uuid.UUID
	Status domain.FineStatus
} {
	var calls []struct {
		Ctx    context.Context
		Id     uuid.UUID
		Status domain.FineStatus
	}
	mock.lockUpdateStatus.RLock()
	calls = mock.calls.UpdateStatus
	mock.lockUpdateStatus.RUnlock()
	return calls
}

func (mock *fineRepoMock) Delete(ctx context.Context, id uuid.UUID) (*domain.Fine, error) {
	if mock.DeleteFunc == nil {
		panic("fineRepoMock.DeleteFunc: method is nil but fineRepo.Delete was just called")
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

func (mock *fineRepoMock) DeleteCalls() []struct {
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

func (mock *fineRepoMock) UpsertOverdue(ctx context.Context, charge domain.OverdueCharge, now time.Time) (*domain.Fine, domain.ChargeOutcome, error) {
	if mock.UpsertOverdueFunc == nil {
		panic("fineRepoMock.UpsertOverdueFunc: method is nil but fineRepo.UpsertOverdue was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Charge domain.OverdueCharge
		Now    time.Time
	}{
		Ctx:    ctx,
		Charge: charge,
		Now:    now,
	}
	mock.lockUpsertOverdue.Lock()
	mock.calls.UpsertOverdue = append(mock.calls.UpsertOverdue, callInfo)
	mock.lockUpsertOverdue.Unlock()
	return mock.UpsertOverdueFunc(ctx, charge, now)
}

func (mock *fineRepoMock) UpsertOverdueCalls() []struct {
	Ctx    context.Context
	Charge domain.OverdueCharge
	Now    time.Time
} {
	var calls []struct {
		Ctx    context.Context
		Charge domain.OverdueCharge
		Now    time.Time
	}
	mock.lockUpsertOverdue.RLock()
	calls = mock.calls.UpsertOverdue
	mock.lockUpsertOverdue.RUnlock()
	return calls
}
