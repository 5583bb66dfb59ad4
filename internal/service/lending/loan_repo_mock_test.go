package lending

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/libris-backend/internal/domain"
)

var _ loanRepo = &loanRepoMock{}

type loanRepoMock struct {
	ListFunc             func(ctx context.Context, filter domain.LoanFilter) ([]domain.Loan, error)
	GetByIDFunc          func(ctx context.Context, id uuid.UUID) (*domain.Loan, error)
	GetByIDForUpdateFunc func(ctx context.Context, id uuid.UUID) (*domain.Loan, error)
	HasActiveFunc        func(ctx context.Context, userID uuid.UUID, bookID uuid.UUID) (bool, error)
	CreateFunc           func(ctx context.Context, l *domain.Loan) (*domain.Loan, error)
	MarkReturnedFunc     func(ctx context.Context, id uuid.UUID, returnedAt time.Time) (bool, error)
	UpdateDueDateFunc    func(ctx context.Context, id uuid.UUID, dueAt time.Time) error
	DeleteFunc           func(ctx context.Context, id uuid.UUID) (*domain.Loan, error)

	calls struct {
		List []struct {
			Ctx    context.Context
			Filter domain.LoanFilter
		}
		GetByID []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		GetByIDForUpdate []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		HasActive []struct {
			Ctx    context.Context
			UserID uuid.UUID
			BookID uuid.UUID
		}
		Create []struct {
			Ctx context.Context
			L   *domain.Loan
		}
		MarkReturned []struct {
			Ctx        context.Context
			Id         uuid.UUID
			ReturnedAt time.Time
		}
		UpdateDueDate []struct {
			Ctx   context.Context
			Id    uuid.UUID
			DueAt time.Time
		}
		Delete []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
	}
	lockList             sync.RWMutex
	lockGetByID          sync.RWMutex
	lockGetByIDForUpdate sync.RWMutex
	lockHasActive        sync.RWMutex
	lockCreate           sync.RWMutex
	lockMarkReturned     sync.RWMutex
	lockUpdateDueDate    sync.RWMutex
	lockDelete           sync.RWMutex
}

func (mock *loanRepoMock) List(ctx context.Context, filter domain.LoanFilter) ([]domain.Loan, error) {
	if mock.ListFunc == nil {
		panic("loanRepoMock.ListFunc: method is nil but loanRepo.List was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Filter domain.LoanFilter
	}{
		Ctx:    ctx,
		Filter: filter,
	}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, filter)
}

func (mock *loanRepoMock) ListCalls() []struct {
	Ctx    context.Context
	Filter domain.LoanFilter
} {
	var calls []struct {
		Ctx    context.Context
		Filter domain.LoanFilter
	}
	mock.lockList.RLock()
	calls = mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *loanRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Loan, error) {
	if mock.GetByIDFunc == nil {
		panic("loanRepoMock.GetByIDFunc: method is nil but loanRepo.GetByID was just called")
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

func (mock *loanRepoMock) GetByIDCalls() []struct {
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

func (mock *loanRepoMock) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Loan, error) {
	if mock.GetByIDForUpdateFunc == nil {
		panic("loanRepoMock.GetByIDForUpdateFunc: method is nil but loanRepo.GetByIDForUpdate was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
	}{
		Ctx: ctx,
		Id:  id,
	}
	mock.lockGetByIDForUpdate.Lock()
	mock.calls.GetByIDForUpdate = append(mock.calls.GetByIDForUpdate, callInfo)
	mock.lockGetByIDForUpdate.Unlock()
	return mock.GetByIDForUpdateFunc(ctx, id)
}

func (mock *loanRepoMock) GetByIDForUpdateCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	var calls []struct {
		Ctx context.Context
		Id  uuid.UUID
	}
	mock.lockGetByIDForUpdate.RLock()
	calls = mock.calls.GetByIDForUpdate
	mock.lockGetByIDForUpdate.RUnlock()
	return calls
}

func (mock *loanRepoMock) HasActive(ctx context.Context, userID uuid.UUID, bookID uuid.UUID) (bool, error) {
	if mock.HasActiveFunc == nil {
		panic("loanRepoMock.HasActiveFunc: method is nil but loanRepo.HasActive was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		BookID uuid.UUID
	}{
		Ctx:    ctx,
		UserID: userID,
		BookID: bookID,
	}
	mock.lockHasActive.Lock()
	mock.calls.HasActive = append(mock.calls.HasActive, callInfo)
	mock.lockHasActive.Unlock()
	return mock.HasActiveFunc(ctx, userID, bookID)
}

func (mock *loanRepoMock) HasActiveCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	BookID uuid.UUID
} {
	var calls []struct {
		Ctx    context.Context
		UserID uuid.UUID
		BookID uuid.UUID
	}
	mock.lockHasActive.RLock()
	calls = mock.calls.HasActive
	mock.lockHasActive.RUnlock()
	return calls
}

func (mock *loanRepoMock) Create(ctx context.Context, l *domain.Loan) (*domain.Loan, error) {
	if mock.CreateFunc == nil {
		panic("loanRepoMock.CreateFunc: method is nil but loanRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		L   *domain.Loan
	}{
		Ctx: ctx,
		L:   l,
	}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, l)
}

func (mock *loanRepoMock) CreateCalls() []struct {
	Ctx context.Context
	L   *domain.Loan
} {
	var calls []struct {
		Ctx context.Context
		L   *domain.Loan
	}
	mock.lockCreate.RLock()
	calls = mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *loanRepoMock) MarkReturned(ctx context.Context, id uuid.UUID, returnedAt time.Time) (bool, error) {
	if mock.MarkReturnedFunc == nil {
		panic("loanRepoMock.MarkReturnedFunc: method is nil but loanRepo.MarkReturned was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		Id         uuid.UUID
		ReturnedAt time.Time
	}{
		Ctx:        ctx,
		Id:         id,
		ReturnedAt: returnedAt,
	}
	mock.lockMarkReturned.Lock()
	mock.calls.MarkReturned = append(mock.calls.MarkReturned, callInfo)
	mock.lockMarkReturned.Unlock()
	return mock.MarkReturnedFunc(ctx, id, returnedAt)
}

func (mock *loanRepoMock) MarkReturnedCalls() []struct {
	Ctx        context.Context
	Id         uuid.UUID
	ReturnedAt time.Time
} {
	var calls []struct {
		Ctx        context.Context
		Id         uuid.UUID
		ReturnedAt time.Time
	}
	mock.lockMarkReturned.RLock()
	calls = mock.calls.MarkReturned
	mock.lockMarkReturned.RUnlock()
	return calls
}

func (mock *loanRepoMock) UpdateDueDate(ctx context.Context, id uuid.UUID, dueAt time.Time) error {
	if mock.UpdateDueDateFunc == nil {
		panic("loanRepoMock.UpdateDueDateFunc: method is nil but loanRepo.UpdateDueDate was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Id    uuid.UUID
		DueAt time.Time
	}{
		Ctx:   ctx,
		Id:    id,
		DueAt: dueAt,
	}
	mock.lockUpdateDueDate.Lock()
	mock.calls.UpdateDueDate = append(mock.calls.UpdateDueDate, callInfo)
	mock.lockUpdateDueDate.Unlock()
	return mock.UpdateDueDateFunc(ctx, id, dueAt)
}

func (mock *loanRepoMock) UpdateDueDateCalls() []struct {
	Ctx   context.Context
	Id    uuid.UUID
	DueAt time.Time
} {
	var calls []struct {
		Ctx   context.Context
		Id    uuid.UUID
		DueAt time.Time
	}
	mock.lockUpdateDueDate.RLock()
	calls = mock.calls.UpdateDueDate
	mock.lockUpdateDueDate.RUnlock()
	return calls
}

func (mock *loanRepoMock) Delete(ctx context.Context, id uuid.UUID) (*domain.Loan, error) {
	if mock.DeleteFunc == nil {
		panic("loanRepoMock.DeleteFunc: method is nil but loanRepo.Delete was just called")
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

func (mock *loanRepoMock) DeleteCalls() []struct {
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
