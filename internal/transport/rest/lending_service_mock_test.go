package rest

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/libris-backend/internal/domain"
	"github.com/heartmarshall/libris-backend/internal/service/lending"
)

var _ lendingService = &lendingServiceMock{}

type lendingServiceMock struct {
	ListFunc       func(ctx context.Context, filter domain.LoanFilter) ([]domain.Loan, error)
	ListByUserFunc func(ctx context.Context, userID uuid.UUID) ([]domain.Loan, error)
	GetFunc        func(ctx context.Context, id uuid.UUID) (*domain.Loan, error)
	BorrowFunc     func(ctx context.Context, input lending.BorrowInput) (*domain.Loan, error)
	UpdateFunc     func(ctx context.Context, input lending.UpdateLoanInput) (*domain.Loan, error)
	DeleteFunc     func(ctx context.Context, id uuid.UUID) error
	NowFunc        func() time.Time

	calls struct {
		List []struct {
			Ctx    context.Context
			Filter domain.LoanFilter
		}
		ListByUser []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
		Get []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		Borrow []struct {
			Ctx   context.Context
			Input lending.BorrowInput
		}
		Update []struct {
			Ctx   context.Context
			Input lending.UpdateLoanInput
		}
		Delete []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		Now []struct{}
	}
	lockList       sync.RWMutex
	lockListByUser sync.RWMutex
	lockGet        sync.RWMutex
	lockBorrow     sync.RWMutex
	lockUpdate     sync.RWMutex
	lockDelete     sync.RWMutex
	lockNow        sync.RWMutex
}

func (mock *lendingServiceMock) List(ctx context.Context, filter domain.LoanFilter) ([]domain.Loan, error) {
	if mock.ListFunc == nil {
		panic("lendingServiceMock.ListFunc: method is nil but lendingService.List was just called")
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

func (mock *lendingServiceMock) ListCalls() []struct {
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

func (mock *lendingServiceMock) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Loan, error) {
	if mock.ListByUserFunc == nil {
		panic("lendingServiceMock.ListByUserFunc: method is nil but lendingService.ListByUser was just called")
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

func (mock *lendingServiceMock) ListByUserCalls() []struct {
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

func (mock *lendingServiceMock) Get(ctx context.Context, id uuid.UUID) (*domain.Loan, error) {
	if mock.GetFunc == nil {
		panic("lendingServiceMock.GetFunc: method is nil but lendingService.Get was just called")
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

func (mock *lendingServiceMock) GetCalls() []struct {
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

func (mock *lendingServiceMock) Borrow(ctx context.Context, input lending.BorrowInput) (*domain.Loan, error) {
	if mock.BorrowFunc == nil {
		panic("lendingServiceMock.BorrowFunc: method is nil but lendingService.Borrow was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input lending.BorrowInput
	}{
		Ctx:   ctx,
		Input: input,
	}
	mock.lockBorrow.Lock()
	mock.calls.Borrow = append(mock.calls.Borrow, callInfo)
	mock.lockBorrow.Unlock()
	return mock.BorrowFunc(ctx, input)
}

func (mock *lendingServiceMock) BorrowCalls() []struct {
	Ctx   context.Context
	Input lending.BorrowInput
} {
	var calls []struct {
		Ctx   context.Context
		Input lending.BorrowInput
	}
	mock.lockBorrow.RLock()
	calls = mock.calls.Borrow
	mock.lockBorrow.RUnlock()
	return calls
}

func (mock *lendingServiceMock) Update(ctx context.Context, input lending.UpdateLoanInput) (*domain.Loan, error) {
	if mock.UpdateFunc == nil {
		panic("lendingServiceMock.UpdateFunc: method is nil but lendingService.Update was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input lending.UpdateLoanInput
	}{
		Ctx:   ctx,
		Input: input,
	}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, input)
}

func (mock *lendingServiceMock) UpdateCalls() []struct {
	Ctx   context.Context
	Input lending.UpdateLoanInput
} {
	var calls []struct {
		Ctx   context.Context
		Input lending.UpdateLoanInput
	}
	mock.lockUpdate.RLock()
	calls = mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}

func (mock *lendingServiceMock) Delete(ctx context.Context, id uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("lendingServiceMock.DeleteFunc: method is nil but lendingService.Delete was just called")
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

func (mock *lendingServiceMock) DeleteCalls() []struct {
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

func (mock *lendingServiceMock) Now() time.Time {
	if mock.NowFunc == nil {
		panic("lendingServiceMock.NowFunc: method is nil but lendingService.Now was just called")
	}
	mock.lockNow.Lock()
	mock.calls.Now = append(mock.calls.Now, struct{}{})
	mock.lockNow.Unlock()
	return mock.NowFunc()
}

func (mock *lendingServiceMock) NowCalls() []struct{} {
	var calls []struct{}
	mock.lockNow.RLock()
	calls = mock.calls.Now
	mock.lockNow.RUnlock()
	return calls
}
