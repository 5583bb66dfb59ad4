package catalog

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/libris-backend/internal/domain"
)

var _ loanRepo = &loanRepoMock{}

type loanRepoMock struct {
	ListFunc              func(ctx context.Context, filter domain.LoanFilter) ([]domain.Loan, error)
	CountActiveByBookFunc func(ctx context.Context, bookID uuid.UUID) (int, error)

	calls struct {
		List []struct {
			Ctx    context.Context
			Filter domain.LoanFilter
		}
		CountActiveByBook []struct {
			Ctx    context.Context
			BookID uuid.UUID
		}
	}
	lockList              sync.RWMutex
	lockCountActiveByBook sync.RWMutex
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

func (mock *loanRepoMock) CountActiveByBook(ctx context.Context, bookID uuid.UUID) (int, error) {
	if mock.CountActiveByBookFunc == nil {
		panic("loanRepoMock.CountActiveByBookFunc: method is nil but loanRepo.CountActiveByBook was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		BookID uuid.UUID
	}{
		Ctx:    ctx,
		BookID: bookID,
	}
	mock.lockCountActiveByBook.Lock()
	mock.calls.CountActiveByBook = append(mock.calls.CountActiveByBook, callInfo)
	mock.lockCountActiveByBook.Unlock()
	return mock.CountActiveByBookFunc(ctx, bookID)
}

func (mock *loanRepoMock) CountActiveByBookCalls() []struct {
	Ctx    context.Context
	BookID uuid.UUID
} {
	var calls []struct {
		Ctx    context.Context
		BookID uuid.UUID
	}
	mock.lockCountActiveByBook.RLock()
	calls = mock.calls.CountActiveByBook
	mock.lockCountActiveByBook.RUnlock()
	return calls
}
