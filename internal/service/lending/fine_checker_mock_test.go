package lending

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

var _ fineChecker = &fineCheckerMock{}

type fineCheckerMock struct {
	HasUnpaidFunc func(ctx context.Context, userID uuid.UUID) (bool, error)

	calls struct {
		HasUnpaid []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
	}
	lockHasUnpaid sync.RWMutex
}

func (mock *fineCheckerMock) HasUnpaid(ctx context.Context, userID uuid.UUID) (bool, error) {
	if mock.HasUnpaidFunc == nil {
		panic("fineCheckerMock.HasUnpaidFunc: method is nil but fineChecker.HasUnpaid was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{
		Ctx:    ctx,
		UserID: userID,
	}
	mock.lockHasUnpaid.Lock()
	mock.calls.HasUnpaid = append(mock.calls.HasUnpaid, callInfo)
	mock.lockHasUnpaid.Unlock()
	return mock.HasUnpaidFunc(ctx, userID)
}

func (mock *fineCheckerMock) HasUnpaidCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	var calls []struct {
		Ctx    context.Context
		UserID uuid.UUID
	}
	mock.lockHasUnpaid.RLock()
	calls = mock.calls.HasUnpaid
	mock.lockHasUnpaid.RUnlock()
	return calls
}
