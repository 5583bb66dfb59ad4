package lending

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/libris-backend/internal/domain"
)

var _ fineSweeper = &fineSweeperMock{}

type fineSweeperMock struct {
	SweepFunc func(ctx context.Context, userID *uuid.UUID) (domain.SweepResult, error)

	calls struct {
		Sweep []struct {
			Ctx    context.Context
			UserID *uuid.UUID
		}
	}
	lockSweep sync.RWMutex
}

func (mock *fineSweeperMock) Sweep(ctx context.Context, userID *uuid.UUID) (domain.SweepResult, error) {
	if mock.SweepFunc == nil {
		panic("fineSweeperMock.SweepFunc: method is nil but fineSweeper.Sweep was just called")
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

func (mock *fineSweeperMock) SweepCalls() []struct {
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
