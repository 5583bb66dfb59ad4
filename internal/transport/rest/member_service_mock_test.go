package rest

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/libris-backend/internal/domain"
	"github.com/heartmarshall/libris-backend/internal/service/member"
)

var _ memberService = &memberServiceMock{}

type memberServiceMock struct {
	ListFunc         func(ctx context.Context, search string) ([]domain.User, error)
	GetFunc          func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	RegisterFunc     func(ctx context.Context, input member.RegisterInput) (*domain.User, bool, error)
	UpdateStatusFunc func(ctx context.Context, input member.UpdateStatusInput) (*domain.User, error)

	calls struct {
		List []struct {
			Ctx    context.Context
			Search string
		}
		Get []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		Register []struct {
			Ctx   context.Context
			Input member.RegisterInput
		}
		UpdateStatus []struct {
			Ctx   context.Context
			Input member.UpdateStatusInput
		}
	}
	lockList         sync.RWMutex
	lockGet          sync.RWMutex
	lockRegister     sync.RWMutex
	lockUpdateStatus sync.RWMutex
}

func (mock *memberServiceMock) List(ctx context.Context, search string) ([]domain.User, error) {
	if mock.ListFunc == nil {
		panic("memberServiceMock.ListFunc: method is nil but memberService.List was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Search string
	}{
		Ctx:    ctx,
		Search: search,
	}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, search)
}

func (mock *memberServiceMock) ListCalls() []struct {
	Ctx    context.Context
	Search string
} {
	var calls []struct {
		Ctx    context.Context
		Search string
	}
	mock.lockList.RLock()
	calls = mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *memberServiceMock) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if mock.GetFunc == nil {
		panic("memberServiceMock.GetFunc: method is nil but memberService.Get was just called")
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

func (mock *memberServiceMock) GetCalls() []struct {
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

func (mock *memberServiceMock) Register(ctx context.Context, input member.RegisterInput) (*domain.User, bool, error) {
	if mock.RegisterFunc == nil {
		panic("memberServiceMock.RegisterFunc: method is nil but memberService.Register was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input member.RegisterInput
	}{
		Ctx:   ctx,
		Input: input,
	}
	mock.lockRegister.Lock()
	mock.calls.Register = append(mock.calls.Register, callInfo)
	mock.lockRegister.Unlock()
	return mock.RegisterFunc(ctx, input)
}

func (mock *memberServiceMock) RegisterCalls() []struct {
	Ctx   context.Context
	Input member.RegisterInput
} {
	var calls []struct {
		Ctx   context.Context
		Input member.RegisterInput
	}
	mock.lockRegister.RLock()
	calls = mock.calls.Register
	mock.lockRegister.RUnlock()
	return calls
}

func (mock *memberServiceMock) UpdateStatus(ctx context.Context, input member.UpdateStatusInput) (*domain.User, error) {
	if mock.UpdateStatusFunc == nil {
		panic("memberServiceMock.UpdateStatusFunc: method is nil but memberService.UpdateStatus was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input member.UpdateStatusInput
	}{
		Ctx:   ctx,
		Input: input,
	}
	mock.lockUpdateStatus.Lock()
	mock.calls.UpdateStatus = append(mock.calls.UpdateStatus, callInfo)
	mock.lockUpdateStatus.Unlock()
	return mock.UpdateStatusFunc(ctx, input)
}

func (mock *memberServiceMock) UpdateStatusCalls() []struct {
	Ctx   context.Context
	Input member.UpdateStatusInput
} {
	var calls []struct {
		Ctx   context.Context
		Input member.UpdateStatusInput
	}
	mock.lockUpdateStatus.RLock()
	calls = mock.calls.UpdateStatus
	mock.lockUpdateStatus.RUnlock()
	return calls
}
