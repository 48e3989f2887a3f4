package racesession

import (
	"context"
	"sync"

	"github.com/pitlane/racecontrol/internal/domain"
)

var (
	_ sessionRepo      = &sessionRepoMock{}
	_ infringementRepo = &infringementRepoMock{}
	_ historyRepo      = &historyRepoMock{}
	_ txManager        = &txManagerMock{}
	_ notifier         = &notifierMock{}
)

type sessionRepoMock struct {
	CreateFunc    func(ctx context.Context, s domain.Session) (*domain.Session, error)
	GetByNameFunc func(ctx context.Context, name string) (*domain.Session, error)
	GetActiveFunc func(ctx context.Context) (*domain.Session, error)
	ListFunc      func(ctx context.Context) ([]domain.Session, error)
	CloseAllFunc  func(ctx context.Context) error
	SetStatusFunc func(ctx context.Context, name, status string) error
	DeleteFunc    func(ctx context.Context, name string) error

	calls struct {
		Create    []domain.Session
		CloseAll  []struct{}
		SetStatus []struct {
			Name   string
			Status string
		}
		Delete []string
	}
	lock sync.RWMutex
}

func (mock *sessionRepoMock) Create(ctx context.Context, s domain.Session) (*domain.Session, error) {
	if mock.CreateFunc == nil {
		panic("sessionRepoMock.CreateFunc: method is nil but sessionRepo.Create was just called")
	}
	mock.lock.Lock()
	mock.calls.Create = append(mock.calls.Create, s)
	mock.lock.Unlock()
	return mock.CreateFunc(ctx, s)
}

func (mock *sessionRepoMock) CreateCalls() []domain.Session {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Create
}

func (mock *sessionRepoMock) GetByName(ctx context.Context, name string) (*domain.Session, error) {
	if mock.GetByNameFunc == nil {
		panic("sessionRepoMock.GetByNameFunc: method is nil but sessionRepo.GetByName was just called")
	}
	return mock.GetByNameFunc(ctx, name)
}

func (mock *sessionRepoMock) GetActive(ctx context.Context) (*domain.Session, error) {
	if mock.GetActiveFunc == nil {
		panic("sessionRepoMock.GetActiveFunc: method is nil but sessionRepo.GetActive was just called")
	}
	return mock.GetActiveFunc(ctx)
}

func (mock *sessionRepoMock) List(ctx context.Context) ([]domain.Session, error) {
	if mock.ListFunc == nil {
		panic("sessionRepoMock.ListFunc: method is nil but sessionRepo.List was just called")
	}
	return mock.ListFunc(ctx)
}

func (mock *sessionRepoMock) CloseAll(ctx context.Context) error {
	if mock.CloseAllFunc == nil {
		panic("sessionRepoMock.CloseAllFunc: method is nil but sessionRepo.CloseAll was just called")
	}
	mock.lock.Lock()
	mock.calls.CloseAll = append(mock.calls.CloseAll, struct{}{})
	mock.lock.Unlock()
	return mock.CloseAllFunc(ctx)
}

func (mock *sessionRepoMock) CloseAllCalls() []struct{} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.CloseAll
}

func (mock *sessionRepoMock) SetStatus(ctx context.Context, name, status string) error {
	if mock.SetStatusFunc == nil {
		panic("sessionRepoMock.SetStatusFunc: method is nil but sessionRepo.SetStatus was just called")
	}
	callInfo := struct {
		Name   string
		Status string
	}{Name: name, Status: status}
	mock.lock.Lock()
	mock.calls.SetStatus = append(mock.calls.SetStatus, callInfo)
	mock.lock.Unlock()
	return mock.SetStatusFunc(ctx, name, status)
}

func (mock *sessionRepoMock) SetStatusCalls() []struct {
	Name   string
	Status string
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.SetStatus
}

func (mock *sessionRepoMock) Delete(ctx context.Context, name string) error {
	if mock.DeleteFunc == nil {
		panic("sessionRepoMock.DeleteFunc: method is nil but sessionRepo.Delete was just called")
	}
	mock.lock.Lock()
	mock.calls.Delete = append(mock.calls.Delete, name)
	mock.lock.Unlock()
	return mock.DeleteFunc(ctx, name)
}

func (mock *sessionRepoMock) DeleteCalls() []string {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Delete
}

type infringementRepoMock struct {
	DeleteBySessionFunc func(ctx context.Context, sessionName string) error

	calls struct {
		DeleteBySession []string
	}
	lock sync.RWMutex
}

func (mock *infringementRepoMock) DeleteBySession(ctx context.Context, sessionName string) error {
	if mock.DeleteBySessionFunc == nil {
		panic("infringementRepoMock.DeleteBySessionFunc: method is nil but infringementRepo.DeleteBySession was just called")
	}
	mock.lock.Lock()
	mock.calls.DeleteBySession = append(mock.calls.DeleteBySession, sessionName)
	mock.lock.Unlock()
	return mock.DeleteBySessionFunc(ctx, sessionName)
}

func (mock *infringementRepoMock) DeleteBySessionCalls() []string {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.DeleteBySession
}

type historyRepoMock struct {
	DeleteBySessionFunc func(ctx context.Context, sessionName string) error

	calls struct {
		DeleteBySession []string
	}
	lock sync.RWMutex
}

func (mock *historyRepoMock) DeleteBySession(ctx context.Context, sessionName string) error {
	if mock.DeleteBySessionFunc == nil {
		panic("historyRepoMock.DeleteBySessionFunc: method is nil but historyRepo.DeleteBySession was just called")
	}
	mock.lock.Lock()
	mock.calls.DeleteBySession = append(mock.calls.DeleteBySession, sessionName)
	mock.lock.Unlock()
	return mock.DeleteBySessionFunc(ctx, sessionName)
}

func (mock *historyRepoMock) DeleteBySessionCalls() []string {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.DeleteBySession
}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (mock *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if mock.RunInTxFunc == nil {
		panic("txManagerMock.RunInTxFunc: method is nil but txManager.RunInTx was just called")
	}
	return mock.RunInTxFunc(ctx, fn)
}

type notifierMock struct {
	BroadcastFunc func(eventType string)

	calls struct {
		Broadcast []string
	}
	lock sync.RWMutex
}

func (mock *notifierMock) Broadcast(eventType string) {
	mock.lock.Lock()
	mock.calls.Broadcast = append(mock.calls.Broadcast, eventType)
	mock.lock.Unlock()
	if mock.BroadcastFunc != nil {
		mock.BroadcastFunc(eventType)
	}
}

func (mock *notifierMock) BroadcastCalls() []string {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Broadcast
}
