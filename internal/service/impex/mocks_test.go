package impex

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
	CloseAllFunc  func(ctx context.Context) error

	calls struct {
		Create   []domain.Session
		CloseAll int
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

func (mock *sessionRepoMock) CloseAll(ctx context.Context) error {
	if mock.CloseAllFunc == nil {
		panic("sessionRepoMock.CloseAllFunc: method is nil but sessionRepo.CloseAll was just called")
	}
	mock.lock.Lock()
	mock.calls.CloseAll++
	mock.lock.Unlock()
	return mock.CloseAllFunc(ctx)
}

func (mock *sessionRepoMock) CloseAllCalls() int {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.CloseAll
}

type infringementRepoMock struct {
	CreateFunc func(ctx context.Context, inf domain.Infringement) (*domain.Infringement, error)
	ListFunc   func(ctx context.Context, sessionName string) ([]domain.Infringement, error)

	calls struct {
		Create []domain.Infringement
	}
	lock sync.RWMutex
}

func (mock *infringementRepoMock) Create(ctx context.Context, inf domain.Infringement) (*domain.Infringement, error) {
	if mock.CreateFunc == nil {
		panic("infringementRepoMock.CreateFunc: method is nil but infringementRepo.Create was just called")
	}
	mock.lock.Lock()
	mock.calls.Create = append(mock.calls.Create, inf)
	mock.lock.Unlock()
	return mock.CreateFunc(ctx, inf)
}

func (mock *infringementRepoMock) CreateCalls() []domain.Infringement {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Create
}

func (mock *infringementRepoMock) List(ctx context.Context, sessionName string) ([]domain.Infringement, error) {
	if mock.ListFunc == nil {
		panic("infringementRepoMock.ListFunc: method is nil but infringementRepo.List was just called")
	}
	return mock.ListFunc(ctx, sessionName)
}

type historyRepoMock struct {
	AppendFunc        func(ctx context.Context, e domain.HistoryEntry) error
	ListBySessionFunc func(ctx context.Context, sessionName string) ([]domain.HistoryEntry, error)

	calls struct {
		Append []domain.HistoryEntry
	}
	lock sync.RWMutex
}

func (mock *historyRepoMock) Append(ctx context.Context, e domain.HistoryEntry) error {
	if mock.AppendFunc == nil {
		panic("historyRepoMock.AppendFunc: method is nil but historyRepo.Append was just called")
	}
	mock.lock.Lock()
	mock.calls.Append = append(mock.calls.Append, e)
	mock.lock.Unlock()
	return mock.AppendFunc(ctx, e)
}

func (mock *historyRepoMock) AppendCalls() []domain.HistoryEntry {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Append
}

func (mock *historyRepoMock) ListBySession(ctx context.Context, sessionName string) ([]domain.HistoryEntry, error) {
	if mock.ListBySessionFunc == nil {
		panic("historyRepoMock.ListBySessionFunc: method is nil but historyRepo.ListBySession was just called")
	}
	return mock.ListBySessionFunc(ctx, sessionName)
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
	calls struct {
		Broadcast []string
	}
	lock sync.RWMutex
}

func (mock *notifierMock) Broadcast(eventType string) {
	mock.lock.Lock()
	mock.calls.Broadcast = append(mock.calls.Broadcast, eventType)
	mock.lock.Unlock()
}

func (mock *notifierMock) BroadcastCalls() []string {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Broadcast
}
