package infringement

import (
	"context"
	"sync"
	"time"

	"github.com/pitlane/racecontrol/internal/domain"
)

var (
	_ infringementRepo = &infringementRepoMock{}
	_ historyRepo      = &historyRepoMock{}
	_ sessionResolver  = &sessionResolverMock{}
	_ expirySource     = &expirySourceMock{}
	_ txManager        = &txManagerMock{}
	_ notifier         = &notifierMock{}
)

type infringementRepoMock struct {
	CreateFunc     func(ctx context.Context, inf domain.Infringement) (*domain.Infringement, error)
	UpdateFunc     func(ctx context.Context, inf domain.Infringement) (*domain.Infringement, error)
	DeleteFunc     func(ctx context.Context, sessionName string, id int64) error
	GetByIDFunc    func(ctx context.Context, sessionName string, id int64) (*domain.Infringement, error)
	ListFunc       func(ctx context.Context, sessionName string) ([]domain.Infringement, error)
	ListByKartFunc func(ctx context.Context, sessionName string, kart int) ([]domain.Infringement, error)

	calls struct {
		Create []domain.Infringement
		Update []domain.Infringement
		Delete []int64
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

func (mock *infringementRepoMock) Update(ctx context.Context, inf domain.Infringement) (*domain.Infringement, error) {
	if mock.UpdateFunc == nil {
		panic("infringementRepoMock.UpdateFunc: method is nil but infringementRepo.Update was just called")
	}
	mock.lock.Lock()
	mock.calls.Update = append(mock.calls.Update, inf)
	mock.lock.Unlock()
	return mock.UpdateFunc(ctx, inf)
}

func (mock *infringementRepoMock) UpdateCalls() []domain.Infringement {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Update
}

func (mock *infringementRepoMock) Delete(ctx context.Context, sessionName string, id int64) error {
	if mock.DeleteFunc == nil {
		panic("infringementRepoMock.DeleteFunc: method is nil but infringementRepo.Delete was just called")
	}
	mock.lock.Lock()
	mock.calls.Delete = append(mock.calls.Delete, id)
	mock.lock.Unlock()
	return mock.DeleteFunc(ctx, sessionName, id)
}

func (mock *infringementRepoMock) DeleteCalls() []int64 {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Delete
}

func (mock *infringementRepoMock) GetByID(ctx context.Context, sessionName string, id int64) (*domain.Infringement, error) {
	if mock.GetByIDFunc == nil {
		panic("infringementRepoMock.GetByIDFunc: method is nil but infringementRepo.GetByID was just called")
	}
	return mock.GetByIDFunc(ctx, sessionName, id)
}

func (mock *infringementRepoMock) List(ctx context.Context, sessionName string) ([]domain.Infringement, error) {
	if mock.ListFunc == nil {
		panic("infringementRepoMock.ListFunc: method is nil but infringementRepo.List was just called")
	}
	return mock.ListFunc(ctx, sessionName)
}

func (mock *infringementRepoMock) ListByKart(ctx context.Context, sessionName string, kart int) ([]domain.Infringement, error) {
	if mock.ListByKartFunc == nil {
		panic("infringementRepoMock.ListByKartFunc: method is nil but infringementRepo.ListByKart was just called")
	}
	return mock.ListByKartFunc(ctx, sessionName, kart)
}

type historyRepoMock struct {
	AppendFunc                func(ctx context.Context, e domain.HistoryEntry) error
	ListByInfringementIDsFunc func(ctx context.Context, sessionName string, ids []int64) ([]domain.HistoryEntry, error)

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

func (mock *historyRepoMock) ListByInfringementIDs(ctx context.Context, sessionName string, ids []int64) ([]domain.HistoryEntry, error) {
	if mock.ListByInfringementIDsFunc == nil {
		panic("historyRepoMock.ListByInfringementIDsFunc: method is nil but historyRepo.ListByInfringementIDs was just called")
	}
	return mock.ListByInfringementIDsFunc(ctx, sessionName, ids)
}

type sessionResolverMock struct {
	ActiveFunc func(ctx context.Context) (*domain.Session, error)
}

func (mock *sessionResolverMock) Active(ctx context.Context) (*domain.Session, error) {
	if mock.ActiveFunc == nil {
		panic("sessionResolverMock.ActiveFunc: method is nil but sessionResolver.Active was just called")
	}
	return mock.ActiveFunc(ctx)
}

type expirySourceMock struct {
	WarningExpiryFunc func(ctx context.Context) (time.Duration, error)
}

func (mock *expirySourceMock) WarningExpiry(ctx context.Context) (time.Duration, error) {
	if mock.WarningExpiryFunc == nil {
		panic("expirySourceMock.WarningExpiryFunc: method is nil but expirySource.WarningExpiry was just called")
	}
	return mock.WarningExpiryFunc(ctx)
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
