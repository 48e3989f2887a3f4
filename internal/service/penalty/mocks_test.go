package penalty

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
	_ txManager        = &txManagerMock{}
	_ notifier         = &notifierMock{}
)

type infringementRepoMock struct {
	GetByIDFunc          func(ctx context.Context, sessionName string, id int64) (*domain.Infringement, error)
	ListByKartFunc       func(ctx context.Context, sessionName string, kart int) ([]domain.Infringement, error)
	ListPendingFunc      func(ctx context.Context, sessionName string) ([]domain.Infringement, error)
	MarkPenaltyTakenFunc func(ctx context.Context, sessionName string, id int64, at time.Time) (*domain.Infringement, error)

	calls struct {
		MarkPenaltyTaken []int64
	}
	lock sync.RWMutex
}

func (mock *infringementRepoMock) GetByID(ctx context.Context, sessionName string, id int64) (*domain.Infringement, error) {
	if mock.GetByIDFunc == nil {
		panic("infringementRepoMock.GetByIDFunc: method is nil but infringementRepo.GetByID was just called")
	}
	return mock.GetByIDFunc(ctx, sessionName, id)
}

func (mock *infringementRepoMock) ListByKart(ctx context.Context, sessionName string, kart int) ([]domain.Infringement, error) {
	if mock.ListByKartFunc == nil {
		panic("infringementRepoMock.ListByKartFunc: method is nil but infringementRepo.ListByKart was just called")
	}
	return mock.ListByKartFunc(ctx, sessionName, kart)
}

func (mock *infringementRepoMock) ListPending(ctx context.Context, sessionName string) ([]domain.Infringement, error) {
	if mock.ListPendingFunc == nil {
		panic("infringementRepoMock.ListPendingFunc: method is nil but infringementRepo.ListPending was just called")
	}
	return mock.ListPendingFunc(ctx, sessionName)
}

func (mock *infringementRepoMock) MarkPenaltyTaken(ctx context.Context, sessionName string, id int64, at time.Time) (*domain.Infringement, error) {
	if mock.MarkPenaltyTakenFunc == nil {
		panic("infringementRepoMock.MarkPenaltyTakenFunc: method is nil but infringementRepo.MarkPenaltyTaken was just called")
	}
	mock.lock.Lock()
	mock.calls.MarkPenaltyTaken = append(mock.calls.MarkPenaltyTaken, id)
	mock.lock.Unlock()
	return mock.MarkPenaltyTakenFunc(ctx, sessionName, id, at)
}

func (mock *infringementRepoMock) MarkPenaltyTakenCalls() []int64 {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.MarkPenaltyTaken
}

type historyRepoMock struct {
	AppendFunc func(ctx context.Context, e domain.HistoryEntry) error

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

type sessionResolverMock struct {
	ActiveFunc func(ctx context.Context) (*domain.Session, error)
}

func (mock *sessionResolverMock) Active(ctx context.Context) (*domain.Session, error) {
	if mock.ActiveFunc == nil {
		panic("sessionResolverMock.ActiveFunc: method is nil but sessionResolver.Active was just called")
	}
	return mock.ActiveFunc(ctx)
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
