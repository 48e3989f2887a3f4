package rest

import (
	"context"
	"io"
	"sync"

	"github.com/pitlane/racecontrol/internal/domain"
	"github.com/pitlane/racecontrol/internal/service/impex"
	"github.com/pitlane/racecontrol/internal/service/infringement"
)

type infringementServiceMock struct {
	CreateFunc      func(ctx context.Context, input infringement.CreateInput) (*domain.Infringement, error)
	UpdateFunc      func(ctx context.Context, input infringement.UpdateInput) (*domain.Infringement, error)
	DeleteFunc      func(ctx context.Context, id int64, performedBy string) error
	ListFunc        func(ctx context.Context) ([]infringement.View, error)
	LogFunc         func(ctx context.Context) ([]domain.Infringement, error)
	KartHistoryFunc func(ctx context.Context, kart int) ([]domain.HistoryEntry, error)

	calls struct {
		Create []infringement.CreateInput
		Update []infringement.UpdateInput
		Delete []struct {
			ID          int64
			PerformedBy string
		}
	}
	lock sync.RWMutex
}

func (m *infringementServiceMock) Create(ctx context.Context, input infringement.CreateInput) (*domain.Infringement, error) {
	m.lock.Lock()
	m.calls.Create = append(m.calls.Create, input)
	m.lock.Unlock()
	return m.CreateFunc(ctx, input)
}

func (m *infringementServiceMock) Update(ctx context.Context, input infringement.UpdateInput) (*domain.Infringement, error) {
	m.lock.Lock()
	m.calls.Update = append(m.calls.Update, input)
	m.lock.Unlock()
	return m.UpdateFunc(ctx, input)
}

func (m *infringementServiceMock) Delete(ctx context.Context, id int64, performedBy string) error {
	m.lock.Lock()
	m.calls.Delete = append(m.calls.Delete, struct {
		ID          int64
		PerformedBy string
	}{id, performedBy})
	m.lock.Unlock()
	return m.DeleteFunc(ctx, id, performedBy)
}

func (m *infringementServiceMock) List(ctx context.Context) ([]infringement.View, error) {
	return m.ListFunc(ctx)
}

func (m *infringementServiceMock) Log(ctx context.Context) ([]domain.Infringement, error) {
	return m.LogFunc(ctx)
}

func (m *infringementServiceMock) KartHistory(ctx context.Context, kart int) ([]domain.HistoryEntry, error) {
	return m.KartHistoryFunc(ctx, kart)
}

func (m *infringementServiceMock) CreateCalls() []infringement.CreateInput {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.calls.Create
}

func (m *infringementServiceMock) DeleteCalls() []struct {
	ID          int64
	PerformedBy string
} {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.calls.Delete
}

type penaltyServiceMock struct {
	PendingFunc         func(ctx context.Context) ([]domain.Infringement, error)
	ApplyIndividualFunc func(ctx context.Context, id int64, performedBy string) (*domain.Infringement, error)
	ApplyAllForKartFunc func(ctx context.Context, kart int, performedBy string) ([]domain.Infringement, error)

	calls struct {
		ApplyIndividual []struct {
			ID          int64
			PerformedBy string
		}
	}
	lock sync.RWMutex
}

func (m *penaltyServiceMock) Pending(ctx context.Context) ([]domain.Infringement, error) {
	return m.PendingFunc(ctx)
}

func (m *penaltyServiceMock) ApplyIndividual(ctx context.Context, id int64, performedBy string) (*domain.Infringement, error) {
	m.lock.Lock()
	m.calls.ApplyIndividual = append(m.calls.ApplyIndividual, struct {
		ID          int64
		PerformedBy string
	}{id, performedBy})
	m.lock.Unlock()
	return m.ApplyIndividualFunc(ctx, id, performedBy)
}

func (m *penaltyServiceMock) ApplyAllForKart(ctx context.Context, kart int, performedBy string) ([]domain.Infringement, error) {
	return m.ApplyAllForKartFunc(ctx, kart, performedBy)
}

func (m *penaltyServiceMock) ApplyIndividualCalls() []struct {
	ID          int64
	PerformedBy string
} {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.calls.ApplyIndividual
}

type sessionServiceMock struct {
	StartFunc  func(ctx context.Context, name string) (*domain.Session, error)
	LoadFunc   func(ctx context.Context, name string) (*domain.Session, error)
	CloseFunc  func(ctx context.Context, name string) error
	DeleteFunc func(ctx context.Context, name string) error
	ListFunc   func(ctx context.Context) ([]domain.Session, error)
}

func (m *sessionServiceMock) Start(ctx context.Context, name string) (*domain.Session, error) {
	return m.StartFunc(ctx, name)
}

func (m *sessionServiceMock) Load(ctx context.Context, name string) (*domain.Session, error) {
	return m.LoadFunc(ctx, name)
}

func (m *sessionServiceMock) Close(ctx context.Context, name string) error {
	return m.CloseFunc(ctx, name)
}

func (m *sessionServiceMock) Delete(ctx context.Context, name string) error {
	return m.DeleteFunc(ctx, name)
}

func (m *sessionServiceMock) List(ctx context.Context) ([]domain.Session, error) {
	return m.ListFunc(ctx)
}

type impexServiceMock struct {
	ExportFunc func(ctx context.Context, name, format string) (*impex.ExportResult, error)
	ImportFunc func(ctx context.Context, filename string, r io.Reader) (*impex.ImportResult, error)

	calls struct {
		Import []string
	}
	lock sync.RWMutex
}

func (m *impexServiceMock) Export(ctx context.Context, name, format string) (*impex.ExportResult, error) {
	return m.ExportFunc(ctx, name, format)
}

func (m *impexServiceMock) Import(ctx context.Context, filename string, r io.Reader) (*impex.ImportResult, error) {
	m.lock.Lock()
	m.calls.Import = append(m.calls.Import, filename)
	m.lock.Unlock()
	return m.ImportFunc(ctx, filename, r)
}

func (m *impexServiceMock) ImportCalls() []string {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.calls.Import
}

type settingsServiceMock struct {
	WarningExpiryMinutesFunc    func(ctx context.Context) (int, error)
	SetWarningExpiryMinutesFunc func(ctx context.Context, minutes int) error
}

func (m *settingsServiceMock) WarningExpiryMinutes(ctx context.Context) (int, error) {
	return m.WarningExpiryMinutesFunc(ctx)
}

func (m *settingsServiceMock) SetWarningExpiryMinutes(ctx context.Context, minutes int) error {
	return m.SetWarningExpiryMinutesFunc(ctx, minutes)
}
