package settings

import (
	"context"
	"sync"
)

var _ configRepo = &configRepoMock{}

type configRepoMock struct {
	GetFunc        func(ctx context.Context, key string) (string, error)
	SetFunc        func(ctx context.Context, key, value string) error
	SetDefaultFunc func(ctx context.Context, key, value string) error

	calls struct {
		Get []struct {
			Key string
		}
		Set []struct {
			Key   string
			Value string
		}
		SetDefault []struct {
			Key   string
			Value string
		}
	}
	lockGet        sync.RWMutex
	lockSet        sync.RWMutex
	lockSetDefault sync.RWMutex
}

func (mock *configRepoMock) Get(ctx context.Context, key string) (string, error) {
	if mock.GetFunc == nil {
		panic("configRepoMock.GetFunc: method is nil but configRepo.Get was just called")
	}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, struct{ Key string }{Key: key})
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, key)
}

func (mock *configRepoMock) GetCalls() []struct{ Key string } {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *configRepoMock) Set(ctx context.Context, key, value string) error {
	if mock.SetFunc == nil {
		panic("configRepoMock.SetFunc: method is nil but configRepo.Set was just called")
	}
	callInfo := struct {
		Key   string
		Value string
	}{Key: key, Value: value}
	mock.lockSet.Lock()
	mock.calls.Set = append(mock.calls.Set, callInfo)
	mock.lockSet.Unlock()
	return mock.SetFunc(ctx, key, value)
}

func (mock *configRepoMock) SetCalls() []struct {
	Key   string
	Value string
} {
	mock.lockSet.RLock()
	calls := mock.calls.Set
	mock.lockSet.RUnlock()
	return calls
}

func (mock *configRepoMock) SetDefault(ctx context.Context, key, value string) error {
	if mock.SetDefaultFunc == nil {
		panic("configRepoMock.SetDefaultFunc: method is nil but configRepo.SetDefault was just called")
	}
	callInfo := struct {
		Key   string
		Value string
	}{Key: key, Value: value}
	mock.lockSetDefault.Lock()
	mock.calls.SetDefault = append(mock.calls.SetDefault, callInfo)
	mock.lockSetDefault.Unlock()
	return mock.SetDefaultFunc(ctx, key, value)
}

func (mock *configRepoMock) SetDefaultCalls() []struct {
	Key   string
	Value string
} {
	mock.lockSetDefault.RLock()
	calls := mock.calls.SetDefault
	mock.lockSetDefault.RUnlock()
	return calls
}
