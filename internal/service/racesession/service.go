// Package racesession manages the session lifecycle: starting, loading,
// closing, deleting and listing the named containers that scope all
// infringement data.
package racesession

import (
	"context"
	"log/slog"

	"github.com/pitlane/racecontrol/internal/domain"
)

type sessionRepo interface {
	Create(ctx context.Context, s domain.Session) (*domain.Session, error)
	GetByName(ctx context.Context, name string) (*domain.Session, error)
	GetActive(ctx context.Context) (*domain.Session, error)
	List(ctx context.Context) ([]domain.Session, error)
	CloseAll(ctx context.Context) error
	SetStatus(ctx context.Context, name, status string) error
	Delete(ctx context.Context, name string) error
}

type infringementRepo interface {
	DeleteBySession(ctx context.Context, sessionName string) error
}

type historyRepo interface {
	DeleteBySession(ctx context.Context, sessionName string) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type notifier interface {
	Broadcast(eventType string)
}

// Service provides session lifecycle operations.
type Service struct {
	sessions      sessionRepo
	infringements infringementRepo
	history       historyRepo
	tx            txManager
	notify        notifier
	log           *slog.Logger
}

// NewService creates a new session service.
func NewService(
	log *slog.Logger,
	sessions sessionRepo,
	infringements infringementRepo,
	history historyRepo,
	tx txManager,
	notify notifier,
) *Service {
	return &Service{
		sessions:      sessions,
		infringements: infringements,
		history:       history,
		tx:            tx,
		notify:        notify,
		log:           log.With("service", "racesession"),
	}
}

// Active returns the currently active session, or domain.ErrNoActiveSession.
// Every infringement and penalty operation resolves its data scope through
// this call.
func (s *Service) Active(ctx context.Context) (*domain.Session, error) {
	return s.sessions.GetActive(ctx)
}

// List returns all sessions, most recently started first.
func (s *Service) List(ctx context.Context) ([]domain.Session, error) {
	return s.sessions.List(ctx)
}
