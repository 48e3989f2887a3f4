// Package penalty implements the pending-penalty queue and the one-way
// apply operation that stamps a penalty as served.
package penalty

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pitlane/racecontrol/internal/domain"
)

type infringementRepo interface {
	GetByID(ctx context.Context, sessionName string, id int64) (*domain.Infringement, error)
	ListByKart(ctx context.Context, sessionName string, kart int) ([]domain.Infringement, error)
	ListPending(ctx context.Context, sessionName string) ([]domain.Infringement, error)
	MarkPenaltyTaken(ctx context.Context, sessionName string, id int64, at time.Time) (*domain.Infringement, error)
}

type historyRepo interface {
	Append(ctx context.Context, e domain.HistoryEntry) error
}

type sessionResolver interface {
	Active(ctx context.Context) (*domain.Session, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type notifier interface {
	Broadcast(eventType string)
}

// Service provides penalty queue operations.
type Service struct {
	repo     infringementRepo
	history  historyRepo
	sessions sessionResolver
	tx       txManager
	notify   notifier
	log      *slog.Logger

	now func() time.Time
}

// NewService creates a new penalty service.
func NewService(
	log *slog.Logger,
	repo infringementRepo,
	history historyRepo,
	sessions sessionResolver,
	tx txManager,
	notify notifier,
) *Service {
	return &Service{
		repo:     repo,
		history:  history,
		sessions: sessions,
		tx:       tx,
		notify:   notify,
		log:      log.With("service", "penalty"),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Pending returns the unresolved penalty queue of the active session, oldest
// first. Records whose classification is not a real consequence are filtered
// out even if their due flag is set.
func (s *Service) Pending(ctx context.Context) ([]domain.Infringement, error) {
	session, err := s.sessions.Active(ctx)
	if err != nil {
		return nil, err
	}

	due, err := s.repo.ListPending(ctx, session.Name)
	if err != nil {
		return nil, fmt.Errorf("list pending: %w", err)
	}

	pending := make([]domain.Infringement, 0, len(due))
	for _, inf := range due {
		if inf.IsPending() {
			pending = append(pending, inf)
		}
	}
	return pending, nil
}

func defaultPerformedBy(performedBy string) string {
	if performedBy == "" {
		return "system"
	}
	return performedBy
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
