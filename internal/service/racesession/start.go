package racesession

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pitlane/racecontrol/internal/domain"
)

// Start creates a new session and makes it the active data scope. Any
// previously active session is closed in the same transaction, preserving
// the one-active-session invariant.
func (s *Service) Start(ctx context.Context, name string) (*domain.Session, error) {
	if err := domain.ValidateSessionName(name); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	var created *domain.Session
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.sessions.CloseAll(txCtx); err != nil {
			return fmt.Errorf("close sessions: %w", err)
		}

		var createErr error
		created, createErr = s.sessions.Create(txCtx, domain.Session{
			Name:      name,
			Status:    domain.SessionActive,
			StartedAt: &now,
		})
		if createErr != nil {
			return fmt.Errorf("create session: %w", createErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notify.Broadcast("session_started")

	s.log.InfoContext(ctx, "session started", slog.String("name", name))
	return created, nil
}
