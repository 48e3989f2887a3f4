package racesession

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pitlane/racecontrol/internal/domain"
)

// Load activates an existing session, closing whichever session was active
// before. Returns domain.ErrNotFound when no session carries the name.
func (s *Service) Load(ctx context.Context, name string) (*domain.Session, error) {
	if err := domain.ValidateSessionName(name); err != nil {
		return nil, err
	}

	if _, err := s.sessions.GetByName(ctx, name); err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.sessions.CloseAll(txCtx); err != nil {
			return fmt.Errorf("close sessions: %w", err)
		}
		if err := s.sessions.SetStatus(txCtx, name, domain.SessionActive); err != nil {
			return fmt.Errorf("activate session: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	loaded, err := s.sessions.GetByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("reload session: %w", err)
	}

	s.notify.Broadcast("session_loaded")

	s.log.InfoContext(ctx, "session loaded", slog.String("name", name))
	return loaded, nil
}
