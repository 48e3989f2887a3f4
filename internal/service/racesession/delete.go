package racesession

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pitlane/racecontrol/internal/domain"
)

// Delete destroys a session and everything recorded inside it: the
// infringements, the audit trail, and the session row itself.
func (s *Service) Delete(ctx context.Context, name string) error {
	if err := domain.ValidateSessionName(name); err != nil {
		return err
	}

	if _, err := s.sessions.GetByName(ctx, name); err != nil {
		return fmt.Errorf("get session: %w", err)
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.infringements.DeleteBySession(txCtx, name); err != nil {
			return fmt.Errorf("delete infringements: %w", err)
		}
		if err := s.history.DeleteBySession(txCtx, name); err != nil {
			return fmt.Errorf("delete history: %w", err)
		}
		if err := s.sessions.Delete(txCtx, name); err != nil {
			return fmt.Errorf("delete session: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.notify.Broadcast("session_deleted")

	s.log.InfoContext(ctx, "session deleted", slog.String("name", name))
	return nil
}
