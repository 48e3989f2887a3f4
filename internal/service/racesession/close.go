package racesession

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pitlane/racecontrol/internal/domain"
)

// Close deactivates a session. Its data is retained and the session can be
// loaded again later.
func (s *Service) Close(ctx context.Context, name string) error {
	if err := domain.ValidateSessionName(name); err != nil {
		return err
	}

	if err := s.sessions.SetStatus(ctx, name, domain.SessionClosed); err != nil {
		return fmt.Errorf("close session: %w", err)
	}

	s.notify.Broadcast("session_closed")

	s.log.InfoContext(ctx, "session closed", slog.String("name", name))
	return nil
}
