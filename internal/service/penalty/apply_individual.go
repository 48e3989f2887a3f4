package penalty

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pitlane/racecontrol/internal/domain"
)

// ApplyIndividual marks a single pending penalty as served, stamping the
// serve time exactly once. The stored warning count and classification are
// left untouched. Returns domain.ErrConflict when nothing is pending on the
// record.
func (s *Service) ApplyIndividual(ctx context.Context, id int64, performedBy string) (*domain.Infringement, error) {
	if id <= 0 {
		return nil, domain.NewValidationError("id", "required")
	}
	performedBy = defaultPerformedBy(performedBy)

	session, err := s.sessions.Active(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	var applied *domain.Infringement
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var markErr error
		applied, markErr = s.repo.MarkPenaltyTaken(txCtx, session.Name, id, now)
		if markErr != nil {
			return fmt.Errorf("mark penalty taken: %w", markErr)
		}

		details := fmt.Sprintf("Individual penalty applied: %s", strOrEmpty(applied.PenaltyDescription))
		histErr := s.history.Append(txCtx, domain.HistoryEntry{
			SessionName:    session.Name,
			InfringementID: id,
			Action:         domain.HistoryPenaltyApplied,
			PerformedBy:    performedBy,
			Details:        &details,
			Timestamp:      now,
		})
		if histErr != nil {
			return fmt.Errorf("history: %w", histErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notify.Broadcast("penalty_applied")

	s.log.InfoContext(ctx, "penalty applied",
		slog.Int64("id", applied.ID),
		slog.Int("kart", applied.KartNumber),
		slog.String("penalty", strOrEmpty(applied.PenaltyDescription)),
	)

	return applied, nil
}
