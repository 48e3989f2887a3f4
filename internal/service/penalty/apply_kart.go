package penalty

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pitlane/racecontrol/internal/domain"
)

// ApplyAllForKart marks every pending penalty of one kart as served in a
// single transaction and records one audit entry for the batch. Returns
// domain.ErrConflict when the kart has nothing pending.
func (s *Service) ApplyAllForKart(ctx context.Context, kart int, performedBy string) ([]domain.Infringement, error) {
	if kart <= 0 {
		return nil, domain.NewValidationError("kart_number", "must be a positive integer")
	}
	performedBy = defaultPerformedBy(performedBy)

	session, err := s.sessions.Active(ctx)
	if err != nil {
		return nil, err
	}

	infs, err := s.repo.ListByKart(ctx, session.Name, kart)
	if err != nil {
		return nil, fmt.Errorf("list by kart: %w", err)
	}

	pending := make([]domain.Infringement, 0, len(infs))
	for _, inf := range infs {
		if inf.IsPending() {
			pending = append(pending, inf)
		}
	}
	if len(pending) == 0 {
		return nil, fmt.Errorf("kart %d: no pending penalties: %w", kart, domain.ErrConflict)
	}

	now := s.now()
	applied := make([]domain.Infringement, 0, len(pending))
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		for _, inf := range pending {
			taken, markErr := s.repo.MarkPenaltyTaken(txCtx, session.Name, inf.ID, now)
			if markErr != nil {
				return fmt.Errorf("mark penalty taken %d: %w", inf.ID, markErr)
			}
			applied = append(applied, *taken)
		}

		details := fmt.Sprintf("Applied %d pending penalties for kart %d", len(pending), kart)
		histErr := s.history.Append(txCtx, domain.HistoryEntry{
			SessionName:    session.Name,
			InfringementID: pending[len(pending)-1].ID,
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

	s.log.InfoContext(ctx, "all pending penalties applied",
		slog.Int("kart", kart),
		slog.Int("count", len(applied)),
	)

	return applied, nil
}
