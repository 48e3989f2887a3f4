package infringement

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pitlane/racecontrol/internal/domain"
)

// Update rewrites an infringement's fields and recomputes its snapshot as if
// it were being logged now. Other records' stored fields are never touched.
func (s *Service) Update(ctx context.Context, input UpdateInput) (*domain.Infringement, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	session, err := s.sessions.Active(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByID(ctx, session.Name, input.ID); err != nil {
		return nil, fmt.Errorf("get infringement: %w", err)
	}

	now := s.now()
	snap, err := s.classify(ctx, session.Name, input.KartNumber, input.Description, input.PenaltyDescription, input.ID, now)
	if err != nil {
		return nil, fmt.Errorf("classify: %w", err)
	}

	var updated *domain.Infringement
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var updateErr error
		updated, updateErr = s.repo.Update(txCtx, domain.Infringement{
			ID:                 input.ID,
			SessionName:        session.Name,
			KartNumber:         input.KartNumber,
			TurnNumber:         trimOrNil(input.TurnNumber),
			Description:        input.Description,
			Observer:           trimOrNil(input.Observer),
			WarningCount:       snap.warningCount,
			PenaltyDue:         snap.penaltyDue,
			PenaltyDescription: snap.penaltyDescription,
			Timestamp:          now,
		})
		if updateErr != nil {
			return fmt.Errorf("update infringement: %w", updateErr)
		}

		details := fmt.Sprintf("Updated infringement %d: %s | warning_count=%d | penalty_due=%s",
			input.ID, input.Description, snap.warningCount, snap.penaltyDue)
		histErr := s.history.Append(txCtx, domain.HistoryEntry{
			SessionName:    session.Name,
			InfringementID: input.ID,
			Action:         domain.HistoryUpdated,
			PerformedBy:    input.PerformedBy,
			Observer:       trimOrNil(input.Observer),
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

	s.notify.Broadcast("update_infringement")

	s.log.InfoContext(ctx, "infringement updated",
		slog.Int64("id", updated.ID),
		slog.Int("kart", updated.KartNumber),
	)

	return updated, nil
}
