package infringement

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pitlane/racecontrol/internal/domain"
)

// Create logs a new infringement in the active session, computing the
// warning/penalty snapshot and recording the action in the audit trail.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Infringement, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	session, err := s.sessions.Active(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	snap, err := s.classify(ctx, session.Name, input.KartNumber, input.Description, input.PenaltyDescription, 0, now)
	if err != nil {
		return nil, fmt.Errorf("classify: %w", err)
	}

	var created *domain.Infringement
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var createErr error
		created, createErr = s.repo.Create(txCtx, domain.Infringement{
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
		if createErr != nil {
			return fmt.Errorf("create infringement: %w", createErr)
		}

		details := fmt.Sprintf("%s | warning_count=%d | penalty_due=%s | penalty_description=%s",
			input.Description, snap.warningCount, snap.penaltyDue, strOrEmpty(snap.penaltyDescription))
		histErr := s.history.Append(txCtx, domain.HistoryEntry{
			SessionName:    session.Name,
			InfringementID: created.ID,
			Action:         domain.HistoryCreated,
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

	s.notify.Broadcast("new_infringement")

	s.log.InfoContext(ctx, "infringement created",
		slog.Int64("id", created.ID),
		slog.Int("kart", created.KartNumber),
		slog.String("penalty_due", created.PenaltyDue),
		slog.Int("warning_count", created.WarningCount),
	)

	return created, nil
}
