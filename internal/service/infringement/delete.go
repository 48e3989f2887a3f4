package infringement

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pitlane/racecontrol/internal/domain"
)

// Delete removes an infringement from the active session. The audit entry is
// written first so the trail outlives the record; the deleted infringement
// drops out of all subsequent accrual and pending-penalty computations.
func (s *Service) Delete(ctx context.Context, id int64, performedBy string) error {
	if id <= 0 {
		return domain.NewValidationError("id", "required")
	}
	if performedBy == "" {
		performedBy = "system"
	}

	session, err := s.sessions.Active(ctx)
	if err != nil {
		return err
	}

	inf, err := s.repo.GetByID(ctx, session.Name, id)
	if err != nil {
		return fmt.Errorf("get infringement: %w", err)
	}

	now := s.now()
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		details := fmt.Sprintf("Deleted infringement %d: %s", id, inf.Description)
		histErr := s.history.Append(txCtx, domain.HistoryEntry{
			SessionName:    session.Name,
			InfringementID: id,
			Action:         domain.HistoryDeleted,
			PerformedBy:    performedBy,
			Observer:       inf.Observer,
			Details:        &details,
			Timestamp:      now,
		})
		if histErr != nil {
			return fmt.Errorf("history: %w", histErr)
		}

		if deleteErr := s.repo.Delete(txCtx, session.Name, id); deleteErr != nil {
			return fmt.Errorf("delete infringement: %w", deleteErr)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.notify.Broadcast("delete_infringement")

	s.log.InfoContext(ctx, "infringement deleted",
		slog.Int64("id", id),
		slog.Int("kart", inf.KartNumber),
	)

	return nil
}
