package infringement

import (
	"context"
	"fmt"

	"github.com/pitlane/racecontrol/internal/domain"
)

// View is an infringement decorated with the derived display fields. The
// escalation flag and status label are recomputed on every call from the
// full snapshot; they are never stored.
type View struct {
	domain.Infringement
	EscalationFlag bool
	Status         domain.StatusLabel
}

// List returns all infringements of the active session, newest first, with
// derived escalation flags and status labels.
func (s *Service) List(ctx context.Context) ([]View, error) {
	session, err := s.sessions.Active(ctx)
	if err != nil {
		return nil, err
	}

	infs, err := s.repo.List(ctx, session.Name)
	if err != nil {
		return nil, fmt.Errorf("list infringements: %w", err)
	}

	expiry, err := s.expiry.WarningExpiry(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	flags := domain.EscalationFlags(infs, now, expiry)

	views := make([]View, len(infs))
	for i := range infs {
		views[i] = View{
			Infringement:   infs[i],
			EscalationFlag: flags[infs[i].ID],
			Status:         domain.Status(&infs[i], now, expiry),
		}
	}
	return views, nil
}

// Log returns the raw infringement records of the active session, newest
// first, without derived fields.
func (s *Service) Log(ctx context.Context) ([]domain.Infringement, error) {
	session, err := s.sessions.Active(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, session.Name)
}

// KartHistory returns the audit trail of every infringement logged against a
// kart in the active session, newest first. Returns domain.ErrNotFound when
// the kart has no infringements.
func (s *Service) KartHistory(ctx context.Context, kart int) ([]domain.HistoryEntry, error) {
	if kart <= 0 {
		return nil, domain.NewValidationError("kart_number", "must be a positive integer")
	}

	session, err := s.sessions.Active(ctx)
	if err != nil {
		return nil, err
	}

	infs, err := s.repo.ListByKart(ctx, session.Name, kart)
	if err != nil {
		return nil, fmt.Errorf("list by kart: %w", err)
	}
	if len(infs) == 0 {
		return nil, fmt.Errorf("kart %d: %w", kart, domain.ErrNotFound)
	}

	ids := make([]int64, len(infs))
	for i, inf := range infs {
		ids[i] = inf.ID
	}
	return s.history.ListByInfringementIDs(ctx, session.Name, ids)
}
