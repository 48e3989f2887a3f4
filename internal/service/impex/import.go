package impex

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/pitlane/racecontrol/internal/domain"
)

// Import restores a session from an export file. A new session is created
// with the name carried in the file (falling back to the file name), made
// active, and filled with the imported infringements and their audit trails.
// Infringement IDs are reassigned; every other field is preserved as
// exported. Importing over an existing session name is rejected.
func (s *Service) Import(ctx context.Context, filename string, r io.Reader) (*ImportResult, error) {
	var (
		info    SessionInfo
		records []InfringementRecord
		err     error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		info, records, err = parseJSON(r)
	case ".csv":
		info, records, err = parseCSV(r)
	case ".xlsx":
		info, records, err = parseExcel(r)
	default:
		return nil, domain.NewValidationError("file", "must be a .json, .csv, or .xlsx file")
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(filename), err)
	}

	name := strings.TrimSpace(info.Name)
	if name == "" {
		name = sessionNameFromFilename(filename)
	}
	if err := domain.ValidateSessionName(name); err != nil {
		return nil, err
	}

	if _, err := s.sessions.GetByName(ctx, name); err == nil {
		return nil, fmt.Errorf("session %q: %w", name, domain.ErrAlreadyExists)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("check session: %w", err)
	}

	now := s.now()
	startedAt := now
	if info.StartedAt != nil {
		if t := parseTime(*info.StartedAt); t != nil {
			startedAt = *t
		}
	}

	result := &ImportResult{SessionName: name}
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.sessions.CloseAll(txCtx); err != nil {
			return fmt.Errorf("close sessions: %w", err)
		}

		if _, err := s.sessions.Create(txCtx, domain.Session{
			Name:      name,
			Status:    domain.SessionActive,
			StartedAt: &startedAt,
		}); err != nil {
			return fmt.Errorf("create session: %w", err)
		}

		for _, rec := range records {
			ts := now
			if rec.Timestamp != nil {
				if t := parseTime(*rec.Timestamp); t != nil {
					ts = *t
				}
			}
			created, err := s.infringements.Create(txCtx, domain.Infringement{
				SessionName:        name,
				KartNumber:         rec.KartNumber,
				TurnNumber:         rec.TurnNumber,
				Description:        rec.Description,
				Observer:           rec.Observer,
				WarningCount:       rec.WarningCount,
				PenaltyDue:         rec.PenaltyDue,
				PenaltyDescription: rec.PenaltyDescription,
				PenaltyTaken:       parseTimePtr(rec.PenaltyTaken),
				Timestamp:          ts,
			})
			if err != nil {
				return fmt.Errorf("import infringement: %w", err)
			}
			result.Infringements++

			for _, h := range rec.History {
				hts := now
				if h.Timestamp != nil {
					if t := parseTime(*h.Timestamp); t != nil {
						hts = *t
					}
				}
				if err := s.history.Append(txCtx, domain.HistoryEntry{
					SessionName:    name,
					InfringementID: created.ID,
					Action:         h.Action,
					PerformedBy:    h.PerformedBy,
					Observer:       h.Observer,
					Details:        h.Details,
					Timestamp:      hts,
				}); err != nil {
					return fmt.Errorf("import history: %w", err)
				}
				result.HistoryRows++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notify.Broadcast("session_imported")

	s.log.InfoContext(ctx, "session imported",
		slog.String("session", name),
		slog.Int("infringements", result.Infringements),
		slog.Int("history_rows", result.HistoryRows),
	)

	return result, nil
}

func parseJSON(r io.Reader) (SessionInfo, []InfringementRecord, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return SessionInfo{}, nil, fmt.Errorf("decode json: %w", err)
	}
	return doc.Session, doc.Infringements, nil
}

func parseTimePtr(s *string) *time.Time {
	if s == nil {
		return nil
	}
	return parseTime(*s)
}
