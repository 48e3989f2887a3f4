package impex

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pitlane/racecontrol/internal/domain"
)

// Export writes a full snapshot of the named session to a file in the export
// directory and returns its location. Any session can be exported, not only
// the active one.
func (s *Service) Export(ctx context.Context, name, format string) (*ExportResult, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	switch format {
	case FormatJSON, FormatCSV, FormatExcel:
	case "":
		format = FormatJSON
	default:
		return nil, domain.NewValidationError("format", "must be 'json', 'csv', or 'excel'")
	}

	if err := domain.ValidateSessionName(name); err != nil {
		return nil, err
	}

	session, err := s.sessions.GetByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	var (
		infs    []domain.Infringement
		entries []domain.HistoryEntry
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		infs, err = s.infringements.List(gctx, session.Name)
		if err != nil {
			return fmt.Errorf("list infringements: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		entries, err = s.history.ListBySession(gctx, session.Name)
		if err != nil {
			return fmt.Errorf("list history: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	trailByID := make(map[int64][]HistoryRecord)
	for _, e := range entries {
		trailByID[e.InfringementID] = append(trailByID[e.InfringementID], HistoryRecord{
			Action:      e.Action,
			PerformedBy: e.PerformedBy,
			Observer:    e.Observer,
			Details:     e.Details,
			Timestamp:   formatTimePtr(&e.Timestamp),
		})
	}

	records := make([]InfringementRecord, len(infs))
	for i, inf := range infs {
		ts := inf.Timestamp
		records[i] = InfringementRecord{
			ID:                 inf.ID,
			KartNumber:         inf.KartNumber,
			TurnNumber:         inf.TurnNumber,
			Description:        inf.Description,
			Observer:           inf.Observer,
			WarningCount:       inf.WarningCount,
			PenaltyDue:         inf.PenaltyDue,
			PenaltyDescription: inf.PenaltyDescription,
			PenaltyTaken:       formatTimePtr(inf.PenaltyTaken),
			Timestamp:          formatTimePtr(&ts),
			History:            trailByID[inf.ID],
		}
	}

	info := SessionInfo{
		Name:      session.Name,
		Status:    session.Status,
		StartedAt: formatTimePtr(session.StartedAt),
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}

	now := s.now()
	base := fmt.Sprintf("%s_%s", safeFilename(session.Name), now.Format("20060102_150405"))

	var result *ExportResult
	switch format {
	case FormatJSON:
		result, err = s.writeJSON(filepath.Join(s.dir, base+".json"), info, records, now)
	case FormatCSV:
		result, err = s.writeCSV(filepath.Join(s.dir, base+".csv"), info, records)
	case FormatExcel:
		result, err = s.writeExcel(filepath.Join(s.dir, base+".xlsx"), info, records)
	}
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "session exported",
		slog.String("session", session.Name),
		slog.String("format", format),
		slog.String("file", result.Filename),
		slog.Int("infringements", len(records)),
	)

	return result, nil
}

func (s *Service) writeJSON(path string, info SessionInfo, records []InfringementRecord, now time.Time) (*ExportResult, error) {
	doc := Document{
		Session:       info,
		Infringements: records,
		ExportedAt:    now.Format(time.RFC3339),
	}

	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("marshal export: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("write export file: %w", err)
	}

	return &ExportResult{
		Path:      path,
		Filename:  filepath.Base(path),
		MediaType: "application/json",
	}, nil
}
