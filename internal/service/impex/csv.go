package impex

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

func (s *Service) writeCSV(path string, info SessionInfo, records []InfringementRecord) (*ExportResult, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create export file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	rows := [][]string{
		{"Session Information"},
		{"Name", info.Name},
		{"Status", info.Status},
		{"Started At", strOrEmpty(info.StartedAt)},
		{},
		{"Infringements"},
		infringementHeaders,
	}
	for _, rec := range records {
		rows = append(rows, []string{
			strconv.FormatInt(rec.ID, 10),
			strconv.Itoa(rec.KartNumber),
			strOrEmpty(rec.TurnNumber),
			rec.Description,
			strOrEmpty(rec.Observer),
			strconv.Itoa(rec.WarningCount),
			rec.PenaltyDue,
			strOrEmpty(rec.PenaltyDescription),
			strOrEmpty(rec.PenaltyTaken),
			strOrEmpty(rec.Timestamp),
		})
	}

	hasHistory := false
	for _, rec := range records {
		if len(rec.History) > 0 {
			hasHistory = true
			break
		}
	}
	if hasHistory {
		rows = append(rows, []string{}, []string{"Infringement History"}, historyHeaders)
		for _, rec := range records {
			for _, h := range rec.History {
				rows = append(rows, []string{
					strconv.FormatInt(rec.ID, 10),
					h.Action,
					h.PerformedBy,
					strOrEmpty(h.Observer),
					strOrEmpty(h.Details),
					strOrEmpty(h.Timestamp),
				})
			}
		}
	}

	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}

	return &ExportResult{
		Path:      path,
		Filename:  filepath.Base(path),
		MediaType: "text/csv",
	}, nil
}

func parseCSV(r io.Reader) (SessionInfo, []InfringementRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return SessionInfo{}, nil, fmt.Errorf("read csv: %w", err)
	}

	info := parseSessionInfo(rows)
	records := parseInfringementRows(rows)
	attachHistory(records, parseHistoryRows(rows))
	return info, records, nil
}
