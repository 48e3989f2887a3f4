package impex

import (
	"strconv"
	"strings"
)

// Tabular parsing shared by the CSV and Excel readers. Both produce rows of
// strings in the same layout: optional session-info rows, a header row, data
// rows, and an optional history block keyed by the exported infringement ID.

func indexHeaders(row []string) map[string]int {
	idx := make(map[string]int, len(row))
	for i, h := range row {
		h = strings.TrimSpace(h)
		if h != "" {
			idx[h] = i
		}
	}
	return idx
}

func cell(row []string, headers map[string]int, name string) string {
	i, ok := headers[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func isInfringementHeader(row []string) bool {
	if len(row) == 0 {
		return false
	}
	first := strings.ToUpper(strings.TrimSpace(row[0]))
	return first == "ID" || first == "KART NUMBER"
}

func isHistoryHeader(row []string) bool {
	return len(row) > 0 && strings.TrimSpace(row[0]) == "Infringement ID"
}

// parseSessionInfo reads the key/value rows above the infringement header.
func parseSessionInfo(rows [][]string) SessionInfo {
	var info SessionInfo
	for _, row := range rows {
		if isInfringementHeader(row) {
			break
		}
		if len(row) < 2 {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(row[0]))
		value := strings.TrimSpace(row[1])
		if value == "" {
			continue
		}
		switch {
		case strings.Contains(key, "name"):
			info.Name = value
		case strings.Contains(key, "status"):
			info.Status = value
		case strings.Contains(key, "started"):
			info.StartedAt = &value
		}
	}
	return info
}

// parseInfringementRows reads data rows following the first infringement
// header row. Rows without a kart number and description are skipped; a
// history section title ends the block.
func parseInfringementRows(rows [][]string) []InfringementRecord {
	headerIdx := -1
	for i, row := range rows {
		if isInfringementHeader(row) {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return nil
	}

	headers := indexHeaders(rows[headerIdx])
	var records []InfringementRecord
	for _, row := range rows[headerIdx+1:] {
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		if strings.Contains(row[0], "History") {
			break
		}

		kart, _ := strconv.Atoi(cell(row, headers, "Kart Number"))
		desc := cell(row, headers, "Description")
		if kart <= 0 || desc == "" {
			continue
		}

		id, _ := strconv.ParseInt(cell(row, headers, "ID"), 10, 64)
		warnings, _ := strconv.Atoi(cell(row, headers, "Warning Count"))
		due := cell(row, headers, "Penalty Due")
		if due == "" {
			due = "No"
		}

		records = append(records, InfringementRecord{
			ID:                 id,
			KartNumber:         kart,
			TurnNumber:         ptrOrNil(cell(row, headers, "Turn Number")),
			Description:        desc,
			Observer:           ptrOrNil(cell(row, headers, "Observer")),
			WarningCount:       warnings,
			PenaltyDue:         due,
			PenaltyDescription: ptrOrNil(cell(row, headers, "Penalty Description")),
			PenaltyTaken:       ptrOrNil(cell(row, headers, "Penalty Taken")),
			Timestamp:          ptrOrNil(cell(row, headers, "Timestamp")),
		})
	}
	return records
}

// parseHistoryRows reads the audit block and groups entries by the exported
// infringement ID they reference.
func parseHistoryRows(rows [][]string) map[int64][]HistoryRecord {
	headerIdx := -1
	for i, row := range rows {
		if isHistoryHeader(row) {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return nil
	}

	headers := indexHeaders(rows[headerIdx])
	trail := make(map[int64][]HistoryRecord)
	for _, row := range rows[headerIdx+1:] {
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}

		id, _ := strconv.ParseInt(cell(row, headers, "Infringement ID"), 10, 64)
		action := cell(row, headers, "Action")
		if id == 0 || action == "" {
			continue
		}

		trail[id] = append(trail[id], HistoryRecord{
			Action:      action,
			PerformedBy: cell(row, headers, "Performed By"),
			Observer:    ptrOrNil(cell(row, headers, "Observer")),
			Details:     ptrOrNil(cell(row, headers, "Details")),
			Timestamp:   ptrOrNil(cell(row, headers, "Timestamp")),
		})
	}
	return trail
}

func attachHistory(records []InfringementRecord, trail map[int64][]HistoryRecord) {
	for i := range records {
		records[i].History = trail[records[i].ID]
	}
}
