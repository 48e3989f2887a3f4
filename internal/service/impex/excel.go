package impex

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

const (
	sheetInfringements = "Infringements"
	sheetHistory       = "History"
)

// excelTime renders an exported timestamp as time-of-day, matching the
// spreadsheet layout officials read during an event. The date part is not
// recoverable from an Excel export.
func excelTime(s *string) string {
	if s == nil {
		return ""
	}
	if t := parseTime(*s); t != nil {
		return t.Format("15:04:05")
	}
	return *s
}

func (s *Service) writeExcel(path string, info SessionInfo, records []InfringementRecord) (*ExportResult, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetInfringements); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	if err != nil {
		return nil, fmt.Errorf("title style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"366092"}, Pattern: 1},
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	f.SetCellValue(sheetInfringements, "A1", "Session Information")
	f.SetCellStyle(sheetInfringements, "A1", "A1", titleStyle)
	f.SetCellValue(sheetInfringements, "A2", "Name:")
	f.SetCellValue(sheetInfringements, "B2", info.Name)
	f.SetCellValue(sheetInfringements, "A3", "Status:")
	f.SetCellValue(sheetInfringements, "B3", info.Status)
	f.SetCellValue(sheetInfringements, "A4", "Started At:")
	f.SetCellValue(sheetInfringements, "B4", strOrEmpty(info.StartedAt))

	const headerRow = 6
	rows := [][]any{toAnyRow(infringementHeaders)}
	for _, rec := range records {
		rows = append(rows, []any{
			rec.ID,
			rec.KartNumber,
			strOrEmpty(rec.TurnNumber),
			rec.Description,
			strOrEmpty(rec.Observer),
			rec.WarningCount,
			rec.PenaltyDue,
			strOrEmpty(rec.PenaltyDescription),
			excelTime(rec.PenaltyTaken),
			excelTime(rec.Timestamp),
		})
	}
	if err := writeSheet(f, sheetInfringements, headerRow, rows, headerStyle); err != nil {
		return nil, err
	}

	var historyRows [][]any
	for _, rec := range records {
		for _, h := range rec.History {
			historyRows = append(historyRows, []any{
				rec.ID,
				h.Action,
				h.PerformedBy,
				strOrEmpty(h.Observer),
				strOrEmpty(h.Details),
				excelTime(h.Timestamp),
			})
		}
	}
	if len(historyRows) > 0 {
		if _, err := f.NewSheet(sheetHistory); err != nil {
			return nil, fmt.Errorf("history sheet: %w", err)
		}
		sheet := append([][]any{toAnyRow(historyHeaders)}, historyRows...)
		if err := writeSheet(f, sheetHistory, 1, sheet, headerStyle); err != nil {
			return nil, err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return nil, fmt.Errorf("save excel: %w", err)
	}

	return &ExportResult{
		Path:      path,
		Filename:  filepath.Base(path),
		MediaType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	}, nil
}

// writeSheet places a header row plus data rows starting at startRow and
// sizes columns to their content.
func writeSheet(f *excelize.File, sheet string, startRow int, rows [][]any, headerStyle int) error {
	if len(rows) == 0 {
		return nil
	}

	widths := make([]float64, len(rows[0]))
	for i, row := range rows {
		for col, value := range row {
			cellName, err := excelize.CoordinatesToCellName(col+1, startRow+i)
			if err != nil {
				return fmt.Errorf("cell name: %w", err)
			}
			if err := f.SetCellValue(sheet, cellName, value); err != nil {
				return fmt.Errorf("set cell: %w", err)
			}
			if col < len(widths) {
				if w := float64(len(fmt.Sprint(value))) + 2; w > widths[col] {
					widths[col] = w
				}
			}
		}
	}

	first, err := excelize.CoordinatesToCellName(1, startRow)
	if err != nil {
		return fmt.Errorf("cell name: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(rows[0]), startRow)
	if err != nil {
		return fmt.Errorf("cell name: %w", err)
	}
	if err := f.SetCellStyle(sheet, first, last, headerStyle); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for col, width := range widths {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return fmt.Errorf("column name: %w", err)
		}
		if width > 50 {
			width = 50
		}
		if err := f.SetColWidth(sheet, name, name, width); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}
	return nil
}

func toAnyRow(headers []string) []any {
	row := make([]any, len(headers))
	for i, h := range headers {
		row[i] = h
	}
	return row
}

func parseExcel(r io.Reader) (SessionInfo, []InfringementRecord, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return SessionInfo{}, nil, fmt.Errorf("open excel: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetInfringements)
	if err != nil {
		return SessionInfo{}, nil, fmt.Errorf("missing %q sheet: %w", sheetInfringements, err)
	}

	info := parseSessionInfo(rows)
	records := parseInfringementRows(rows)

	for _, name := range f.GetSheetList() {
		if name != sheetHistory {
			continue
		}
		historyRows, err := f.GetRows(sheetHistory)
		if err != nil {
			return SessionInfo{}, nil, fmt.Errorf("read history sheet: %w", err)
		}
		attachHistory(records, parseHistoryRows(historyRows))
	}
	return info, records, nil
}
