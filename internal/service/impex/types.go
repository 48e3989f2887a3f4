package impex

// Document is the top-level JSON export structure.
type Document struct {
	Session       SessionInfo          `json:"session"`
	Infringements []InfringementRecord `json:"infringements"`
	ExportedAt    string               `json:"exported_at"`
}

// SessionInfo carries the exported session metadata.
type SessionInfo struct {
	Name      string  `json:"name"`
	Status    string  `json:"status"`
	StartedAt *string `json:"started_at"`
}

// InfringementRecord is one infringement with its audit trail attached.
// IDs are carried for history correlation only; import assigns new ones.
type InfringementRecord struct {
	ID                 int64           `json:"id"`
	KartNumber         int             `json:"kart_number"`
	TurnNumber         *string         `json:"turn_number"`
	Description        string          `json:"description"`
	Observer           *string         `json:"observer"`
	WarningCount       int             `json:"warning_count"`
	PenaltyDue         string          `json:"penalty_due"`
	PenaltyDescription *string         `json:"penalty_description"`
	PenaltyTaken       *string         `json:"penalty_taken"`
	Timestamp          *string         `json:"timestamp"`
	History            []HistoryRecord `json:"history"`
}

// HistoryRecord is one audit entry in an export file.
type HistoryRecord struct {
	Action      string  `json:"action"`
	PerformedBy string  `json:"performed_by"`
	Observer    *string `json:"observer"`
	Details     *string `json:"details"`
	Timestamp   *string `json:"timestamp"`
}

// Column headers shared by the CSV and Excel layouts. Import matches on
// these names, so they are part of the file format.
var infringementHeaders = []string{
	"ID", "Kart Number", "Turn Number", "Description", "Observer",
	"Warning Count", "Penalty Due", "Penalty Description", "Penalty Taken", "Timestamp",
}

var historyHeaders = []string{
	"Infringement ID", "Action", "Performed By", "Observer", "Details", "Timestamp",
}

// ExportResult describes a written export file.
type ExportResult struct {
	Path      string
	Filename  string
	MediaType string
}

// ImportResult describes a completed import.
type ImportResult struct {
	SessionName   string `json:"session_name"`
	Infringements int    `json:"infringements"`
	HistoryRows   int    `json:"history_rows"`
}
