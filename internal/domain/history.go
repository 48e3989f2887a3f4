package domain

import "time"

// History actions. Matches the values written to exports, so renaming one is
// a data-format change.
const (
	HistoryCreated        = "created"
	HistoryUpdated        = "updated"
	HistoryDeleted        = "deleted"
	HistoryPenaltyApplied = "penalty_applied"
)

// HistoryEntry is an append-only audit record of an action taken on an
// infringement. Entries are never mutated and survive deletion of the
// infringement they describe.
type HistoryEntry struct {
	ID             int64
	SessionName    string
	InfringementID int64
	Action         string
	PerformedBy    string
	Observer       *string
	Details        *string
	Timestamp      time.Time
}
