package domain

import (
	"strings"
	"time"
)

// PenaltyDue values. Stored as text for parity with exported spreadsheets,
// where race officials read the column directly.
const (
	PenaltyDueYes = "Yes"
	PenaltyDueNo  = "No"
)

// Well-known penalty classifications.
const (
	PenaltyWarning         = "Warning"
	PenaltyNoFurtherAction = "No further action"
)

// Infringement is a single logged rule violation tied to a kart and timestamp.
//
// WarningCount, PenaltyDue and PenaltyDescription are snapshots computed when
// the record is created (or explicitly edited); they are never recomputed when
// other records change. PenaltyTaken is stamped exactly once, by the
// apply-penalty operation.
type Infringement struct {
	ID                 int64
	SessionName        string
	KartNumber         int
	TurnNumber         *string
	Description        string
	Observer           *string
	WarningCount       int
	PenaltyDue         string
	PenaltyDescription *string
	PenaltyTaken       *time.Time
	Timestamp          time.Time
}

// IsWarning reports whether the record was classified as a warning.
func (i *Infringement) IsWarning() bool {
	return i.PenaltyDescription != nil &&
		strings.EqualFold(strings.TrimSpace(*i.PenaltyDescription), PenaltyWarning)
}

// IsExpired reports whether a warning is older than the expiry window.
// Non-warnings never expire.
func (i *Infringement) IsExpired(now time.Time, expiry time.Duration) bool {
	return i.IsWarning() && now.Sub(i.Timestamp) > expiry
}

// IsLiveWarning reports whether the record is an unexpired warning that did
// not itself trigger a penalty.
func (i *Infringement) IsLiveWarning(now time.Time, expiry time.Duration) bool {
	return i.IsWarning() && i.PenaltyDue == PenaltyDueNo && !i.IsExpired(now, expiry)
}

// HasMeaningfulPenalty reports whether the penalty classification is a real
// consequence: not empty, not a warning, not "No further action".
func (i *Infringement) HasMeaningfulPenalty() bool {
	return IsMeaningfulPenalty(i.PenaltyDescription)
}

// TriggeredPenalty reports whether this occurrence carries a real penalty
// outcome. It is the cycle-reset marker for warning accrual and deliberately
// ignores PenaltyDue, which flips from Yes to No when the penalty is served.
func (i *Infringement) TriggeredPenalty() bool {
	return i.HasMeaningfulPenalty()
}

// IsPending reports whether the infringement awaits operator action:
// a meaningful, unresolved consequence.
func (i *Infringement) IsPending() bool {
	return i.PenaltyDue == PenaltyDueYes && i.HasMeaningfulPenalty()
}

// IsApplied reports whether a meaningful penalty has been served.
func (i *Infringement) IsApplied() bool {
	return i.PenaltyDue == PenaltyDueNo && i.PenaltyTaken != nil && i.HasMeaningfulPenalty()
}

// IsMeaningfulPenalty reports whether desc names a real consequence.
func IsMeaningfulPenalty(desc *string) bool {
	if desc == nil {
		return false
	}
	d := strings.TrimSpace(*desc)
	if d == "" {
		return false
	}
	return !strings.EqualFold(d, PenaltyWarning) && !strings.EqualFold(d, PenaltyNoFurtherAction)
}
