package domain

import (
	"strings"
	"time"
)

// StatusLabel is the single display classification of an infringement.
// Exactly one label applies to any record; every rendering surface must use
// this derivation rather than reimplementing it.
type StatusLabel string

const (
	StatusApplied  StatusLabel = "Applied"
	StatusExpired  StatusLabel = "Expired"
	StatusWarning  StatusLabel = "Warning"
	StatusNoAction StatusLabel = "No action"
	StatusPending  StatusLabel = "Pending"
	StatusCleared  StatusLabel = "Cleared"
)

// Status derives the display label for an infringement at the given time.
// Labels are evaluated in strict priority order: Applied, Expired, Warning,
// No action, Pending, Cleared.
func Status(i *Infringement, now time.Time, expiry time.Duration) StatusLabel {
	switch {
	case i.IsApplied():
		return StatusApplied
	case i.IsExpired(now, expiry):
		return StatusExpired
	case i.IsWarning():
		return StatusWarning
	case i.PenaltyDescription != nil &&
		strings.EqualFold(strings.TrimSpace(*i.PenaltyDescription), PenaltyNoFurtherAction):
		return StatusNoAction
	case i.IsPending():
		return StatusPending
	default:
		return StatusCleared
	}
}
