package domain

import (
	"sort"
	"strings"
	"time"
)

// Infringement types subject to warning accrual. Everything else is
// classified manually by the operator and never accumulates warnings.
const (
	AccrualWhiteLine  = "white line infringement"
	AccrualYellowZone = "yellow zone"
)

// AccrualType normalizes an infringement description to its accrual category.
// Returns the empty string for descriptions outside the tracked categories.
// Matching is a case-insensitive substring check, so controlled-vocabulary
// entries like "White Line Infringement - Turn 3" still accrue.
func AccrualType(description string) string {
	d := strings.ToLower(description)
	switch {
	case strings.Contains(d, AccrualWhiteLine):
		return AccrualWhiteLine
	case strings.Contains(d, AccrualYellowZone):
		return AccrualYellowZone
	default:
		return ""
	}
}

// CycleStart returns the start of the current accrual cycle for one kart and
// accrual type: the later of (now − expiry) and the timestamp of the most
// recent prior occurrence that itself triggered a penalty. Warnings at or
// before the cycle start do not count toward escalation.
func CycleStart(prior []Infringement, kart int, accrualType string, now time.Time, expiry time.Duration) time.Time {
	start := now.Add(-expiry)
	for i := range prior {
		p := &prior[i]
		if p.KartNumber != kart || AccrualType(p.Description) != accrualType {
			continue
		}
		if p.TriggeredPenalty() && p.Timestamp.After(start) {
			start = p.Timestamp
		}
	}
	return start
}

// OccurrencePosition evaluates a new occurrence for a kart and accrual type
// at time now: it counts the live warnings inside the current cycle among the
// prior records and returns the 1-based position the new occurrence would
// take. Position 1 and 2 are warnings; position 3 and beyond call for a real
// penalty outcome.
func OccurrencePosition(prior []Infringement, kart int, accrualType string, now time.Time, expiry time.Duration) int {
	start := CycleStart(prior, kart, accrualType, now, expiry)

	count := 0
	for i := range prior {
		p := &prior[i]
		if p.KartNumber != kart || AccrualType(p.Description) != accrualType {
			continue
		}
		if p.IsLiveWarning(now, expiry) && p.Timestamp.After(start) {
			count++
		}
	}
	return count + 1
}

// EscalationFlags recomputes the display-only "next warning escalates" flag
// for every record in the snapshot. The flag is true for a record that is a
// live warning sitting at position 2 of its kart+type cycle at render time.
// The result is keyed by infringement ID; absent means false.
//
// The computation is pure: it never mutates the snapshot and may run
// concurrently for any number of views.
func EscalationFlags(snapshot []Infringement, now time.Time, expiry time.Duration) map[int64]bool {
	type groupKey struct {
		kart int
		typ  string
	}

	groups := make(map[groupKey][]*Infringement)
	for i := range snapshot {
		inf := &snapshot[i]
		typ := AccrualType(inf.Description)
		if typ == "" {
			continue
		}
		k := groupKey{kart: inf.KartNumber, typ: typ}
		groups[k] = append(groups[k], inf)
	}

	flags := make(map[int64]bool)
	for _, group := range groups {
		sort.Slice(group, func(a, b int) bool {
			return group[a].Timestamp.Before(group[b].Timestamp)
		})

		// Walk ascending: a penalty-triggering occurrence resets the cycle,
		// expiry trims the left edge.
		cutoff := now.Add(-expiry)
		position := 0
		for _, inf := range group {
			if inf.TriggeredPenalty() {
				position = 0
				continue
			}
			if !inf.IsLiveWarning(now, expiry) || !inf.Timestamp.After(cutoff) {
				continue
			}
			position++
			if position == 2 {
				flags[inf.ID] = true
			}
		}
	}
	return flags
}
