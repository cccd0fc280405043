package scheduling

import (
	"strings"
	"time"
)

// Snapshot is the caller-supplied, point-in-time list of existing assignments
// the detector reasons over. The detector never modifies it.
type Snapshot []ExistingAssignment

// Active returns the Scheduled and InProgress assignments in snapshot order
func (s Snapshot) Active() Snapshot {
	active := make(Snapshot, 0, len(s))
	for _, a := range s {
		if a.Status.IsActive() {
			active = append(active, a)
		}
	}
	return active
}

// Filter returns the assignments matching keep, in snapshot order
func (s Snapshot) Filter(keep func(ExistingAssignment) bool) Snapshot {
	filtered := make(Snapshot, 0)
	for _, a := range s {
		if keep(a) {
			filtered = append(filtered, a)
		}
	}
	return filtered
}

// SameDay reports whether a and b fall on the same calendar date.
// Each time is read in its own location; time-of-day is ignored.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DateOnly truncates t to midnight UTC on its calendar date
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameWorker compares worker emails case-insensitively
func SameWorker(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// SameUnit reports whether the assignment is in the given property and unit.
// Codes compare case-insensitively with surrounding whitespace ignored.
func (a ExistingAssignment) SameUnit(propertyCode, unitNumber string) bool {
	return strings.EqualFold(strings.TrimSpace(a.PropertyCode), strings.TrimSpace(propertyCode)) &&
		strings.EqualFold(strings.TrimSpace(a.UnitNumber), strings.TrimSpace(unitNumber))
}
