package scheduling

import (
	"time"

	"autoshop/models"
)

// BoundedOverlap reports whether the half-open ranges [aStart, aEnd) and
// [bStart, bEnd) intersect: max(start) < min(end).
func BoundedOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// OpenTimerOverlap reports whether an open interval starting at openStart
// intersects a candidate ending at candEnd. An open interval is treated as
// extending indefinitely, so it blocks any candidate ending after its
// start; where the candidate begins cannot change the outcome.
func OpenTimerOverlap(openStart, candEnd time.Time) bool {
	return candEnd.After(openStart)
}

// Overlaps is the generic conflict test between two intervals. Bounded
// pairs use the half-open rule; an interval without an end is treated as
// indefinitely open (it blocks everything from its start onward), which is
// the one consistent rule this engine applies to running timers. Pure,
// deterministic, no I/O.
func Overlaps(a, b models.Interval) bool {
	switch {
	case a.Open() && b.Open():
		// Two unbounded ranges always share instants.
		return true
	case a.Open():
		return OpenTimerOverlap(a.Start, *b.End)
	case b.Open():
		return OpenTimerOverlap(b.Start, *a.End)
	default:
		return BoundedOverlap(a.Start, *a.End, b.Start, *b.End)
	}
}

// TimerOverlapRule is the authoritative overlap test for manually entered
// time-log candidates with explicit start and end. A candidate overlaps an
// existing entry e if any of:
//
//  1. the candidate start falls within e,
//  2. the candidate end falls within e,
//  3. the candidate fully contains e,
//  4. e is an open active entry whose start is before the candidate end.
//
// The union is deliberately checked case by case (not reduced to the
// generic half-open rule) so a currently running timer is always caught.
// Boundaries stay half-open: an entry ending exactly when the candidate
// starts does not overlap.
func TimerOverlapRule(candStart, candEnd time.Time, e models.Interval) bool {
	if e.Open() {
		return e.Status == models.IntervalActive && e.Start.Before(candEnd)
	}
	end := *e.End
	switch {
	case !candStart.Before(e.Start) && candStart.Before(end): // case 1
		return true
	case candEnd.After(e.Start) && !candEnd.After(end): // case 2
		return true
	case !e.Start.Before(candStart) && !end.After(candEnd): // case 3
		return true
	}
	return false
}
