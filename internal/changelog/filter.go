package changelog

import "time"

// FilterWeek keeps the events whose week bucket equals the supplied
// identifier. An empty bucket is a no-op. The input is never mutated; a
// fresh slice is returned.
func FilterWeek(events []LinkedEvent, bucket string) []LinkedEvent {
	if bucket == "" {
		return events
	}
	out := make([]LinkedEvent, 0, len(events))
	for _, ev := range events {
		if ev.WeekBucket == bucket {
			out = append(out, ev)
		}
	}
	return out
}

// FilterDateRange keeps the events whose date falls within [from, to]
// inclusive, comparing calendar days.
//
// Both bounds are required to activate the filter: if either is the zero
// time the whole filter is a no-op. This mirrors the source system's
// conjunction check and is a documented policy: a range with only a start
// date retains every event rather than filtering open-endedly.
func FilterDateRange(events []LinkedEvent, from, to time.Time) []LinkedEvent {
	if from.IsZero() || to.IsZero() {
		return events
	}
	lo, hi := DayOf(from), DayOf(to)
	out := make([]LinkedEvent, 0, len(events))
	for _, ev := range events {
		if !ev.Date.Before(lo) && !ev.Date.After(hi) {
			out = append(out, ev)
		}
	}
	return out
}
