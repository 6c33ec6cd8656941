// Package interval implements the time-range arithmetic shared by shift,
// prayer-window and break lookups.
//
// All ranges are half-open, [Start, End), unless a method says otherwise.
// Two ranges that only share an endpoint do not overlap.
package interval

import (
	"sort"
	"time"
)

// MinutesPerDay is the exclusive upper bound of a minute-of-day value.
const MinutesPerDay = 24 * 60

// Interval is a half-open range of instants.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether a and b share at least one non-boundary instant.
func Overlaps(a, b Interval) bool {
	return a.Start.Before(b.End) && a.End.After(b.Start)
}

// Contains reports whether t lies in [Start, End).
func (i Interval) Contains(t time.Time) bool {
	return !t.Before(i.Start) && t.Before(i.End)
}

// ContainsInclusive reports whether t lies in [Start, End].
// "Who's on" uses this so a worker is still listed at the exact minute a
// shift ends.
func (i Interval) ContainsInclusive(t time.Time) bool {
	return !t.Before(i.Start) && !t.After(i.End)
}

// Valid reports whether the interval has a positive length.
func (i Interval) Valid() bool {
	return i.End.After(i.Start)
}

// MinuteRange is a half-open range of minutes since midnight.
type MinuteRange struct {
	Start int
	End   int
}

// Overlaps reports whether r and o share at least one minute.
func (r MinuteRange) Overlaps(o MinuteRange) bool {
	return r.Start < o.End && r.End > o.Start
}

// Contains reports whether minute lies in [Start, End).
func (r MinuteRange) Contains(minute int) bool {
	return minute >= r.Start && minute < r.End
}

// Keyed pairs a MinuteRange with the identifier of the record it came from.
type Keyed struct {
	Key   string
	Range MinuteRange
}

// OverlapPairs returns, for every key, the keys of the other ranges it
// overlaps, in input order. Keys that overlap nothing map to an empty slice.
func OverlapPairs(items []Keyed) map[string][]string {
	out := make(map[string][]string, len(items))
	for i, a := range items {
		others := make([]string, 0)
		for j, b := range items {
			if i == j {
				continue
			}
			if a.Range.Overlaps(b.Range) {
				others = append(others, b.Key)
			}
		}
		out[a.Key] = others
	}
	return out
}

// MinuteOfDay returns the number of minutes since midnight of t in its own
// location.
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// AtMinute returns the instant minute minutes after midnight of the calendar
// day of date in loc. minute may be MinutesPerDay to address the next midnight.
func AtMinute(date time.Time, minute int, loc *time.Location) time.Time {
	y, m, d := date.In(loc).Date()
	return time.Date(y, m, d, 0, minute, 0, 0, loc)
}

// SortByStart orders intervals by start instant, then end.
func SortByStart(in []Interval) {
	sort.Slice(in, func(i, j int) bool {
		if in[i].Start.Equal(in[j].Start) {
			return in[i].End.Before(in[j].End)
		}
		return in[i].Start.Before(in[j].Start)
	})
}
