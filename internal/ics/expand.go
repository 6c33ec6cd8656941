package ics

import (
	"math"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/teambition/rrule-go"

	"github.com/Nixie-Tech-LLC/mosque-rota/internal/interval"
)

// maxOccurrencesPerEvent caps RRULE expansion.
const maxOccurrencesPerEvent = 5000

// Expand turns events into concrete intervals that intersect [from, to].
// Recurring events are expanded with their RRULE and EXDATEs; each
// occurrence keeps the duration of the first one. An occurrence replaced by
// a RECURRENCE-ID override is dropped from its series and the override
// stands on its own. Cancelled events contribute nothing.
func Expand(events []Event, from, to time.Time) []interval.Interval {
	overridden := make(map[string][]time.Time)
	for _, ev := range events {
		if ev.Override() {
			overridden[ev.UID] = append(overridden[ev.UID], *ev.RecurrenceID)
		}
	}

	out := make([]interval.Interval, 0, len(events))
	for _, ev := range events {
		if ev.Cancelled {
			continue
		}
		if !ev.Recurring() || ev.Override() {
			if !ev.End.Before(from) && !ev.Start.After(to) {
				out = append(out, interval.Interval{Start: ev.Start, End: ev.End})
			}
			continue
		}
		out = append(out, expandRecurring(ev, overridden[ev.UID], from, to)...)
	}
	interval.SortByStart(out)
	return out
}

func expandRecurring(ev Event, overridden []time.Time, from, to time.Time) []interval.Interval {
	r, err := rrule.StrToRRule(ev.RawRRule)
	if err != nil {
		log.Debug().Err(err).Str("uid", ev.UID).Str("rrule", ev.RawRRule).Msg("failed to parse RRULE")
		return nil
	}
	r.DTStart(ev.Start)

	loc := ev.Start.Location()
	var set rrule.Set
	set.RRule(r)
	for _, ex := range ev.ExDates {
		set.ExDate(ex.In(loc))
	}
	for _, rid := range overridden {
		set.ExDate(rid.In(loc))
	}

	dur := ev.End.Sub(ev.Start)
	// An occurrence starting up to one duration before from can still be running.
	starts := set.Between(from.Add(-dur).In(loc), to.In(loc), true)
	if len(starts) > maxOccurrencesPerEvent {
		log.Warn().Str("uid", ev.UID).Int("cap", maxOccurrencesPerEvent).Msg("recurring event truncated")
		starts = starts[:maxOccurrencesPerEvent]
	}

	out := make([]interval.Interval, 0, len(starts))
	for _, s := range starts {
		end := s.Add(dur)
		if ev.AllDay {
			// Whole local days, so DST changes do not shift midnight.
			end = s.AddDate(0, 0, int(math.Round(dur.Hours()/24)))
		}
		if end.Before(from) {
			continue
		}
		out = append(out, interval.Interval{Start: s, End: end})
	}
	return out
}
