package ics

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/rs/zerolog/log"
)

// Event is a VEVENT reduced to what shift lookups need.
type Event struct {
	UID     string
	Summary string
	Start   time.Time
	End     time.Time
	AllDay  bool

	RawRRule string
	ExDates  []time.Time

	// RecurrenceID is set on an event that replaces one occurrence of the
	// recurring event with the same UID.
	RecurrenceID *time.Time
	Cancelled    bool
}

// Recurring reports whether the event carries an RRULE.
func (e Event) Recurring() bool {
	return e.RawRRule != ""
}

// Override reports whether the event replaces an occurrence of a series.
func (e Event) Override() bool {
	return e.RecurrenceID != nil
}

// Parse reads a calendar document. Date-only and floating times are read in
// loc, which defaults to UTC. Events without a start, or without any way to
// work out an end, are skipped; a document that cannot be parsed at all is
// an error.
func Parse(body []byte, loc *time.Location) ([]Event, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, errors.New("empty calendar document")
	}
	if loc == nil {
		loc = time.UTC
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse calendar: %w", err)
	}

	events := make([]Event, 0)
	for _, ve := range cal.Events() {
		ev, err := parseVEvent(ve, loc)
		if err != nil {
			log.Debug().Err(err).Msg("skipping calendar event")
			continue
		}
		events = append(events, ev)
	}
	return events, nil
}

func parseVEvent(ve *ical.VEvent, loc *time.Location) (Event, error) {
	var out Event

	if p := ve.GetProperty(ical.ComponentPropertyUniqueId); p != nil {
		out.UID = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		out.Summary = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyStatus); p != nil {
		out.Cancelled = strings.EqualFold(strings.TrimSpace(p.Value), "CANCELLED")
	}

	startProp := ve.GetProperty(ical.ComponentPropertyDtStart)
	if startProp == nil {
		return out, fmt.Errorf("event %q: missing DTSTART", out.UID)
	}
	start, err := propTime(startProp, loc)
	if err != nil {
		return out, fmt.Errorf("event %q: start: %w", out.UID, err)
	}
	out.Start = start
	out.AllDay = dateOnly(startProp)

	end, err := eventEnd(ve, out, loc)
	if err != nil {
		return out, fmt.Errorf("event %q: end: %w", out.UID, err)
	}
	if !end.After(start) {
		return out, fmt.Errorf("event %q: end %s is not after start %s", out.UID, end, start)
	}
	out.End = end

	if p := ve.GetProperty(ical.ComponentPropertyRrule); p != nil {
		out.RawRRule = p.Value
	}

	for _, p := range ve.GetProperties(ical.ComponentPropertyExdate) {
		exLoc := propLocation(p, start.Location())
		for _, part := range strings.Split(p.Value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if t, err := parseICSTime(part, exLoc); err == nil {
				out.ExDates = append(out.ExDates, t)
			}
		}
	}

	if p := ve.GetProperty(ical.ComponentPropertyRecurrenceId); p != nil {
		rid, err := propTime(p, loc)
		if err != nil {
			return out, fmt.Errorf("event %q: recurrence id: %w", out.UID, err)
		}
		out.RecurrenceID = &rid
	}

	return out, nil
}

// eventEnd resolves DTEND, falling back to DTSTART plus DURATION, and for
// a date-only start with neither, to the end of that day.
func eventEnd(ve *ical.VEvent, ev Event, loc *time.Location) (time.Time, error) {
	if p := ve.GetProperty(ical.ComponentPropertyDtEnd); p != nil {
		return propTime(p, loc)
	}
	if p := ve.GetProperty(ical.ComponentPropertyDuration); p != nil {
		days, d, err := parseDuration(p.Value)
		if err != nil {
			return time.Time{}, err
		}
		return ev.Start.AddDate(0, 0, days).Add(d), nil
	}
	if ev.AllDay {
		return ev.Start.AddDate(0, 0, 1), nil
	}
	return time.Time{}, errors.New("no DTEND or DURATION")
}

// propTime reads a DATE or DATE-TIME property. Values without a TZID and
// without a trailing Z are read in loc.
func propTime(p *ical.IANAProperty, loc *time.Location) (time.Time, error) {
	return parseICSTime(strings.TrimSpace(p.Value), propLocation(p, loc))
}

func propLocation(p *ical.IANAProperty, fallback *time.Location) *time.Location {
	if tzs, ok := p.ICalParameters["TZID"]; ok && len(tzs) > 0 {
		if l, err := time.LoadLocation(tzs[0]); err == nil {
			return l
		}
	}
	return fallback
}

func dateOnly(p *ical.IANAProperty) bool {
	if vs, ok := p.ICalParameters["VALUE"]; ok && len(vs) > 0 {
		return strings.EqualFold(vs[0], "DATE")
	}
	return !strings.Contains(p.Value, "T")
}

// parseICSTime handles the UTC, floating and date-only value forms.
func parseICSTime(v string, loc *time.Location) (time.Time, error) {
	switch {
	case strings.HasSuffix(v, "Z"):
		return time.Parse("20060102T150405Z", v)
	case strings.Contains(v, "T"):
		return time.ParseInLocation("20060102T150405", v, loc)
	default:
		return time.ParseInLocation("20060102", v, loc)
	}
}

// parseDuration reads an RFC 5545 dur-value such as "PT8H", "P1D" or
// "P1DT2H30M". Days and weeks come back separately so they can be added
// as calendar days.
func parseDuration(v string) (int, time.Duration, error) {
	s := strings.ToUpper(strings.TrimSpace(v))
	s = strings.TrimPrefix(s, "+")
	if strings.HasPrefix(s, "-") {
		return 0, 0, fmt.Errorf("negative duration %q", v)
	}
	rest, ok := strings.CutPrefix(s, "P")
	if !ok || rest == "" {
		return 0, 0, fmt.Errorf("invalid duration %q", v)
	}

	var (
		days   int
		d      time.Duration
		inTime bool
		num    string
	)
	for _, r := range rest {
		switch {
		case r >= '0' && r <= '9':
			num += string(r)
			continue
		case r == 'T':
			if inTime || num != "" {
				return 0, 0, fmt.Errorf("invalid duration %q", v)
			}
			inTime = true
			continue
		}

		if num == "" {
			return 0, 0, fmt.Errorf("invalid duration %q", v)
		}
		n, err := strconv.Atoi(num)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid duration %q: %w", v, err)
		}
		num = ""

		switch {
		case r == 'W' && !inTime:
			days += 7 * n
		case r == 'D' && !inTime:
			days += n
		case r == 'H' && inTime:
			d += time.Duration(n) * time.Hour
		case r == 'M' && inTime:
			d += time.Duration(n) * time.Minute
		case r == 'S' && inTime:
			d += time.Duration(n) * time.Second
		default:
			return 0, 0, fmt.Errorf("invalid duration %q", v)
		}
	}
	if num != "" {
		return 0, 0, fmt.Errorf("invalid duration %q", v)
	}
	return days, d, nil
}
