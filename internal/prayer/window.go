// Package prayer turns the daily prayer timetable into the five prayer
// windows and resolves which one is active at a given minute of the day.
package prayer

import (
	"fmt"
	"strings"
	"time"

	"github.com/Nixie-Tech-LLC/mosque-rota/internal/interval"
)

// Key identifies one of the five daily prayers.
type Key string

const (
	Fajr    Key = "fajr"
	Dhuhr   Key = "dhuhr"
	Asr     Key = "asr"
	Maghrib Key = "maghrib"
	Isha    Key = "isha"
)

// Keys lists the prayers in their fixed daily order.
var Keys = []Key{Fajr, Dhuhr, Asr, Maghrib, Isha}

// Valid reports whether k names one of the five prayers.
func (k Key) Valid() bool {
	for _, known := range Keys {
		if k == known {
			return true
		}
	}
	return false
}

// Label is the display name of k, e.g. "Maghrib".
func (k Key) Label() string {
	if k == "" {
		return ""
	}
	return strings.ToUpper(string(k[:1])) + string(k[1:])
}

// Times is one day's timetable as returned by a provider, in venue local
// "HH:MM" form.
type Times struct {
	Fajr    string  `json:"fajr"`
	Sunrise string  `json:"sunrise"`
	Dhuhr   string  `json:"dhuhr"`
	Asr     string  `json:"asr"`
	Asr2    *string `json:"asr2"`
	Maghrib string  `json:"maghrib"`
	Isha    string  `json:"isha"`
}

// Start returns the official start time of prayer k.
func (t Times) Start(k Key) string {
	switch k {
	case Fajr:
		return t.Fajr
	case Dhuhr:
		return t.Dhuhr
	case Asr:
		return t.Asr
	case Maghrib:
		return t.Maghrib
	case Isha:
		return t.Isha
	}
	return ""
}

// Window is a named minute-of-day range, [Start, End).
type Window struct {
	Key   Key
	Label string
	Start int
	End   int
}

// Range returns the window as a minute range.
func (w Window) Range() interval.MinuteRange {
	return interval.MinuteRange{Start: w.Start, End: w.End}
}

// Windows builds the five ordered windows for a timetable:
// Fajr until sunrise, then each prayer until the next, and Isha until
// midnight. At high latitudes Isha can fall after midnight, before Fajr;
// then Maghrib runs to midnight and Isha from its start until Fajr. Any
// other out-of-order timetable is an error.
func Windows(t Times) ([]Window, error) {
	names := []string{"fajr", "sunrise", "dhuhr", "asr", "maghrib", "isha"}
	values := []string{t.Fajr, t.Sunrise, t.Dhuhr, t.Asr, t.Maghrib, t.Isha}

	mins := make([]int, len(values))
	for i, v := range values {
		m, err := interval.ParseClock(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", names[i], err)
		}
		mins[i] = m
	}
	fajr, sunrise, dhuhr, asr, maghrib, isha := mins[0], mins[1], mins[2], mins[3], mins[4], mins[5]

	ishaAfterMidnight := isha < maghrib && isha < fajr
	for i := 1; i < len(mins); i++ {
		if i == 5 && ishaAfterMidnight {
			break
		}
		if mins[i] < mins[i-1] {
			return nil, fmt.Errorf("%s (%s) is before %s (%s)", names[i], values[i], names[i-1], values[i-1])
		}
	}

	if ishaAfterMidnight {
		return []Window{
			{Key: Fajr, Label: Fajr.Label(), Start: fajr, End: sunrise},
			{Key: Dhuhr, Label: Dhuhr.Label(), Start: dhuhr, End: asr},
			{Key: Asr, Label: Asr.Label(), Start: asr, End: maghrib},
			{Key: Maghrib, Label: Maghrib.Label(), Start: maghrib, End: interval.MinutesPerDay},
			{Key: Isha, Label: Isha.Label(), Start: isha, End: fajr},
		}, nil
	}
	return []Window{
		{Key: Fajr, Label: Fajr.Label(), Start: fajr, End: sunrise},
		{Key: Dhuhr, Label: Dhuhr.Label(), Start: dhuhr, End: asr},
		{Key: Asr, Label: Asr.Label(), Start: asr, End: maghrib},
		{Key: Maghrib, Label: Maghrib.Label(), Start: maghrib, End: isha},
		{Key: Isha, Label: Isha.Label(), Start: isha, End: interval.MinutesPerDay},
	}, nil
}

// Resolution is the window active at a minute of the day.
type Resolution struct {
	Window

	// Wrapped is set when the active window began the previous evening and
	// is still running after midnight. It then ends at wrapEnd.
	Wrapped bool

	wrapEnd int
}

// Resolve picks the window containing now (minutes since midnight). The
// later window wins on a shared boundary. Before Fajr the previous night's
// last window is still active: normally Isha until Fajr, or Maghrib until
// an after-midnight Isha. In the gap between sunrise and Dhuhr the result
// falls back to Fajr. windows must come from Windows.
func Resolve(windows []Window, now int) Resolution {
	fajr := windows[0].Start
	for _, w := range windows {
		if w.Range().Contains(now) {
			return Resolution{Window: w}
		}
	}
	if now < fajr {
		evening := windows[len(windows)-1]
		wrapEnd := fajr
		if evening.Start < fajr {
			// Isha is after midnight and now precedes it.
			wrapEnd = evening.Start
			evening = windows[len(windows)-2]
		}
		return Resolution{Window: evening, Wrapped: true, wrapEnd: wrapEnd}
	}
	return Resolution{Window: windows[0]}
}

// Bounds places the active window on the calendar day of date in loc.
// Windows ending at midnight run to the following midnight; a wrapped
// window starts the evening before and ends at its wrap end today.
func (r Resolution) Bounds(date time.Time, loc *time.Location) interval.Interval {
	if r.Wrapped {
		day := date.In(loc)
		prev := time.Date(day.Year(), day.Month(), day.Day()-1, 12, 0, 0, 0, loc)
		return interval.Interval{
			Start: interval.AtMinute(prev, r.Start, loc),
			End:   interval.AtMinute(day, r.wrapEnd, loc),
		}
	}
	return interval.Interval{
		Start: interval.AtMinute(date, r.Start, loc),
		End:   interval.AtMinute(date, r.End, loc),
	}
}

// DisplayStart is the window start as "HH:MM".
func (r Resolution) DisplayStart() string {
	return interval.FormatClock(r.Start)
}

// DisplayEnd is the window end as "HH:MM". Midnight is shown as 23:59 and a
// wrapped window shows where it ends this morning.
func (r Resolution) DisplayEnd() string {
	if r.Wrapped {
		return interval.FormatClock(r.wrapEnd)
	}
	return interval.FormatClock(min(r.End, interval.MinutesPerDay-1))
}
