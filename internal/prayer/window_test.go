package prayer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/mosque-rota/internal/interval"
)

var summerTimes = Times{
	Fajr:    "02:51",
	Sunrise: "04:48",
	Dhuhr:   "13:10",
	Asr:     "17:27",
	Maghrib: "21:24",
	Isha:    "23:00",
}

func clock(t *testing.T, s string) int {
	t.Helper()
	m, err := interval.ParseClock(s)
	require.NoError(t, err)
	return m
}

func TestWindows_OrderAndShape(t *testing.T) {
	windows, err := Windows(summerTimes)
	require.NoError(t, err)
	require.Len(t, windows, 5)

	for i, k := range Keys {
		assert.Equal(t, k, windows[i].Key)
		assert.Less(t, windows[i].Start, windows[i].End)
	}

	// Dhuhr through Isha are contiguous up to midnight.
	for i := 1; i < len(windows)-1; i++ {
		assert.Equal(t, windows[i].End, windows[i+1].Start)
	}
	assert.Equal(t, interval.MinutesPerDay, windows[4].End)

	for i := range windows {
		for j := range windows {
			if i != j {
				assert.False(t, windows[i].Range().Overlaps(windows[j].Range()), "%s overlaps %s", windows[i].Key, windows[j].Key)
			}
		}
	}
}

func TestWindows_RejectsBadTimetable(t *testing.T) {
	bad := summerTimes
	bad.Asr = "12:00"
	_, err := Windows(bad)
	assert.Error(t, err)

	bad = summerTimes
	bad.Isha = ""
	_, err = Windows(bad)
	assert.Error(t, err)
}

func TestResolve_Scenarios(t *testing.T) {
	windows, err := Windows(summerTimes)
	require.NoError(t, err)

	tests := []struct {
		name    string
		now     string
		want    Key
		wrapped bool
	}{
		{name: "during fajr", now: "03:00", want: Fajr},
		{name: "before fajr is previous isha", now: "01:00", want: Isha, wrapped: true},
		{name: "midnight", now: "00:00", want: Isha, wrapped: true},
		{name: "fajr boundary", now: "02:51", want: Fajr},
		{name: "sunrise to dhuhr gap falls back to fajr", now: "09:00", want: Fajr},
		{name: "asr boundary goes to later window", now: "17:27", want: Asr},
		{name: "just before asr", now: "17:26", want: Dhuhr},
		{name: "maghrib", now: "22:00", want: Maghrib},
		{name: "isha", now: "23:00", want: Isha},
		{name: "last minute", now: "23:59", want: Isha},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(windows, clock(t, tt.now))
			assert.Equal(t, tt.want, got.Key)
			assert.Equal(t, tt.wrapped, got.Wrapped)
		})
	}
}

func TestResolve_FajrBoundsScenario(t *testing.T) {
	windows, err := Windows(summerTimes)
	require.NoError(t, err)

	got := Resolve(windows, clock(t, "03:00"))
	assert.Equal(t, "02:51", got.DisplayStart())
	assert.Equal(t, "04:48", got.DisplayEnd())
}

func TestResolve_IsTotal(t *testing.T) {
	windows, err := Windows(summerTimes)
	require.NoError(t, err)

	for now := 0; now < interval.MinutesPerDay; now++ {
		got := Resolve(windows, now)
		require.True(t, got.Key.Valid(), "minute %d resolved to %q", now, got.Key)
	}
}

func TestResolution_Bounds(t *testing.T) {
	loc := time.UTC
	windows, err := Windows(summerTimes)
	require.NoError(t, err)
	day := time.Date(2025, 6, 10, 15, 0, 0, 0, loc)

	fajr := Resolve(windows, clock(t, "03:00")).Bounds(day, loc)
	assert.Equal(t, time.Date(2025, 6, 10, 2, 51, 0, 0, loc), fajr.Start)
	assert.Equal(t, time.Date(2025, 6, 10, 4, 48, 0, 0, loc), fajr.End)

	isha := Resolve(windows, clock(t, "23:30"))
	b := isha.Bounds(day, loc)
	assert.Equal(t, time.Date(2025, 6, 10, 23, 0, 0, 0, loc), b.Start)
	assert.Equal(t, time.Date(2025, 6, 11, 0, 0, 0, 0, loc), b.End)
	assert.Equal(t, "23:59", isha.DisplayEnd())

	wrapped := Resolve(windows, clock(t, "01:00"))
	early := time.Date(2025, 6, 10, 1, 0, 0, 0, loc)
	b = wrapped.Bounds(early, loc)
	assert.Equal(t, time.Date(2025, 6, 9, 23, 0, 0, 0, loc), b.Start)
	assert.Equal(t, time.Date(2025, 6, 10, 2, 51, 0, 0, loc), b.End)
	assert.True(t, b.Contains(early))
	assert.Equal(t, "23:00", wrapped.DisplayStart())
	assert.Equal(t, "02:51", wrapped.DisplayEnd())
}

func TestKeyValid(t *testing.T) {
	assert.True(t, Key("maghrib").Valid())
	assert.False(t, Key("sunrise").Valid())
	assert.False(t, Key("").Valid())
}

func TestTimesStart(t *testing.T) {
	assert.Equal(t, "13:10", summerTimes.Start(Dhuhr))
	assert.Equal(t, "23:00", summerTimes.Start(Isha))
	assert.Equal(t, "", summerTimes.Start(Key("sunrise")))
}

func TestKeyLabel(t *testing.T) {
	assert.Equal(t, "Maghrib", Maghrib.Label())
	assert.Equal(t, "Fajr", Fajr.Label())
	assert.Equal(t, "", Key("").Label())
}

var highLatitudeTimes = Times{
	Fajr:    "01:40",
	Sunrise: "03:20",
	Dhuhr:   "13:05",
	Asr:     "17:40",
	Maghrib: "22:30",
	Isha:    "00:20",
}

func TestWindows_IshaAfterMidnight(t *testing.T) {
	windows, err := Windows(highLatitudeTimes)
	require.NoError(t, err)
	require.Len(t, windows, 5)

	assert.Equal(t, Maghrib, windows[3].Key)
	assert.Equal(t, clock(t, "22:30"), windows[3].Start)
	assert.Equal(t, interval.MinutesPerDay, windows[3].End)

	assert.Equal(t, Isha, windows[4].Key)
	assert.Equal(t, clock(t, "00:20"), windows[4].Start)
	assert.Equal(t, clock(t, "01:40"), windows[4].End)

	bad := highLatitudeTimes
	bad.Isha = "02:00"
	_, err = Windows(bad)
	assert.Error(t, err, "isha between fajr and maghrib is out of order")
}

func TestResolve_IshaAfterMidnight(t *testing.T) {
	loc, err := time.LoadLocation("Europe/London")
	require.NoError(t, err)
	windows, err := Windows(highLatitudeTimes)
	require.NoError(t, err)

	tests := []struct {
		now      string
		key      Key
		wrapped  bool
		startStr string
		endStr   string
	}{
		{now: "23:00", key: Maghrib, startStr: "22:30", endStr: "23:59"},
		{now: "00:10", key: Maghrib, wrapped: true, startStr: "22:30", endStr: "00:20"},
		{now: "00:20", key: Isha, startStr: "00:20", endStr: "01:40"},
		{now: "01:39", key: Isha, startStr: "00:20", endStr: "01:40"},
		{now: "01:40", key: Fajr, startStr: "01:40", endStr: "03:20"},
	}
	for _, tt := range tests {
		t.Run(tt.now, func(t *testing.T) {
			got := Resolve(windows, clock(t, tt.now))
			assert.Equal(t, tt.key, got.Key)
			assert.Equal(t, tt.wrapped, got.Wrapped)
			assert.Equal(t, tt.startStr, got.DisplayStart())
			assert.Equal(t, tt.endStr, got.DisplayEnd())
		})
	}

	early := time.Date(2025, 6, 20, 0, 10, 0, 0, loc)
	b := Resolve(windows, clock(t, "00:10")).Bounds(early, loc)
	assert.Equal(t, time.Date(2025, 6, 19, 22, 30, 0, 0, loc), b.Start)
	assert.Equal(t, time.Date(2025, 6, 20, 0, 20, 0, 0, loc), b.End)
	assert.True(t, b.Contains(early))

	isha := time.Date(2025, 6, 20, 1, 0, 0, 0, loc)
	b = Resolve(windows, clock(t, "01:00")).Bounds(isha, loc)
	assert.Equal(t, time.Date(2025, 6, 20, 0, 20, 0, 0, loc), b.Start)
	assert.Equal(t, time.Date(2025, 6, 20, 1, 40, 0, 0, loc), b.End)
}
