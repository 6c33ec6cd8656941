package endpoints

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/mosque-rota/internal/db"
	"github.com/Nixie-Tech-LLC/mosque-rota/internal/http/api"
	"github.com/Nixie-Tech-LLC/mosque-rota/internal/interval"
	"github.com/Nixie-Tech-LLC/mosque-rota/internal/notify"
	"github.com/Nixie-Tech-LLC/mosque-rota/internal/prayer"
	"github.com/Nixie-Tech-LLC/mosque-rota/internal/roster"
)

var london = mustLoad("Europe/London")

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

func londonTime(day, hour, minute int) time.Time {
	return time.Date(2025, 6, day, hour, minute, 0, 0, london)
}

// feeds serves shifts by feed URL; unknown URLs fail like a dead feed.
type feeds map[string][]interval.Interval

func (f feeds) Shifts(_ context.Context, feedURL string, _, _ time.Time) ([]interval.Interval, error) {
	shifts, ok := f[feedURL]
	if !ok {
		return nil, errors.New("feed unavailable")
	}
	return shifts, nil
}

type fixedSource struct {
	times prayer.Times
	err   error
}

func (s fixedSource) Name() string { return "fixed" }

func (s fixedSource) Today(context.Context, time.Time) (prayer.Times, error) {
	return s.times, s.err
}

type recordingNotifier struct {
	mu      sync.Mutex
	prayers []notify.PrayerStatusEvent
	breaks  []notify.BreakEvent
}

func (n *recordingNotifier) PrayerStatusChanged(ev notify.PrayerStatusEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.prayers = append(n.prayers, ev)
}

func (n *recordingNotifier) BreaksChanged(ev notify.BreakEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.breaks = append(n.breaks, ev)
}

func (n *recordingNotifier) Close() {}

func summerTimes() prayer.Times {
	asr2 := "18:41"
	return prayer.Times{
		Fajr:    "02:51",
		Sunrise: "04:48",
		Dhuhr:   "13:04",
		Asr:     "17:22",
		Asr2:    &asr2,
		Maghrib: "21:19",
		Isha:    "22:44",
	}
}

const testDisplayTemplate = `{{.Current.Label}} {{.Current.WindowStart}}-{{.Current.WindowEnd}}
{{range .Prayers}}{{.Label}}={{.Time}}{{if .Current}}*{{end}};{{end}}
{{range .OnShift}}[{{.Name}}]{{end}}`

type harness struct {
	router   *gin.Engine
	store    db.Store
	feeds    feeds
	notifier *recordingNotifier
	now      time.Time
	source   *fixedSource
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := &harness{
		store:    db.NewTestStore(t),
		feeds:    feeds{},
		notifier: &recordingNotifier{},
		now:      londonTime(10, 3, 0),
		source:   &fixedSource{times: summerTimes()},
	}
	venue := Venue{Location: london, Clock: func() time.Time { return h.now }}
	svc := roster.NewService(h.store, h.feeds, 4)

	h.router = gin.New()
	h.router.SetHTMLTemplate(template.Must(template.New(DisplayTemplate).Parse(testDisplayTemplate)))
	api.MountGroup(h.router, api.GroupConfig{},
		HealthModule(),
		DisplayModule(h.store, sourceFunc{h}, svc, venue),
	)
	api.MountGroup(h.router, api.GroupConfig{Prefix: "/api"},
		WorkerModule(h.store),
		BreakModule(h.store, h.notifier, venue),
		PrayerModule(h.store, sourceFunc{h}, svc, h.notifier, venue),
		WhosOnModule(svc, venue),
	)
	return h
}

// sourceFunc lets tests swap the prayer source after the router is built.
type sourceFunc struct{ h *harness }

func (s sourceFunc) Name() string { return s.h.source.Name() }
func (s sourceFunc) Today(ctx context.Context, date time.Time) (prayer.Times, error) {
	return s.h.source.Today(ctx, date)
}

func (h *harness) addWorker(t *testing.T, name string, shifts ...interval.Interval) string {
	t.Helper()
	url := "https://feeds.test/" + name + ".ics"
	w, err := h.store.CreateWorker(context.Background(), name, url)
	require.NoError(t, err)
	if shifts != nil {
		h.feeds[url] = shifts
	}
	return w.ID
}

func (h *harness) do(t *testing.T, method, path string, body any) (int, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)

	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return w.Code, out
}

func shift(from, to time.Time) interval.Interval {
	return interval.Interval{Start: from, End: to}
}

func TestHealth(t *testing.T) {
	h := newHarness(t)
	code, body := h.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])
}
