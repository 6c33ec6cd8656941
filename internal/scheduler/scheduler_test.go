package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/mosque-rota/internal/prayer"
)

type recordingSource struct {
	dates []time.Time
	err   error
}

func (r *recordingSource) Name() string { return "test" }

func (r *recordingSource) Today(_ context.Context, date time.Time) (prayer.Times, error) {
	r.dates = append(r.dates, date)
	return prayer.Times{}, r.err
}

func TestWarmPrayerTimes_UsesVenueDate(t *testing.T) {
	loc, err := time.LoadLocation("Europe/London")
	require.NoError(t, err)

	s := New(loc)
	// 23:30 UTC on 10 June is already 11 June in London (BST).
	s.now = func() time.Time { return time.Date(2025, 6, 10, 23, 30, 0, 0, time.UTC) }

	src := &recordingSource{}
	require.NoError(t, s.WarmPrayerTimes(context.Background(), src))
	require.Len(t, src.dates, 1)
	assert.Equal(t, "2025-06-11", src.dates[0].Format(time.DateOnly))
}

func TestWarmPrayerTimes_PropagatesError(t *testing.T) {
	s := New(time.UTC)
	err := s.WarmPrayerTimes(context.Background(), &recordingSource{err: errors.New("upstream down")})
	assert.Error(t, err)
}

func TestAddPrayerWarmup(t *testing.T) {
	s := New(time.UTC)
	require.NoError(t, s.AddPrayerWarmup("", &recordingSource{}))
	require.NoError(t, s.AddPrayerWarmup("*/10 * * * *", &recordingSource{}))
	assert.Error(t, s.AddPrayerWarmup("not a schedule", &recordingSource{}))
	assert.Len(t, s.cron.Entries(), 2)

	s.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}
