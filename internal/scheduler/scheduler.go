// Package scheduler runs the background jobs of the rota server.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/mosque-rota/internal/prayer"
)

// DefaultWarmupSpec fetches prayer times shortly after midnight.
const DefaultWarmupSpec = "5 0 * * *"

const warmupTimeout = 30 * time.Second

type Scheduler struct {
	cron *cron.Cron
	loc  *time.Location
	now  func() time.Time
}

// New returns a scheduler whose cron expressions are evaluated in loc.
func New(loc *time.Location) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithLocation(loc)),
		loc:  loc,
		now:  time.Now,
	}
}

// AddPrayerWarmup registers a job that loads today's prayer times through
// source, so a caching source is filled before the first request.
func (s *Scheduler) AddPrayerWarmup(spec string, source prayer.Source) error {
	if spec == "" {
		spec = DefaultWarmupSpec
	}
	_, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), warmupTimeout)
		defer cancel()
		if err := s.WarmPrayerTimes(ctx, source); err != nil {
			log.Error().Err(err).Str("provider", source.Name()).Msg("prayer times warm-up failed")
		}
	})
	if err != nil {
		return fmt.Errorf("invalid warm-up schedule %q: %w", spec, err)
	}
	return nil
}

// WarmPrayerTimes fetches today's prayer times in the venue timezone.
func (s *Scheduler) WarmPrayerTimes(ctx context.Context, source prayer.Source) error {
	today := s.now().In(s.loc)
	if _, err := source.Today(ctx, today); err != nil {
		return err
	}
	log.Info().
		Str("provider", source.Name()).
		Str("date", today.Format(time.DateOnly)).
		Msg("prayer times warmed")
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	log.Info().Int("jobs", len(s.cron.Entries())).Msg("scheduler started")
}

// Stop halts the cron loop and waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		log.Warn().Msg("scheduler stopped before jobs finished")
		return
	}
	log.Info().Msg("scheduler stopped")
}
