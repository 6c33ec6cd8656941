package prayer

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// cacheTTL outlives the day so a timetable fetched just after midnight is
// still served at the end of the day.
const cacheTTL = 36 * time.Hour

// Cache is the key/value store CachedSource keeps timetables in.
// GetJSON reports found=false on a miss.
type Cache interface {
	GetJSON(ctx context.Context, key string, v any) (found bool, err error)
	SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error
}

// CachedSource serves timetables from a Cache and falls back to the
// wrapped Source. Cache failures are logged and never fail a lookup.
type CachedSource struct {
	source Source
	cache  Cache
}

func NewCachedSource(source Source, cache Cache) *CachedSource {
	return &CachedSource{source: source, cache: cache}
}

func (c *CachedSource) Name() string { return c.source.Name() }

func (c *CachedSource) Today(ctx context.Context, date time.Time) (Times, error) {
	key := cacheKey(c.source.Name(), date)

	var cached Times
	found, err := c.cache.GetJSON(ctx, key, &cached)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("prayer times cache read failed")
	}
	if found {
		return cached, nil
	}

	times, err := c.source.Today(ctx, date)
	if err != nil {
		return Times{}, err
	}

	if err := c.cache.SetJSON(ctx, key, times, cacheTTL); err != nil {
		log.Error().Err(err).Str("key", key).Msg("prayer times cache write failed")
	}
	return times, nil
}

func cacheKey(provider string, date time.Time) string {
	return fmt.Sprintf("prayer_times:%s:%s", provider, date.Format(time.DateOnly))
}
