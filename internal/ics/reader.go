package ics

import (
	"context"
	"time"

	"github.com/Nixie-Tech-LLC/mosque-rota/internal/interval"
)

// Reader resolves a feed URL into the shift intervals around a time range.
type Reader struct {
	fetcher *Fetcher
	loc     *time.Location
}

// NewReader reads all-day and floating times in loc, the venue's timezone.
func NewReader(fetcher *Fetcher, loc *time.Location) *Reader {
	return &Reader{fetcher: fetcher, loc: loc}
}

// Shifts fetches, parses and expands the feed, returning the shifts that
// intersect [from, to].
func (r *Reader) Shifts(ctx context.Context, feedURL string, from, to time.Time) ([]interval.Interval, error) {
	body, err := r.fetcher.Fetch(ctx, feedURL)
	if err != nil {
		return nil, err
	}
	events, err := Parse(body, r.loc)
	if err != nil {
		return nil, err
	}
	return Expand(events, from, to), nil
}
