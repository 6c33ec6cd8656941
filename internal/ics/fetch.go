// Package ics reads workers' calendar feeds and turns their events into
// shift intervals.
package ics

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	DefaultTimeout = 15 * time.Second

	// maxFeedBytes bounds how much of a feed is read into memory.
	maxFeedBytes = 10 << 20
)

// Fetcher downloads calendar documents over HTTP.
type Fetcher struct {
	client *http.Client
}

// NewFetcher returns a Fetcher whose requests time out after timeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
	}
}

// NewFetcherWithClient is used by tests to route requests to a local server.
func NewFetcherWithClient(client *http.Client) *Fetcher {
	return &Fetcher{client: client}
}

// Fetch downloads the feed at feedURL. webcal:// URLs are fetched over https.
func (f *Fetcher) Fetch(ctx context.Context, feedURL string) ([]byte, error) {
	if feedURL == "" {
		return nil, errors.New("feed URL is empty")
	}
	target := normalizeURL(feedURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build feed request: %w", err)
	}
	req.Header.Set("Accept", "text/calendar, */*")

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		// *url.Error repeats the full URL
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return nil, fmt.Errorf("fetch %s: %w", RedactURL(feedURL), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", RedactURL(feedURL), resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", RedactURL(feedURL), err)
	}

	log.Debug().
		Str("url", RedactURL(feedURL)).
		Int("bytes", len(body)).
		Dur("elapsed", time.Since(start)).
		Msg("feed fetched")
	return body, nil
}

func normalizeURL(u string) string {
	lower := strings.ToLower(u)
	if strings.HasPrefix(lower, "webcal://") {
		return "https://" + u[len("webcal://"):]
	}
	return u
}

// RedactURL keeps only the scheme and host of a feed URL. Feed URLs carry
// private tokens in their path or query and must not reach the logs.
func RedactURL(raw string) string {
	const suffix = "/...(redacted)"
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "feed://...(redacted)"
	}
	return u.Scheme + "://" + u.Host + suffix
}
