package prayer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	DefaultLondonURL  = "https://www.londonprayertimes.com/api/times/"
	DefaultAladhanURL = "https://api.aladhan.com/v1/timings"
)

// Source provides the prayer timetable for a calendar day.
type Source interface {
	Name() string
	Today(ctx context.Context, date time.Time) (Times, error)
}

// LondonClient reads the London Prayer Times API.
type LondonClient struct {
	baseURL string
	key     string
	client  *http.Client
}

func NewLondonClient(baseURL, key string, client *http.Client) *LondonClient {
	if baseURL == "" {
		baseURL = DefaultLondonURL
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &LondonClient{baseURL: baseURL, key: key, client: client}
}

func (c *LondonClient) Name() string { return "london" }

// Today returns the published timetable. The API always answers for the
// current London day, so date only scopes logging.
func (c *LondonClient) Today(ctx context.Context, date time.Time) (Times, error) {
	if c.key == "" {
		return Times{}, fmt.Errorf("london prayer times API key is not set")
	}

	q := url.Values{}
	q.Set("format", "json")
	q.Set("24hours", "true")
	q.Set("key", c.key)

	var payload struct {
		Fajr    string  `json:"fajr"`
		Sunrise string  `json:"sunrise"`
		Dhuhr   string  `json:"dhuhr"`
		Asr     string  `json:"asr"`
		Asr2    *string `json:"asr_2"`
		Magrib  string  `json:"magrib"`
		Isha    string  `json:"isha"`
	}
	if err := getJSON(ctx, c.client, c.baseURL+"?"+q.Encode(), &payload); err != nil {
		log.Error().Err(err).Str("provider", c.Name()).Str("date", date.Format(time.DateOnly)).Msg("prayer times request failed")
		return Times{}, err
	}

	return Times{
		Fajr:    payload.Fajr,
		Sunrise: payload.Sunrise,
		Dhuhr:   payload.Dhuhr,
		Asr:     payload.Asr,
		Asr2:    payload.Asr2,
		Maghrib: payload.Magrib,
		Isha:    payload.Isha,
	}, nil
}

// AladhanClient reads the Aladhan timings API for a fixed venue position.
type AladhanClient struct {
	baseURL   string
	latitude  float64
	longitude float64
	method    int
	client    *http.Client
}

func NewAladhanClient(baseURL string, latitude, longitude float64, method int, client *http.Client) *AladhanClient {
	if baseURL == "" {
		baseURL = DefaultAladhanURL
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &AladhanClient{
		baseURL:   baseURL,
		latitude:  latitude,
		longitude: longitude,
		method:    method,
		client:    client,
	}
}

func (c *AladhanClient) Name() string { return "aladhan" }

func (c *AladhanClient) Today(ctx context.Context, date time.Time) (Times, error) {
	endpoint := fmt.Sprintf("%s/%s?latitude=%f&longitude=%f&method=%d",
		c.baseURL, date.Format("02-01-2006"), c.latitude, c.longitude, c.method,
	)

	var payload struct {
		Data struct {
			Timings map[string]string `json:"timings"`
		} `json:"data"`
	}
	if err := getJSON(ctx, c.client, endpoint, &payload); err != nil {
		log.Error().Err(err).Str("provider", c.Name()).Str("date", date.Format(time.DateOnly)).Msg("prayer times request failed")
		return Times{}, err
	}

	tm := payload.Data.Timings
	return Times{
		Fajr:    tm["Fajr"],
		Sunrise: tm["Sunrise"],
		Dhuhr:   tm["Dhuhr"],
		Asr:     tm["Asr"],
		Maghrib: tm["Maghrib"],
		Isha:    tm["Isha"],
	}, nil
}

func getJSON(ctx context.Context, client *http.Client, endpoint string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("prayer times API error: %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode prayer times: %w", err)
	}
	return nil
}
