package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	ProviderLondon  = "london"
	ProviderAladhan = "aladhan"
)

type PrayerConfig struct {
	Provider  string  `yaml:"provider"`
	LondonKey string  `yaml:"london_key"`
	APIURL    string  `yaml:"api_url"`
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
	Method    int     `yaml:"method"`
	// WarmupCron schedules the daily prayer times fetch when a cache is configured.
	WarmupCron string `yaml:"warmup_cron"`
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

func (r RedisConfig) Enabled() bool { return r.Address != "" }

type MQTTConfig struct {
	BrokerURL   string `yaml:"broker_url"`
	ClientID    string `yaml:"client_id"`
	TopicPrefix string `yaml:"topic_prefix"`
}

func (m MQTTConfig) Enabled() bool { return m.BrokerURL != "" }

// Config holds environment-based settings
type Config struct {
	DatabaseURL     string        `yaml:"database_url"`
	DatabaseDriver  string        `yaml:"database_driver"`
	ServerAddress   string        `yaml:"server_address"`
	Environment     string        `yaml:"environment"`
	LogLevel        string        `yaml:"log_level"`
	VenueTimezone   string        `yaml:"venue_timezone"`
	FeedTimeout     time.Duration `yaml:"feed_timeout"`
	FeedConcurrency int           `yaml:"feed_concurrency"`
	AllowedOrigins  []string      `yaml:"cors_allowed_origins"`

	Prayer PrayerConfig `yaml:"prayer"`
	Redis  RedisConfig  `yaml:"redis"`
	MQTT   MQTTConfig   `yaml:"mqtt"`

	// Location is VenueTimezone resolved by Load.
	Location *time.Location `yaml:"-"`
}

// Defaults returns the configuration used for anything left unset.
func Defaults() *Config {
	return &Config{
		DatabaseDriver:  "postgres",
		ServerAddress:   ":8080",
		Environment:     "production",
		LogLevel:        "info",
		VenueTimezone:   "Europe/London",
		FeedTimeout:     15 * time.Second,
		FeedConcurrency: 8,
		AllowedOrigins:  []string{"*"},
		Prayer: PrayerConfig{
			Provider:   ProviderLondon,
			Latitude:   51.5074,
			Longitude:  -0.1278,
			Method:     2,
			WarmupCron: "5 0 * * *",
		},
		MQTT: MQTTConfig{
			ClientID:    "rota-server",
			TopicPrefix: "rota",
		},
	}
}

// Load builds the configuration from defaults, then the YAML file named by
// CONFIG_FILE if set, then environment variables.
func Load() (*Config, error) {
	cfg := Defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsDevelopment reports whether APP_ENV selects development mode.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Environment, "development")
}

func (c *Config) applyEnv() error {
	setString(&c.DatabaseURL, "DATABASE_URL")
	setString(&c.DatabaseDriver, "DATABASE_DRIVER")
	setString(&c.ServerAddress, "SERVER_ADDRESS")
	setString(&c.Environment, "APP_ENV")
	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&c.VenueTimezone, "VENUE_TIMEZONE")

	setString(&c.Prayer.Provider, "PRAYER_PROVIDER")
	setString(&c.Prayer.LondonKey, "LONDON_PRAYER_TIMES_KEY")
	setString(&c.Prayer.APIURL, "PRAYER_API_URL")
	setString(&c.Prayer.WarmupCron, "PRAYER_WARMUP_CRON")

	setString(&c.Redis.Address, "REDIS_ADDRESS")
	setString(&c.Redis.Username, "REDIS_USERNAME")
	setString(&c.Redis.Password, "REDIS_PASSWORD")

	setString(&c.MQTT.BrokerURL, "MQTT_BROKER_URL")
	setString(&c.MQTT.ClientID, "MQTT_CLIENT_ID")
	setString(&c.MQTT.TopicPrefix, "MQTT_TOPIC_PREFIX")

	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		c.AllowedOrigins = splitList(v)
	}

	var errs []error
	if v := os.Getenv("FEED_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("FEED_TIMEOUT: %w", err))
		}
		c.FeedTimeout = d
	}
	if v := os.Getenv("FEED_CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("FEED_CONCURRENCY: %w", err))
		}
		c.FeedConcurrency = n
	}
	if v := os.Getenv("ALADHAN_LATITUDE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("ALADHAN_LATITUDE: %w", err))
		}
		c.Prayer.Latitude = f
	}
	if v := os.Getenv("ALADHAN_LONGITUDE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("ALADHAN_LONGITUDE: %w", err))
		}
		c.Prayer.Longitude = f
	}
	if v := os.Getenv("ALADHAN_METHOD"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("ALADHAN_METHOD: %w", err))
		}
		c.Prayer.Method = n
	}
	return errors.Join(errs...)
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	switch c.DatabaseDriver {
	case "postgres", "sqlite3":
	default:
		return fmt.Errorf("DATABASE_DRIVER must be postgres or sqlite3, got %q", c.DatabaseDriver)
	}

	switch c.Prayer.Provider {
	case ProviderLondon:
		if c.Prayer.LondonKey == "" {
			return fmt.Errorf("LONDON_PRAYER_TIMES_KEY is required")
		}
	case ProviderAladhan:
	default:
		return fmt.Errorf("PRAYER_PROVIDER must be %s or %s, got %q", ProviderLondon, ProviderAladhan, c.Prayer.Provider)
	}

	if c.FeedTimeout <= 0 {
		return fmt.Errorf("FEED_TIMEOUT must be positive")
	}
	if c.FeedConcurrency <= 0 {
		return fmt.Errorf("FEED_CONCURRENCY must be positive")
	}

	loc, err := time.LoadLocation(c.VenueTimezone)
	if err != nil {
		return fmt.Errorf("VENUE_TIMEZONE %q: %w", c.VenueTimezone, err)
	}
	c.Location = loc
	return nil
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
