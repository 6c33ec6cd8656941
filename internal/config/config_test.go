package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"CONFIG_FILE", "DATABASE_URL", "DATABASE_DRIVER", "SERVER_ADDRESS", "APP_ENV", "LOG_LEVEL",
	"VENUE_TIMEZONE", "PRAYER_PROVIDER", "LONDON_PRAYER_TIMES_KEY", "PRAYER_API_URL",
	"PRAYER_WARMUP_CRON", "ALADHAN_LATITUDE", "ALADHAN_LONGITUDE", "ALADHAN_METHOD",
	"FEED_TIMEOUT", "FEED_CONCURRENCY", "REDIS_ADDRESS", "REDIS_USERNAME", "REDIS_PASSWORD",
	"MQTT_BROKER_URL", "MQTT_CLIENT_ID", "MQTT_TOPIC_PREFIX", "CORS_ALLOWED_ORIGINS",
}

// clearEnv blanks every variable Load reads; empty values count as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/rota")
	t.Setenv("LONDON_PRAYER_TIMES_KEY", "secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.DatabaseDriver)
	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.Equal(t, "Europe/London", cfg.Location.String())
	assert.Equal(t, 15*time.Second, cfg.FeedTimeout)
	assert.Equal(t, 8, cfg.FeedConcurrency)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, ProviderLondon, cfg.Prayer.Provider)
	assert.Equal(t, "5 0 * * *", cfg.Prayer.WarmupCron)
	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.MQTT.Enabled())
	assert.Equal(t, "rota", cfg.MQTT.TopicPrefix)
	assert.False(t, cfg.IsDevelopment())
}

func TestLoad_RequiredValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"no database", map[string]string{}, "DATABASE_URL is required"},
		{"no london key", map[string]string{"DATABASE_URL": "x"}, "LONDON_PRAYER_TIMES_KEY is required"},
		{"unknown provider", map[string]string{"DATABASE_URL": "x", "PRAYER_PROVIDER": "moon"}, "PRAYER_PROVIDER"},
		{"unknown driver", map[string]string{"DATABASE_URL": "x", "DATABASE_DRIVER": "mysql"}, "DATABASE_DRIVER"},
		{"bad timezone", map[string]string{"DATABASE_URL": "x", "PRAYER_PROVIDER": "aladhan", "VENUE_TIMEZONE": "Mars/Base"}, "VENUE_TIMEZONE"},
		{"bad timeout", map[string]string{"DATABASE_URL": "x", "PRAYER_PROVIDER": "aladhan", "FEED_TIMEOUT": "soon"}, "FEED_TIMEOUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "file::memory:")
	t.Setenv("DATABASE_DRIVER", "sqlite3")
	t.Setenv("PRAYER_PROVIDER", "aladhan")
	t.Setenv("ALADHAN_LATITUDE", "53.4808")
	t.Setenv("ALADHAN_METHOD", "3")
	t.Setenv("FEED_CONCURRENCY", "2")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("REDIS_ADDRESS", "localhost:6379")
	t.Setenv("APP_ENV", "Development")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sqlite3", cfg.DatabaseDriver)
	assert.Equal(t, 53.4808, cfg.Prayer.Latitude)
	assert.Equal(t, -0.1278, cfg.Prayer.Longitude)
	assert.Equal(t, 3, cfg.Prayer.Method)
	assert.Equal(t, 2, cfg.FeedConcurrency)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.True(t, cfg.Redis.Enabled())
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_YAMLFileUnderEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "rota.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
database_url: postgres://db/rota
server_address: ":9090"
venue_timezone: Europe/Berlin
feed_timeout: 5s
prayer:
  provider: aladhan
  method: 4
mqtt:
  broker_url: tcp://broker:1883
`), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("SERVER_ADDRESS", ":7070")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://db/rota", cfg.DatabaseURL)
	assert.Equal(t, ":7070", cfg.ServerAddress, "environment wins over the file")
	assert.Equal(t, "Europe/Berlin", cfg.Location.String())
	assert.Equal(t, 5*time.Second, cfg.FeedTimeout)
	assert.Equal(t, 4, cfg.Prayer.Method)
	assert.Equal(t, 51.5074, cfg.Prayer.Latitude, "defaults survive a partial file")
	assert.True(t, cfg.MQTT.Enabled())
	assert.Equal(t, "rota-server", cfg.MQTT.ClientID)
}

func TestLoad_MissingYAMLFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "nope.yaml"))
	_, err := Load()
	require.Error(t, err)
}
