package main

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/mosque-rota/internal/config"
	"github.com/Nixie-Tech-LLC/mosque-rota/internal/notify"
	"github.com/Nixie-Tech-LLC/mosque-rota/internal/prayer"
	"github.com/Nixie-Tech-LLC/mosque-rota/internal/redis"
)

const prayerAPITimeout = 10 * time.Second

// InitPrayerSource selects the configured prayer times provider and puts
// the Redis cache in front of it when one is configured. The returned
// redis client is nil without a cache.
func InitPrayerSource(ctx context.Context, cfg *config.Config) (prayer.Source, *redis.Client) {
	client := &http.Client{Timeout: prayerAPITimeout}

	var source prayer.Source
	switch cfg.Prayer.Provider {
	case config.ProviderAladhan:
		source = prayer.NewAladhanClient(cfg.Prayer.APIURL, cfg.Prayer.Latitude, cfg.Prayer.Longitude, cfg.Prayer.Method, client)
	default:
		source = prayer.NewLondonClient(cfg.Prayer.APIURL, cfg.Prayer.LondonKey, client)
	}
	log.Info().Str("provider", source.Name()).Msg("prayer times provider selected")

	if !cfg.Redis.Enabled() {
		return source, nil
	}

	rdb, err := redis.InitRedis(ctx, cfg.Redis.Address, cfg.Redis.Username, cfg.Redis.Password)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, prayer times will not be cached")
		return source, nil
	}
	return prayer.NewCachedSource(source, rdb), rdb
}

// InitNotifier connects to the MQTT broker, or returns a no-op notifier
// when none is configured or it cannot be reached.
func InitNotifier(cfg *config.Config) notify.Notifier {
	if !cfg.MQTT.Enabled() {
		return notify.Nop{}
	}
	n, err := notify.NewMQTT(cfg.MQTT.BrokerURL, cfg.MQTT.ClientID, cfg.MQTT.TopicPrefix)
	if err != nil {
		log.Warn().Err(err).Msg("MQTT unavailable, display notifications disabled")
		return notify.Nop{}
	}
	return n
}
