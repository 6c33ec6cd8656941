package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Client is a thin JSON-oriented wrapper around a go-redis client.
type Client struct {
	rdb *goredis.Client
}

// InitRedis connects to the server and verifies it answers a PING.
func InitRedis(ctx context.Context, address, username, password string) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     address,
		Username: username,
		Password: password,
		DB:       0,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", address, err)
	}

	log.Info().Str("address", address).Msg("connected to redis")
	return &Client{rdb: rdb}, nil
}

// GetJSON decodes the value stored at key into v. found is false when the
// key does not exist.
func (c *Client) GetJSON(ctx context.Context, key string, v any) (bool, error) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// SetJSON stores v at key as JSON with the given expiration.
func (c *Client) SetJSON(ctx context.Context, key string, v any, expiration time.Duration) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := c.rdb.Set(ctx, key, raw, expiration).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to write to redis")
		return err
	}
	return nil
}

func (c *Client) Close() error {
	return c.rdb.Close()
}
