package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T) *Client {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_ADDRESS")
	if addr == "" {
		addr = "localhost:6379"
	}
	c, err := InitRedis(context.Background(), addr, "", "")
	if err != nil {
		t.Skipf("redis not available, skipping test: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestClient_JSONRoundTrip(t *testing.T) {
	c := testClient(t)
	ctx := context.Background()
	key := "rota-test:" + time.Now().Format(time.RFC3339Nano)

	type payload struct {
		Fajr string `json:"fajr"`
	}

	require.NoError(t, c.SetJSON(ctx, key, payload{Fajr: "02:51"}, time.Minute))

	var got payload
	found, err := c.GetJSON(ctx, key, &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "02:51", got.Fajr)
}

func TestClient_Miss(t *testing.T) {
	c := testClient(t)

	var got map[string]string
	found, err := c.GetJSON(context.Background(), "rota-test:missing-key", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInitRedis_Unreachable(t *testing.T) {
	_, err := InitRedis(context.Background(), "127.0.0.1:1", "", "")
	assert.Error(t, err)
}
