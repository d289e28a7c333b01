//go:build integration

package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupRedisContainer(t *testing.T) (string, func()) {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor: wait.ForLog("Ready to accept connections").
				WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)

	addr, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	return addr, func() { _ = container.Terminate(ctx) }
}

func TestPayloadCache_Redis(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	addr, cleanup := setupRedisContainer(t)
	defer cleanup()

	c, err := New(Config{Addr: addr, TTL: time.Minute})
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()

	_, ok, err := c.Get(ctx, "resumo")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "resumo", []byte(`{"total_donos":3}`)))

	got, ok, err := c.Get(ctx, "resumo")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"total_donos":3}`, string(got))

	ttl, err := c.client.TTL(ctx, "dashboard:resumo").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}
