package api

import (
	"context"
	"net"
	"os"
	"strconv"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/RoriHost/internal/config"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	store.Set("main", "b", "2")
	store.Set("main", "a", "1")

	keys, err := store.Keys(ctx, "main", "*")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, keys)

	_, err = store.Keys(ctx, "other", "*")
	assert.ErrorIs(t, err, ErrServerNotFound)

	assert.ErrorIs(t, store.Delete(ctx, "main", "c"), ErrKeyNotFound)
	assert.ErrorIs(t, store.Delete(ctx, "other", "a"), ErrServerNotFound)
	require.NoError(t, store.Delete(ctx, "main", "a"))

	keys, err = store.Keys(ctx, "main", "*")
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, keys)
}

func TestDedupe(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, dedupe([]string{"a", "a", "b", "c", "c"}))
	assert.Empty(t, dedupe(nil))
}

// TestRedisStore runs against a live Redis at RORIHOST_TEST_REDIS (host:port).
func TestRedisStore(t *testing.T) {
	addr := os.Getenv("RORIHOST_TEST_REDIS")
	if addr == "" {
		t.Skip("RORIHOST_TEST_REDIS not set")
	}
	host, portStr, err := net.SplitHostPort(addr)
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	ctx := context.Background()
	store := NewRedisStore([]config.RedisServer{{Name: "test", Host: host, Port: port, DB: 15}})
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Ping(ctx))

	raw := redis.NewClient(&redis.Options{Addr: addr, DB: 15})
	t.Cleanup(func() { _ = raw.Close() })
	require.NoError(t, raw.FlushDB(ctx).Err())
	require.NoError(t, raw.Set(ctx, "rorihost:1", "a", 0).Err())
	require.NoError(t, raw.Set(ctx, "rorihost:2", "b", 0).Err())

	keys, err := store.Keys(ctx, "test", "rorihost:*")
	require.NoError(t, err)
	assert.Equal(t, []string{"rorihost:1", "rorihost:2"}, keys)

	require.NoError(t, store.Delete(ctx, "test", "rorihost:1"))
	assert.ErrorIs(t, store.Delete(ctx, "test", "rorihost:1"), ErrKeyNotFound)
	assert.Equal(t, []string{"test"}, store.Servers())
}
