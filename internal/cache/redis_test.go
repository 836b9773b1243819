package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisCache(client, time.Minute), mr
}

func TestGetMiss(t *testing.T) {
	cache, _ := setupTestRedis(t)

	_, err := cache.Get(context.Background(), "carousel")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestSetGetRoundtrip(t *testing.T) {
	cache, _ := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "carousel", []byte(`[{"slideid":1}]`), 0))

	got, err := cache.Get(ctx, "carousel")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"slideid":1}]`), got)
}

func TestSetBoundsTTL(t *testing.T) {
	cache, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "carousel", []byte("x"), 0))

	// base TTL plus at most 5s of jitter, never unbounded
	ttl := mr.TTL(key("carousel"))
	assert.GreaterOrEqual(t, ttl, time.Minute)
	assert.LessOrEqual(t, ttl, time.Minute+5*time.Second)
}

func TestEntryExpires(t *testing.T) {
	cache, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "carousel", []byte("x"), time.Second))

	mr.FastForward(10 * time.Second)

	_, err := cache.Get(ctx, "carousel")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestInvalidate(t *testing.T) {
	cache, _ := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "carousel", []byte("x"), 0))
	require.NoError(t, cache.Invalidate(ctx, "carousel"))

	_, err := cache.Get(ctx, "carousel")
	assert.ErrorIs(t, err, ErrCacheMiss)

	// deleting an absent key is not an error
	require.NoError(t, cache.Invalidate(ctx, "carousel"))
}

func TestKeysAreNamespaced(t *testing.T) {
	cache, mr := setupTestRedis(t)

	require.NoError(t, cache.Set(context.Background(), "carousel", []byte("x"), 0))
	assert.True(t, mr.Exists("content:carousel"))
}
