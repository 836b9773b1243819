package cache

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
)

func NewRedisCache(client *redis.Client, baseTTL time.Duration) *RedisCache {
	return &RedisCache{client: client, baseTTL: baseTTL}
}

type RedisCache struct {
	client  *redis.Client
	baseTTL time.Duration
}

func key(k string) string { return "content:" + k }

func (r *RedisCache) Get(ctx context.Context, k string) ([]byte, error) {
	data, err := r.client.Get(ctx, key(k)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	return data, nil
}

func (r *RedisCache) Set(ctx context.Context, k string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = r.baseTTL
	}
	// jitter so a burst of fills doesn't expire at once
	ttl += time.Duration(rand.Intn(5)) * time.Second
	if err := r.client.Set(ctx, key(k), value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisCache) Invalidate(ctx context.Context, k string) error {
	if err := r.client.Del(ctx, key(k)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}
