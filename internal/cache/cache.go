package cache

import (
	"context"
	"errors"
	"time"
)

// Cache is a bounded, expiring key-value store for admin-editable
// content. Every entry carries a TTL; mutating callers must Invalidate
// the affected key explicitly.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

var ErrCacheMiss = errors.New("cache miss")
