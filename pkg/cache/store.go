// Package cache is the best-effort memoization layer in front of the store.
package cache

import (
	"context"
	"time"
)

// Store is a byte-oriented key/value backend with per-key expiry.
type Store interface {
	// Get reports found=false on a miss; err is reserved for backend failures.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	// DeletePrefix removes every key starting with prefix.
	DeletePrefix(ctx context.Context, prefix string) error
}
