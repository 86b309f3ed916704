package cache

import (
	"context"
	"encoding/json"
	"time"

	"noter-be/internal/pkg/logger"
)

const module = "CACHE"

// Cache wraps a Store with the best-effort contract: every call is bounded by
// a timeout, never retried, and failures are logged and reported as a miss.
type Cache struct {
	store   Store
	timeout time.Duration
	log     logger.ILogger
}

func New(store Store, timeout time.Duration, log logger.ILogger) *Cache {
	return &Cache{
		store:   store,
		timeout: timeout,
		log:     log,
	}
}

// GetJSON decodes the entry at key into dst and reports whether it was a usable hit.
func (c *Cache) GetJSON(ctx context.Context, key string, dst interface{}) bool {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	raw, found, err := c.store.Get(ctx, key)
	if err != nil {
		c.log.Warn(module, "Cache read failed, falling through", map[string]interface{}{"key": key, "error": err.Error()})
		return false
	}
	if !found {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		c.log.Warn(module, "Dropping undecodable cache entry", map[string]interface{}{"key": key, "error": err.Error()})
		c.Delete(ctx, key)
		return false
	}
	return true
}

func (c *Cache) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	raw, err := json.Marshal(value)
	if err != nil {
		c.log.Warn(module, "Cache encode failed", map[string]interface{}{"key": key, "error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.store.Set(ctx, key, raw, ttl); err != nil {
		c.log.Warn(module, "Cache write failed", map[string]interface{}{"key": key, "error": err.Error()})
	}
}

func (c *Cache) Delete(ctx context.Context, keys ...string) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.store.Delete(ctx, keys...); err != nil {
		c.log.Warn(module, "Cache delete failed", map[string]interface{}{"keys": keys, "error": err.Error()})
	}
}

func (c *Cache) DeletePrefix(ctx context.Context, prefix string) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.store.DeletePrefix(ctx, prefix); err != nil {
		c.log.Warn(module, "Cache prefix delete failed", map[string]interface{}{"prefix": prefix, "error": err.Error()})
	}
}
