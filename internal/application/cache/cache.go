// Package cache is a short-TTL read-through cache for list endpoints,
// explicitly invalidated on every mutating write that could change a
// cached result. Cache-aside by design: correctness depends on
// invalidation-on-write, with the TTL only as a safety net against missed
// invalidations.
package cache

import (
	"context"
	"log"
	"time"
)

// Store is the subset of the state store the cache needs.
type Store interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// Cache wraps the shared state store. Any entry may be absent at any time;
// readers recompute and repopulate on a miss, and store failures degrade to
// computing fresh rather than failing the request.
type Cache struct {
	store Store
}

// New creates a cache over the given store.
func New(store Store) *Cache {
	return &Cache{store: store}
}

// ReadThrough returns the cached value for key, or computes, stores (with
// the given TTL) and returns it on a miss. The second return value reports
// whether the value came from the cache.
func ReadThrough[T any](ctx context.Context, c *Cache, key string, ttl time.Duration, compute func(context.Context) (T, error)) (T, bool, error) {
	var cached T
	found, err := c.store.Get(ctx, key, &cached)
	if err != nil {
		log.Printf("cache: read for %s failed, computing fresh: %v", key, err)
	} else if found {
		return cached, true, nil
	}

	value, err := compute(ctx)
	if err != nil {
		var zero T
		return zero, false, err
	}

	if err := c.store.Set(ctx, key, value, ttl); err != nil {
		log.Printf("cache: failed to populate %s: %v", key, err)
	}
	return value, false, nil
}

// Invalidate deletes the given keys. Invalidating an absent key is a
// no-op. Called synchronously on the mutation path, before the mutation's
// response returns, so a reader immediately after a write never observes
// stale data older than the write.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if err := c.store.Delete(ctx, keys...); err != nil {
		log.Printf("cache: failed to invalidate %v (ttl will expire them): %v", keys, err)
	}
}
