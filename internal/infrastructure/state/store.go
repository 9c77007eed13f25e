package state

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable indicates the backing store could not be reached.
// Callers decide whether to fail open (rate limiter) or closed (booking lock).
var ErrUnavailable = errors.New("state store unavailable")

// Store is a network-accessible key-value store with per-key TTL expiry.
// Values are JSON-serialized. A zero TTL means no expiry.
type Store interface {
	// Get unmarshals the value for key into dest and reports whether the key
	// was present. Expired keys are treated as absent.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value under key with the given TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes the given keys. Deleting an absent key is a no-op.
	Delete(ctx context.Context, keys ...string) error
}
