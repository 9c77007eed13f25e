package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dentwise/dentwise-api/internal/infrastructure/state"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenStore struct{}

func (brokenStore) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	return false, state.ErrUnavailable
}

func (brokenStore) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return state.ErrUnavailable
}

func (brokenStore) Delete(ctx context.Context, keys ...string) error {
	return state.ErrUnavailable
}

func TestLockKeyScopedToCaller(t *testing.T) {
	userID := uuid.New()
	key := LockKey(userID, "2025-06-01", "09:00")
	assert.Equal(t, "booking:lock:"+userID.String()+":2025-06-01:09:00", key)
}

func TestTryAcquireGrantsWhenAbsent(t *testing.T) {
	lock := NewLock(state.NewMemoryStore())
	key := LockKey(uuid.New(), "2025-06-01", "09:00")

	granted, err := lock.TryAcquire(context.Background(), key)
	require.NoError(t, err)
	assert.True(t, granted)
}

func TestTryAcquireDeniesWhenHeld(t *testing.T) {
	lock := NewLock(state.NewMemoryStore())
	key := LockKey(uuid.New(), "2025-06-01", "09:00")
	ctx := context.Background()

	granted, err := lock.TryAcquire(ctx, key)
	require.NoError(t, err)
	require.True(t, granted)

	granted, err = lock.TryAcquire(ctx, key)
	require.NoError(t, err)
	assert.False(t, granted, "second acquisition for the same key must not succeed")
}

func TestReleaseLeavesKeyAbsent(t *testing.T) {
	store := state.NewMemoryStore()
	lock := NewLock(store)
	key := LockKey(uuid.New(), "2025-06-01", "09:00")
	ctx := context.Background()

	granted, err := lock.TryAcquire(ctx, key)
	require.NoError(t, err)
	require.True(t, granted)

	lock.Release(ctx, key)

	found, err := store.Get(ctx, key, nil)
	require.NoError(t, err)
	assert.False(t, found)

	// Released slot can be acquired again.
	granted, err = lock.TryAcquire(ctx, key)
	require.NoError(t, err)
	assert.True(t, granted)
}

func TestReleaseIdempotent(t *testing.T) {
	lock := NewLock(state.NewMemoryStore())
	key := LockKey(uuid.New(), "2025-06-01", "09:00")

	// Releasing a never-acquired key must not panic or error.
	lock.Release(context.Background(), key)
	lock.Release(context.Background(), key)
}

func TestLockExpiresAfterTTL(t *testing.T) {
	store := state.NewMemoryStore()
	lock := &Lock{store: store, ttl: 20 * time.Millisecond}
	key := LockKey(uuid.New(), "2025-06-01", "09:00")
	ctx := context.Background()

	granted, err := lock.TryAcquire(ctx, key)
	require.NoError(t, err)
	require.True(t, granted)

	time.Sleep(30 * time.Millisecond)

	granted, err = lock.TryAcquire(ctx, key)
	require.NoError(t, err)
	assert.True(t, granted, "lock must be acquirable after TTL expiry")
}

func TestTryAcquireFailsClosedOnStoreError(t *testing.T) {
	lock := NewLock(brokenStore{})

	granted, err := lock.TryAcquire(context.Background(), "booking:lock:x")
	assert.False(t, granted)
	require.Error(t, err)
	assert.True(t, errors.Is(err, state.ErrUnavailable))
}

func TestReleaseBestEffortOnStoreError(t *testing.T) {
	lock := NewLock(brokenStore{})

	// Must not panic; the TTL is the backstop.
	lock.Release(context.Background(), "booking:lock:x")
}
