package cache

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

func TestReadThroughMissComputesAndPopulates(t *testing.T) {
	c := New(state.NewMemoryStore())
	ctx := context.Background()
	calls := 0

	compute := func(context.Context) ([]string, error) {
		calls++
		return []string{"a", "b"}, nil
	}

	got, cached, err := ReadThrough(ctx, c, "k", time.Minute, compute)
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, []string{"a", "b"}, got)
	assert.Equal(t, 1, calls)

	got, cached, err = ReadThrough(ctx, c, "k", time.Minute, compute)
	require.NoError(t, err)
	assert.True(t, cached, "second read within TTL must hit the cache")
	assert.Equal(t, []string{"a", "b"}, got)
	assert.Equal(t, 1, calls, "compute must not run on a hit")
}

func TestReadThroughComputeErrorNotCached(t *testing.T) {
	c := New(state.NewMemoryStore())
	boom := errors.New("db down")
	calls := 0

	compute := func(context.Context) (int, error) {
		calls++
		if calls == 1 {
			return 0, boom
		}
		return 42, nil
	}

	_, _, err := ReadThrough(context.Background(), c, "k", time.Minute, compute)
	assert.ErrorIs(t, err, boom)

	got, cached, err := ReadThrough(context.Background(), c, "k", time.Minute, compute)
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, 42, got)
}

func TestReadThroughDegradesOnStoreFailure(t *testing.T) {
	c := New(unavailableStore{})

	got, cached, err := ReadThrough(context.Background(), c, "k", time.Minute, func(context.Context) (string, error) {
		return "fresh", nil
	})
	require.NoError(t, err, "a broken cache must not fail the request")
	assert.False(t, cached)
	assert.Equal(t, "fresh", got)
}

func TestInvalidateRemovesEntry(t *testing.T) {
	store := state.NewMemoryStore()
	c := New(store)
	ctx := context.Background()
	calls := 0

	compute := func(context.Context) (int, error) {
		calls++
		return calls, nil
	}

	_, _, err := ReadThrough(ctx, c, "k", time.Minute, compute)
	require.NoError(t, err)

	c.Invalidate(ctx, "k")

	got, cached, err := ReadThrough(ctx, c, "k", time.Minute, compute)
	require.NoError(t, err)
	assert.False(t, cached, "invalidated key must recompute")
	assert.Equal(t, 2, got)
}

func TestInvalidateAbsentKeyIsNoOp(t *testing.T) {
	c := New(state.NewMemoryStore())

	// No panic, no error surfaced.
	c.Invalidate(context.Background(), "never-set")
	c.Invalidate(context.Background())
}

func TestEntryExpiresByTTL(t *testing.T) {
	c := New(state.NewMemoryStore())
	ctx := context.Background()
	calls := 0

	compute := func(context.Context) (int, error) {
		calls++
		return calls, nil
	}

	_, _, err := ReadThrough(ctx, c, "k", 20*time.Millisecond, compute)
	require.NoError(t, err)

	time.Sleep(30 * time.Millisecond)

	_, cached, err := ReadThrough(ctx, c, "k", 20*time.Millisecond, compute)
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, 2, calls)
}

func TestUserAppointmentsKey(t *testing.T) {
	id := uuid.New()
	assert.Equal(t, "user:"+id.String()+":appointments", UserAppointmentsKey(id))
}

type unavailableStore struct{}

func (unavailableStore) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	return false, state.ErrUnavailable
}

func (unavailableStore) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return state.ErrUnavailable
}

func (unavailableStore) Delete(ctx context.Context, keys ...string) error {
	return state.ErrUnavailable
}
