package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/dentwise/dentwise-api/internal/infrastructure/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter() (*Limiter, *time.Time) {
	now := time.Now()
	l := NewLimiter(state.NewMemoryStore())
	l.now = func() time.Time { return now }
	return l, &now
}

func TestAdmitFirstRequestOpensWindow(t *testing.T) {
	l, now := newTestLimiter()

	d, err := l.Admit(context.Background(), "/api/appointments", "user-1", 30, 60*time.Second)
	require.NoError(t, err)

	assert.True(t, d.Allowed)
	assert.Equal(t, 30, d.Limit)
	assert.Equal(t, 29, d.Remaining)
	assert.Equal(t, now.Add(60*time.Second).UnixMilli(), d.ResetTime.UnixMilli())
}

func TestAdmitUpToMaxThenReject(t *testing.T) {
	l, _ := newTestLimiter()
	ctx := context.Background()

	for i := 1; i <= 30; i++ {
		d, err := l.Admit(ctx, "/api/appointments", "user-1", 30, 60*time.Second)
		require.NoError(t, err)
		require.True(t, d.Allowed, "request %d must be admitted", i)
		assert.Equal(t, 30-i, d.Remaining)
	}

	d, err := l.Admit(ctx, "/api/appointments", "user-1", 30, 60*time.Second)
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, 0, d.Remaining)
	assert.Greater(t, d.RetryAfter, 0)
	assert.LessOrEqual(t, d.RetryAfter, 60)
}

func TestAdmitKeysAreIndependent(t *testing.T) {
	l, _ := newTestLimiter()
	ctx := context.Background()

	d, err := l.Admit(ctx, "/api/appointments", "user-1", 1, time.Minute)
	require.NoError(t, err)
	require.True(t, d.Allowed)

	d, err = l.Admit(ctx, "/api/appointments", "user-1", 1, time.Minute)
	require.NoError(t, err)
	require.False(t, d.Allowed)

	// Different caller, same route.
	d, err = l.Admit(ctx, "/api/appointments", "user-2", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, d.Allowed)

	// Same caller, different route.
	d, err = l.Admit(ctx, "/api/doctors", "user-1", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, d.Allowed)
}

func TestAdmitResetTimeFixedForWindowLife(t *testing.T) {
	l, now := newTestLimiter()
	ctx := context.Background()

	first, err := l.Admit(ctx, "/r", "c", 10, time.Minute)
	require.NoError(t, err)

	// Later requests inside the window must not extend the reset time.
	*now = now.Add(10 * time.Second)
	second, err := l.Admit(ctx, "/r", "c", 10, time.Minute)
	require.NoError(t, err)

	assert.Equal(t, first.ResetTime.UnixMilli(), second.ResetTime.UnixMilli())
}

func TestAdmitFreshWindowAfterReset(t *testing.T) {
	l, now := newTestLimiter()
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := l.Admit(ctx, "/r", "c", 2, time.Minute)
		require.NoError(t, err)
	}

	d, err := l.Admit(ctx, "/r", "c", 2, time.Minute)
	require.NoError(t, err)
	require.False(t, d.Allowed)

	// Window elapses; a fresh window starts with count 1 even though the
	// old key may still be present in the store.
	*now = now.Add(61 * time.Second)

	d, err = l.Admit(ctx, "/r", "c", 2, time.Minute)
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Equal(t, 1, d.Remaining, "fresh window must start at count 1")
}

func TestAdmitSurfacesStoreErrors(t *testing.T) {
	l := NewLimiter(erroringStore{})

	_, err := l.Admit(context.Background(), "/r", "c", 5, time.Minute)
	assert.ErrorIs(t, err, state.ErrUnavailable)
}

type erroringStore struct{}

func (erroringStore) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	return false, state.ErrUnavailable
}

func (erroringStore) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return state.ErrUnavailable
}

func (erroringStore) Delete(ctx context.Context, keys ...string) error {
	return state.ErrUnavailable
}

func TestCeilSeconds(t *testing.T) {
	assert.Equal(t, int64(1), ceilSeconds(200*time.Millisecond))
	assert.Equal(t, int64(1), ceilSeconds(time.Second))
	assert.Equal(t, int64(2), ceilSeconds(1100*time.Millisecond))
	assert.Equal(t, int64(1), ceilSeconds(0))
}
