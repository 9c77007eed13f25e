package state

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreSetGet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	type payload struct {
		Count int `json:"count"`
	}

	require.NoError(t, s.Set(ctx, "k1", payload{Count: 3}, 0))

	var got payload
	found, err := s.Get(ctx, "k1", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 3, got.Count)
}

func TestMemoryStoreGetAbsent(t *testing.T) {
	s := NewMemoryStore()

	var got int
	found, err := s.Get(context.Background(), "missing", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryStoreTTLExpiry(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "short", true, 20*time.Millisecond))

	found, err := s.Get(ctx, "short", nil)
	require.NoError(t, err)
	assert.True(t, found)

	time.Sleep(30 * time.Millisecond)

	found, err = s.Get(ctx, "short", nil)
	require.NoError(t, err)
	assert.False(t, found, "expired key must read as absent")
}

func TestMemoryStoreDeleteIdempotent(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", 1, 0))
	require.NoError(t, s.Delete(ctx, "k"))
	require.NoError(t, s.Delete(ctx, "k"), "deleting an absent key must not error")

	found, err := s.Get(ctx, "k", nil)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryStoreCleanup(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "stale", 1, time.Millisecond))
	require.NoError(t, s.Set(ctx, "fresh", 1, time.Hour))

	time.Sleep(5 * time.Millisecond)
	s.Cleanup()

	s.mu.Lock()
	_, staleKept := s.entries["stale"]
	_, freshKept := s.entries["fresh"]
	s.mu.Unlock()

	assert.False(t, staleKept)
	assert.True(t, freshKept)
}
