package state

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// MemoryStore is an in-process Store used for local development and tests.
// It mirrors the Redis semantics (JSON values, per-key TTL) but is not
// shared across instances.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time // zero means no expiry
}

// NewMemoryStore creates an empty in-process store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	s.mu.Lock()
	ent, ok := s.entries[key]
	if ok && !ent.expiresAt.IsZero() && time.Now().After(ent.expiresAt) {
		delete(s.entries, key)
		ok = false
	}
	s.mu.Unlock()

	if !ok {
		return false, nil
	}
	if dest != nil {
		if err := json.Unmarshal(ent.data, dest); err != nil {
			return false, err
		}
	}
	return true, nil
}

func (s *MemoryStore) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	ent := memoryEntry{data: data}
	if ttl > 0 {
		ent.expiresAt = time.Now().Add(ttl)
	}

	s.mu.Lock()
	s.entries[key] = ent
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, keys ...string) error {
	s.mu.Lock()
	for _, key := range keys {
		delete(s.entries, key)
	}
	s.mu.Unlock()
	return nil
}

// Cleanup removes expired entries. The store also drops expired entries
// lazily on Get, so this only bounds memory for keys that are never read
// again.
func (s *MemoryStore) Cleanup() {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for key, ent := range s.entries {
		if !ent.expiresAt.IsZero() && now.After(ent.expiresAt) {
			delete(s.entries, key)
		}
	}
}

// StartJanitor starts a goroutine that periodically removes expired
// entries until the context is cancelled.
func (s *MemoryStore) StartJanitor(ctx context.Context, every time.Duration) {
	if every <= 0 {
		return
	}

	t := time.NewTicker(every)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				s.Cleanup()
			}
		}
	}()
}
