package booking

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/dentwise/dentwise-api/internal/infrastructure/state"
	"github.com/google/uuid"
)

// LockTTL bounds how long a crashed holder can wedge a slot. Release is
// best-effort; the TTL is the ultimate cleanup guarantee.
const LockTTL = 30 * time.Second

// Lock collapses rapid-fire duplicate submissions from one caller for one
// slot. It is a check-then-set over the shared state store, not an atomic
// compare-and-swap: two requests can race through the "absent" read, which
// is accepted because the conflict detector re-validates against durable
// state before any write. The lock is a throughput optimization, never the
// sole correctness mechanism.
type Lock struct {
	store state.Store
	ttl   time.Duration
}

// NewLock creates a booking lock over the given state store.
func NewLock(store state.Store) *Lock {
	return &Lock{store: store, ttl: LockTTL}
}

// LockKey builds the per-(caller, date, time) lock key. The key is scoped
// to the caller rather than the doctor: serializing all contention for a
// doctor's slot is the conflict detector's job.
func LockKey(userID uuid.UUID, date, slot string) string {
	return fmt.Sprintf("booking:lock:%s:%s:%s", userID, date, slot)
}

// TryAcquire attempts to take the lock. It returns false if the lock is
// already held. A store error fails the attempt (fail closed): proceeding
// unlocked is worse than asking the caller to retry.
func (l *Lock) TryAcquire(ctx context.Context, key string) (bool, error) {
	held, err := l.store.Get(ctx, key, nil)
	if err != nil {
		return false, err
	}
	if held {
		return false, nil
	}

	if err := l.store.Set(ctx, key, true, l.ttl); err != nil {
		return false, err
	}
	return true, nil
}

// Release deletes the lock. Safe to call when the key is already absent or
// expired. Store failures are logged, not retried: the TTL cleans up.
func (l *Lock) Release(ctx context.Context, key string) {
	if err := l.store.Delete(ctx, key); err != nil {
		log.Printf("booking: failed to release lock %s (ttl will expire it): %v", key, err)
	}
}
