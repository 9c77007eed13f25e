package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/dentwise/dentwise-api/internal/infrastructure/state"
)

// window is the stored fixed-window counter. ResetTime is fixed for the
// life of one window; counted requests never extend it.
type window struct {
	Count     int   `json:"count"`
	ResetTime int64 `json:"resetTime"` // epoch milliseconds
}

// Decision is the outcome of one admission check.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetTime time.Time
	// RetryAfter is the whole seconds until the window resets; set only
	// on rejection.
	RetryAfter int
}

// Limiter is a fixed-window request counter externalized to the shared
// state store, so quotas hold across concurrently running API instances.
// Window expiry rides on the store's per-key TTL.
type Limiter struct {
	store state.Store
	now   func() time.Time
}

// NewLimiter creates a limiter over the given state store.
func NewLimiter(store state.Store) *Limiter {
	return &Limiter{store: store, now: time.Now}
}

func windowKey(routeKey, clientID string) string {
	return fmt.Sprintf("ratelimit:%s:%s", routeKey, clientID)
}

// Admit counts one request against the (routeKey, clientID) window.
//
// Fixed window, not sliding: the first request of a window writes
// {count:1, resetTime: now+window} with TTL = window; later requests
// increment and rewrite with the TTL recomputed to the remaining window so
// the entry never outlives it; at the limit the request is rejected with a
// retry-after hint. Once resetTime passes, a fresh window starts
// unconditionally, whether or not the key already expired from the store.
//
// Store errors are returned to the caller; the HTTP middleware fails open.
func (l *Limiter) Admit(ctx context.Context, routeKey, clientID string, max int, windowLen time.Duration) (*Decision, error) {
	key := windowKey(routeKey, clientID)
	now := l.now()

	var win window
	found, err := l.store.Get(ctx, key, &win)
	if err != nil {
		return nil, err
	}

	if !found || now.UnixMilli() >= win.ResetTime {
		win = window{Count: 1, ResetTime: now.Add(windowLen).UnixMilli()}
		if err := l.store.Set(ctx, key, win, windowLen); err != nil {
			return nil, err
		}
		return &Decision{
			Allowed:   true,
			Limit:     max,
			Remaining: max - 1,
			ResetTime: time.UnixMilli(win.ResetTime),
		}, nil
	}

	remainingWindow := time.Duration(win.ResetTime-now.UnixMilli()) * time.Millisecond

	if win.Count >= max {
		return &Decision{
			Allowed:    false,
			Limit:      max,
			Remaining:  0,
			ResetTime:  time.UnixMilli(win.ResetTime),
			RetryAfter: int(ceilSeconds(remainingWindow)),
		}, nil
	}

	win.Count++
	if err := l.store.Set(ctx, key, win, remainingWindow); err != nil {
		return nil, err
	}

	return &Decision{
		Allowed:   true,
		Limit:     max,
		Remaining: max - win.Count,
		ResetTime: time.UnixMilli(win.ResetTime),
	}, nil
}

func ceilSeconds(d time.Duration) int64 {
	secs := d / time.Second
	if d%time.Second != 0 {
		secs++
	}
	if secs < 1 {
		secs = 1
	}
	return int64(secs)
}
