package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dentwise/dentwise-api/internal/application/ratelimit"
	"github.com/dentwise/dentwise-api/internal/infrastructure/state"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newLimitedRouter(store state.Store, preset ratelimit.Preset, userID *uuid.UUID) *gin.Engine {
	router := gin.New()
	if userID != nil {
		router.Use(func(c *gin.Context) {
			c.Set("user_id", *userID)
			c.Next()
		})
	}
	router.GET("/ping", RateLimit(ratelimit.NewLimiter(store), preset), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return router
}

func doPing(router *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "10.1.2.3:51000"
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimitAllowsWithinQuota(t *testing.T) {
	preset := ratelimit.Preset{Name: "test", Max: 3, Window: time.Minute}
	router := newLimitedRouter(state.NewMemoryStore(), preset, nil)

	w := doPing(router)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "3", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Remaining"))

	reset, err := time.Parse(time.RFC3339, w.Header().Get("X-RateLimit-Reset"))
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Minute), reset, 5*time.Second)
}

func TestRateLimitRejectsOverQuota(t *testing.T) {
	preset := ratelimit.Preset{Name: "test", Max: 2, Window: time.Minute, Message: "Slow down."}
	router := newLimitedRouter(state.NewMemoryStore(), preset, nil)

	require.Equal(t, http.StatusOK, doPing(router).Code)
	require.Equal(t, http.StatusOK, doPing(router).Code)

	w := doPing(router)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "Slow down.")
	assert.Contains(t, w.Body.String(), "too_many_requests")
}

func TestRateLimitKeysByUser(t *testing.T) {
	store := state.NewMemoryStore()
	preset := ratelimit.Preset{Name: "test", Max: 1, Window: time.Minute}

	alice := uuid.New()
	bob := uuid.New()
	aliceRouter := newLimitedRouter(store, preset, &alice)
	bobRouter := newLimitedRouter(store, preset, &bob)

	require.Equal(t, http.StatusOK, doPing(aliceRouter).Code)
	assert.Equal(t, http.StatusTooManyRequests, doPing(aliceRouter).Code)

	// Same route and origin, different user: separate window.
	assert.Equal(t, http.StatusOK, doPing(bobRouter).Code)
}

func TestRateLimitByOriginIgnoresUser(t *testing.T) {
	store := state.NewMemoryStore()
	preset := ratelimit.Preset{Name: "test", Max: 1, Window: time.Minute, ByOrigin: true}

	alice := uuid.New()
	bob := uuid.New()
	aliceRouter := newLimitedRouter(store, preset, &alice)
	bobRouter := newLimitedRouter(store, preset, &bob)

	require.Equal(t, http.StatusOK, doPing(aliceRouter).Code)

	// Different user, same origin address: shares the window.
	assert.Equal(t, http.StatusTooManyRequests, doPing(bobRouter).Code)
}

// failingStore simulates the shared state backend being unreachable.
type failingStore struct{}

func (failingStore) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	return false, state.ErrUnavailable
}

func (failingStore) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return state.ErrUnavailable
}

func (failingStore) Delete(ctx context.Context, keys ...string) error {
	return state.ErrUnavailable
}

func TestRateLimitFailsOpenOnStoreError(t *testing.T) {
	preset := ratelimit.Preset{Name: "test", Max: 1, Window: time.Minute}
	router := newLimitedRouter(failingStore{}, preset, nil)

	for i := 0; i < 5; i++ {
		w := doPing(router)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
	}
}
