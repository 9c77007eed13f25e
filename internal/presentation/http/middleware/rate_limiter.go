package middleware

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/dentwise/dentwise-api/internal/application/ratelimit"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RateLimit applies the preset's fixed-window quota to the route. The
// counter is keyed by route path plus client identity: the authenticated
// user when available, otherwise the caller's network address.
//
// A state-store failure admits the request (fail open): the limiter
// protects capacity, and shedding all traffic because the store is down
// would invert that purpose.
func RateLimit(limiter *ratelimit.Limiter, preset ratelimit.Preset) gin.HandlerFunc {
	return func(c *gin.Context) {
		routeKey := c.FullPath()
		if routeKey == "" {
			routeKey = c.Request.URL.Path
		}

		decision, err := limiter.Admit(c.Request.Context(), routeKey, clientID(c, preset), preset.Max, preset.Window)
		if err != nil {
			log.Printf("ratelimit: admission check failed for %s, allowing request: %v", routeKey, err)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
		c.Header("X-RateLimit-Reset", decision.ResetTime.UTC().Format(time.RFC3339))

		if !decision.Allowed {
			c.Header("Retry-After", strconv.Itoa(decision.RetryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": preset.RejectionMessage(),
				"error":   "too_many_requests",
			})
			return
		}

		c.Next()
	}
}

// clientID resolves who the counter is keyed by. Origin-keyed presets skip
// the user lookup so pre-auth routes and authed routes hash the same way.
func clientID(c *gin.Context, preset ratelimit.Preset) string {
	if !preset.ByOrigin {
		if value, exists := c.Get("user_id"); exists {
			if id, ok := value.(uuid.UUID); ok {
				return id.String()
			}
		}
	}
	if ip := c.ClientIP(); ip != "" {
		return "ip:" + ip
	}
	return "unknown"
}
