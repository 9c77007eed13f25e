package middleware

import (
	"bytes"
	"fmt"
	"log"
	"time"

	"github.com/dentwise/dentwise-api/internal/infrastructure/state"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// IdempotencyKeyHeader is the HTTP header for idempotency keys
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyKeyTTL is how long replayed responses are kept
	IdempotencyKeyTTL = 24 * time.Hour
)

// storedResponse is the cached outcome of a completed request.
type storedResponse struct {
	Code     int    `json:"code"`
	Body     string `json:"body"`
	Endpoint string `json:"endpoint"`
}

// responseWriter wraps gin.ResponseWriter to capture the response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func idempotencyKey(userID uuid.UUID, key string) string {
	return fmt.Sprintf("idempotency:%s:%s", userID, key)
}

// Idempotency replays the stored response when a mutating request carries
// an Idempotency-Key the same user already completed. Keys live in the
// shared state store so replays work across API instances. Store failures
// degrade to processing the request normally.
func Idempotency(store state.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != "POST" && c.Request.Method != "PUT" && c.Request.Method != "PATCH" {
			c.Next()
			return
		}

		headerKey := c.GetHeader(IdempotencyKeyHeader)
		if headerKey == "" {
			c.Next()
			return
		}

		userID, ok := GetUserID(c)
		if !ok {
			c.Next()
			return
		}

		key := idempotencyKey(userID, headerKey)

		var stored storedResponse
		found, err := store.Get(c.Request.Context(), key, &stored)
		if err != nil {
			log.Printf("idempotency: lookup for %s failed, processing normally: %v", key, err)
		} else if found {
			c.Header("X-Idempotency-Replayed", "true")
			c.Data(stored.Code, "application/json", []byte(stored.Body))
			c.Abort()
			return
		}

		blw := &responseWriter{body: bytes.NewBufferString(""), ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		// Only replay successful outcomes; a failed attempt should be
		// retryable with the same key.
		if c.Writer.Status() >= 200 && c.Writer.Status() < 300 {
			stored := storedResponse{
				Code:     c.Writer.Status(),
				Body:     blw.body.String(),
				Endpoint: c.Request.Method + " " + c.FullPath(),
			}
			if err := store.Set(c.Request.Context(), key, stored, IdempotencyKeyTTL); err != nil {
				log.Printf("idempotency: failed to store %s: %v", key, err)
			}
		}
	}
}
