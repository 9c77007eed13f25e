package handler

import (
	"errors"
	"net/http"

	"github.com/dentwise/dentwise-api/internal/application/booking"
	"github.com/dentwise/dentwise-api/internal/infrastructure/state"
	"github.com/dentwise/dentwise-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// GetUserEmail extracts the user email from the Gin context
func GetUserEmail(c *gin.Context) string {
	email, exists := c.Get("user_email")
	if !exists {
		return ""
	}
	return email.(string)
}

// IsAdmin reports whether the authenticated caller is the platform admin
func IsAdmin(c *gin.Context) bool {
	value, exists := c.Get("is_admin")
	if !exists {
		return false
	}
	isAdmin, ok := value.(bool)
	return ok && isAdmin
}

// bookingError maps booking-flow failures onto HTTP semantics: slot
// conflicts and in-progress duplicates are 409s the client must not retry
// blindly; timeouts and store outages are retryable 503s.
func bookingError(c *gin.Context, err error) {
	if conflict, ok := booking.IsConflict(err); ok {
		response.ErrorWithCode(c, http.StatusConflict, conflict.Error())
		return
	}
	switch {
	case errors.Is(err, booking.ErrAlreadyInProgress):
		response.ErrorWithCode(c, http.StatusConflict, err.Error())
	case errors.Is(err, booking.ErrTimeout):
		response.ErrorWithCode(c, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, state.ErrUnavailable):
		response.ErrorWithCode(c, http.StatusServiceUnavailable, "Booking service temporarily unavailable. Please try again.")
	default:
		response.Error(c, err)
	}
}
