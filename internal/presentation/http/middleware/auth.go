package middleware

import (
	"strings"

	"github.com/dentwise/dentwise-api/internal/application/service"
	"github.com/dentwise/dentwise-api/internal/presentation/http/dto/response"
	"github.com/dentwise/dentwise-api/pkg/identity"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuthMiddleware verifies the identity provider's session token and syncs
// the local user row from its claims. Admin status is derived from the
// configured admin email, not from token claims.
func AuthMiddleware(verifier *identity.Verifier, users *service.UserService, adminEmail string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := identity.FromAuthorizationHeader(c.GetHeader("Authorization"))
		if token == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		claims, err := verifier.Verify(token)
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		user, err := users.SyncFromClaims(c.Request.Context(), claims)
		if err != nil {
			response.InternalServerError(c, "Failed to resolve user account")
			c.Abort()
			return
		}

		c.Set("user_id", user.ID)
		c.Set("user_email", user.Email)
		c.Set("is_admin", adminEmail != "" && strings.EqualFold(user.Email, adminEmail))

		c.Next()
	}
}

// RequireAdmin rejects requests from non-admin users. Must run after
// AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAdmin(c) {
			response.Forbidden(c, "Admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetUserID returns the authenticated user's ID from the request context.
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok
}

// IsAdmin reports whether the authenticated user is the platform admin.
func IsAdmin(c *gin.Context) bool {
	value, exists := c.Get("is_admin")
	if !exists {
		return false
	}
	isAdmin, ok := value.(bool)
	return ok && isAdmin
}
