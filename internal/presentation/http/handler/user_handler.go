package handler

import (
	"github.com/dentwise/dentwise-api/internal/application/service"
	"github.com/dentwise/dentwise-api/internal/presentation/http/dto/request"
	"github.com/dentwise/dentwise-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// UserHandler handles patient account endpoints
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Me handles GET /users/me
func (h *UserHandler) Me(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Profile retrieved successfully", gin.H{
		"user":     user,
		"is_admin": IsAdmin(c),
	})
}

// UpdateMe handles PUT /users/me
func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), *userID, &service.UpdateProfileInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Profile updated successfully", user)
}
