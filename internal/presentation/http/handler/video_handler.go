package handler

import (
	"github.com/dentwise/dentwise-api/internal/application/service"
	"github.com/dentwise/dentwise-api/internal/presentation/http/dto/request"
	"github.com/dentwise/dentwise-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// VideoHandler handles course video endpoints
type VideoHandler struct {
	videoService *service.VideoService
	corsOrigin   string
}

// NewVideoHandler creates a new video handler
func NewVideoHandler(videoService *service.VideoService, corsOrigin string) *VideoHandler {
	return &VideoHandler{videoService: videoService, corsOrigin: corsOrigin}
}

// List handles GET /videos (published catalog with caller's progress)
func (h *VideoHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	videos, err := h.videoService.ListForUser(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Videos retrieved successfully", videos)
}

// Get handles GET /videos/:id
func (h *VideoHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid video ID")
		return
	}

	video, err := h.videoService.GetVideo(c.Request.Context(), id, IsAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Video retrieved successfully", video)
}

// UpdateProgress handles PUT /videos/:id/progress
func (h *VideoHandler) UpdateProgress(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid video ID")
		return
	}

	var req request.UpdateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	err = h.videoService.UpdateProgress(c.Request.Context(), &service.UpdateProgressInput{
		UserID:          *userID,
		VideoID:         id,
		LastPosition:    req.LastPosition,
		WatchedDuration: req.WatchedDuration,
		Completed:       req.Completed,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Progress updated successfully", nil)
}

// Create handles POST /admin/videos (direct add by playback ID)
func (h *VideoHandler) Create(c *gin.Context) {
	var req request.CreateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	video, err := h.videoService.CreateVideo(c.Request.Context(), &service.CreateVideoInput{
		Title:        req.Title,
		Description:  req.Description,
		ThumbnailURL: req.ThumbnailURL,
		Instructor:   req.Instructor,
		PlaybackID:   req.PlaybackID,
		Duration:     req.Duration,
		IsPublished:  req.IsPublished,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Video created successfully", video)
}

// CreateUpload handles POST /admin/videos/uploads
func (h *VideoHandler) CreateUpload(c *gin.Context) {
	var req request.CreateUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	video, upload, err := h.videoService.CreateUploadSession(c.Request.Context(), req.Title, h.corsOrigin)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Upload session created", gin.H{
		"video":      video,
		"upload_id":  upload.ID,
		"upload_url": upload.URL,
	})
}

// RefreshUpload handles POST /admin/videos/:id/refresh
func (h *VideoHandler) RefreshUpload(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid video ID")
		return
	}

	video, err := h.videoService.RefreshUploadStatus(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Upload status refreshed", video)
}

// Update handles PUT /admin/videos/:id
func (h *VideoHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid video ID")
		return
	}

	var req request.UpdateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	video, err := h.videoService.UpdateVideo(c.Request.Context(), &service.UpdateVideoInput{
		ID:           id,
		Title:        req.Title,
		Description:  req.Description,
		ThumbnailURL: req.ThumbnailURL,
		Instructor:   req.Instructor,
		IsPublished:  req.IsPublished,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Video updated successfully", video)
}

// Delete handles DELETE /admin/videos/:id
func (h *VideoHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid video ID")
		return
	}

	if err := h.videoService.DeleteVideo(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Video deleted successfully", nil)
}

// ListAll handles GET /admin/videos (drafts included)
func (h *VideoHandler) ListAll(c *gin.Context) {
	videos, err := h.videoService.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Videos retrieved successfully", videos)
}

// Analytics handles GET /admin/videos/analytics
func (h *VideoHandler) Analytics(c *gin.Context) {
	stats, err := h.videoService.WatchAnalytics(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Video analytics retrieved successfully", stats)
}

// DetailAnalytics handles GET /admin/videos/:id/analytics
func (h *VideoHandler) DetailAnalytics(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid video ID")
		return
	}

	detail, err := h.videoService.VideoAnalytics(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Video analytics retrieved successfully", detail)
}
