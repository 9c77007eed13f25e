package request

// CreateUploadRequest represents a video upload session request
type CreateUploadRequest struct {
	Title string `json:"title" binding:"required,min=2,max=255"`
}

// CreateVideoRequest represents a video added directly by metadata,
// referencing an asset that already exists at the host
type CreateVideoRequest struct {
	Title        string   `json:"title" binding:"required,min=2,max=255"`
	Description  *string  `json:"description" binding:"omitempty,max=5000"`
	ThumbnailURL *string  `json:"thumbnail_url" binding:"omitempty,url,max=500"`
	Instructor   *string  `json:"instructor" binding:"omitempty,max=255"`
	PlaybackID   string   `json:"playback_id" binding:"required,max=255"`
	Duration     *float64 `json:"duration" binding:"omitempty,min=0"`
	IsPublished  bool     `json:"is_published"`
}

// UpdateVideoRequest represents a video metadata update request
type UpdateVideoRequest struct {
	Title        *string `json:"title" binding:"omitempty,min=2,max=255"`
	Description  *string `json:"description" binding:"omitempty,max=5000"`
	ThumbnailURL *string `json:"thumbnail_url" binding:"omitempty,url,max=500"`
	Instructor   *string `json:"instructor" binding:"omitempty,max=255"`
	IsPublished  *bool   `json:"is_published"`
}

// UpdateProgressRequest represents a watch-progress update request
type UpdateProgressRequest struct {
	LastPosition    float64 `json:"last_position" binding:"min=0"`
	WatchedDuration float64 `json:"watched_duration" binding:"min=0"`
	Completed       bool    `json:"completed"`
}
