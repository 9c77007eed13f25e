package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Video is a course video backed by the external hosting provider.
// UploadID/AssetID/PlaybackID track the provider-side lifecycle; a video
// stays unpublished until the asset is ready.
type Video struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	Description  *string   `gorm:"type:text" json:"description,omitempty"`
	ThumbnailURL *string   `gorm:"size:500" json:"thumbnail_url,omitempty"`
	Duration     *float64  `json:"duration,omitempty"`
	Instructor   *string   `gorm:"size:255" json:"instructor,omitempty"`
	IsPublished  bool      `gorm:"default:false;index" json:"is_published"`
	UploadID     *string   `gorm:"size:255" json:"-"`
	AssetID      *string   `gorm:"size:255" json:"-"`
	PlaybackID   *string   `gorm:"size:255" json:"playback_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before inserting a new video
func (v *Video) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Video model
func (Video) TableName() string {
	return "videos"
}

// VideoWatch tracks one user's progress through one video.
type VideoWatch struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_video_watches_user_video" json:"user_id"`
	VideoID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_video_watches_user_video" json:"video_id"`
	LastPosition    float64   `gorm:"default:0" json:"last_position"`
	WatchedDuration float64   `gorm:"default:0" json:"watched_duration"`
	Completed       bool      `gorm:"default:false" json:"completed"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	Video Video `gorm:"foreignKey:VideoID" json:"-"`
}

// BeforeCreate generates a UUID before inserting a new watch record
func (w *VideoWatch) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the VideoWatch model
func (VideoWatch) TableName() string {
	return "video_watches"
}
