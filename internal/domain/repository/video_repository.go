package repository

import (
	"context"

	"github.com/dentwise/dentwise-api/internal/domain/entity"
	"github.com/google/uuid"
)

// VideoWatchStats aggregates engagement for one video.
type VideoWatchStats struct {
	VideoID       uuid.UUID `json:"video_id"`
	Views         int64     `json:"views"`
	Completions   int64     `json:"completions"`
	TotalWatched  float64   `json:"total_watched_seconds"`
}

// VideoRepository defines video and watch-progress persistence operations
type VideoRepository interface {
	Create(ctx context.Context, video *entity.Video) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Video, error)
	Update(ctx context.Context, video *entity.Video) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListPublished(ctx context.Context) ([]entity.Video, error)
	ListAll(ctx context.Context) ([]entity.Video, error)
	Count(ctx context.Context) (int64, error)

	// UpsertWatch creates or updates the (user, video) watch record.
	UpsertWatch(ctx context.Context, watch *entity.VideoWatch) error
	// WatchesByUser returns the user's watch records for the given videos.
	WatchesByUser(ctx context.Context, userID uuid.UUID, videoIDs []uuid.UUID) ([]entity.VideoWatch, error)
	WatchStats(ctx context.Context, videoID uuid.UUID) (*VideoWatchStats, error)
	WatchStatsAll(ctx context.Context) ([]VideoWatchStats, error)
}
