package repository

import (
	"context"
	"errors"

	"github.com/dentwise/dentwise-api/internal/domain/entity"
	domainRepo "github.com/dentwise/dentwise-api/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type videoRepository struct {
	db *gorm.DB
}

// NewVideoRepository creates a new video repository
func NewVideoRepository(db *gorm.DB) domainRepo.VideoRepository {
	return &videoRepository{db: db}
}

func (r *videoRepository) Create(ctx context.Context, video *entity.Video) error {
	return r.db.WithContext(ctx).Create(video).Error
}

func (r *videoRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Video, error) {
	var video entity.Video
	err := r.db.WithContext(ctx).First(&video, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &video, err
}

func (r *videoRepository) Update(ctx context.Context, video *entity.Video) error {
	return r.db.WithContext(ctx).Save(video).Error
}

func (r *videoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Video{}, "id = ?", id).Error
}

func (r *videoRepository) ListPublished(ctx context.Context) ([]entity.Video, error) {
	var videos []entity.Video
	err := r.db.WithContext(ctx).
		Where("is_published = ?", true).
		Order("created_at DESC").
		Find(&videos).Error
	return videos, err
}

func (r *videoRepository) ListAll(ctx context.Context) ([]entity.Video, error) {
	var videos []entity.Video
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&videos).Error
	return videos, err
}

func (r *videoRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Video{}).Count(&count).Error
	return count, err
}

func (r *videoRepository) UpsertWatch(ctx context.Context, watch *entity.VideoWatch) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "video_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"last_position", "watched_duration", "completed", "updated_at",
			}),
		}).
		Create(watch).Error
}

func (r *videoRepository) WatchesByUser(ctx context.Context, userID uuid.UUID, videoIDs []uuid.UUID) ([]entity.VideoWatch, error) {
	var watches []entity.VideoWatch
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if len(videoIDs) > 0 {
		query = query.Where("video_id IN ?", videoIDs)
	}
	err := query.Find(&watches).Error
	return watches, err
}

func (r *videoRepository) WatchStats(ctx context.Context, videoID uuid.UUID) (*domainRepo.VideoWatchStats, error) {
	var stats domainRepo.VideoWatchStats
	err := r.db.WithContext(ctx).
		Model(&entity.VideoWatch{}).
		Select("video_id, COUNT(*) as views, COUNT(*) FILTER (WHERE completed) as completions, COALESCE(SUM(watched_duration), 0) as total_watched").
		Where("video_id = ?", videoID).
		Group("video_id").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	stats.VideoID = videoID
	return &stats, nil
}

func (r *videoRepository) WatchStatsAll(ctx context.Context) ([]domainRepo.VideoWatchStats, error) {
	var stats []domainRepo.VideoWatchStats
	err := r.db.WithContext(ctx).
		Model(&entity.VideoWatch{}).
		Select("video_id, COUNT(*) as views, COUNT(*) FILTER (WHERE completed) as completions, COALESCE(SUM(watched_duration), 0) as total_watched").
		Group("video_id").
		Scan(&stats).Error
	return stats, err
}
