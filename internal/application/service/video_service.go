package service

import (
	"context"

	"github.com/dentwise/dentwise-api/internal/domain/entity"
	"github.com/dentwise/dentwise-api/internal/domain/repository"
	"github.com/dentwise/dentwise-api/internal/events"
	"github.com/dentwise/dentwise-api/pkg/apperror"
	"github.com/dentwise/dentwise-api/pkg/sanitize"
	"github.com/dentwise/dentwise-api/pkg/videohost"
	"github.com/google/uuid"
)

// VideoService handles course videos and per-user watch progress
type VideoService struct {
	videoRepo repository.VideoRepository
	host      *videohost.Client
	publisher events.Publisher
}

// NewVideoService creates a new video service
func NewVideoService(videoRepo repository.VideoRepository, host *videohost.Client, publisher events.Publisher) *VideoService {
	return &VideoService{videoRepo: videoRepo, host: host, publisher: publisher}
}

// VideoWithProgress pairs a published video with the caller's progress.
type VideoWithProgress struct {
	entity.Video
	LastPosition    float64 `json:"last_position"`
	WatchedDuration float64 `json:"watched_duration"`
	Completed       bool    `json:"completed"`
}

// ListForUser returns the published catalog annotated with the user's
// watch progress.
func (s *VideoService) ListForUser(ctx context.Context, userID uuid.UUID) ([]VideoWithProgress, error) {
	videos, err := s.videoRepo.ListPublished(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(videos))
	for i, v := range videos {
		ids[i] = v.ID
	}

	watches, err := s.videoRepo.WatchesByUser(ctx, userID, ids)
	if err != nil {
		return nil, err
	}
	byVideo := make(map[uuid.UUID]entity.VideoWatch, len(watches))
	for _, w := range watches {
		byVideo[w.VideoID] = w
	}

	result := make([]VideoWithProgress, 0, len(videos))
	for _, v := range videos {
		item := VideoWithProgress{Video: v}
		if w, ok := byVideo[v.ID]; ok {
			item.LastPosition = w.LastPosition
			item.WatchedDuration = w.WatchedDuration
			item.Completed = w.Completed
		}
		result = append(result, item)
	}
	return result, nil
}

// GetVideo returns one video; unpublished videos are admin-only.
func (s *VideoService) GetVideo(ctx context.Context, id uuid.UUID, isAdmin bool) (*entity.Video, error) {
	video, err := s.videoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if video == nil || (!video.IsPublished && !isAdmin) {
		return nil, apperror.NewNotFoundError("Video")
	}
	return video, nil
}

// UpdateProgressInput represents a watch-progress update
type UpdateProgressInput struct {
	UserID          uuid.UUID
	VideoID         uuid.UUID
	LastPosition    float64
	WatchedDuration float64
	Completed       bool
}

// UpdateProgress upserts the caller's watch record for a video.
func (s *VideoService) UpdateProgress(ctx context.Context, input *UpdateProgressInput) error {
	video, err := s.GetVideo(ctx, input.VideoID, false)
	if err != nil {
		return err
	}

	watch := &entity.VideoWatch{
		UserID:          input.UserID,
		VideoID:         video.ID,
		LastPosition:    input.LastPosition,
		WatchedDuration: input.WatchedDuration,
		Completed:       input.Completed,
	}
	if err := s.videoRepo.UpsertWatch(ctx, watch); err != nil {
		return err
	}

	s.publisher.Publish(ctx, events.Event{
		Topic: events.TopicVideoProgressUpdated,
		Payload: events.VideoProgressEvent{
			UserID:          input.UserID,
			VideoID:         video.ID,
			LastPosition:    input.LastPosition,
			WatchedDuration: input.WatchedDuration,
			Completed:       input.Completed,
		},
	})
	return nil
}

// CreateVideoInput represents a video added directly by metadata, for
// assets that already exist at the host.
type CreateVideoInput struct {
	Title        string
	Description  *string
	ThumbnailURL *string
	Instructor   *string
	PlaybackID   string
	Duration     *float64
	IsPublished  bool
}

// CreateVideo records a video whose asset already lives at the host,
// bypassing the upload-session flow. Admin only; routes enforce that.
func (s *VideoService) CreateVideo(ctx context.Context, input *CreateVideoInput) (*entity.Video, error) {
	playback := input.PlaybackID
	video := &entity.Video{
		Title:        sanitize.Line(input.Title, 255),
		ThumbnailURL: input.ThumbnailURL,
		PlaybackID:   &playback,
		Duration:     input.Duration,
		IsPublished:  input.IsPublished,
	}
	if input.Description != nil {
		desc := sanitize.Text(*input.Description, 5000)
		video.Description = &desc
	}
	if input.Instructor != nil {
		instructor := sanitize.Line(*input.Instructor, 255)
		video.Instructor = &instructor
	}

	if err := s.videoRepo.Create(ctx, video); err != nil {
		return nil, err
	}
	return video, nil
}

// CreateUploadSession opens a direct-upload session at the video host and
// records a draft video row. Admin only; routes enforce that.
func (s *VideoService) CreateUploadSession(ctx context.Context, title string, corsOrigin string) (*entity.Video, *videohost.Upload, error) {
	upload, err := s.host.CreateUpload(ctx, corsOrigin)
	if err != nil {
		return nil, nil, apperror.NewUnavailableError("Video host unavailable. Please try again.")
	}

	video := &entity.Video{
		Title:    sanitize.Line(title, 255),
		UploadID: &upload.ID,
	}
	if err := s.videoRepo.Create(ctx, video); err != nil {
		return nil, nil, err
	}
	return video, upload, nil
}

// RefreshUploadStatus polls the host for a draft video's upload and, once
// the asset is ready, stores the playback details.
func (s *VideoService) RefreshUploadStatus(ctx context.Context, videoID uuid.UUID) (*entity.Video, error) {
	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if video == nil {
		return nil, apperror.NewNotFoundError("Video")
	}
	if video.UploadID == nil {
		return video, nil
	}

	upload, err := s.host.GetUpload(ctx, *video.UploadID)
	if err != nil {
		return nil, apperror.NewUnavailableError("Video host unavailable. Please try again.")
	}
	if upload.AssetID == "" {
		return video, nil
	}

	asset, err := s.host.GetAsset(ctx, upload.AssetID)
	if err != nil {
		return nil, apperror.NewUnavailableError("Video host unavailable. Please try again.")
	}

	video.AssetID = &asset.ID
	if playback := asset.PlaybackID(); playback != "" {
		video.PlaybackID = &playback
	}
	if asset.Duration > 0 {
		video.Duration = &asset.Duration
	}
	if err := s.videoRepo.Update(ctx, video); err != nil {
		return nil, err
	}
	return video, nil
}

// UpdateVideoInput represents metadata updates on a video
type UpdateVideoInput struct {
	ID           uuid.UUID
	Title        *string
	Description  *string
	ThumbnailURL *string
	Instructor   *string
	IsPublished  *bool
}

// UpdateVideo updates video metadata and publish state. Admin only.
func (s *VideoService) UpdateVideo(ctx context.Context, input *UpdateVideoInput) (*entity.Video, error) {
	video, err := s.videoRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if video == nil {
		return nil, apperror.NewNotFoundError("Video")
	}

	if input.Title != nil {
		video.Title = sanitize.Line(*input.Title, 255)
	}
	if input.Description != nil {
		desc := sanitize.Text(*input.Description, 5000)
		video.Description = &desc
	}
	if input.ThumbnailURL != nil {
		video.ThumbnailURL = input.ThumbnailURL
	}
	if input.Instructor != nil {
		instructor := sanitize.Line(*input.Instructor, 255)
		video.Instructor = &instructor
	}
	if input.IsPublished != nil {
		if *input.IsPublished && video.PlaybackID == nil {
			return nil, apperror.NewBadRequestError("Video cannot be published before the asset is ready")
		}
		video.IsPublished = *input.IsPublished
	}

	if err := s.videoRepo.Update(ctx, video); err != nil {
		return nil, err
	}
	return video, nil
}

// DeleteVideo removes a video. Admin only.
func (s *VideoService) DeleteVideo(ctx context.Context, id uuid.UUID) error {
	video, err := s.videoRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if video == nil {
		return apperror.NewNotFoundError("Video")
	}
	return s.videoRepo.Delete(ctx, id)
}

// ListAll returns every video including drafts. Admin only.
func (s *VideoService) ListAll(ctx context.Context) ([]entity.Video, error) {
	return s.videoRepo.ListAll(ctx)
}

// WatchAnalytics returns engagement stats per video. Admin only.
func (s *VideoService) WatchAnalytics(ctx context.Context) ([]repository.VideoWatchStats, error) {
	return s.videoRepo.WatchStatsAll(ctx)
}

// VideoDetailAnalytics pairs one video with its engagement stats.
type VideoDetailAnalytics struct {
	Video *entity.Video               `json:"video"`
	Stats *repository.VideoWatchStats `json:"stats"`
}

// VideoAnalytics returns engagement stats for one video. Admin only.
func (s *VideoService) VideoAnalytics(ctx context.Context, id uuid.UUID) (*VideoDetailAnalytics, error) {
	video, err := s.videoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if video == nil {
		return nil, apperror.NewNotFoundError("Video")
	}

	stats, err := s.videoRepo.WatchStats(ctx, id)
	if err != nil {
		return nil, err
	}
	return &VideoDetailAnalytics{Video: video, Stats: stats}, nil
}
