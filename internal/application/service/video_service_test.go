package service

import (
	"context"
	"sync"
	"testing"

	"github.com/dentwise/dentwise-api/internal/domain/entity"
	"github.com/dentwise/dentwise-api/internal/domain/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVideoRepo struct {
	repository.VideoRepository

	mu     sync.Mutex
	videos map[uuid.UUID]*entity.Video
	stats  map[uuid.UUID]*repository.VideoWatchStats
}

func newFakeVideoRepo() *fakeVideoRepo {
	return &fakeVideoRepo{
		videos: make(map[uuid.UUID]*entity.Video),
		stats:  make(map[uuid.UUID]*repository.VideoWatchStats),
	}
}

func (r *fakeVideoRepo) Create(ctx context.Context, video *entity.Video) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if video.ID == uuid.Nil {
		video.ID = uuid.New()
	}
	clone := *video
	r.videos[video.ID] = &clone
	return nil
}

func (r *fakeVideoRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Video, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	video, ok := r.videos[id]
	if !ok {
		return nil, nil
	}
	clone := *video
	return &clone, nil
}

func (r *fakeVideoRepo) WatchStats(ctx context.Context, videoID uuid.UUID) (*repository.VideoWatchStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if stats, ok := r.stats[videoID]; ok {
		clone := *stats
		return &clone, nil
	}
	return &repository.VideoWatchStats{VideoID: videoID}, nil
}

func TestCreateVideoDirect(t *testing.T) {
	repo := newFakeVideoRepo()
	svc := NewVideoService(repo, nil, &recordingPublisher{})

	desc := "Brushing <script>alert(1)</script> basics"
	video, err := svc.CreateVideo(context.Background(), &CreateVideoInput{
		Title:       "  Oral Hygiene 101  ",
		Description: &desc,
		PlaybackID:  "pb_abc123",
		IsPublished: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "Oral Hygiene 101", video.Title)
	require.NotNil(t, video.PlaybackID)
	assert.Equal(t, "pb_abc123", *video.PlaybackID)
	require.NotNil(t, video.Description)
	assert.NotContains(t, *video.Description, "<script>")
	assert.True(t, video.IsPublished, "a direct add with a playback ID may publish immediately")
	assert.Nil(t, video.UploadID, "direct adds never reference an upload session")

	stored, err := repo.GetByID(context.Background(), video.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
}

func TestVideoAnalyticsDetail(t *testing.T) {
	repo := newFakeVideoRepo()
	svc := NewVideoService(repo, nil, &recordingPublisher{})
	ctx := context.Background()

	video, err := svc.CreateVideo(ctx, &CreateVideoInput{Title: "Flossing", PlaybackID: "pb_1"})
	require.NoError(t, err)
	repo.stats[video.ID] = &repository.VideoWatchStats{
		VideoID:      video.ID,
		Views:        12,
		Completions:  5,
		TotalWatched: 3600,
	}

	detail, err := svc.VideoAnalytics(ctx, video.ID)
	require.NoError(t, err)
	assert.Equal(t, video.ID, detail.Video.ID)
	assert.Equal(t, int64(12), detail.Stats.Views)
	assert.Equal(t, int64(5), detail.Stats.Completions)
}

func TestVideoAnalyticsUnknownVideo(t *testing.T) {
	svc := NewVideoService(newFakeVideoRepo(), nil, &recordingPublisher{})

	_, err := svc.VideoAnalytics(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Video not found")
}
