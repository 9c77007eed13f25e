// Package videohost is a thin client for the hosted video platform used
// for course content. It covers the three calls the API needs: create a
// direct-upload URL, poll upload status, and fetch asset playback details.
package videohost

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultBaseURL = "https://video.example.com/video/v1"

// Config holds API credentials for the video platform.
type Config struct {
	TokenID     string
	TokenSecret string
	BaseURL     string
}

// Client talks to the video platform's REST API.
type Client struct {
	config     Config
	httpClient *http.Client
}

// NewClient creates a video platform client.
func NewClient(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}
	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Upload is a direct-upload session on the platform.
type Upload struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	Status    string `json:"status"`
	AssetID   string `json:"asset_id"`
	Timeout   int    `json:"timeout"`
	CORSError string `json:"cors_origin,omitempty"`
}

// Asset is a processed video ready for playback.
type Asset struct {
	ID          string  `json:"id"`
	Status      string  `json:"status"`
	Duration    float64 `json:"duration"`
	PlaybackIDs []struct {
		ID     string `json:"id"`
		Policy string `json:"policy"`
	} `json:"playback_ids"`
}

// PlaybackID returns the asset's first public playback ID, or "".
func (a *Asset) PlaybackID() string {
	if len(a.PlaybackIDs) == 0 {
		return ""
	}
	return a.PlaybackIDs[0].ID
}

// CreateUpload opens a direct-upload session for the given CORS origin.
func (c *Client) CreateUpload(ctx context.Context, corsOrigin string) (*Upload, error) {
	body := map[string]interface{}{
		"cors_origin": corsOrigin,
		"new_asset_settings": map[string]interface{}{
			"playback_policy": []string{"public"},
		},
	}

	var result struct {
		Data Upload `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/uploads", body, &result); err != nil {
		return nil, fmt.Errorf("failed to create upload: %w", err)
	}
	return &result.Data, nil
}

// GetUpload fetches the state of a direct-upload session.
func (c *Client) GetUpload(ctx context.Context, uploadID string) (*Upload, error) {
	var result struct {
		Data Upload `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/uploads/"+uploadID, nil, &result); err != nil {
		return nil, fmt.Errorf("failed to get upload %s: %w", uploadID, err)
	}
	return &result.Data, nil
}

// GetAsset fetches a processed asset's playback details.
func (c *Client) GetAsset(ctx context.Context, assetID string) (*Asset, error) {
	var result struct {
		Data Asset `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/assets/"+assetID, nil, &result); err != nil {
		return nil, fmt.Errorf("failed to get asset %s: %w", assetID, err)
	}
	return &result.Data, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, dest interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, reader)
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.config.TokenID, c.config.TokenSecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("video platform returned %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(dest)
}
