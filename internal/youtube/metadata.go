package youtube

import (
	"context"
	"fmt"
	"strconv"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	youtubeapi "google.golang.org/api/youtube/v3"
)

// Details captures the subset of video metadata exposed by /video-details.
type Details struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Thumbnail    string `json:"thumbnail"`
	Duration     string `json:"duration"`
	Language     string `json:"language"`
	HasCaptions  bool   `json:"has_captions"`
	ViewCount    string `json:"view_count"`
	LikeCount    string `json:"like_count"`
	ChannelTitle string `json:"channel_title"`
	PublishedAt  string `json:"published_at"`
}

// DetailsProvider resolves metadata for a video identifier.
type DetailsProvider interface {
	Details(ctx context.Context, videoID string) (Details, error)
}

// Client resolves video metadata through the YouTube Data API.
type Client struct {
	service *youtubeapi.Service
}

// NewClient constructs a metadata client using the provided API key.
func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	service, err := youtubeapi.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("build youtube service: %w", err)
	}
	return &Client{service: service}, nil
}

// Details implements DetailsProvider.
func (c *Client) Details(ctx context.Context, videoID string) (Details, error) {
	if c == nil || c.service == nil {
		return Details{}, ErrClientUnavailable
	}

	resp, err := c.service.Videos.
		List([]string{"snippet", "contentDetails", "statistics"}).
		Id(videoID).
		Context(ctx).
		Do()
	if err != nil {
		if apiErr, ok := err.(*googleapi.Error); ok && apiErr.Code == 404 {
			return Details{}, ErrVideoNotFound
		}
		return Details{}, fmt.Errorf("fetch video details: %w", err)
	}

	if len(resp.Items) == 0 {
		return Details{}, ErrVideoNotFound
	}

	video := resp.Items[0]

	details := Details{
		Title:        video.Snippet.Title,
		Description:  video.Snippet.Description,
		Language:     video.Snippet.DefaultAudioLanguage,
		ChannelTitle: video.Snippet.ChannelTitle,
		PublishedAt:  video.Snippet.PublishedAt,
		Duration:     video.ContentDetails.Duration,
		HasCaptions:  video.ContentDetails.Caption == "true",
		ViewCount:    strconv.FormatUint(video.Statistics.ViewCount, 10),
		LikeCount:    strconv.FormatUint(video.Statistics.LikeCount, 10),
	}
	if details.Language == "" {
		details.Language = "unknown"
	}
	if thumbs := video.Snippet.Thumbnails; thumbs != nil {
		switch {
		case thumbs.High != nil:
			details.Thumbnail = thumbs.High.Url
		case thumbs.Default != nil:
			details.Thumbnail = thumbs.Default.Url
		}
	}

	return details, nil
}
