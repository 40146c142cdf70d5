package handlers

import (
	"context"

	"github.com/vidbrief/backend/internal/summarize"
	"github.com/vidbrief/backend/internal/youtube"
)

// VideoMetadataProvider resolves video details for extracted identifiers.
type VideoMetadataProvider interface {
	Details(ctx context.Context, videoID string) (youtube.Details, error)
}

// Summarizer runs the synchronous half of a summarize request and schedules
// the detailed pass.
type Summarizer interface {
	Summarize(ctx context.Context, url string) (summarize.Summary, error)
}

// TaskReader exposes summary task state to the polling and download endpoints.
type TaskReader interface {
	Get(id string) (summarize.Task, error)
}
