package transcript

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Method identifies which acquisition strategy produced a transcript.
type Method string

const (
	// MethodCaptionsAPI is the first-party captions API strategy.
	MethodCaptionsAPI Method = "captions_api"
	// MethodYTDLP is the yt-dlp extraction-tool fallback strategy.
	MethodYTDLP Method = "yt_dlp"
)

// Result is a normalized transcript plus how it was obtained.
type Result struct {
	Text     string
	Method   Method
	Language string
}

// Strategy is one way of acquiring a transcript for a video identifier.
type Strategy interface {
	Name() string
	Fetch(ctx context.Context, videoID string) (Result, error)
}

// maxFailureLen bounds each recorded strategy failure so the aggregated error
// surfaced to callers stays a readable size.
const maxFailureLen = 300

// Pipeline tries each strategy in order and returns the first transcript.
type Pipeline struct {
	strategies []Strategy
	logger     *slog.Logger
}

// NewPipeline constructs a pipeline over the provided strategies.
func NewPipeline(logger *slog.Logger, strategies ...Strategy) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{strategies: strategies, logger: logger}
}

// Fetch runs the strategies in order, recording each failure, and returns the
// first successful result. When every strategy fails, the returned error wraps
// ErrTranscriptUnavailable and carries all recorded failure messages.
func (p *Pipeline) Fetch(ctx context.Context, videoID string) (Result, error) {
	var failures []string
	for _, strategy := range p.strategies {
		result, err := strategy.Fetch(ctx, videoID)
		if err == nil {
			p.logger.Info("transcript acquired",
				"videoId", videoID,
				"method", result.Method,
				"language", result.Language,
			)
			return result, nil
		}

		p.logger.Warn("transcript strategy failed", "videoId", videoID, "strategy", strategy.Name(), "error", err)
		failures = append(failures, truncate(fmt.Sprintf("%s: %v", strategy.Name(), err), maxFailureLen))
	}

	return Result{}, fmt.Errorf("%w: %s", ErrTranscriptUnavailable, strings.Join(failures, " | "))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
