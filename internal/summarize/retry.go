package summarize

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// ErrRateLimited indicates the generation service kept rejecting calls for
// quota reasons after the full retry budget.
var ErrRateLimited = errors.New("generation service rate limited")

// rateLimitMarkers are the case-insensitive failure signatures that qualify an
// error for retry. Anything else propagates immediately.
var rateLimitMarkers = []string{"429", "quota", "rate"}

// RetryingGenerator wraps a Generator with bounded retry-with-backoff for
// rate-limit failures. The wait is base delay multiplied by the attempt number.
type RetryingGenerator struct {
	base        Generator
	maxAttempts int
	baseDelay   time.Duration
	logger      *slog.Logger

	// sleep is swappable in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewRetryingGenerator wraps base with retry behavior.
func NewRetryingGenerator(base Generator, maxAttempts int, baseDelay time.Duration, logger *slog.Logger) *RetryingGenerator {
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	if baseDelay <= 0 {
		baseDelay = 45 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RetryingGenerator{
		base:        base,
		maxAttempts: maxAttempts,
		baseDelay:   baseDelay,
		logger:      logger,
		sleep:       sleepCtx,
	}
}

// Generate implements Generator. Only rate-limit signatures are retried; the
// backoff wait blocks the calling goroutine, not the process.
func (g *RetryingGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		result, err := g.base.Generate(ctx, prompt)
		if err == nil {
			return result, nil
		}
		if !isRateLimit(err) {
			return "", err
		}
		if attempt == g.maxAttempts {
			break
		}

		wait := g.baseDelay * time.Duration(attempt)
		g.logger.Warn("generation rate limited, backing off",
			"attempt", attempt,
			"maxAttempts", g.maxAttempts,
			"wait", wait,
		)
		if err := g.sleep(ctx, wait); err != nil {
			return "", err
		}
	}

	return "", fmt.Errorf("%w after %d attempts", ErrRateLimited, g.maxAttempts)
}

func isRateLimit(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, marker := range rateLimitMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
