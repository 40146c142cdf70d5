package logging

import (
	"context"
	"log/slog"
	"time"
)

// Span marks a logical unit of work within a request for duration logging.
type Span struct {
	logger *slog.Logger
	start  time.Time
}

// StartSpan derives a context whose logger is enriched with the span name and
// returns a handle that logs the span duration on End.
func StartSpan(ctx context.Context, name string) (context.Context, *Span) {
	if ctx == nil {
		ctx = context.Background()
	}

	logger := FromContext(ctx).With(slog.String("span_name", name))
	ctx = WithLogger(ctx, logger)

	return ctx, &Span{logger: logger, start: time.Now()}
}

// End finalizes the span and emits a completion log entry.
func (s *Span) End() {
	if s == nil {
		return
	}
	s.logger.Info("span completed", slog.Duration("duration", time.Since(s.start)))
}
