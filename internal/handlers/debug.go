package handlers

import (
	"net/http"
	"strings"

	"github.com/vidbrief/backend/internal/logging"
	"github.com/vidbrief/backend/internal/transcript"
)

// DebugHandler runs each acquisition strategy independently and reports the
// outcome, plus a snapshot of the proxy/cookie configuration. Not safe to
// expose in production.
type DebugHandler struct {
	Strategies []transcript.Strategy
	Snapshot   map[string]any
}

// Transcript handles GET /debug-transcript/{video_id}.
func (h DebugHandler) Transcript(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	videoID := r.PathValue("video_id")
	logger := logging.FromContext(ctx)

	results := map[string]any{
		"video_id":    videoID,
		"environment": h.Snapshot,
	}

	for _, strategy := range h.Strategies {
		key := "method_" + strategy.Name()

		result, err := strategy.Fetch(ctx, videoID)
		if err != nil {
			logger.Warn("debug strategy failed", "strategy", strategy.Name(), "error", err)
			results[key] = map[string]any{
				"status": "error",
				"error":  truncate(err.Error(), 500),
			}
			continue
		}

		results[key] = map[string]any{
			"status":   "success",
			"language": result.Language,
			"lines":    len(strings.Split(result.Text, "\n")),
			"preview":  truncate(result.Text, 200),
		}
	}

	respondJSON(ctx, w, http.StatusOK, results)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
