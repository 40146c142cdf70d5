package handlers

import (
	"net/http"

	"github.com/vidbrief/backend/internal/transcript"
)

// RegisterRoutes wires HTTP handlers into the provided ServeMux.
func RegisterRoutes(mux *http.ServeMux, deps Dependencies) {
	health := HealthHandler{}
	videos := VideoHandler{Metadata: deps.VideoMetadata}
	summaries := SummaryHandler{
		Summarizer: deps.Summarizer,
		Tasks:      deps.Tasks,
		Limiter:    deps.SummarizeLimiter,
	}
	debug := DebugHandler{
		Strategies: deps.DebugStrategies,
		Snapshot:   deps.DebugSnapshot,
	}

	mux.HandleFunc("GET /health", health.Handle)
	mux.HandleFunc("POST /video-details", videos.Details)
	mux.HandleFunc("POST /summarize", summaries.Summarize)
	mux.HandleFunc("GET /summary-status/{task_id}", summaries.Status)
	mux.HandleFunc("GET /download-summary/{task_id}", summaries.Download)
	mux.HandleFunc("GET /debug-transcript/{video_id}", debug.Transcript)
}

// Dependencies aggregates collaborators required by HTTP handlers.
type Dependencies struct {
	VideoMetadata    VideoMetadataProvider
	Summarizer       Summarizer
	Tasks            TaskReader
	SummarizeLimiter RateLimiter
	DebugStrategies  []transcript.Strategy
	DebugSnapshot    map[string]any
}
