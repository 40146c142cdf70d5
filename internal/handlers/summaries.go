package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/vidbrief/backend/internal/logging"
	"github.com/vidbrief/backend/internal/summarize"
	"github.com/vidbrief/backend/internal/transcript"
	"github.com/vidbrief/backend/internal/youtube"
)

// SummaryHandler exposes the two-pass summarization endpoints.
type SummaryHandler struct {
	Summarizer Summarizer
	Tasks      TaskReader
	Limiter    RateLimiter
}

type summarizeResponse struct {
	BulletPoints     string `json:"bullet_points"`
	TaskID           string `json:"task_id"`
	Message          string `json:"message"`
	TranscriptMethod string `json:"transcript_method,omitempty"`
}

type statusResponse struct {
	Status summarize.Status `json:"status"`
	Result *string          `json:"result"`
}

// Summarize handles POST /summarize.
func (h SummaryHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	if !allowRequest(h.Limiter, r, "summarize") {
		respondError(ctx, w, http.StatusTooManyRequests, "too many summarize requests, try again later")
		return
	}

	if h.Summarizer == nil {
		logger.Error("summarizer unavailable")
		respondError(ctx, w, http.StatusInternalServerError, "summarization service not configured")
		return
	}

	var req videoURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid summarize payload", "error", err)
		respondError(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	summary, err := h.Summarizer.Summarize(ctx, req.URL)
	if err != nil {
		switch {
		case errors.Is(err, youtube.ErrInvalidURL):
			respondError(ctx, w, http.StatusBadRequest, "invalid YouTube URL, check the video link")
		case errors.Is(err, transcript.ErrTranscriptUnavailable):
			respondError(ctx, w, http.StatusBadRequest, err.Error())
		case errors.Is(err, summarize.ErrRateLimited):
			respondError(ctx, w, http.StatusTooManyRequests, "generation quota exhausted, try again in a few minutes")
		default:
			logger.Error("summarize failed", "error", err)
			respondError(ctx, w, http.StatusInternalServerError, "unexpected error: "+err.Error())
		}
		return
	}

	respondJSON(ctx, w, http.StatusOK, summarizeResponse{
		BulletPoints:     summary.BulletPoints,
		TaskID:           summary.TaskID,
		Message:          "Outline ready. Detailed summary is being prepared.",
		TranscriptMethod: string(summary.Method),
	})
}

// Status handles GET /summary-status/{task_id}.
func (h SummaryHandler) Status(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	task, err := h.Tasks.Get(r.PathValue("task_id"))
	if err != nil {
		respondError(ctx, w, http.StatusNotFound, "task not found")
		return
	}

	resp := statusResponse{Status: task.Status}
	if task.Status != summarize.StatusProcessing {
		resp.Result = &task.Result
	}
	respondJSON(ctx, w, http.StatusOK, resp)
}

// Download handles GET /download-summary/{task_id}.
func (h SummaryHandler) Download(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	taskID := r.PathValue("task_id")

	task, err := h.Tasks.Get(taskID)
	if err != nil {
		respondError(ctx, w, http.StatusNotFound, "summary not found")
		return
	}
	if task.Status != summarize.StatusCompleted {
		respondError(ctx, w, http.StatusBadRequest, "summary not ready yet")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=video_summary_%s.txt", taskID))
	if _, err := w.Write([]byte(task.Result)); err != nil {
		logging.FromContext(ctx).Error("write summary download", "taskId", taskID, "error", err)
	}
}
