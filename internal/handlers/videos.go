package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vidbrief/backend/internal/logging"
	"github.com/vidbrief/backend/internal/youtube"
)

// VideoHandler exposes video metadata lookup.
type VideoHandler struct {
	Metadata VideoMetadataProvider
}

type videoURLRequest struct {
	URL string `json:"url"`
}

// Details handles POST /video-details.
func (h VideoHandler) Details(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	if h.Metadata == nil {
		logger.Error("video metadata provider unavailable")
		respondError(ctx, w, http.StatusInternalServerError, "video metadata service not configured")
		return
	}

	var req videoURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid video-details payload", "error", err)
		respondError(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	videoID, err := youtube.ExtractVideoID(req.URL)
	if err != nil {
		respondError(ctx, w, http.StatusBadRequest, "invalid YouTube URL, check the video link")
		return
	}

	details, err := h.Metadata.Details(ctx, videoID)
	if err != nil {
		if errors.Is(err, youtube.ErrVideoNotFound) {
			respondError(ctx, w, http.StatusNotFound, "video not found")
			return
		}
		logger.Error("video details lookup failed", "videoId", videoID, "error", err)
		respondError(ctx, w, http.StatusInternalServerError, "could not fetch video details: "+err.Error())
		return
	}

	respondJSON(ctx, w, http.StatusOK, details)
}
