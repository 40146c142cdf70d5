package youtube

import "errors"

var (
	// ErrInvalidURL indicates the supplied string is not a recognizable YouTube URL.
	ErrInvalidURL = errors.New("invalid YouTube URL")
	// ErrVideoNotFound indicates the metadata service knows no video with that id.
	ErrVideoNotFound = errors.New("video not found")
	// ErrClientUnavailable indicates the metadata client is not configured.
	ErrClientUnavailable = errors.New("video metadata client unavailable")
)
