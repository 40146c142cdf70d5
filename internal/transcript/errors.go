package transcript

import "errors"

var (
	// ErrNoTranscript indicates the captions source lists no tracks for the video.
	ErrNoTranscript = errors.New("no transcript available")
	// ErrExtractionExhausted indicates the extraction tool failed for every language trial.
	ErrExtractionExhausted = errors.New("extraction tool yielded no transcript")
	// ErrTranscriptUnavailable indicates every acquisition strategy failed.
	ErrTranscriptUnavailable = errors.New("video transcript unavailable")
)
