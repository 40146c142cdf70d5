package youtube

import "regexp"

// videoIDPattern matches the known YouTube URL shapes (watch, embed, short-link)
// and captures the 11-character video identifier.
var videoIDPattern = regexp.MustCompile(`(?:youtube\.com/(?:watch\?v=|embed/)|youtu\.be/)([^"&?/\s]{11})`)

// ExtractVideoID pulls the 11-character video identifier out of a YouTube URL.
// The first matching shape wins; ErrInvalidURL is returned when no shape matches.
func ExtractVideoID(url string) (string, error) {
	match := videoIDPattern.FindStringSubmatch(url)
	if match == nil {
		return "", ErrInvalidURL
	}
	return match[1], nil
}
