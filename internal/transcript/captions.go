package transcript

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// DefaultCaptionsBaseURL is the video platform origin serving the player API.
const DefaultCaptionsBaseURL = "https://www.youtube.com"

// playerClientVersion identifies the innertube client used for track listing.
const playerClientVersion = "19.09.37"

// CaptionsStrategy acquires transcripts through the first-party captions API:
// it lists the available caption tracks for a video, selects one by language
// preference, and fetches its timed text.
//
// When more than one HTTP client is supplied the strategy runs in proxy-rotation
// mode: the full attempt is made through each client in turn and the first
// success wins. A single client is the cookie/single-proxy deployment mode.
type CaptionsStrategy struct {
	Languages []string
	BaseURL   string

	clients []*http.Client
}

// NewCaptionsStrategy builds the strategy over the supplied preference-ordered
// languages and HTTP clients. At least one client is required; a nil slice
// degrades to http.DefaultClient.
func NewCaptionsStrategy(languages []string, clients ...*http.Client) *CaptionsStrategy {
	if len(clients) == 0 {
		clients = []*http.Client{http.DefaultClient}
	}
	return &CaptionsStrategy{
		Languages: languages,
		BaseURL:   DefaultCaptionsBaseURL,
		clients:   clients,
	}
}

// Name implements Strategy.
func (s *CaptionsStrategy) Name() string {
	return "captions_api"
}

// Fetch implements Strategy.
func (s *CaptionsStrategy) Fetch(ctx context.Context, videoID string) (Result, error) {
	var errs []string
	for i, client := range s.clients {
		result, err := s.fetchOnce(ctx, client, videoID)
		if err == nil {
			return result, nil
		}
		if len(s.clients) == 1 {
			return Result{}, err
		}
		errs = append(errs, fmt.Sprintf("attempt %d: %v", i+1, err))
	}
	return Result{}, fmt.Errorf("all proxy attempts failed: %s", strings.Join(errs, "; "))
}

func (s *CaptionsStrategy) fetchOnce(ctx context.Context, client *http.Client, videoID string) (Result, error) {
	tracks, err := s.listTracks(ctx, client, videoID)
	if err != nil {
		return Result{}, err
	}
	if len(tracks) == 0 {
		return Result{}, ErrNoTranscript
	}

	track := selectTrack(tracks, s.Languages)

	segments, err := s.fetchTrack(ctx, client, track.BaseURL)
	if err != nil {
		return Result{}, err
	}

	text := NormalizeSegments(segments)
	if text == "" {
		return Result{}, errors.New("caption track normalized to empty transcript")
	}

	return Result{Text: text, Method: MethodCaptionsAPI, Language: track.LanguageCode}, nil
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
}

// listTracks asks the player endpoint which caption tracks exist for the video.
func (s *CaptionsStrategy) listTracks(ctx context.Context, client *http.Client, videoID string) ([]captionTrack, error) {
	body, err := json.Marshal(map[string]any{
		"videoId": videoID,
		"context": map[string]any{
			"client": map[string]any{
				"clientName":    "ANDROID",
				"clientVersion": playerClientVersion,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("encode player request: %w", err)
	}

	base := s.BaseURL
	if base == "" {
		base = DefaultCaptionsBaseURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+"/youtubei/v1/player?prettyPrint=false", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build player request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("player request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("player request: unexpected status %d", resp.StatusCode)
	}

	var payload struct {
		Captions struct {
			Renderer struct {
				Tracks []captionTrack `json:"captionTracks"`
			} `json:"playerCaptionsTracklistRenderer"`
		} `json:"captions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("parse player response: %w", err)
	}

	return payload.Captions.Renderer.Tracks, nil
}

// selectTrack picks the first track matching the preference list, falling back
// to the first track the source returned.
func selectTrack(tracks []captionTrack, languages []string) captionTrack {
	for _, lang := range languages {
		for _, track := range tracks {
			if track.LanguageCode == lang {
				return track
			}
		}
	}
	return tracks[0]
}

// fetchTrack retrieves a caption track as json3 and converts it to seconds-based
// segments, the captions API's native shape.
func (s *CaptionsStrategy) fetchTrack(ctx context.Context, client *http.Client, trackURL string) ([]Segment, error) {
	u, err := url.Parse(trackURL)
	if err != nil {
		return nil, fmt.Errorf("parse track url: %w", err)
	}
	q := u.Query()
	q.Set("fmt", "json3")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build track request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch caption track: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch caption track: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read caption track: %w", err)
	}

	events, err := ParseJSON3(data)
	if err != nil {
		return nil, err
	}

	segments := make([]Segment, 0, len(events))
	for _, event := range events {
		var b strings.Builder
		for _, seg := range event.Segments {
			b.WriteString(seg.UTF8)
		}
		segments = append(segments, Segment{
			Start:    float64(event.StartMs) / 1000,
			Duration: float64(event.DurationMs) / 1000,
			Text:     b.String(),
		})
	}
	return segments, nil
}
