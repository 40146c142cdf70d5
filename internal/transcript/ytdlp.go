package transcript

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os/exec"
	"sort"
	"strings"
	"time"
)

// CommandRunner executes external commands and returns stdout bytes.
type CommandRunner func(ctx context.Context, binary string, args ...string) ([]byte, error)

// YTDLPStrategy acquires transcripts by shelling out to yt-dlp and downloading
// the subtitle track it reports. It is the fallback when the first-party
// captions API fails.
type YTDLPStrategy struct {
	Binary    string
	Run       CommandRunner
	Timeout   time.Duration
	Languages []string

	// Credential bundle applied to the tool invocation when present.
	CookieFile string
	ProxyURL   string

	// HTTP fetches the subtitle URL yt-dlp reports.
	HTTP *http.Client
}

// NewYTDLPStrategy constructs a strategy that shells out to yt-dlp.
func NewYTDLPStrategy(binary string, timeout time.Duration, languages []string) *YTDLPStrategy {
	if strings.TrimSpace(binary) == "" {
		binary = "yt-dlp"
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &YTDLPStrategy{
		Binary:    binary,
		Run:       defaultCommandRunner,
		Timeout:   timeout,
		Languages: languages,
		HTTP:      http.DefaultClient,
	}
}

// Name implements Strategy.
func (s *YTDLPStrategy) Name() string {
	return string(MethodYTDLP)
}

// Fetch implements Strategy. It tries each preferred language and finally an
// unconstrained run, returning the first non-empty normalized transcript.
func (s *YTDLPStrategy) Fetch(ctx context.Context, videoID string) (Result, error) {
	trials := append(append([]string{}, s.Languages...), "")

	var failures []string
	for _, lang := range trials {
		label := lang
		if label == "" {
			label = "any"
		}

		text, foundLang, err := s.attempt(ctx, videoID, lang)
		if err != nil {
			failures = append(failures, truncate(fmt.Sprintf("%s: %v", label, err), maxFailureLen))
			continue
		}
		return Result{Text: text, Method: MethodYTDLP, Language: foundLang}, nil
	}

	return Result{}, fmt.Errorf("%w: %s", ErrExtractionExhausted, strings.Join(failures, "; "))
}

type subtitleFormat struct {
	Ext string `json:"ext"`
	URL string `json:"url"`
}

func (s *YTDLPStrategy) attempt(ctx context.Context, videoID, lang string) (string, string, error) {
	if s.Run == nil {
		s.Run = defaultCommandRunner
	}

	execCtx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	args := []string{
		"--dump-single-json",
		"--no-warnings",
		"--no-playlist",
		"--skip-download",
		"--write-subs",
		"--write-auto-subs",
		"--sub-format", "json3",
	}
	if lang != "" {
		args = append(args, "--sub-langs", lang)
	}
	if s.CookieFile != "" {
		args = append(args, "--cookies", s.CookieFile)
	}
	if s.ProxyURL != "" {
		args = append(args, "--proxy", s.ProxyURL)
	}
	args = append(args, "https://www.youtube.com/watch?v="+videoID)

	out, err := s.Run(execCtx, s.Binary, args...)
	if err != nil {
		return "", "", fmt.Errorf("yt-dlp run: %w", err)
	}

	var info struct {
		Subtitles         map[string][]subtitleFormat `json:"subtitles"`
		AutomaticCaptions map[string][]subtitleFormat `json:"automatic_captions"`
	}
	if err := json.Unmarshal(out, &info); err != nil {
		return "", "", fmt.Errorf("parse yt-dlp response: %w", err)
	}

	formats, foundLang := findSubtitles(info.Subtitles, info.AutomaticCaptions, lang)
	if len(formats) == 0 {
		return "", "", errors.New("no subtitles in requested language")
	}

	subURL := subtitleURL(formats)
	if subURL == "" {
		return "", "", errors.New("subtitle entry carries no url")
	}

	text, err := s.fetchSubtitle(ctx, subURL)
	if err != nil {
		return "", "", err
	}
	if text == "" {
		return "", "", errors.New("subtitle normalized to empty transcript")
	}

	return text, foundLang, nil
}

// findSubtitles locates subtitle formats for the requested language, preferring
// manual subtitles over automatic captions. With no language constraint it picks
// the lexically first available language for determinism.
func findSubtitles(subs, auto map[string][]subtitleFormat, lang string) ([]subtitleFormat, string) {
	if lang != "" {
		if formats := subs[lang]; len(formats) > 0 {
			return formats, lang
		}
		return auto[lang], lang
	}

	available := subs
	if len(available) == 0 {
		available = auto
	}
	if len(available) == 0 {
		return nil, ""
	}

	langs := make([]string, 0, len(available))
	for l := range available {
		langs = append(langs, l)
	}
	sort.Strings(langs)
	return available[langs[0]], langs[0]
}

// subtitleURL prefers the structured json3 format, else the first entry.
func subtitleURL(formats []subtitleFormat) string {
	for _, format := range formats {
		if format.Ext == "json3" {
			return format.URL
		}
	}
	return formats[0].URL
}

func (s *YTDLPStrategy) fetchSubtitle(ctx context.Context, subURL string) (string, error) {
	client := s.HTTP
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, subURL, nil)
	if err != nil {
		return "", fmt.Errorf("build subtitle request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch subtitle: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch subtitle: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read subtitle: %w", err)
	}

	events, err := ParseJSON3(data)
	if err != nil {
		return "", err
	}

	return NormalizeEvents(events), nil
}

func defaultCommandRunner(ctx context.Context, binary string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, binary, args...)
	return cmd.Output()
}
