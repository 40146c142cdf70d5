package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures the runtime configuration for the vidbrief backend service.
type Config struct {
	AppPort  int
	LogLevel string

	// Text generation.
	OpenAIKey       string
	OpenAIModel     string
	RetryMaxAttempt int
	RetryBaseDelay  time.Duration

	// Video metadata.
	YouTubeAPIKey    string
	MetadataCacheTTL time.Duration

	// Transcript acquisition.
	YTDLPPath           string
	YTDLPTimeout        time.Duration
	TranscriptLanguages []string

	// Credentials for outbound requests to the video platform.
	CookieSecretPath string
	CookieLocalPath  string
	CookiesB64       string
	ProxyURL         string
	ProxyUsername    string
	ProxyPassword    string
	ProxyRotation    bool

	// Per-caller limiter on /summarize.
	SummarizeRateLimit  int
	SummarizeRateWindow time.Duration
}

// ErrMissingOpenAIKey is returned when the generation API key is absent. The
// service cannot do anything useful without it, so startup fails.
var ErrMissingOpenAIKey = errors.New("OPENAI_API_KEY environment variable is not set")

// Load reads configuration from environment variables, applying sensible defaults
// for local development while allowing overrides through environment variables.
func Load() (Config, error) {
	cfg := Config{
		AppPort:  getInt("VIDBRIEF_PORT", 8080),
		LogLevel: getString("VIDBRIEF_LOG_LEVEL", "info"),

		OpenAIKey:       os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:     getString("VIDBRIEF_OPENAI_MODEL", "gpt-4o-mini"),
		RetryMaxAttempt: getInt("VIDBRIEF_GEN_RETRIES", 3),
		RetryBaseDelay:  getDuration("VIDBRIEF_GEN_RETRY_DELAY", 45*time.Second),

		YouTubeAPIKey:    os.Getenv("YOUTUBE_API_KEY"),
		MetadataCacheTTL: getDuration("VIDBRIEF_METADATA_CACHE_TTL", 15*time.Minute),

		YTDLPPath:           getString("VIDBRIEF_YTDLP_PATH", "yt-dlp"),
		YTDLPTimeout:        getDuration("VIDBRIEF_YTDLP_TIMEOUT", 60*time.Second),
		TranscriptLanguages: getList("VIDBRIEF_TRANSCRIPT_LANGUAGES", []string{"tr", "en"}),

		CookieSecretPath: getString("VIDBRIEF_COOKIE_SECRET_PATH", "/etc/secrets/cookies.txt"),
		CookieLocalPath:  getString("VIDBRIEF_COOKIE_LOCAL_PATH", "cookies.txt"),
		CookiesB64:       os.Getenv("YOUTUBE_COOKIES_B64"),
		ProxyURL:         os.Getenv("PROXY_URL"),
		ProxyUsername:    os.Getenv("PROXY_USERNAME"),
		ProxyPassword:    os.Getenv("PROXY_PASSWORD"),
		ProxyRotation:    getBool("VIDBRIEF_PROXY_ROTATION", false),

		SummarizeRateLimit:  getInt("VIDBRIEF_SUMMARIZE_RATE_LIMIT", 5),
		SummarizeRateWindow: getDuration("VIDBRIEF_SUMMARIZE_RATE_WINDOW", time.Minute),
	}

	if cfg.OpenAIKey == "" {
		return Config{}, ErrMissingOpenAIKey
	}

	return cfg, nil
}

func getString(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return i
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}

func getBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return b
}

func getList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
