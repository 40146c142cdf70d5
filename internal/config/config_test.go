package config

import (
	"errors"
	"testing"
	"time"
)

func TestLoadRequiresGenerationKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	if _, err := Load(); !errors.Is(err, ErrMissingOpenAIKey) {
		t.Fatalf("expected ErrMissingOpenAIKey, got %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.AppPort != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.AppPort)
	}
	if cfg.OpenAIModel != "gpt-4o-mini" {
		t.Errorf("unexpected default model %q", cfg.OpenAIModel)
	}
	if cfg.RetryMaxAttempt != 3 || cfg.RetryBaseDelay != 45*time.Second {
		t.Errorf("unexpected retry defaults: %d attempts, %s delay", cfg.RetryMaxAttempt, cfg.RetryBaseDelay)
	}
	if len(cfg.TranscriptLanguages) != 2 || cfg.TranscriptLanguages[0] != "tr" || cfg.TranscriptLanguages[1] != "en" {
		t.Errorf("unexpected language preference: %v", cfg.TranscriptLanguages)
	}
	if cfg.SummarizeRateLimit != 5 || cfg.SummarizeRateWindow != time.Minute {
		t.Errorf("unexpected limiter defaults: %d per %s", cfg.SummarizeRateLimit, cfg.SummarizeRateWindow)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("VIDBRIEF_PORT", "9090")
	t.Setenv("VIDBRIEF_TRANSCRIPT_LANGUAGES", "en, de")
	t.Setenv("VIDBRIEF_YTDLP_TIMEOUT", "90s")
	t.Setenv("VIDBRIEF_PROXY_ROTATION", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.AppPort != 9090 {
		t.Errorf("expected port override 9090, got %d", cfg.AppPort)
	}
	if len(cfg.TranscriptLanguages) != 2 || cfg.TranscriptLanguages[1] != "de" {
		t.Errorf("list override not parsed: %v", cfg.TranscriptLanguages)
	}
	if cfg.YTDLPTimeout != 90*time.Second {
		t.Errorf("duration override not parsed: %s", cfg.YTDLPTimeout)
	}
	if !cfg.ProxyRotation {
		t.Error("bool override not parsed")
	}
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("VIDBRIEF_PORT", "not-a-number")
	t.Setenv("VIDBRIEF_YTDLP_TIMEOUT", "soon")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.AppPort != 8080 {
		t.Errorf("malformed int should fall back to default, got %d", cfg.AppPort)
	}
	if cfg.YTDLPTimeout != 60*time.Second {
		t.Errorf("malformed duration should fall back to default, got %s", cfg.YTDLPTimeout)
	}
}
