package transcript

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func captionsServer(t *testing.T, trackLangs ...string) *httptest.Server {
	t.Helper()
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/youtubei/v1/player":
			var tracks string
			for i, lang := range trackLangs {
				if i > 0 {
					tracks += ","
				}
				tracks += fmt.Sprintf(`{"baseUrl":"%s/api/timedtext?lang=%s","languageCode":%q}`, srv.URL, lang, lang)
			}
			fmt.Fprintf(w, `{"captions":{"playerCaptionsTracklistRenderer":{"captionTracks":[%s]}}}`, tracks)
		case r.URL.Path == "/api/timedtext":
			if r.URL.Query().Get("fmt") != "json3" {
				http.Error(w, "expected fmt=json3", http.StatusBadRequest)
				return
			}
			fmt.Fprint(w, json3Payload)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCaptionsStrategyPrefersConfiguredLanguage(t *testing.T) {
	srv := captionsServer(t, "en", "tr")

	strategy := NewCaptionsStrategy([]string{"tr", "en"}, srv.Client())
	strategy.BaseURL = srv.URL

	result, err := strategy.Fetch(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if result.Method != MethodCaptionsAPI {
		t.Fatalf("unexpected method %q", result.Method)
	}
	if result.Language != "tr" {
		t.Fatalf("expected preferred language tr, got %q", result.Language)
	}
	if result.Text != "[00:00-00:05] hello\n[00:05-00:07] world" {
		t.Fatalf("unexpected transcript %q", result.Text)
	}
}

func TestCaptionsStrategyFallsBackToFirstTrack(t *testing.T) {
	srv := captionsServer(t, "de", "fr")

	strategy := NewCaptionsStrategy([]string{"tr", "en"}, srv.Client())
	strategy.BaseURL = srv.URL

	result, err := strategy.Fetch(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if result.Language != "de" {
		t.Fatalf("expected first available track, got %q", result.Language)
	}
}

func TestCaptionsStrategyNoTracks(t *testing.T) {
	srv := captionsServer(t)

	strategy := NewCaptionsStrategy([]string{"tr", "en"}, srv.Client())
	strategy.BaseURL = srv.URL

	if _, err := strategy.Fetch(context.Background(), "dQw4w9WgXcQ"); !errors.Is(err, ErrNoTranscript) {
		t.Fatalf("expected ErrNoTranscript, got %v", err)
	}
}

type failingTransport struct{}

func (failingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, errors.New("proxy unreachable")
}

func TestCaptionsStrategyRotatesAcrossClients(t *testing.T) {
	srv := captionsServer(t, "en")

	broken := &http.Client{Transport: failingTransport{}}
	strategy := NewCaptionsStrategy([]string{"en"}, broken, srv.Client())
	strategy.BaseURL = srv.URL

	result, err := strategy.Fetch(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if result.Language != "en" {
		t.Fatalf("unexpected language %q", result.Language)
	}
}

func TestCaptionsStrategyAllRotationAttemptsFail(t *testing.T) {
	broken := &http.Client{Transport: failingTransport{}}
	strategy := NewCaptionsStrategy([]string{"en"}, broken, broken)
	strategy.BaseURL = "http://unused.invalid"

	_, err := strategy.Fetch(context.Background(), "dQw4w9WgXcQ")
	if err == nil {
		t.Fatal("expected error when every client fails")
	}
}
