package app

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/vidbrief/backend/internal/config"
	"github.com/vidbrief/backend/internal/credentials"
	"github.com/vidbrief/backend/internal/handlers"
	"github.com/vidbrief/backend/internal/middleware"
	"github.com/vidbrief/backend/internal/summarize"
	"github.com/vidbrief/backend/internal/transcript"
	"github.com/vidbrief/backend/internal/youtube"
)

// rotationAttempts caps how many distinct proxies the rotation mode draws.
const rotationAttempts = 5

// buildDependencies wires together concrete implementations used by the HTTP
// handlers. The returned worker must be shut down on exit.
func buildDependencies(ctx context.Context, cfg config.Config, logger *slog.Logger) (handlers.Dependencies, *summarize.Worker, error) {
	cookieFile := credentials.ResolveCookieFile(credentials.CookieSources{
		SecretPath:    cfg.CookieSecretPath,
		LocalPath:     cfg.CookieLocalPath,
		Base64Payload: cfg.CookiesB64,
	}, logger)

	provisioner := credentials.NewProvisioner(cookieFile, credentials.ProxyConfig{
		StaticURL: cfg.ProxyURL,
		Username:  cfg.ProxyUsername,
		Password:  cfg.ProxyPassword,
	})

	jar, err := credentials.NewCookieJar(cookieFile)
	if err != nil {
		logger.Warn("cookie jar unavailable, proceeding unauthenticated", "error", err)
		jar = nil
	}

	captions := buildCaptionsStrategy(cfg, provisioner, jar)

	ytdlp := transcript.NewYTDLPStrategy(cfg.YTDLPPath, cfg.YTDLPTimeout, cfg.TranscriptLanguages)
	ytdlp.CookieFile = provisioner.CookieFile()
	if !cfg.ProxyRotation {
		if proxy := provisioner.ProxyURL(); proxy != nil {
			ytdlp.ProxyURL = proxy.String()
		}
	}

	pipeline := transcript.NewPipeline(logger, captions, ytdlp)

	var metadata handlers.VideoMetadataProvider
	if cfg.YouTubeAPIKey != "" {
		client, err := youtube.NewClient(ctx, cfg.YouTubeAPIKey)
		if err != nil {
			return handlers.Dependencies{}, nil, err
		}
		metadata = youtube.NewCachingProvider(client, cfg.MetadataCacheTTL)
	} else {
		logger.Warn("YOUTUBE_API_KEY not set, /video-details disabled")
	}

	generator := summarize.NewRetryingGenerator(
		summarize.NewOpenAIGenerator(cfg.OpenAIKey, cfg.OpenAIModel),
		cfg.RetryMaxAttempt,
		cfg.RetryBaseDelay,
		logger,
	)
	store := summarize.NewTaskStore()
	worker := summarize.NewWorker(generator, store, summarize.WorkerConfig{QueueSize: 16, Workers: 2}, logger)
	orchestrator := summarize.NewOrchestrator(pipeline, generator, store, worker, logger)

	deps := handlers.Dependencies{
		VideoMetadata:    metadata,
		Summarizer:       orchestrator,
		Tasks:            store,
		SummarizeLimiter: middleware.NewPerCallerLimiter(cfg.SummarizeRateLimit, cfg.SummarizeRateWindow, 0),
		DebugStrategies:  []transcript.Strategy{captions, ytdlp},
		DebugSnapshot:    debugSnapshot(cfg, provisioner),
	}

	return deps, worker, nil
}

// buildCaptionsStrategy assembles the first-party strategy in one of its two
// mutually exclusive deployment modes: cookie/single-proxy, or proxy rotation
// with a final unproxied attempt.
func buildCaptionsStrategy(cfg config.Config, provisioner *credentials.Provisioner, jar http.CookieJar) *transcript.CaptionsStrategy {
	var clients []*http.Client
	if cfg.ProxyRotation {
		for _, proxy := range provisioner.DrawProxies(rotationAttempts) {
			clients = append(clients, credentials.NewHTTPClient(proxy, jar))
		}
		clients = append(clients, credentials.NewHTTPClient(nil, jar))
	} else {
		clients = []*http.Client{credentials.NewHTTPClient(provisioner.ProxyURL(), jar)}
	}
	return transcript.NewCaptionsStrategy(cfg.TranscriptLanguages, clients...)
}

func debugSnapshot(cfg config.Config, provisioner *credentials.Provisioner) map[string]any {
	return map[string]any{
		"cookie_file":          provisioner.CookieFile() != "",
		"proxy":                maskProxy(provisioner.ProxyURL()),
		"proxy_rotation":       cfg.ProxyRotation,
		"transcript_languages": cfg.TranscriptLanguages,
		"ytdlp_path":           cfg.YTDLPPath,
	}
}

// maskProxy hides proxy credentials, keeping just enough to recognize the endpoint.
func maskProxy(proxy *url.URL) string {
	if proxy == nil {
		return ""
	}
	masked := *proxy
	if masked.User != nil {
		masked.User = url.UserPassword(masked.User.Username(), "***")
	}
	return masked.String()
}
