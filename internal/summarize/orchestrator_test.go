package summarize

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/vidbrief/backend/internal/transcript"
	"github.com/vidbrief/backend/internal/youtube"
)

type fetcherFunc func(ctx context.Context, videoID string) (transcript.Result, error)

func (f fetcherFunc) Fetch(ctx context.Context, videoID string) (transcript.Result, error) {
	return f(ctx, videoID)
}

func okFetcher(t *testing.T) fetcherFunc {
	t.Helper()
	return func(ctx context.Context, videoID string) (transcript.Result, error) {
		if videoID != "dQw4w9WgXcQ" {
			t.Fatalf("unexpected video id %q", videoID)
		}
		return transcript.Result{
			Text:     "[00:00-00:05] hello",
			Method:   transcript.MethodCaptionsAPI,
			Language: "en",
		}, nil
	}
}

// isDetailedPrompt distinguishes the second pass, which embeds the outline.
func isDetailedPrompt(prompt string) bool {
	return strings.Contains(prompt, "Bullet points:")
}

func TestOrchestratorTwoPassFlow(t *testing.T) {
	release := make(chan struct{})
	gen := generatorFunc(func(ctx context.Context, prompt string) (string, error) {
		if isDetailedPrompt(prompt) {
			<-release
			return "detailed elaboration", nil
		}
		return "outline bullets", nil
	})

	store := NewTaskStore()
	worker := NewWorker(gen, store, WorkerConfig{QueueSize: 4, Workers: 1}, slog.Default())
	defer worker.Shutdown(context.Background())

	orch := NewOrchestrator(okFetcher(t), gen, store, worker, slog.Default())

	summary, err := orch.Summarize(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if summary.BulletPoints != "outline bullets" {
		t.Fatalf("unexpected outline %q", summary.BulletPoints)
	}
	if summary.Method != transcript.MethodCaptionsAPI {
		t.Fatalf("unexpected method %q", summary.Method)
	}
	if summary.TaskID == "" {
		t.Fatal("expected a task id")
	}

	// The task is observable as processing before the deferred work completes.
	task, err := store.Get(summary.TaskID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if task.Status != StatusProcessing {
		t.Fatalf("task status = %q, want processing", task.Status)
	}

	close(release)

	waitForStatus(t, store, summary.TaskID, StatusCompleted)
	task, _ = store.Get(summary.TaskID)
	if task.Result != "detailed elaboration" {
		t.Fatalf("unexpected detailed result %q", task.Result)
	}
}

func TestOrchestratorDetailedFailureBecomesTaskError(t *testing.T) {
	gen := generatorFunc(func(ctx context.Context, prompt string) (string, error) {
		if isDetailedPrompt(prompt) {
			return "", errors.New("model blew up")
		}
		return "outline bullets", nil
	})

	store := NewTaskStore()
	worker := NewWorker(gen, store, WorkerConfig{QueueSize: 4, Workers: 1}, slog.Default())
	defer worker.Shutdown(context.Background())

	orch := NewOrchestrator(okFetcher(t), gen, store, worker, slog.Default())

	summary, err := orch.Summarize(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}

	waitForStatus(t, store, summary.TaskID, StatusError)
	task, _ := store.Get(summary.TaskID)
	if !strings.Contains(task.Result, "model blew up") {
		t.Fatalf("expected the failure message as result, got %q", task.Result)
	}
}

func TestOrchestratorInvalidURL(t *testing.T) {
	store := NewTaskStore()
	gen := generatorFunc(func(ctx context.Context, prompt string) (string, error) {
		t.Fatal("generator must not run for invalid urls")
		return "", nil
	})
	worker := NewWorker(gen, store, WorkerConfig{}, slog.Default())
	defer worker.Shutdown(context.Background())

	orch := NewOrchestrator(okFetcher(t), gen, store, worker, slog.Default())

	_, err := orch.Summarize(context.Background(), "https://example.com/nope")
	if !errors.Is(err, youtube.ErrInvalidURL) {
		t.Fatalf("expected ErrInvalidURL, got %v", err)
	}
}

func TestOrchestratorTranscriptFailurePropagates(t *testing.T) {
	fetcher := fetcherFunc(func(ctx context.Context, videoID string) (transcript.Result, error) {
		return transcript.Result{}, transcript.ErrTranscriptUnavailable
	})

	store := NewTaskStore()
	gen := generatorFunc(func(ctx context.Context, prompt string) (string, error) {
		t.Fatal("generator must not run without a transcript")
		return "", nil
	})
	worker := NewWorker(gen, store, WorkerConfig{}, slog.Default())
	defer worker.Shutdown(context.Background())

	orch := NewOrchestrator(fetcher, gen, store, worker, slog.Default())

	_, err := orch.Summarize(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	if !errors.Is(err, transcript.ErrTranscriptUnavailable) {
		t.Fatalf("expected ErrTranscriptUnavailable, got %v", err)
	}
}

func waitForStatus(t *testing.T, store *TaskStore, id string, want Status) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		task, err := store.Get(id)
		if err == nil && task.Status == want {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("task %s never reached %q (last: %+v)", id, want, task)
		case <-time.After(5 * time.Millisecond):
		}
	}
}
