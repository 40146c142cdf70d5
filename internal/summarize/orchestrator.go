package summarize

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/vidbrief/backend/internal/logging"
	"github.com/vidbrief/backend/internal/transcript"
	"github.com/vidbrief/backend/internal/youtube"
)

// TranscriptFetcher acquires a normalized transcript for a video identifier.
type TranscriptFetcher interface {
	Fetch(ctx context.Context, videoID string) (transcript.Result, error)
}

// Summary is the synchronous half of a summarize request: the outline plus the
// task id under which the detailed elaboration will appear.
type Summary struct {
	BulletPoints string
	TaskID       string
	Method       transcript.Method
}

// Orchestrator drives the two-pass summarization flow: outline synchronously,
// detailed elaboration as a background task.
type Orchestrator struct {
	transcripts TranscriptFetcher
	generator   Generator
	store       *TaskStore
	worker      *Worker
	logger      *slog.Logger
}

// NewOrchestrator wires the orchestrator's collaborators.
func NewOrchestrator(transcripts TranscriptFetcher, generator Generator, store *TaskStore, worker *Worker, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		transcripts: transcripts,
		generator:   generator,
		store:       store,
		worker:      worker,
		logger:      logger,
	}
}

// Summarize extracts the video id, acquires the transcript, generates the
// outline, and schedules the detailed summary. The outline is always produced
// before the background job is enqueued.
func (o *Orchestrator) Summarize(ctx context.Context, url string) (Summary, error) {
	videoID, err := youtube.ExtractVideoID(url)
	if err != nil {
		return Summary{}, err
	}

	fetchCtx, span := logging.StartSpan(ctx, "acquire_transcript")
	result, err := o.transcripts.Fetch(fetchCtx, videoID)
	span.End()
	if err != nil {
		return Summary{}, err
	}

	outlineCtx, span := logging.StartSpan(ctx, "generate_outline")
	outline, err := o.generator.Generate(outlineCtx, BulletPointsPrompt(result.Text))
	span.End()
	if err != nil {
		return Summary{}, err
	}

	taskID := uuid.NewString()
	o.store.Create(taskID)

	if err := o.worker.Enqueue(ctx, taskID, outline, result.Text); err != nil {
		o.logger.Error("enqueue detailed summary", "taskId", taskID, "error", err)
		o.store.Fail(taskID, err.Error())
	}

	return Summary{
		BulletPoints: outline,
		TaskID:       taskID,
		Method:       result.Method,
	}, nil
}
