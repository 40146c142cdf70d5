package summarize

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// WorkerConfig controls the concurrency characteristics of the summary worker.
type WorkerConfig struct {
	QueueSize int
	Workers   int
}

// Worker runs detailed-summary jobs in the background. It owns the error
// boundary for deferred work: a job's only observable effect is the terminal
// state it writes into the task store.
type Worker struct {
	generator Generator
	store     *TaskStore
	logger    *slog.Logger

	jobs   chan summaryJob
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once
}

type summaryJob struct {
	taskID     string
	outline    string
	transcript string
}

var errWorkerClosed = errors.New("summary worker closed")

// NewWorker constructs the background pool and starts its workers.
func NewWorker(generator Generator, store *TaskStore, cfg WorkerConfig, logger *slog.Logger) *Worker {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 16
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())

	w := &Worker{
		generator: generator,
		store:     store,
		logger:    logger,
		jobs:      make(chan summaryJob, cfg.QueueSize),
		ctx:       ctx,
		cancel:    cancel,
	}

	w.wg.Add(cfg.Workers)
	for i := 0; i < cfg.Workers; i++ {
		go w.worker()
	}

	return w
}

// Enqueue schedules detailed-summary generation for a task. The task must
// already be registered in the store as processing.
func (w *Worker) Enqueue(ctx context.Context, taskID, outline, transcript string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-w.ctx.Done():
		return errWorkerClosed
	default:
	}

	job := summaryJob{taskID: taskID, outline: outline, transcript: transcript}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-w.ctx.Done():
		return errWorkerClosed
	case w.jobs <- job:
		return nil
	}
}

// Shutdown waits for the worker pool to drain outstanding jobs.
func (w *Worker) Shutdown(ctx context.Context) error {
	w.once.Do(func() {
		w.cancel()
		close(w.jobs)
	})

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}

func (w *Worker) worker() {
	defer w.wg.Done()

	for {
		select {
		case <-w.ctx.Done():
			return
		case job, ok := <-w.jobs:
			if !ok {
				return
			}
			w.handleJob(job)
		}
	}
}

func (w *Worker) handleJob(job summaryJob) {
	w.logger.Info("detailed summary started", "taskId", job.taskID)

	// Deferred work is not cancellable; it runs to completion or failure.
	prompt := DetailedSummaryPrompt(job.outline, job.transcript)
	result, err := w.generator.Generate(context.Background(), prompt)
	if err != nil {
		w.logger.Error("detailed summary failed", "taskId", job.taskID, "error", err)
		w.store.Fail(job.taskID, err.Error())
		return
	}

	w.store.Complete(job.taskID, result)
	w.logger.Info("detailed summary completed", "taskId", job.taskID)
}
