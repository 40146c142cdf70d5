package summarize

import (
	"errors"
	"sync"
)

// Status is the lifecycle state of a summary task.
type Status string

const (
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusError      Status = "error"
)

// Task is one asynchronous detailed-summary unit of work. Result holds the
// generated text once completed, or the failure message on error.
type Task struct {
	ID     string
	Status Status
	Result string
}

var (
	// ErrTaskNotFound indicates the task id is unknown.
	ErrTaskNotFound = errors.New("task not found")
	// ErrTaskNotReady indicates the task has not reached the completed state.
	ErrTaskNotReady = errors.New("summary not ready")
)

// TaskStore tracks summary tasks in a process-wide map. Each task has a single
// writer (its background job) and arbitrarily many polling readers. Tasks are
// never evicted; growth over the process lifetime is accepted.
type TaskStore struct {
	mu    sync.RWMutex
	tasks map[string]Task
}

// NewTaskStore constructs an empty store.
func NewTaskStore() *TaskStore {
	return &TaskStore{tasks: make(map[string]Task)}
}

// Create registers a task in the processing state. It runs before the
// background job is scheduled so a poll for a just-returned id never misses.
func (s *TaskStore) Create(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[id] = Task{ID: id, Status: StatusProcessing}
}

// Complete moves a task to the completed state with its result.
func (s *TaskStore) Complete(id, result string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[id] = Task{ID: id, Status: StatusCompleted, Result: result}
}

// Fail moves a task to the error state with the failure message.
func (s *TaskStore) Fail(id, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[id] = Task{ID: id, Status: StatusError, Result: message}
}

// Get returns the task for id, or ErrTaskNotFound.
func (s *TaskStore) Get(id string) (Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.tasks[id]
	if !ok {
		return Task{}, ErrTaskNotFound
	}
	return task, nil
}

// Result returns the stored text of a completed task. It fails with
// ErrTaskNotFound for unknown ids and ErrTaskNotReady for unfinished tasks.
func (s *TaskStore) Result(id string) (string, error) {
	task, err := s.Get(id)
	if err != nil {
		return "", err
	}
	if task.Status != StatusCompleted {
		return "", ErrTaskNotReady
	}
	return task.Result, nil
}
