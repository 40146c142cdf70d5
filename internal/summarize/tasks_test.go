package summarize

import (
	"errors"
	"testing"
)

func TestTaskStoreLifecycle(t *testing.T) {
	store := NewTaskStore()
	store.Create("task-1")

	task, err := store.Get("task-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if task.Status != StatusProcessing {
		t.Fatalf("new task status = %q, want processing", task.Status)
	}

	store.Complete("task-1", "summary text")
	task, err = store.Get("task-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if task.Status != StatusCompleted || task.Result != "summary text" {
		t.Fatalf("unexpected task after completion: %+v", task)
	}
}

func TestTaskStoreFail(t *testing.T) {
	store := NewTaskStore()
	store.Create("task-1")
	store.Fail("task-1", "upstream exploded")

	task, err := store.Get("task-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if task.Status != StatusError || task.Result != "upstream exploded" {
		t.Fatalf("unexpected failed task: %+v", task)
	}
}

func TestTaskStoreUnknownID(t *testing.T) {
	store := NewTaskStore()
	if _, err := store.Get("nope"); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
	if _, err := store.Result("nope"); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestTaskStoreResultNotReady(t *testing.T) {
	store := NewTaskStore()
	store.Create("task-1")

	if _, err := store.Result("task-1"); !errors.Is(err, ErrTaskNotReady) {
		t.Fatalf("expected ErrTaskNotReady, got %v", err)
	}

	store.Complete("task-1", "done")
	result, err := store.Result("task-1")
	if err != nil {
		t.Fatalf("Result() error = %v", err)
	}
	if result != "done" {
		t.Fatalf("unexpected result %q", result)
	}
}
