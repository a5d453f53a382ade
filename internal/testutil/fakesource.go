// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"sync"

	"tasktable/internal/task"
)

// FakeSource is an in-memory task.Source for testing.
type FakeSource struct {
	mu    sync.Mutex
	tasks []task.Task
	calls int

	// FetchErr is returned by FetchTasks when set.
	FetchErr error
}

// NewFakeSource creates a FakeSource holding tasks.
func NewFakeSource(tasks ...task.Task) *FakeSource {
	return &FakeSource{tasks: tasks}
}

// AddTask appends a task with the given fields.
func (f *FakeSource) AddTask(id int, title string, status task.Status) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, task.Task{ID: id, Title: title, Status: status})
}

// AddTasks appends n generated To Do tasks with IDs continuing after the last one.
func (f *FakeSource) AddTasks(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	next := len(f.tasks) + 1
	for i := 0; i < n; i++ {
		f.tasks = append(f.tasks, task.Task{
			ID:     next + i,
			Title:  fmt.Sprintf("task %d", next+i),
			Status: task.StatusToDo,
		})
	}
}

// Calls returns how many times FetchTasks ran.
func (f *FakeSource) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// Name implements task.Source.
func (f *FakeSource) Name() string { return "fake" }

// FetchTasks implements task.Source.
func (f *FakeSource) FetchTasks(ctx context.Context) ([]task.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.FetchErr != nil {
		return nil, f.FetchErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	result := make([]task.Task, len(f.tasks))
	copy(result, f.tasks)
	return result, nil
}
