// Package store holds the in-memory task list and the pure derivations
// (filtered view, status counters, pages) computed from it.
package store

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"tasktable/internal/task"
)

var (
	// ErrNotFound is returned when no task has the requested ID.
	ErrNotFound = errors.New("task not found")

	// ErrInvalidStatus is returned when an edit sets an unknown status.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrUnknownField is returned when an edit names a field that is not editable.
	ErrUnknownField = errors.New("unknown field")
)

// Field names an inline-editable task field.
type Field string

const (
	FieldTitle       Field = "title"
	FieldDescription Field = "description"
	FieldStatus      Field = "status"
)

// Store is the task list owned by one session.
// Tasks hands out copies, so callers can neither see later mutations nor
// change the list except through Add, Delete and Update.
// Store is not safe for concurrent use.
type Store struct {
	tasks []task.Task
}

// New creates a store seeded with tasks.
func New(tasks ...task.Task) *Store {
	s := &Store{}
	s.Replace(tasks)
	return s
}

// Replace discards the current contents and seeds the store with tasks.
func (s *Store) Replace(tasks []task.Task) {
	s.tasks = append([]task.Task(nil), tasks...)
}

// Tasks returns a copy of the full list in insertion order.
func (s *Store) Tasks() []task.Task {
	return slices.Clone(s.tasks)
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}

// Get returns the task with the given ID.
func (s *Store) Get(id int) (task.Task, bool) {
	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return task.Task{}, false
}

// NextID returns the ID the next added task receives:
// one more than the largest ID, or 1 for an empty store.
func (s *Store) NextID() int {
	maxID := 0
	for _, t := range s.tasks {
		if t.ID > maxID {
			maxID = t.ID
		}
	}
	return maxID + 1
}

// Add appends a task built from the draft.
// Returns false and leaves the store unchanged if the title is empty.
func (s *Store) Add(d task.Draft) (task.Task, bool) {
	if strings.TrimSpace(d.Title) == "" {
		return task.Task{}, false
	}
	status := d.Status
	if status == "" {
		status = task.StatusToDo
	}

	t := task.Task{
		ID:          s.NextID(),
		Title:       d.Title,
		Description: d.Description,
		Status:      status,
	}

	next := make([]task.Task, len(s.tasks), len(s.tasks)+1)
	copy(next, s.tasks)
	s.tasks = append(next, t)
	return t, true
}

// Delete removes the task with the given ID.
// Returns false if no such task exists.
func (s *Store) Delete(id int) bool {
	next := make([]task.Task, 0, len(s.tasks))
	found := false
	for _, t := range s.tasks {
		if t.ID == id {
			found = true
			continue
		}
		next = append(next, t)
	}
	if found {
		s.tasks = next
	}
	return found
}

// Update sets one field of the task with the given ID.
func (s *Store) Update(id int, field Field, value string) error {
	idx := -1
	for i, t := range s.tasks {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}

	updated := s.tasks[idx]
	switch field {
	case FieldTitle:
		updated.Title = value
	case FieldDescription:
		updated.Description = value
	case FieldStatus:
		st, err := task.ParseStatus(value)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidStatus, value)
		}
		updated.Status = st
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}

	next := make([]task.Task, len(s.tasks))
	copy(next, s.tasks)
	next[idx] = updated
	s.tasks = next
	return nil
}
