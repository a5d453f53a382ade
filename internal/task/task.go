// Package task defines the task record, its status values and the
// source interface the remote loaders implement.
package task

import (
	"errors"
	"fmt"
	"strings"
)

// Status is the workflow state of a task.
type Status string

const (
	StatusToDo       Status = "To Do"
	StatusInProgress Status = "In Progress"
	StatusDone       Status = "Done"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusToDo, StatusInProgress, StatusDone}

// ErrUnknownStatus is returned when a string does not name a status.
var ErrUnknownStatus = errors.New("unknown status")

// ParseStatus resolves a display name or short form (todo, in-progress, done)
// to a Status. Matching is case-insensitive and ignores surrounding space.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "to do", "todo", "to-do":
		return StatusToDo, nil
	case "in progress", "in-progress", "inprogress", "progress":
		return StatusInProgress, nil
	case "done":
		return StatusDone, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
}

// Next returns the status after s in display order, wrapping around.
func (s Status) Next() Status {
	for i, st := range Statuses {
		if st == s {
			return Statuses[(i+1)%len(Statuses)]
		}
	}
	return StatusToDo
}

// Prev returns the status before s in display order, wrapping around.
func (s Status) Prev() Status {
	for i, st := range Statuses {
		if st == s {
			return Statuses[(i+len(Statuses)-1)%len(Statuses)]
		}
	}
	return StatusToDo
}

// Task is a single unit of work.
type Task struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      Status `json:"status"`
}

// Draft is the pending state of the new-task form.
type Draft struct {
	Title       string
	Description string
	Status      Status
}

// NewDraft returns an empty draft with status To Do.
func NewDraft() Draft {
	return Draft{Status: StatusToDo}
}
