package task

import "context"

// Source loads the initial task list.
// Commands and the UI never import a backend SDK directly.
type Source interface {
	// Name identifies the source in logs and errors.
	Name() string

	// FetchTasks returns every task the source holds, in source order.
	// It is called once per session.
	FetchTasks(ctx context.Context) ([]Task, error)
}
