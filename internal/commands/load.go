package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tasktable/internal/exitcode"
	"tasktable/internal/logging"
	"tasktable/internal/store"
	"tasktable/internal/task"
)

// queryFlags are the --status and --search flags shared by list and export.
type queryFlags struct {
	status string
	search string
}

func (q *queryFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&q.status, "status", "", "")
	fs.StringVar(&q.status, "s", "", "")
	fs.StringVar(&q.search, "search", "", "")
	fs.StringVar(&q.search, "q", "", "")
}

// query converts the flags to a store.Query.
func (q *queryFlags) query() (store.Query, error) {
	f, err := store.ParseFilter(q.status)
	if err != nil {
		return store.Query{}, err
	}
	return store.Query{Status: f, Search: q.search}, nil
}

// loadStore fetches the task list once and seeds a store with it.
// On failure it prints the error and returns the exit code to use.
func loadStore(ctx context.Context, src task.Source, errOut io.Writer) (*store.Store, int) {
	log := logging.From(ctx)
	log.Debug("loading tasks", "source", src.Name())

	tasks, err := src.FetchTasks(ctx)
	if err != nil {
		log.Debug("load failed", "source", src.Name(), "err", err)
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return nil, exitcode.BackendError
	}

	log.Debug("tasks loaded", "source", src.Name(), "count", len(tasks))
	return store.New(tasks...), exitcode.Success
}
