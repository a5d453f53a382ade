package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tasktable/internal/config"
	"tasktable/internal/exitcode"
	"tasktable/internal/output"
	"tasktable/internal/store"
	"tasktable/internal/task"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// It prints one page of the filtered view followed by the status counters.
type ListCmd struct {
	queryFlags
	page int
}

// SetPage sets the page number (for testing).
func (c *ListCmd) SetPage(page int) {
	c.page = page
}

// SetQuery sets the status filter and search text (for testing).
func (c *ListCmd) SetQuery(status, search string) {
	c.status = status
	c.search = search
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "Print the filtered task list" }
func (c *ListCmd) Usage() string {
	return "tasktable list [--status <s>] [--search <text>] [--page <n>]"
}
func (c *ListCmd) NeedsSource() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	c.queryFlags.register(fs)
	fs.IntVar(&c.page, "page", 1, "")
	fs.IntVar(&c.page, "p", 1, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, src task.Source, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}
	if c.page < 1 {
		fmt.Fprintf(errOut, "error: invalid page number: %d\n", c.page)
		return exitcode.UserError
	}
	q, err := c.query()
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	st, code := loadStore(ctx, src, errOut)
	if code != exitcode.Success {
		return code
	}

	filtered := store.Filter(st.Tasks(), q)
	if len(filtered) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no tasks found")
		}
		output.FormatCounts(out, store.Count(st.Tasks()))
		return exitcode.Success
	}

	page := store.Paginate(filtered, c.page, cfg.Settings.PageSize)
	if page.Number != c.page {
		fmt.Fprintf(errOut, "error: page out of range: %d (of %d)\n", c.page, page.Count)
		return exitcode.UserError
	}

	output.FormatHeader(out)
	for _, t := range page.Tasks {
		output.FormatTask(out, t)
	}
	output.FormatPageFooter(out, page)
	output.FormatCounts(out, store.Count(st.Tasks()))

	return exitcode.Success
}
