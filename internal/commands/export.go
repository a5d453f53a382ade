package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"tasktable/internal/config"
	"tasktable/internal/exitcode"
	"tasktable/internal/export"
	"tasktable/internal/logging"
	"tasktable/internal/store"
	"tasktable/internal/task"
)

func init() {
	Register(&ExportCmd{})
}

// ExportCmd implements the export command.
type ExportCmd struct {
	queryFlags
	format string
	path   string
}

// SetOptions sets the format and output path (for testing).
func (c *ExportCmd) SetOptions(format, path string) {
	c.format = format
	c.path = path
}

// SetQuery sets the status filter and search text (for testing).
func (c *ExportCmd) SetQuery(status, search string) {
	c.status = status
	c.search = search
}

func (c *ExportCmd) Name() string      { return "export" }
func (c *ExportCmd) Aliases() []string { return nil }
func (c *ExportCmd) Synopsis() string  { return "Write the filtered task list as csv, json or pdf" }
func (c *ExportCmd) Usage() string {
	return "tasktable export [--format csv|json|pdf] [--status <s>] [--search <text>] [--output <path>]"
}
func (c *ExportCmd) NeedsSource() bool { return true }

func (c *ExportCmd) RegisterFlags(fs *flag.FlagSet) {
	c.queryFlags.register(fs)
	fs.StringVar(&c.format, "format", "csv", "")
	fs.StringVar(&c.format, "f", "csv", "")
	fs.StringVar(&c.path, "output", "", "")
	fs.StringVar(&c.path, "o", "", "")
}

func (c *ExportCmd) Run(ctx context.Context, cfg *config.Config, src task.Source, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}
	format := strings.ToLower(c.format)
	if format == "" {
		format = "csv"
	}
	if !slices.Contains(export.Formats, format) {
		fmt.Fprintf(errOut, "error: unknown format: %s\n", c.format)
		return exitcode.UserError
	}
	if format == "pdf" && c.path == "" {
		fmt.Fprintln(errOut, "error: pdf export requires --output")
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
	tasks := store.Filter(st.Tasks(), q)

	if c.path == "" {
		if err := export.Export(out, format, tasks); err != nil {
			fmt.Fprintf(errOut, "error: export failed: %v\n", err)
			return exitcode.UserError
		}
		return exitcode.Success
	}

	f, err := os.Create(c.path)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if err := export.Export(f, format, tasks); err != nil {
		f.Close()
		fmt.Fprintf(errOut, "error: export failed: %v\n", err)
		return exitcode.UserError
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	logging.From(ctx).Debug("exported", "format", format, "path", c.path, "count", len(tasks))
	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
