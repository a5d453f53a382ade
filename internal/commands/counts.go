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
	Register(&CountsCmd{})
}

// CountsCmd implements the counts command.
type CountsCmd struct{}

func (c *CountsCmd) Name() string      { return "counts" }
func (c *CountsCmd) Aliases() []string { return nil }
func (c *CountsCmd) Synopsis() string  { return "Print the number of tasks per status" }
func (c *CountsCmd) Usage() string     { return "tasktable counts" }
func (c *CountsCmd) NeedsSource() bool { return true }

func (c *CountsCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *CountsCmd) Run(ctx context.Context, cfg *config.Config, src task.Source, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	st, code := loadStore(ctx, src, errOut)
	if code != exitcode.Success {
		return code
	}

	output.FormatCounts(out, store.Count(st.Tasks()))
	return exitcode.Success
}
