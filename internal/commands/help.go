package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tasktable/internal/config"
	"tasktable/internal/exitcode"
	"tasktable/internal/task"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "tasktable help" }
func (c *HelpCmd) NeedsSource() bool { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, src task.Source, args []string, out, errOut io.Writer) int {
	fmt.Fprintln(out, "Usage:")
	fmt.Fprintln(out, "  tasktable                  Open the interactive task table")
	for _, cmd := range DefaultRegistry.All() {
		fmt.Fprintf(out, "  %s\n      %s\n", cmd.Usage(), cmd.Synopsis())
	}
	fmt.Fprint(out, helpFooter)
	return exitcode.Success
}

const helpFooter = `
Common flags:
  --config <dir>     Override config directory
  --source <name>    Task source: placeholder (default) or google
  --endpoint <url>   Override the placeholder endpoint
  --quiet            Suppress informational output
  --debug            Write debug logs (stderr, or debug.log in the config dir for ui)

Status values: "To Do" (todo), "In Progress" (in-progress), "Done" (done), all
`
