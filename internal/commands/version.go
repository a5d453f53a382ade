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

// Version is the application version. Set at build time with
// -ldflags "-X tasktable/internal/commands.Version=...".
var Version = "0.1.0"

func init() {
	Register(&VersionCmd{})
}

// VersionCmd implements the version command.
type VersionCmd struct{}

func (c *VersionCmd) Name() string      { return "version" }
func (c *VersionCmd) Aliases() []string { return nil }
func (c *VersionCmd) Synopsis() string  { return "Print version" }
func (c *VersionCmd) Usage() string     { return "tasktable version" }
func (c *VersionCmd) NeedsSource() bool { return false }

func (c *VersionCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *VersionCmd) Run(ctx context.Context, cfg *config.Config, src task.Source, args []string, out, errOut io.Writer) int {
	fmt.Fprintf(out, "tasktable %s\n", Version)
	return exitcode.Success
}
