package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"tasktable/internal/config"
	"tasktable/internal/exitcode"
	"tasktable/internal/logging"
	"tasktable/internal/task"
	"tasktable/internal/tui"
)

func init() {
	Register(&UICmd{})
}

// UICmd implements the ui command, the interactive task table.
type UICmd struct {
	// input overrides stdin (for testing).
	input io.Reader
}

// SetInput sets the reader key events are read from (for testing).
func (c *UICmd) SetInput(r io.Reader) {
	c.input = r
}

func (c *UICmd) Name() string      { return "ui" }
func (c *UICmd) Aliases() []string { return nil }
func (c *UICmd) Synopsis() string  { return "Open the interactive task table" }
func (c *UICmd) Usage() string     { return "tasktable ui [common flags]" }
func (c *UICmd) NeedsSource() bool { return true }

func (c *UICmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UICmd) Run(ctx context.Context, cfg *config.Config, src task.Source, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	// The program owns the terminal, so debug logs go to a file.
	if cfg.Debug {
		if err := cfg.EnsureDir(); err != nil {
			fmt.Fprintf(errOut, "error: failed to create config directory: %v\n", err)
			return exitcode.ConfigError
		}
	}
	logger, closeLog, err := logging.OpenFile(cfg.DebugLogPath(), cfg.Debug)
	if err != nil {
		fmt.Fprintf(errOut, "error: failed to open debug log: %v\n", err)
		return exitcode.ConfigError
	}
	defer closeLog()

	model := tui.New(ctx, src, tui.Options{
		PageSize: cfg.Settings.PageSize,
		Notify:   cfg.Settings.Notify,
		Logger:   logger,
	})

	opts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithOutput(out)}
	if c.input != nil {
		opts = append(opts, tea.WithInput(c.input))
	} else {
		opts = append(opts, tea.WithInput(os.Stdin), tea.WithAltScreen())
	}

	final, err := tea.NewProgram(model, opts...).Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if m, ok := final.(tui.Model); ok {
		logger.Debug("session ended", "tasks", m.Len())
	}
	return exitcode.Success
}
