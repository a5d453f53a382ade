// Package cli parses the command line and dispatches to commands.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"tasktable/internal/backend"
	"tasktable/internal/commands"
	"tasktable/internal/config"
	"tasktable/internal/exitcode"
	"tasktable/internal/logging"
	"tasktable/internal/task"
)

// SourceFactory creates the task source from config.
// Used to inject the backend during dispatch.
type SourceFactory func(ctx context.Context, cfg *config.Config) (task.Source, error)

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  SourceFactory
}

// NewDispatcher creates a new dispatcher with the given registry and source factory.
// A nil factory selects the source named in the configuration.
func NewDispatcher(registry *commands.Registry, factory SourceFactory) *Dispatcher {
	if factory == nil {
		factory = backend.New
	}
	return &Dispatcher{
		registry: registry,
		factory:  factory,
	}
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	// No args, or only flags, runs the interactive table
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return d.dispatch(ctx, commands.DefaultCommand, args, out, errOut)
	}
	return d.dispatch(ctx, args[0], args[1:], out, errOut)
}

func (d *Dispatcher) dispatch(ctx context.Context, cmdName string, args []string, out, errOut io.Writer) int {
	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}
	return d.dispatchCommand(ctx, cmd, args, out, errOut)
}

// commonFlags are accepted by every command.
type commonFlags struct {
	configDir string
	source    string
	endpoint  string
	quiet     bool
	debug     bool
}

func (f *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.configDir, "config", "", "")
	fs.StringVar(&f.source, "source", "", "")
	fs.StringVar(&f.endpoint, "endpoint", "", "")
	fs.BoolVar(&f.quiet, "quiet", false, "")
	fs.BoolVar(&f.debug, "debug", false, "")
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves

	var common commonFlags
	common.register(fs)
	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", flagError(err))
		return exitcode.UserError
	}

	// A positional arg starting with - should have been parsed as a flag
	positionalArgs := fs.Args()
	if len(positionalArgs) > 0 && strings.HasPrefix(positionalArgs[0], "-") {
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", positionalArgs[0])
		return exitcode.UserError
	}

	cfg, err := config.Load(common.configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: config error: %v\n", err)
		return exitcode.ConfigError
	}
	cfg.Quiet = common.quiet
	cfg.Debug = common.debug
	if common.source != "" {
		cfg.Settings.Source = common.source
	}
	if common.endpoint != "" {
		cfg.Settings.Endpoint = common.endpoint
	}
	if err := cfg.Settings.Validate(); err != nil {
		fmt.Fprintf(errOut, "error: config error: %v\n", err)
		return exitcode.ConfigError
	}

	logger := logging.New(errOut, cfg.Debug)
	ctx = logging.With(ctx, logger)
	logger.Debug("dispatch", "command", cmd.Name(), "source", cfg.Settings.Source, "config", cfg.Dir)

	var src task.Source
	if cmd.NeedsSource() {
		src, err = d.factory(ctx, cfg)
		if err != nil {
			if errors.Is(err, backend.ErrAuth) {
				fmt.Fprintf(errOut, "error: %v\n", err)
				return exitcode.ConfigError
			}
			fmt.Fprintf(errOut, "error: backend error: %v\n", err)
			return exitcode.BackendError
		}
	}

	return cmd.Run(ctx, cfg, src, positionalArgs, out, errOut)
}

// flagError rewrites flag package errors into the CLI's wording.
func flagError(err error) string {
	errStr := err.Error()

	if strings.Contains(errStr, "flag needs an argument") {
		parts := strings.SplitN(errStr, ":", 2)
		if len(parts) == 2 {
			return "flag needs an argument: " + strings.TrimSpace(parts[1])
		}
	}

	if strings.HasPrefix(errStr, "flag provided but not defined:") {
		return "unknown flag: " + strings.TrimPrefix(errStr, "flag provided but not defined: ")
	}

	return errStr
}
