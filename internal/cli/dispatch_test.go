package cli_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tasktable/internal/backend"
	"tasktable/internal/cli"
	"tasktable/internal/commands"
	"tasktable/internal/config"
	"tasktable/internal/exitcode"
	"tasktable/internal/task"
	"tasktable/internal/testutil"
)

// testFactory creates a source factory that returns the given FakeSource
// and records the config it was called with.
func testFactory(src *testutil.FakeSource, seen **config.Config) cli.SourceFactory {
	return func(ctx context.Context, cfg *config.Config) (task.Source, error) {
		if seen != nil {
			*seen = cfg
		}
		return src, nil
	}
}

func failingFactory(err error) cli.SourceFactory {
	return func(ctx context.Context, cfg *config.Config) (task.Source, error) {
		return nil, err
	}
}

// run dispatches args with an isolated config directory.
func run(t *testing.T, factory cli.SourceFactory, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	return runInDir(t, t.TempDir(), factory, args...)
}

func runInDir(t *testing.T, dir string, factory cli.SourceFactory, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	var outBuf, errBuf bytes.Buffer
	full := append(args[:1:1], append([]string{"--config", dir}, args[1:]...)...)
	code = dispatcher.Run(context.Background(), full, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func sampleSource() *testutil.FakeSource {
	src := testutil.NewFakeSource()
	src.AddTask(1, "Buy milk", task.StatusToDo)
	src.AddTask(2, "Write report", task.StatusInProgress)
	src.AddTask(3, "Call plumber", task.StatusDone)
	return src
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(sampleSource(), nil))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"unknowncmd"}, &stdout, &stderr)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: unknowncmd\n"
	if stderr.String() != expected {
		t.Errorf("expected %q, got %q", expected, stderr.String())
	}
}

func TestDispatcher_LeadingFlagRunsDefaultCommand(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(sampleSource(), nil))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"--bogus"}, &stdout, &stderr)

	// The flag is parsed by the ui command rather than taken as a command name
	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown flag: -bogus\n"
	if stderr.String() != expected {
		t.Errorf("expected %q, got %q", expected, stderr.String())
	}
}

func TestDispatcher_HelpCommand(t *testing.T) {
	src := sampleSource()
	stdout, stderr, code := run(t, testFactory(src, nil), "help")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.Contains(stdout, "Usage:") {
		t.Error("expected help output to contain 'Usage:'")
	}
	if src.Calls() != 0 {
		t.Errorf("help should not load tasks, got %d fetches", src.Calls())
	}
}

func TestDispatcher_VersionCommand(t *testing.T) {
	stdout, stderr, code := run(t, testFactory(sampleSource(), nil), "version")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "tasktable 0.1.0\n" {
		t.Errorf("expected 'tasktable 0.1.0\\n', got %q", stdout)
	}
}

func TestDispatcher_UnknownFlag(t *testing.T) {
	_, stderr, code := run(t, testFactory(sampleSource(), nil), "help", "--unknown")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown flag: -unknown\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagNeedsArgument(t *testing.T) {
	_, stderr, code := run(t, testFactory(sampleSource(), nil), "list", "--page")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: flag needs an argument: -page\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_ListWithFlags(t *testing.T) {
	stdout, stderr, code := run(t, testFactory(sampleSource(), nil), "ls", "--status", "in-progress")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	expected := "  ID  STATUS       TITLE\n" +
		"   2  In Progress  Write report\n" +
		"page 1/1 (1 task)\n" +
		"To Do: 1  In Progress: 1  Done: 1\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestDispatcher_BackendFetchError(t *testing.T) {
	src := sampleSource()
	src.FetchErr = errors.New("request timed out")

	stdout, stderr, code := run(t, testFactory(src, nil), "counts")

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	if stderr != "error: backend error: request timed out\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_FactoryErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   int
		stderr string
	}{
		{
			name:   "auth",
			err:    fmt.Errorf("%w: not logged in (run: tasktable login)", backend.ErrAuth),
			code:   exitcode.ConfigError,
			stderr: "error: auth error: not logged in (run: tasktable login)\n",
		},
		{
			name:   "other",
			err:    errors.New("dial tcp: connection refused"),
			code:   exitcode.BackendError,
			stderr: "error: backend error: dial tcp: connection refused\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stderr, code := run(t, failingFactory(tt.err), "list")

			if code != tt.code {
				t.Errorf("expected exit code %d, got %d", tt.code, code)
			}
			if stderr != tt.stderr {
				t.Errorf("expected %q, got %q", tt.stderr, stderr)
			}
		})
	}
}

func TestDispatcher_UnknownSource(t *testing.T) {
	_, stderr, code := run(t, testFactory(sampleSource(), nil), "counts", "--source", "trello")

	if code != exitcode.ConfigError {
		t.Errorf("expected exit code %d, got %d", exitcode.ConfigError, code)
	}
	if stderr != "error: config error: unknown source: trello\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_SettingsPrecedence(t *testing.T) {
	dir := t.TempDir()
	yaml := "source: google\nendpoint: http://from-file.test/todos\npage_size: 2\n"
	if err := os.WriteFile(filepath.Join(dir, config.SettingsFile), []byte(yaml), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	t.Setenv("TASKTABLE_PAGE_SIZE", "1")

	var seen *config.Config
	stdout, stderr, code := runInDir(t, dir, testFactory(sampleSource(), &seen),
		"list", "--source", "PLACEHOLDER", "--endpoint", "http://from-flag.test/todos")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if seen == nil {
		t.Fatal("factory was not called")
	}
	if seen.Settings.Source != config.SourcePlaceholder {
		t.Errorf("expected flag to override source, got %q", seen.Settings.Source)
	}
	if seen.Settings.Endpoint != "http://from-flag.test/todos" {
		t.Errorf("expected flag to override endpoint, got %q", seen.Settings.Endpoint)
	}
	if seen.Settings.PageSize != 1 {
		t.Errorf("expected env to override page size, got %d", seen.Settings.PageSize)
	}
	if !strings.Contains(stdout, "page 1/3 (3 tasks)\n") {
		t.Errorf("expected one task per page, got %q", stdout)
	}
}

func TestDispatcher_InvalidEnv(t *testing.T) {
	t.Setenv("TASKTABLE_TIMEOUT", "soon")

	_, stderr, code := run(t, testFactory(sampleSource(), nil), "counts")

	if code != exitcode.ConfigError {
		t.Errorf("expected exit code %d, got %d", exitcode.ConfigError, code)
	}
	if stderr != "error: config error: invalid TASKTABLE_TIMEOUT: soon\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_DebugLogsToStderr(t *testing.T) {
	_, stderr, code := run(t, testFactory(sampleSource(), nil), "counts", "--debug")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if !strings.Contains(stderr, "msg=\"tasks loaded\"") {
		t.Errorf("expected debug records on stderr, got %q", stderr)
	}
}

func TestDispatcher_SourceFlagOverridesInvalidEnv(t *testing.T) {
	t.Setenv("TASKTABLE_SOURCE", "bogus")

	_, stderr, code := run(t, testFactory(sampleSource(), nil), "counts", "--source", "placeholder")
	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}

	_, stderr, code = run(t, testFactory(sampleSource(), nil), "counts")
	if code != exitcode.ConfigError {
		t.Errorf("expected exit code %d, got %d", exitcode.ConfigError, code)
	}
	if stderr != "error: config error: unknown source: bogus\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}
