// Package exitcode defines the process exit codes of tasktable.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError covers bad arguments, flags and filter values.
	UserError = 1

	// ConfigError covers unreadable settings and missing or invalid credentials.
	ConfigError = 2

	// BackendError indicates the task source could not be loaded.
	BackendError = 3
)
