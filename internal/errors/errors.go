// Package apperrors defines the error types and exit codes shared by the
// monitor, its exporters and the command line entry point.
package apperrors

import (
	"errors"
	"fmt"
)

// Process exit codes.
const (
	ExitSuccess      = 0 // clean run, including interrupt-triggered shutdown
	ExitErrorGeneric = 1 // metrics, export or display failure
	ExitErrorConfig  = 4 // invalid flags or environment
)

// ConfigError represents an invalid configuration value.
type ConfigError struct {
	Message string
}

func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a ConfigError with a formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// MetricError reports a failed OS query for a named metric. Metric failures
// end the monitor loop; no value is substituted.
type MetricError struct {
	Metric string
	Cause  error
}

func (e MetricError) Error() string {
	return fmt.Sprintf("sampling %s: %v", e.Metric, e.Cause)
}

func (e MetricError) Unwrap() error { return e.Cause }

// ExportError reports a failed write of one export format.
type ExportError struct {
	Format string
	Path   string
	Cause  error
}

func (e ExportError) Error() string {
	return fmt.Sprintf("exporting %s to %q: %v", e.Format, e.Path, e.Cause)
}

func (e ExportError) Unwrap() error { return e.Cause }

// ExitCode maps an error returned by the application to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var cfgErr ConfigError
	if errors.As(err, &cfgErr) {
		return ExitErrorConfig
	}
	return ExitErrorGeneric
}
