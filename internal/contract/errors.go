package contract

import (
	"errors"
	"fmt"
)

// Exit codes reported by the CLI. Config and diff-resolution failures get
// distinguished codes so CI wrappers can tell them apart from policy failures.
const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitConfig   = 2
	ExitNotFound = 3
)

// NotFoundError indicates that a changeset reference or diff input could not
// be resolved. It aborts the run before any scoring happens.
type NotFoundError struct {
	Ref string // The offending ref pair or diff path
	Err error
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("changeset %q cannot be resolved: %v", e.Ref, e.Err)
	}
	return fmt.Sprintf("changeset %q cannot be resolved", e.Ref)
}

// Unwrap exposes the underlying cause.
func (e *NotFoundError) Unwrap() error { return e.Err }

// ConfigError indicates invalid or missing configuration. All configuration
// is validated before any changeset is processed, so a ConfigError means no
// partial report was produced.
type ConfigError struct {
	Key    string // The offending configuration key or flag
	Reason string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration %q: %s", e.Key, e.Reason)
}

// FormatError indicates a rendering failure. Given valid inputs this should
// be unreachable; it exists so output-layer failures are still identifiable.
type FormatError struct {
	Err error
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	return fmt.Sprintf("report rendering failed: %v", e.Err)
}

// Unwrap exposes the underlying cause.
func (e *FormatError) Unwrap() error { return e.Err }

// ExitCode maps an error to the process exit code for the CLI entrypoint.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var nfe *NotFoundError
	if errors.As(err, &nfe) {
		return ExitNotFound
	}
	var cfe *ConfigError
	if errors.As(err, &cfe) {
		return ExitConfig
	}
	return ExitFailure
}
