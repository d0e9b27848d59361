package cmd

import (
	"errors"

	"github.com/trly/prefix-sync/internal/config"
)

// Process exit codes, following sysexits.h where one applies.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitUnavailable = 69
	ExitConfig      = 78
)

// ExitError carries the exit code for a failed command.
type ExitError struct {
	Code int
	Err  error
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error for error unwrapping.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// exitCode maps a command error to a process exit code. Configuration load and
// validation errors map to ExitConfig even when a command returns them bare.
func exitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	if config.IsValidationError(err) {
		return ExitConfig
	}
	return ExitFailure
}
