package systemd

import (
	"errors"
	"fmt"
	"time"
)

// Error represents an error from systemd operations.
type Error struct {
	Operation string // The operation that failed
	UnitName  string // The name of the unit
	Cause     error  // The underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("systemd %s failed for %s: %v", e.Operation, e.UnitName, e.Cause)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new Error with the given details.
func NewError(operation, unitName string, cause error) *Error {
	return &Error{
		Operation: operation,
		UnitName:  unitName,
		Cause:     cause,
	}
}

// ConnectionError represents an error connecting to systemd.
type ConnectionError struct {
	UserMode bool  // Whether this was a user or system connection attempt
	Cause    error // The underlying error
}

// Error implements the error interface.
func (e *ConnectionError) Error() string {
	mode := "system"
	if e.UserMode {
		mode = "user"
	}
	return fmt.Sprintf("failed to connect to systemd %s bus: %v", mode, e.Cause)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *ConnectionError) Unwrap() error {
	return e.Cause
}

// NewConnectionError creates a new ConnectionError.
func NewConnectionError(userMode bool, cause error) *ConnectionError {
	return &ConnectionError{
		UserMode: userMode,
		Cause:    cause,
	}
}

// ReplyTimeoutError is returned when a job result does not arrive in time.
type ReplyTimeoutError struct {
	UnitName string
	Timeout  time.Duration
}

// Error implements the error interface.
func (e *ReplyTimeoutError) Error() string {
	return fmt.Sprintf("no reply for %s within %s", e.UnitName, e.Timeout)
}

// ErrReplyChannelClosed is returned when a job result channel closes without a value.
var ErrReplyChannelClosed = errors.New("reply channel closed")

// IsConnectionError checks if an error is a ConnectionError.
func IsConnectionError(err error) bool {
	var connErr *ConnectionError
	return errors.As(err, &connErr)
}

// IsError checks if an error is a systemd Error.
func IsError(err error) bool {
	var sdErr *Error
	return errors.As(err, &sdErr)
}

// IsReplyTimeoutError checks if an error is a ReplyTimeoutError.
func IsReplyTimeoutError(err error) bool {
	var timeoutErr *ReplyTimeoutError
	return errors.As(err, &timeoutErr)
}
