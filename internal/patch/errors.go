package patch

import (
	"errors"
	"fmt"
)

// ErrInvalidDescriptor is returned when patching is attempted without a current network.
var ErrInvalidDescriptor = errors.New("no current network")

// FileError describes a failure on a single managed file.
type FileError struct {
	Path  string
	Op    string
	Cause error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Cause)
}

func (e *FileError) Unwrap() error {
	return e.Cause
}

// IsFileError reports whether err is a FileError.
func IsFileError(err error) bool {
	var fileErr *FileError
	return errors.As(err, &fileErr)
}
