package process

import (
	"errors"
	"fmt"
)

var (
	// ErrExecutableNotFound indicates the linter binary does not exist or is not on PATH.
	ErrExecutableNotFound = errors.New("executable not found")

	// ErrTimeout indicates the linter did not exit within the configured timeout.
	ErrTimeout = errors.New("linter timed out")

	// ErrNoExecutable indicates an empty executable path.
	ErrNoExecutable = errors.New("no executable configured")
)

// LaunchError reports a failure to start the linter process.
type LaunchError struct {
	Executable string
	Cause      error
}

func (e *LaunchError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("failed to run executable using path: %s", e.Executable)
	}
	return fmt.Sprintf("failed to run executable using path: %s: %v", e.Executable, e.Cause)
}

func (e *LaunchError) Unwrap() error {
	return e.Cause
}
