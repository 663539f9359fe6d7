package orchestrator

import (
	"errors"
	"fmt"

	"github.com/atlanticdynamic/cornflakes/internal/config"
	"github.com/atlanticdynamic/cornflakes/internal/process"
)

// ErrStaleDocument marks a result that arrived after its document closed or reopened.
var ErrStaleDocument = errors.New("document closed before lint finished")

// ErrNoHost is returned by New when no host is given.
var ErrNoHost = errors.New("host is required")

// notFoundMessage is shown once when the linter executable is missing.
func notFoundMessage(fileName string) string {
	return fmt.Sprintf(
		"Cannot lint %s. The executable was not found. Use the '%s.executablePath' setting to configure the location of the executable",
		fileName, config.Section,
	)
}

// launchFailureMessage describes any other failure to run the linter.
func launchFailureMessage(executable string, err error) string {
	cause := err
	var launchErr *process.LaunchError
	if errors.As(err, &launchErr) {
		cause = launchErr.Cause
	}
	if cause == nil || cause.Error() == "" {
		return fmt.Sprintf("Failed to run executable using path: %s. Reason is unknown.", executable)
	}
	return cause.Error()
}
