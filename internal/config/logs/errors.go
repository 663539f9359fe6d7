package logs

import "errors"

var (
	ErrInvalidLogFormat = errors.New("invalid log format")
	ErrInvalidLogLevel  = errors.New("invalid log level")

	// ErrInvalidLogOutput marks an output that is neither a standard stream
	// nor a file location.
	ErrInvalidLogOutput = errors.New("invalid log output")
)
