package process

import (
	"log/slog"
	"time"
)

type Option func(*Runner)

// WithLogger sets a custom logger for the Runner instance.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithLogHandler sets a custom log handler for the Runner instance.
func WithLogHandler(handler slog.Handler) Option {
	return func(r *Runner) {
		r.logger = slog.New(handler)
	}
}

// WithDir sets the working directory of the linter process. An empty
// directory inherits the current one.
func WithDir(dir string) Option {
	return func(r *Runner) {
		r.dir = dir
	}
}

// WithArgs replaces the default "-v -" arguments.
func WithArgs(args ...string) Option {
	return func(r *Runner) {
		r.args = args
	}
}

// WithEnv sets the environment of the linter process.
func WithEnv(env []string) Option {
	return func(r *Runner) {
		r.env = env
	}
}

// WithTimeout bounds how long the linter may run. Zero means no limit.
func WithTimeout(timeout time.Duration) Option {
	return func(r *Runner) {
		r.timeout = timeout
	}
}

// WithMaxOutputBytes caps the collected output. Zero or less means no cap.
func WithMaxOutputBytes(n int) Option {
	return func(r *Runner) {
		r.maxOutputBytes = n
	}
}
