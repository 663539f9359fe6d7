package fswatch

import (
	"log/slog"
	"time"
)

type Option func(*Watcher)

// WithLogger sets a custom logger for the Watcher instance.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) {
		w.logger = logger
	}
}

// WithLogHandler sets a custom log handler for the Watcher instance.
func WithLogHandler(handler slog.Handler) Option {
	return func(w *Watcher) {
		w.logger = slog.New(handler)
	}
}

// WithInterval sets the polling interval. Non-positive values are ignored.
func WithInterval(interval time.Duration) Option {
	return func(w *Watcher) {
		if interval > 0 {
			w.interval = interval
		}
	}
}

// WithIncludeHidden also watches files and directories whose name starts with a dot.
func WithIncludeHidden() Option {
	return func(w *Watcher) {
		w.includeHidden = true
	}
}
