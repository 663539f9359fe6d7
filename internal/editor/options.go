package editor

import (
	"log/slog"
)

type Option func(*Workspace)

// WithLogger sets a custom logger for the Workspace instance.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Workspace) {
		w.logger = logger
	}
}

// WithLogHandler sets a custom log handler for the Workspace instance.
func WithLogHandler(handler slog.Handler) Option {
	return func(w *Workspace) {
		w.logger = slog.New(handler)
	}
}

// WithMessageHandler receives every message passed to ShowMessage.
func WithMessageHandler(fn func(string)) Option {
	return func(w *Workspace) {
		w.onMessage = fn
	}
}
