package delayer

import (
	"context"
	"log/slog"
)

type Option func(*Delayer)

// WithLogger sets a custom logger for the Delayer instance.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Delayer) {
		d.logger = logger
	}
}

// WithLogHandler sets a custom log handler for the Delayer instance.
func WithLogHandler(handler slog.Handler) Option {
	return func(d *Delayer) {
		d.logger = slog.New(handler)
	}
}

// WithContext sets the context passed to every task.
func WithContext(ctx context.Context) Option {
	return func(d *Delayer) {
		d.ctx = ctx
	}
}
