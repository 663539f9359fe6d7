package cfgfileloader

import (
	"context"
	"log/slog"

	"github.com/atlanticdynamic/cornflakes/internal/config"
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

// WithContext sets the parent context; subscriber channels close when it ends.
func WithContext(ctx context.Context) Option {
	return func(r *Runner) {
		r.parentCtx = ctx
	}
}

// WithFallback sets the settings published when no file path is configured.
func WithFallback(settings *config.Settings) Option {
	return func(r *Runner) {
		if settings != nil {
			r.fallback = settings.Clone()
		}
	}
}
