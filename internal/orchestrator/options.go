package orchestrator

import (
	"context"
	"log/slog"

	"github.com/atlanticdynamic/cornflakes/internal/process"
)

type Option func(*Orchestrator)

// WithLogger sets a custom logger for the Orchestrator instance.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithLogHandler sets a custom log handler for the Orchestrator instance.
func WithLogHandler(handler slog.Handler) Option {
	return func(o *Orchestrator) {
		o.logger = slog.New(handler)
	}
}

// WithLinter replaces the subprocess linter.
func WithLinter(linter process.Linter) Option {
	return func(o *Orchestrator) {
		o.linter = linter
	}
}

// WithLanguageID pins the target language instead of reading it from the settings.
func WithLanguageID(languageID string) Option {
	return func(o *Orchestrator) {
		o.languageID = languageID
	}
}

// WithPublisher receives every published or cleared diagnostic set.
func WithPublisher(p Publisher) Option {
	return func(o *Orchestrator) {
		o.publisher = p
	}
}

// WithContext sets a custom parent context for the Orchestrator instance.
func WithContext(ctx context.Context) Option {
	return func(o *Orchestrator) {
		o.parentCtx = ctx
	}
}
