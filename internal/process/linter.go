package process

import (
	"context"
	"log/slog"

	"github.com/atlanticdynamic/cornflakes/internal/config"
)

// Linter runs the configured linter over one document's text and returns
// its output lines.
type Linter interface {
	Lint(ctx context.Context, cfg config.RunConfig, text string, dir string) ([]string, error)
}

// ExecLinter builds a fresh Runner for every call from the run configuration.
type ExecLinter struct {
	logger *slog.Logger
	extra  []Option
}

var _ Linter = (*ExecLinter)(nil)

// NewLinter creates an ExecLinter. The options are applied to each Runner
// after the ones derived from the run configuration.
func NewLinter(logger *slog.Logger, opts ...Option) *ExecLinter {
	if logger == nil {
		logger = slog.Default().WithGroup("process.Runner")
	}
	return &ExecLinter{logger: logger, extra: opts}
}

func (l *ExecLinter) Lint(ctx context.Context, cfg config.RunConfig, text string, dir string) ([]string, error) {
	opts := []Option{
		WithLogger(l.logger),
		WithDir(dir),
		WithTimeout(cfg.Timeout),
		WithMaxOutputBytes(cfg.MaxOutputBytes),
	}
	opts = append(opts, l.extra...)

	res, err := NewRunner(cfg.Executable, opts...).Run(ctx, text)
	if err != nil {
		return nil, err
	}
	return res.Lines, nil
}
