// Package process runs the external linter: the document text goes to its
// standard input and its combined output comes back as lines.
package process

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"github.com/atlanticdynamic/cornflakes/internal/lint"
)

// DefaultArgs asks for verbose output and source on standard input.
var DefaultArgs = []string{"-v", "-"}

// waitDelay bounds how long Wait keeps reading output after the process was
// killed, in case a grandchild still holds the pipe open.
const waitDelay = 500 * time.Millisecond

// Result is the outcome of one linter invocation.
type Result struct {
	Lines     []string
	ExitCode  int
	Truncated bool
	Duration  time.Duration
}

// Runner invokes one linter executable.
type Runner struct {
	executable     string
	args           []string
	dir            string
	env            []string
	timeout        time.Duration
	maxOutputBytes int
	logger         *slog.Logger
}

// NewRunner creates a Runner for executable.
func NewRunner(executable string, opts ...Option) *Runner {
	r := &Runner{
		executable: executable,
		args:       DefaultArgs,
		logger:     slog.Default().WithGroup("process.Runner"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// String returns the command line without the document text.
func (r *Runner) String() string {
	return strings.Join(append([]string{r.executable}, r.args...), " ")
}

// Run feeds text to the linter and returns its combined output. A non-zero
// exit status is not an error; only a failure to start the process is,
// plus ErrTimeout when a timeout is configured and exceeded.
func (r *Runner) Run(ctx context.Context, text string) (*Result, error) {
	if r.executable == "" {
		return nil, ErrNoExecutable
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, r.executable, r.args...)
	cmd.Dir = r.dir
	if r.env != nil {
		cmd.Env = r.env
	}
	cmd.Stdin = strings.NewReader(text)
	cmd.WaitDelay = waitDelay

	// The same writer for both streams makes exec share one pipe, which
	// keeps stdout and stderr bytes in arrival order.
	out := newCollector(r.maxOutputBytes)
	cmd.Stdout = out
	cmd.Stderr = out

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return nil, classifyStartError(r.executable, err)
	}

	waitErr := cmd.Wait()
	duration := time.Since(start)

	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) && r.timeout > 0 {
			r.logger.Warn("Linter timed out", "executable", r.executable, "timeout", r.timeout)
			return nil, ErrTimeout
		}
		return nil, ctxErr
	}

	exitCode := 0
	if waitErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(waitErr, &exitErr) {
			return nil, &LaunchError{Executable: r.executable, Cause: waitErr}
		}
		exitCode = exitErr.ExitCode()
	}

	if out.Truncated() {
		r.logger.Warn("Linter output truncated", "executable", r.executable, "max_bytes", r.maxOutputBytes)
	}

	r.logger.Debug("Linter finished",
		"executable", r.executable,
		"exit_code", exitCode,
		"duration", duration,
	)

	return &Result{
		Lines:     lint.SplitLines(out.String()),
		ExitCode:  exitCode,
		Truncated: out.Truncated(),
		Duration:  duration,
	}, nil
}

// classifyStartError separates a missing executable from other launch failures.
func classifyStartError(executable string, err error) error {
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOENT) {
		return &LaunchError{Executable: executable, Cause: errors.Join(ErrExecutableNotFound, err)}
	}
	return &LaunchError{Executable: executable, Cause: err}
}

// IsExecutableNotFound reports whether err means the linter binary is missing.
func IsExecutableNotFound(err error) bool {
	return errors.Is(err, ErrExecutableNotFound)
}
