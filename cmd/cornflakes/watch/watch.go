// Package watch runs cornflakes as a long-lived process: the settings file
// loader, the filesystem watcher and the lint orchestrator run under one
// supervisor, and diagnostics are printed as files change.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/atlanticdynamic/cornflakes/internal/config"
	"github.com/atlanticdynamic/cornflakes/internal/editor"
	"github.com/atlanticdynamic/cornflakes/internal/editor/fswatch"
	"github.com/atlanticdynamic/cornflakes/internal/orchestrator"
	"github.com/atlanticdynamic/cornflakes/internal/runnables/cfgfileloader"
	"github.com/robbyt/go-supervisor/supervisor"
)

// ErrNoRoots is returned when there is nothing to watch.
var ErrNoRoots = errors.New("at least one path to watch is required")

// Options configures Run.
type Options struct {
	// ConfigPath is the settings file; reloaded on SIGHUP. Empty uses Settings.
	ConfigPath string
	// Settings seeds the workspace before the loader has booted.
	Settings *config.Settings

	Roots         []string
	Interval      time.Duration
	IncludeHidden bool

	// Out receives diagnostics; Messages receives user-facing messages.
	Out      io.Writer
	Messages io.Writer
}

// Run blocks until ctx is canceled or the process receives a shutdown signal.
func Run(ctx context.Context, logger *slog.Logger, opts Options) error {
	if len(opts.Roots) == 0 {
		return ErrNoRoots
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Messages == nil {
		opts.Messages = os.Stderr
	}
	logHandler := logger.Handler()

	root, err := workspaceRoot(opts.Roots[0])
	if err != nil {
		return err
	}

	ws := editor.NewWorkspace(root, opts.Settings,
		editor.WithLogHandler(logHandler),
		editor.WithMessageHandler(func(msg string) {
			fmt.Fprintln(opts.Messages, msg)
		}),
	)

	loader, err := cfgfileloader.NewRunner(
		opts.ConfigPath,
		cfgfileloader.WithContext(ctx),
		cfgfileloader.WithFallback(opts.Settings),
		cfgfileloader.WithLogHandler(logHandler),
	)
	if err != nil {
		return fmt.Errorf("failed to create config file loader: %w", err)
	}

	orch, err := orchestrator.New(ws,
		orchestrator.WithContext(ctx),
		orchestrator.WithLogHandler(logHandler),
		orchestrator.WithPublisher(orchestrator.NewWriterPublisher(opts.Out, relativeLabel(root))),
	)
	if err != nil {
		return fmt.Errorf("failed to create lint orchestrator: %w", err)
	}

	watchOpts := []fswatch.Option{fswatch.WithLogHandler(logHandler)}
	if opts.Interval > 0 {
		watchOpts = append(watchOpts, fswatch.WithInterval(opts.Interval))
	}
	if opts.IncludeHidden {
		watchOpts = append(watchOpts, fswatch.WithIncludeHidden())
	}
	watcher, err := fswatch.New(ws, opts.Roots, watchOpts...)
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	// order matters: settings first, then the orchestrator, then the files
	runnables := []supervisor.Runnable{
		loader,
		newSettingsSync(ws, loader, logHandler),
		orch,
		watcher,
	}

	super, err := supervisor.New(
		supervisor.WithContext(ctx),
		supervisor.WithLogHandler(logHandler),
		supervisor.WithRunnables(runnables...),
	)
	if err != nil {
		return fmt.Errorf("failed to create supervisor: %w", err)
	}
	if err := super.Run(); err != nil {
		return fmt.Errorf("failed to run watcher: %w", err)
	}

	logger.Info("Watch shutdown complete")
	return nil
}

// workspaceRoot is the first root when it is a directory, otherwise its parent.
func workspaceRoot(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return filepath.Dir(abs), nil
	}
	return abs, nil
}

// relativeLabel prints file URIs relative to root when they are below it.
func relativeLabel(root string) func(string) string {
	return func(uri string) string {
		u, err := url.Parse(uri)
		if err != nil || u.Scheme != "file" {
			return uri
		}
		path := filepath.FromSlash(u.Path)
		if rel, err := filepath.Rel(root, path); err == nil && filepath.IsLocal(rel) {
			return rel
		}
		return path
	}
}
