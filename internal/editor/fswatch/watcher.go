// Package fswatch drives an editor.Workspace from the filesystem: files that
// appear are opened, files whose content changes are changed then saved, and
// files that disappear are closed.
package fswatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/atlanticdynamic/cornflakes/internal/editor"
	"github.com/atlanticdynamic/cornflakes/internal/finitestate"
	"github.com/minio/highwayhash"
	"github.com/robbyt/go-supervisor/supervisor"
	"github.com/viant/afs"
)

const DefaultInterval = 500 * time.Millisecond

var (
	_ supervisor.Runnable  = (*Watcher)(nil)
	_ supervisor.Stateable = (*Watcher)(nil)
)

// ErrNoRoots is returned when the watcher is given nothing to watch.
var ErrNoRoots = errors.New("no paths to watch")

// hashKey seeds the content fingerprints; it only has to be stable within a process.
var hashKey = []byte("cornflakes-fswatch-content-hash!")

type tracked struct {
	uri  string
	hash uint64
}

// Watcher polls a set of files and directories.
type Watcher struct {
	ws            *editor.Workspace
	roots         []string
	interval      time.Duration
	includeHidden bool
	fs            afs.Service

	logger *slog.Logger
	fsm    finitestate.Machine

	mu    sync.Mutex
	known map[string]tracked

	runCtx    context.Context
	runCancel context.CancelFunc
}

// New creates a Watcher feeding ws. Roots may be files or directories.
func New(ws *editor.Workspace, roots []string, opts ...Option) (*Watcher, error) {
	if len(roots) == 0 {
		return nil, ErrNoRoots
	}

	w := &Watcher{
		ws:       ws,
		interval: DefaultInterval,
		fs:       afs.New(),
		logger:   slog.Default().WithGroup("fswatch.Watcher"),
		known:    make(map[string]tracked),
	}
	for _, root := range roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", root, err)
		}
		w.roots = append(w.roots, abs)
	}

	for _, opt := range opts {
		opt(w)
	}

	machine, err := finitestate.New(w.logger.WithGroup("fsm").Handler())
	if err != nil {
		return nil, fmt.Errorf("failed to create state machine: %w", err)
	}
	w.fsm = machine

	return w, nil
}

func (w *Watcher) String() string {
	return "fswatch.Watcher"
}

// Run scans once, then polls until the context is canceled or Stop is called.
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.fsm.Transition(finitestate.StatusBooting); err != nil {
		return fmt.Errorf("failed to transition to booting state: %w", err)
	}

	w.mu.Lock()
	w.runCtx, w.runCancel = context.WithCancel(ctx)
	runCtx := w.runCtx
	w.mu.Unlock()

	if err := w.Scan(runCtx); err != nil {
		if stateErr := w.fsm.Transition(finitestate.StatusError); stateErr != nil {
			w.logger.Error("Failed to transition to error state", "error", stateErr)
		}
		return fmt.Errorf("initial scan failed: %w", err)
	}

	if err := w.fsm.Transition(finitestate.StatusRunning); err != nil {
		return fmt.Errorf("failed to transition to running state: %w", err)
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-runCtx.Done():
			w.logger.Debug("Watcher shutting down")
			if w.fsm.GetState() != finitestate.StatusStopping {
				if err := w.fsm.Transition(finitestate.StatusStopping); err != nil {
					w.logger.Error("Failed to transition to stopping state", "error", err)
				}
			}
			if err := w.fsm.Transition(finitestate.StatusStopped); err != nil {
				return fmt.Errorf("failed to transition to stopped state: %w", err)
			}
			return nil
		case <-ticker.C:
			if err := w.Scan(runCtx); err != nil && !errors.Is(err, context.Canceled) {
				w.logger.Warn("Scan failed", "error", err)
			}
		}
	}
}

func (w *Watcher) Stop() {
	if !finitestate.Stopping(w.fsm) {
		if err := w.fsm.Transition(finitestate.StatusStopping); err != nil {
			w.logger.Error("Failed to transition to stopping state", "error", err)
		}
	}
	w.mu.Lock()
	cancel := w.runCancel
	w.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (w *Watcher) GetState() string {
	return w.fsm.GetState()
}

func (w *Watcher) GetStateChan(ctx context.Context) <-chan string {
	return w.fsm.GetStateChan(ctx)
}

func (w *Watcher) IsRunning() bool {
	return w.fsm.GetState() == finitestate.StatusRunning
}

// Scan compares the files on disk with the last scan and fires the
// matching workspace events.
func (w *Watcher) Scan(ctx context.Context) error {
	paths, err := w.collect(ctx)
	if err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		seen[path] = struct{}{}
		if err := w.visit(ctx, path); err != nil {
			w.logger.Warn("Failed to read file", "path", path, "error", err)
		}
	}

	w.mu.Lock()
	var gone []tracked
	for path, t := range w.known {
		if _, ok := seen[path]; !ok {
			gone = append(gone, t)
			delete(w.known, path)
		}
	}
	w.mu.Unlock()

	for _, t := range gone {
		w.logger.Debug("File removed", "uri", t.uri)
		w.ws.Close(t.uri)
	}
	return nil
}

func (w *Watcher) visit(ctx context.Context, path string) error {
	data, err := w.fs.DownloadWithURL(ctx, path)
	if err != nil {
		return err
	}
	sum, err := fingerprint(data)
	if err != nil {
		return err
	}

	w.mu.Lock()
	prev, existed := w.known[path]
	changed := existed && prev.hash != sum
	w.mu.Unlock()

	if existed && !changed {
		return nil
	}

	doc, err := editor.LoadDocument(path, data)
	if err != nil {
		return err
	}

	w.mu.Lock()
	w.known[path] = tracked{uri: doc.URI(), hash: sum}
	w.mu.Unlock()

	if !existed {
		w.ws.Open(doc)
		return nil
	}
	w.ws.Change(doc)
	w.ws.Save(doc)
	return nil
}

func (w *Watcher) collect(ctx context.Context) ([]string, error) {
	return collectFiles(ctx, w.fs, w.roots, w.includeHidden)
}

func fingerprint(data []byte) (uint64, error) {
	h, err := highwayhash.New64(hashKey)
	if err != nil {
		return 0, err
	}
	if _, err := h.Write(data); err != nil {
		return 0, err
	}
	return h.Sum64(), nil
}
