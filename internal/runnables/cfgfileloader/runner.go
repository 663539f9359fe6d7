// Package cfgfileloader keeps the cornflakes settings file loaded. The
// settings are read when the runner boots and again on every Reload; each
// new valid version is broadcast to subscribers.
package cfgfileloader

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/atlanticdynamic/cornflakes/internal/config"
	"github.com/atlanticdynamic/cornflakes/internal/finitestate"
	"github.com/robbyt/go-supervisor/supervisor"
)

var (
	_ supervisor.Runnable   = (*Runner)(nil)
	_ supervisor.Reloadable = (*Runner)(nil)
	_ supervisor.Stateable  = (*Runner)(nil)
)

type Runner struct {
	filePath      string
	fallback      *config.Settings
	lastValid     atomic.Pointer[config.Settings]
	reloadCounter atomic.Uint64

	logger *slog.Logger
	fsm    finitestate.Machine

	mu        sync.Mutex
	runCtx    context.Context
	runCancel context.CancelFunc
	parentCtx context.Context

	configSubscribers sync.Map
	subscriberCounter atomic.Uint64
}

// NewRunner creates a Runner for the settings file at filePath. An empty
// path means the defaults are used and never reloaded.
func NewRunner(filePath string, opts ...Option) (*Runner, error) {
	runner := &Runner{
		filePath:  filePath,
		logger:    slog.Default().WithGroup("cfgfileloader.Runner"),
		parentCtx: context.Background(),
		fallback:  config.NewDefault(),
	}

	for _, opt := range opts {
		opt(runner)
	}

	fsm, err := finitestate.New(runner.logger.WithGroup("fsm").Handler())
	if err != nil {
		return nil, fmt.Errorf("failed to create state machine: %w", err)
	}
	runner.fsm = fsm

	return runner, nil
}

func (r *Runner) String() string {
	return "cfgfileloader.Runner"
}

func (r *Runner) Run(ctx context.Context) error {
	r.logger.Debug("Starting Runner")

	if err := r.fsm.Transition(finitestate.StatusBooting); err != nil {
		return fmt.Errorf("failed to transition to booting state: %w", err)
	}

	r.mu.Lock()
	r.runCtx, r.runCancel = context.WithCancel(ctx)
	runCtx := r.runCtx
	r.mu.Unlock()

	if err := r.boot(); err != nil {
		if stateErr := r.fsm.Transition(finitestate.StatusError); stateErr != nil {
			r.logger.Error("Failed to transition to error state", "error", stateErr)
		}
		return fmt.Errorf("failed to initialize configuration: %w", err)
	}

	if err := r.fsm.Transition(finitestate.StatusRunning); err != nil {
		return fmt.Errorf("failed to transition to running state: %w", err)
	}

	select {
	case <-r.parentCtx.Done():
		r.logger.Debug("Parent context canceled")
	case <-runCtx.Done():
		r.logger.Debug("Run context canceled")
	}

	r.logger.Info("Runner shutting down")

	if r.fsm.GetState() != finitestate.StatusStopping {
		if err := r.fsm.Transition(finitestate.StatusStopping); err != nil {
			r.logger.Error("Failed to transition to stopping state", "error", err)
		}
	}

	if err := r.fsm.Transition(finitestate.StatusStopped); err != nil {
		return fmt.Errorf("failed to transition to stopped state: %w", err)
	}

	r.lastValid.Store(nil)
	return nil
}

// boot loads the initial settings. Without a file the fallback is published.
func (r *Runner) boot() error {
	if r.filePath == "" {
		r.logger.Warn("No config path set, using fallback settings")
		r.store(r.fallback.Clone())
		return nil
	}

	settings, err := config.NewConfig(r.filePath)
	if err != nil {
		return err
	}
	r.logger.Info("Settings loaded",
		"path", r.filePath,
		"executable", settings.Linter.ExecutablePath,
		"run", settings.Linter.Run,
	)
	r.store(settings)
	return nil
}

func (r *Runner) Stop() {
	r.logger.Debug("Stopping Runner")
	if !finitestate.Stopping(r.fsm) {
		if err := r.fsm.Transition(finitestate.StatusStopping); err != nil {
			r.logger.Error("Failed to transition to stopping state", "error", err)
		}
	}
	r.mu.Lock()
	cancel := r.runCancel
	r.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Reload reads the settings file again. An invalid file is returned as an
// error and the last valid settings stay in effect; unchanged settings are
// not broadcast.
func (r *Runner) Reload(ctx context.Context) error {
	r.logger.Debug("Starting Reload...")
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.filePath == "" {
		r.logger.Warn("No config path set, skipping reload")
		return nil
	}

	settings, err := config.NewConfig(r.filePath)
	if err != nil {
		r.logger.Error("Failed to reload config, keeping last valid settings", "error", err)
		return fmt.Errorf("reload %s: %w", r.filePath, err)
	}

	if old := r.lastValid.Load(); old != nil && old.Equals(settings) {
		r.logger.Debug("Config unchanged, skipping broadcast")
		return nil
	}

	r.store(settings)
	r.reloadCounter.Add(1)
	r.logger.Info("Settings reloaded",
		"executable", settings.Linter.ExecutablePath,
		"run", settings.Linter.Run,
	)
	return nil
}

func (r *Runner) GetState() string {
	return r.fsm.GetState()
}

func (r *Runner) GetStateChan(ctx context.Context) <-chan string {
	return r.fsm.GetStateChan(ctx)
}

func (r *Runner) IsRunning() bool {
	return r.fsm.GetState() == finitestate.StatusRunning
}

// GetConfig returns the last settings successfully loaded, or nil if none.
func (r *Runner) GetConfig() *config.Settings {
	return r.lastValid.Load().Clone()
}

// ReloadCount is the number of reloads that produced new settings.
func (r *Runner) ReloadCount() uint64 {
	return r.reloadCounter.Load()
}

// GetConfigChan returns a channel that receives the current settings, if
// any, followed by every change. It is closed when the parent context ends.
func (r *Runner) GetConfigChan() <-chan *config.Settings {
	ch := make(chan *config.Settings, 1)

	if current := r.lastValid.Load(); current != nil {
		select {
		case ch <- current.Clone():
		default:
		}
	}

	id := r.subscriberCounter.Add(1)
	r.configSubscribers.Store(id, ch)

	go func() {
		<-r.parentCtx.Done()
		r.configSubscribers.Delete(id)
		close(ch)
	}()

	return ch
}

func (r *Runner) store(settings *config.Settings) {
	r.lastValid.Store(settings)
	r.broadcast(settings)
}

// broadcast sends settings to every subscriber. A subscriber that has not
// drained the previous value misses this one.
func (r *Runner) broadcast(settings *config.Settings) {
	r.configSubscribers.Range(func(key, value any) bool {
		ch, ok := value.(chan *config.Settings)
		if !ok {
			r.logger.Error("Invalid subscriber channel type", "key", key)
			r.configSubscribers.Delete(key)
			return true
		}

		select {
		case ch <- settings.Clone():
			r.logger.Debug("Settings sent to subscriber", "subscriber_id", key)
		default:
			r.logger.Warn("Subscriber channel full, skipping", "subscriber_id", key)
		}
		return true
	})
}
