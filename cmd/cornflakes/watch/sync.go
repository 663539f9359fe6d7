package watch

import (
	"context"
	"log/slog"
	"sync"

	"github.com/atlanticdynamic/cornflakes/internal/config"
	"github.com/atlanticdynamic/cornflakes/internal/editor"
	"github.com/robbyt/go-supervisor/supervisor"
)

var _ supervisor.Runnable = (*settingsSync)(nil)

// settingsProvider is satisfied by cfgfileloader.Runner.
type settingsProvider interface {
	GetConfigChan() <-chan *config.Settings
}

// settingsSync copies each settings version from the provider into the
// workspace, which in turn notifies the orchestrator.
type settingsSync struct {
	ws       *editor.Workspace
	provider settingsProvider
	logger   *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
}

func newSettingsSync(ws *editor.Workspace, provider settingsProvider, handler slog.Handler) *settingsSync {
	return &settingsSync{
		ws:       ws,
		provider: provider,
		logger:   slog.New(handler).WithGroup("watch.settingsSync"),
	}
}

func (s *settingsSync) String() string {
	return "watch.settingsSync"
}

func (s *settingsSync) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	s.mu.Lock()
	s.cancel = cancel
	s.mu.Unlock()
	defer cancel()

	ch := s.provider.GetConfigChan()
	for {
		select {
		case <-ctx.Done():
			return nil
		case settings, ok := <-ch:
			if !ok {
				return nil
			}
			s.apply(settings)
		}
	}
}

func (s *settingsSync) apply(settings *config.Settings) {
	if settings == nil || s.ws.Configuration().Equals(settings) {
		s.logger.Debug("Settings unchanged")
		return
	}
	s.logger.Info("Applying new settings",
		"executable", settings.Linter.ExecutablePath,
		"run", settings.Linter.Run,
	)
	s.ws.SetConfiguration(settings)
}

func (s *settingsSync) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
}
