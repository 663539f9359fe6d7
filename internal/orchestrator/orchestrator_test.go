package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/atlanticdynamic/cornflakes/internal/config"
	"github.com/atlanticdynamic/cornflakes/internal/delayer"
	"github.com/atlanticdynamic/cornflakes/internal/editor"
	"github.com/atlanticdynamic/cornflakes/internal/finitestate"
	"github.com/atlanticdynamic/cornflakes/internal/lint"
	"github.com/atlanticdynamic/cornflakes/internal/process"
	"github.com/atlanticdynamic/cornflakes/internal/trigger"
	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	waitFor = 2 * time.Second
	tick    = 5 * time.Millisecond
)

type lintCall struct {
	executable string
	text       string
	dir        string
}

// fakeLinter records calls and answers through fn. Texts are "<doc> <version>"
// so in-flight runs can be counted per document.
type fakeLinter struct {
	mu          sync.Mutex
	calls       []lintCall
	inFlight    map[string]int
	maxInFlight map[string]int
	fn          func(ctx context.Context, cfg config.RunConfig, text string) ([]string, error)
}

func newFakeLinter(fn func(ctx context.Context, cfg config.RunConfig, text string) ([]string, error)) *fakeLinter {
	if fn == nil {
		fn = func(context.Context, config.RunConfig, string) ([]string, error) {
			return flake8Output("stdin:1:1: F401 'os' imported but unused"), nil
		}
	}
	return &fakeLinter{
		inFlight:    make(map[string]int),
		maxInFlight: make(map[string]int),
		fn:          fn,
	}
}

func (f *fakeLinter) Lint(ctx context.Context, cfg config.RunConfig, text string, dir string) ([]string, error) {
	key, _, _ := strings.Cut(text, " ")

	f.mu.Lock()
	f.calls = append(f.calls, lintCall{executable: cfg.Executable, text: text, dir: dir})
	f.inFlight[key]++
	if f.inFlight[key] > f.maxInFlight[key] {
		f.maxInFlight[key] = f.inFlight[key]
	}
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.inFlight[key]--
		f.mu.Unlock()
	}()

	return f.fn(ctx, cfg, text)
}

func (f *fakeLinter) getCalls() []lintCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]lintCall(nil), f.calls...)
}

func (f *fakeLinter) peak(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.maxInFlight[key]
}

// flake8Output appends a summary line counting the findings.
func flake8Output(findings ...string) []string {
	return append(findings, fmt.Sprintf("Found a total of %d violations and reported %d", len(findings), len(findings)))
}

type publishEvent struct {
	uri   string
	diags []lint.Diagnostic
	clear bool
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishEvent
}

func (p *recordingPublisher) Publish(uri string, diags []lint.Diagnostic) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishEvent{uri: uri, diags: diags})
}

func (p *recordingPublisher) Clear(uri string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishEvent{uri: uri, clear: true})
}

func (p *recordingPublisher) get() []publishEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]publishEvent(nil), p.events...)
}

func settingsWith(run, executable string) *config.Settings {
	s := config.NewDefault()
	s.Linter.Run = run
	s.Linter.ExecutablePath = executable
	return s
}

func pyDoc(name, text string) editor.TextDocument {
	return editor.NewTextDocument("/work/"+name, editor.LanguagePython, text)
}

func debugHandler() slog.Handler {
	return slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug})
}

type fixture struct {
	ws     *editor.Workspace
	orch   *Orchestrator
	linter *fakeLinter
	pub    *recordingPublisher
}

func newFixture(t *testing.T, settings *config.Settings, linter *fakeLinter) *fixture {
	t.Helper()
	if linter == nil {
		linter = newFakeLinter(nil)
	}
	ws := editor.NewWorkspace("/work", settings)
	pub := &recordingPublisher{}
	orch, err := New(ws,
		WithLinter(linter),
		WithPublisher(pub),
		WithLogHandler(debugHandler()),
	)
	require.NoError(t, err)
	t.Cleanup(orch.Dispose)
	return &fixture{ws: ws, orch: orch, linter: linter, pub: pub}
}

func TestNew_RequiresHost(t *testing.T) {
	_, err := New(nil)
	require.ErrorIs(t, err, ErrNoHost)
}

func TestActivate_LintsOpenDocuments(t *testing.T) {
	f := newFixture(t, settingsWith(trigger.OnSaveValue, "flake8"), nil)
	a := pyDoc("a.py", "a v1")
	b := pyDoc("b.py", "b v1")
	f.ws.Open(a)
	f.ws.Open(b)

	f.orch.Activate()

	assert.Eventually(t, func() bool { return len(f.orch.URIs()) == 2 }, waitFor, tick)

	diags, ok := f.orch.Diagnostics(a.URI())
	require.True(t, ok)
	require.Len(t, diags, 1)
	assert.Equal(t, "F401", diags[0].Code)
	assert.Equal(t, 0, diags[0].Line())
	assert.Equal(t, lint.SeverityInformation, diags[0].Severity)
	assert.Equal(t, lint.Source, diags[0].Source)

	for _, c := range f.linter.getCalls() {
		assert.Equal(t, "flake8", c.executable)
		assert.Equal(t, "/work", c.dir)
	}
}

func TestTriggerLint_Ignored(t *testing.T) {
	t.Run("language mismatch", func(t *testing.T) {
		f := newFixture(t, nil, nil)
		f.orch.Activate()
		doc := editor.NewTextDocument("/work/README.md", editor.LanguagePlaintext, "text")
		assert.Nil(t, f.orch.OnDocumentOpened(doc))
	})

	t.Run("off", func(t *testing.T) {
		f := newFixture(t, settingsWith(trigger.OffValue, "flake8"), nil)
		f.orch.Activate()
		assert.Equal(t, trigger.Off, f.orch.Trigger())
		assert.Nil(t, f.orch.OnDocumentOpened(pyDoc("a.py", "a v1")))
		assert.Nil(t, f.orch.OnDocumentSaved(pyDoc("a.py", "a v1")))
	})

	t.Run("unrecognized run value", func(t *testing.T) {
		f := newFixture(t, settingsWith("always", "flake8"), nil)
		f.orch.Activate()
		assert.Nil(t, f.orch.OnDocumentChanged(pyDoc("a.py", "a v1")))
	})

	t.Run("not active", func(t *testing.T) {
		f := newFixture(t, nil, nil)
		assert.Nil(t, f.orch.OnDocumentOpened(pyDoc("a.py", "a v1")))
	})

	t.Run("pinned language", func(t *testing.T) {
		ws := editor.NewWorkspace("", nil)
		orch, err := New(ws, WithLinter(newFakeLinter(nil)), WithLanguageID("cython"))
		require.NoError(t, err)
		orch.Activate()
		defer orch.Dispose()

		assert.Nil(t, orch.OnDocumentOpened(pyDoc("a.py", "a v1")))
		assert.NotNil(t, orch.OnDocumentOpened(editor.NewTextDocument("/work/a.pyx", "cython", "a v1")))
	})
}

func TestOnSave_Wiring(t *testing.T) {
	f := newFixture(t, settingsWith(trigger.OnSaveValue, "flake8"), nil)
	f.orch.Activate()

	doc := pyDoc("a.py", "a v1")
	f.ws.Open(doc)
	assert.Eventually(t, func() bool { return len(f.linter.getCalls()) == 1 }, waitFor, tick)

	f.ws.Change(doc.WithText("a v2"))
	time.Sleep(50 * time.Millisecond)
	assert.Len(t, f.linter.getCalls(), 1, "changes are ignored when linting on save")

	f.ws.Save(doc.WithText("a v2"))
	assert.Eventually(t, func() bool { return len(f.linter.getCalls()) == 2 }, waitFor, tick)
	assert.Equal(t, "a v2", f.linter.getCalls()[1].text)
}

func TestOnType_DebouncesBurst(t *testing.T) {
	f := newFixture(t, settingsWith(trigger.OnTypeValue, "flake8"), nil)
	f.orch.Activate()

	doc := pyDoc("a.py", "a v0")
	for i := 1; i < 5; i++ {
		f.ws.Change(doc.WithText(fmt.Sprintf("a v%d", i)))
	}
	last := f.orch.OnDocumentChanged(doc.WithText("a v5"))
	require.NotNil(t, last)
	assert.Equal(t, delayer.StateScheduled, f.orch.DocumentState(doc.URI()))

	ctx, cancel := context.WithTimeout(context.Background(), waitFor)
	defer cancel()
	require.NoError(t, last.Wait(ctx))

	calls := f.linter.getCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "a v5", calls[0].text)
	assert.Eventually(t, func() bool {
		return f.orch.DocumentState(doc.URI()) == delayer.StateIdle
	}, waitFor, tick)
}

func TestSingleFlightPerDocument(t *testing.T) {
	release := make(chan struct{})
	started := make(chan string, 10)
	linter := newFakeLinter(func(ctx context.Context, _ config.RunConfig, text string) ([]string, error) {
		started <- text
		select {
		case <-release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		return flake8Output(), nil
	})
	f := newFixture(t, settingsWith(trigger.OnSaveValue, "flake8"), linter)
	f.orch.Activate()

	doc := pyDoc("a.py", "a v1")
	other := pyDoc("b.py", "b v1")

	f.orch.OnDocumentSaved(doc)
	assert.Equal(t, "a v1", <-started)
	assert.Equal(t, delayer.StateRunning, f.orch.DocumentState(doc.URI()))

	f.orch.OnDocumentSaved(other)
	assert.Equal(t, "b v1", <-started, "other documents run independently")

	f.orch.OnDocumentSaved(doc.WithText("a v2"))
	last := f.orch.OnDocumentSaved(doc.WithText("a v3"))

	close(release)
	ctx, cancel := context.WithTimeout(context.Background(), waitFor)
	defer cancel()
	require.NoError(t, last.Wait(ctx))

	var texts []string
	for _, c := range f.linter.getCalls() {
		if strings.HasPrefix(c.text, "a ") {
			texts = append(texts, c.text)
		}
	}
	assert.Equal(t, []string{"a v1", "a v3"}, texts)
	assert.Equal(t, 1, f.linter.peak("a"))
}

func TestClose_DiscardsInFlightResult(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{}, 1)
	linter := newFakeLinter(func(context.Context, config.RunConfig, string) ([]string, error) {
		started <- struct{}{}
		<-release
		return flake8Output("stdin:1:1: F401 unused"), nil
	})
	f := newFixture(t, settingsWith(trigger.OnSaveValue, "flake8"), linter)
	f.orch.Activate()

	doc := pyDoc("a.py", "a v1")
	fut := f.orch.OnDocumentOpened(doc)
	<-started

	f.orch.OnDocumentClosed(doc)
	close(release)

	ctx, cancel := context.WithTimeout(context.Background(), waitFor)
	defer cancel()
	require.ErrorIs(t, fut.Wait(ctx), ErrStaleDocument)

	_, ok := f.orch.Diagnostics(doc.URI())
	assert.False(t, ok)
	assert.Empty(t, f.orch.URIs())
	_, ok = f.orch.LastReport(doc.URI())
	assert.False(t, ok)

	events := f.pub.get()
	require.Len(t, events, 1)
	assert.True(t, events[0].clear)
}

func TestReopen_WaitsForStaleRun(t *testing.T) {
	release := make(chan struct{})
	started := make(chan string, 4)
	linter := newFakeLinter(func(_ context.Context, _ config.RunConfig, text string) ([]string, error) {
		started <- text
		if text == "a v1" {
			<-release
		}
		return flake8Output(), nil
	})
	f := newFixture(t, settingsWith(trigger.OnSaveValue, "flake8"), linter)
	f.orch.Activate()

	doc := pyDoc("a.py", "a v1")
	stale := f.orch.OnDocumentOpened(doc)
	assert.Equal(t, "a v1", <-started)

	f.orch.OnDocumentClosed(doc)
	fresh := f.orch.OnDocumentOpened(doc.WithText("a v2"))

	select {
	case text := <-started:
		t.Fatalf("run %q started while the stale run was in flight", text)
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	ctx, cancel := context.WithTimeout(context.Background(), waitFor)
	defer cancel()
	require.ErrorIs(t, stale.Wait(ctx), ErrStaleDocument)
	require.NoError(t, fresh.Wait(ctx))

	_, ok := f.orch.Diagnostics(doc.URI())
	assert.True(t, ok)
	assert.Equal(t, 1, f.linter.peak("a"))
}

func TestConfigurationChange_DropsPendingAndRelints(t *testing.T) {
	f := newFixture(t, settingsWith(trigger.OnTypeValue, "flake8"), nil)
	doc := pyDoc("a.py", "a v1")
	f.ws.Open(doc)
	f.orch.Activate()

	pending := f.orch.OnDocumentChanged(doc)
	require.NotNil(t, pending)
	assert.Equal(t, delayer.StateScheduled, f.orch.DocumentState(doc.URI()))

	f.ws.SetConfiguration(settingsWith(trigger.OnTypeValue, "ruff"))
	assert.ErrorIs(t, pending.Err(), delayer.ErrCanceled)

	assert.Eventually(t, func() bool { return len(f.linter.getCalls()) == 1 }, waitFor, tick)
	time.Sleep(300 * time.Millisecond)

	calls := f.linter.getCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "ruff", calls[0].executable)
}

func TestConfigurationChange_RewiresTrigger(t *testing.T) {
	f := newFixture(t, settingsWith(trigger.OnSaveValue, "flake8"), nil)
	f.orch.Activate()
	doc := pyDoc("a.py", "a v1")

	f.ws.SetConfiguration(settingsWith(trigger.OnTypeValue, "flake8"))
	assert.Equal(t, trigger.OnType, f.orch.Trigger())

	f.ws.Save(doc)
	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, f.linter.getCalls(), "saves are ignored when linting on type")

	f.ws.Change(doc.WithText("a v2"))
	assert.Eventually(t, func() bool { return len(f.linter.getCalls()) == 1 }, waitFor, tick)

	f.ws.SetConfiguration(settingsWith(trigger.OffValue, "flake8"))
	f.ws.Change(doc.WithText("a v3"))
	f.ws.Save(doc.WithText("a v3"))
	time.Sleep(350 * time.Millisecond)
	assert.Len(t, f.linter.getCalls(), 1)
}

func TestExecutableNotFound_DisablesAllDocuments(t *testing.T) {
	linter := newFakeLinter(func(_ context.Context, cfg config.RunConfig, _ string) ([]string, error) {
		if cfg.Executable == "missing-flake8" {
			return nil, &process.LaunchError{
				Executable: cfg.Executable,
				Cause:      errors.Join(process.ErrExecutableNotFound, errors.New("exec: not found")),
			}
		}
		return flake8Output("stdin:2:1: E302 expected 2 blank lines"), nil
	})
	f := newFixture(t, settingsWith(trigger.OnSaveValue, "missing-flake8"), linter)
	a := pyDoc("a.py", "a v1")
	b := pyDoc("b.py", "b v1")
	f.ws.Open(a)
	f.ws.Open(b)

	f.orch.Activate()
	assert.Eventually(t, f.orch.Disabled, waitFor, tick)
	assert.Eventually(t, func() bool {
		return f.orch.DocumentState(a.URI()) == StateDisabled && len(f.ws.Messages()) == 1
	}, waitFor, tick)

	msg := f.ws.Messages()[0]
	assert.Contains(t, msg, "The executable was not found")
	assert.Contains(t, msg, "'cornflakes.executablePath'")

	assert.Nil(t, f.orch.OnDocumentSaved(b), "lint attempts are suppressed")
	assert.Equal(t, StateDisabled, f.orch.DocumentState(b.URI()))

	f.ws.SetConfiguration(settingsWith(trigger.OnTypeValue, "missing-flake8"))
	assert.True(t, f.orch.Disabled(), "same executable stays disabled")
	assert.Len(t, f.ws.Messages(), 1)

	f.ws.SetConfiguration(settingsWith(trigger.OnSaveValue, "flake8"))
	assert.False(t, f.orch.Disabled())
	assert.Eventually(t, func() bool { return len(f.orch.URIs()) == 2 }, waitFor, tick)
	assert.Len(t, f.ws.Messages(), 1)
}

func TestExecutableNotFound_FromPreviousConfigurationIgnored(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	linter := newFakeLinter(func(_ context.Context, cfg config.RunConfig, _ string) ([]string, error) {
		if cfg.Executable == "old-missing" {
			once.Do(func() { close(started) })
			<-release
			return nil, &process.LaunchError{
				Executable: cfg.Executable,
				Cause:      errors.Join(process.ErrExecutableNotFound, errors.New("exec: not found")),
			}
		}
		return flake8Output(), nil
	})
	f := newFixture(t, settingsWith(trigger.OnSaveValue, "old-missing"), linter)
	f.orch.Activate()

	doc := pyDoc("a.py", "a v1")
	stale := f.orch.OnDocumentSaved(doc)
	require.NotNil(t, stale)
	select {
	case <-started:
	case <-time.After(waitFor):
		t.Fatal("lint under the old executable never started")
	}

	f.ws.SetConfiguration(settingsWith(trigger.OnSaveValue, "good-flake8"))
	close(release)

	ctx, cancel := context.WithTimeout(context.Background(), waitFor)
	defer cancel()
	require.Error(t, stale.Wait(ctx))

	assert.False(t, f.orch.Disabled(), "new executable stays enabled")
	assert.Empty(t, f.ws.Messages())

	next := f.orch.OnDocumentSaved(doc)
	require.NotNil(t, next, "linting under the new executable is not suppressed")
	require.NoError(t, next.Wait(ctx))
	assert.Equal(t, "good-flake8", f.linter.getCalls()[len(f.linter.getCalls())-1].executable)
}

func TestLaunchError_NotifiesWithoutDisabling(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "with reason",
			err:  &process.LaunchError{Executable: "flake8", Cause: errors.New("fork/exec flake8: permission denied")},
			want: "fork/exec flake8: permission denied",
		},
		{
			name: "unknown reason",
			err:  &process.LaunchError{Executable: "flake8"},
			want: "Failed to run executable using path: flake8. Reason is unknown.",
		},
		{
			name: "timeout",
			err:  process.ErrTimeout,
			want: "Linting /work/a.py timed out after 0s",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			linter := newFakeLinter(func(context.Context, config.RunConfig, string) ([]string, error) {
				return nil, tc.err
			})
			f := newFixture(t, settingsWith(trigger.OnSaveValue, "flake8"), linter)
			f.orch.Activate()

			doc := pyDoc("a.py", "a v1")
			ctx, cancel := context.WithTimeout(context.Background(), waitFor)
			defer cancel()
			require.Error(t, f.orch.OnDocumentSaved(doc).Wait(ctx))

			assert.Equal(t, []string{tc.want}, f.ws.Messages())
			assert.False(t, f.orch.Disabled())

			require.Error(t, f.orch.OnDocumentSaved(doc).Wait(ctx), "retried on the next trigger")
			assert.Len(t, f.ws.Messages(), 2)

			report, ok := f.orch.LastReport(doc.URI())
			require.True(t, ok)
			assert.Error(t, report.Err)
		})
	}
}

func TestLint_ParsesAndDedupes(t *testing.T) {
	linter := newFakeLinter(func(context.Context, config.RunConfig, string) ([]string, error) {
		return []string{
			"flake8.checker  ProcessingState  checking stdin",
			"stdin:4:1: E501 line too long (99 > 79 characters)",
			"stdin:4:80: E501 line too long (99 > 79 characters)",
			"/work/other.py:2:1: F401 unused",
			"/work/a.py:9:3: W605 invalid escape sequence '\\d'",
			"Found a total of 4 violations and reported 4",
		}, nil
	})
	f := newFixture(t, settingsWith(trigger.OnSaveValue, "flake8"), linter)
	f.orch.Activate()

	doc := pyDoc("a.py", "a v1")
	ctx, cancel := context.WithTimeout(context.Background(), waitFor)
	defer cancel()
	require.NoError(t, f.orch.OnDocumentSaved(doc).Wait(ctx))

	diags, ok := f.orch.Diagnostics(doc.URI())
	require.True(t, ok)
	require.Len(t, diags, 2)
	assert.Equal(t, 3, diags[0].Line())
	assert.Equal(t, "E501", diags[0].Code)
	assert.Equal(t, 8, diags[1].Line())
	assert.Equal(t, "W605", diags[1].Code)

	report, ok := f.orch.LastReport(doc.URI())
	require.True(t, ok)
	assert.NotEqual(t, uuid.Nil, report.ID)
	assert.Equal(t, doc.URI(), report.URI)
	assert.Equal(t, "flake8", report.Executable)
	assert.Equal(t, 4, report.Violations)
	assert.Len(t, report.Diagnostics, 2)
	assert.NoError(t, report.Err)
	assert.NotEmpty(t, report.Logs)

	events := f.pub.get()
	require.Len(t, events, 1)
	assert.Equal(t, doc.URI(), events[0].uri)
	assert.Len(t, events[0].diags, 2)
}

func TestLint_ZeroSummaryPublishesEmptySet(t *testing.T) {
	outputs := [][]string{
		flake8Output("stdin:1:1: F401 unused"),
		{"stdin:1:1: F401 unused", "Found a total of 0 violations and reported 0"},
	}
	var mu sync.Mutex
	linter := newFakeLinter(func(context.Context, config.RunConfig, string) ([]string, error) {
		mu.Lock()
		defer mu.Unlock()
		out := outputs[0]
		outputs = outputs[1:]
		return out, nil
	})
	f := newFixture(t, settingsWith(trigger.OnSaveValue, "flake8"), linter)
	f.orch.Activate()

	doc := pyDoc("a.py", "a v1")
	ctx, cancel := context.WithTimeout(context.Background(), waitFor)
	defer cancel()
	require.NoError(t, f.orch.OnDocumentSaved(doc).Wait(ctx))
	diags, _ := f.orch.Diagnostics(doc.URI())
	require.Len(t, diags, 1)

	require.NoError(t, f.orch.OnDocumentSaved(doc).Wait(ctx))
	diags, ok := f.orch.Diagnostics(doc.URI())
	require.True(t, ok)
	assert.Empty(t, diags, "the set is replaced, not patched")
}

func TestDispose(t *testing.T) {
	f := newFixture(t, settingsWith(trigger.OnSaveValue, "flake8"), nil)
	doc := pyDoc("a.py", "a v1")
	f.ws.Open(doc)
	f.orch.Activate()
	assert.Eventually(t, func() bool { return len(f.orch.URIs()) == 1 }, waitFor, tick)

	f.orch.Dispose()
	f.orch.Dispose()

	assert.Empty(t, f.orch.URIs())
	events := f.pub.get()
	assert.True(t, events[len(events)-1].clear)

	f.ws.Save(doc)
	time.Sleep(50 * time.Millisecond)
	assert.Len(t, f.linter.getCalls(), 1, "no subscriptions remain after dispose")
}

func TestRunnable(t *testing.T) {
	f := newFixture(t, settingsWith(trigger.OnSaveValue, "flake8"), nil)
	doc := pyDoc("a.py", "a v1")
	f.ws.Open(doc)
	assert.Equal(t, "orchestrator.Orchestrator", f.orch.String())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := make(chan error, 1)
	go func() { errCh <- f.orch.Run(ctx) }()

	assert.Eventually(t, f.orch.IsRunning, waitFor, tick)
	assert.Eventually(t, func() bool { return len(f.orch.URIs()) == 1 }, waitFor, tick)

	f.orch.Stop()
	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(waitFor):
		t.Fatal("orchestrator did not stop")
	}
	assert.Equal(t, finitestate.StatusStopped, f.orch.GetState())
	assert.Empty(t, f.orch.URIs())
}

func TestRun_CancelsInFlightLint(t *testing.T) {
	started := make(chan struct{}, 1)
	linter := newFakeLinter(func(ctx context.Context, _ config.RunConfig, _ string) ([]string, error) {
		started <- struct{}{}
		<-ctx.Done()
		return nil, ctx.Err()
	})
	f := newFixture(t, settingsWith(trigger.OnSaveValue, "flake8"), linter)
	f.ws.Open(pyDoc("a.py", "a v1"))

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- f.orch.Run(ctx) }()
	<-started

	cancel()
	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(waitFor):
		t.Fatal("orchestrator did not stop")
	}
	assert.Empty(t, f.ws.Messages(), "cancellation is not reported to the user")
}
