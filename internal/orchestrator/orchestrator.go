// Package orchestrator connects editor document events to the linter. Each
// open document gets its own delayer so bursts of edits collapse into one
// run and runs for one document never overlap; results are parsed,
// deduplicated and published per document.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"sync"

	"github.com/atlanticdynamic/cornflakes/internal/config"
	"github.com/atlanticdynamic/cornflakes/internal/delayer"
	"github.com/atlanticdynamic/cornflakes/internal/editor"
	"github.com/atlanticdynamic/cornflakes/internal/finitestate"
	"github.com/atlanticdynamic/cornflakes/internal/lint"
	"github.com/atlanticdynamic/cornflakes/internal/process"
	"github.com/atlanticdynamic/cornflakes/internal/trigger"
	"github.com/robbyt/go-supervisor/supervisor"
)

// StateDisabled is reported for every document while the executable is missing.
const StateDisabled = "disabled"

var (
	_ supervisor.Runnable  = (*Orchestrator)(nil)
	_ supervisor.Stateable = (*Orchestrator)(nil)
)

// entry is the per-document delayer. The epoch changes whenever the
// document is closed and reopened, which is how stale results are spotted.
type entry struct {
	epoch   uint64
	delayer *delayer.Delayer
}

type Orchestrator struct {
	host       editor.Host
	linter     process.Linter
	publisher  Publisher
	languageID string

	logger *slog.Logger
	fsm    finitestate.Machine

	parentCtx context.Context
	runCtx    context.Context
	runCancel context.CancelFunc

	mu          sync.Mutex
	active      bool
	ctx         context.Context
	cancel      context.CancelFunc
	settings    *config.Settings
	cfg         config.RunConfig
	disabled    bool
	disabledExe string
	nextEpoch   uint64
	entries     map[string]*entry
	diagnostics map[string][]lint.Diagnostic
	reports     map[string]*RunReport
	inflight    map[string]chan struct{}
	subs        []editor.Subscription
	docSub      editor.Subscription
}

// New creates an Orchestrator attached to host. Call Activate, or hand it
// to a supervisor, to start linting.
func New(host editor.Host, opts ...Option) (*Orchestrator, error) {
	if host == nil {
		return nil, ErrNoHost
	}

	o := &Orchestrator{
		host:        host,
		publisher:   nopPublisher{},
		logger:      slog.Default().WithGroup("orchestrator.Orchestrator"),
		parentCtx:   context.Background(),
		entries:     make(map[string]*entry),
		diagnostics: make(map[string][]lint.Diagnostic),
		reports:     make(map[string]*RunReport),
		inflight:    make(map[string]chan struct{}),
	}

	for _, opt := range opts {
		opt(o)
	}

	if o.linter == nil {
		o.linter = process.NewLinter(o.logger.WithGroup("process"))
	}

	machine, err := finitestate.New(o.logger.WithGroup("fsm").Handler())
	if err != nil {
		return nil, fmt.Errorf("failed to create state machine: %w", err)
	}
	o.fsm = machine

	return o, nil
}

func (o *Orchestrator) String() string {
	return "orchestrator.Orchestrator"
}

// Run activates the orchestrator and blocks until ctx is canceled or Stop
// is called, then disposes it.
func (o *Orchestrator) Run(ctx context.Context) error {
	if err := o.fsm.Transition(finitestate.StatusBooting); err != nil {
		return fmt.Errorf("failed to transition to booting state: %w", err)
	}

	o.mu.Lock()
	o.runCtx, o.runCancel = context.WithCancel(ctx)
	runCtx := o.runCtx
	o.mu.Unlock()

	o.activate(runCtx)

	if err := o.fsm.Transition(finitestate.StatusRunning); err != nil {
		return fmt.Errorf("failed to transition to running state: %w", err)
	}

	select {
	case <-o.parentCtx.Done():
		o.logger.Debug("Parent context canceled")
	case <-runCtx.Done():
		o.logger.Debug("Run context canceled")
	}

	if o.fsm.GetState() != finitestate.StatusStopping {
		if err := o.fsm.Transition(finitestate.StatusStopping); err != nil {
			o.logger.Error("Failed to transition to stopping state", "error", err)
		}
	}

	o.Dispose()

	if err := o.fsm.Transition(finitestate.StatusStopped); err != nil {
		return fmt.Errorf("failed to transition to stopped state: %w", err)
	}
	return nil
}

func (o *Orchestrator) Stop() {
	if !finitestate.Stopping(o.fsm) {
		if err := o.fsm.Transition(finitestate.StatusStopping); err != nil {
			o.logger.Error("Failed to transition to stopping state", "error", err)
		}
	}
	o.mu.Lock()
	cancel := o.runCancel
	o.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (o *Orchestrator) GetState() string {
	return o.fsm.GetState()
}

func (o *Orchestrator) GetStateChan(ctx context.Context) <-chan string {
	return o.fsm.GetStateChan(ctx)
}

func (o *Orchestrator) IsRunning() bool {
	return o.fsm.GetState() == finitestate.StatusRunning
}

// Activate subscribes to the host's events and lints every open document.
// Calling it again while active does nothing.
func (o *Orchestrator) Activate() {
	o.activate(o.parentCtx)
}

func (o *Orchestrator) activate(ctx context.Context) {
	o.mu.Lock()
	if o.active {
		o.mu.Unlock()
		return
	}
	o.active = true
	o.ctx, o.cancel = context.WithCancel(ctx)
	o.loadConfigurationLocked()
	o.subs = []editor.Subscription{
		o.host.OnDidOpen(o.onOpened),
		o.host.OnDidClose(o.OnDocumentClosed),
		o.host.OnDidChangeConfiguration(o.OnConfigurationChanged),
	}
	o.subscribeLocked()
	o.logger.Info("Lint orchestrator activated",
		"executable", o.cfg.Executable,
		"trigger", o.cfg.Trigger,
		"language", o.languageLocked(),
	)
	o.mu.Unlock()

	o.lintOpenDocuments()
}

// Dispose detaches from the host, drops every pending run and clears all
// published diagnostics.
func (o *Orchestrator) Dispose() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.active {
		return
	}
	o.active = false

	for _, sub := range o.subs {
		sub.Unsubscribe()
	}
	o.subs = nil
	if o.docSub != nil {
		o.docSub.Unsubscribe()
		o.docSub = nil
	}

	for _, e := range o.entries {
		e.delayer.Close()
	}
	for uri := range o.diagnostics {
		o.publisher.Clear(uri)
	}
	clear(o.entries)
	clear(o.diagnostics)
	clear(o.reports)

	if o.cancel != nil {
		o.cancel()
	}
	o.logger.Info("Lint orchestrator disposed")
}

// OnDocumentOpened schedules a lint of doc. The returned future resolves
// when that run finishes; it is nil when doc was ignored.
func (o *Orchestrator) OnDocumentOpened(doc editor.Document) *delayer.Future {
	return o.triggerLint(doc)
}

// OnDocumentSaved schedules a lint of doc.
func (o *Orchestrator) OnDocumentSaved(doc editor.Document) *delayer.Future {
	return o.triggerLint(doc)
}

// OnDocumentChanged schedules a lint of doc.
func (o *Orchestrator) OnDocumentChanged(doc editor.Document) *delayer.Future {
	return o.triggerLint(doc)
}

func (o *Orchestrator) onOpened(doc editor.Document)  { o.OnDocumentOpened(doc) }
func (o *Orchestrator) onSaved(doc editor.Document)   { o.OnDocumentSaved(doc) }
func (o *Orchestrator) onChanged(doc editor.Document) { o.OnDocumentChanged(doc) }

// OnDocumentClosed forgets the document: its delayer is closed, its
// diagnostics are cleared and a run still in flight will be discarded.
func (o *Orchestrator) OnDocumentClosed(doc editor.Document) {
	uri := doc.URI()

	o.mu.Lock()
	defer o.mu.Unlock()

	if e, ok := o.entries[uri]; ok {
		e.delayer.Close()
		delete(o.entries, uri)
	}
	delete(o.diagnostics, uri)
	delete(o.reports, uri)
	o.publisher.Clear(uri)
	o.logger.Debug("Document closed", "uri", uri)
}

// OnConfigurationChanged reloads the settings, re-enables linting when the
// executable path changed, drops every pending run, rewires the event
// subscription for the new trigger and lints every open document again.
func (o *Orchestrator) OnConfigurationChanged() {
	o.mu.Lock()
	if !o.active {
		o.mu.Unlock()
		return
	}
	o.loadConfigurationLocked()

	debounce := o.cfg.Trigger.Debounce()
	for _, e := range o.entries {
		e.delayer.Reset(debounce)
	}
	o.subscribeLocked()
	o.logger.Info("Configuration changed",
		"executable", o.cfg.Executable,
		"trigger", o.cfg.Trigger,
		"disabled", o.disabled,
	)
	o.mu.Unlock()

	o.lintOpenDocuments()
}

// loadConfigurationLocked takes a fresh run configuration snapshot.
func (o *Orchestrator) loadConfigurationLocked() {
	o.settings = o.host.Configuration()
	o.cfg = o.settings.RunConfig()
	if o.disabled && o.cfg.Executable != o.disabledExe {
		o.logger.Info("Executable path changed, linting re-enabled", "executable", o.cfg.Executable)
		o.disabled = false
		o.disabledExe = ""
	}
}

// subscribeLocked replaces the document subscription to match the trigger.
func (o *Orchestrator) subscribeLocked() {
	if o.docSub != nil {
		o.docSub.Unsubscribe()
		o.docSub = nil
	}
	switch o.cfg.Trigger {
	case trigger.OnType:
		o.docSub = o.host.OnDidChange(o.onChanged)
	case trigger.OnSave:
		o.docSub = o.host.OnDidSave(o.onSaved)
	}
}

func (o *Orchestrator) languageLocked() string {
	if o.languageID != "" {
		return o.languageID
	}
	return o.settings.LanguageID()
}

func (o *Orchestrator) lintOpenDocuments() {
	for _, doc := range o.host.Documents() {
		o.triggerLint(doc)
	}
}

func (o *Orchestrator) triggerLint(doc editor.Document) *delayer.Future {
	uri := doc.URI()

	o.mu.Lock()
	if !o.active ||
		doc.LanguageID() != o.languageLocked() ||
		o.disabled ||
		!o.cfg.Trigger.Enabled() {
		o.mu.Unlock()
		return nil
	}

	e, ok := o.entries[uri]
	if !ok {
		d, err := delayer.New(
			o.cfg.Trigger.Debounce(),
			delayer.WithLogger(o.logger.WithGroup("delayer").With("uri", uri)),
			delayer.WithContext(o.ctx),
		)
		if err != nil {
			o.mu.Unlock()
			o.logger.Error("Failed to create delayer", "uri", uri, "error", err)
			return nil
		}
		o.nextEpoch++
		e = &entry{epoch: o.nextEpoch, delayer: d}
		o.entries[uri] = e
	}
	epoch := e.epoch
	o.mu.Unlock()

	return e.delayer.Trigger(func(ctx context.Context) error {
		return o.lint(ctx, doc, epoch)
	})
}

// currentLocked reports whether the entry a run was scheduled on is still live.
func (o *Orchestrator) currentLocked(uri string, epoch uint64) bool {
	e, ok := o.entries[uri]
	return ok && e.epoch == epoch
}

func (o *Orchestrator) lint(ctx context.Context, doc editor.Document, epoch uint64) error {
	uri := doc.URI()

	cfg, done, err := o.acquire(ctx, uri, epoch)
	if err != nil || done == nil {
		return err
	}
	defer o.release(uri, done)

	r := newRun(uri, cfg.Executable, o.logger.Handler())
	r.logger.Debug("Lint started", "executable", cfg.Executable, "file", doc.FileName())

	lines, err := o.linter.Lint(ctx, cfg, doc.Text(), o.host.WorkspaceRoot())
	if err != nil {
		r.logger.Warn("Lint failed", "error", err)
		o.handleFailure(doc, epoch, cfg, err, r.finish(err))
		return err
	}

	diags := lint.Dedupe(lint.Process(lines, doc.FileName()))
	r.report.Violations = lint.ViolationCount(lines)
	r.report.Diagnostics = diags
	r.logger.Debug("Lint finished", "violations", r.report.Violations, "diagnostics", len(diags))
	report := r.finish(nil)

	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.currentLocked(uri, epoch) {
		o.logger.Debug("Discarding result for closed document", "uri", uri, "run_id", report.ID)
		return ErrStaleDocument
	}
	o.diagnostics[uri] = diags
	o.reports[uri] = report
	o.publisher.Publish(uri, slices.Clone(diags))
	return nil
}

// acquire claims the in-flight slot for uri. A run left over from before the
// document was closed and reopened still holds the slot, so wait for it. A
// nil done channel with a nil error means the run is skipped.
func (o *Orchestrator) acquire(ctx context.Context, uri string, epoch uint64) (config.RunConfig, chan struct{}, error) {
	for {
		o.mu.Lock()
		if !o.currentLocked(uri, epoch) {
			o.mu.Unlock()
			return config.RunConfig{}, nil, ErrStaleDocument
		}
		if o.disabled {
			o.mu.Unlock()
			return config.RunConfig{}, nil, nil
		}
		prev, busy := o.inflight[uri]
		if !busy {
			done := make(chan struct{})
			o.inflight[uri] = done
			cfg := o.cfg
			o.mu.Unlock()
			return cfg, done, nil
		}
		o.mu.Unlock()

		select {
		case <-prev:
		case <-ctx.Done():
			return config.RunConfig{}, nil, ctx.Err()
		}
	}
}

func (o *Orchestrator) release(uri string, done chan struct{}) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.inflight[uri] == done {
		delete(o.inflight, uri)
	}
	close(done)
}

// handleFailure turns a missing executable into the disabled state and any
// other launch failure into a message. Either way the previous diagnostics
// are left as they were.
func (o *Orchestrator) handleFailure(doc editor.Document, epoch uint64, cfg config.RunConfig, err error, report *RunReport) {
	o.mu.Lock()
	if o.currentLocked(doc.URI(), epoch) {
		o.reports[doc.URI()] = report
	}

	switch {
	case errors.Is(err, context.Canceled):
		o.mu.Unlock()
		return
	case process.IsExecutableNotFound(err):
		if o.disabled {
			o.mu.Unlock()
			return
		}
		if cfg.Executable != o.cfg.Executable {
			current := o.cfg.Executable
			o.mu.Unlock()
			o.logger.Debug("Ignoring missing executable from a previous configuration",
				"executable", cfg.Executable, "current", current)
			return
		}
		o.disabled = true
		o.disabledExe = cfg.Executable
		o.mu.Unlock()
		o.logger.Error("Linter executable not found, linting disabled", "executable", cfg.Executable)
		o.host.ShowMessage(notFoundMessage(doc.FileName()))
	case errors.Is(err, process.ErrTimeout):
		o.mu.Unlock()
		o.host.ShowMessage(fmt.Sprintf("Linting %s timed out after %s", doc.FileName(), cfg.Timeout))
	default:
		o.mu.Unlock()
		o.host.ShowMessage(launchFailureMessage(cfg.Executable, err))
	}
}

// Diagnostics returns the published diagnostics for uri.
func (o *Orchestrator) Diagnostics(uri string) ([]lint.Diagnostic, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	diags, ok := o.diagnostics[uri]
	return slices.Clone(diags), ok
}

// URIs lists the documents that currently have published diagnostics.
func (o *Orchestrator) URIs() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	uris := make([]string, 0, len(o.diagnostics))
	for uri := range o.diagnostics {
		uris = append(uris, uri)
	}
	sort.Strings(uris)
	return uris
}

// LastReport returns the most recent run report for uri.
func (o *Orchestrator) LastReport(uri string) (*RunReport, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	r, ok := o.reports[uri]
	return r, ok
}

// DocumentState returns idle, scheduled, running or disabled.
func (o *Orchestrator) DocumentState(uri string) string {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.disabled {
		return StateDisabled
	}
	e, ok := o.entries[uri]
	if !ok {
		return delayer.StateIdle
	}
	if s := e.delayer.State(); s != delayer.StateClosed {
		return s
	}
	return delayer.StateIdle
}

// Disabled reports whether linting is suspended because the executable is missing.
func (o *Orchestrator) Disabled() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.disabled
}

// Trigger returns the run trigger of the current configuration.
func (o *Orchestrator) Trigger() trigger.Trigger {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.cfg.Trigger
}
