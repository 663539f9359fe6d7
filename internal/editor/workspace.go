package editor

import (
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/atlanticdynamic/cornflakes/internal/config"
)

type eventKind int

const (
	eventOpen eventKind = iota
	eventSave
	eventChange
	eventClose
)

func (k eventKind) String() string {
	switch k {
	case eventOpen:
		return "open"
	case eventSave:
		return "save"
	case eventChange:
		return "change"
	case eventClose:
		return "close"
	default:
		return "unknown"
	}
}

// Workspace is an in-memory Host. Events fire synchronously on the goroutine
// that calls Open, Change, Save, Close or SetConfiguration.
type Workspace struct {
	root   string
	logger *slog.Logger

	mu        sync.RWMutex
	docs      map[string]Document
	order     []string
	settings  *config.Settings
	messages  []string
	onMessage func(string)

	docSubscribers    [4]sync.Map
	configSubscribers sync.Map
	subscriberCounter atomic.Uint64
}

var _ Host = (*Workspace)(nil)

// NewWorkspace creates a Workspace rooted at root. Nil settings mean defaults.
func NewWorkspace(root string, settings *config.Settings, opts ...Option) *Workspace {
	if settings == nil {
		settings = config.NewDefault()
	}
	w := &Workspace{
		root:     root,
		logger:   slog.Default().WithGroup("editor.Workspace"),
		docs:     make(map[string]Document),
		settings: settings.Clone(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Workspace) OnDidOpen(fn func(Document)) Subscription   { return w.subscribe(eventOpen, fn) }
func (w *Workspace) OnDidSave(fn func(Document)) Subscription   { return w.subscribe(eventSave, fn) }
func (w *Workspace) OnDidChange(fn func(Document)) Subscription { return w.subscribe(eventChange, fn) }
func (w *Workspace) OnDidClose(fn func(Document)) Subscription  { return w.subscribe(eventClose, fn) }

func (w *Workspace) OnDidChangeConfiguration(fn func()) Subscription {
	id := w.subscriberCounter.Add(1)
	w.configSubscribers.Store(id, fn)
	return newSubscription(func() { w.configSubscribers.Delete(id) })
}

func (w *Workspace) subscribe(kind eventKind, fn func(Document)) Subscription {
	id := w.subscriberCounter.Add(1)
	w.docSubscribers[kind].Store(id, fn)
	return newSubscription(func() { w.docSubscribers[kind].Delete(id) })
}

func (w *Workspace) fire(kind eventKind, doc Document) {
	w.logger.Debug("Document event", "event", kind, "uri", doc.URI())
	w.docSubscribers[kind].Range(func(key, value any) bool {
		fn, ok := value.(func(Document))
		if !ok {
			w.logger.Error("Invalid subscriber type", "key", key)
			w.docSubscribers[kind].Delete(key)
			return true
		}
		fn(doc)
		return true
	})
}

// Open adds doc to the open set, replacing any document with the same URI.
func (w *Workspace) Open(doc Document) {
	w.store(doc)
	w.fire(eventOpen, doc)
}

// Change replaces the content of doc.
func (w *Workspace) Change(doc Document) {
	w.store(doc)
	w.fire(eventChange, doc)
}

// Save records doc as persisted.
func (w *Workspace) Save(doc Document) {
	w.store(doc)
	w.fire(eventSave, doc)
}

// Close removes the document with uri. Closing an unknown URI does nothing.
func (w *Workspace) Close(uri string) {
	w.mu.Lock()
	doc, ok := w.docs[uri]
	if ok {
		delete(w.docs, uri)
		w.order = slices.DeleteFunc(w.order, func(u string) bool { return u == uri })
	}
	w.mu.Unlock()

	if ok {
		w.fire(eventClose, doc)
	}
}

func (w *Workspace) store(doc Document) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, exists := w.docs[doc.URI()]; !exists {
		w.order = append(w.order, doc.URI())
	}
	w.docs[doc.URI()] = doc
}

// Document returns the open document with uri.
func (w *Workspace) Document(uri string) (Document, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	doc, ok := w.docs[uri]
	return doc, ok
}

// Documents returns the open documents in the order they were opened.
func (w *Workspace) Documents() []Document {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]Document, 0, len(w.order))
	for _, uri := range w.order {
		out = append(out, w.docs[uri])
	}
	return out
}

func (w *Workspace) WorkspaceRoot() string {
	return w.root
}

// ShowMessage records msg and hands it to the message handler, if any.
func (w *Workspace) ShowMessage(msg string) {
	w.mu.Lock()
	w.messages = append(w.messages, msg)
	fn := w.onMessage
	w.mu.Unlock()

	w.logger.Warn("Message shown to user", "message", msg)
	if fn != nil {
		fn(msg)
	}
}

// Messages returns every message shown so far.
func (w *Workspace) Messages() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return slices.Clone(w.messages)
}

func (w *Workspace) Configuration() *config.Settings {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.settings.Clone()
}

// SetConfiguration replaces the settings and notifies subscribers. Nil
// settings restore the defaults.
func (w *Workspace) SetConfiguration(settings *config.Settings) {
	if settings == nil {
		settings = config.NewDefault()
	}
	w.mu.Lock()
	w.settings = settings.Clone()
	w.mu.Unlock()

	w.configSubscribers.Range(func(key, value any) bool {
		fn, ok := value.(func())
		if !ok {
			w.logger.Error("Invalid subscriber type", "key", key)
			w.configSubscribers.Delete(key)
			return true
		}
		fn()
		return true
	})
}
