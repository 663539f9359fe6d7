package editor

import (
	"sync"

	"github.com/atlanticdynamic/cornflakes/internal/config"
)

// Host is the environment the lint orchestrator is attached to. Event
// handlers may be called on any goroutine.
type Host interface {
	OnDidOpen(func(Document)) Subscription
	OnDidSave(func(Document)) Subscription
	OnDidChange(func(Document)) Subscription
	OnDidClose(func(Document)) Subscription
	OnDidChangeConfiguration(func()) Subscription

	// Documents lists the documents open right now.
	Documents() []Document
	WorkspaceRoot() string
	// ShowMessage surfaces an error message to the user.
	ShowMessage(string)
	// Configuration returns the current settings; never nil.
	Configuration() *config.Settings
}

// Subscription detaches an event handler.
type Subscription interface {
	Unsubscribe()
}

// subscription runs its cancel func once.
type subscription struct {
	once   sync.Once
	cancel func()
}

func newSubscription(cancel func()) *subscription {
	return &subscription{cancel: cancel}
}

func (s *subscription) Unsubscribe() {
	s.once.Do(s.cancel)
}
