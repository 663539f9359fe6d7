// Package finitestate wraps go-fsm for the lifecycle of long-running
// components and for the small per-document state machines.
package finitestate

import (
	"context"
	"log/slog"
	"time"

	"github.com/robbyt/go-fsm"
)

const (
	StatusNew       = fsm.StatusNew
	StatusBooting   = fsm.StatusBooting
	StatusRunning   = fsm.StatusRunning
	StatusReloading = fsm.StatusReloading
	StatusStopping  = fsm.StatusStopping
	StatusStopped   = fsm.StatusStopped
	StatusError     = fsm.StatusError
	StatusUnknown   = fsm.StatusUnknown
)

// TypicalTransitions is the lifecycle used by supervisor runnables.
var TypicalTransitions = fsm.TypicalTransitions

// SubscriberOption configures state channel behavior.
type SubscriberOption = fsm.SubscriberOption

// WithSyncTimeout sets a timeout for synchronous broadcast operations.
var WithSyncTimeout = fsm.WithSyncTimeout

// Machine is the subset of go-fsm used across the module.
type Machine interface {
	// Transition attempts to transition the state machine to the specified state.
	Transition(state string) error

	// TransitionBool attempts to transition the state machine to the specified state.
	TransitionBool(state string) bool

	// TransitionIfCurrentState transitions only when the machine is in currentState.
	TransitionIfCurrentState(currentState, newState string) error

	// SetState sets the state without checking the transition table.
	SetState(state string) error

	// GetState returns the current state.
	GetState() string

	// GetStateChan returns a channel that emits the state whenever it changes.
	// The channel is closed when ctx is canceled.
	GetStateChan(ctx context.Context) <-chan string

	// GetStateChanWithOptions returns a state channel with custom options.
	GetStateChanWithOptions(ctx context.Context, opts ...SubscriberOption) <-chan string
}

// LifecycleFSM embeds fsm.Machine and overrides GetStateChan for sync broadcast.
type LifecycleFSM struct {
	*fsm.Machine
}

// GetStateChan returns a sync broadcast channel with a 5-second timeout so
// state updates are still delivered during shutdown. States are relayed
// through a goroutine that keeps draining after ctx ends, so a subscriber
// that has stopped reading never holds up a transition.
func (m *LifecycleFSM) GetStateChan(ctx context.Context) <-chan string {
	src := m.GetStateChanWithOptions(ctx, WithSyncTimeout(5*time.Second))
	out := make(chan string, 1)
	go func() {
		defer close(out)
		for state := range src {
			select {
			case out <- state:
			case <-ctx.Done():
			}
		}
	}()
	return out
}

// Stopping reports whether the machine has already begun or finished
// shutting down, so a second Stop can skip the transition.
func Stopping(m Machine) bool {
	switch m.GetState() {
	case StatusStopping, StatusStopped:
		return true
	}
	return false
}

// New creates a lifecycle machine starting in StatusNew.
func New(handler slog.Handler) (Machine, error) {
	machine, err := fsm.New(handler, StatusNew, TypicalTransitions)
	if err != nil {
		return nil, err
	}
	return &LifecycleFSM{Machine: machine}, nil
}

// NewWithTransitions creates a machine with a custom transition table.
func NewWithTransitions(handler slog.Handler, initial string, transitions map[string][]string) (Machine, error) {
	return fsm.New(handler, initial, transitions)
}
