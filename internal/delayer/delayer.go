// Package delayer implements a per-key debounce with single-flight execution.
//
// A Delayer coalesces bursts of triggers into one execution of the most
// recently submitted task, started once the debounce window has elapsed
// since the latest trigger. While a task runs, at most one successor is
// queued and it starts as soon as the running task returns, so executions
// for one delayer never overlap.
package delayer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/atlanticdynamic/cornflakes/internal/finitestate"
)

var (
	// ErrCanceled resolves the future of a task that was dropped before it started.
	ErrCanceled = errors.New("delayed task canceled")

	// ErrClosed resolves the future of a trigger on a closed delayer.
	ErrClosed = errors.New("delayer is closed")
)

// Task is the unit of work scheduled by a Delayer.
type Task func(ctx context.Context) error

type pendingTask struct {
	task   Task
	future *Future
}

// Delayer is a throttled debounce primitive. The zero value is not usable;
// create one with New.
type Delayer struct {
	mu    sync.Mutex
	delay time.Duration

	fsm    finitestate.Machine
	logger *slog.Logger
	ctx    context.Context

	timer    *time.Timer
	timerSeq uint64

	// pending waits for the timer; queued waits for the running task.
	pending *pendingTask
	queued  *pendingTask

	executions uint64
}

// New creates a Delayer with the given debounce window. A zero delay runs
// the task on the next timer tick.
func New(delay time.Duration, opts ...Option) (*Delayer, error) {
	if delay < 0 {
		return nil, fmt.Errorf("delay must not be negative: %s", delay)
	}

	d := &Delayer{
		delay:  delay,
		logger: slog.Default().WithGroup("delayer.Delayer"),
		ctx:    context.Background(),
	}

	for _, opt := range opts {
		opt(d)
	}

	fsmLogger := d.logger.WithGroup("fsm")
	machine, err := finitestate.NewWithTransitions(fsmLogger.Handler(), StateIdle, Transitions)
	if err != nil {
		return nil, fmt.Errorf("failed to create state machine: %w", err)
	}
	d.fsm = machine

	return d, nil
}

// Delay returns the current debounce window.
func (d *Delayer) Delay() time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.delay
}

// State returns idle, scheduled, running or closed.
func (d *Delayer) State() string {
	return d.fsm.GetState()
}

// Executions returns how many tasks have been started.
func (d *Delayer) Executions() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.executions
}

// Trigger schedules task and returns a future for the execution that will
// eventually represent it. Triggers coalesced into one execution share the
// same future.
func (d *Delayer) Trigger(task Task) *Future {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch d.fsm.GetState() {
	case StateClosed:
		return resolvedFuture(ErrClosed)

	case StateRunning:
		if d.queued != nil {
			d.queued.task = task
			return d.queued.future
		}
		d.queued = &pendingTask{task: task, future: newFuture()}
		return d.queued.future

	case StateScheduled:
		d.pending.task = task
		d.armLocked()
		return d.pending.future

	default:
		d.pending = &pendingTask{task: task, future: newFuture()}
		if err := d.fsm.Transition(StateScheduled); err != nil {
			d.logger.Error("Failed to transition to scheduled state", "error", err)
		}
		d.armLocked()
		return d.pending.future
	}
}

// Reset drops any task that has not started yet and sets a new debounce
// window. A task that is already running is left alone and still blocks
// the next execution.
func (d *Delayer) Reset(delay time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if delay >= 0 {
		d.delay = delay
	}

	switch d.fsm.GetState() {
	case StateScheduled:
		d.stopTimerLocked()
		d.pending.future.resolve(ErrCanceled)
		d.pending = nil
		if err := d.fsm.Transition(StateIdle); err != nil {
			d.logger.Error("Failed to transition to idle state", "error", err)
		}
	case StateRunning:
		if d.queued != nil {
			d.queued.future.resolve(ErrCanceled)
			d.queued = nil
		}
	}
}

// Close drops pending work and refuses further triggers. A running task is
// allowed to finish.
func (d *Delayer) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.fsm.GetState() == StateClosed {
		return
	}

	d.stopTimerLocked()
	if d.pending != nil {
		d.pending.future.resolve(ErrCanceled)
		d.pending = nil
	}
	if d.queued != nil {
		d.queued.future.resolve(ErrCanceled)
		d.queued = nil
	}
	if err := d.fsm.Transition(StateClosed); err != nil {
		d.logger.Error("Failed to transition to closed state", "error", err)
	}
}

// armLocked (re)starts the debounce timer measured from now.
func (d *Delayer) armLocked() {
	d.stopTimerLocked()
	seq := d.timerSeq
	d.timer = time.AfterFunc(d.delay, func() {
		d.fire(seq)
	})
}

// stopTimerLocked invalidates the current timer. Bumping the sequence covers
// a callback that already fired and is waiting for the lock.
func (d *Delayer) stopTimerLocked() {
	d.timerSeq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *Delayer) fire(seq uint64) {
	d.mu.Lock()
	if seq != d.timerSeq || d.fsm.GetState() != StateScheduled {
		d.mu.Unlock()
		return
	}
	next := d.pending
	d.pending = nil
	d.timer = nil
	if err := d.fsm.Transition(StateRunning); err != nil {
		d.logger.Error("Failed to transition to running state", "error", err)
	}
	d.executions++
	d.mu.Unlock()

	d.execute(next)
}

// execute runs p and then any successor queued while it was running.
func (d *Delayer) execute(p *pendingTask) {
	for p != nil {
		p.future.resolve(d.run(p.task))

		d.mu.Lock()
		if d.fsm.GetState() == StateClosed {
			d.mu.Unlock()
			return
		}
		p = d.queued
		d.queued = nil
		if p != nil {
			d.executions++
		} else if err := d.fsm.Transition(StateIdle); err != nil {
			d.logger.Error("Failed to transition to idle state", "error", err)
		}
		d.mu.Unlock()
	}
}

func (d *Delayer) run(task Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("Delayed task panicked", "panic", r)
			err = fmt.Errorf("delayed task panicked: %v", r)
		}
	}()
	return task(d.ctx)
}
