package delayer

// Delayer states. A delayer is created idle, arms a timer when triggered,
// runs the surviving task when the timer fires, and returns to idle once no
// successor is queued. Closed is terminal.
const (
	StateIdle      = "idle"
	StateScheduled = "scheduled"
	StateRunning   = "running"
	StateClosed    = "closed"
)

// Transitions is the transition table for a delayer's state machine.
var Transitions = map[string][]string{
	StateIdle:      {StateScheduled, StateClosed},
	StateScheduled: {StateRunning, StateIdle, StateClosed},
	StateRunning:   {StateIdle, StateClosed},
	StateClosed:    {},
}
