package operation

import (
	"errors"
	"fmt"
	"sync"
)

// ErrInvalidTransition is returned for a state change the run does not allow
var ErrInvalidTransition = errors.New("invalid state transition")

// State is a stage of one program run
type State int

const (
	StateUpdatingDB State = iota
	StateReadyForSelection
	StateExecuting
	StateDone
	StateError
)

// String returns the state name
func (s State) String() string {
	switch s {
	case StateUpdatingDB:
		return "updating-db"
	case StateReadyForSelection:
		return "ready"
	case StateExecuting:
		return "executing"
	case StateDone:
		return "done"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// transitions lists the allowed next states. Done and Error are terminal.
var transitions = map[State][]State{
	StateUpdatingDB:        {StateReadyForSelection, StateError},
	StateReadyForSelection: {StateExecuting},
	StateExecuting:         {StateDone},
}

// Run tracks the state of one program run, starting at StateUpdatingDB
type Run struct {
	mu    sync.Mutex
	state State
}

// NewRun returns a run in StateUpdatingDB
func NewRun() *Run {
	return &Run{state: StateUpdatingDB}
}

// State returns the current state
func (r *Run) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Transition moves the run to next, or returns ErrInvalidTransition
func (r *Run) Transition(next State) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, allowed := range transitions[r.state] {
		if allowed == next {
			r.state = next
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, r.state, next)
}

// Terminal reports whether no further transition is possible
func (r *Run) Terminal() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(transitions[r.state]) == 0
}
