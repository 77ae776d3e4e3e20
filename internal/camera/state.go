package camera

import "fmt"

// State is the lifecycle stage of a capture loop.
type State int

const (
	// StateIdle is the initial state before the device is touched.
	StateIdle State = iota
	// StateOpening means the device is being opened.
	StateOpening
	// StatePreviewing means frames are streaming to the preview surface.
	StatePreviewing
	// StateClosed is terminal: the device has been released.
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateOpening:
		return "Opening"
	case StatePreviewing:
		return "Previewing"
	case StateClosed:
		return "Closed"
	default:
		return fmt.Sprintf("Unknown(%d)", s)
	}
}

var validTransitions = map[State][]State{
	StateIdle:       {StateOpening},
	StateOpening:    {StatePreviewing, StateClosed},
	StatePreviewing: {StateClosed},
	StateClosed:     {},
}

func (s State) CanTransitionTo(target State) bool {
	for _, t := range validTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

func (s State) IsTerminal() bool {
	return s == StateClosed
}

// TransitionError represents an invalid state transition attempt.
type TransitionError struct {
	From State
	To   State
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid capture transition from %s to %s", e.From, e.To)
}
