package models

import "fmt"

// Action is a user command the main window can offer.
type Action int

const (
	ActionLoadFile Action = iota
	ActionCapture
	ActionShowOriginal
	ActionIsolateChannel
	ActionRotate
	ActionNegate
	ActionDrawCircle
	ActionExport
)

// AllActions is the display order of the action buttons.
var AllActions = []Action{
	ActionLoadFile,
	ActionCapture,
	ActionShowOriginal,
	ActionIsolateChannel,
	ActionRotate,
	ActionNegate,
	ActionDrawCircle,
	ActionExport,
}

func (a Action) String() string {
	switch a {
	case ActionLoadFile:
		return "LoadFile"
	case ActionCapture:
		return "Capture"
	case ActionShowOriginal:
		return "ShowOriginal"
	case ActionIsolateChannel:
		return "IsolateChannel"
	case ActionRotate:
		return "Rotate"
	case ActionNegate:
		return "Negate"
	case ActionDrawCircle:
		return "DrawCircle"
	case ActionExport:
		return "Export"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// State is the part of a session that decides which actions are available.
type State struct {
	HasImage     bool
	HasDisplayed bool
	Capturing    bool
	Loading      bool
}

// ActionSet is an unordered set of actions.
type ActionSet map[Action]bool

func (s ActionSet) Has(a Action) bool {
	return s[a]
}

// EnabledActions maps session state to the actions a user may invoke.
// Nothing is available while a capture loop or a background load owns the session.
func EnabledActions(st State) ActionSet {
	set := ActionSet{}
	if st.Capturing || st.Loading {
		return set
	}

	set[ActionLoadFile] = true
	set[ActionCapture] = true

	if st.HasImage {
		set[ActionShowOriginal] = true
		set[ActionIsolateChannel] = true
		set[ActionRotate] = true
		set[ActionNegate] = true
		set[ActionDrawCircle] = true
	}

	if st.HasDisplayed {
		set[ActionExport] = true
	}

	return set
}
