package core

import "strings"

// Action is a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone        Action = iota
	ActionUp                 // menu up
	ActionDown               // menu down
	ActionForward            // move one cell forward
	ActionTurn               // flip facing
	ActionJumpUp             // jump up then forward
	ActionJumpForward        // arc jump forward
	ActionExplode            // detonate the cell ahead
	ActionZap                // activate the platform underfoot
	ActionConfirm            // Enter - confirm selection
	ActionBack               // Escape - go back to menu
	ActionRestart            // R - restart the level
	ActionQuit               // Q, Ctrl+C - exit
	ActionPause              // P - pause/unpause
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionForward:
		return "Forward"
	case ActionTurn:
		return "Turn"
	case ActionJumpUp:
		return "JumpUp"
	case ActionJumpForward:
		return "JumpForward"
	case ActionExplode:
		return "Explode"
	case ActionZap:
		return "Zap"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// ParseAction resolves a name produced by Action.String, ignoring case.
func ParseAction(s string) (Action, bool) {
	for a := ActionUp; a <= ActionPause; a++ {
		if strings.EqualFold(a.String(), s) {
			return a, true
		}
	}
	return ActionNone, false
}

// InputFrame holds the actions triggered during one simulation tick.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}
