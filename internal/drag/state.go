// Package drag implements the pointer-driven card drag state machine.
package drag

import "github.com/hylla/kanvas/internal/layout"

// Phase is the controller's state.
type Phase int

// Phases. The zero value is Idle.
const (
	Idle Phase = iota
	Dragging
)

// String returns the phase name.
func (p Phase) String() string {
	if p == Dragging {
		return "dragging"
	}
	return "idle"
}

// State is a snapshot of the drag. Grab is fixed when the drag starts;
// Pointer follows every move.
type State struct {
	Phase   Phase
	TaskID  string
	Grab    layout.Point
	Pointer layout.Point
}

// Active reports whether a card is being dragged.
func (s State) Active() bool {
	return s.Phase == Dragging
}

// Holds reports whether taskID is the card being dragged.
func (s State) Holds(taskID string) bool {
	return s.Active() && s.TaskID == taskID
}

// CardOrigin is where the dragged card's top-left corner follows the pointer.
func (s State) CardOrigin() layout.Point {
	return s.Pointer.Sub(s.Grab)
}
