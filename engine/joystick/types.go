package joystick

import "github.com/Carmen-Shannon/oxy-viewer/common"

// Vector2 is a 2D value. Tracker output is normalized to the unit disk; knob offsets are in
// screen pixels bounded by the tracker radius.
type Vector2 struct {
	X float32
	Y float32
}

// Axis identifies which joystick produced an update.
type Axis int

const (
	// AxisMove drives translation (forward/right).
	AxisMove Axis = iota

	// AxisLook drives rotation (turn X/Y).
	AxisLook
)

// String returns a readable axis name, used in log fields.
func (a Axis) String() string {
	switch a {
	case AxisMove:
		return "move"
	case AxisLook:
		return "look"
	default:
		return "unknown"
	}
}

// AxisUpdate is the typed message a Tracker emits whenever its output changes.
// Value lies in the unit disk; Y grows downward like screen coordinates.
type AxisUpdate struct {
	Axis  Axis
	Value Vector2
	// Released marks the neutral update emitted when the contact ends.
	Released bool
}

// DragSession is the state of the single contact a Tracker follows.
// The zero value is an inactive session with the knob at rest.
type DragSession struct {
	// Active is true between a press and the next release.
	Active bool
	// Source is the device that started the session.
	Source common.PointerSource
	// PointerID is the contact being followed.
	PointerID int
	// Origin is the screen position that maps to the knob's rest position.
	Origin Vector2
	// LastKnob is the most recent clamped knob offset in pixels.
	LastKnob Vector2
}
