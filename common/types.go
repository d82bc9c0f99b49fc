// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import "math"

// PointerKind identifies the phase of a pointer interaction.
type PointerKind int

const (
	// PointerPress is a touch-start or mouse-down.
	PointerPress PointerKind = iota

	// PointerMove is a touch-move or mouse-move.
	PointerMove

	// PointerRelease is a touch-end or mouse-up.
	PointerRelease
)

// String returns a readable name for the pointer kind, used in log fields.
func (k PointerKind) String() string {
	switch k {
	case PointerPress:
		return "press"
	case PointerMove:
		return "move"
	case PointerRelease:
		return "release"
	default:
		return "unknown"
	}
}

// PointerSource identifies the device that produced a pointer event.
type PointerSource int

const (
	// SourceMouse events carry exactly one point with ID MousePointerID.
	SourceMouse PointerSource = iota

	// SourceTouch events carry zero or more touch points, each with a stable ID for the
	// lifetime of the contact.
	SourceTouch
)

// String returns a readable name for the pointer source, used in log fields.
func (s PointerSource) String() string {
	switch s {
	case SourceMouse:
		return "mouse"
	case SourceTouch:
		return "touch"
	default:
		return "unknown"
	}
}

// MousePointerID is the pointer ID used by every mouse event.
const MousePointerID = 0

// PointerPoint is a single active contact in absolute screen coordinates.
type PointerPoint struct {
	// ID identifies the contact across press, move and release events.
	ID int
	// X is the horizontal screen coordinate in pixels, growing rightward.
	X float32
	// Y is the vertical screen coordinate in pixels, growing downward.
	Y float32
}

// Valid reports whether both coordinates are finite.
//
// Returns:
//   - bool: false if either coordinate is NaN or infinite
func (p PointerPoint) Valid() bool {
	return !isBad(p.X) && !isBad(p.Y)
}

func isBad(v float32) bool {
	f := float64(v)
	return math.IsNaN(f) || math.IsInf(f, 0)
}

// PointerEvent is a raw pointer input event as delivered by a window or a test harness.
// For touch events, Points holds the contacts relevant to the event (all active contacts for
// press/move, the lifted contacts for release). A release may legitimately carry no points.
type PointerEvent struct {
	// Kind is the interaction phase.
	Kind PointerKind
	// Source is the producing device.
	Source PointerSource
	// Points are the contacts carried by the event.
	Points []PointerPoint
}

// MouseEvent builds a single-point mouse event.
//
// Parameters:
//   - kind: the interaction phase
//   - x, y: cursor position in screen pixels
//
// Returns:
//   - PointerEvent: the mouse event
func MouseEvent(kind PointerKind, x, y float32) PointerEvent {
	return PointerEvent{
		Kind:   kind,
		Source: SourceMouse,
		Points: []PointerPoint{{ID: MousePointerID, X: x, Y: y}},
	}
}

// TouchEvent builds a touch event carrying the given contacts.
//
// Parameters:
//   - kind: the interaction phase
//   - points: the contacts carried by the event (may be empty)
//
// Returns:
//   - PointerEvent: the touch event
func TouchEvent(kind PointerKind, points ...PointerPoint) PointerEvent {
	return PointerEvent{
		Kind:   kind,
		Source: SourceTouch,
		Points: points,
	}
}

// Point returns the contact with the given ID.
//
// Parameters:
//   - id: the contact ID to look up
//
// Returns:
//   - PointerPoint: the matching contact, or the zero value
//   - bool: true if a contact with that ID is present
func (e PointerEvent) Point(id int) (PointerPoint, bool) {
	for _, p := range e.Points {
		if p.ID == id {
			return p, true
		}
	}
	return PointerPoint{}, false
}
