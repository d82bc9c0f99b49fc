package viewer

import "github.com/Carmen-Shannon/oxy-viewer/engine/joystick"

// MovementState holds the latest joystick output as four movement axes, each in [-1, 1].
// Forward and Right come from the move joystick, TurnX and TurnY from the look joystick.
type MovementState struct {
	Forward float32
	Right   float32
	TurnX   float32
	TurnY   float32
}

// Apply folds one joystick update into the state. It is the only writer of MovementState in a
// session. Pushing the move stick up (negative screen Y) is forward. A release from either
// joystick resets all four axes; a joystick still held re-emits on its next move.
//
// Parameters:
//   - u: the axis update to apply
func (m *MovementState) Apply(u joystick.AxisUpdate) {
	if u.Released {
		*m = MovementState{}
		return
	}
	switch u.Axis {
	case joystick.AxisMove:
		m.Forward = -u.Value.Y
		m.Right = u.Value.X
	case joystick.AxisLook:
		m.TurnX = u.Value.X
		m.TurnY = u.Value.Y
	}
}

// Idle reports whether every axis is zero.
func (m MovementState) Idle() bool {
	return m == MovementState{}
}
