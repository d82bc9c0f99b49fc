package viewer

import (
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"go.uber.org/zap"
)

// SessionBuilderOption is a functional option for configuring a Session.
type SessionBuilderOption func(*Session)

// WithOrbitController sets the orbit controller the session delegates to in orbit mode.
//
// Parameters:
//   - oc: the orbit controller, driving the session camera
//
// Returns:
//   - SessionBuilderOption: option function to apply
func WithOrbitController(oc camera.OrbitController) SessionBuilderOption {
	return func(s *Session) {
		s.orbit = oc
	}
}

// WithRenderer sets the renderer invoked once per frame.
//
// Parameters:
//   - r: the renderer
//
// Returns:
//   - SessionBuilderOption: option function to apply
func WithRenderer(r Renderer) SessionBuilderOption {
	return func(s *Session) {
		s.renderer = r
	}
}

// WithSpeeds sets the fly-through move and turn speeds. Non-positive values keep the defaults.
//
// Parameters:
//   - move: distance per frame at full deflection
//   - turn: radians per frame at full deflection
//
// Returns:
//   - SessionBuilderOption: option function to apply
func WithSpeeds(move, turn float32) SessionBuilderOption {
	return func(s *Session) {
		if move > 0 {
			s.integrator.MoveSpeed = move
		}
		if turn > 0 {
			s.integrator.TurnSpeed = turn
		}
	}
}

// WithJoystickLayout sets the joystick knob radius, widget diameter, and corner margin in pixels.
//
// Parameters:
//   - radius: knob travel radius
//   - size: widget diameter
//   - margin: distance from the screen corner
//
// Returns:
//   - SessionBuilderOption: option function to apply
func WithJoystickLayout(radius, size, margin float32) SessionBuilderOption {
	return func(s *Session) {
		s.layout = joystickLayout{radius: radius, size: size, margin: margin}
	}
}

// WithViewport sets the initial screen size used to lay out the joysticks.
//
// Parameters:
//   - width, height: viewport size in pixels
//
// Returns:
//   - SessionBuilderOption: option function to apply
func WithViewport(width, height int) SessionBuilderOption {
	return func(s *Session) {
		s.width, s.height = width, height
	}
}

// WithInitialMode sets the mode the session starts in.
//
// Parameters:
//   - mode: the starting mode
//
// Returns:
//   - SessionBuilderOption: option function to apply
func WithInitialMode(mode Mode) SessionBuilderOption {
	return func(s *Session) {
		s.initialMode = mode
	}
}

// WithLogger sets the session logger. A "session" field is added automatically.
//
// Parameters:
//   - logger: the zap logger
//
// Returns:
//   - SessionBuilderOption: option function to apply
func WithLogger(logger *zap.Logger) SessionBuilderOption {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}
