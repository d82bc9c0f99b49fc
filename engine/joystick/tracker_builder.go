package joystick

import "go.uber.org/zap"

// TrackerBuilderOption is a functional option for configuring a Tracker.
type TrackerBuilderOption func(*trackerImpl)

// WithRadius sets the knob travel radius in pixels. Non-positive values keep the default.
//
// Parameters:
//   - radius: maximum knob displacement in pixels
//
// Returns:
//   - TrackerBuilderOption: option function to apply
func WithRadius(radius float32) TrackerBuilderOption {
	return func(t *trackerImpl) {
		if radius > 0 {
			t.radius = radius
		}
	}
}

// WithLogger sets the logger used for debug tracing of sessions.
//
// Parameters:
//   - logger: the zap logger
//
// Returns:
//   - TrackerBuilderOption: option function to apply
func WithLogger(logger *zap.Logger) TrackerBuilderOption {
	return func(t *trackerImpl) {
		if logger != nil {
			t.logger = logger
		}
	}
}
