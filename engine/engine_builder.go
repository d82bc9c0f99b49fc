package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-viewer/engine/profiler"
	"github.com/Carmen-Shannon/oxy-viewer/engine/viewer"
	"go.uber.org/zap"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithProfilingInterval sets how often the profiler logs.
//
// Parameters:
//   - interval: the sampling interval
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfilingInterval(interval time.Duration) EngineBuilderOption {
	return func(e *engine) {
		e.profilerOptions = append(e.profilerOptions, profiler.WithInterval(interval))
	}
}

// WithWindow sets the window the engine runs in.
//
// Parameters:
//   - w: the window, usually a window.Window
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w Host) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithSession registers a session at the given z-index key during engine construction.
//
// Parameters:
//   - key: the z-index determining input order (lower first)
//   - s: the session to register
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithSession(key int, s *viewer.Session) EngineBuilderOption {
	return func(e *engine) {
		e.sessions[key] = s
	}
}

// WithToggleKey sets the key that flips sessions between orbit and fly-through.
//
// Parameters:
//   - keyCode: the key code
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithToggleKey(keyCode uint32) EngineBuilderOption {
	return func(e *engine) {
		e.toggleKey = keyCode
	}
}

// WithLogger sets the engine logger, which the profiler also uses.
//
// Parameters:
//   - logger: the zap logger
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithLogger(logger *zap.Logger) EngineBuilderOption {
	return func(e *engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}
