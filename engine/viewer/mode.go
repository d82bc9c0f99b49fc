package viewer

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-viewer/engine/widget"
	"go.uber.org/zap"
)

// Mode is the active camera control scheme.
type Mode int

const (
	// ModeOrbit delegates the camera to the orbit controller.
	ModeOrbit Mode = iota

	// ModeFlyThrough drives the camera from the on-screen joysticks.
	ModeFlyThrough
)

// String returns the configuration name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeOrbit:
		return "orbit"
	case ModeFlyThrough:
		return "flythrough"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode parses a configuration mode name ("orbit" or "flythrough", case-insensitive).
//
// Parameters:
//   - s: the mode name
//
// Returns:
//   - Mode: the parsed mode
//   - error: error if the name is unknown
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "orbit":
		return ModeOrbit, nil
	case "flythrough", "fly-through", "fly":
		return ModeFlyThrough, nil
	default:
		return ModeOrbit, fmt.Errorf("unknown camera mode %q", s)
	}
}

// Toggler is the part of an orbit controller the mode controller needs.
type Toggler interface {
	SetEnabled(enabled bool)
}

// ModeController switches between orbit and fly-through control. It owns joystick visibility and
// orbit controller enablement so that exactly one of them drives the camera.
type ModeController struct {
	mode           Mode
	orbit          Toggler
	joystickActive bool
	logger         *zap.Logger
}

// NewModeController creates a controller in orbit mode. The orbit toggler may be nil.
//
// Parameters:
//   - orbit: the orbit controller to enable and disable
//   - logger: logger for mode transitions (nil for none)
//
// Returns:
//   - *ModeController: the controller
func NewModeController(orbit Toggler, logger *zap.Logger) *ModeController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ModeController{mode: ModeOrbit, orbit: orbit, logger: logger}
}

// Mode returns the active mode.
func (mc *ModeController) Mode() Mode {
	return mc.mode
}

// JoystickActive reports whether the fly-through integrator should run.
func (mc *ModeController) JoystickActive() bool {
	return mc.joystickActive
}

// SetMode transitions to mode and applies its visibility and enablement. Re-entering the current
// mode only reapplies them. The container may be nil.
//
// Parameters:
//   - mode: the target mode
//   - container: the joystick container to show or hide
func (mc *ModeController) SetMode(mode Mode, container widget.Container) {
	prev := mc.mode
	mc.mode = mode

	switch mode {
	case ModeFlyThrough:
		if mc.orbit != nil {
			mc.orbit.SetEnabled(false)
		}
		if container != nil {
			container.Show()
		}
		mc.joystickActive = true
	default:
		mc.mode = ModeOrbit
		if mc.orbit != nil {
			mc.orbit.SetEnabled(true)
		}
		if container != nil {
			container.Hide()
		}
		mc.joystickActive = false
	}

	if prev != mc.mode {
		mc.logger.Info("camera mode changed",
			zap.Stringer("from", prev),
			zap.Stringer("to", mc.mode),
		)
	}
}
