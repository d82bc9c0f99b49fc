package viewer

import (
	"math"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/chewxy/math32"
)

const (
	// DefaultMoveSpeed is the distance travelled per frame at full stick deflection.
	DefaultMoveSpeed float32 = 0.05

	// DefaultTurnSpeed is the angle in radians turned per frame at full stick deflection.
	DefaultTurnSpeed float32 = 0.025

	// maxPitch bounds pitch in both directions.
	maxPitch = float32(math.Pi / 2)
)

// Integrator advances a camera pose from MovementState once per frame. It keeps no state between
// calls; the step is constant per call with no delta-time scaling.
type Integrator struct {
	MoveSpeed float32
	TurnSpeed float32
}

// NewIntegrator returns an Integrator with the default speeds.
func NewIntegrator() Integrator {
	return Integrator{MoveSpeed: DefaultMoveSpeed, TurnSpeed: DefaultTurnSpeed}
}

// Step returns the pose after one frame of movement.
//
// Translation is relative to the yaw the pose had before this step; turning is applied after.
// Pitch is clamped to [-pi/2, pi/2]. Yaw accumulates without wrapping. Non-finite axes are
// treated as zero.
//
// Parameters:
//   - p: the current pose
//   - m: the movement axes
//
// Returns:
//   - camera.Pose: the advanced pose
func (in Integrator) Step(p camera.Pose, m MovementState) camera.Pose {
	forward := finite(m.Forward)
	right := finite(m.Right)

	sinYaw, cosYaw := math32.Sincos(p.Yaw)
	p.Position[0] += (sinYaw*forward + cosYaw*right) * in.MoveSpeed
	p.Position[2] += (cosYaw*forward - sinYaw*right) * in.MoveSpeed

	p.Yaw -= finite(m.TurnX) * in.TurnSpeed
	p.Pitch -= finite(m.TurnY) * in.TurnSpeed
	p.Pitch = common.Clamp(finite(p.Pitch), -maxPitch, maxPitch)

	return p
}

func finite(v float32) float32 {
	if math32.IsNaN(v) || math32.IsInf(v, 0) {
		return 0
	}
	return v
}
