package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Pose is a camera's position and orientation. Yaw rotates about the world Y axis, pitch about
// the camera's horizontal axis; both are in radians. There is no roll.
//
// At yaw = pitch = 0 the camera looks down -Z. Positive pitch looks up.
type Pose struct {
	Position mgl32.Vec3
	Yaw      float32
	Pitch    float32
}

// Forward returns the unit look direction for the pose (yaw applied before pitch).
//
// Returns:
//   - mgl32.Vec3: normalized view direction in world space
func (p Pose) Forward() mgl32.Vec3 {
	sy, cy := math32.Sincos(p.Yaw)
	sp, cp := math32.Sincos(p.Pitch)
	return mgl32.Vec3{-sy * cp, sp, -cy * cp}
}

// LookAtPose returns the pose at eye whose view direction points at target.
// If eye and target coincide the orientation is zero.
//
// Parameters:
//   - eye: camera position
//   - target: point to look at
//
// Returns:
//   - Pose: the pose at eye facing target
func LookAtPose(eye, target mgl32.Vec3) Pose {
	p := Pose{Position: eye}
	dir := target.Sub(eye)
	if dir.Len() < 1e-8 {
		return p
	}
	dir = dir.Normalize()
	p.Yaw = math32.Atan2(-dir.X(), -dir.Z())
	p.Pitch = math32.Asin(mgl32.Clamp(dir.Y(), -1, 1))
	return p
}
