package camera

import (
	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/go-gl/mathgl/mgl32"
)

// OrbitController drives a Camera around a target point using spherical coordinates
// (radius, azimuth, elevation). It reads the camera's current position on every Update, so a
// camera moved by other means is picked up from where it is when orbiting resumes.
//
// Rotation input is damped: each Update applies a fraction of the pending rotation and decays the
// remainder, so the camera keeps easing after input stops.
type OrbitController interface {
	// Enabled reports whether the controller accepts input and should be updated each frame.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// SetEnabled enables or disables the controller. Disabling discards pending damped rotation
	// and any drag in progress.
	//
	// Parameters:
	//   - enabled: new enablement state
	SetEnabled(enabled bool)

	// Update applies pending rotation and zoom to the camera and points it at the target.
	// Intended to be called once per frame while enabled.
	Update()

	// Rotate queues a rotation. Positive dAzimuth orbits right, positive dElevation tilts up.
	//
	// Parameters:
	//   - dAzimuth: horizontal angle delta in radians
	//   - dElevation: vertical angle delta in radians
	Rotate(dAzimuth, dElevation float32)

	// Zoom adjusts the orbit radius. Positive delta zooms in (closer to target).
	//
	// Parameters:
	//   - delta: zoom amount scaled by ZoomSpeed
	Zoom(delta float32)

	// HandlePointer turns a mouse/touch drag into rotation. Ignored while disabled.
	//
	// Parameters:
	//   - ev: the raw pointer event
	HandlePointer(ev common.PointerEvent)

	// Target returns the orbit pivot.
	//
	// Returns:
	//   - mgl32.Vec3: world-space target position
	Target() mgl32.Vec3

	// SetTarget sets the orbit pivot. Takes effect on the next Update.
	//
	// Parameters:
	//   - target: world-space coordinates
	SetTarget(target mgl32.Vec3)

	// Camera returns the controlled camera.
	//
	// Returns:
	//   - Camera: the camera this controller writes to
	Camera() Camera

	// MinRadius returns the minimum allowed orbit radius.
	//
	// Returns:
	//   - float32: minimum zoom distance
	MinRadius() float32

	// MaxRadius returns the maximum allowed orbit radius.
	//
	// Returns:
	//   - float32: maximum zoom distance
	MaxRadius() float32

	// MinElevation returns the minimum allowed elevation angle.
	//
	// Returns:
	//   - float32: minimum elevation in radians
	MinElevation() float32

	// MaxElevation returns the maximum allowed elevation angle.
	//
	// Returns:
	//   - float32: maximum elevation in radians
	MaxElevation() float32
}
