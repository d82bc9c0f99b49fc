package camera

import "github.com/go-gl/mathgl/mgl32"

type CameraBuilderOption func(*cameraImpl)

// WithPosition sets the camera's initial world-space position.
//
// Parameters:
//   - x, y, z: world-space coordinates
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's position
func WithPosition(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.pose.Position = mgl32.Vec3{x, y, z}
	}
}

// WithYaw sets the camera's initial yaw in radians.
//
// Parameters:
//   - yaw: rotation about the world Y axis
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's yaw
func WithYaw(yaw float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.pose.Yaw = yaw
	}
}

// WithPitch sets the camera's initial pitch in radians.
//
// Parameters:
//   - pitch: rotation about the camera's horizontal axis
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's pitch
func WithPitch(pitch float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.pose.Pitch = pitch
	}
}

// WithFov sets the camera's field of view in radians.
//
// Parameters:
//   - fov: field of view in radians
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's field of view
func WithFov(fov float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.fov = fov
	}
}

// WithAspect sets the camera's aspect ratio (width / height).
//
// Parameters:
//   - aspect: the aspect ratio to set
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's aspect ratio
func WithAspect(aspect float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.aspect = aspect
	}
}

// WithNear sets the near clipping plane distance.
//
// Parameters:
//   - near: near plane distance
//
// Returns:
//   - CameraBuilderOption: a function that sets the near plane
func WithNear(near float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.near = near
	}
}

// WithFar sets the far clipping plane distance.
//
// Parameters:
//   - far: far plane distance
//
// Returns:
//   - CameraBuilderOption: functional option to set the far plane
func WithFar(far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.far = far
	}
}
