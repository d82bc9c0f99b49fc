package camera

import "github.com/go-gl/mathgl/mgl32"

// OrbitControllerOption is a functional option for configuring an OrbitController.
type OrbitControllerOption func(*orbitControllerImpl)

// WithTarget sets the look-at/pivot point.
//
// Parameters:
//   - x: X coordinate of the target
//   - y: Y coordinate of the target
//   - z: Z coordinate of the target
//
// Returns:
//   - OrbitControllerOption: functional option to set the target position
func WithTarget(x, y, z float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.target = mgl32.Vec3{x, y, z}
	}
}

// WithRadiusBounds sets the minimum and maximum orbit radius.
//
// Parameters:
//   - min: minimum zoom distance
//   - max: maximum zoom distance
//
// Returns:
//   - OrbitControllerOption: functional option to set radius bounds
func WithRadiusBounds(min, max float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.minRadius = min
		oc.maxRadius = max
	}
}

// WithElevationBounds sets the minimum and maximum elevation angles.
//
// Parameters:
//   - min: minimum vertical angle in radians
//   - max: maximum vertical angle in radians
//
// Returns:
//   - OrbitControllerOption: functional option to set elevation bounds
func WithElevationBounds(min, max float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.minElevation = min
		oc.maxElevation = max
	}
}

// WithDamping enables rotation damping with the given factor in (0, 1]. A factor of 1 applies
// queued rotation in a single Update; values <= 0 disable damping.
//
// Parameters:
//   - factor: fraction of pending rotation applied per Update
//
// Returns:
//   - OrbitControllerOption: functional option to set damping
func WithDamping(factor float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		if factor <= 0 || factor > 1 {
			factor = 1
		}
		oc.dampingFactor = factor
	}
}

// WithRotateSpeed sets the pointer drag sensitivity in radians per pixel.
//
// Parameters:
//   - speed: radians of rotation per pixel dragged
//
// Returns:
//   - OrbitControllerOption: functional option to set rotate speed
func WithRotateSpeed(speed float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.rotateSpeed = speed
	}
}

// WithZoomSpeed sets the zoom speed multiplier.
//
// Parameters:
//   - speed: multiplier for zoom input
//
// Returns:
//   - OrbitControllerOption: functional option to set zoom speed
func WithZoomSpeed(speed float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.zoomSpeed = speed
	}
}

// WithEnabled sets the initial enablement. Controllers start enabled.
//
// Parameters:
//   - enabled: initial enablement state
//
// Returns:
//   - OrbitControllerOption: functional option to set enablement
func WithEnabled(enabled bool) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.enabled = enabled
	}
}
