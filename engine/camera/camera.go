package camera

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/go-gl/mathgl/mgl32"
)

type cameraImpl struct {
	mu *sync.Mutex

	pose Pose
	up   [3]float32

	fov    float32
	aspect float32
	near   float32
	far    float32

	viewMatrix           [16]float32
	projectionMatrix     [16]float32
	viewProjectionMatrix [16]float32
}

// Camera defines the interface for the viewer camera.
// The camera owns its Pose, which is mutated either by the fly-through integrator or by an
// OrbitController, and derives view/projection matrices from it via Update().
type Camera interface {
	// Pose returns a copy of the camera's current pose.
	//
	// Returns:
	//   - Pose: position, yaw and pitch
	Pose() Pose

	// SetPose replaces the camera's pose. Matrices are refreshed on the next Update.
	//
	// Parameters:
	//   - p: the new pose
	SetPose(p Pose)

	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: world-space position
	Position() mgl32.Vec3

	// SetPosition sets the camera's world-space position.
	//
	// Parameters:
	//   - pos: world-space position
	SetPosition(pos mgl32.Vec3)

	// Yaw returns the rotation about the world Y axis in radians.
	//
	// Returns:
	//   - float32: yaw in radians, unbounded
	Yaw() float32

	// Pitch returns the rotation about the camera's horizontal axis in radians.
	//
	// Returns:
	//   - float32: pitch in radians
	Pitch() float32

	// Fov returns the field of view in radians.
	//
	// Returns:
	//   - float32: field of view in radians
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float32: near plane distance
	Near() float32

	// Far returns the far clipping plane distance.
	//
	// Returns:
	//   - float32: far plane distance
	Far() float32

	// ViewMatrix returns the 4x4 view matrix computed by the last Update (column-major).
	//
	// Returns:
	//   - [16]float32: the view matrix
	ViewMatrix() [16]float32

	// ProjectionMatrix returns the 4x4 projection matrix (column-major).
	//
	// Returns:
	//   - [16]float32: the projection matrix
	ProjectionMatrix() [16]float32

	// ViewProjectionMatrix returns the combined view-projection matrix (column-major).
	//
	// Returns:
	//   - [16]float32: the combined view-projection matrix
	ViewProjectionMatrix() [16]float32

	// Update recomputes the matrices from the current pose and perspective settings.
	// Should be called once per frame before rendering.
	Update()

	// SetAspect sets the aspect ratio (width / height) and recomputes matrices.
	//
	// Parameters:
	//   - aspect: the aspect ratio
	SetAspect(aspect float32)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera at the origin looking down -Z with default perspective settings.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:     &sync.Mutex{},
		up:     [3]float32{0, 1, 0},
		fov:    45.0 * (math.Pi / 180.0), // radians
		aspect: 1.0,
		near:   0.1,
		far:    100.0,
	}
	for _, option := range options {
		option(c)
	}
	c.updateMatrices()
	return c
}

func (c *cameraImpl) Pose() Pose {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pose
}

func (c *cameraImpl) SetPose(p Pose) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pose = p
}

func (c *cameraImpl) Position() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pose.Position
}

func (c *cameraImpl) SetPosition(pos mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pose.Position = pos
}

func (c *cameraImpl) Yaw() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pose.Yaw
}

func (c *cameraImpl) Pitch() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pose.Pitch
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) ViewMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) Update() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.updateMatrices()
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if aspect <= 0 {
		return
	}
	c.aspect = aspect
	c.updateMatrices()
}

// updateMatrices recalculates the view, projection and view-projection matrices from the pose.
// The look target is one unit along the pose's forward vector.
// Caller must hold the mutex.
func (c *cameraImpl) updateMatrices() {
	eye := c.pose.Position
	center := eye.Add(c.pose.Forward())

	common.LookAt(c.viewMatrix[:],
		eye.X(), eye.Y(), eye.Z(),
		center.X(), center.Y(), center.Z(),
		c.up[0], c.up[1], c.up[2],
	)

	common.Perspective(c.projectionMatrix[:],
		c.fov, c.aspect, c.near, c.far,
	)

	common.Mul4(c.viewProjectionMatrix[:], c.projectionMatrix[:], c.viewMatrix[:])
}
