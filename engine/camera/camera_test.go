package camera

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-4

func TestPoseForward(t *testing.T) {
	f := Pose{}.Forward()
	assert.InDelta(t, 0, f.X(), eps)
	assert.InDelta(t, 0, f.Y(), eps)
	assert.InDelta(t, -1, f.Z(), eps)

	// Quarter turn of yaw looks down -X.
	f = Pose{Yaw: math.Pi / 2}.Forward()
	assert.InDelta(t, -1, f.X(), eps)
	assert.InDelta(t, 0, f.Z(), eps)

	// Positive pitch looks up.
	f = Pose{Pitch: math.Pi / 2}.Forward()
	assert.InDelta(t, 1, f.Y(), eps)
}

func TestLookAtPoseRoundTrip(t *testing.T) {
	eye := mgl32.Vec3{3, 2, 5}
	target := mgl32.Vec3{0, 0.5, 0}

	p := LookAtPose(eye, target)
	want := target.Sub(eye).Normalize()
	got := p.Forward()
	assert.InDelta(t, want.X(), got.X(), eps)
	assert.InDelta(t, want.Y(), got.Y(), eps)
	assert.InDelta(t, want.Z(), got.Z(), eps)
	assert.Equal(t, eye, p.Position)

	// Coincident points keep a zero orientation.
	p = LookAtPose(target, target)
	assert.Equal(t, float32(0), p.Yaw)
	assert.Equal(t, float32(0), p.Pitch)
}

func TestCameraPoseAccessors(t *testing.T) {
	c := NewCamera(WithPosition(1, 2, 3), WithYaw(0.5), WithPitch(-0.25))

	assert.Equal(t, mgl32.Vec3{1, 2, 3}, c.Position())
	assert.Equal(t, float32(0.5), c.Yaw())
	assert.Equal(t, float32(-0.25), c.Pitch())

	c.SetPose(Pose{Position: mgl32.Vec3{4, 5, 6}, Yaw: 1})
	assert.Equal(t, mgl32.Vec3{4, 5, 6}, c.Pose().Position)
	assert.Equal(t, float32(1), c.Yaw())
	assert.Equal(t, float32(0), c.Pitch())
}

func TestCameraUpdateViewMatrix(t *testing.T) {
	c := NewCamera(WithPosition(0, 0, 5))
	c.Update()

	// Looking down -Z from z=5: the view matrix is a pure translation of -5 along Z.
	v := c.ViewMatrix()
	var want [16]float32
	common.Identity(want[:])
	want[14] = -5
	for i := range v {
		assert.InDelta(t, want[i], v[i], eps, "element %d", i)
	}
}

func TestCameraSetAspectIgnoresNonPositive(t *testing.T) {
	c := NewCamera(WithAspect(2))
	c.SetAspect(0)
	assert.Equal(t, float32(2), c.Aspect())
	c.SetAspect(1.5)
	assert.Equal(t, float32(1.5), c.Aspect())
}

func TestOrbitControllerFacesTargetOnCreate(t *testing.T) {
	c := NewCamera(WithPosition(0, 0.5, 10))
	oc := NewOrbitController(c, WithTarget(0, 0.5, 0))

	require.True(t, oc.Enabled())
	p := c.Pose()
	assert.InDelta(t, 10, p.Position.Sub(oc.Target()).Len(), eps)
	assert.InDelta(t, 0, p.Yaw, eps)
	assert.InDelta(t, 0, p.Pitch, eps)
}

func TestOrbitControllerDampedRotation(t *testing.T) {
	c := NewCamera(WithPosition(0, 0, 10))
	oc := NewOrbitController(c, WithTarget(0, 0, 0), WithDamping(0.5))

	oc.Rotate(1, 0)
	oc.Update()
	first := c.Pose().Yaw
	oc.Update()
	second := c.Pose().Yaw

	// Half of the pending rotation lands on the first update, a quarter on the second.
	assert.InDelta(t, 0.5, first, eps)
	assert.InDelta(t, 0.75, second, eps)
	assert.InDelta(t, 10, c.Position().Len(), eps)
}

func TestOrbitControllerZoomClamped(t *testing.T) {
	c := NewCamera(WithPosition(0, 0, 10))
	oc := NewOrbitController(c, WithTarget(0, 0, 0), WithRadiusBounds(2, 20), WithZoomSpeed(1))

	oc.Zoom(100)
	oc.Update()
	assert.InDelta(t, 2, c.Position().Len(), eps)

	oc.Zoom(-100)
	oc.Update()
	assert.InDelta(t, 20, c.Position().Len(), eps)
}

func TestOrbitControllerElevationClamped(t *testing.T) {
	c := NewCamera(WithPosition(0, 0, 10))
	oc := NewOrbitController(c, WithTarget(0, 0, 0), WithDamping(1), WithElevationBounds(-0.5, 0.5))

	oc.Rotate(0, 3)
	oc.Update()
	assert.InDelta(t, -0.5, c.Pitch(), eps)
}

func TestOrbitControllerDisabledIgnoresInput(t *testing.T) {
	c := NewCamera(WithPosition(0, 0, 10))
	oc := NewOrbitController(c, WithTarget(0, 0, 0), WithDamping(1))
	before := c.Pose()

	oc.SetEnabled(false)
	oc.Rotate(1, 1)
	oc.Zoom(5)
	oc.HandlePointer(common.MouseEvent(common.PointerPress, 0, 0))
	oc.HandlePointer(common.MouseEvent(common.PointerMove, 100, 0))
	oc.Update()
	assert.Equal(t, before, c.Pose())

	// Re-enabling starts from a clean slate.
	oc.SetEnabled(true)
	oc.Update()
	assert.InDelta(t, before.Yaw, c.Yaw(), eps)
}

func TestOrbitControllerPointerDrag(t *testing.T) {
	c := NewCamera(WithPosition(0, 0, 10))
	oc := NewOrbitController(c, WithTarget(0, 0, 0), WithDamping(1), WithRotateSpeed(0.01))

	oc.HandlePointer(common.MouseEvent(common.PointerPress, 100, 100))
	oc.HandlePointer(common.MouseEvent(common.PointerMove, 150, 100))
	oc.HandlePointer(common.MouseEvent(common.PointerRelease, 150, 100))
	// Moves after release are ignored.
	oc.HandlePointer(common.MouseEvent(common.PointerMove, 500, 100))
	oc.Update()

	assert.InDelta(t, -0.5, c.Yaw(), eps)
}

func TestOrbitControllerAdoptsMovedCamera(t *testing.T) {
	c := NewCamera(WithPosition(0, 0, 10))
	oc := NewOrbitController(c, WithTarget(0, 0, 0))

	// Something else moves the camera; the next update orbits from there.
	c.SetPose(Pose{Position: mgl32.Vec3{6, 0, 0}})
	oc.Update()

	assert.InDelta(t, 6, c.Position().Len(), eps)
	f := c.Pose().Forward()
	assert.InDelta(t, -1, f.X(), eps)
}
