package joystick

import (
	"math"
	"math/rand"
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mouse(kind common.PointerKind, x, y float32) common.PointerEvent {
	return common.MouseEvent(kind, x, y)
}

func touch(kind common.PointerKind, points ...common.PointerPoint) common.PointerEvent {
	return common.TouchEvent(kind, points...)
}

func TestTrackerClampsToUnitMagnitude(t *testing.T) {
	tr := NewTracker(AxisMove)
	tr.Handle(mouse(common.PointerPress, 100, 100))

	// Raw distance 200 at angle 0 saturates to exactly (1, 0).
	u, ok := tr.Handle(mouse(common.PointerMove, 300, 100))
	require.True(t, ok)
	assert.Equal(t, AxisMove, u.Axis)
	assert.Equal(t, float32(1), u.Value.X)
	assert.Equal(t, float32(0), u.Value.Y)
	assert.Equal(t, Vector2{X: 40, Y: 0}, tr.Knob())
}

func TestTrackerWithinRadiusIsLinear(t *testing.T) {
	tr := NewTracker(AxisLook)
	tr.Handle(mouse(common.PointerPress, 0, 0))

	u, ok := tr.Handle(mouse(common.PointerMove, 0, -20))
	require.True(t, ok)
	assert.InDelta(t, 0, u.Value.X, 1e-6)
	assert.InDelta(t, -0.5, u.Value.Y, 1e-6)
}

func TestTrackerOutputInUnitDiskAndPreservesDirection(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	tr := NewTracker(AxisMove, WithRadius(40))

	for i := 0; i < 2000; i++ {
		dx := float32(rng.Float64()*1000 - 500)
		dy := float32(rng.Float64()*1000 - 500)

		tr.Release()
		tr.Handle(mouse(common.PointerPress, 500, 500))
		u, ok := tr.Handle(mouse(common.PointerMove, 500+dx, 500+dy))
		require.True(t, ok)

		ox, oy := float64(u.Value.X), float64(u.Value.Y)
		assert.LessOrEqual(t, ox*ox+oy*oy, 1.0)
		if dx != 0 || dy != 0 {
			want := math.Atan2(float64(dy), float64(dx))
			got := math.Atan2(oy, ox)
			diff := math.Abs(want - got)
			if diff > math.Pi {
				diff = 2*math.Pi - diff
			}
			assert.Less(t, diff, 1e-3, "delta (%v, %v)", dx, dy)
		}
	}
}

func TestUnitDiskRescalesOverflow(t *testing.T) {
	v := unitDisk(Vector2{X: 0.8, Y: 0.6000001})
	m := float64(v.X)*float64(v.X) + float64(v.Y)*float64(v.Y)
	assert.LessOrEqual(t, m, 1.0)
	assert.InDelta(t, 0.8, v.X, 1e-6)
	assert.InDelta(t, 0.6, v.Y, 1e-6)

	inside := Vector2{X: 0.5, Y: -0.5}
	assert.Equal(t, inside, unitDisk(inside))
	assert.Equal(t, Vector2{X: 1}, unitDisk(Vector2{X: 1}))
}

func TestTrackerZeroDeltaIsNeutral(t *testing.T) {
	tr := NewTracker(AxisMove)
	tr.Handle(mouse(common.PointerPress, 50, 50))

	u, ok := tr.Handle(mouse(common.PointerMove, 50, 50))
	require.True(t, ok)
	assert.Equal(t, Vector2{}, u.Value)
	assert.False(t, math.IsNaN(float64(u.Value.X)))
}

func TestTrackerReleaseAlwaysNeutral(t *testing.T) {
	tr := NewTracker(AxisLook)
	tr.Handle(mouse(common.PointerPress, 0, 0))
	tr.Handle(mouse(common.PointerMove, 30, 30))

	u, ok := tr.Handle(mouse(common.PointerRelease, 30, 30))
	require.True(t, ok)
	assert.Equal(t, AxisUpdate{Axis: AxisLook, Released: true}, u)
	assert.Equal(t, Vector2{}, tr.Knob())
	assert.False(t, tr.Session().Active)

	// An orphaned release finds nothing to end and reports nothing.
	_, ok = tr.Handle(mouse(common.PointerRelease, 0, 0))
	assert.False(t, ok)
	assert.Equal(t, Vector2{}, tr.Knob())

	// A direct Release stays an idempotent reset.
	assert.Equal(t, AxisUpdate{Axis: AxisLook, Released: true}, tr.Release())
	assert.Equal(t, AxisUpdate{Axis: AxisLook, Released: true}, tr.Release())
}

func TestTrackerIdleIgnoresReleases(t *testing.T) {
	tr := NewTracker(AxisMove)

	_, ok := tr.Handle(touch(common.PointerRelease, common.PointerPoint{ID: 2, X: 400, Y: 100}))
	assert.False(t, ok)
	_, ok = tr.Handle(mouse(common.PointerRelease, 10, 10))
	assert.False(t, ok)
	assert.Equal(t, DragSession{}, tr.Session())
}

func TestTrackerAtRestIgnoresMoves(t *testing.T) {
	tr := NewTracker(AxisMove)
	for i := 0; i < 5; i++ {
		_, ok := tr.Handle(mouse(common.PointerMove, float32(i*100), 0))
		assert.False(t, ok)
	}
	assert.Equal(t, Vector2{}, tr.Knob())
}

func TestTrackerTouchMoveWithoutPointsIsNoop(t *testing.T) {
	tr := NewTracker(AxisMove)
	tr.Handle(touch(common.PointerPress, common.PointerPoint{ID: 1, X: 10, Y: 10}))
	tr.Handle(touch(common.PointerMove, common.PointerPoint{ID: 1, X: 20, Y: 10}))
	before := tr.Session()

	_, ok := tr.Handle(touch(common.PointerMove))
	assert.False(t, ok)
	assert.Equal(t, before, tr.Session())
}

func TestTrackerMalformedPointIgnored(t *testing.T) {
	tr := NewTracker(AxisMove)
	nan := float32(math.NaN())

	tr.Handle(mouse(common.PointerPress, nan, 0))
	assert.False(t, tr.Session().Active)

	tr.Handle(mouse(common.PointerPress, 0, 0))
	_, ok := tr.Handle(mouse(common.PointerMove, nan, 5))
	assert.False(t, ok)
	assert.Equal(t, Vector2{}, tr.Knob())
}

func TestTrackerCrossSourceReleaseResets(t *testing.T) {
	tr := NewTracker(AxisMove)
	tr.Handle(touch(common.PointerPress, common.PointerPoint{ID: 4, X: 0, Y: 0}))
	tr.Handle(touch(common.PointerMove, common.PointerPoint{ID: 4, X: 10, Y: 0}))

	// A mouse-up ends a touch-started session.
	u, ok := tr.Handle(mouse(common.PointerRelease, 0, 0))
	require.True(t, ok)
	assert.Equal(t, Vector2{}, u.Value)
	assert.False(t, tr.Session().Active)

	// And the reverse.
	tr.Handle(mouse(common.PointerPress, 0, 0))
	_, ok = tr.Handle(touch(common.PointerRelease))
	require.True(t, ok)
	assert.False(t, tr.Session().Active)
}

func TestTrackerIgnoresOtherContacts(t *testing.T) {
	tr := NewTracker(AxisMove)
	tr.Handle(touch(common.PointerPress, common.PointerPoint{ID: 1, X: 0, Y: 0}))

	// Moves of another finger do not drive this tracker.
	_, ok := tr.Handle(touch(common.PointerMove, common.PointerPoint{ID: 2, X: 30, Y: 0}))
	assert.False(t, ok)

	// Moves of the followed finger do, even when listed after another.
	u, ok := tr.Handle(touch(common.PointerMove,
		common.PointerPoint{ID: 2, X: 99, Y: 99},
		common.PointerPoint{ID: 1, X: 20, Y: 0},
	))
	require.True(t, ok)
	assert.InDelta(t, 0.5, u.Value.X, 1e-6)

	// Lifting the other finger leaves this session alone.
	_, ok = tr.Handle(touch(common.PointerRelease, common.PointerPoint{ID: 2}))
	assert.False(t, ok)
	assert.True(t, tr.Session().Active)

	_, ok = tr.Handle(touch(common.PointerRelease, common.PointerPoint{ID: 1}))
	assert.True(t, ok)
	assert.False(t, tr.Session().Active)
}

func TestTrackerMouseMoveIgnoredDuringTouchSession(t *testing.T) {
	tr := NewTracker(AxisMove)
	tr.Handle(touch(common.PointerPress, common.PointerPoint{ID: 1, X: 0, Y: 0}))

	_, ok := tr.Handle(mouse(common.PointerMove, 40, 0))
	assert.False(t, ok)
}

func TestTrackerPressCompensatesDisplacedKnob(t *testing.T) {
	tr := NewTracker(AxisMove)
	tr.Handle(mouse(common.PointerPress, 100, 100))
	tr.Handle(mouse(common.PointerMove, 120, 100))
	require.Equal(t, Vector2{X: 20, Y: 0}, tr.Knob())

	// A second press without release (last press wins) keeps the knob where it is.
	tr.Handle(touch(common.PointerPress, common.PointerPoint{ID: 9, X: 300, Y: 300}))
	s := tr.Session()
	assert.True(t, s.Active)
	assert.Equal(t, common.SourceTouch, s.Source)
	assert.Equal(t, Vector2{X: 280, Y: 300}, s.Origin)

	u, ok := tr.Handle(touch(common.PointerMove, common.PointerPoint{ID: 9, X: 300, Y: 300}))
	require.True(t, ok)
	assert.InDelta(t, 0.5, u.Value.X, 1e-6)
	assert.InDelta(t, 0, u.Value.Y, 1e-6)
}

func TestTrackerPressAfterReleaseStartsAtPointer(t *testing.T) {
	tr := NewTracker(AxisMove)
	tr.Handle(mouse(common.PointerPress, 100, 100))
	tr.Handle(mouse(common.PointerMove, 120, 100))
	tr.Handle(mouse(common.PointerRelease, 120, 100))

	tr.Handle(mouse(common.PointerPress, 200, 200))
	assert.Equal(t, Vector2{X: 200, Y: 200}, tr.Session().Origin)
}

func TestTrackerCapturesDragOutsideWidget(t *testing.T) {
	tr := NewTracker(AxisLook)
	tr.Handle(mouse(common.PointerPress, 60, 60))

	// The tracker has no notion of bounds once a drag is active.
	u, ok := tr.Handle(mouse(common.PointerMove, 60, 5000))
	require.True(t, ok)
	assert.InDelta(t, 1, u.Value.Y, 1e-6)
}
