package engine

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/viewer"
	"github.com/Carmen-Shannon/oxy-viewer/engine/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeHost runs a fixed number of message loop iterations without a display.
type fakeHost struct {
	*common.FrameQueue

	iterations int
	closed     bool
	loops      int

	onUpdate  func()
	onResize  func(width, height int)
	onScroll  func(delta float32)
	onKeyDown func(keyCode uint32)
	onPointer func(ev common.PointerEvent)
}

func newFakeHost(iterations int) *fakeHost {
	return &fakeHost{FrameQueue: common.NewFrameQueue(), iterations: iterations}
}

func (h *fakeHost) SetUpdateCallback(cb func())                     { h.onUpdate = cb }
func (h *fakeHost) SetResizeCallback(cb func(width, height int))    { h.onResize = cb }
func (h *fakeHost) SetScrollCallback(cb func(delta float32))        { h.onScroll = cb }
func (h *fakeHost) SetKeyDownCallback(cb func(keyCode uint32))      { h.onKeyDown = cb }
func (h *fakeHost) SetPointerCallback(cb func(common.PointerEvent)) { h.onPointer = cb }
func (h *fakeHost) RequestClose()                                   { h.closed = true }
func (h *fakeHost) Width() int                                      { return 800 }
func (h *fakeHost) Height() int                                     { return 600 }

func (h *fakeHost) ProcessMessages() {
	for h.loops < h.iterations && !h.closed {
		h.loops++
		h.Run()
		if h.onUpdate != nil {
			h.onUpdate()
		}
	}
}

type countingRenderer struct{ calls int }

func (r *countingRenderer) Render(camera.Camera, []widget.Circle) error {
	r.calls++
	return nil
}

func newSession(host *fakeHost, r *countingRenderer) *viewer.Session {
	cam := camera.NewCamera()
	return viewer.NewSession(cam, host,
		viewer.WithRenderer(r),
		viewer.WithOrbitController(camera.NewOrbitController(cam)),
	)
}

func TestRunWithoutWindow(t *testing.T) {
	assert.ErrorIs(t, NewEngine().Run(), ErrNoWindow)
}

func TestRunDrivesSessionsUntilWindowCloses(t *testing.T) {
	host := newFakeHost(3)
	r1, r2 := &countingRenderer{}, &countingRenderer{}
	s1, s2 := newSession(host, r1), newSession(host, r2)

	e := NewEngine(WithWindow(host), WithSession(0, s1), WithSession(1, s2), WithProfiling(true))
	require.NoError(t, e.Run())

	assert.Equal(t, 3, r1.calls)
	assert.Equal(t, 3, r2.calls)
	assert.False(t, s1.Running())
	assert.False(t, s2.Running())
	assert.True(t, host.closed)
	assert.Zero(t, host.Pending())
}

func TestQuitFromUpdateStopsLoop(t *testing.T) {
	host := newFakeHost(10)
	r := &countingRenderer{}
	e := NewEngine(WithWindow(host), WithSession(0, newSession(host, r)))

	e.SetUpdateCallback(func() {
		if r.calls == 2 {
			e.Quit()
		}
	})
	require.NoError(t, e.Run())

	assert.Equal(t, 2, r.calls)
	assert.Equal(t, 2, host.loops)
	assert.NotPanics(t, e.Quit)
}

func TestToggleKeyFlipsEverySession(t *testing.T) {
	host := newFakeHost(0)
	s1, s2 := newSession(host, &countingRenderer{}), newSession(host, &countingRenderer{})
	NewEngine(WithWindow(host), WithSession(0, s1), WithSession(1, s2))

	host.onKeyDown(common.KeyO)
	assert.Equal(t, viewer.ModeOrbit, s1.Mode())

	host.onKeyDown(common.KeyM)
	assert.Equal(t, viewer.ModeFlyThrough, s1.Mode())
	assert.Equal(t, viewer.ModeFlyThrough, s2.Mode())
}

func TestCustomToggleKey(t *testing.T) {
	host := newFakeHost(0)
	s := newSession(host, &countingRenderer{})
	e := NewEngine(WithWindow(host), WithSession(0, s), WithToggleKey(common.KeyTab))

	host.onKeyDown(common.KeyM)
	assert.Equal(t, viewer.ModeOrbit, s.Mode())
	host.onKeyDown(common.KeyTab)
	assert.Equal(t, viewer.ModeFlyThrough, s.Mode())

	e.SetToggleKey(common.KeySpace)
	host.onKeyDown(common.KeySpace)
	assert.Equal(t, viewer.ModeOrbit, s.Mode())
}

func TestPointerAndResizeRouting(t *testing.T) {
	host := newFakeHost(0)
	s := newSession(host, &countingRenderer{})
	NewEngine(WithWindow(host), WithSession(0, s))
	s.SetMode(viewer.ModeFlyThrough)

	host.onResize(1000, 500)
	assert.InDelta(t, 2, s.Camera().Aspect(), 1e-6)

	x, y := s.MoveJoystick().Center()
	host.onPointer(common.MouseEvent(common.PointerPress, x, y))
	host.onPointer(common.MouseEvent(common.PointerMove, x+40, y))
	assert.InDelta(t, 1, s.Movement().Right, 1e-5)

	host.onPointer(common.MouseEvent(common.PointerRelease, x+40, y))
	assert.True(t, s.Movement().Idle())
	assert.NotPanics(t, func() { host.onScroll(1) })
}

func TestSessionRegistry(t *testing.T) {
	host := newFakeHost(1)
	e := NewEngine(WithWindow(host))
	s := newSession(host, &countingRenderer{})

	require.NoError(t, e.AddSession(5, s))
	assert.Same(t, s, e.Session(5))
	assert.Len(t, e.Sessions(), 1)
	assert.Nil(t, e.Session(6))

	e.RemoveSession(5)
	assert.Empty(t, e.Sessions())
	e.RemoveSession(5)
}

func TestAddSessionWhileRunning(t *testing.T) {
	host := newFakeHost(3)
	late := &countingRenderer{}
	lateSession := newSession(host, late)

	e := NewEngine(WithWindow(host))
	e.SetUpdateCallback(func() {
		if host.loops == 1 {
			require.NoError(t, e.AddSession(1, lateSession))
		}
	})
	require.NoError(t, e.Run())

	// Started after the first iteration, it renders on the remaining two.
	assert.Equal(t, 2, late.calls)
	assert.False(t, lateSession.Running())
}
