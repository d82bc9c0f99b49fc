package joystick

import (
	"math"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/chewxy/math32"
	"go.uber.org/zap"
)

// DefaultRadius is the knob travel radius in pixels used when none is configured.
const DefaultRadius float32 = 40

// Tracker follows one pointer contact on a joystick widget and converts its displacement into a
// normalized AxisUpdate inside the unit disk.
//
// A Tracker holds exactly one DragSession. A new press replaces the current session; a release of
// any pointer source ends it. A tracker with no session ignores releases, since it has no contact
// to report. Trackers are not safe for concurrent use; they are driven from the
// UI thread that delivers pointer events.
type Tracker interface {
	// Axis returns the axis this tracker reports on.
	//
	// Returns:
	//   - Axis: the axis stamped on every emitted update
	Axis() Axis

	// Radius returns the knob travel radius in pixels.
	//
	// Returns:
	//   - float32: the radius
	Radius() float32

	// Handle applies a raw pointer event. Press events should only be delivered when the press
	// lands on the widget; move and release events are delivered regardless of position so that a
	// drag is never lost when the pointer leaves the widget.
	//
	// Parameters:
	//   - ev: the pointer event
	//
	// Returns:
	//   - AxisUpdate: the new output when one was produced
	//   - bool: true if an update was produced
	Handle(ev common.PointerEvent) (AxisUpdate, bool)

	// Press starts a new session following the given contact.
	//
	// Parameters:
	//   - source: the device that produced the contact
	//   - p: the contact position
	Press(source common.PointerSource, p common.PointerPoint)

	// Move updates the knob from the followed contact's current position.
	//
	// Parameters:
	//   - p: the contact position
	//
	// Returns:
	//   - AxisUpdate: the clamped, normalized output
	//   - bool: false if no session is active or the point is malformed
	Move(p common.PointerPoint) (AxisUpdate, bool)

	// Release recenters the knob and clears the session. Called directly it is idempotent and
	// always yields the neutral update; Handle only calls it for a tracker with an active session.
	//
	// Returns:
	//   - AxisUpdate: the zero update for this axis
	Release() AxisUpdate

	// Knob returns the visual knob offset in pixels relative to the widget centre.
	//
	// Returns:
	//   - Vector2: the knob offset, bounded by Radius
	Knob() Vector2

	// Session returns a copy of the current drag session.
	//
	// Returns:
	//   - DragSession: the session state
	Session() DragSession
}

type trackerImpl struct {
	axis    Axis
	radius  float32
	session DragSession
	logger  *zap.Logger
}

var _ Tracker = &trackerImpl{}

// NewTracker creates a Tracker at rest for the given axis.
//
// Parameters:
//   - axis: the axis stamped on emitted updates
//   - options: functional options to configure the tracker
//
// Returns:
//   - Tracker: the newly created tracker
func NewTracker(axis Axis, options ...TrackerBuilderOption) Tracker {
	t := &trackerImpl{
		axis:   axis,
		radius: DefaultRadius,
		logger: zap.NewNop(),
	}
	for _, opt := range options {
		opt(t)
	}
	return t
}

func (t *trackerImpl) Axis() Axis {
	return t.axis
}

func (t *trackerImpl) Radius() float32 {
	return t.radius
}

func (t *trackerImpl) Knob() Vector2 {
	return t.session.LastKnob
}

func (t *trackerImpl) Session() DragSession {
	return t.session
}

func (t *trackerImpl) Handle(ev common.PointerEvent) (AxisUpdate, bool) {
	switch ev.Kind {
	case common.PointerPress:
		for _, p := range ev.Points {
			if p.Valid() {
				t.Press(ev.Source, p)
				break
			}
		}
		return AxisUpdate{}, false

	case common.PointerMove:
		if !t.session.Active || ev.Source != t.session.Source {
			return AxisUpdate{}, false
		}
		p, ok := ev.Point(t.session.PointerID)
		if !ok {
			return AxisUpdate{}, false
		}
		return t.Move(p)

	case common.PointerRelease:
		if !t.session.Active || !t.releases(ev) {
			return AxisUpdate{}, false
		}
		return t.Release(), true
	}
	return AxisUpdate{}, false
}

// releases reports whether a release event ends the active session. Only a same-source release
// that names other contacts is ignored, so one thumb lifting does not end the other thumb's drag.
func (t *trackerImpl) releases(ev common.PointerEvent) bool {
	if ev.Source != t.session.Source || len(ev.Points) == 0 {
		return true
	}
	_, ok := ev.Point(t.session.PointerID)
	return ok
}

func (t *trackerImpl) Press(source common.PointerSource, p common.PointerPoint) {
	if !p.Valid() {
		return
	}
	knob := t.session.LastKnob
	t.session = DragSession{
		Active:    true,
		Source:    source,
		PointerID: p.ID,
		// Offsetting by the current knob keeps the knob from jumping if it was left displaced.
		Origin:   Vector2{X: p.X - knob.X, Y: p.Y - knob.Y},
		LastKnob: knob,
	}
	t.logger.Debug("joystick press",
		zap.Stringer("axis", t.axis),
		zap.Stringer("source", source),
		zap.Int("pointer", p.ID),
	)
}

func (t *trackerImpl) Move(p common.PointerPoint) (AxisUpdate, bool) {
	if !t.session.Active || !p.Valid() {
		return AxisUpdate{}, false
	}

	knob := clampToRadius(p.X-t.session.Origin.X, p.Y-t.session.Origin.Y, t.radius)
	t.session.LastKnob = knob

	return AxisUpdate{
		Axis:  t.axis,
		Value: unitDisk(Vector2{X: knob.X / t.radius, Y: knob.Y / t.radius}),
	}, true
}

func (t *trackerImpl) Release() AxisUpdate {
	if t.session.Active {
		t.logger.Debug("joystick release", zap.Stringer("axis", t.axis))
	}
	t.session = DragSession{}
	return AxisUpdate{Axis: t.axis, Released: true}
}

// unitDisk pulls v back inside the unit disk when float32 rounding of the polar clamp leaves it
// just outside. The direction is kept.
func unitDisk(v Vector2) Vector2 {
	m := float64(v.X)*float64(v.X) + float64(v.Y)*float64(v.Y)
	if m <= 1 {
		return v
	}
	s := float32(1 / math.Sqrt(m))
	v.X, v.Y = v.X*s, v.Y*s
	shrink := math32.Nextafter(1, 0)
	for float64(v.X)*float64(v.X)+float64(v.Y)*float64(v.Y) > 1 {
		v.X, v.Y = v.X*shrink, v.Y*shrink
	}
	return v
}

// clampToRadius limits the offset (dx, dy) to the given radius while keeping its direction.
// A zero offset maps to the origin.
func clampToRadius(dx, dy, radius float32) Vector2 {
	dist := math32.Hypot(dx, dy)
	angle := math32.Atan2(dy, dx)
	r := min(dist, radius)
	return Vector2{
		X: math32.Cos(angle) * r,
		Y: math32.Sin(angle) * r,
	}
}
