package widget

import (
	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/joystick"
)

// Anchor selects the screen corner a widget is laid out against.
type Anchor int

const (
	AnchorBottomLeft Anchor = iota
	AnchorBottomRight
	AnchorTopLeft
	AnchorTopRight
)

// Widget is an on-screen input element owned by a Container.
type Widget interface {
	// Name returns the widget's identifier.
	//
	// Returns:
	//   - string: the widget name
	Name() string

	// Contains reports whether a screen point lies on the widget. Used to route presses.
	//
	// Parameters:
	//   - x, y: screen coordinates in pixels
	//
	// Returns:
	//   - bool: true if the point hits the widget
	Contains(x, y float32) bool

	// Layout positions the widget for a container of the given size.
	//
	// Parameters:
	//   - width, height: container size in pixels
	Layout(width, height int)

	// Handle applies a pointer event routed by the container.
	//
	// Parameters:
	//   - ev: the pointer event
	//
	// Returns:
	//   - joystick.AxisUpdate: output produced by the event, if any
	//   - bool: true if an update was produced
	Handle(ev common.PointerEvent) (joystick.AxisUpdate, bool)

	// Shapes returns what to draw for the widget at its current state.
	//
	// Returns:
	//   - []Circle: shapes in back-to-front order
	Shapes() []Circle
}

// Joystick is a circular widget wrapping a joystick.Tracker. Its knob is drawn at
// Center() + Tracker().Knob().
type Joystick struct {
	name    string
	tracker joystick.Tracker

	anchor Anchor
	margin float32
	size   float32

	centerX float32
	centerY float32
}

var _ Widget = &Joystick{}

// NewJoystick creates a joystick widget. Layout must be called before it can receive presses.
//
// Parameters:
//   - name: widget identifier
//   - tracker: the tracker that turns drags into axis updates
//   - anchor: screen corner the widget hugs
//   - margin: distance from both edges of the corner in pixels
//   - size: diameter of the widget in pixels
//
// Returns:
//   - *Joystick: the widget
func NewJoystick(name string, tracker joystick.Tracker, anchor Anchor, margin, size float32) *Joystick {
	return &Joystick{
		name:    name,
		tracker: tracker,
		anchor:  anchor,
		margin:  margin,
		size:    size,
	}
}

func (j *Joystick) Name() string {
	return j.name
}

// Tracker returns the wrapped tracker.
func (j *Joystick) Tracker() joystick.Tracker {
	return j.tracker
}

// Center returns the widget centre in screen pixels.
func (j *Joystick) Center() (x, y float32) {
	return j.centerX, j.centerY
}

// Size returns the widget diameter in pixels.
func (j *Joystick) Size() float32 {
	return j.size
}

// KnobPosition returns the knob centre in screen pixels.
func (j *Joystick) KnobPosition() (x, y float32) {
	k := j.tracker.Knob()
	return j.centerX + k.X, j.centerY + k.Y
}

func (j *Joystick) Contains(x, y float32) bool {
	if j.size <= 0 {
		return false
	}
	r := j.size / 2
	dx := x - j.centerX
	dy := y - j.centerY
	return dx*dx+dy*dy <= r*r
}

func (j *Joystick) Layout(width, height int) {
	half := j.size / 2
	w, h := float32(width), float32(height)
	switch j.anchor {
	case AnchorBottomLeft:
		j.centerX, j.centerY = j.margin+half, h-j.margin-half
	case AnchorBottomRight:
		j.centerX, j.centerY = w-j.margin-half, h-j.margin-half
	case AnchorTopLeft:
		j.centerX, j.centerY = j.margin+half, j.margin+half
	case AnchorTopRight:
		j.centerX, j.centerY = w-j.margin-half, j.margin+half
	}
}

// Shapes returns the base ring and the knob disc at the knob's current offset.
func (j *Joystick) Shapes() []Circle {
	kx, ky := j.KnobPosition()
	return []Circle{
		{X: j.centerX, Y: j.centerY, Radius: j.size / 2, Color: baseColor},
		{X: kx, Y: ky, Radius: j.size / 5, Filled: true, Color: knobColor},
	}
}

func (j *Joystick) Handle(ev common.PointerEvent) (joystick.AxisUpdate, bool) {
	return j.tracker.Handle(ev)
}
