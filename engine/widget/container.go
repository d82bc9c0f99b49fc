package widget

import (
	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/joystick"
)

// Container is a screen region holding widgets. It can be shown or hidden and routes raw pointer
// events to its children: presses go to the child under each contact, moves and releases go to
// every child so that drags keep tracking outside the widget that started them.
type Container interface {
	// AddChild appends a widget and lays it out for the current size.
	//
	// Parameters:
	//   - w: the widget to add
	AddChild(w Widget)

	// Children returns the widgets in insertion order.
	//
	// Returns:
	//   - []Widget: a copy of the child list
	Children() []Widget

	// Show makes the container visible and input-receiving.
	Show()

	// Hide makes the container invisible. While hidden it ignores presses and moves but still
	// delivers releases.
	Hide()

	// Visible reports whether the container is shown.
	//
	// Returns:
	//   - bool: true if shown
	Visible() bool

	// Layout re-positions every child for a new container size.
	//
	// Parameters:
	//   - width, height: container size in pixels
	Layout(width, height int)

	// Dispatch routes a pointer event to the children.
	//
	// Parameters:
	//   - ev: the pointer event
	//
	// Returns:
	//   - []joystick.AxisUpdate: updates produced by the children, in child order
	Dispatch(ev common.PointerEvent) []joystick.AxisUpdate

	// Shapes collects the children's shapes in child order. A hidden container draws nothing.
	//
	// Returns:
	//   - []Circle: the shapes, or nil when hidden
	Shapes() []Circle
}

type containerImpl struct {
	children []Widget
	visible  bool
	width    int
	height   int
}

var _ Container = &containerImpl{}

// NewContainer creates a hidden, empty container of the given size.
//
// Parameters:
//   - width, height: container size in pixels
//
// Returns:
//   - Container: the container
func NewContainer(width, height int) Container {
	return &containerImpl{width: width, height: height}
}

func (c *containerImpl) AddChild(w Widget) {
	w.Layout(c.width, c.height)
	c.children = append(c.children, w)
}

func (c *containerImpl) Children() []Widget {
	out := make([]Widget, len(c.children))
	copy(out, c.children)
	return out
}

func (c *containerImpl) Show() {
	c.visible = true
}

func (c *containerImpl) Hide() {
	c.visible = false
}

func (c *containerImpl) Visible() bool {
	return c.visible
}

func (c *containerImpl) Layout(width, height int) {
	c.width, c.height = width, height
	for _, w := range c.children {
		w.Layout(width, height)
	}
}

func (c *containerImpl) Dispatch(ev common.PointerEvent) []joystick.AxisUpdate {
	// Releases are honoured while hidden so a drag in progress at hide time cannot outlive it.
	if !c.visible && ev.Kind != common.PointerRelease {
		return nil
	}

	var updates []joystick.AxisUpdate
	if ev.Kind == common.PointerPress {
		for _, p := range ev.Points {
			if !p.Valid() {
				continue
			}
			w := c.hit(p.X, p.Y)
			if w == nil {
				continue
			}
			single := common.PointerEvent{Kind: ev.Kind, Source: ev.Source, Points: []common.PointerPoint{p}}
			if u, ok := w.Handle(single); ok {
				updates = append(updates, u)
			}
		}
		return updates
	}

	for _, w := range c.children {
		if u, ok := w.Handle(ev); ok {
			updates = append(updates, u)
		}
	}
	return updates
}

func (c *containerImpl) Shapes() []Circle {
	if !c.visible {
		return nil
	}
	var shapes []Circle
	for _, w := range c.children {
		shapes = append(shapes, w.Shapes()...)
	}
	return shapes
}

// hit returns the topmost (last added) child containing the point.
func (c *containerImpl) hit(x, y float32) Widget {
	for i := len(c.children) - 1; i >= 0; i-- {
		if c.children[i].Contains(x, y) {
			return c.children[i]
		}
	}
	return nil
}
