package widget

// Circle is a disc or ring drawn for a widget, in screen pixels.
type Circle struct {
	X, Y   float32
	Radius float32
	// Filled draws a solid disc; otherwise a ring of OutlineWidth pixels.
	Filled bool
	Color  [4]float32
}

// OutlineWidth is the thickness in pixels of unfilled circles.
const OutlineWidth float32 = 3

var (
	baseColor = [4]float32{1, 1, 1, 0.35}
	knobColor = [4]float32{1, 1, 1, 0.7}
)
