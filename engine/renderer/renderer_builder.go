package renderer

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithPresentMode sets the surface present mode which controls how frames are delivered to the display.
//
// Parameters:
//   - mode: the PresentMode to use
//
// Returns:
//   - RendererBuilderOption: a function that applies the present mode option to a renderer
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		r.presentMode = mode
	}
}

// WithClearColors sets the clear colors used when looking straight down and straight up.
// Pitches in between blend linearly.
//
// Parameters:
//   - ground: RGBA when looking down
//   - sky: RGBA when looking up
//
// Returns:
//   - RendererBuilderOption: a function that applies the colors to a renderer
func WithClearColors(ground, sky [4]float64) RendererBuilderOption {
	return func(r *renderer) {
		r.ground = ground
		r.sky = sky
	}
}

// WithForceSoftwareRenderer forces WGPU to use a CPU/software fallback adapter instead of
// hardware GPU acceleration. This requires a software Vulkan ICD to be installed on the system
// (e.g. SwiftShader or lavapipe).
//
// Parameters:
//   - force: true to force the software fallback adapter, false to use hardware (default)
//
// Returns:
//   - RendererBuilderOption: a function that applies the force software renderer option to a renderer
func WithForceSoftwareRenderer(force bool) RendererBuilderOption {
	return func(r *renderer) {
		r.forceFallbackAdapter = force
	}
}

// WithGrid sets the reference grid drawn on the y = 0 plane. Non-positive values keep the
// defaults of 20 lines each side of the origin, 1 unit apart.
//
// Parameters:
//   - half: number of lines on each side of the origin along each axis
//   - spacing: distance between lines in world units
//
// Returns:
//   - RendererBuilderOption: a function that applies the grid option to a renderer
func WithGrid(half int, spacing float32) RendererBuilderOption {
	return func(r *renderer) {
		if half > 0 {
			r.gridHalf = half
		}
		if spacing > 0 {
			r.gridSpacing = spacing
		}
	}
}
