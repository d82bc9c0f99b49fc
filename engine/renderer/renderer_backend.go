package renderer

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/pipeline"
)

// RendererBackendType identifies the GPU backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting. The viewer's per-frame
	// step sizes assume a display-rate loop, so this is the default.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents immediately. Fly-through speed then scales with frame rate.
	PresentModeUncapped

	// PresentModeMailbox replaces the queued frame with the newest one without tearing.
	PresentModeMailbox
)

// ParsePresentMode maps a configuration name ("fifo", "mailbox", "immediate") to a PresentMode.
//
// Parameters:
//   - name: the configuration name
//
// Returns:
//   - PresentMode: the mode
//   - error: error if the name is unknown
func ParsePresentMode(name string) (PresentMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "fifo", "vsync":
		return PresentModeVSync, nil
	case "immediate", "uncapped":
		return PresentModeUncapped, nil
	case "mailbox":
		return PresentModeMailbox, nil
	default:
		return PresentModeVSync, fmt.Errorf("unknown present mode %q", name)
	}
}

// RendererBackend is the GPU API behind the Renderer. A frame is BeginFrame, any WriteUniform and
// Draw calls, EndFrame, Present.
type RendererBackend interface {
	// RegisterPipeline creates the GPU render pipeline for p and stores it on p. Uniform bindings
	// declared by its shaders are bound to the backend's uniform buffer.
	//
	// Parameters:
	//   - p: the pipeline description
	//
	// Returns:
	//   - error: error if a shader module, layout or pipeline cannot be created
	RegisterPipeline(p pipeline.Pipeline) error

	// WriteUniform replaces the contents of the shared uniform buffer for the current frame.
	//
	// Parameters:
	//   - data: the uniform bytes, at most 64
	WriteUniform(data []byte)

	// Draw records a non-indexed draw of vertexCount vertices with p into the open render pass.
	// Each pipeline owns one vertex buffer, so a pipeline is drawn at most once per frame.
	//
	// Parameters:
	//   - p: a registered pipeline
	//   - vertexData: the encoded vertices
	//   - vertexCount: the number of vertices in vertexData
	//
	// Returns:
	//   - error: error if no frame is open or the vertex buffer cannot be created
	Draw(p pipeline.Pipeline, vertexData []byte, vertexCount uint32) error

	// ConfigureSurface (re)configures the swapchain for a framebuffer size.
	//
	// Parameters:
	//   - width, height: size in pixels
	ConfigureSurface(width, height int)

	// SetPresentMode changes the present mode used by the next ConfigureSurface.
	//
	// Parameters:
	//   - mode: the PresentMode
	SetPresentMode(mode PresentMode)

	// BeginFrame acquires the next surface texture and opens a render pass cleared to color.
	//
	// Parameters:
	//   - color: the RGBA clear color
	//
	// Returns:
	//   - error: error if the surface texture or encoder cannot be acquired
	BeginFrame(color [4]float64) error

	// EndFrame closes the render pass and submits the command buffer.
	//
	// Returns:
	//   - error: error if the command buffer cannot be finished
	EndFrame() error

	// Present shows the acquired surface texture and releases it.
	Present()

	// Release frees every GPU object held by the backend.
	Release()
}
