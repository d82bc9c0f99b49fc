package renderer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-viewer/engine/widget"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	scenePipelineKey   = "scene"
	overlayPipelineKey = "overlay"
)

// Renderer draws one frame per Render call. Each frame clears to a color that follows the camera
// pitch, draws a reference grid and cube through the camera's view-projection matrix, then draws
// the overlay shapes in screen space on top.
type Renderer interface {
	// Render draws and presents one frame from cam with the overlay on top.
	//
	// Parameters:
	//   - cam: the camera to render from
	//   - overlay: screen-space shapes to draw over the scene; nil for none
	//
	// Returns:
	//   - error: error if the surface could not be acquired or the frame not submitted
	Render(cam camera.Camera, overlay []widget.Circle) error

	// Resize configures the underlying backend to handle a new surface size.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// SetPresentMode sets the present mode and reconfigures the surface.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// Frames returns the number of frames presented.
	//
	// Returns:
	//   - uint64: presented frame count
	Frames() uint64

	// Release frees the GPU resources. The renderer is unusable afterwards.
	Release()
}

// Surface is the part of a window the renderer draws into.
type Surface interface {
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
	Width() int
	Height() int
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend

	width, height int
	frames        uint64

	ground, sky [4]float64

	scene, overlay pipeline.Pipeline
	sceneData      []byte
	sceneCount     uint32

	gridHalf    int
	gridSpacing float32

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	presentMode          PresentMode
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer for the window's surface. GPU setup failures panic, as a viewer
// without a device cannot run.
//
// Parameters:
//   - backendType: the type of rendering backend to use
//   - surface: the window supplying the surface descriptor and framebuffer size
//   - options: functional options to configure the renderer
//
// Returns:
//   - Renderer: the configured renderer
func NewRenderer(backendType RendererBackendType, surface Surface, options ...RendererBuilderOption) Renderer {
	r := newRenderer(options...)
	r.backendType = backendType

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		b, err := newWGPURendererBackend(surface.SurfaceDescriptor(), r.forceFallbackAdapter)
		if err != nil {
			panic(fmt.Sprintf("failed to create renderer backend: %v", err))
		}
		r.backend = b
	}

	r.backend.SetPresentMode(r.presentMode)
	r.Resize(surface.Width(), surface.Height())
	if err := r.init(); err != nil {
		panic(fmt.Sprintf("failed to create render pipelines: %v", err))
	}
	return r
}

func newRenderer(options ...RendererBuilderOption) *renderer {
	r := &renderer{
		mu:          &sync.Mutex{},
		ground:      [4]float64{0.05, 0.05, 0.06, 1},
		sky:         [4]float64{0.35, 0.45, 0.6, 1},
		presentMode: PresentModeVSync,
		gridHalf:    20,
		gridSpacing: 1,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// init registers the scene and overlay pipelines with the backend and encodes the static scene
// geometry drawn every frame.
func (r *renderer) init() error {
	scene, err := newShaderPipeline(scenePipelineKey, shader.SceneSource,
		pipeline.WithTopology(wgpu.PrimitiveTopologyLineList))
	if err != nil {
		return err
	}
	overlay, err := newShaderPipeline(overlayPipelineKey, shader.OverlaySource,
		pipeline.WithBlendEnabled(true))
	if err != nil {
		return err
	}
	for _, p := range []pipeline.Pipeline{scene, overlay} {
		if err := r.backend.RegisterPipeline(p); err != nil {
			return fmt.Errorf("pipeline %s: %w", p.Key(), err)
		}
	}
	r.scene, r.overlay = scene, overlay

	vs := gridVertices(r.gridHalf, r.gridSpacing, [4]float32{0.5, 0.5, 0.55, 1}, [4]float32{0.9, 0.9, 0.95, 1})
	vs = append(vs, cubeVertices(mgl32.Vec3{0, 0.5, 0}, 1, [4]float32{1, 0.6, 0.2, 1})...)
	r.sceneData = encodeVertices(vs)
	r.sceneCount = uint32(len(vs))
	return nil
}

// newShaderPipeline pairs the vertex and fragment entry points of one WGSL source into a pipeline.
func newShaderPipeline(key, source string, opts ...pipeline.PipelineBuilderOption) (pipeline.Pipeline, error) {
	vs, err := shader.NewShader(key, shader.ShaderTypeVertex, source)
	if err != nil {
		return nil, err
	}
	fs, err := shader.NewShader(key, shader.ShaderTypeFragment, source)
	if err != nil {
		return nil, err
	}
	opts = append([]pipeline.PipelineBuilderOption{
		pipeline.WithVertexShader(vs),
		pipeline.WithFragmentShader(fs),
	}, opts...)
	return pipeline.NewPipeline(key, opts...), nil
}

func (r *renderer) Render(cam camera.Camera, overlay []widget.Circle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.backend == nil {
		return fmt.Errorf("renderer released")
	}
	if err := r.backend.BeginFrame(skyColor(r.ground, r.sky, cam.Pitch())); err != nil {
		return err
	}

	drawErr := r.draw(cam, overlay)
	if err := r.backend.EndFrame(); err != nil {
		return err
	}
	r.backend.Present()
	if drawErr != nil {
		return drawErr
	}
	r.frames++
	return nil
}

// draw records the scene and overlay into the open frame. The frame is still ended and presented
// when a draw fails so the surface texture is not held. Caller must hold the mutex.
func (r *renderer) draw(cam camera.Camera, overlay []widget.Circle) error {
	r.backend.WriteUniform(encodeMatrix(cam.ViewProjectionMatrix()))
	if err := r.backend.Draw(r.scene, r.sceneData, r.sceneCount); err != nil {
		return err
	}

	vs := overlayVertices(overlay, r.width, r.height)
	if len(vs) == 0 {
		return nil
	}
	return r.backend.Draw(r.overlay, encodeVertices(vs), uint32(len(vs)))
}

func (r *renderer) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if width <= 0 || height <= 0 || r.backend == nil {
		return
	}
	r.width, r.height = width, height
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.presentMode = mode
	if r.backend == nil {
		return
	}
	r.backend.SetPresentMode(mode)
	if r.width > 0 && r.height > 0 {
		r.backend.ConfigureSurface(r.width, r.height)
	}
}

func (r *renderer) Frames() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range []pipeline.Pipeline{r.scene, r.overlay} {
		if p != nil {
			p.Release()
		}
	}
	if r.backend != nil {
		r.backend.Release()
		r.backend = nil
	}
}

// skyColor blends from ground to sky as pitch goes from looking straight down to straight up.
func skyColor(ground, sky [4]float64, pitch float32) [4]float64 {
	t := float64(common.Clamp(pitch/halfPi, -1, 1)+1) / 2
	var out [4]float64
	for i := range out {
		out[i] = ground[i] + (sky[i]-ground[i])*t
	}
	return out
}

const halfPi = float32(1.5707963267948966)
