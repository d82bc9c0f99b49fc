package renderer

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// errFrameInFlight is returned by BeginFrame when the previous surface texture was not presented.
var errFrameInFlight = errors.New("previous frame surface not yet presented")

type wgpuRendererBackendImpl struct {
	mu     *sync.Mutex
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface

	surfaceFormat wgpu.TextureFormat
	configured    bool
	presentMode   wgpu.PresentMode

	// Per-pipeline resources created by RegisterPipeline and Draw
	uniformBuffer   *wgpu.Buffer
	bindGroups      map[string]*wgpu.BindGroup
	vertexBuffers   map[string]*vertexBuffer
	layouts         []*wgpu.BindGroupLayout
	pipelineLayouts []*wgpu.PipelineLayout
	modules         []*wgpu.ShaderModule

	// Frame state between BeginFrame and Present
	frameEncoder *wgpu.CommandEncoder
	framePass    *wgpu.RenderPassEncoder
	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView
}

var _ RendererBackend = &wgpuRendererBackendImpl{}

// vertexBuffer is a reusable GPU vertex buffer that grows to the largest upload seen.
type vertexBuffer struct {
	buf  *wgpu.Buffer
	size uint64
}

const minVertexBufferSize = 4096

func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool) (RendererBackend, error) {
	runtime.LockOSThread()
	if surfaceDescriptor == nil {
		return nil, errors.New("window has no surface descriptor")
	}

	b := &wgpuRendererBackendImpl{
		mu:            &sync.Mutex{},
		instance:      wgpu.CreateInstance(nil),
		presentMode:   wgpu.PresentModeFifo,
		bindGroups:    make(map[string]*wgpu.BindGroup),
		vertexBuffers: make(map[string]*vertexBuffer),
	}
	b.surface = b.instance.CreateSurface(surfaceDescriptor)

	a, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    b.surface,
	})
	if err != nil {
		b.Release()
		return nil, fmt.Errorf("failed to request adapter: %w", err)
	}
	b.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{Label: "Viewer Device"})
	if err != nil {
		b.Release()
		return nil, fmt.Errorf("failed to request device: %w", err)
	}
	b.device = d
	b.queue = d.GetQueue()

	return b, nil
}

func (b *wgpuRendererBackendImpl) ConfigureSurface(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	// A minimized window reports a zero framebuffer; keep the old configuration until it returns.
	if width <= 0 || height <= 0 {
		return
	}

	capabilities := b.surface.GetCapabilities(b.adapter)
	b.surfaceFormat = capabilities.Formats[0]

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})
	b.configured = true
}

func (b *wgpuRendererBackendImpl) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch mode {
	case PresentModeUncapped:
		b.presentMode = wgpu.PresentModeImmediate
	case PresentModeMailbox:
		b.presentMode = wgpu.PresentModeMailbox
	default:
		b.presentMode = wgpu.PresentModeFifo
	}
}

func (b *wgpuRendererBackendImpl) RegisterPipeline(p pipeline.Pipeline) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	vertexShader := p.Shader(shader.ShaderTypeVertex)
	fragmentShader := p.Shader(shader.ShaderTypeFragment)
	if vertexShader == nil || fragmentShader == nil {
		return errors.New("vertex and fragment shaders must be set to create a render pipeline")
	}
	if b.device == nil {
		return errors.New("backend released")
	}

	vs, err := b.device.CreateShaderModule(vertexShader.Module())
	if err != nil {
		return fmt.Errorf("failed to create shader module %s: %w", vertexShader.Key(), err)
	}
	b.modules = append(b.modules, vs)
	fs, err := b.device.CreateShaderModule(fragmentShader.Module())
	if err != nil {
		return fmt.Errorf("failed to create shader module %s: %w", fragmentShader.Key(), err)
	}
	b.modules = append(b.modules, fs)

	var bindGroupLayouts []*wgpu.BindGroupLayout
	entries := shader.MergeBindings(vertexShader.UniformBindings(), fragmentShader.UniformBindings())
	if len(entries) > 0 {
		layout, group, err := b.uniformBindGroup(p.Key(), entries)
		if err != nil {
			return err
		}
		b.bindGroups[p.Key()] = group
		bindGroupLayouts = append(bindGroupLayouts, layout)
	}

	pipelineLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            p.Key(),
		BindGroupLayouts: bindGroupLayouts,
	})
	if err != nil {
		return err
	}
	b.pipelineLayouts = append(b.pipelineLayouts, pipelineLayout)

	target := wgpu.ColorTargetState{
		Format:    b.format(),
		WriteMask: p.WriteMask(),
	}
	if p.BlendEnabled() {
		target.Blend = p.BlendState()
	}

	created, err := b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  p.Key() + " Render Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     vs,
			EntryPoint: vertexShader.EntryPoint(),
			Buffers:    vertexShader.VertexLayout(),
		},
		Fragment: &wgpu.FragmentState{
			Module:     fs,
			EntryPoint: fragmentShader.EntryPoint(),
			Targets:    []wgpu.ColorTargetState{target},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  p.Topology(),
			FrontFace: p.FrontFace(),
			CullMode:  p.CullMode(),
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return err
	}

	p.SetRenderPipeline(created)
	return nil
}

// uniformBindGroup creates the layout for entries and a bind group pointing every entry at the
// shared uniform buffer. Caller must hold the mutex.
func (b *wgpuRendererBackendImpl) uniformBindGroup(key string, entries []wgpu.BindGroupLayoutEntry) (*wgpu.BindGroupLayout, *wgpu.BindGroup, error) {
	if b.uniformBuffer == nil {
		buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: "Uniform Buffer",
			Size:  uniformSize,
			Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create uniform buffer: %w", err)
		}
		b.uniformBuffer = buf
	}

	layout, err := b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   key + " Bind Group Layout",
		Entries: entries,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create bind group layout for %s: %w", key, err)
	}
	b.layouts = append(b.layouts, layout)

	groupEntries := make([]wgpu.BindGroupEntry, len(entries))
	for i, e := range entries {
		groupEntries[i] = wgpu.BindGroupEntry{
			Binding: e.Binding,
			Buffer:  b.uniformBuffer,
			Offset:  0,
			Size:    uniformSize,
		}
	}
	group, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   key + " Bind Group",
		Layout:  layout,
		Entries: groupEntries,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create bind group for %s: %w", key, err)
	}
	return layout, group, nil
}

// format returns the configured surface format, or the preferred one before the first configure.
// Caller must hold the mutex.
func (b *wgpuRendererBackendImpl) format() wgpu.TextureFormat {
	if b.configured {
		return b.surfaceFormat
	}
	return b.surface.GetCapabilities(b.adapter).Formats[0]
}

func (b *wgpuRendererBackendImpl) WriteUniform(data []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.uniformBuffer == nil || len(data) == 0 || len(data) > uniformSize {
		return
	}
	b.queue.WriteBuffer(b.uniformBuffer, 0, data)
}

func (b *wgpuRendererBackendImpl) Draw(p pipeline.Pipeline, vertexData []byte, vertexCount uint32) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.framePass == nil {
		return errors.New("draw outside of a frame")
	}
	if p.RenderPipeline() == nil {
		return fmt.Errorf("pipeline %s is not registered", p.Key())
	}
	if vertexCount == 0 || len(vertexData) == 0 {
		return nil
	}

	vb, err := b.vertexBuffer(p.Key(), uint64(len(vertexData)))
	if err != nil {
		return err
	}
	b.queue.WriteBuffer(vb.buf, 0, vertexData)

	b.framePass.SetPipeline(p.RenderPipeline())
	if group, ok := b.bindGroups[p.Key()]; ok {
		b.framePass.SetBindGroup(0, group, nil)
	}
	b.framePass.SetVertexBuffer(0, vb.buf, 0, uint64(len(vertexData)))
	b.framePass.Draw(vertexCount, 1, 0, 0)
	return nil
}

// vertexBuffer returns the pipeline's vertex buffer, replacing it with a larger one when size
// does not fit. Caller must hold the mutex.
func (b *wgpuRendererBackendImpl) vertexBuffer(key string, size uint64) (*vertexBuffer, error) {
	if vb, ok := b.vertexBuffers[key]; ok && vb.size >= size {
		return vb, nil
	}

	capacity := uint64(minVertexBufferSize)
	for capacity < size {
		capacity *= 2
	}
	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: key + " Vertex Buffer",
		Size:  capacity,
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create vertex buffer for %s: %w", key, err)
	}
	if old, ok := b.vertexBuffers[key]; ok {
		old.buf.Release()
	}
	vb := &vertexBuffer{buf: buf, size: capacity}
	b.vertexBuffers[key] = vb
	return vb, nil
}

func (b *wgpuRendererBackendImpl) BeginFrame(color [4]float64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.configured {
		return errors.New("surface not configured")
	}
	if b.frameSurface != nil {
		return errFrameInFlight
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("failed to acquire surface texture: %w", err)
	}

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return fmt.Errorf("failed to create surface view: %w", err)
	}

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return fmt.Errorf("failed to create command encoder: %w", err)
	}

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:    view,
				LoadOp:  wgpu.LoadOpClear,
				StoreOp: wgpu.StoreOpStore,
				ClearValue: wgpu.Color{
					R: color[0], G: color[1], B: color[2], A: color[3],
				},
			},
		},
	})

	b.frameEncoder = encoder
	b.framePass = pass
	b.frameSurface = surfaceTexture
	b.frameView = view
	return nil
}

func (b *wgpuRendererBackendImpl) EndFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.framePass == nil {
		return nil
	}
	b.framePass.End()
	b.framePass.Release()
	b.framePass = nil

	commandBuffer, err := b.frameEncoder.Finish(nil)
	b.frameEncoder.Release()
	b.frameEncoder = nil
	if err != nil {
		b.releaseFrameSurface()
		return fmt.Errorf("failed to finish command buffer: %w", err)
	}

	b.queue.Submit(commandBuffer)
	commandBuffer.Release()
	return nil
}

func (b *wgpuRendererBackendImpl) Present() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameSurface == nil {
		return
	}
	b.surface.Present()
	b.releaseFrameSurface()
}

func (b *wgpuRendererBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.releaseFrameSurface()
	for key, vb := range b.vertexBuffers {
		vb.buf.Release()
		delete(b.vertexBuffers, key)
	}
	for key, group := range b.bindGroups {
		group.Release()
		delete(b.bindGroups, key)
	}
	for _, l := range b.layouts {
		l.Release()
	}
	for _, l := range b.pipelineLayouts {
		l.Release()
	}
	for _, m := range b.modules {
		m.Release()
	}
	b.layouts, b.pipelineLayouts, b.modules = nil, nil, nil
	if b.uniformBuffer != nil {
		b.uniformBuffer.Release()
		b.uniformBuffer = nil
	}
	if b.queue != nil {
		b.queue.Release()
		b.queue = nil
	}
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.surface != nil {
		b.surface.Release()
		b.surface = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
	b.configured = false
}

// releaseFrameSurface drops the per-frame view and texture. Caller must hold the mutex.
func (b *wgpuRendererBackendImpl) releaseFrameSurface() {
	if b.frameView != nil {
		b.frameView.Release()
		b.frameView = nil
	}
	if b.frameSurface != nil {
		b.frameSurface.Release()
		b.frameSurface = nil
	}
}
