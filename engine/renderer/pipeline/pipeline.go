package pipeline

import (
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// pipeline is the implementation of the Pipeline interface.
// It holds the shaders and fixed-function state used to create a render pipeline, and the
// created pipeline once the backend has registered it.
type pipeline struct {
	// key is the unique identifier for this pipeline, used for per-pipeline GPU resources
	key string

	vertexShader, fragmentShader shader.Shader

	// renderPipeline is nil until the backend registers the pipeline
	renderPipeline *wgpu.RenderPipeline

	blendEnabled bool
	cullMode     wgpu.CullMode
	topology     wgpu.PrimitiveTopology
	frontFace    wgpu.FrontFace
	writeMask    wgpu.ColorWriteMask
	blendState   *wgpu.BlendState
}

// Pipeline describes a render pipeline: a vertex and a fragment shader plus the primitive and
// blend state. The backend creates the GPU object from it and stores it back with
// SetRenderPipeline.
type Pipeline interface {
	// Key returns the unique key associated with this pipeline.
	//
	// Returns:
	//   - string: the unique key for this pipeline
	Key() string

	// Shader retrieves the shader for a stage, or nil if not set.
	//
	// Parameters:
	//   - shaderType: the stage to retrieve
	//
	// Returns:
	//   - shader.Shader: the shader for the stage
	Shader(shaderType shader.ShaderType) shader.Shader

	// RenderPipeline returns the created GPU pipeline, or nil before registration.
	//
	// Returns:
	//   - *wgpu.RenderPipeline: the render pipeline
	RenderPipeline() *wgpu.RenderPipeline

	// BlendEnabled returns whether alpha blending is enabled.
	//
	// Returns:
	//   - bool: true if blending is enabled
	BlendEnabled() bool

	// BlendState returns the blend state used when blending is enabled.
	//
	// Returns:
	//   - *wgpu.BlendState: the blend state
	BlendState() *wgpu.BlendState

	// CullMode returns the cull mode.
	//
	// Returns:
	//   - wgpu.CullMode: the cull mode
	CullMode() wgpu.CullMode

	// Topology returns the primitive topology.
	//
	// Returns:
	//   - wgpu.PrimitiveTopology: the topology (e.g. wgpu.PrimitiveTopologyLineList)
	Topology() wgpu.PrimitiveTopology

	// FrontFace returns the front face winding order.
	//
	// Returns:
	//   - wgpu.FrontFace: the winding order
	FrontFace() wgpu.FrontFace

	// WriteMask returns the color write mask.
	//
	// Returns:
	//   - wgpu.ColorWriteMask: the write mask
	WriteMask() wgpu.ColorWriteMask

	// SetRenderPipeline stores the created GPU pipeline.
	//
	// Parameters:
	//   - p: the WebGPU render pipeline
	SetRenderPipeline(p *wgpu.RenderPipeline)

	// Release frees the GPU pipeline if one was created.
	Release()
}

var _ Pipeline = &pipeline{}

// NewPipeline creates a render pipeline description. Defaults: triangle list, no culling,
// counter-clockwise front faces, blending off.
//
// Parameters:
//   - key: the unique key for this pipeline
//   - opts: functional options to configure the pipeline
//
// Returns:
//   - Pipeline: the pipeline description
func NewPipeline(key string, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		key:       key,
		cullMode:  wgpu.CullModeNone,
		topology:  wgpu.PrimitiveTopologyTriangleList,
		frontFace: wgpu.FrontFaceCCW,
		writeMask: wgpu.ColorWriteMaskAll,
		blendState: &wgpu.BlendState{
			Color: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorSrcAlpha,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
			Alpha: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorOne,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *pipeline) Key() string {
	return p.key
}

func (p *pipeline) Shader(shaderType shader.ShaderType) shader.Shader {
	switch shaderType {
	case shader.ShaderTypeVertex:
		return p.vertexShader
	case shader.ShaderTypeFragment:
		return p.fragmentShader
	default:
		return nil
	}
}

func (p *pipeline) RenderPipeline() *wgpu.RenderPipeline {
	return p.renderPipeline
}

func (p *pipeline) BlendEnabled() bool {
	return p.blendEnabled
}

func (p *pipeline) BlendState() *wgpu.BlendState {
	return p.blendState
}

func (p *pipeline) CullMode() wgpu.CullMode {
	return p.cullMode
}

func (p *pipeline) Topology() wgpu.PrimitiveTopology {
	return p.topology
}

func (p *pipeline) FrontFace() wgpu.FrontFace {
	return p.frontFace
}

func (p *pipeline) WriteMask() wgpu.ColorWriteMask {
	return p.writeMask
}

func (p *pipeline) SetRenderPipeline(rp *wgpu.RenderPipeline) {
	p.renderPipeline = rp
}

func (p *pipeline) Release() {
	if p.renderPipeline != nil {
		p.renderPipeline.Release()
		p.renderPipeline = nil
	}
}
