package shader

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// ShaderType identifies the pipeline stage a shader entry point belongs to.
type ShaderType int

const (
	// ShaderTypeVertex is the vertex stage of a render pipeline.
	ShaderTypeVertex ShaderType = iota

	// ShaderTypeFragment is the fragment stage, paired with a vertex shader.
	ShaderTypeFragment
)

// String returns the WGSL attribute name of the stage.
func (t ShaderType) String() string {
	switch t {
	case ShaderTypeVertex:
		return "vertex"
	case ShaderTypeFragment:
		return "fragment"
	default:
		return fmt.Sprintf("stage(%d)", int(t))
	}
}

// shader is the implementation of the Shader interface.
// It holds the parsed WGSL metadata a pipeline needs.
type shader struct {
	key          string
	source       string
	shaderType   ShaderType
	entryPoint   string
	vertexLayout []wgpu.VertexBufferLayout
	uniforms     []wgpu.BindGroupLayoutEntry
	module       *wgpu.ShaderModuleDescriptor
}

// Shader is one stage of a WGSL program. It exposes the entry point, the vertex buffer layout
// (vertex stage only) and the group 0 uniform bindings extracted from the source.
type Shader interface {
	// Key retrieves the unique identifier for this shader, used as the module label.
	//
	// Returns:
	//   - string: the shader's unique key
	Key() string

	// Source retrieves the WGSL shader source code.
	//
	// Returns:
	//   - string: the WGSL source code of the shader
	Source() string

	// ShaderType returns the stage this shader was parsed for.
	//
	// Returns:
	//   - ShaderType: ShaderTypeVertex or ShaderTypeFragment
	ShaderType() ShaderType

	// EntryPoint returns the entry point name for this shader's stage.
	//
	// Returns:
	//   - string: the entry point name (e.g. "vs_main")
	EntryPoint() string

	// VertexLayout returns the vertex buffer layouts parsed from the vertex input struct.
	// Fragment shaders return nil.
	//
	// Returns:
	//   - []wgpu.VertexBufferLayout: one layout per vertex input struct
	VertexLayout() []wgpu.VertexBufferLayout

	// UniformBindings returns the layout entries for the uniform buffers declared in group 0,
	// visible to this shader's stage.
	//
	// Returns:
	//   - []wgpu.BindGroupLayoutEntry: entries sorted by binding index
	UniformBindings() []wgpu.BindGroupLayoutEntry

	// Module returns the shader module descriptor built from the source.
	//
	// Returns:
	//   - *wgpu.ShaderModuleDescriptor: the descriptor containing the WGSL code and label
	Module() *wgpu.ShaderModuleDescriptor
}

var _ Shader = &shader{}

// NewShader parses WGSL source for one stage.
//
// Parameters:
//   - key: a unique identifier for the shader, used as the module label
//   - shaderType: the stage whose entry point is extracted
//   - source: the WGSL source
//
// Returns:
//   - Shader: the parsed shader
//   - error: error if the source has no entry point for the stage
func NewShader(key string, shaderType ShaderType, source string) (Shader, error) {
	entry := parseEntryPoint(source, shaderType)
	if entry == "" {
		return nil, fmt.Errorf("shader %s: no @%s entry point", key, shaderType)
	}

	s := &shader{
		key:        key,
		source:     source,
		shaderType: shaderType,
		entryPoint: entry,
		module: &wgpu.ShaderModuleDescriptor{
			Label: key,
			WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
				Code: source,
			},
		},
	}

	visibility := wgpu.ShaderStageFragment
	if shaderType == ShaderTypeVertex {
		visibility = wgpu.ShaderStageVertex
		s.vertexLayout = parseVertexLayouts(source)
	}
	s.uniforms = parseUniformBindings(source, visibility)
	return s, nil
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) ShaderType() ShaderType {
	return s.shaderType
}

func (s *shader) EntryPoint() string {
	return s.entryPoint
}

func (s *shader) VertexLayout() []wgpu.VertexBufferLayout {
	return s.vertexLayout
}

func (s *shader) UniformBindings() []wgpu.BindGroupLayoutEntry {
	return s.uniforms
}

func (s *shader) Module() *wgpu.ShaderModuleDescriptor {
	return s.module
}

// MergeBindings combines the uniform entries of several stages. Entries sharing a binding index
// are folded into one whose visibility covers every stage that declared it.
//
// Parameters:
//   - sets: the per-stage entries
//
// Returns:
//   - []wgpu.BindGroupLayoutEntry: merged entries sorted by binding index
func MergeBindings(sets ...[]wgpu.BindGroupLayoutEntry) []wgpu.BindGroupLayoutEntry {
	var merged []wgpu.BindGroupLayoutEntry
	for _, set := range sets {
	next:
		for _, e := range set {
			for i := range merged {
				if merged[i].Binding == e.Binding {
					merged[i].Visibility |= e.Visibility
					merged[i].Buffer.MinBindingSize = max(merged[i].Buffer.MinBindingSize, e.Buffer.MinBindingSize)
					continue next
				}
			}
			merged = append(merged, e)
		}
	}
	sortEntries(merged)
	return merged
}
