package shader

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSceneVertexShader(t *testing.T) {
	s, err := NewShader("scene", ShaderTypeVertex, SceneSource)
	require.NoError(t, err)

	assert.Equal(t, "vs_main", s.EntryPoint())
	assert.Equal(t, "scene", s.Module().Label)
	assert.Equal(t, SceneSource, s.Module().WGSLDescriptor.Code)

	layouts := s.VertexLayout()
	require.Len(t, layouts, 1)
	assert.Equal(t, uint64(28), layouts[0].ArrayStride)
	require.Len(t, layouts[0].Attributes, 2)
	assert.Equal(t, wgpu.VertexFormatFloat32x3, layouts[0].Attributes[0].Format)
	assert.Equal(t, uint64(12), layouts[0].Attributes[1].Offset)
	assert.Equal(t, uint32(1), layouts[0].Attributes[1].ShaderLocation)

	u := s.UniformBindings()
	require.Len(t, u, 1)
	assert.Equal(t, uint32(0), u[0].Binding)
	assert.Equal(t, wgpu.ShaderStageVertex, u[0].Visibility)
	assert.Equal(t, wgpu.BufferBindingTypeUniform, u[0].Buffer.Type)
	assert.Equal(t, uint64(64), u[0].Buffer.MinBindingSize)
}

func TestFragmentShaderHasNoVertexLayout(t *testing.T) {
	s, err := NewShader("scene", ShaderTypeFragment, SceneSource)
	require.NoError(t, err)
	assert.Equal(t, "fs_main", s.EntryPoint())
	assert.Nil(t, s.VertexLayout())
	require.Len(t, s.UniformBindings(), 1)
	assert.Equal(t, wgpu.ShaderStageFragment, s.UniformBindings()[0].Visibility)
}

func TestOverlayShaderHasNoUniforms(t *testing.T) {
	s, err := NewShader("overlay", ShaderTypeVertex, OverlaySource)
	require.NoError(t, err)
	assert.Empty(t, s.UniformBindings())
	require.Len(t, s.VertexLayout(), 1)
	assert.Equal(t, uint64(28), s.VertexLayout()[0].ArrayStride)
}

func TestMissingEntryPoint(t *testing.T) {
	_, err := NewShader("broken", ShaderTypeFragment, "@vertex\nfn main() {}\n")
	assert.Error(t, err)

	// Commented-out attributes do not count.
	_, err = NewShader("commented", ShaderTypeVertex, "// @vertex fn vs() {}\n")
	assert.Error(t, err)
}

func TestMergeBindings(t *testing.T) {
	vs, err := NewShader("scene", ShaderTypeVertex, SceneSource)
	require.NoError(t, err)
	fs, err := NewShader("scene", ShaderTypeFragment, SceneSource)
	require.NoError(t, err)

	merged := MergeBindings(vs.UniformBindings(), fs.UniformBindings())
	require.Len(t, merged, 1)
	assert.Equal(t, wgpu.ShaderStageVertex|wgpu.ShaderStageFragment, merged[0].Visibility)
	assert.Empty(t, MergeBindings(nil, nil))
}
