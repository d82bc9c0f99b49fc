package renderer

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-viewer/engine/widget"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingBackend stands in for the GPU.
type recordingBackend struct {
	calls      []string
	clear      [4]float64
	beginErr   error
	drawErr    error
	configured [2]int
	mode       PresentMode
	uniform    []byte
	drawn      map[string]uint32
	data       map[string][]byte
}

func (b *recordingBackend) ConfigureSurface(width, height int) {
	b.calls = append(b.calls, "configure")
	b.configured = [2]int{width, height}
}

func (b *recordingBackend) SetPresentMode(mode PresentMode) {
	b.calls = append(b.calls, "mode")
	b.mode = mode
}

func (b *recordingBackend) RegisterPipeline(p pipeline.Pipeline) error {
	b.calls = append(b.calls, "register:"+p.Key())
	return nil
}

func (b *recordingBackend) WriteUniform(data []byte) {
	b.calls = append(b.calls, "uniform")
	b.uniform = append([]byte(nil), data...)
}

func (b *recordingBackend) Draw(p pipeline.Pipeline, vertexData []byte, vertexCount uint32) error {
	b.calls = append(b.calls, "draw:"+p.Key())
	if b.drawErr != nil {
		return b.drawErr
	}
	if b.drawn == nil {
		b.drawn = make(map[string]uint32)
		b.data = make(map[string][]byte)
	}
	b.drawn[p.Key()] = vertexCount
	b.data[p.Key()] = vertexData
	return nil
}

func (b *recordingBackend) BeginFrame(color [4]float64) error {
	b.calls = append(b.calls, "begin")
	b.clear = color
	return b.beginErr
}

func (b *recordingBackend) EndFrame() error {
	b.calls = append(b.calls, "end")
	return nil
}

func (b *recordingBackend) Present() { b.calls = append(b.calls, "present") }

func (b *recordingBackend) Release() { b.calls = append(b.calls, "release") }

func newTestRenderer(t *testing.T, b *recordingBackend, options ...RendererBuilderOption) *renderer {
	t.Helper()
	options = append([]RendererBuilderOption{
		WithClearColors([4]float64{0, 0, 0, 1}, [4]float64{1, 1, 1, 1}),
	}, options...)
	r := newRenderer(options...)
	r.backend = b
	r.width, r.height = 800, 600
	require.NoError(t, r.init())
	b.calls = nil
	return r
}

func decodeFloats(data []byte) []float32 {
	out := make([]float32, len(data)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return out
}

func TestInitRegistersPipelines(t *testing.T) {
	b := &recordingBackend{}
	r := newRenderer(WithGrid(2, 0.5))
	r.backend = b
	require.NoError(t, r.init())

	assert.Equal(t, []string{"register:scene", "register:overlay"}, b.calls)
	// 5 lines along each axis, plus 12 cube edges.
	assert.Equal(t, uint32(5*4+24), r.sceneCount)
	assert.Len(t, r.sceneData, int(r.sceneCount)*vertexStride)
}

func TestSkyColorBlendsWithPitch(t *testing.T) {
	ground := [4]float64{0, 0, 0, 1}
	sky := [4]float64{1, 0.5, 0, 1}

	assert.InDeltaSlice(t, ground[:], sliceOf(skyColor(ground, sky, -halfPi)), 1e-6)
	assert.InDeltaSlice(t, sky[:], sliceOf(skyColor(ground, sky, halfPi)), 1e-6)
	assert.InDeltaSlice(t, []float64{0.5, 0.25, 0, 1}, sliceOf(skyColor(ground, sky, 0)), 1e-6)
	assert.InDeltaSlice(t, sky[:], sliceOf(skyColor(ground, sky, 10)), 1e-6)
}

func TestRenderRunsOneFrame(t *testing.T) {
	b := &recordingBackend{}
	r := newTestRenderer(t, b)
	cam := camera.NewCamera()

	require.NoError(t, r.Render(cam, nil))
	assert.Equal(t, []string{"begin", "uniform", "draw:scene", "end", "present"}, b.calls)
	assert.InDelta(t, 0.5, b.clear[0], 1e-6)
	assert.Equal(t, r.sceneCount, b.drawn[scenePipelineKey])
	assert.Equal(t, uint64(1), r.Frames())

	vp := cam.ViewProjectionMatrix()
	assert.Equal(t, vp[:], decodeFloats(b.uniform))
}

func TestRenderUniformFollowsCamera(t *testing.T) {
	b := &recordingBackend{}
	r := newTestRenderer(t, b)
	cam := camera.NewCamera()

	require.NoError(t, r.Render(cam, nil))
	before := decodeFloats(b.uniform)

	cam.SetPose(camera.Pose{Position: mgl32.Vec3{0, 1, 3}, Yaw: 0.5})
	cam.Update()
	require.NoError(t, r.Render(cam, nil))
	after := decodeFloats(b.uniform)

	assert.NotEqual(t, before, after)
	vp := cam.ViewProjectionMatrix()
	assert.Equal(t, vp[:], after)
}

func TestRenderDrawsOverlayOverScene(t *testing.T) {
	b := &recordingBackend{}
	r := newTestRenderer(t, b)
	overlay := []widget.Circle{
		{X: 100, Y: 500, Radius: 60},
		{X: 110, Y: 500, Radius: 24, Filled: true},
	}

	require.NoError(t, r.Render(camera.NewCamera(), overlay))
	assert.Equal(t, []string{"begin", "uniform", "draw:scene", "draw:overlay", "end", "present"}, b.calls)
	assert.Equal(t, uint32(6*circleSegment+3*circleSegment), b.drawn[overlayPipelineKey])
	assert.Len(t, b.data[overlayPipelineKey], (9*circleSegment)*vertexStride)
}

func TestRenderDrawErrorStillPresents(t *testing.T) {
	b := &recordingBackend{drawErr: errors.New("out of memory")}
	r := newTestRenderer(t, b)

	assert.Error(t, r.Render(camera.NewCamera(), nil))
	assert.Equal(t, []string{"begin", "uniform", "draw:scene", "end", "present"}, b.calls)
	assert.Zero(t, r.Frames())
}

func TestRenderSurfacesBeginError(t *testing.T) {
	b := &recordingBackend{beginErr: errors.New("outdated surface")}
	r := newTestRenderer(t, b)

	assert.Error(t, r.Render(camera.NewCamera(), nil))
	assert.Equal(t, []string{"begin"}, b.calls)
	assert.Zero(t, r.Frames())
}

func TestResizeAndPresentMode(t *testing.T) {
	b := &recordingBackend{}
	r := newTestRenderer(t, b)

	r.Resize(0, 100)
	assert.Empty(t, b.calls)

	r.Resize(640, 480)
	r.SetPresentMode(PresentModeMailbox)
	assert.Equal(t, []string{"configure", "mode", "configure"}, b.calls)
	assert.Equal(t, [2]int{640, 480}, b.configured)
	assert.Equal(t, PresentModeMailbox, b.mode)
}

func TestReleasedRendererErrors(t *testing.T) {
	b := &recordingBackend{}
	r := newTestRenderer(t, b)
	r.Release()
	r.Release()

	assert.Equal(t, []string{"release"}, b.calls)
	assert.Error(t, r.Render(camera.NewCamera(), nil))
}

func TestParsePresentMode(t *testing.T) {
	m, err := ParsePresentMode("Mailbox")
	require.NoError(t, err)
	assert.Equal(t, PresentModeMailbox, m)

	m, err = ParsePresentMode("immediate")
	require.NoError(t, err)
	assert.Equal(t, PresentModeUncapped, m)

	_, err = ParsePresentMode("triple")
	assert.Error(t, err)
}

func TestGridVertices(t *testing.T) {
	color := [4]float32{0.5, 0.5, 0.5, 1}
	axis := [4]float32{1, 1, 1, 1}
	vs := gridVertices(1, 2, color, axis)

	require.Len(t, vs, 12)
	axisLines := 0
	for _, v := range vs {
		assert.Equal(t, float32(0), v.position.Y())
		assert.LessOrEqual(t, math.Abs(float64(v.position.X())), 2.0)
		assert.LessOrEqual(t, math.Abs(float64(v.position.Z())), 2.0)
		if v.color == axis {
			axisLines++
		}
	}
	assert.Equal(t, 4, axisLines)
}

func TestCubeVerticesAreUnitEdges(t *testing.T) {
	center := mgl32.Vec3{0, 0.5, 0}
	vs := cubeVertices(center, 1, [4]float32{1, 0, 0, 1})

	require.Len(t, vs, 24)
	for i := 0; i < len(vs); i += 2 {
		assert.InDelta(t, 1, vs[i].position.Sub(vs[i+1].position).Len(), 1e-6)
		assert.InDelta(t, 0.5, vs[i].position.Sub(center).Len()/float32(math.Sqrt(3)), 1e-6)
	}
}

func TestOverlayVerticesInNDC(t *testing.T) {
	filled := overlayVertices([]widget.Circle{{X: 400, Y: 300, Radius: 100, Filled: true}}, 800, 600)
	require.Len(t, filled, 3*circleSegment)
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, filled[0].position)
	for _, v := range filled {
		assert.LessOrEqual(t, math.Abs(float64(v.position.X())), 0.25+1e-5)
		assert.LessOrEqual(t, math.Abs(float64(v.position.Y())), 1.0/3+1e-5)
	}

	// A ring in the top-left corner maps near (-1, 1) and never reaches the centre.
	ring := overlayVertices([]widget.Circle{{X: 0, Y: 0, Radius: 10}}, 800, 600)
	require.Len(t, ring, 6*circleSegment)
	for _, v := range ring {
		dx := (v.position.X() + 1) * 400
		dy := (1 - v.position.Y()) * 300
		d := math.Hypot(float64(dx), float64(dy))
		assert.GreaterOrEqual(t, d, float64(10-widget.OutlineWidth)-1e-3)
		assert.LessOrEqual(t, d, 10+1e-3)
	}

	assert.Nil(t, overlayVertices([]widget.Circle{{X: 1, Y: 1, Radius: 5}}, 0, 600))
	assert.Empty(t, overlayVertices([]widget.Circle{{X: 1, Y: 1}}, 800, 600))
}

func TestEncodeVertices(t *testing.T) {
	data := encodeVertices([]vertex{
		{mgl32.Vec3{1, 2, 3}, [4]float32{0.1, 0.2, 0.3, 0.4}},
		{mgl32.Vec3{-1, 0, 5}, [4]float32{1, 1, 1, 1}},
	})
	require.Len(t, data, 2*vertexStride)
	assert.Equal(t, []float32{1, 2, 3, 0.1, 0.2, 0.3, 0.4, -1, 0, 5, 1, 1, 1, 1}, decodeFloats(data))
}

func sliceOf(c [4]float64) []float64 { return c[:] }
