package renderer

import (
	"encoding/binary"
	"math"

	"github.com/Carmen-Shannon/oxy-viewer/engine/widget"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// vertex is the layout shared by the scene and overlay shaders: @location(0) vec3f position,
// @location(1) vec4f color.
type vertex struct {
	position mgl32.Vec3
	color    [4]float32
}

const (
	vertexStride  = 28
	uniformSize   = 64
	circleSegment = 48
)

// encodeVertices packs vertices little-endian in shader layout order.
func encodeVertices(vs []vertex) []byte {
	buf := make([]byte, len(vs)*vertexStride)
	for i, v := range vs {
		off := i * vertexStride
		for j, f := range v.position {
			binary.LittleEndian.PutUint32(buf[off+j*4:], math.Float32bits(f))
		}
		for j, f := range v.color {
			binary.LittleEndian.PutUint32(buf[off+12+j*4:], math.Float32bits(f))
		}
	}
	return buf
}

// encodeMatrix packs a column-major 4x4 matrix for a mat4x4f uniform.
func encodeMatrix(m [16]float32) []byte {
	buf := make([]byte, uniformSize)
	for i, f := range m {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// gridVertices builds a line list on the y = 0 plane: 2*half+1 lines along each of X and Z,
// spacing apart. The two lines through the origin use axisColor.
func gridVertices(half int, spacing float32, color, axisColor [4]float32) []vertex {
	extent := float32(half) * spacing
	vs := make([]vertex, 0, (2*half+1)*4)
	for i := -half; i <= half; i++ {
		c := color
		if i == 0 {
			c = axisColor
		}
		o := float32(i) * spacing
		vs = append(vs,
			vertex{mgl32.Vec3{o, 0, -extent}, c}, vertex{mgl32.Vec3{o, 0, extent}, c},
			vertex{mgl32.Vec3{-extent, 0, o}, c}, vertex{mgl32.Vec3{extent, 0, o}, c},
		)
	}
	return vs
}

// cubeVertices builds the twelve edges of an axis-aligned cube as a line list.
func cubeVertices(center mgl32.Vec3, size float32, color [4]float32) []vertex {
	h := size / 2
	corner := func(i int) mgl32.Vec3 {
		sx, sy, sz := float32(-1), float32(-1), float32(-1)
		if i&1 != 0 {
			sx = 1
		}
		if i&2 != 0 {
			sy = 1
		}
		if i&4 != 0 {
			sz = 1
		}
		return center.Add(mgl32.Vec3{sx * h, sy * h, sz * h})
	}

	vs := make([]vertex, 0, 24)
	for i := 0; i < 8; i++ {
		// Connect each corner to the neighbours that differ in exactly one higher bit.
		for _, bit := range []int{1, 2, 4} {
			if i&bit == 0 {
				vs = append(vs, vertex{corner(i), color}, vertex{corner(i | bit), color})
			}
		}
	}
	return vs
}

// overlayVertices tessellates screen-space circles into a triangle list in normalized device
// coordinates for a width x height viewport. Filled circles become fans; the others become rings
// widget.OutlineWidth pixels thick.
func overlayVertices(shapes []widget.Circle, width, height int) []vertex {
	if width <= 0 || height <= 0 {
		return nil
	}
	w, h := float32(width), float32(height)
	ndc := func(x, y float32) mgl32.Vec3 {
		return mgl32.Vec3{2*x/w - 1, 1 - 2*y/h, 0}
	}

	var vs []vertex
	for _, s := range shapes {
		if s.Radius <= 0 {
			continue
		}
		inner := max(s.Radius-widget.OutlineWidth, 0)
		for i := 0; i < circleSegment; i++ {
			a0 := 2 * math32.Pi * float32(i) / circleSegment
			a1 := 2 * math32.Pi * float32(i+1) / circleSegment
			c0, s0 := math32.Cos(a0), math32.Sin(a0)
			c1, s1 := math32.Cos(a1), math32.Sin(a1)

			o0 := ndc(s.X+c0*s.Radius, s.Y+s0*s.Radius)
			o1 := ndc(s.X+c1*s.Radius, s.Y+s1*s.Radius)
			if s.Filled {
				vs = append(vs, vertex{ndc(s.X, s.Y), s.Color}, vertex{o0, s.Color}, vertex{o1, s.Color})
				continue
			}
			i0 := ndc(s.X+c0*inner, s.Y+s0*inner)
			i1 := ndc(s.X+c1*inner, s.Y+s1*inner)
			vs = append(vs,
				vertex{i0, s.Color}, vertex{o0, s.Color}, vertex{o1, s.Color},
				vertex{i0, s.Color}, vertex{o1, s.Color}, vertex{i1, s.Color},
			)
		}
	}
	return vs
}
