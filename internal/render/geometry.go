package render

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is an interleaved 2D position and RGB color.
type Vertex struct {
	Position mgl32.Vec2
	Color    mgl32.Vec3
}

var layout Vertex

// Vertex layout shared by every backend.
const (
	VertexStride   = int(unsafe.Sizeof(layout))
	PositionOffset = int(unsafe.Offsetof(layout.Position))
	ColorOffset    = int(unsafe.Offsetof(layout.Color))
)

// Mesh is indexed triangle-list geometry.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// Triangle is the demo's single colored triangle.
var Triangle = Mesh{
	Vertices: []Vertex{
		{Position: mgl32.Vec2{-0.6, -0.4}, Color: mgl32.Vec3{1, 0, 0}},
		{Position: mgl32.Vec2{0.6, -0.4}, Color: mgl32.Vec3{0, 1, 0}},
		{Position: mgl32.Vec2{0, 0.6}, Color: mgl32.Vec3{0, 0, 1}},
	},
	Indices: []uint32{0, 1, 2},
}

// AspectRatio is width/height, or 1 for a degenerate framebuffer.
func AspectRatio(width, height int) float32 {
	if width <= 0 || height <= 0 {
		return 1
	}
	return float32(width) / float32(height)
}

// Transform is the model-view-projection matrix for a triangle rotated by
// angle radians about Z in an aspect-corrected orthographic view.
func Transform(aspect, angle float32) mgl32.Mat4 {
	projection := mgl32.Ortho(-aspect, aspect, -1, 1, 1, -1)
	model := mgl32.HomogRotate3DZ(angle)
	return projection.Mul4(model)
}
