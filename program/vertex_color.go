package program

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/softrast"
)

// VertexColorParams holds the uniforms of VertexColor.
type VertexColorParams struct {
	// MVP maps model positions to clip space.
	MVP mgl32.Mat4
}

// VertexColor is an unlit program. Input attributes are a position
// (x, y, z) followed by a color and opacity (r, g, b, a).
type VertexColor struct{}

var _ softrast.Program[VertexColorParams] = VertexColor{}

// ColorVertex builds a VertexColor input vertex.
func ColorVertex(pos mgl32.Vec3, c softrast.Spectrum, alpha float32) softrast.Vertex {
	return softrast.Vertex{Attributes: softrast.Attributes{pos[0], pos[1], pos[2], c.R, c.G, c.B, alpha}}
}

// Layout implements softrast.Program.
func (VertexColor) Layout() softrast.Layout {
	return softrast.Layout{Attributes: 4}
}

// ShadeVertex implements softrast.Program.
func (VertexColor) ShadeVertex(p VertexColorParams, in softrast.Attributes) (mgl32.Vec4, softrast.Attributes) {
	clip := p.MVP.Mul4x1(mgl32.Vec4{in[0], in[1], in[2], 1})
	return clip, softrast.Attributes{in[3], in[4], in[5], in[6]}
}

// ShadeFragment implements softrast.Program.
func (VertexColor) ShadeFragment(_ VertexColorParams, a softrast.Attributes, _ softrast.Derivatives) (softrast.Spectrum, float32) {
	return softrast.RGB(a[0], a[1], a[2]), a[3]
}
