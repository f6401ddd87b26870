// Package clip truncates primitives to the canonical clip volume
// -w <= x,y,z <= w and maps the survivors to framebuffer space.
package clip

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/softrast/internal/vertex"
)

// plane is one half-space of the clip volume: w - sign*v[axis] >= 0.
type plane struct {
	axis int
	sign float32
}

// distance is non-negative for points on the inside of the plane.
func (p plane) distance(v mgl32.Vec4) float32 {
	return v[3] - p.sign*v[p.axis]
}

// planes lists the six bounding planes of the clip volume.
var planes = [6]plane{
	{axis: 0, sign: -1}, {axis: 0, sign: 1},
	{axis: 1, sign: -1}, {axis: 1, sign: 1},
	{axis: 2, sign: -1}, {axis: 2, sign: 1},
}

// Inside reports whether v satisfies -w <= x,y,z <= w, allowing each
// inequality to be violated by at most tol*|w|.
func Inside(v mgl32.Vec4, tol float32) bool {
	slack := tol * mgl32.Abs(v[3])
	for _, p := range planes {
		if p.distance(v) < -slack {
			return false
		}
	}
	return true
}

// Viewport maps normalized device coordinates to framebuffer space.
type Viewport struct {
	Scale  mgl32.Vec3
	Offset mgl32.Vec3
}

// NewViewport returns the mapping of [-1,1]^2 onto the rectangle at
// (x, y) with the given size, and of z in [-1,1] onto [0,1].
func NewViewport(x, y, width, height float32) Viewport {
	return Viewport{
		Scale:  mgl32.Vec3{width / 2, height / 2, 0.5},
		Offset: mgl32.Vec3{x + width/2, y + height/2, 0.5},
	}
}

// Project performs the perspective divide and viewport mapping. Attributes
// are passed through undivided.
func (vp Viewport) Project(sv vertex.Shaded) vertex.Clipped {
	invW := 1 / sv.ClipPosition[3]
	return vertex.Clipped{
		FBPosition: mgl32.Vec3{
			vp.Scale[0]*invW*sv.ClipPosition[0] + vp.Offset[0],
			vp.Scale[1]*invW*sv.ClipPosition[1] + vp.Offset[1],
			vp.Scale[2]*invW*sv.ClipPosition[2] + vp.Offset[2],
		},
		InvW:       invW,
		Attributes: sv.Attributes,
	}
}
