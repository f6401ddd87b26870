package scene

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/softrast"
	"github.com/gogpu/softrast/program"
)

// mesh is a built-in piece of geometry.
type mesh struct {
	program  string
	topology gputypes.PrimitiveTopology
	build    func() []softrast.Vertex
}

var meshes = map[string]mesh{
	"cube":  {ProgramLambertian, gputypes.PrimitiveTopologyTriangleList, Cube},
	"plane": {ProgramLambertian, gputypes.PrimitiveTopologyTriangleList, Plane},
	"axes":  {ProgramColor, gputypes.PrimitiveTopologyLineList, Axes},
	"grid":  {ProgramColor, gputypes.PrimitiveTopologyLineList, Grid},
}

// MeshNames lists the built-in meshes.
func MeshNames() []string {
	return []string{"axes", "cube", "grid", "plane"}
}

// Cube returns a unit cube centered at the origin as Lambertian triangles.
// Each face carries its own normal and a full [0,1] texture square, and is
// wound counter-clockwise seen from outside.
func Cube() []softrast.Vertex {
	faces := [6]struct{ n, u, v mgl32.Vec3 }{
		{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}},
		{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}},
		{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 1, 0}},
	}
	out := make([]softrast.Vertex, 0, 36)
	for _, f := range faces {
		corner := func(s, t float32) softrast.Vertex {
			pos := f.n.Mul(0.5).Add(f.u.Mul(s - 0.5)).Add(f.v.Mul(t - 0.5))
			return program.LambertianVertex(pos, f.n, mgl32.Vec2{s, t})
		}
		out = append(out,
			corner(0, 0), corner(1, 0), corner(1, 1),
			corner(0, 0), corner(1, 1), corner(0, 1),
		)
	}
	return out
}

// Plane returns a 2x2 square in the y=0 plane facing +y, with texture
// coordinates repeating twice across it.
func Plane() []softrast.Vertex {
	up := mgl32.Vec3{0, 1, 0}
	v := func(x, z, s, t float32) softrast.Vertex {
		return program.LambertianVertex(mgl32.Vec3{x, 0, z}, up, mgl32.Vec2{s, t})
	}
	return []softrast.Vertex{
		v(-1, 1, 0, 0), v(1, 1, 2, 0), v(1, -1, 2, 2),
		v(-1, 1, 0, 0), v(1, -1, 2, 2), v(-1, -1, 0, 2),
	}
}

// Axes returns unit x, y and z axes colored red, green and blue.
func Axes() []softrast.Vertex {
	o := mgl32.Vec3{}
	return []softrast.Vertex{
		program.ColorVertex(o, softrast.Red, 1), program.ColorVertex(mgl32.Vec3{1, 0, 0}, softrast.Red, 1),
		program.ColorVertex(o, softrast.Green, 1), program.ColorVertex(mgl32.Vec3{0, 1, 0}, softrast.Green, 1),
		program.ColorVertex(o, softrast.Blue, 1), program.ColorVertex(mgl32.Vec3{0, 0, 1}, softrast.Blue, 1),
	}
}

// gridLines is the number of grid lines in each direction.
const gridLines = 9

// Grid returns gray lines spanning [-1,1] in the y=0 plane.
func Grid() []softrast.Vertex {
	c := softrast.Gray(0.5)
	out := make([]softrast.Vertex, 0, 4*gridLines)
	for i := range gridLines {
		t := -1 + 2*float32(i)/(gridLines-1)
		out = append(out,
			program.ColorVertex(mgl32.Vec3{t, 0, -1}, c, 1), program.ColorVertex(mgl32.Vec3{t, 0, 1}, c, 1),
			program.ColorVertex(mgl32.Vec3{-1, 0, t}, c, 1), program.ColorVertex(mgl32.Vec3{1, 0, t}, c, 1),
		)
	}
	return out
}

// vertices returns the draw's input vertices.
func (d *Draw) vertices() []softrast.Vertex {
	if m, ok := meshes[d.Mesh]; ok {
		return m.build()
	}
	out := make([]softrast.Vertex, len(d.Vertices))
	for i, v := range d.Vertices {
		pos := mgl32.Vec3{v[0], v[1], v[2]}
		switch d.Program {
		case ProgramLambertian:
			out[i] = program.LambertianVertex(pos, mgl32.Vec3{v[3], v[4], v[5]}, mgl32.Vec2{v[6], v[7]})
		default:
			alpha := float32(1)
			if len(v) == 7 {
				alpha = v[6]
			}
			out[i] = program.ColorVertex(pos, softrast.RGB(v[3], v[4], v[5]), alpha)
		}
	}
	return out
}
