package scene

import "fmt"

// Builder provides a fluent API for constructing scenes in code. Draw
// settings such as the transform and pipeline state accumulate and apply
// to every draw added after them, until changed or reset.
//
// Example:
//
//	s, err := scene.NewBuilder(320, 240).
//	    Camera([3]float32{2, 2, 3}, [3]float32{0, 0, 0}, 50).
//	    Mesh("grid").
//	    Depth("less").
//	    Interp("correct").
//	    Texture("checker").
//	    Mesh("cube").
//	    Build()
type Builder struct {
	scene Scene
	proto Draw
}

// NewBuilder creates a builder for a width x height scene.
func NewBuilder(width, height int) *Builder {
	return &Builder{
		scene: Scene{Width: width, Height: height},
		proto: Draw{Scale: 1},
	}
}

// Clear sets the clear color as a hex string.
func (b *Builder) Clear(hex string) *Builder {
	b.scene.Clear = hex
	return b
}

// ClearDepth sets the depth the target is cleared to.
func (b *Builder) ClearDepth(d float32) *Builder {
	b.scene.ClearDepth = &d
	return b
}

// Camera places the camera. fov is the vertical field of view in degrees.
func (b *Builder) Camera(eye, target [3]float32, fov float32) *Builder {
	b.scene.Camera.Eye = eye
	b.scene.Camera.Target = target
	b.scene.Camera.FOV = fov
	return b
}

// Light sets the direction toward the light.
func (b *Builder) Light(dir [3]float32) *Builder {
	b.scene.Light.Direction = dir
	return b
}

// ---------------------------------------------------------------------------
// Draw state
// ---------------------------------------------------------------------------

// Translate sets the translation of subsequent draws.
func (b *Builder) Translate(x, y, z float32) *Builder {
	b.proto.Translate = [3]float32{x, y, z}
	return b
}

// RotateY sets the rotation about y, in degrees, of subsequent draws.
func (b *Builder) RotateY(deg float32) *Builder {
	b.proto.RotateY = deg
	return b
}

// Scale sets the uniform scale of subsequent draws.
func (b *Builder) Scale(s float32) *Builder {
	b.proto.Scale = s
	return b
}

// Depth sets the depth compare function by name.
func (b *Builder) Depth(name string) *Builder {
	b.proto.Depth = name
	return b
}

// DepthWrite enables or disables depth writes.
func (b *Builder) DepthWrite(enabled bool) *Builder {
	b.proto.DepthWrite = &enabled
	return b
}

// ColorWrite sets the color write mask, e.g. "rgb" or "none".
func (b *Builder) ColorWrite(mask string) *Builder {
	b.proto.ColorWrite = mask
	return b
}

// Blend sets the blend mode by name.
func (b *Builder) Blend(name string) *Builder {
	b.proto.Blend = name
	return b
}

// Interp sets the interpolation mode by name.
func (b *Builder) Interp(name string) *Builder {
	b.proto.Interp = name
	return b
}

// Texture sets the texture of subsequent Lambertian draws.
func (b *Builder) Texture(name string) *Builder {
	b.proto.Texture = name
	return b
}

// Albedo sets the hex albedo of subsequent Lambertian draws.
func (b *Builder) Albedo(hex string) *Builder {
	b.proto.Albedo = hex
	return b
}

// ResetDraw restores the default draw state.
func (b *Builder) ResetDraw() *Builder {
	b.proto = Draw{Scale: 1}
	return b
}

// ---------------------------------------------------------------------------
// Draws
// ---------------------------------------------------------------------------

// Mesh adds a draw of a built-in mesh with the current draw state. The
// program follows from the mesh.
func (b *Builder) Mesh(name string) *Builder {
	d := b.proto
	d.Name = name
	d.Mesh = name
	if m, ok := meshes[name]; ok {
		d.Program = m.program
	}
	b.scene.Draws = append(b.scene.Draws, d)
	return b
}

// Vertices adds a draw of explicit vertices for the named program.
func (b *Builder) Vertices(prog, topology string, vertices [][]float32) *Builder {
	d := b.proto
	d.Name = fmt.Sprintf("%s-%d", prog, len(b.scene.Draws))
	d.Program = prog
	d.Topology = topology
	d.Vertices = vertices
	b.scene.Draws = append(b.scene.Draws, d)
	return b
}

// Build applies defaults, validates and returns the scene. The builder
// can keep adding draws afterwards; the returned scene is not affected.
func (b *Builder) Build() (*Scene, error) {
	s := b.scene
	s.Draws = append([]Draw(nil), b.scene.Draws...)
	s.applyDefaults()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}
