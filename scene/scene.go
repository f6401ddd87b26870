// Package scene describes what to render in TOML and renders it with
// softrast pipelines.
//
// A scene file sets the framebuffer size, clear values, a camera and a
// light, followed by any number of [[draw]] tables:
//
//	width = 320
//	height = 240
//	clear = "#202030"
//
//	[camera]
//	eye = [2.5, 2, 3]
//	target = [0, 0, 0]
//	fov = 50
//
//	[light]
//	direction = [0.4, 1, 0.6]
//
//	[[draw]]
//	program = "lambertian"
//	mesh = "cube"
//	texture = "checker"
//	interp = "correct"
//	depth = "less"
//
// Draws run in file order against the same framebuffer.
package scene

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/softrast"
	"github.com/gogpu/softrast/program"
)

// ErrInvalidScene is wrapped by every validation error.
var ErrInvalidScene = errors.New("scene: invalid scene")

// Scene is a decoded scene file.
type Scene struct {
	Width      int      `toml:"width"`
	Height     int      `toml:"height"`
	Clear      string   `toml:"clear"`
	ClearDepth *float32 `toml:"clear_depth"`
	Camera     Camera   `toml:"camera"`
	Light      Light    `toml:"light"`
	Draws      []Draw   `toml:"draw"`
}

// Camera is a perspective camera looking from Eye at Target.
type Camera struct {
	Eye    [3]float32 `toml:"eye"`
	Target [3]float32 `toml:"target"`
	Up     [3]float32 `toml:"up"`
	FOV    float32    `toml:"fov"` // vertical, degrees
	Near   float32    `toml:"near"`
	Far    float32    `toml:"far"`
}

// Light is a directional light.
type Light struct {
	Direction [3]float32 `toml:"direction"` // toward the light
}

// Draw is one pipeline invocation.
type Draw struct {
	Name    string `toml:"name"`
	Program string `toml:"program"` // "color" (default) or "lambertian"

	// Geometry: a built-in mesh or explicit vertices. Color vertices are
	// [x, y, z, r, g, b] or [x, y, z, r, g, b, a]; lambertian vertices are
	// [x, y, z, nx, ny, nz, u, v].
	Mesh     string      `toml:"mesh"`
	Vertices [][]float32 `toml:"vertices"`

	// Pipeline state, by name. Empty strings keep the pipeline defaults,
	// except that topology defaults to the mesh's topology.
	Topology   string    `toml:"topology"`
	Depth      string    `toml:"depth"`
	DepthWrite *bool     `toml:"depth_write"`
	ColorWrite string    `toml:"color_write"`
	Blend      string    `toml:"blend"`
	Interp     string    `toml:"interp"`
	Viewport   []float32 `toml:"viewport"` // [x, y, width, height]

	// Shading.
	Texture string `toml:"texture"` // file path, or "checker"
	Albedo  string `toml:"albedo"`  // hex color, default white

	// Model transform: scale, then rotate about y, then translate.
	Translate [3]float32 `toml:"translate"`
	RotateY   float32    `toml:"rotate_y"` // degrees
	Scale     float32    `toml:"scale"`
}

// Parse decodes and validates a scene from TOML data.
func Parse(data []byte) (*Scene, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads, decodes and validates a scene.
func Decode(r io.Reader) (*Scene, error) {
	var s Scene
	md, err := toml.NewDecoder(r).Decode(&s)
	if err != nil {
		return nil, fmt.Errorf("scene: decode: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: unknown key %q", ErrInvalidScene, undecoded[0].String())
	}
	s.applyDefaults()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load reads a scene file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return nil, err
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// applyDefaults fills in values a scene file may omit.
func (s *Scene) applyDefaults() {
	if s.Clear == "" {
		s.Clear = "#000000"
	}
	if s.ClearDepth == nil {
		one := float32(1)
		s.ClearDepth = &one
	}
	c := &s.Camera
	if c.Up == ([3]float32{}) {
		c.Up = [3]float32{0, 1, 0}
	}
	if c.FOV == 0 {
		c.FOV = 60
	}
	if c.Near == 0 {
		c.Near = 0.1
	}
	if c.Far == 0 {
		c.Far = 100
	}
	if c.Eye == ([3]float32{}) && c.Target == ([3]float32{}) {
		c.Eye = [3]float32{0, 0, 3}
	}
	if s.Light.Direction == ([3]float32{}) {
		s.Light.Direction = [3]float32{0, 0, 1}
	}
	for i := range s.Draws {
		d := &s.Draws[i]
		if d.Program == "" {
			d.Program = ProgramColor
		}
		if d.Scale == 0 {
			d.Scale = 1
		}
	}
}

// Validate checks the scene for values Render cannot use.
func (s *Scene) Validate() error {
	if s.Width <= 0 || s.Height <= 0 || s.Width%2 != 0 || s.Height%2 != 0 {
		return fmt.Errorf("%w: size %dx%d must be positive and even", ErrInvalidScene, s.Width, s.Height)
	}
	if _, err := parseColor(s.Clear); err != nil {
		return fmt.Errorf("%w: clear: %w", ErrInvalidScene, err)
	}
	c := s.Camera
	if !(c.FOV > 0 && c.FOV < 180) {
		return fmt.Errorf("%w: camera fov %v", ErrInvalidScene, c.FOV)
	}
	if !(c.Near > 0 && c.Far > c.Near) {
		return fmt.Errorf("%w: camera near %v far %v", ErrInvalidScene, c.Near, c.Far)
	}
	if mgl32.Vec3(c.Eye).Sub(mgl32.Vec3(c.Target)).Len() == 0 {
		return fmt.Errorf("%w: camera eye and target coincide", ErrInvalidScene)
	}
	for i := range s.Draws {
		if err := s.Draws[i].validate(); err != nil {
			return fmt.Errorf("%w: draw %d%s: %w", ErrInvalidScene, i, s.Draws[i].label(), err)
		}
	}
	return nil
}

// label returns " (name)" for named draws.
func (d *Draw) label() string {
	if d.Name == "" {
		return ""
	}
	return " (" + d.Name + ")"
}

func (d *Draw) validate() error {
	if d.Program != ProgramColor && d.Program != ProgramLambertian {
		return fmt.Errorf("unknown program %q", d.Program)
	}
	if (d.Mesh == "") == (len(d.Vertices) == 0) {
		return errors.New("exactly one of mesh and vertices is required")
	}
	if d.Mesh != "" {
		m, ok := meshes[d.Mesh]
		if !ok {
			return fmt.Errorf("unknown mesh %q", d.Mesh)
		}
		if m.program != d.Program {
			return fmt.Errorf("mesh %q needs program %q", d.Mesh, m.program)
		}
	}
	want := map[string][]int{ProgramColor: {6, 7}, ProgramLambertian: {8}}[d.Program]
	for i, v := range d.Vertices {
		if len(v) != want[0] && len(v) != want[len(want)-1] {
			return fmt.Errorf("vertex %d has %d values, want %v", i, len(v), want)
		}
	}
	if d.Viewport != nil && len(d.Viewport) != 4 {
		return fmt.Errorf("viewport has %d values, want 4", len(d.Viewport))
	}
	if d.Albedo != "" {
		if _, err := parseColor(d.Albedo); err != nil {
			return fmt.Errorf("albedo: %w", err)
		}
	}
	opts, err := d.Options()
	if err != nil {
		return err
	}
	switch d.Program {
	case ProgramLambertian:
		_, err = softrast.New(program.Lambertian{}, opts...)
	default:
		_, err = softrast.New(program.VertexColor{}, opts...)
	}
	return err
}

// Model returns the draw's model matrix.
func (d *Draw) Model() mgl32.Mat4 {
	t := d.Translate
	return mgl32.Translate3D(t[0], t[1], t[2]).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(d.RotateY))).
		Mul4(mgl32.Scale3D(d.Scale, d.Scale, d.Scale))
}

// ViewProjection returns the camera's world-to-clip matrix.
func (s *Scene) ViewProjection() mgl32.Mat4 {
	c := s.Camera
	aspect := float32(s.Width) / float32(s.Height)
	proj := mgl32.Perspective(mgl32.DegToRad(c.FOV), aspect, c.Near, c.Far)
	view := mgl32.LookAtV(mgl32.Vec3(c.Eye), mgl32.Vec3(c.Target), mgl32.Vec3(c.Up))
	return proj.Mul4(view)
}
