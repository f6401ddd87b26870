// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package scene

import (
	"fmt"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/softrast"
	"github.com/gogpu/softrast/program"
)

// checkerTexture is the texture named by texture = "checker".
func checkerTexture() *program.Texture {
	return program.Checkerboard(256, 8, softrast.White, softrast.Gray(0.25))
}

// Render draws the scene into a new target. Relative texture paths are
// resolved against dir. The returned stats hold one entry per draw.
func (s *Scene) Render(dir string) (*softrast.Target, []softrast.Stats, error) {
	if err := s.Validate(); err != nil {
		return nil, nil, err
	}
	target, err := softrast.NewTarget(s.Width, s.Height)
	if err != nil {
		return nil, nil, err
	}
	bg, _ := parseColor(s.Clear)
	target.Clear(bg, *s.ClearDepth)

	viewProj := s.ViewProjection()
	light := mgl32.Vec3(s.Light.Direction)
	textures := make(map[string]*program.Texture)

	stats := make([]softrast.Stats, 0, len(s.Draws))
	for i := range s.Draws {
		d := &s.Draws[i]
		st, err := d.render(target, viewProj, light, dir, textures)
		if err != nil {
			return nil, nil, fmt.Errorf("scene: draw %d%s: %w", i, d.label(), err)
		}
		softrast.Logger().Debug("scene: draw complete",
			"index", i,
			"name", d.Name,
			"program", d.Program,
			"primitives", st.Primitives,
			"shaded", st.Shaded,
		)
		stats = append(stats, st)
	}
	return target, stats, nil
}

func (d *Draw) render(target *softrast.Target, viewProj mgl32.Mat4, light mgl32.Vec3, dir string, textures map[string]*program.Texture) (softrast.Stats, error) {
	opts, err := d.Options()
	if err != nil {
		return softrast.Stats{}, err
	}
	model := d.Model()
	verts := d.vertices()

	switch d.Program {
	case ProgramLambertian:
		pipe, err := softrast.New(program.Lambertian{}, opts...)
		if err != nil {
			return softrast.Stats{}, err
		}
		tex, err := d.texture(dir, textures)
		if err != nil {
			return softrast.Stats{}, err
		}
		albedo := softrast.White
		if d.Albedo != "" {
			albedo, _ = parseColor(d.Albedo)
		}
		params := program.LambertianParams{
			LocalToClip:   viewProj.Mul4(model),
			NormalToWorld: model.Mat3().Inv().Transpose(),
			LightDir:      light,
			Albedo:        albedo,
			Texture:       tex,
		}
		return pipe.Run(verts, params, target), nil

	default:
		pipe, err := softrast.New(program.VertexColor{}, opts...)
		if err != nil {
			return softrast.Stats{}, err
		}
		return pipe.Run(verts, program.VertexColorParams{MVP: viewProj.Mul4(model)}, target), nil
	}
}

// texture loads the draw's texture, sharing loaded textures across draws.
func (d *Draw) texture(dir string, cache map[string]*program.Texture) (*program.Texture, error) {
	if d.Texture == "" {
		return nil, nil
	}
	if t, ok := cache[d.Texture]; ok {
		return t, nil
	}

	var t *program.Texture
	if d.Texture == "checker" {
		t = checkerTexture()
	} else {
		path := d.Texture
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		var err error
		if t, err = program.LoadTexture(path); err != nil {
			return nil, err
		}
	}
	cache[d.Texture] = t
	return t, nil
}
