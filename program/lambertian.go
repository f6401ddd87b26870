// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package program

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/softrast"
)

// LambertianParams holds the uniforms of Lambertian.
type LambertianParams struct {
	LocalToClip   mgl32.Mat4
	NormalToWorld mgl32.Mat3

	// LightDir points from surfaces toward the light, in world space.
	LightDir mgl32.Vec3

	// Albedo is the surface color. With a Texture it multiplies the
	// sampled color; use softrast.White for an untinted texture.
	Albedo  softrast.Spectrum
	Texture *Texture
}

// Lambertian is a diffuse program with hemisphere lighting: a surface
// facing the light gets its full albedo, one facing away gets none, and
// surfaces in between are lit by 0.5 + 0.5*cos(angle).
//
// Input attributes are a position (x, y, z), a normal (nx, ny, nz) and
// texture coordinates (u, v). The texture coordinates come first in the
// output so that their derivatives select the mipmap level.
type Lambertian struct{}

var _ softrast.Program[LambertianParams] = Lambertian{}

// LambertianVertex builds a Lambertian input vertex.
func LambertianVertex(pos, normal mgl32.Vec3, uv mgl32.Vec2) softrast.Vertex {
	return softrast.Vertex{Attributes: softrast.Attributes{
		pos[0], pos[1], pos[2],
		normal[0], normal[1], normal[2],
		uv[0], uv[1],
	}}
}

// Layout implements softrast.Program.
func (Lambertian) Layout() softrast.Layout {
	return softrast.Layout{Attributes: 5, Derivatives: 2}
}

// ShadeVertex implements softrast.Program.
func (Lambertian) ShadeVertex(p LambertianParams, in softrast.Attributes) (mgl32.Vec4, softrast.Attributes) {
	clip := p.LocalToClip.Mul4x1(mgl32.Vec4{in[0], in[1], in[2], 1})
	n := p.NormalToWorld.Mul3x1(mgl32.Vec3{in[3], in[4], in[5]})
	return clip, softrast.Attributes{in[6], in[7], n[0], n[1], n[2]}
}

// ShadeFragment implements softrast.Program.
func (Lambertian) ShadeFragment(p LambertianParams, a softrast.Attributes, d softrast.Derivatives) (softrast.Spectrum, float32) {
	albedo := p.Albedo
	if p.Texture != nil {
		uv := mgl32.Vec2{a[0], a[1]}
		albedo = albedo.Mul(p.Texture.Sample(uv, [2]mgl32.Vec2{d[0], d[1]}))
	}

	n := mgl32.Vec3{a[2], a[3], a[4]}
	l := p.LightDir
	if n.Len() == 0 || l.Len() == 0 {
		return albedo, 1
	}
	diffuse := 0.5 + 0.5*n.Normalize().Dot(l.Normalize())
	return albedo.Scale(diffuse), 1
}
