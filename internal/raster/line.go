// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package raster

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/softrast/internal/vertex"
)

// Line emits one fragment for every pixel whose diamond the segment a→b
// exits, walking from a toward b.
//
// The diamond of pixel (i, j) is the square |x-cx| + |y-cy| <= 0.5 around
// the pixel center (cx, cy). Ties on its boundary are broken by moving the
// whole segment by (ε, ε²) for a vanishingly small ε > 0, which makes the
// diamond contain its lower-left and upper-left edges but not the other
// two. A pixel is emitted when the segment meets its diamond and b is not
// inside it, so consecutive segments sharing an endpoint never emit the
// same pixel twice for that endpoint.
//
// Fragments carry the attributes of a and zero derivatives; depth follows
// the projection of the pixel center onto the segment.
func Line(a, b vertex.Clipped, emit func(vertex.Fragment)) {
	ax, ay := float64(a.FBPosition[0]), float64(a.FBPosition[1])
	bx, by := float64(b.FBPosition[0]), float64(b.FBPosition[1])
	if !usable(ax, ay, bx, by) {
		return
	}
	dx, dy := bx-ax, by-ay
	if dx == 0 && dy == 0 {
		return
	}

	s := segment{ax: ax, ay: ay, bx: bx, by: by, dx: dx, dy: dy}
	za, zb := float64(a.FBPosition[2]), float64(b.FBPosition[2])

	visit := func(i, j int) {
		cx, cy := float64(i)+0.5, float64(j)+0.5
		if !s.exits(cx, cy) {
			return
		}
		t := ((cx-ax)*dx + (cy-ay)*dy) / (dx*dx + dy*dy)
		t = math.Min(math.Max(t, 0), 1)
		emit(vertex.Fragment{
			FBPosition: mgl32.Vec3{float32(cx), float32(cy), float32(za + (zb-za)*t)},
			Attributes: a.Attributes,
		})
	}

	if math.Abs(dx) >= math.Abs(dy) {
		walk(ax, ay, bx, by, func(major, minor int) { visit(major, minor) })
	} else {
		walk(ay, ax, by, bx, func(major, minor int) { visit(minor, major) })
	}
}

// walk enumerates candidate pixels of a segment whose major axis is the
// first coordinate, in order from (a0, a1) toward (b0, b1). The slope along
// the major axis is at most 1 in magnitude.
func walk(a0, a1, b0, b1 float64, visit func(major, minor int)) {
	lo0, hi0 := math.Min(a0, b0), math.Max(a0, b0)
	slope := (b1 - a1) / (b0 - a0)

	// minor coordinate of the segment at major coordinate u, clamped
	// to the segment
	at := func(u float64) float64 {
		u = math.Min(math.Max(u, lo0), hi0)
		return a1 + (u-a0)*slope
	}

	first, last := int(math.Floor(lo0))-1, int(math.Floor(hi0))+1
	step := 1
	if b0 < a0 {
		first, last, step = last, first, -1
	}
	for i := first; i != last+step; i += step {
		// the diamond of column i spans [i, i+1] along the major axis
		m0, m1 := at(float64(i)), at(float64(i+1))
		jlo := int(math.Floor(math.Min(m0, m1))) - 1
		jhi := int(math.Floor(math.Max(m0, m1))) + 1
		if b1 >= a1 {
			for j := jlo; j <= jhi; j++ {
				visit(i, j)
			}
		} else {
			for j := jhi; j >= jlo; j-- {
				visit(i, j)
			}
		}
	}
}

// segment holds a line in framebuffer space for diamond tests.
type segment struct {
	ax, ay, bx, by float64
	dx, dy         float64
}

// exits reports whether the perturbed segment meets the diamond centered at
// (cx, cy) while its end point lies outside that diamond.
//
// In the rotated frame p = u+v, q = u-v relative to the center, the diamond
// is the square |p|, |q| <= 0.5 and the perturbation (ε, ε²) shifts p and q
// by positive infinitesimals.
func (s *segment) exits(cx, cy float64) bool {
	ua, va := s.ax-cx, s.ay-cy
	ub, vb := s.bx-cx, s.by-cy
	pa, qa := ua+va, ua-va
	pb, qb := ub+vb, ub-vb

	if insideDiamond(pb, qb) {
		return false
	}

	// separating axes of the diamond
	if math.Max(pa, pb) < -0.5 || math.Min(pa, pb) >= 0.5 {
		return false
	}
	if math.Max(qa, qb) < -0.5 || math.Min(qa, qb) >= 0.5 {
		return false
	}

	// separating axis of the segment: its normal n = (-dy, dx); the
	// perturbation adds nx*ε + ny*ε² to the projection
	nx, ny := -s.dy, s.dx
	g := nx*ua + ny*va
	m := 0.5 * math.Max(math.Abs(nx), math.Abs(ny))
	if lexSign(g-m, nx, ny) > 0 || lexSign(g+m, nx, ny) < 0 {
		return false
	}
	return true
}

// insideDiamond applies the half-open membership rule in the rotated frame.
func insideDiamond(p, q float64) bool {
	return p >= -0.5 && p < 0.5 && q >= -0.5 && q < 0.5
}

// lexSign returns the sign of v0 + v1*ε + v2*ε² for infinitesimal ε > 0.
func lexSign(v0, v1, v2 float64) int {
	for _, v := range [...]float64{v0, v1, v2} {
		switch {
		case v > 0:
			return 1
		case v < 0:
			return -1
		}
	}
	return 0
}
