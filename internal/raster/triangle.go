// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package raster

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/softrast/internal/vertex"
)

// Triangle emits one fragment for every pixel whose center lies inside the
// triangle (a, b, c), bottom row first and left to right within a row.
//
// Centers exactly on an edge belong to the triangle only when the edge is a
// left edge or a bottom edge, so two triangles sharing an edge never both
// emit a pixel on it. Degenerate triangles emit nothing.
//
// Attributes follow mode. Depth is always linear in framebuffer space. The
// first derivs attributes of a Smooth or Correct fragment get their partial
// derivatives with respect to framebuffer x and y; the rest stay zero.
func Triangle(a, b, c vertex.Clipped, mode Interp, derivs int, emit func(vertex.Fragment)) {
	ax, ay := float64(a.FBPosition[0]), float64(a.FBPosition[1])
	bx, by := float64(b.FBPosition[0]), float64(b.FBPosition[1])
	cx, cy := float64(c.FBPosition[0]), float64(c.FBPosition[1])
	if !usable(ax, ay, bx, by, cx, cy) {
		return
	}

	// Twice the signed area, evaluated with the same formula as the edges.
	ab := newEdge(ax, ay, bx, by, 1)
	area := ab.eval(cx, cy)
	if area == 0 {
		return
	}
	orient := math.Copysign(1, area)
	area = math.Abs(area)

	// Edge opposite each vertex: its value over the area is that vertex's
	// barycentric weight.
	ea := newEdge(bx, by, cx, cy, orient)
	eb := newEdge(cx, cy, ax, ay, orient)
	ec := newEdge(ax, ay, bx, by, orient)

	in := newInterpolator(a, b, c, mode, derivs, [3]*edge{&ea, &eb, &ec}, area)

	x0 := int(math.Ceil(min(ax, bx, cx) - 0.5))
	x1 := int(math.Floor(max(ax, bx, cx) - 0.5))
	y0 := int(math.Ceil(min(ay, by, cy) - 0.5))
	y1 := int(math.Floor(max(ay, by, cy) - 0.5))

	for y := y0; y <= y1; y++ {
		sy := float64(y) + 0.5
		for x := x0; x <= x1; x++ {
			sx := float64(x) + 0.5
			wa, wb, wc := ea.eval(sx, sy), eb.eval(sx, sy), ec.eval(sx, sy)
			if !ea.covers(wa) || !eb.covers(wb) || !ec.covers(wc) {
				continue
			}
			emit(in.fragment(sx, sy, wa/area, wb/area, wc/area))
		}
	}
}

// interpolator turns barycentric weights into fragments.
type interpolator struct {
	mode   Interp
	derivs int
	verts  [3]*vertex.Clipped
	z      [3]float64
	invW   [3]float64
	// screen-space gradients of the barycentric weights
	dldx, dldy [3]float64
}

func newInterpolator(a, b, c vertex.Clipped, mode Interp, derivs int, edges [3]*edge, area float64) *interpolator {
	in := &interpolator{
		mode:   mode,
		derivs: min(max(derivs, 0), vertex.MaxDerivatives, vertex.MaxAttributes),
		verts:  [3]*vertex.Clipped{&a, &b, &c},
	}
	for k, v := range in.verts {
		in.z[k] = float64(v.FBPosition[2])
		in.invW[k] = float64(v.InvW)
		in.dldx[k] = edges[k].a / area
		in.dldy[k] = edges[k].b / area
	}
	return in
}

func (in *interpolator) fragment(sx, sy, la, lb, lc float64) vertex.Fragment {
	l := [3]float64{la, lb, lc}
	f := vertex.Fragment{
		FBPosition: mgl32.Vec3{
			float32(sx),
			float32(sy),
			float32(l[0]*in.z[0] + l[1]*in.z[1] + l[2]*in.z[2]),
		},
	}

	switch in.mode {
	case Smooth:
		for i := range f.Attributes {
			var v float64
			for k := range l {
				v += l[k] * float64(in.verts[k].Attributes[i])
			}
			f.Attributes[i] = float32(v)
		}
		for i := 0; i < in.derivs; i++ {
			var gx, gy float64
			for k := range l {
				attr := float64(in.verts[k].Attributes[i])
				gx += in.dldx[k] * attr
				gy += in.dldy[k] * attr
			}
			f.Derivatives[i] = mgl32.Vec2{float32(gx), float32(gy)}
		}

	case Correct:
		// Weights λk/wk are linear in screen space; the attribute is
		// their weighted average n/d.
		var d, ddx, ddy float64
		var w [3]float64
		for k := range l {
			w[k] = l[k] * in.invW[k]
			d += w[k]
			ddx += in.dldx[k] * in.invW[k]
			ddy += in.dldy[k] * in.invW[k]
		}
		var vals [vertex.MaxAttributes]float64
		for i := range f.Attributes {
			var n float64
			for k := range l {
				n += w[k] * float64(in.verts[k].Attributes[i])
			}
			vals[i] = n / d
			f.Attributes[i] = float32(vals[i])
		}
		for i := 0; i < in.derivs; i++ {
			var ndx, ndy float64
			for k := range l {
				attr := float64(in.verts[k].Attributes[i])
				ndx += in.dldx[k] * in.invW[k] * attr
				ndy += in.dldy[k] * in.invW[k] * attr
			}
			v := vals[i]
			f.Derivatives[i] = mgl32.Vec2{
				float32((ndx - v*ddx) / d),
				float32((ndy - v*ddy) / d),
			}
		}

	default:
		f.Attributes = in.verts[0].Attributes
	}
	return f
}
