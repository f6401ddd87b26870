// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package clip

import "github.com/gogpu/softrast/internal/vertex"

// maxPolygon bounds the vertex count of a triangle clipped by six planes:
// every plane adds at most one vertex to a convex polygon.
const maxPolygon = 3 + len(planes)

// Line clips the segment a→b to the clip volume and calls emit twice with
// the endpoints of the surviving piece, in the original direction. Nothing
// is emitted when no part of the segment survives.
//
// Endpoints that are not clipped are emitted unchanged. When flat is set,
// new endpoints take the attributes of a instead of interpolated ones.
func Line(a, b vertex.Shaded, flat bool, emit func(vertex.Shaded)) {
	minT, maxT := float32(0), float32(1)

	// restrict [minT, maxT] to l + t*dl <= r + t*dr,
	// i.e. l - r <= t*(dr - dl)
	clipRange := func(l, dl, r, dr float32) {
		switch {
		case dr == dl:
			if l-r > 0 {
				minT, maxT = 1, 0
			}
		case dr > dl:
			minT = max(minT, (l-r)/(dr-dl))
		default:
			maxT = min(maxT, (l-r)/(dr-dl))
		}
	}

	pa := a.ClipPosition
	ba := b.ClipPosition.Sub(pa)
	for axis := 0; axis < 3; axis++ {
		// -w <= v[axis] <= w along the segment
		clipRange(-pa[3], -ba[3], pa[axis], ba[axis])
		clipRange(pa[axis], ba[axis], pa[3], ba[3])
	}

	if !(minT < maxT) {
		return
	}

	endpoint := func(t float32, orig vertex.Shaded, exact float32) vertex.Shaded {
		if t == exact {
			return orig
		}
		v := a.Lerp(b, t)
		if flat {
			v.Attributes = a.Attributes
		}
		return v
	}
	emit(endpoint(minT, a, 0))
	emit(endpoint(maxT, b, 1))
}

// Triangle clips the triangle (a, b, c) to the clip volume and emits the
// surviving polygon as a fan of triangles, three emit calls per triangle,
// with the winding of the input. Nothing is emitted when no area survives.
//
// Triangles entirely inside are emitted unchanged. When flat is set, every
// emitted vertex carries the attributes of a, so that the first vertex of
// each output triangle still provides the flat value.
func Triangle(a, b, c vertex.Shaded, flat bool, emit func(vertex.Shaded)) {
	if Inside(a.ClipPosition, 0) && Inside(b.ClipPosition, 0) && Inside(c.ClipPosition, 0) {
		emit(a)
		emit(b)
		emit(c)
		return
	}

	var bufA, bufB [maxPolygon]vertex.Shaded
	poly := append(bufA[:0], a, b, c)
	next := bufB[:0]

	for _, pl := range planes {
		next = next[:0]
		for i := range poly {
			cur, nxt := poly[i], poly[(i+1)%len(poly)]
			dc, dn := pl.distance(cur.ClipPosition), pl.distance(nxt.ClipPosition)
			if dc >= 0 {
				next = append(next, cur)
			}
			if (dc >= 0) == (dn >= 0) {
				continue
			}
			// Interpolate from the inside vertex so that an edge shared by
			// two triangles is cut at exactly the same point in both.
			if dc >= 0 {
				next = append(next, cur.Lerp(nxt, dc/(dc-dn)))
			} else {
				next = append(next, nxt.Lerp(cur, dn/(dn-dc)))
			}
		}
		poly, next = next, poly
		if len(poly) < 3 {
			return
		}
	}

	if flat {
		for i := range poly {
			poly[i].Attributes = a.Attributes
		}
	}
	for i := 1; i+1 < len(poly); i++ {
		emit(poly[0])
		emit(poly[i])
		emit(poly[i+1])
	}
}
