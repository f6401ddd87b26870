package raster

// edge is the implicit line through two vertices, E(x, y) = A*x + B*y + C,
// positive on its left. The coefficients of the reversed edge are the exact
// negations of these, so adjacent triangles agree on the sign of E at every
// sample.
type edge struct {
	a, b, c float64
	// owned marks an edge whose samples with E == 0 are covered
	owned bool
}

// newEdge builds the edge from (px, py) to (qx, qy). orient is +1 for
// counter-clockwise triangles and -1 for clockwise ones; edges are flipped
// so that the interior is always positive.
func newEdge(px, py, qx, qy float64, orient float64) edge {
	e := edge{
		a: py - qy,
		b: qx - px,
		c: px*qy - py*qx,
	}
	if orient < 0 {
		e.a, e.b, e.c = -e.a, -e.b, -e.c
	}
	// Direction of travel around the positively oriented triangle is
	// (b, -a). Left edges run downward and bottom edges run right.
	dx, dy := e.b, -e.a
	e.owned = dy < 0 || (dy == 0 && dx > 0)
	return e
}

// eval returns E at (x, y).
func (e *edge) eval(x, y float64) float64 {
	return e.a*x + e.b*y + e.c
}

// covers applies the shared-edge rule to a value of eval.
func (e *edge) covers(v float64) bool {
	return v > 0 || (v == 0 && e.owned)
}
