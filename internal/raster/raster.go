// Package raster converts framebuffer-space lines and triangles into
// fragments.
//
// All coverage predicates are evaluated in float64 on float32 inputs, which
// keeps edge function signs consistent between triangles sharing an edge.
package raster

import "math"

// Interp selects how triangle attributes vary across a primitive.
type Interp uint8

const (
	// Flat uses the first vertex's attributes for every fragment.
	Flat Interp = iota
	// Smooth interpolates linearly in framebuffer space.
	Smooth
	// Correct interpolates linearly in clip space (perspective-correct).
	Correct
)

// String returns the lowercase name of the mode.
func (i Interp) String() string {
	switch i {
	case Flat:
		return "flat"
	case Smooth:
		return "smooth"
	case Correct:
		return "correct"
	default:
		return "unknown"
	}
}

// Valid reports whether i is one of the defined modes.
func (i Interp) Valid() bool {
	return i <= Correct
}

// maxExtent bounds framebuffer coordinates accepted by the rasterizers.
// Primitives reaching past it are dropped instead of being walked.
const maxExtent = 1 << 20

// usable reports whether every coordinate is finite and within maxExtent.
func usable(coords ...float64) bool {
	for _, c := range coords {
		if math.IsNaN(c) || math.Abs(c) > maxExtent {
			return false
		}
	}
	return true
}
