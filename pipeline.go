// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package softrast

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/softrast/internal/blend"
	"github.com/gogpu/softrast/internal/clip"
	"github.com/gogpu/softrast/internal/raster"
)

// Pipeline renders primitives with a fixed program and state.
//
// A Pipeline is immutable after New and may be shared between goroutines.
// Run mutates only the framebuffer it is given.
type Pipeline[P any] struct {
	prog   Program[P]
	layout Layout
	state  State
}

// New creates a pipeline running prog with the given options applied on
// top of DefaultState.
//
// Errors wrap ErrNilProgram, ErrUnsupportedTopology, ErrUnsupportedState,
// ErrMultisample or ErrLayout.
func New[P any](prog Program[P], opts ...Option) (*Pipeline[P], error) {
	if prog == nil {
		return nil, ErrNilProgram
	}

	state := DefaultState()
	for _, opt := range opts {
		opt(&state)
	}

	layout := prog.Layout()
	if err := state.validate(layout); err != nil {
		return nil, err
	}

	return &Pipeline[P]{
		prog:   prog,
		layout: layout,
		state:  state,
	}, nil
}

// State returns the pipeline configuration.
func (p *Pipeline[P]) State() State {
	return p.state
}

// Layout returns the program layout captured at creation.
func (p *Pipeline[P]) Layout() Layout {
	return p.layout
}

// Run renders vertices into fb. Consecutive groups of two (lines) or three
// (triangles) vertices form primitives; trailing vertices that do not fill
// a group are ignored.
//
// Run panics if fb is nil. Fragments that land outside fb are skipped and
// counted in Stats.OutOfRange.
func (p *Pipeline[P]) Run(vertices []Vertex, params P, fb Framebuffer) Stats {
	if fb == nil {
		panic("softrast: nil framebuffer")
	}

	lines := p.state.Topology == gputypes.PrimitiveTopologyLineList
	per := 3
	if lines {
		per = 2
	}
	n := len(vertices) / per * per

	stats := Stats{Vertices: n, Primitives: n / per}

	// Stage 1: vertex shading.
	shaded := make([]ShadedVertex, n)
	for i, v := range vertices[:n] {
		pos, out := p.prog.ShadeVertex(params, v.Attributes)
		shaded[i] = ShadedVertex{ClipPosition: pos, Attributes: out}
	}

	// Stage 2: clipping.
	flat := p.state.Interp == InterpFlat
	var clipped []ShadedVertex
	emit := func(v ShadedVertex) { clipped = append(clipped, v) }
	stage := "clip_triangle"
	if lines {
		stage = "clip_line"
		clipped = make([]ShadedVertex, 0, n)
		for i := 0; i < n; i += 2 {
			clip.Line(shaded[i], shaded[i+1], flat, emit)
		}
	} else {
		clipped = make([]ShadedVertex, 0, 8*n)
		for i := 0; i < n; i += 3 {
			clip.Triangle(shaded[i], shaded[i+1], shaded[i+2], flat, emit)
		}
	}
	stats.ClippedVerts = len(clipped)

	vp := p.viewport(fb)
	projected := make([]ClippedVertex, len(clipped))
	for i, v := range clipped {
		projected[i] = vp.Project(v)
	}

	// Stages 3 to 5: rasterization feeding depth test, shading and blending
	// in emission order.
	f := fragmentSink[P]{p: p, params: params, fb: fb, stats: &stats}
	if lines {
		for i := 0; i+1 < len(projected); i += 2 {
			raster.Line(projected[i], projected[i+1], f.process)
		}
	} else {
		for i := 0; i+2 < len(projected); i += 3 {
			raster.Triangle(projected[i], projected[i+1], projected[i+2],
				p.state.Interp, p.layout.Derivatives, f.process)
		}
	}

	log := Logger()
	if stats.OutOfRange > 0 {
		log.Warn("softrast: produced fragments outside framebuffer, clipping is likely wrong",
			"stage", stage, "count", stats.OutOfRange)
	}
	log.Debug("softrast: run complete",
		"vertices", stats.Vertices,
		"primitives", stats.Primitives,
		"clipped", stats.ClippedVerts,
		"fragments", stats.Fragments,
		"depth_rejected", stats.DepthRejected,
		"shaded", stats.Shaded)

	return stats
}

// viewport returns the mapping from clip space onto fb.
func (p *Pipeline[P]) viewport(fb Framebuffer) clip.Viewport {
	if x, y, w, h, ok := p.state.Viewport(); ok {
		return clip.NewViewport(x, y, w, h)
	}
	return clip.NewViewport(0, 0, float32(fb.Width()), float32(fb.Height()))
}

// fragmentSink runs the per-fragment stages of a single Run.
type fragmentSink[P any] struct {
	p      *Pipeline[P]
	params P
	fb     Framebuffer
	stats  *Stats
}

func (s *fragmentSink[P]) process(frag Fragment) {
	s.stats.Fragments++

	// Compare as floats so that NaN positions count as out of range.
	fx, fy := frag.FBPosition[0], frag.FBPosition[1]
	if !(fx >= 0 && fx < float32(s.fb.Width()) && fy >= 0 && fy < float32(s.fb.Height())) {
		s.stats.OutOfRange++
		return
	}
	x, y := int(fx), int(fy)

	state := &s.p.state
	z := frag.FBPosition[2]
	depth := s.fb.DepthAt(x, y)
	if !depthPasses(state.Depth, z, *depth) {
		s.stats.DepthRejected++
		return
	}
	if state.DepthWrite {
		*depth = z
	}

	color, opacity := s.p.prog.ShadeFragment(s.params, frag.Attributes, frag.Derivatives)
	s.stats.Shaded++

	if state.ColorWrite == gputypes.ColorWriteMaskNone {
		return
	}
	dst := s.fb.ColorAt(x, y)
	*dst = Spectrum(blend.Apply(state.Blend, state.ColorWrite, blend.RGB(color), opacity, blend.RGB(*dst)))
}

// depthPasses evaluates the compare function with the fragment depth as the
// left operand.
func depthPasses(f gputypes.CompareFunction, z, stored float32) bool {
	switch f {
	case gputypes.CompareFunctionNever:
		return false
	case gputypes.CompareFunctionLess:
		return z < stored
	case gputypes.CompareFunctionEqual:
		return z == stored
	case gputypes.CompareFunctionLessEqual:
		return z <= stored
	case gputypes.CompareFunctionGreater:
		return z > stored
	case gputypes.CompareFunctionNotEqual:
		return z != stored
	case gputypes.CompareFunctionGreaterEqual:
		return z >= stored
	default:
		return true
	}
}
