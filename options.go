package softrast

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/softrast/internal/blend"
	"github.com/gogpu/softrast/internal/raster"
)

// BlendMode selects how shaded colors combine with the framebuffer.
type BlendMode = blend.Mode

// Blend modes. The framebuffer color is treated as premultiplied.
const (
	BlendReplace = blend.Replace // dst = src
	BlendAdd     = blend.Add     // dst = dst + src*opacity
	BlendOver    = blend.Over    // dst = src*opacity + dst*(1-opacity)
)

// Interp selects how triangle attributes are interpolated.
type Interp = raster.Interp

// Interpolation modes.
const (
	InterpFlat    = raster.Flat    // first vertex's attributes
	InterpSmooth  = raster.Smooth  // linear in framebuffer space
	InterpCorrect = raster.Correct // perspective-correct
)

// BlendModeFromState returns the blend mode equivalent to a WebGPU blend
// state. Only the color component is considered.
func BlendModeFromState(s gputypes.BlendState) (BlendMode, error) {
	m, err := blend.ModeFromState(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrUnsupportedState, err)
	}
	return m, nil
}

// State is the fixed-function configuration of a Pipeline.
type State struct {
	Topology    gputypes.PrimitiveTopology
	Depth       gputypes.CompareFunction
	DepthWrite  bool
	ColorWrite  gputypes.ColorWriteMask
	Blend       BlendMode
	Interp      Interp
	Multisample gputypes.MultisampleState

	viewport    [4]float32
	hasViewport bool
	err         error
}

// DefaultState returns the configuration used when no options are given:
// triangle lists, depth test Always with depth writes, all color channels,
// Replace blending, flat interpolation and one sample per pixel.
func DefaultState() State {
	return State{
		Topology:    gputypes.PrimitiveTopologyTriangleList,
		Depth:       gputypes.CompareFunctionAlways,
		DepthWrite:  true,
		ColorWrite:  gputypes.ColorWriteMaskAll,
		Blend:       BlendReplace,
		Interp:      InterpFlat,
		Multisample: gputypes.MultisampleState{Count: 1},
	}
}

// Viewport returns the rectangle clip space is mapped onto and whether one
// was set. Without one the whole framebuffer is used.
func (s State) Viewport() (x, y, width, height float32, ok bool) {
	v := s.viewport
	return v[0], v[1], v[2], v[3], s.hasViewport
}

// Option configures a Pipeline during creation.
//
// Example:
//
//	pl, err := softrast.New[Params](prog,
//	    softrast.WithTopology(gputypes.PrimitiveTopologyLineList),
//	    softrast.WithBlend(softrast.BlendAdd),
//	)
type Option func(*State)

// WithTopology sets the primitive topology. Only line lists and triangle
// lists are supported.
func WithTopology(t gputypes.PrimitiveTopology) Option {
	return func(s *State) {
		s.Topology = t
	}
}

// WithDepth sets the depth compare function.
func WithDepth(f gputypes.CompareFunction) Option {
	return func(s *State) {
		s.Depth = f
	}
}

// WithDepthWrite enables or disables depth writes.
func WithDepthWrite(enabled bool) Option {
	return func(s *State) {
		s.DepthWrite = enabled
	}
}

// WithColorWrite sets the color channels written by blending.
func WithColorWrite(mask gputypes.ColorWriteMask) Option {
	return func(s *State) {
		s.ColorWrite = mask
	}
}

// WithBlend sets the blend mode.
func WithBlend(m BlendMode) Option {
	return func(s *State) {
		s.Blend = m
	}
}

// WithBlendState sets the blend mode from a WebGPU blend state. States
// without an equivalent mode make New fail.
func WithBlendState(bs gputypes.BlendState) Option {
	return func(s *State) {
		m, err := BlendModeFromState(bs)
		if err != nil {
			s.fail(err)
			return
		}
		s.Blend = m
	}
}

// WithInterp sets the attribute interpolation mode.
func WithInterp(i Interp) Option {
	return func(s *State) {
		s.Interp = i
	}
}

// WithMultisample sets the multisample state. Only a count of 0 or 1 is
// accepted.
func WithMultisample(ms gputypes.MultisampleState) Option {
	return func(s *State) {
		s.Multisample = ms
	}
}

// WithViewport maps clip space onto the given rectangle of the framebuffer
// instead of the whole framebuffer. Parts of the rectangle outside the
// framebuffer produce fragments that are counted as out of range and
// skipped.
func WithViewport(x, y, width, height float32) Option {
	return func(s *State) {
		if !(width > 0 && height > 0) {
			s.fail(fmt.Errorf("%w: viewport size %vx%v", ErrUnsupportedState, width, height))
			return
		}
		s.viewport = [4]float32{x, y, width, height}
		s.hasViewport = true
	}
}

// fail records the first configuration error.
func (s *State) fail(err error) {
	if s.err == nil {
		s.err = err
	}
}

// validate checks the state against what Run can execute.
func (s *State) validate(layout Layout) error {
	if s.err != nil {
		return s.err
	}

	switch s.Topology {
	case gputypes.PrimitiveTopologyLineList:
		if s.Interp != InterpFlat {
			return fmt.Errorf("%w: lines require flat interpolation, got %v", ErrUnsupportedState, s.Interp)
		}
	case gputypes.PrimitiveTopologyTriangleList:
	default:
		return fmt.Errorf("%w: %v", ErrUnsupportedTopology, s.Topology)
	}

	if s.Depth == gputypes.CompareFunctionUndefined || s.Depth > gputypes.CompareFunctionAlways {
		return fmt.Errorf("%w: depth compare function %v", ErrUnsupportedState, s.Depth)
	}
	if s.ColorWrite&^gputypes.ColorWriteMaskAll != 0 {
		return fmt.Errorf("%w: color write mask %#x", ErrUnsupportedState, uint32(s.ColorWrite))
	}
	if !s.Blend.Valid() {
		return fmt.Errorf("%w: blend mode %v", ErrUnsupportedState, s.Blend)
	}
	if !s.Interp.Valid() {
		return fmt.Errorf("%w: interpolation mode %v", ErrUnsupportedState, s.Interp)
	}
	if s.Multisample.Count > 1 {
		return fmt.Errorf("%w: %d samples", ErrMultisample, s.Multisample.Count)
	}

	if layout.Attributes < 0 || layout.Attributes > MaxAttributes {
		return fmt.Errorf("%w: %d attributes (max %d)", ErrLayout, layout.Attributes, MaxAttributes)
	}
	if layout.Derivatives < 0 || layout.Derivatives > MaxDerivatives || layout.Derivatives > layout.Attributes {
		return fmt.Errorf("%w: derivatives for %d of %d attributes (max %d)",
			ErrLayout, layout.Derivatives, layout.Attributes, MaxDerivatives)
	}
	return nil
}
