package softrast

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// Flags packs depth, write, blend and interpolation settings into a single
// bitmask. Each group occupies its own bits; the zero value selects Less
// depth testing with depth and color writes, Replace blending and flat
// interpolation.
type Flags uint32

// Depth compare group.
const (
	FlagDepthLess   Flags = 0x0
	FlagDepthNever  Flags = 0x1
	FlagDepthAlways Flags = 0x2
	FlagDepthMask   Flags = 0x3
)

// Write enables.
const (
	FlagDepthWriteDisable Flags = 0x4
	FlagColorWriteDisable Flags = 0x8
)

// Blend group.
const (
	FlagBlendReplace Flags = 0x00
	FlagBlendAdd     Flags = 0x10
	FlagBlendOver    Flags = 0x20
	FlagBlendMask    Flags = 0x30
)

// Interpolation group.
const (
	FlagInterpFlat    Flags = 0x00
	FlagInterpSmooth  Flags = 0x40
	FlagInterpCorrect Flags = 0x80
	FlagInterpMask    Flags = 0xC0
)

const flagsKnown = FlagDepthMask | FlagDepthWriteDisable | FlagColorWriteDisable | FlagBlendMask | FlagInterpMask

// WithFlags applies a flag set, overriding the depth, write, blend and
// interpolation settings. Reserved bit patterns make New fail.
func WithFlags(f Flags) Option {
	return func(s *State) {
		if f&^flagsKnown != 0 {
			s.fail(fmt.Errorf("%w: unknown flags %#x", ErrUnsupportedState, uint32(f&^flagsKnown)))
			return
		}

		switch f & FlagDepthMask {
		case FlagDepthLess:
			s.Depth = gputypes.CompareFunctionLess
		case FlagDepthNever:
			s.Depth = gputypes.CompareFunctionNever
		case FlagDepthAlways:
			s.Depth = gputypes.CompareFunctionAlways
		default:
			s.fail(fmt.Errorf("%w: depth flags %#x", ErrUnsupportedState, uint32(f&FlagDepthMask)))
			return
		}

		s.DepthWrite = f&FlagDepthWriteDisable == 0
		if f&FlagColorWriteDisable != 0 {
			s.ColorWrite = gputypes.ColorWriteMaskNone
		} else {
			s.ColorWrite = gputypes.ColorWriteMaskAll
		}

		switch f & FlagBlendMask {
		case FlagBlendReplace:
			s.Blend = BlendReplace
		case FlagBlendAdd:
			s.Blend = BlendAdd
		case FlagBlendOver:
			s.Blend = BlendOver
		default:
			s.fail(fmt.Errorf("%w: blend flags %#x", ErrUnsupportedState, uint32(f&FlagBlendMask)))
			return
		}

		switch f & FlagInterpMask {
		case FlagInterpFlat:
			s.Interp = InterpFlat
		case FlagInterpSmooth:
			s.Interp = InterpSmooth
		case FlagInterpCorrect:
			s.Interp = InterpCorrect
		default:
			s.fail(fmt.Errorf("%w: interpolation flags %#x", ErrUnsupportedState, uint32(f&FlagInterpMask)))
		}
	}
}

// Flags returns the flag set describing s, and false when s uses settings
// the flags cannot express (other compare functions, partial write masks).
func (s State) Flags() (Flags, bool) {
	var f Flags
	switch s.Depth {
	case gputypes.CompareFunctionLess:
		f |= FlagDepthLess
	case gputypes.CompareFunctionNever:
		f |= FlagDepthNever
	case gputypes.CompareFunctionAlways:
		f |= FlagDepthAlways
	default:
		return 0, false
	}
	if !s.DepthWrite {
		f |= FlagDepthWriteDisable
	}
	switch s.ColorWrite {
	case gputypes.ColorWriteMaskNone:
		f |= FlagColorWriteDisable
	case gputypes.ColorWriteMaskAll:
	default:
		return 0, false
	}
	switch s.Blend {
	case BlendReplace:
		f |= FlagBlendReplace
	case BlendAdd:
		f |= FlagBlendAdd
	case BlendOver:
		f |= FlagBlendOver
	default:
		return 0, false
	}
	switch s.Interp {
	case InterpFlat:
		f |= FlagInterpFlat
	case InterpSmooth:
		f |= FlagInterpSmooth
	case InterpCorrect:
		f |= FlagInterpCorrect
	default:
		return 0, false
	}
	return f, true
}
