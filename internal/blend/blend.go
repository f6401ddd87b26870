// Package blend combines shaded fragment colors with framebuffer colors.
//
// The framebuffer stores RGB without alpha. Opacity only weights the
// incoming color, so the supported modes correspond to the color component
// of a handful of fixed-function blend states.
package blend

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
)

// ErrUnsupported is returned for blend states without a matching Mode.
var ErrUnsupported = errors.New("blend: unsupported blend state")

// RGB is a linear color (internal copy to avoid import cycle).
type RGB struct {
	R, G, B float32
}

// Mode is a color blend operation.
type Mode uint8

const (
	// Replace writes the source color: D = S.
	Replace Mode = iota
	// Add accumulates the weighted source: D = D + S*a.
	Add
	// Over composites the source over the destination: D = S*a + D*(1-a).
	Over
)

// String returns the lowercase name of the mode.
func (m Mode) String() string {
	switch m {
	case Replace:
		return "replace"
	case Add:
		return "add"
	case Over:
		return "over"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// Valid reports whether m is one of the defined modes.
func (m Mode) Valid() bool {
	return m <= Over
}

// Func blends a source color with opacity alpha into dst.
type Func func(src RGB, alpha float32, dst RGB) RGB

// GetFunc returns the blend function for mode. Unknown modes replace.
func GetFunc(mode Mode) Func {
	switch mode {
	case Add:
		return blendAdd
	case Over:
		return blendOver
	default:
		return blendReplace
	}
}

func blendReplace(src RGB, _ float32, _ RGB) RGB {
	return src
}

func blendAdd(src RGB, alpha float32, dst RGB) RGB {
	return RGB{
		R: dst.R + src.R*alpha,
		G: dst.G + src.G*alpha,
		B: dst.B + src.B*alpha,
	}
}

func blendOver(src RGB, alpha float32, dst RGB) RGB {
	inv := 1 - alpha
	return RGB{
		R: src.R*alpha + dst.R*inv,
		G: src.G*alpha + dst.G*inv,
		B: src.B*alpha + dst.B*inv,
	}
}

// Apply blends src into dst and keeps only the channels enabled in mask.
func Apply(mode Mode, mask gputypes.ColorWriteMask, src RGB, alpha float32, dst RGB) RGB {
	out := GetFunc(mode)(src, alpha, dst)
	if mask&gputypes.ColorWriteMaskRed == 0 {
		out.R = dst.R
	}
	if mask&gputypes.ColorWriteMaskGreen == 0 {
		out.G = dst.G
	}
	if mask&gputypes.ColorWriteMaskBlue == 0 {
		out.B = dst.B
	}
	return out
}

var (
	addColor = gputypes.BlendComponent{
		SrcFactor: gputypes.BlendFactorSrcAlpha,
		DstFactor: gputypes.BlendFactorOne,
		Operation: gputypes.BlendOperationAdd,
	}
	addAlpha = gputypes.BlendComponent{
		SrcFactor: gputypes.BlendFactorOne,
		DstFactor: gputypes.BlendFactorOne,
		Operation: gputypes.BlendOperationAdd,
	}
)

// State returns the fixed-function blend state equivalent to m.
func (m Mode) State() gputypes.BlendState {
	switch m {
	case Add:
		return gputypes.BlendState{Color: addColor, Alpha: addAlpha}
	case Over:
		return gputypes.BlendStateAlpha()
	default:
		return gputypes.BlendStateReplace()
	}
}

// ModeFromState maps a blend state to a Mode. Only the color component is
// considered since the framebuffer has no alpha channel.
func ModeFromState(s gputypes.BlendState) (Mode, error) {
	switch s.Color {
	case gputypes.BlendStateReplace().Color:
		return Replace, nil
	case addColor:
		return Add, nil
	case gputypes.BlendStateAlpha().Color:
		return Over, nil
	}
	return 0, fmt.Errorf("%w: color %+v", ErrUnsupported, s.Color)
}
