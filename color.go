package softrast

import (
	"fmt"
	"image/color"
)

// Spectrum is a linear RGB color. Components are nominally in [0, 1] but
// may exceed that range after additive blending; conversion to 8-bit
// colors clamps.
type Spectrum struct {
	R, G, B float32
}

// RGB creates a spectrum from its components.
func RGB(r, g, b float32) Spectrum {
	return Spectrum{R: r, G: g, B: b}
}

// Gray creates a spectrum with all components equal to v.
func Gray(v float32) Spectrum {
	return Spectrum{R: v, G: v, B: v}
}

// Add returns the component-wise sum of two spectra.
func (s Spectrum) Add(o Spectrum) Spectrum {
	return Spectrum{R: s.R + o.R, G: s.G + o.G, B: s.B + o.B}
}

// Mul returns the component-wise product of two spectra.
func (s Spectrum) Mul(o Spectrum) Spectrum {
	return Spectrum{R: s.R * o.R, G: s.G * o.G, B: s.B * o.B}
}

// Scale returns the spectrum multiplied by k.
func (s Spectrum) Scale(k float32) Spectrum {
	return Spectrum{R: s.R * k, G: s.G * k, B: s.B * k}
}

// Lerp performs linear interpolation between two spectra.
func (s Spectrum) Lerp(o Spectrum, t float32) Spectrum {
	return Spectrum{
		R: s.R + (o.R-s.R)*t,
		G: s.G + (o.G-s.G)*t,
		B: s.B + (o.B-s.B)*t,
	}
}

// Luma returns the Rec. 709 luminance of the spectrum.
func (s Spectrum) Luma() float32 {
	return 0.2126*s.R + 0.7152*s.G + 0.0722*s.B
}

// Color converts the spectrum to an opaque color.NRGBA.
func (s Spectrum) Color() color.Color {
	return color.NRGBA{
		R: to8(s.R),
		G: to8(s.G),
		B: to8(s.B),
		A: 255,
	}
}

// FromColor converts a standard color.Color to a spectrum.
// Alpha is discarded; the color's premultiplied components are kept as-is,
// which matches the premultiplied convention of the framebuffer.
func FromColor(c color.Color) Spectrum {
	r, g, b, _ := c.RGBA()
	return Spectrum{
		R: float32(r) / 65535,
		G: float32(g) / 65535,
		B: float32(b) / 65535,
	}
}

// ParseHex parses a color in one of the forms "RGB", "RRGGBB",
// optionally prefixed with '#'.
func ParseHex(hex string) (Spectrum, error) {
	if hex != "" && hex[0] == '#' {
		hex = hex[1:]
	}

	var r, g, b uint32
	var ok bool
	switch len(hex) {
	case 3: // RGB
		ok = parseHex(hex[0:1], &r) && parseHex(hex[1:2], &g) && parseHex(hex[2:3], &b)
		r, g, b = r*17, g*17, b*17
	case 6: // RRGGBB
		ok = parseHex(hex[0:2], &r) && parseHex(hex[2:4], &g) && parseHex(hex[4:6], &b)
	}
	if !ok {
		return Spectrum{}, fmt.Errorf("softrast: invalid hex color %q", hex)
	}

	return Spectrum{
		R: float32(r) / 255,
		G: float32(g) / 255,
		B: float32(b) / 255,
	}, nil
}

// parseHex is a helper for hex parsing
func parseHex(s string, val *uint32) bool {
	*val = 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		*val *= 16
		switch {
		case '0' <= c && c <= '9':
			*val += uint32(c - '0')
		case 'a' <= c && c <= 'f':
			*val += uint32(c - 'a' + 10)
		case 'A' <= c && c <= 'F':
			*val += uint32(c - 'A' + 10)
		default:
			return false
		}
	}
	return true
}

// to8 clamps a component to [0, 1] and scales it to a byte.
func to8(x float32) uint8 {
	if !(x > 0) {
		return 0
	}
	if x >= 1 {
		return 255
	}
	return uint8(x*255 + 0.5)
}

// Common spectra
var (
	Black   = RGB(0, 0, 0)
	White   = RGB(1, 1, 1)
	Red     = RGB(1, 0, 0)
	Green   = RGB(0, 1, 0)
	Blue    = RGB(0, 0, 1)
	Yellow  = RGB(1, 1, 0)
	Cyan    = RGB(0, 1, 1)
	Magenta = RGB(1, 0, 1)
)
