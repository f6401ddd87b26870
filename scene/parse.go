package scene

import (
	"fmt"
	"strings"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/softrast"
)

// Names accepted by Draw.Program.
const (
	ProgramColor      = "color"
	ProgramLambertian = "lambertian"
)

// normalize folds case and drops separators, so that "triangle_list",
// "triangle-list" and "TriangleList" compare equal.
func normalize(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '_', '-', ' ':
			return -1
		}
		return r
	}, strings.ToLower(s))
}

var topologies = []gputypes.PrimitiveTopology{
	gputypes.PrimitiveTopologyPointList,
	gputypes.PrimitiveTopologyLineList,
	gputypes.PrimitiveTopologyLineStrip,
	gputypes.PrimitiveTopologyTriangleList,
	gputypes.PrimitiveTopologyTriangleStrip,
}

// parseTopology accepts any gputypes topology name plus the short forms
// "lines" and "triangles". Unsupported topologies parse; New rejects them.
func parseTopology(s string) (gputypes.PrimitiveTopology, error) {
	switch n := normalize(s); n {
	case "lines":
		return gputypes.PrimitiveTopologyLineList, nil
	case "triangles":
		return gputypes.PrimitiveTopologyTriangleList, nil
	default:
		for _, t := range topologies {
			if normalize(t.String()) == n {
				return t, nil
			}
		}
	}
	return 0, fmt.Errorf("unknown topology %q", s)
}

func parseCompare(s string) (gputypes.CompareFunction, error) {
	n := normalize(s)
	for f := gputypes.CompareFunctionNever; f <= gputypes.CompareFunctionAlways; f++ {
		if normalize(f.String()) == n {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown depth function %q", s)
}

// parseColorWrite accepts "all", "none" or a set of channel letters such
// as "rgb" or "a".
func parseColorWrite(s string) (gputypes.ColorWriteMask, error) {
	switch n := normalize(s); n {
	case "all":
		return gputypes.ColorWriteMaskAll, nil
	case "none":
		return gputypes.ColorWriteMaskNone, nil
	default:
		var m gputypes.ColorWriteMask
		for _, r := range n {
			switch r {
			case 'r':
				m |= gputypes.ColorWriteMaskRed
			case 'g':
				m |= gputypes.ColorWriteMaskGreen
			case 'b':
				m |= gputypes.ColorWriteMaskBlue
			case 'a':
				m |= gputypes.ColorWriteMaskAlpha
			default:
				return 0, fmt.Errorf("unknown color write mask %q", s)
			}
		}
		if m == 0 {
			return 0, fmt.Errorf("unknown color write mask %q", s)
		}
		return m, nil
	}
}

func parseBlend(s string) (softrast.BlendMode, error) {
	n := normalize(s)
	for _, m := range []softrast.BlendMode{softrast.BlendReplace, softrast.BlendAdd, softrast.BlendOver} {
		if m.String() == n {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown blend mode %q", s)
}

func parseInterp(s string) (softrast.Interp, error) {
	n := normalize(s)
	for _, i := range []softrast.Interp{softrast.InterpFlat, softrast.InterpSmooth, softrast.InterpCorrect} {
		if i.String() == n {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown interpolation %q", s)
}

func parseColor(s string) (softrast.Spectrum, error) {
	return softrast.ParseHex(s)
}

// Options translates the draw's state names into pipeline options.
func (d *Draw) Options() ([]softrast.Option, error) {
	var opts []softrast.Option

	topology := d.Topology
	if topology == "" {
		if m, ok := meshes[d.Mesh]; ok {
			opts = append(opts, softrast.WithTopology(m.topology))
		}
	} else {
		t, err := parseTopology(topology)
		if err != nil {
			return nil, err
		}
		opts = append(opts, softrast.WithTopology(t))
	}

	if d.Depth != "" {
		f, err := parseCompare(d.Depth)
		if err != nil {
			return nil, err
		}
		opts = append(opts, softrast.WithDepth(f))
	}
	if d.DepthWrite != nil {
		opts = append(opts, softrast.WithDepthWrite(*d.DepthWrite))
	}
	if d.ColorWrite != "" {
		m, err := parseColorWrite(d.ColorWrite)
		if err != nil {
			return nil, err
		}
		opts = append(opts, softrast.WithColorWrite(m))
	}
	if d.Blend != "" {
		m, err := parseBlend(d.Blend)
		if err != nil {
			return nil, err
		}
		opts = append(opts, softrast.WithBlend(m))
	}
	if d.Interp != "" {
		i, err := parseInterp(d.Interp)
		if err != nil {
			return nil, err
		}
		opts = append(opts, softrast.WithInterp(i))
	}
	if len(d.Viewport) == 4 {
		v := d.Viewport
		opts = append(opts, softrast.WithViewport(v[0], v[1], v[2], v[3]))
	}
	return opts, nil
}
