package softrast

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
)

// passProgram reads attributes (x, y, z, w, r, g, b, a) as clip position and
// color with opacity.
type passProgram struct{}

func (passProgram) Layout() Layout { return Layout{Attributes: MaxAttributes, Derivatives: 2} }

func (passProgram) ShadeVertex(_ struct{}, in Attributes) (mgl32.Vec4, Attributes) {
	return mgl32.Vec4{in[0], in[1], in[2], in[3]}, in
}

func (passProgram) ShadeFragment(_ struct{}, a Attributes, _ Derivatives) (Spectrum, float32) {
	return RGB(a[4], a[5], a[6]), a[7]
}

// recordingProgram logs the first attribute of every shaded vertex.
type recordingProgram struct{}

func (recordingProgram) Layout() Layout { return Layout{Attributes: 1} }

func (recordingProgram) ShadeVertex(log *[]float32, in Attributes) (mgl32.Vec4, Attributes) {
	*log = append(*log, in[0])
	return mgl32.Vec4{0, 0, 0, 1}, in
}

func (recordingProgram) ShadeFragment(*[]float32, Attributes, Derivatives) (Spectrum, float32) {
	return White, 1
}

func vtx(x, y, z float32, c Spectrum, alpha float32) Vertex {
	return Vertex{Attributes{x, y, z, 1, c.R, c.G, c.B, alpha}}
}

// quad returns two triangles covering clip space at depth z.
func quad(z float32, c Spectrum, alpha float32) []Vertex {
	return []Vertex{
		vtx(-1, -1, z, c, alpha), vtx(1, -1, z, c, alpha), vtx(1, 1, z, c, alpha),
		vtx(-1, -1, z, c, alpha), vtx(1, 1, z, c, alpha), vtx(-1, 1, z, c, alpha),
	}
}

// clipZ returns the clip-space z that maps to framebuffer depth d.
func clipZ(d float32) float32 { return 2*d - 1 }

func mustTarget(t *testing.T, w, h int) *Target {
	t.Helper()
	fb, err := NewTarget(w, h)
	if err != nil {
		t.Fatalf("NewTarget(%d, %d): %v", w, h, err)
	}
	fb.Clear(Black, 1)
	return fb
}

func mustPipeline(t *testing.T, opts ...Option) *Pipeline[struct{}] {
	t.Helper()
	pl, err := New[struct{}](passProgram{}, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return pl
}

// renderPastViewport draws a full-screen quad through a viewport twice the
// size of fb, so three quarters of the fragments miss the framebuffer.
func renderPastViewport(t *testing.T, fb *Target) Stats {
	t.Helper()
	w, h := float32(fb.Width()), float32(fb.Height())
	pl := mustPipeline(t, WithViewport(0, 0, 2*w, 2*h))
	return pl.Run(quad(0, White, 1), struct{}{}, fb)
}

func near(a, b, tol float32) bool {
	return mgl32.Abs(a-b) <= tol
}

func approxSpectrum(a, b Spectrum) bool {
	return near(a.R, b.R, 1e-5) &&
		near(a.G, b.G, 1e-5) &&
		near(a.B, b.B, 1e-5)
}

func eachPixel(fb *Target, fn func(x, y int)) {
	for y := 0; y < fb.Height(); y++ {
		for x := 0; x < fb.Width(); x++ {
			fn(x, y)
		}
	}
}

func TestRun_QuadCoversEveryPixelOnce(t *testing.T) {
	fb := mustTarget(t, 4, 4)

	st := mustPipeline(t, WithBlend(BlendAdd)).Run(quad(0, Gray(0.25), 1), struct{}{}, fb)

	if st.Fragments != 16 || st.Shaded != 16 {
		t.Errorf("stats = %+v, want 16 fragments shaded", st)
	}
	eachPixel(fb, func(x, y int) {
		if got := *fb.ColorAt(x, y); !approxSpectrum(got, Gray(0.25)) {
			t.Errorf("pixel (%d,%d) = %v, want single coverage", x, y, got)
		}
	})
}

func TestRun_DepthLessIdempotence(t *testing.T) {
	fb := mustTarget(t, 4, 4)
	pl := mustPipeline(t, WithDepth(gputypes.CompareFunctionLess))

	verts := append(quad(clipZ(0.3), Red, 1), quad(clipZ(0.7), Green, 1)...)
	st := pl.Run(verts, struct{}{}, fb)

	if st.DepthRejected != 16 {
		t.Errorf("DepthRejected = %d, want 16", st.DepthRejected)
	}
	eachPixel(fb, func(x, y int) {
		if got := *fb.DepthAt(x, y); !near(got, 0.3, 1e-6) {
			t.Errorf("depth (%d,%d) = %v, want 0.3", x, y, got)
		}
		if got := *fb.ColorAt(x, y); got != Red {
			t.Errorf("color (%d,%d) = %v, want red", x, y, got)
		}
	})
}

func TestRun_DepthFunctions(t *testing.T) {
	tests := []struct {
		name      string
		fn        gputypes.CompareFunction
		wantDrawn bool
	}{
		{"always", gputypes.CompareFunctionAlways, true},
		{"never", gputypes.CompareFunctionNever, false},
		{"less passes nearer", gputypes.CompareFunctionLess, true},
		{"greater fails nearer", gputypes.CompareFunctionGreater, false},
		{"not equal", gputypes.CompareFunctionNotEqual, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := mustTarget(t, 4, 4)
			fb.Clear(Blue, 0.5)

			st := mustPipeline(t, WithDepth(tt.fn)).Run(quad(clipZ(0.25), Red, 1), struct{}{}, fb)

			want, wantDepth := Blue, float32(0.5)
			if tt.wantDrawn {
				want, wantDepth = Red, 0.25
			}
			if got := *fb.ColorAt(1, 1); got != want {
				t.Errorf("color = %v, want %v", got, want)
			}
			if got := *fb.DepthAt(1, 1); !near(got, wantDepth, 1e-6) {
				t.Errorf("depth = %v, want %v", got, wantDepth)
			}
			if !tt.wantDrawn && st.Shaded != 0 {
				t.Errorf("Shaded = %d, want 0", st.Shaded)
			}
		})
	}
}

func TestRun_Blend(t *testing.T) {
	tests := []struct {
		name  string
		mode  BlendMode
		alpha float32
		want  Spectrum
	}{
		{"replace", BlendReplace, 0.5, Red},
		{"add", BlendAdd, 0.5, RGB(0.5, 0, 1)},
		{"over", BlendOver, 0.5, RGB(0.5, 0, 0.5)},
		{"over opaque", BlendOver, 1, Red},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := mustTarget(t, 4, 4)
			fb.Clear(Blue, 1)

			mustPipeline(t, WithBlend(tt.mode)).Run(quad(0, Red, tt.alpha), struct{}{}, fb)

			eachPixel(fb, func(x, y int) {
				if got := *fb.ColorAt(x, y); !approxSpectrum(got, tt.want) {
					t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, tt.want)
				}
			})
		})
	}
}

func TestRun_WriteMasks(t *testing.T) {
	t.Run("color write disabled keeps depth writes", func(t *testing.T) {
		fb := mustTarget(t, 4, 4)
		st := mustPipeline(t, WithColorWrite(gputypes.ColorWriteMaskNone)).
			Run(quad(clipZ(0.25), Red, 1), struct{}{}, fb)

		if got := *fb.ColorAt(2, 2); got != Black {
			t.Errorf("color = %v, want unchanged", got)
		}
		if got := *fb.DepthAt(2, 2); !near(got, 0.25, 1e-6) {
			t.Errorf("depth = %v, want 0.25", got)
		}
		if st.Shaded != 16 {
			t.Errorf("Shaded = %d, want 16", st.Shaded)
		}
	})

	t.Run("depth write disabled", func(t *testing.T) {
		fb := mustTarget(t, 4, 4)
		mustPipeline(t, WithDepthWrite(false)).Run(quad(clipZ(0.25), Red, 1), struct{}{}, fb)

		if got := *fb.DepthAt(2, 2); got != 1 {
			t.Errorf("depth = %v, want unchanged", got)
		}
		if got := *fb.ColorAt(2, 2); got != Red {
			t.Errorf("color = %v, want red", got)
		}
	})

	t.Run("green channel only", func(t *testing.T) {
		fb := mustTarget(t, 4, 4)
		fb.Clear(Blue, 1)
		mustPipeline(t, WithColorWrite(gputypes.ColorWriteMaskGreen)).Run(quad(0, White, 1), struct{}{}, fb)

		if got := *fb.ColorAt(0, 3); got != Cyan {
			t.Errorf("color = %v, want cyan", got)
		}
	})
}

func TestRun_OutOfRangeFragmentsSkipped(t *testing.T) {
	fb := mustTarget(t, 4, 4)

	st := renderPastViewport(t, fb)

	if st.Fragments != 64 {
		t.Errorf("Fragments = %d, want 64", st.Fragments)
	}
	if st.OutOfRange != 48 {
		t.Errorf("OutOfRange = %d, want 48", st.OutOfRange)
	}
	if st.Shaded != 16 {
		t.Errorf("Shaded = %d, want 16", st.Shaded)
	}
}

func TestRun_ClipsGeometryOutsideView(t *testing.T) {
	fb := mustTarget(t, 8, 8)
	verts := []Vertex{
		vtx(-3, -3, 0, Red, 1), vtx(3, -3, 0, Red, 1), vtx(0, 3, 0, Red, 1),
	}

	st := mustPipeline(t).Run(verts, struct{}{}, fb)

	if st.OutOfRange != 0 {
		t.Errorf("OutOfRange = %d, want 0", st.OutOfRange)
	}
	if st.Shaded != 64 {
		t.Errorf("Shaded = %d, want every pixel", st.Shaded)
	}
}

func TestRun_Lines(t *testing.T) {
	fb := mustTarget(t, 8, 8)
	pl := mustPipeline(t, WithTopology(gputypes.PrimitiveTopologyLineList))

	// Framebuffer (0.5, 2.5) to (6.5, 2.5).
	verts := []Vertex{vtx(-0.875, -0.375, 0, Green, 1), vtx(0.625, -0.375, 0, Red, 1)}
	st := pl.Run(verts, struct{}{}, fb)

	if st.Shaded != 6 {
		t.Fatalf("Shaded = %d, want 6", st.Shaded)
	}
	for x := 0; x < 6; x++ {
		if got := *fb.ColorAt(x, 2); got != Green {
			t.Errorf("pixel (%d,2) = %v, want first vertex color", x, got)
		}
	}
	if got := *fb.ColorAt(6, 2); got != Black {
		t.Errorf("end pixel = %v, want untouched", got)
	}
}

func TestRun_LinesOnFarClipPlanes(t *testing.T) {
	fb := mustTarget(t, 8, 8)
	pl := mustPipeline(t, WithTopology(gputypes.PrimitiveTopologyLineList))

	// x = w and y = w are inside the clip volume, but the diamond
	// tie-break places these lines in column 8 and row 8.
	verts := []Vertex{
		vtx(1, -1, 0, Red, 1), vtx(1, 1, 0, Red, 1),
		vtx(-1, 1, 0, Red, 1), vtx(1, 1, 0, Red, 1),
	}
	st := pl.Run(verts, struct{}{}, fb)

	if st.Fragments != 16 || st.OutOfRange != 16 || st.Shaded != 0 {
		t.Errorf("Fragments = %d, OutOfRange = %d, Shaded = %d; want 16, 16, 0",
			st.Fragments, st.OutOfRange, st.Shaded)
	}
	eachPixel(fb, func(x, y int) {
		if got := *fb.ColorAt(x, y); got != Black {
			t.Fatalf("pixel (%d,%d) = %v, want untouched", x, y, got)
		}
	})
}

func TestRun_InterpolationModes(t *testing.T) {
	// Right vertex is four times farther away than the others.
	verts := []Vertex{
		{Attributes{-1, -1, 0, 1, 0, 0, 0, 1}},
		{Attributes{4, -4, 0, 4, 1, 0, 0, 1}},
		{Attributes{-1, 1, 0, 1, 0, 0, 0, 1}},
	}

	render := func(mode Interp) Spectrum {
		fb := mustTarget(t, 8, 8)
		mustPipeline(t, WithInterp(mode)).Run(verts, struct{}{}, fb)
		return *fb.ColorAt(4, 2)
	}

	flat, smooth, correct := render(InterpFlat), render(InterpSmooth), render(InterpCorrect)

	if flat != Black {
		t.Errorf("flat = %v, want first vertex color", flat)
	}
	// Pixel (4, 2) has λ = 4.5/8 for the right vertex in screen space.
	if !near(smooth.R, 4.5/8, 1e-5) {
		t.Errorf("smooth red = %v, want %v", smooth.R, 4.5/8.0)
	}
	wantCorrect := float32((4.5 / 8 / 4) / ((1 - 4.5/8) + 4.5/8/4))
	if !near(correct.R, wantCorrect, 1e-5) {
		t.Errorf("correct red = %v, want %v", correct.R, wantCorrect)
	}
}

func TestRun_IgnoresTrailingVertices(t *testing.T) {
	pl, err := New[*[]float32](recordingProgram{})
	if err != nil {
		t.Fatal(err)
	}

	var log []float32
	verts := []Vertex{{Attributes{1}}, {Attributes{2}}, {Attributes{3}}, {Attributes{4}}, {Attributes{5}}}
	st := pl.Run(verts, &log, mustTarget(t, 2, 2))

	if st.Vertices != 3 || st.Primitives != 1 {
		t.Errorf("stats = %+v, want 3 vertices in 1 primitive", st)
	}
	want := []float32{1, 2, 3}
	if len(log) != len(want) {
		t.Fatalf("shaded %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("vertex %d shaded out of order: %v", i, log)
		}
	}
}

func TestRun_NilFramebufferPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	mustPipeline(t).Run(quad(0, Red, 1), struct{}{}, nil)
}

func TestRun_Empty(t *testing.T) {
	fb := mustTarget(t, 2, 2)
	if st := mustPipeline(t).Run(nil, struct{}{}, fb); st != (Stats{}) {
		t.Errorf("stats = %+v, want zero", st)
	}
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		want error
	}{
		{"point list", []Option{WithTopology(gputypes.PrimitiveTopologyPointList)}, ErrUnsupportedTopology},
		{"triangle strip", []Option{WithTopology(gputypes.PrimitiveTopologyTriangleStrip)}, ErrUnsupportedTopology},
		{"smooth lines", []Option{
			WithTopology(gputypes.PrimitiveTopologyLineList), WithInterp(InterpSmooth),
		}, ErrUnsupportedState},
		{"undefined depth", []Option{WithDepth(gputypes.CompareFunctionUndefined)}, ErrUnsupportedState},
		{"blend mode", []Option{WithBlend(BlendMode(9))}, ErrUnsupportedState},
		{"interp mode", []Option{WithInterp(Interp(9))}, ErrUnsupportedState},
		{"blend state", []Option{WithBlendState(gputypes.BlendStatePremultiplied())}, ErrUnsupportedState},
		{"multisample", []Option{WithMultisample(gputypes.MultisampleState{Count: 4})}, ErrMultisample},
		{"empty viewport", []Option{WithViewport(0, 0, 0, 4)}, ErrUnsupportedState},
		{"depth flags", []Option{WithFlags(FlagDepthMask)}, ErrUnsupportedState},
		{"blend flags", []Option{WithFlags(FlagBlendMask)}, ErrUnsupportedState},
		{"unknown flags", []Option{WithFlags(0x100)}, ErrUnsupportedState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New[struct{}](passProgram{}, tt.opts...)
			if !errors.Is(err, tt.want) {
				t.Errorf("New error = %v, want %v", err, tt.want)
			}
		})
	}
}

type layoutProgram struct {
	passProgram
	layout Layout
}

func (p layoutProgram) Layout() Layout { return p.layout }

func TestNew_Layout(t *testing.T) {
	tests := []struct {
		name    string
		layout  Layout
		wantErr bool
	}{
		{"empty", Layout{}, false},
		{"full", Layout{Attributes: MaxAttributes, Derivatives: MaxDerivatives}, false},
		{"too many attributes", Layout{Attributes: MaxAttributes + 1}, true},
		{"derivatives beyond attributes", Layout{Attributes: 1, Derivatives: 2}, true},
		{"too many derivatives", Layout{Attributes: MaxAttributes, Derivatives: MaxDerivatives + 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New[struct{}](layoutProgram{layout: tt.layout})
			if tt.wantErr != errors.Is(err, ErrLayout) {
				t.Errorf("New error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNew_NilProgram(t *testing.T) {
	if _, err := New[struct{}](nil); !errors.Is(err, ErrNilProgram) {
		t.Errorf("New(nil) error = %v, want ErrNilProgram", err)
	}
}
