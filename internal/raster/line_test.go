package raster

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/softrast/internal/vertex"
)

type pixel struct{ X, Y int }

func cv(x, y, z float32, attrs ...float32) vertex.Clipped {
	v := vertex.Clipped{FBPosition: mgl32.Vec3{x, y, z}, InvW: 1}
	copy(v.Attributes[:], attrs)
	return v
}

// near reports whether a and b differ by at most tol.
func near(a, b, tol float32) bool {
	return mgl32.Abs(a-b) <= tol
}

func linePixels(a, b vertex.Clipped) []pixel {
	var out []pixel
	Line(a, b, func(f vertex.Fragment) {
		out = append(out, pixel{int(f.FBPosition.X()), int(f.FBPosition.Y())})
	})
	return out
}

func TestLine_Pixels(t *testing.T) {
	tests := []struct {
		name string
		a, b vertex.Clipped
		want []pixel
	}{
		{
			name: "vertical up",
			a:    cv(2, 1, 0), b: cv(2, 4, 0),
			want: []pixel{{2, 1}, {2, 2}, {2, 3}},
		},
		{
			name: "vertical down",
			a:    cv(2, 4, 0), b: cv(2, 1, 0),
			want: []pixel{{2, 3}, {2, 2}, {2, 1}},
		},
		{
			name: "horizontal through centers",
			a:    cv(0.5, 1.5, 0), b: cv(4.5, 1.5, 0),
			want: []pixel{{0, 1}, {1, 1}, {2, 1}, {3, 1}},
		},
		{
			name: "horizontal on pixel boundary",
			a:    cv(0, 2, 0), b: cv(3, 2, 0),
			want: []pixel{{0, 2}, {1, 2}, {2, 2}},
		},
		{
			name: "diagonal",
			a:    cv(0, 0, 0), b: cv(3, 3, 0),
			want: []pixel{{0, 0}, {1, 1}, {2, 2}},
		},
		{
			// b is the bottom vertex of pixel (2,1), which the diamond
			// does not contain, so the segment still exits that pixel
			name: "ending on a bottom vertex",
			a:    cv(2.5, 3, 0), b: cv(2.5, 1, 0),
			want: []pixel{{2, 2}, {2, 1}},
		},
		{
			name: "inside one diamond",
			a:    cv(1.4, 1.5, 0), b: cv(1.6, 1.5, 0),
			want: nil,
		},
		{
			name: "leaving a diamond",
			a:    cv(1.5, 1.5, 0), b: cv(2.5, 1.5, 0),
			want: []pixel{{1, 1}},
		},
		{
			name: "zero length",
			a:    cv(1, 1, 0), b: cv(1, 1, 0),
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := linePixels(tt.a, tt.b)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Line pixels mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLine_ConnectedSegmentsShareNoPixel(t *testing.T) {
	pts := []vertex.Clipped{cv(0.5, 0.5, 0), cv(6.3, 2.1, 0), cv(12.2, 5.6, 0), cv(17.9, 7.3, 0)}

	seen := map[pixel]int{}
	for i := 0; i+1 < len(pts); i++ {
		for _, p := range linePixels(pts[i], pts[i+1]) {
			seen[p]++
		}
	}
	for p, n := range seen {
		if n > 1 {
			t.Errorf("pixel %v emitted %d times", p, n)
		}
	}
}

func TestLine_FragmentContents(t *testing.T) {
	var frags []vertex.Fragment
	Line(cv(0, 0.5, 0, 9, 8), cv(4, 0.5, 1, 1, 1), func(f vertex.Fragment) {
		frags = append(frags, f)
	})

	if len(frags) != 4 {
		t.Fatalf("expected 4 fragments, got %d", len(frags))
	}
	for i, f := range frags {
		wantZ := (float32(i) + 0.5) / 4
		if !near(f.FBPosition.Z(), wantZ, 1e-6) {
			t.Errorf("fragment %d depth = %v, want %v", i, f.FBPosition.Z(), wantZ)
		}
		if f.Attributes[0] != 9 || f.Attributes[1] != 8 {
			t.Errorf("fragment %d attributes = %v, want first endpoint's", i, f.Attributes)
		}
		if f.Derivatives != (vertex.Derivatives{}) {
			t.Errorf("fragment %d derivatives = %v, want zero", i, f.Derivatives)
		}
	}
}

func TestLine_NonFinite(t *testing.T) {
	nan := mgl32.NaN
	if got := linePixels(cv(nan, 0, 0), cv(4, 4, 0)); len(got) != 0 {
		t.Errorf("expected nothing, got %v", got)
	}
}

func TestLexSign(t *testing.T) {
	tests := []struct {
		v    [3]float64
		want int
	}{
		{[3]float64{1, -5, -5}, 1},
		{[3]float64{0, -1, 5}, -1},
		{[3]float64{0, 0, 2}, 1},
		{[3]float64{0, 0, 0}, 0},
	}
	for _, tt := range tests {
		if got := lexSign(tt.v[0], tt.v[1], tt.v[2]); got != tt.want {
			t.Errorf("lexSign(%v) = %d, want %d", tt.v, got, tt.want)
		}
	}
}
