// Package vertex defines the values that flow between pipeline stages.
//
// The root softrast package re-exports these types with aliases; they live
// here so that the clip and raster packages can use them without an import
// cycle.
package vertex

import "github.com/go-gl/mathgl/mgl32"

const (
	// MaxAttributes is the number of attribute slots carried by every vertex
	// and fragment.
	MaxAttributes = 8

	// MaxDerivatives is the number of leading attributes for which screen
	// space derivatives can be computed.
	MaxDerivatives = 4
)

// Attributes is a fixed-size attribute tuple. Programs declare how many
// slots they use; the rest are carried along as zeros.
type Attributes [MaxAttributes]float32

// Derivatives holds (d/dx, d/dy) of the leading attributes, in framebuffer
// pixels.
type Derivatives [MaxDerivatives]mgl32.Vec2

// Lerp returns a + (b-a)*t for every slot.
func (a Attributes) Lerp(b Attributes, t float32) Attributes {
	var out Attributes
	for i := range out {
		out[i] = (b[i]-a[i])*t + a[i]
	}
	return out
}

// Shaded is the output of vertex shading: a clip-space position and the
// attributes handed on to the rasterizer.
type Shaded struct {
	ClipPosition mgl32.Vec4
	Attributes   Attributes
}

// Lerp interpolates position and attributes between a and b.
func (a Shaded) Lerp(b Shaded, t float32) Shaded {
	return Shaded{
		ClipPosition: b.ClipPosition.Sub(a.ClipPosition).Mul(t).Add(a.ClipPosition),
		Attributes:   a.Attributes.Lerp(b.Attributes, t),
	}
}

// Clipped is a vertex after clipping and perspective divide.
type Clipped struct {
	// FBPosition is in framebuffer space: x in [0,width], y in [0,height],
	// z in [0,1].
	FBPosition mgl32.Vec3
	// InvW is 1/w of the clip-space position.
	InvW float32
	// Attributes are not divided by w.
	Attributes Attributes
}

// Fragment is a candidate sample produced by rasterization.
type Fragment struct {
	// FBPosition is the pixel center (x+0.5, y+0.5) and the interpolated
	// depth.
	FBPosition  mgl32.Vec3
	Attributes  Attributes
	Derivatives Derivatives
}
