package softrast

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/softrast/internal/vertex"
)

// Capacity of the fixed-size per-vertex tuples.
const (
	MaxAttributes  = vertex.MaxAttributes
	MaxDerivatives = vertex.MaxDerivatives
)

// Attributes is the value tuple carried by vertices and fragments. How many
// slots are meaningful is declared by the program's Layout.
type Attributes = vertex.Attributes

// Derivatives holds, per attribute, its partial derivatives with respect to
// framebuffer x and y.
type Derivatives = vertex.Derivatives

// ShadedVertex is the clip-space output of vertex shading.
type ShadedVertex = vertex.Shaded

// ClippedVertex is a vertex in framebuffer space after clipping and the
// perspective divide.
type ClippedVertex = vertex.Clipped

// Fragment is a candidate sample produced by rasterization.
type Fragment = vertex.Fragment

// Vertex is a pipeline input. It is owned by the caller and never modified.
type Vertex struct {
	Attributes
}

// ShadedFragment is a fragment after the program assigned its color.
type ShadedFragment struct {
	FBPosition mgl32.Vec3
	Color      Spectrum
	Opacity    float32
}

// Layout declares how much of the attribute tuples a program uses.
type Layout struct {
	// Attributes is the number of meaningful output attributes of
	// ShadeVertex.
	Attributes int
	// Derivatives is the number of leading attributes whose derivatives
	// ShadeFragment needs. It must not exceed Attributes.
	Derivatives int
}

// Program is a shading program with external parameters of type P.
//
// Both methods must be pure. ShadeVertex is called once per input vertex in
// input order; ShadeFragment once per fragment that passes the depth test.
type Program[P any] interface {
	Layout() Layout
	ShadeVertex(params P, in Attributes) (clip mgl32.Vec4, out Attributes)
	ShadeFragment(params P, attrs Attributes, derivs Derivatives) (color Spectrum, opacity float32)
}

// Stats reports what a single Run did.
type Stats struct {
	Vertices      int // input vertices shaded
	Primitives    int // whole primitives assembled
	ClippedVerts  int // vertices emitted by the clipper
	Fragments     int // fragments produced by rasterization
	OutOfRange    int // fragments outside the framebuffer, skipped
	DepthRejected int // fragments failing the depth test
	Shaded        int // fragments passed to ShadeFragment
}
