package softrast

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
)

// Framebuffer is the storage the pipeline renders into. Coordinates are in
// pixels with the origin at the bottom-left corner.
//
// DepthAt and ColorAt are only called with 0 <= x < Width() and
// 0 <= y < Height() and must return pointers valid for the duration of Run.
type Framebuffer interface {
	Width() int
	Height() int
	DepthAt(x, y int) *float32
	ColorAt(x, y int) *Spectrum
}

// Target is an in-memory Framebuffer with one color and one depth value per
// pixel.
type Target struct {
	width  int
	height int
	color  []Spectrum
	depth  []float32
}

// NewTarget creates a target with the given dimensions. Both must be
// positive and even.
func NewTarget(width, height int) (*Target, error) {
	if width <= 0 || height <= 0 || width%2 != 0 || height%2 != 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	n := width * height
	return &Target{
		width:  width,
		height: height,
		color:  make([]Spectrum, n),
		depth:  make([]float32, n),
	}, nil
}

// Width returns the width of the target.
func (t *Target) Width() int {
	return t.width
}

// Height returns the height of the target.
func (t *Target) Height() int {
	return t.height
}

// DepthAt returns the depth cell of pixel (x, y).
func (t *Target) DepthAt(x, y int) *float32 {
	return &t.depth[y*t.width+x]
}

// ColorAt returns the color cell of pixel (x, y).
func (t *Target) ColorAt(x, y int) *Spectrum {
	return &t.color[y*t.width+x]
}

// Clear sets every pixel to color c and depth d.
func (t *Target) Clear(c Spectrum, d float32) {
	for i := range t.color {
		t.color[i] = c
	}
	for i := range t.depth {
		t.depth[i] = d
	}
}

// ToImage converts the color buffer to an image.RGBA. Row 0 of the
// framebuffer becomes the bottom row of the image.
func (t *Target) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, t.width, t.height))
	for y := 0; y < t.height; y++ {
		row := (t.height - 1 - y) * t.width
		for x := 0; x < t.width; x++ {
			c := t.color[row+x]
			i := img.PixOffset(x, y)
			img.Pix[i+0] = to8(c.R)
			img.Pix[i+1] = to8(c.G)
			img.Pix[i+2] = to8(c.B)
			img.Pix[i+3] = 255
		}
	}
	return img
}

// DepthImage converts the depth buffer to a grayscale image, mapping depth
// 0 to black and 1 to white.
func (t *Target) DepthImage() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, t.width, t.height))
	for y := 0; y < t.height; y++ {
		row := (t.height - 1 - y) * t.width
		for x := 0; x < t.width; x++ {
			img.Pix[img.PixOffset(x, y)] = to8(t.depth[row+x])
		}
	}
	return img
}

// SavePNG saves the color buffer to a PNG file.
func (t *Target) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	return writePNG(f, t.ToImage())
}

// writePNG encodes img to w and closes w. A close error is reported when
// encoding succeeded, since it can mean buffered data never reached disk.
func writePNG(w io.WriteCloser, img image.Image) (err error) {
	defer func() {
		if cerr := w.Close(); err == nil {
			err = cerr
		}
	}()
	return png.Encode(w, img)
}

// At implements the image.Image interface, in image coordinates (y down).
func (t *Target) At(x, y int) color.Color {
	if x < 0 || x >= t.width || y < 0 || y >= t.height {
		return color.NRGBA{}
	}
	return t.color[(t.height-1-y)*t.width+x].Color()
}

// Bounds implements the image.Image interface.
func (t *Target) Bounds() image.Rectangle {
	return image.Rect(0, 0, t.width, t.height)
}

// ColorModel implements the image.Image interface.
func (t *Target) ColorModel() color.Model {
	return color.NRGBAModel
}
