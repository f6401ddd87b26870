package program

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	_ "golang.org/x/image/bmp" // register decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // register decoder

	"github.com/gogpu/softrast"
)

// ErrEmptyTexture is returned when a texture is created from an empty image.
var ErrEmptyTexture = errors.New("program: empty texture image")

// Texture is an RGB image with a precomputed mipmap chain, sampled with
// bilinear filtering and repeat wrapping.
//
// Texture coordinate (0, 0) is the bottom-left corner of the image and
// (1, 1) the top-right corner.
type Texture struct {
	levels []*image.RGBA // level 0 = original size
}

// NewTexture creates a texture from img. Each further mipmap level is half
// the size of the previous one until the largest dimension reaches 1.
func NewTexture(img image.Image) (*Texture, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, ErrEmptyTexture
	}

	b := img.Bounds()
	base := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(base, base.Bounds(), img, b.Min, draw.Src)

	numLevels := 1 + int(math.Floor(math.Log2(float64(max(b.Dx(), b.Dy())))))
	t := &Texture{levels: make([]*image.RGBA, numLevels)}
	t.levels[0] = base
	for i := 1; i < numLevels; i++ {
		t.levels[i] = downsample(t.levels[i-1])
	}
	return t, nil
}

// LoadTexture decodes a PNG, JPEG, BMP or TIFF file into a texture.
func LoadTexture(path string) (tex *Texture, err error) {
	f, err := os.Open(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			tex, err = nil, cerr
		}
	}()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("program: decode texture %s: %w", path, err)
	}
	return NewTexture(img)
}

// Checkerboard creates a size×size texture of cells×cells alternating
// squares, starting with a in the bottom-left corner.
func Checkerboard(size, cells int, a, b softrast.Spectrum) *Texture {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	cell := max(1, size/max(1, cells))
	ca, cb := a.Color(), b.Color()
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			// bottom row of the image is v = 0
			row := (size - 1 - y) / cell
			if (x/cell+row)%2 == 0 {
				img.Set(x, y, ca)
			} else {
				img.Set(x, y, cb)
			}
		}
	}
	t, _ := NewTexture(img)
	return t
}

// downsample halves src with a bilinear filter.
func downsample(src *image.RGBA) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, max(1, b.Dx()/2), max(1, b.Dy()/2)))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

// NumLevels returns the number of mipmap levels.
func (t *Texture) NumLevels() int {
	return len(t.levels)
}

// Level returns mipmap level n, or nil if n is out of range.
func (t *Texture) Level(n int) image.Image {
	if n < 0 || n >= len(t.levels) {
		return nil
	}
	return t.levels[n]
}

// LevelFor returns the mipmap level for a footprint with the given screen
// space derivatives of (u, v): floor(log2(rho)) where rho is the longer of
// the two texel-space derivative vectors, clamped to the chain.
func (t *Texture) LevelFor(dudv [2]mgl32.Vec2) int {
	b := t.levels[0].Bounds()
	w, h := float32(b.Dx()), float32(b.Dy())
	// dudv[0] = (du/dx, du/dy), dudv[1] = (dv/dx, dv/dy)
	dx := mgl32.Vec2{dudv[0][0] * w, dudv[1][0] * h}.Len()
	dy := mgl32.Vec2{dudv[0][1] * w, dudv[1][1] * h}.Len()
	rho := max(dx, dy)
	if !(rho > 1) {
		return 0
	}
	level := int(math.Floor(math.Log2(float64(rho))))
	return min(level, len(t.levels)-1)
}

// Sample returns the bilinearly filtered color at uv from the level chosen
// by LevelFor.
func (t *Texture) Sample(uv mgl32.Vec2, dudv [2]mgl32.Vec2) softrast.Spectrum {
	return t.SampleLevel(uv, t.LevelFor(dudv))
}

// SampleLevel returns the bilinearly filtered color at uv from level n.
func (t *Texture) SampleLevel(uv mgl32.Vec2, n int) softrast.Spectrum {
	img := t.levels[min(max(n, 0), len(t.levels)-1)]
	w, h := img.Rect.Dx(), img.Rect.Dy()

	// texel centers sit at half-integer positions
	x := float64(uv[0])*float64(w) - 0.5
	y := (1-float64(uv[1]))*float64(h) - 0.5
	if math.IsNaN(x) || math.IsNaN(y) {
		return softrast.Black
	}
	x0, y0 := math.Floor(x), math.Floor(y)
	fx, fy := float32(x-x0), float32(y-y0)

	ix, iy := int(x0), int(y0)
	c00 := texel(img, ix, iy)
	c10 := texel(img, ix+1, iy)
	c01 := texel(img, ix, iy+1)
	c11 := texel(img, ix+1, iy+1)
	return c00.Lerp(c10, fx).Lerp(c01.Lerp(c11, fx), fy)
}

// texel reads a texel with repeat wrapping.
func texel(img *image.RGBA, x, y int) softrast.Spectrum {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	x = ((x % w) + w) % w
	y = ((y % h) + h) % h
	i := img.PixOffset(x, y)
	return softrast.RGB(
		float32(img.Pix[i+0])/255,
		float32(img.Pix[i+1])/255,
		float32(img.Pix[i+2])/255,
	)
}
