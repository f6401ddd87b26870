package softrast

import (
	"bytes"
	"errors"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestNewTarget_InvalidSize(t *testing.T) {
	sizes := []struct{ w, h int }{{0, 4}, {4, 0}, {-2, 4}, {3, 4}, {4, 5}}
	for _, s := range sizes {
		if _, err := NewTarget(s.w, s.h); !errors.Is(err, ErrInvalidSize) {
			t.Errorf("NewTarget(%d, %d) error = %v, want ErrInvalidSize", s.w, s.h, err)
		}
	}
}

func TestTarget_Clear(t *testing.T) {
	fb := mustTarget(t, 4, 2)
	fb.Clear(Yellow, 0.5)

	eachPixel(fb, func(x, y int) {
		if *fb.ColorAt(x, y) != Yellow || *fb.DepthAt(x, y) != 0.5 {
			t.Fatalf("pixel (%d,%d) not cleared", x, y)
		}
	})
}

func TestTarget_ToImageFlipsRows(t *testing.T) {
	fb := mustTarget(t, 2, 2)
	*fb.ColorAt(0, 0) = Red
	*fb.ColorAt(1, 1) = Green

	img := fb.ToImage()

	if got := img.RGBAAt(0, 1); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("bottom-left = %v, want red", got)
	}
	if got := img.RGBAAt(1, 0); got != (color.RGBA{0, 255, 0, 255}) {
		t.Errorf("top-right = %v, want green", got)
	}
	if got := fb.At(0, 1); got != Red.Color() {
		t.Errorf("At(0, 1) = %v, want red", got)
	}
	if got := fb.At(5, 5); got != (color.NRGBA{}) {
		t.Errorf("At outside = %v, want transparent", got)
	}
}

func TestTarget_DepthImage(t *testing.T) {
	fb := mustTarget(t, 2, 2)
	fb.Clear(Black, 0)
	*fb.DepthAt(0, 0) = 1

	img := fb.DepthImage()
	if got := img.GrayAt(0, 1).Y; got != 255 {
		t.Errorf("depth 1 = %d, want 255", got)
	}
	if got := img.GrayAt(0, 0).Y; got != 0 {
		t.Errorf("depth 0 = %d, want 0", got)
	}
}

func TestTarget_SavePNG(t *testing.T) {
	fb := mustTarget(t, 4, 4)
	fb.Clear(Magenta, 1)

	path := filepath.Join(t.TempDir(), "out.png")
	if err := fb.SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 4 {
		t.Errorf("bounds = %v", b)
	}
	r, g, b, _ := img.At(2, 2).RGBA()
	if r != 0xffff || g != 0 || b != 0xffff {
		t.Errorf("pixel = %d %d %d, want magenta", r, g, b)
	}
}

// closeWriter is an io.WriteCloser whose Close fails with err.
type closeWriter struct {
	bytes.Buffer
	err    error
	closed bool
}

func (w *closeWriter) Close() error {
	w.closed = true
	return w.err
}

func TestWritePNG_CloseError(t *testing.T) {
	fb := mustTarget(t, 2, 2)
	errClose := errors.New("disk full")

	w := &closeWriter{err: errClose}
	if err := writePNG(w, fb.ToImage()); !errors.Is(err, errClose) {
		t.Errorf("writePNG error = %v, want the close error", err)
	}
	if !w.closed {
		t.Error("writer was not closed")
	}

	w = &closeWriter{}
	if err := writePNG(w, fb.ToImage()); err != nil {
		t.Fatalf("writePNG: %v", err)
	}
	if _, err := png.Decode(&w.Buffer); err != nil {
		t.Errorf("decode: %v", err)
	}
}

func TestTarget_SavePNG_BadPath(t *testing.T) {
	fb := mustTarget(t, 2, 2)
	if err := fb.SavePNG(filepath.Join(t.TempDir(), "missing", "out.png")); err == nil {
		t.Error("SavePNG into a missing directory succeeded")
	}
}
