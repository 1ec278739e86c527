package render

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/customcolour/colormaps/pkg/colormap"
)

func TestRenderSwatch(t *testing.T) {
	t.Parallel()

	r := NewSwatchRenderer(Config{Width: 64, Height: 8})

	data, err := r.RenderSwatch(colormap.Gray)
	if err != nil {
		t.Fatalf("RenderSwatch failed: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not valid PNG: %v", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() != 64 || bounds.Dy() != 8 {
		t.Fatalf("unexpected dimensions %dx%d", bounds.Dx(), bounds.Dy())
	}

	// Gray runs black to white left to right.
	lr, lg, lb, _ := img.At(0, 4).RGBA()
	if lr>>8 > 8 || lg>>8 > 8 || lb>>8 > 8 {
		t.Errorf("left edge not black: %d %d %d", lr>>8, lg>>8, lb>>8)
	}
	rr, rg, rb, _ := img.At(63, 4).RGBA()
	if rr>>8 < 247 || rg>>8 < 247 || rb>>8 < 247 {
		t.Errorf("right edge not white: %d %d %d", rr>>8, rg>>8, rb>>8)
	}
}

func TestDefaultSize(t *testing.T) {
	t.Parallel()

	r := NewSwatchRenderer(Config{})
	w, h := r.Size()
	if w != 512 || h != 32 {
		t.Fatalf("unexpected default size %dx%d", w, h)
	}
}
