// Package render provides swatch rendering using fogleman/gg.
package render

import (
	"bytes"
	"image/color"
	"image/png"
	"sync"

	"github.com/fogleman/gg"

	"github.com/customcolour/colormaps/pkg/colormap"
)

// Config contains renderer configuration.
type Config struct {
	Width  int
	Height int
}

// SwatchRenderer renders horizontal gradient strips for colormaps.
type SwatchRenderer struct {
	config      Config
	contextPool sync.Pool
	bufferPool  sync.Pool
}

// NewSwatchRenderer creates a new swatch renderer.
func NewSwatchRenderer(cfg Config) *SwatchRenderer {
	if cfg.Width <= 0 {
		cfg.Width = 512
	}
	if cfg.Height <= 0 {
		cfg.Height = 32
	}

	return &SwatchRenderer{
		config: cfg,
		contextPool: sync.Pool{
			New: func() interface{} {
				return gg.NewContext(cfg.Width, cfg.Height)
			},
		},
		bufferPool: sync.Pool{
			New: func() interface{} {
				return bytes.NewBuffer(make([]byte, 0, 32*1024))
			},
		},
	}
}

// Size returns the swatch dimensions.
func (r *SwatchRenderer) Size() (w, h int) {
	return r.config.Width, r.config.Height
}

// RenderSwatch renders a colormap as a left-to-right gradient strip and
// returns the PNG-encoded image. Colors with alpha are composited over
// a white background, matching the preview style of plotting tools.
func (r *SwatchRenderer) RenderSwatch(m *colormap.Map) ([]byte, error) {
	dc := r.contextPool.Get().(*gg.Context)
	defer r.contextPool.Put(dc)

	dc.SetColor(color.White)
	dc.Clear()

	w := float64(r.config.Width)
	h := float64(r.config.Height)

	for x := 0; x < r.config.Width; x++ {
		t := float64(x) / (w - 1)
		dc.SetColor(m.At(t))
		dc.DrawRectangle(float64(x), 0, 1, h)
		dc.Fill()
	}

	return r.encodeContext(dc)
}

func (r *SwatchRenderer) encodeContext(dc *gg.Context) ([]byte, error) {
	buf := r.bufferPool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		r.bufferPool.Put(buf)
	}()

	// Use fast PNG encoder
	encoder := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := encoder.Encode(buf, dc.Image()); err != nil {
		return nil, err
	}

	// Copy buffer contents (buffer will be reused)
	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	return result, nil
}
