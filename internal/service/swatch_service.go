// Package service provides business logic for the colormap server.
package service

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/customcolour/colormaps/internal/cache"
	"github.com/customcolour/colormaps/internal/palettestore"
	"github.com/customcolour/colormaps/internal/render"
	"github.com/customcolour/colormaps/pkg/colormap"
)

// ErrReadOnly is returned when a request tries to overwrite or delete a
// built-in colormap.
var ErrReadOnly = errors.New("built-in colormaps are read-only")

// ErrInvalidOptions is wrapped around errors caused by unusable
// transform parameters, so handlers can classify them as client errors.
var ErrInvalidOptions = errors.New("invalid transform options")

// errStoreDisabled is returned for save/delete when no store is configured.
var errStoreDisabled = errors.New("palette store is not configured")

// SwatchServiceConfig contains swatch service configuration.
type SwatchServiceConfig struct {
	Registry *colormap.Registry
	Store    *palettestore.Store // optional
	Cache    *cache.Manager
	Renderer *render.SwatchRenderer
}

// SwatchService resolves colormaps, applies transforms and serves
// rendered swatches and LUT exports.
type SwatchService struct {
	registry *colormap.Registry
	store    *palettestore.Store
	cache    *cache.Manager
	renderer *render.SwatchRenderer
}

// NewSwatchService creates a new swatch service.
func NewSwatchService(cfg SwatchServiceConfig) *SwatchService {
	return &SwatchService{
		registry: cfg.Registry,
		store:    cfg.Store,
		cache:    cfg.Cache,
		renderer: cfg.Renderer,
	}
}

// TransformOptions describe a transform chain applied to a base map.
// The zero value applies no transform.
type TransformOptions struct {
	// Transforms are applied in order: "reverse", "gray", "invert".
	Transforms []string

	// Blend names a color blended into the map: "white", "black", or a
	// hex color.
	Blend string

	// Loc is where the blend color goes: "start", "mid", "end", or a
	// fraction in [0, 1]. Empty means start.
	Loc string

	// NBlend and NColor override the blend defaults (28 and 256).
	NBlend int
	NColor int
}

// IsZero reports whether the options request no transformation.
func (o TransformOptions) IsZero() bool {
	return len(o.Transforms) == 0 && o.Blend == ""
}

// cacheParams flattens the options into cache key parameters.
func (o TransformOptions) cacheParams() map[string]string {
	if o.IsZero() {
		return nil
	}
	return map[string]string{
		"transform": strings.Join(o.Transforms, ","),
		"blend":     o.Blend,
		"loc":       o.Loc,
		"nblend":    strconv.Itoa(o.NBlend),
		"ncolor":    strconv.Itoa(o.NColor),
	}
}

// Lookup resolves a colormap name against the registry, falling back to
// the palette store for saved maps.
func (s *SwatchService) Lookup(name string) (*colormap.Map, error) {
	if m, err := s.registry.Get(name); err == nil {
		return m, nil
	}
	if s.store != nil {
		return s.store.Get(name)
	}
	return nil, &colormap.NotFoundError{Name: name}
}

// Derive resolves a colormap and applies the requested transform chain.
func (s *SwatchService) Derive(name string, opts TransformOptions) (*colormap.Map, error) {
	m, err := s.Lookup(name)
	if err != nil {
		return nil, err
	}

	for _, tr := range opts.Transforms {
		switch tr {
		case "reverse":
			m = colormap.Reverse(m)
		case "gray", "grayscale":
			m = colormap.Grayscale(m, opts.NColor)
		case "invert":
			m = colormap.Invert(m)
		default:
			return nil, fmt.Errorf("%w: unknown transform %q", ErrInvalidOptions, tr)
		}
	}

	if opts.Blend != "" {
		loc, err := parseLoc(opts.Loc)
		if err != nil {
			return nil, err
		}
		blendOpts := colormap.BlendOptions{
			NBlend: opts.NBlend,
			NColor: opts.NColor,
			Loc:    loc,
		}
		switch opts.Blend {
		case "white":
			m, err = colormap.AddWhite(m, blendOpts)
		case "black":
			m, err = colormap.AddBlack(m, blendOpts)
		default:
			var c colormap.RGBA
			c, err = colormap.ParseHex(opts.Blend)
			if err == nil {
				m, err = colormap.AddColor(m, c, blendOpts)
			}
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidOptions, err)
		}
	}

	return m, nil
}

// Swatch returns the PNG swatch for a (possibly transformed) colormap,
// rendering through the cache.
func (s *SwatchService) Swatch(name string, opts TransformOptions) ([]byte, error) {
	key := cache.SwatchKey(name, opts.cacheParams())
	if data, ok := s.cache.GetSwatch(key); ok {
		return data, nil
	}

	m, err := s.Derive(name, opts)
	if err != nil {
		return nil, err
	}

	data, err := s.renderer.RenderSwatch(m)
	if err != nil {
		return nil, err
	}

	// A full cache is not a rendering failure.
	_ = s.cache.SetSwatch(key, data)
	return data, nil
}

// LUT returns a gzip-compressed CSV lookup table for the colormap,
// resampled to n entries (256 when n <= 0). Columns are t,r,g,b,a with
// channels in [0, 1].
func (s *SwatchService) LUT(name string, n int) ([]byte, error) {
	if n <= 0 {
		n = 256
	}
	if n > 4096 {
		n = 4096
	}

	key := cache.LUTKey(name, n)
	if data, ok := s.cache.GetLUT(key); ok {
		return data, nil
	}

	m, err := s.Lookup(name)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	cw := csv.NewWriter(gz)

	if err := cw.Write([]string{"t", "r", "g", "b", "a"}); err != nil {
		return nil, err
	}
	for _, stop := range m.Resample(n).Stops() {
		rec := []string{
			formatChannel(stop.Pos),
			formatChannel(stop.Color.R),
			formatChannel(stop.Color.G),
			formatChannel(stop.Color.B),
			formatChannel(stop.Color.A),
		}
		if err := cw.Write(rec); err != nil {
			return nil, err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, err
	}
	if err := gz.Close(); err != nil {
		return nil, err
	}

	data := buf.Bytes()
	s.cache.SetLUT(key, data)
	return data, nil
}

// ListEntry describes one available colormap.
type ListEntry struct {
	Name    string `json:"name"`
	Builtin bool   `json:"builtin"`
}

// List returns all available colormaps: registry maps first, then saved
// ones from the store.
func (s *SwatchService) List() ([]ListEntry, error) {
	entries := make([]ListEntry, 0, s.registry.Len())
	for _, name := range s.registry.Names() {
		entries = append(entries, ListEntry{Name: name, Builtin: true})
	}

	if s.store != nil {
		saved, err := s.store.List()
		if err != nil {
			return nil, err
		}
		for _, m := range saved {
			entries = append(entries, ListEntry{Name: m.Name()})
		}
	}

	return entries, nil
}

// Save persists a colormap in the store. Names colliding with registry
// maps are rejected with ErrReadOnly.
func (s *SwatchService) Save(m *colormap.Map) error {
	if s.registry.Has(m.Name()) {
		return ErrReadOnly
	}
	if s.store == nil {
		return errStoreDisabled
	}
	return s.store.Save(m)
}

// Delete removes a saved colormap. Registry maps cannot be deleted.
func (s *SwatchService) Delete(name string) error {
	if s.registry.Has(name) {
		return ErrReadOnly
	}
	if s.store == nil {
		return errStoreDisabled
	}
	return s.store.Delete(name)
}

func parseLoc(s string) (colormap.Loc, error) {
	switch s {
	case "", "start":
		return colormap.LocStart, nil
	case "mid":
		return colormap.LocMid, nil
	case "end":
		return colormap.LocEnd, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 || v > 1 {
		return 0, fmt.Errorf("%w: blend location %q", ErrInvalidOptions, s)
	}
	return colormap.Loc(v), nil
}

func formatChannel(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
