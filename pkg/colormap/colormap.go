// Package colormap provides named colormaps and color transformations
// for visualization.
//
// Colors are specified by red-green-blue-alpha (RGBA) values from 0 to 1,
// so color transformations can be written as plain channel arithmetic.
// A Map interpolates linearly between ordered color stops. At clamps its
// argument to [0, 1]; Eval rejects out-of-range input instead.
package colormap

import (
	"fmt"
	"image/color"
	"math"
	"sort"
	"strconv"
	"strings"
)

// RGBA is a color with float64 channels in [0, 1]. It implements
// image/color.Color, so evaluated colors can be passed directly to
// drawing and plotting calls.
type RGBA struct {
	R, G, B, A float64
}

// RGBA implements color.Color. Channels are alpha-premultiplied and
// scaled to 16 bits.
func (c RGBA) RGBA() (r, g, b, a uint32) {
	ca := clamp01(c.A)
	r = uint32(clamp01(c.R)*ca*0xffff + 0.5)
	g = uint32(clamp01(c.G)*ca*0xffff + 0.5)
	b = uint32(clamp01(c.B)*ca*0xffff + 0.5)
	a = uint32(ca*0xffff + 0.5)
	return r, g, b, a
}

// RGBA8 returns the color as an 8-bit color.RGBA.
func (c RGBA) RGBA8() color.RGBA {
	ca := clamp01(c.A)
	return color.RGBA{
		R: uint8(clamp01(c.R)*ca*255 + 0.5),
		G: uint8(clamp01(c.G)*ca*255 + 0.5),
		B: uint8(clamp01(c.B)*ca*255 + 0.5),
		A: uint8(ca*255 + 0.5),
	}
}

// RGB8 builds an opaque RGBA from 8-bit channel values.
func RGB8(r, g, b uint8) RGBA {
	return RGBA{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
		A: 1,
	}
}

// ParseHex parses a hex color of the form "#rrggbb" or "#rrggbbaa"
// (the leading '#' is optional).
func ParseHex(s string) (RGBA, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 && len(h) != 8 {
		return RGBA{}, fmt.Errorf("colormap: invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 64)
	if err != nil {
		return RGBA{}, fmt.Errorf("colormap: invalid hex color %q", s)
	}
	c := RGBA{A: 1}
	if len(h) == 8 {
		c.A = float64(v&0xff) / 255
		v >>= 8
	}
	c.B = float64(v&0xff) / 255
	c.G = float64(v>>8&0xff) / 255
	c.R = float64(v>>16&0xff) / 255
	return c, nil
}

// Stop is an anchor point in a colormap's domain with an explicit color.
type Stop struct {
	Pos   float64 `yaml:"pos" json:"pos"`
	Color RGBA    `yaml:"color" json:"color"`
}

// Map is a named, immutable colormap defined by an ordered list of
// color stops. Stop positions are strictly increasing from 0 to 1.
type Map struct {
	name  string
	stops []Stop
}

// New validates the stop list and returns a new Map. The stops must
// start at position 0, end at position 1, be strictly increasing, and
// have all channels within [0, 1]. Violations return *InvalidMapError.
func New(name string, stops []Stop) (*Map, error) {
	if name == "" {
		return nil, &InvalidMapError{Name: name, Reason: "empty name"}
	}
	if len(stops) < 2 {
		return nil, &InvalidMapError{Name: name, Reason: "fewer than two stops"}
	}
	if stops[0].Pos != 0 {
		return nil, &InvalidMapError{Name: name, Reason: "first stop position is not 0"}
	}
	if stops[len(stops)-1].Pos != 1 {
		return nil, &InvalidMapError{Name: name, Reason: "last stop position is not 1"}
	}
	for i, s := range stops {
		if i > 0 && s.Pos <= stops[i-1].Pos {
			return nil, &InvalidMapError{
				Name:   name,
				Reason: fmt.Sprintf("stop positions not strictly increasing at index %d", i),
			}
		}
		for _, v := range []float64{s.Color.R, s.Color.G, s.Color.B, s.Color.A} {
			if math.IsNaN(v) || v < 0 || v > 1 {
				return nil, &InvalidMapError{
					Name:   name,
					Reason: fmt.Sprintf("channel out of range at index %d", i),
				}
			}
		}
	}
	cp := make([]Stop, len(stops))
	copy(cp, stops)
	return &Map{name: name, stops: cp}, nil
}

// Name returns the colormap name.
func (m *Map) Name() string {
	return m.name
}

// Stops returns a copy of the stop list.
func (m *Map) Stops() []Stop {
	cp := make([]Stop, len(m.stops))
	copy(cp, m.stops)
	return cp
}

// Renamed returns a copy of the map under a new name.
func (m *Map) Renamed(name string) *Map {
	return &Map{name: name, stops: m.stops}
}

// At returns the color at position t by linear interpolation between
// the two bracketing stops. Positions that coincide with a stop return
// that stop's color exactly. Out-of-range t (including NaN) clamps to
// the nearest endpoint.
func (m *Map) At(t float64) RGBA {
	if t <= 0 || math.IsNaN(t) {
		return m.stops[0].Color
	}
	if t >= 1 {
		return m.stops[len(m.stops)-1].Color
	}
	i := sort.Search(len(m.stops), func(i int) bool { return m.stops[i].Pos >= t })
	if m.stops[i].Pos == t {
		return m.stops[i].Color
	}
	lo, hi := m.stops[i-1], m.stops[i]
	frac := (t - lo.Pos) / (hi.Pos - lo.Pos)
	return lerp(lo.Color, hi.Color, frac)
}

// Eval is like At but returns *OutOfRangeError when t is outside [0, 1]
// or NaN, for callers that must not clamp silently.
func (m *Map) Eval(t float64) (RGBA, error) {
	if math.IsNaN(t) || t < 0 || t > 1 {
		return RGBA{}, &OutOfRangeError{T: t}
	}
	return m.At(t), nil
}

// Resample returns a copy of the map rebuilt from n evenly spaced
// samples, the discrete lookup-table form of the map. n below 2 is
// treated as 2.
func (m *Map) Resample(n int) *Map {
	return fromColors(m.name, m.samples(n))
}

// samples evaluates the map at n evenly spaced positions over [0, 1].
func (m *Map) samples(n int) []RGBA {
	if n < 2 {
		n = 2
	}
	out := make([]RGBA, n)
	for i := range out {
		out[i] = m.At(float64(i) / float64(n-1))
	}
	return out
}

// fromColors builds a map with evenly spaced stops from a color list.
// The caller guarantees at least two colors with in-range channels.
func fromColors(name string, colors []RGBA) *Map {
	stops := make([]Stop, len(colors))
	for i, c := range colors {
		stops[i] = Stop{
			Pos:   float64(i) / float64(len(colors)-1),
			Color: c,
		}
	}
	return &Map{name: name, stops: stops}
}

func lerp(c1, c2 RGBA, t float64) RGBA {
	return RGBA{
		R: c1.R + t*(c2.R-c1.R),
		G: c1.G + t*(c2.G-c1.G),
		B: c1.B + t*(c2.B-c1.B),
		A: c1.A + t*(c2.A-c1.A),
	}
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
