package colormap

import (
	"fmt"
	"math"
)

// Loc is the location of a blended color within a colormap's domain:
// 0 blends at the start, 1 at the end, and interior values blend the
// color in around that fraction of the map.
type Loc float64

// Standard blend locations.
const (
	LocStart Loc = 0
	LocMid   Loc = 0.5
	LocEnd   Loc = 1
)

// BlendOptions control how AddColor splices a color into a map.
// Zero values select the defaults.
type BlendOptions struct {
	// NBlend is the number of blend steps from the color to the map.
	// The default of 28 matches the linear rate of change of the
	// perceptually uniform maps (viridis, plasma).
	NBlend int

	// NColor is the total number of samples in the result. Defaults
	// to 256.
	NColor int

	// Loc is where the color is blended in. Defaults to LocStart.
	Loc Loc
}

// Lightness returns the perceived lightness of a color, from 0 (black)
// to 1 (white), computed as sqrt(w . rgb^2) with the RGB weights
// (0.299, 0.587, 0.114).
func Lightness(c RGBA) float64 {
	return math.Sqrt(0.299*c.R*c.R + 0.587*c.G*c.G + 0.114*c.B*c.B)
}

// Reverse returns the map with its stops traversed in the opposite
// direction, named with an "_r" suffix.
func Reverse(m *Map) *Map {
	n := len(m.stops)
	stops := make([]Stop, n)
	for i, s := range m.stops {
		stops[n-1-i] = Stop{Pos: 1 - s.Pos, Color: s.Color}
	}
	return &Map{name: m.name + "_r", stops: stops}
}

// Invert returns the map with each stop's RGB channels replaced by
// their complement (1 - value), named with an "i" prefix. Alpha is
// unchanged. Inversion commutes with linear interpolation, so the
// transform is exact at every position, not only at the stops.
func Invert(m *Map) *Map {
	stops := m.Stops()
	for i, s := range stops {
		stops[i].Color = RGBA{
			R: 1 - s.Color.R,
			G: 1 - s.Color.G,
			B: 1 - s.Color.B,
			A: s.Color.A,
		}
	}
	return &Map{name: "i" + m.name, stops: stops}
}

// Grayscale returns the map converted to grayscale, named with a "g"
// prefix. The map is resampled to ncolor entries and each entry's RGB
// channels are replaced by its Lightness. ncolor of 0 or below
// defaults to 256.
func Grayscale(m *Map, ncolor int) *Map {
	if ncolor <= 0 {
		ncolor = 256
	}
	samples := m.samples(ncolor)
	for i, c := range samples {
		l := Lightness(c)
		samples[i] = RGBA{R: l, G: l, B: l, A: c.A}
	}
	return fromColors("g"+m.name, samples)
}

// Blend returns n colors ramping linearly from c1 to c2, inclusive of
// both endpoints. n below 2 is treated as 2.
func Blend(c1, c2 RGBA, n int) []RGBA {
	if n < 2 {
		n = 2
	}
	out := make([]RGBA, n)
	for i := range out {
		out[i] = lerp(c1, c2, float64(i)/float64(n-1))
	}
	return out
}

// AddColor blends a color into the map at the location given by opts,
// returning a new map named with an "a" prefix. The map is resampled
// to NColor-NBlend entries and a NBlend-step ramp to the color is
// spliced in at the start, end, or around an interior location.
func AddColor(m *Map, c RGBA, opts BlendOptions) (*Map, error) {
	nblend := opts.NBlend
	if nblend <= 0 {
		nblend = 28
	}
	ncolor := opts.NColor
	if ncolor <= 0 {
		ncolor = 256
	}
	if ncolor <= nblend+1 {
		return nil, fmt.Errorf("colormap: ncolor %d too small for nblend %d", ncolor, nblend)
	}
	loc := float64(opts.Loc)
	if math.IsNaN(loc) || loc < 0 || loc > 1 {
		return nil, fmt.Errorf("colormap: blend location %v out of range [0, 1]", loc)
	}

	norig := ncolor - nblend
	samples := m.samples(norig)

	var list []RGBA
	switch loc {
	case 0:
		list = append(Blend(c, samples[0], nblend), samples...)
	case 1:
		list = append(samples, Blend(samples[norig-1], c, nblend)...)
	default:
		nmid := int(math.Round(float64(norig) * loc))
		if nmid < 1 {
			nmid = 1
		}
		if nmid > norig-1 {
			nmid = norig - 1
		}
		nfwd := (nblend + 1) / 2
		nbak := nfwd + (nblend+1)%2

		start := samples[:nmid]
		end := samples[nmid:]
		mid1 := Blend(start[len(start)-1], c, nbak)
		mid2 := Blend(c, end[0], nfwd)[1:]

		list = make([]RGBA, 0, ncolor)
		list = append(list, start...)
		list = append(list, mid1...)
		list = append(list, mid2...)
		list = append(list, end...)
	}

	return fromColors("a"+m.name, list), nil
}

// AddWhite blends white into the map, named with a "w" prefix.
func AddWhite(m *Map, opts BlendOptions) (*Map, error) {
	nm, err := AddColor(m, RGBA{1, 1, 1, 1}, opts)
	if err != nil {
		return nil, err
	}
	return nm.Renamed("w" + m.name), nil
}

// AddBlack blends black into the map, named with a "b" prefix.
func AddBlack(m *Map, opts BlendOptions) (*Map, error) {
	nm, err := AddColor(m, RGBA{0, 0, 0, 1}, opts)
	if err != nil {
		return nil, err
	}
	return nm.Renamed("b" + m.name), nil
}
