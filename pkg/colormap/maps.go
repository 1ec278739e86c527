package colormap

// Built-in colormaps. The sequential maps use evenly spaced anchor
// colors sampled from the matplotlib reference maps.

// Viridis colormap (matplotlib viridis).
var Viridis = mustFromRGB8("viridis",
	[3]uint8{68, 1, 84},
	[3]uint8{72, 35, 116},
	[3]uint8{64, 67, 135},
	[3]uint8{52, 94, 141},
	[3]uint8{41, 120, 142},
	[3]uint8{32, 144, 140},
	[3]uint8{34, 167, 132},
	[3]uint8{68, 190, 112},
	[3]uint8{121, 209, 81},
	[3]uint8{189, 222, 38},
	[3]uint8{253, 231, 37},
)

// Plasma colormap.
var Plasma = mustFromRGB8("plasma",
	[3]uint8{13, 8, 135},
	[3]uint8{75, 3, 161},
	[3]uint8{125, 3, 168},
	[3]uint8{168, 34, 150},
	[3]uint8{203, 70, 121},
	[3]uint8{229, 107, 93},
	[3]uint8{248, 148, 65},
	[3]uint8{253, 195, 40},
	[3]uint8{240, 249, 33},
)

// Inferno colormap.
var Inferno = mustFromRGB8("inferno",
	[3]uint8{0, 0, 4},
	[3]uint8{40, 11, 84},
	[3]uint8{101, 21, 110},
	[3]uint8{159, 42, 99},
	[3]uint8{212, 72, 66},
	[3]uint8{245, 125, 21},
	[3]uint8{250, 193, 39},
	[3]uint8{252, 255, 164},
)

// Magma colormap.
var Magma = mustFromRGB8("magma",
	[3]uint8{0, 0, 4},
	[3]uint8{28, 16, 68},
	[3]uint8{79, 18, 123},
	[3]uint8{129, 37, 129},
	[3]uint8{181, 54, 122},
	[3]uint8{229, 80, 100},
	[3]uint8{251, 135, 97},
	[3]uint8{254, 194, 135},
	[3]uint8{252, 253, 191},
)

// Jet colormap (the classic blue-cyan-yellow-red map).
var Jet = must(New("jet", []Stop{
	{Pos: 0, Color: RGB8(0, 0, 128)},
	{Pos: 0.125, Color: RGB8(0, 0, 255)},
	{Pos: 0.375, Color: RGB8(0, 255, 255)},
	{Pos: 0.625, Color: RGB8(255, 255, 0)},
	{Pos: 0.875, Color: RGB8(255, 0, 0)},
	{Pos: 1, Color: RGB8(128, 0, 0)},
}))

// Gray colormap, black to white.
var Gray = must(New("gray", []Stop{
	{Pos: 0, Color: RGBA{0, 0, 0, 1}},
	{Pos: 1, Color: RGBA{1, 1, 1, 1}},
}))

// Wiridis is reversed viridis blended with white at the start, so low
// values fade to the background instead of saturating it.
var Wiridis = mustAddWhite(Reverse(Viridis), BlendOptions{}).Renamed("wiridis")

func mustFromRGB8(name string, colors ...[3]uint8) *Map {
	cs := make([]RGBA, len(colors))
	for i, c := range colors {
		cs[i] = RGB8(c[0], c[1], c[2])
	}
	return fromColors(name, cs)
}

func must(m *Map, err error) *Map {
	if err != nil {
		panic(err)
	}
	return m
}

func mustAddWhite(m *Map, opts BlendOptions) *Map {
	return must(AddWhite(m, opts))
}
