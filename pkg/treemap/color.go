package treemap

import "image/color"

// Colormap is a continuous color scale built from evenly spaced stops.
type Colormap struct {
	Name  string
	stops []color.RGBA
}

// At returns the color at position t in [0,1], interpolating linearly
// between stops. Out-of-range values clamp to the ends.
func (c *Colormap) At(t float64) color.Color {
	if len(c.stops) == 0 {
		return color.Black
	}
	if t <= 0 {
		return c.stops[0]
	}
	if t >= 1 {
		return c.stops[len(c.stops)-1]
	}

	f := t * float64(len(c.stops)-1)
	i := int(f)
	frac := f - float64(i)
	a, b := c.stops[i], c.stops[i+1]

	lerp := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*frac)
	}
	return color.RGBA{
		R: lerp(a.R, b.R),
		G: lerp(a.G, b.G),
		B: lerp(a.B, b.B),
		A: 0xff,
	}
}

// Viridis is the default sequential colormap for numeric fills.
var Viridis = &Colormap{
	Name: "viridis",
	stops: []color.RGBA{
		{0x44, 0x01, 0x54, 0xff},
		{0x3b, 0x52, 0x8b, 0xff},
		{0x21, 0x91, 0x8c, 0xff},
		{0x5e, 0xc9, 0x62, 0xff},
		{0xfd, 0xe7, 0x25, 0xff},
	},
}

// Blues is a light-to-dark sequential colormap.
var Blues = &Colormap{
	Name: "blues",
	stops: []color.RGBA{
		{0xf7, 0xfb, 0xff, 0xff},
		{0xc6, 0xdb, 0xef, 0xff},
		{0x6b, 0xae, 0xd6, 0xff},
		{0x21, 0x71, 0xb5, 0xff},
		{0x08, 0x30, 0x6b, 0xff},
	},
}

// Normalizer maps raw fill values onto [0,1] with min/max normalization.
// A degenerate range maps everything to 0.
type Normalizer struct {
	Min, Max float64
}

// Norm returns the normalized position of v, clamped to [0,1].
func (n Normalizer) Norm(v float64) float64 {
	if n.Max <= n.Min {
		return 0
	}
	t := (v - n.Min) / (n.Max - n.Min)
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// defaultPalette is the categorical fill cycle (the familiar ten-color
// qualitative scheme).
var defaultPalette = []color.Color{
	color.RGBA{0x1f, 0x77, 0xb4, 0xff},
	color.RGBA{0xff, 0x7f, 0x0e, 0xff},
	color.RGBA{0x2c, 0xa0, 0x2c, 0xff},
	color.RGBA{0xd6, 0x27, 0x28, 0xff},
	color.RGBA{0x94, 0x67, 0xbd, 0xff},
	color.RGBA{0x8c, 0x56, 0x4b, 0xff},
	color.RGBA{0xe3, 0x77, 0xc2, 0xff},
	color.RGBA{0x7f, 0x7f, 0x7f, 0xff},
	color.RGBA{0xbc, 0xbd, 0x22, 0xff},
	color.RGBA{0x17, 0xbe, 0xcf, 0xff},
}

// categoryColors assigns palette colors to categories in first-appearance
// order, cycling when there are more categories than colors. The assignment
// is stable across calls for identical inputs.
func categoryColors(values []string, palette []color.Color) map[string]color.Color {
	if len(palette) == 0 {
		palette = defaultPalette
	}
	out := make(map[string]color.Color)
	next := 0
	for _, v := range values {
		if _, ok := out[v]; ok {
			continue
		}
		out[v] = palette[next%len(palette)]
		next++
	}
	return out
}
