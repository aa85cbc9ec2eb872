package render

import "image/color"

// viridisStops approximates the viridis colormap with evenly spaced control
// points; intermediate values are linearly interpolated.
var viridisStops = []color.RGBA{
	{R: 0x44, G: 0x01, B: 0x54, A: 0xff},
	{R: 0x46, G: 0x30, B: 0x7e, A: 0xff},
	{R: 0x3b, G: 0x52, B: 0x8b, A: 0xff},
	{R: 0x2c, G: 0x71, B: 0x8e, A: 0xff},
	{R: 0x21, G: 0x91, B: 0x8c, A: 0xff},
	{R: 0x28, G: 0xae, B: 0x80, A: 0xff},
	{R: 0x5e, G: 0xc9, B: 0x62, A: 0xff},
	{R: 0xad, G: 0xdc, B: 0x30, A: 0xff},
	{R: 0xfd, G: 0xe7, B: 0x25, A: 0xff},
}

// heightColor maps a normalized height in [0,1] onto the palette.
func heightColor(t float64) color.RGBA {
	if t <= 0 {
		return viridisStops[0]
	}
	if t >= 1 {
		return viridisStops[len(viridisStops)-1]
	}
	scaled := t * float64(len(viridisStops)-1)
	idx := int(scaled)
	frac := scaled - float64(idx)
	lo, hi := viridisStops[idx], viridisStops[idx+1]
	return color.RGBA{
		R: uint8(float64(lo.R) + frac*(float64(hi.R)-float64(lo.R))),
		G: uint8(float64(lo.G) + frac*(float64(hi.G)-float64(lo.G))),
		B: uint8(float64(lo.B) + frac*(float64(hi.B)-float64(lo.B))),
		A: 0xff,
	}
}
