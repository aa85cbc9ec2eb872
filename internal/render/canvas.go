package render

import (
	"image"
	"image/color"
	"image/draw"
)

// Canvas is the shared drawing surface a compositor redraws once per frame.
// It has a single-writer contract: exactly one frame is composed at a time,
// and the pixel buffer is cleared before each one. It must not be handed to
// concurrent callers.
type Canvas struct {
	img        *image.RGBA
	background color.RGBA
}

// NewCanvas allocates a canvas of the given pixel geometry.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		img:        image.NewRGBA(image.Rect(0, 0, width, height)),
		background: color.RGBA{R: 0x10, G: 0x10, B: 0x18, A: 0xff},
	}
}

// Clear resets every pixel to the background color.
func (c *Canvas) Clear() {
	draw.Draw(c.img, c.img.Bounds(), &image.Uniform{c.background}, image.Point{}, draw.Src)
}

// Image exposes the current pixel buffer. The returned image is only valid
// until the next Clear.
func (c *Canvas) Image() *image.RGBA { return c.img }

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.img.Bounds().Dx() }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.img.Bounds().Dy() }

// blendPixel mixes src into the canvas at (x, y) with the given opacity.
func (c *Canvas) blendPixel(x, y int, src color.RGBA, alpha float64) {
	if x < 0 || y < 0 || x >= c.Width() || y >= c.Height() {
		return
	}
	dst := c.img.RGBAAt(x, y)
	blended := color.RGBA{
		R: uint8(float64(src.R)*alpha + float64(dst.R)*(1-alpha)),
		G: uint8(float64(src.G)*alpha + float64(dst.G)*(1-alpha)),
		B: uint8(float64(src.B)*alpha + float64(dst.B)*(1-alpha)),
		A: 0xff,
	}
	c.img.SetRGBA(x, y, blended)
}
