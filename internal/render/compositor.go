package render

import (
	"fmt"
	"image"

	"filescape/internal/matrix"
	"filescape/internal/timeline"
)

// Compositor renders animation frames by overlaying the windowed slice of the
// matrix sequence as fading height-field surfaces. It owns the canvas and is
// not safe for concurrent use; frames are composed strictly one at a time.
type Compositor struct {
	canvas    *Canvas
	sequence  []matrix.Matrix
	extent    matrix.Extent
	elevation float64
}

// NewCompositor fixes the axis limits from the full sequence so frame-to-frame
// scale does not jitter, and allocates the shared canvas.
func NewCompositor(width, height int, sequence []matrix.Matrix, elevation float64) (*Compositor, error) {
	if len(sequence) == 0 {
		return nil, fmt.Errorf("compositor requires at least one matrix")
	}
	return &Compositor{
		canvas:    NewCanvas(width, height),
		sequence:  sequence,
		extent:    matrix.SequenceExtent(sequence),
		elevation: elevation,
	}, nil
}

// Extent returns the fixed axis limits shared by every frame.
func (c *Compositor) Extent() matrix.Extent { return c.extent }

// ComposeFrame clears the canvas and draws the window's members oldest first,
// each with its fade weight, viewed from the given azimuth. The returned
// image is valid until the next call.
func (c *Compositor) ComposeFrame(window timeline.Window, azimuthDeg float64) *image.RGBA {
	c.canvas.Clear()
	proj := newProjector(azimuthDeg, c.elevation, c.canvas.Width(), c.canvas.Height())
	for i := window.Start; i < window.End; i++ {
		drawSurface(c.canvas, c.sequence[i], c.extent, proj, window.Alpha[i-window.Start])
	}
	return c.canvas.Image()
}
