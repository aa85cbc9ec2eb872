package timeline

import (
	"errors"
	"fmt"
	"math"
)

// windowSpan is the maximum number of matrices visible in a single frame.
const windowSpan = 6

// ErrNoMatrices is returned when a plan is requested for an empty sequence.
var ErrNoMatrices = errors.New("no matrices to schedule")

// ErrDegenerateTimeline is returned when duration and fps produce no frames.
var ErrDegenerateTimeline = errors.New("timeline produces zero frames")

// Timeline is the pacing triple governing the animation.
type Timeline struct {
	DurationSeconds float64
	FPS             int
	FrameCount      int
}

// Window is the contiguous slice of the matrix sequence visible in one frame,
// with a per-member blend weight. Alpha[0] belongs to Start; the ramp rises
// toward the most recent member, so older surfaces fade out behind newer ones.
type Window struct {
	Start int
	End   int
	Alpha []float64
}

// Len returns the number of sequence members in the window.
func (w Window) Len() int { return w.End - w.Start }

// Plan maps a fixed duration and frame rate onto the matrix sequence. Frames
// traverse the sequence exactly once regardless of the fps/duration pairing.
type Plan struct {
	Timeline
	matrixCount int
}

// NewPlan validates the timeline and builds a frame plan.
func NewPlan(matrixCount int, durationSeconds float64, fps int) (*Plan, error) {
	if matrixCount < 1 {
		return nil, ErrNoMatrices
	}
	if fps < 1 {
		return nil, fmt.Errorf("%w: fps %d", ErrDegenerateTimeline, fps)
	}
	frameCount := int(math.Round(durationSeconds * float64(fps)))
	if frameCount < 1 {
		return nil, fmt.Errorf("%w: duration %.3fs at %d fps", ErrDegenerateTimeline, durationSeconds, fps)
	}
	return &Plan{
		Timeline:    Timeline{DurationSeconds: durationSeconds, FPS: fps, FrameCount: frameCount},
		matrixCount: matrixCount,
	}, nil
}

// WindowFor computes the visible slice and alpha ramp for frame f.
func (p *Plan) WindowFor(f int) Window {
	target := int(float64(f) / float64(p.FrameCount) * float64(p.matrixCount))
	if target > p.matrixCount-1 {
		target = p.matrixCount - 1
	}

	span := windowSpan
	if p.matrixCount < span {
		span = p.matrixCount
	}
	start := target - (span - 1)
	if start < 0 {
		start = 0
	}
	end := start + span
	if end > p.matrixCount {
		end = p.matrixCount
	}

	alpha := make([]float64, end-start)
	for i := range alpha {
		alpha[i] = 0.2 + 0.8*float64(i)/float64(end-start)
	}
	return Window{Start: start, End: end, Alpha: alpha}
}

// AzimuthFor returns the camera azimuth in degrees for frame f. Two degrees
// per frame yields a continuous rotation locked to frame advance.
func (p *Plan) AzimuthFor(f int) float64 {
	return float64((f * 2) % 360)
}
