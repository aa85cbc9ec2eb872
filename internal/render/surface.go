package render

import (
	"math"
	"sort"

	"filescape/internal/matrix"
)

// surfaceStride caps the number of cells drawn per axis. Matrices above this
// resolution are sampled rather than drawn cell by cell.
const surfaceStride = 64

type projector struct {
	sinAz, cosAz float64
	sinEl, cosEl float64
	scale        float64
	centerX      float64
	centerY      float64
}

func newProjector(azimuthDeg, elevationDeg float64, width, height int) projector {
	az := azimuthDeg * math.Pi / 180
	el := elevationDeg * math.Pi / 180
	smaller := float64(height)
	if width < height {
		smaller = float64(width)
	}
	return projector{
		sinAz:   math.Sin(az),
		cosAz:   math.Cos(az),
		sinEl:   math.Sin(el),
		cosEl:   math.Cos(el),
		scale:   smaller * 0.38,
		centerX: float64(width) / 2,
		centerY: float64(height) * 0.55,
	}
}

// project maps a point in the normalized data cube (x, y in [-0.5, 0.5],
// z in [0, 0.6]) to screen coordinates plus a depth used for paint ordering.
func (p projector) project(x, y, z float64) (float64, float64, float64) {
	xr := x*p.cosAz - y*p.sinAz
	yr := x*p.sinAz + y*p.cosAz
	screenX := p.centerX + xr*p.scale
	screenY := p.centerY + (yr*p.sinEl-z*p.cosEl)*p.scale
	depth := yr*p.cosEl + z*p.sinEl
	return screenX, screenY, depth
}

type quad struct {
	xs    [4]float64
	ys    [4]float64
	depth float64
	t     float64
}

// drawSurface rasterizes one matrix as a height field on the canvas. Cells
// are painted back to front so nearer geometry occludes farther geometry.
func drawSurface(canvas *Canvas, m matrix.Matrix, extent matrix.Extent, proj projector, alpha float64) {
	rowStep := stepFor(m.Rows())
	colStep := stepFor(m.Cols())

	// Axis limits come from the whole sequence so scale stays fixed
	// between frames.
	spanRows := float64(extent.MaxRows)
	spanCols := float64(extent.MaxCols)
	spanValue := extent.MaxValue
	if spanValue <= 0 {
		spanValue = 1
	}

	quads := make([]quad, 0, ((m.Rows()/rowStep)+1)*((m.Cols()/colStep)+1))
	for i := 0; i < m.Rows()-1; i += rowStep {
		iNext := i + rowStep
		if iNext > m.Rows()-1 {
			iNext = m.Rows() - 1
		}
		for j := 0; j < m.Cols()-1; j += colStep {
			jNext := j + colStep
			if jNext > m.Cols()-1 {
				jNext = m.Cols() - 1
			}

			corners := [4][2]int{{i, j}, {iNext, j}, {iNext, jNext}, {i, jNext}}
			var q quad
			sum := 0.0
			depth := 0.0
			for c, corner := range corners {
				value := m.At(corner[0], corner[1])
				x := float64(corner[0])/spanRows - 0.5
				y := float64(corner[1])/spanCols - 0.5
				z := value / spanValue * 0.6
				sx, sy, d := proj.project(x, y, z)
				q.xs[c] = sx
				q.ys[c] = sy
				depth += d
				sum += value
			}
			q.depth = depth / 4
			q.t = sum / 4 / spanValue
			quads = append(quads, q)
		}
	}

	sort.Slice(quads, func(a, b int) bool { return quads[a].depth < quads[b].depth })
	for _, q := range quads {
		fillQuad(canvas, q, alpha)
	}
}

func stepFor(n int) int {
	step := (n + surfaceStride - 1) / surfaceStride
	if step < 1 {
		step = 1
	}
	return step
}

// fillQuad scan-fills the projected cell, blending its palette color at the
// given opacity.
func fillQuad(canvas *Canvas, q quad, alpha float64) {
	col := heightColor(q.t)

	minX, maxX := q.xs[0], q.xs[0]
	minY, maxY := q.ys[0], q.ys[0]
	for c := 1; c < 4; c++ {
		minX = math.Min(minX, q.xs[c])
		maxX = math.Max(maxX, q.xs[c])
		minY = math.Min(minY, q.ys[c])
		maxY = math.Max(maxY, q.ys[c])
	}

	for y := int(math.Floor(minY)); y <= int(math.Ceil(maxY)); y++ {
		for x := int(math.Floor(minX)); x <= int(math.Ceil(maxX)); x++ {
			px := float64(x) + 0.5
			py := float64(y) + 0.5
			if pointInQuad(px, py, q) {
				canvas.blendPixel(x, y, col, alpha)
			}
		}
	}
}

func pointInQuad(px, py float64, q quad) bool {
	return pointInTriangle(px, py, q.xs[0], q.ys[0], q.xs[1], q.ys[1], q.xs[2], q.ys[2]) ||
		pointInTriangle(px, py, q.xs[0], q.ys[0], q.xs[2], q.ys[2], q.xs[3], q.ys[3])
}

func pointInTriangle(px, py, ax, ay, bx, by, cx, cy float64) bool {
	d1 := sign(px, py, ax, ay, bx, by)
	d2 := sign(px, py, bx, by, cx, cy)
	d3 := sign(px, py, cx, cy, ax, ay)
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

func sign(px, py, ax, ay, bx, by float64) float64 {
	return (px-bx)*(ay-by) - (ax-bx)*(py-by)
}
