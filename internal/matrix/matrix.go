package matrix

// Matrix is an immutable 2D numeric field derived from one file. Both
// dimensions are always at least 1.
type Matrix struct {
	rows   int
	cols   int
	values []float64
}

// New builds a matrix from a row-major value slice. Callers must supply
// rows*cols values; New panics otherwise, since every producer in this
// package controls its own allocation.
func New(rows, cols int, values []float64) Matrix {
	if rows < 1 || cols < 1 {
		panic("matrix: dimensions must be at least 1")
	}
	if len(values) != rows*cols {
		panic("matrix: value count does not match dimensions")
	}
	return Matrix{rows: rows, cols: cols, values: values}
}

// Zero returns a rows×cols matrix of zeros.
func Zero(rows, cols int) Matrix {
	return New(rows, cols, make([]float64, rows*cols))
}

// Rows returns the number of rows.
func (m Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m Matrix) Cols() int { return m.cols }

// At returns the value at row i, column j.
func (m Matrix) At(i, j int) float64 {
	return m.values[i*m.cols+j]
}

// Max returns the largest value in the matrix.
func (m Matrix) Max() float64 {
	max := m.values[0]
	for _, v := range m.values[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

// Min returns the smallest value in the matrix.
func (m Matrix) Min() float64 {
	min := m.values[0]
	for _, v := range m.values[1:] {
		if v < min {
			min = v
		}
	}
	return min
}

// Extent describes the shared axis limits of a matrix sequence: the largest
// row count, column count, and cell value across all members. The compositor
// fixes its axes to one Extent so frame-to-frame scale does not jitter.
type Extent struct {
	MaxRows  int
	MaxCols  int
	MaxValue float64
}

// SequenceExtent computes the common Extent across the provided matrices.
func SequenceExtent(matrices []Matrix) Extent {
	var extent Extent
	for _, m := range matrices {
		if m.Rows() > extent.MaxRows {
			extent.MaxRows = m.Rows()
		}
		if m.Cols() > extent.MaxCols {
			extent.MaxCols = m.Cols()
		}
		if v := m.Max(); v > extent.MaxValue {
			extent.MaxValue = v
		}
	}
	return extent
}
