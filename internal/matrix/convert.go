package matrix

import (
	"log/slog"
	"path/filepath"
	"strings"

	"filescape/internal/logging"
	"filescape/internal/scan"
)

// Kind identifies the conversion policy selected for a file. The set is
// closed: every path resolves to exactly one kind, and each kind owns its own
// conversion and fallback behaviour.
type Kind int

const (
	// KindGeneric synthesizes a matrix purely from file metadata.
	KindGeneric Kind = iota
	// KindImage decodes the file as a grayscale intensity field.
	KindImage
	// KindTabular parses the file as whitespace-delimited numeric rows.
	KindTabular
)

// String returns the policy name for logging and CLI summaries.
func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindTabular:
		return "tabular"
	default:
		return "generic"
	}
}

var imageExtensions = map[string]struct{}{
	".jpg": {}, ".jpeg": {}, ".png": {}, ".bmp": {}, ".tif": {}, ".tiff": {},
}

var tabularExtensions = map[string]struct{}{
	".txt": {}, ".csv": {}, ".dat": {},
}

// KindForPath resolves the conversion policy from the file extension.
func KindForPath(path string) Kind {
	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := imageExtensions[ext]; ok {
		return KindImage
	}
	if _, ok := tabularExtensions[ext]; ok {
		return KindTabular
	}
	return KindGeneric
}

// Converter turns file records into matrices. Conversion is total: every
// failure path degrades to a deterministic fallback matrix, because the
// animation has no concept of skipping a file.
type Converter struct {
	logger *slog.Logger
}

// NewConverter constructs a Converter. A nil logger disables diagnostics.
func NewConverter(logger *slog.Logger) *Converter {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Converter{logger: logging.WithComponent(logger, "converter")}
}

// Convert maps one file record to a matrix using the policy for its extension.
func (c *Converter) Convert(record scan.FileRecord) Matrix {
	switch KindForPath(record.Path) {
	case KindImage:
		m, err := imageMatrix(record.Path)
		if err != nil {
			c.logger.Warn("image decode failed, using fallback", logging.FieldPath, record.Path, "error", err.Error())
			return Zero(10, 10)
		}
		return m
	case KindTabular:
		m, err := tabularMatrix(record.Path)
		if err != nil {
			c.logger.Warn("numeric parse failed, using metadata fallback", logging.FieldPath, record.Path, "error", err.Error())
			return metadataFallback(record)
		}
		return m
	default:
		return syntheticMatrix(record)
	}
}

// ConvertAll converts every record in order.
func (c *Converter) ConvertAll(records []scan.FileRecord) []Matrix {
	matrices := make([]Matrix, 0, len(records))
	for _, record := range records {
		matrices = append(matrices, c.Convert(record))
	}
	return matrices
}

// metadataFallback derives a fixed-shape 2x2 matrix from file metadata when a
// tabular parse fails.
func metadataFallback(record scan.FileRecord) Matrix {
	size := record.Size
	mtime := record.ModifiedAt.Unix()
	return New(2, 2, []float64{
		float64(size % 100), float64(mtime % 100),
		float64(mtime % 50), float64(size % 50),
	})
}

// syntheticMatrix builds a matrix purely from file metadata for files with no
// decodable content policy.
func syntheticMatrix(record scan.FileRecord) Matrix {
	size := record.Size
	mtime := record.ModifiedAt.Unix()

	rows := clampInt(int(size/1000), 5, 50)
	cols := clampInt(int(mtime%100), 5, 50)

	values := make([]float64, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			values[i*cols+j] = float64((int64(i)*int64(j) + size + mtime) % 255)
		}
	}
	return New(rows, cols, values)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
