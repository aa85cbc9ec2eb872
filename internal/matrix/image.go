package matrix

import (
	"fmt"
	"image"
	"math"
	"os"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// maxImageAxis bounds the matrix derived from an image. Larger images are
// downscaled so their longer side equals this value.
const maxImageAxis = 100

func imageMatrix(path string) (Matrix, error) {
	file, err := os.Open(path)
	if err != nil {
		return Matrix{}, fmt.Errorf("open image: %w", err)
	}
	defer file.Close()

	decoded, _, err := image.Decode(file)
	if err != nil {
		return Matrix{}, fmt.Errorf("decode image: %w", err)
	}

	bounds := decoded.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width < 1 || height < 1 {
		return Matrix{}, fmt.Errorf("degenerate image %dx%d", width, height)
	}

	if width > maxImageAxis || height > maxImageAxis {
		scale := float64(maxImageAxis) / float64(maxInt(width, height))
		newWidth := maxInt(1, int(math.Round(float64(width)*scale)))
		newHeight := maxInt(1, int(math.Round(float64(height)*scale)))
		scaled := image.NewGray(image.Rect(0, 0, newWidth, newHeight))
		draw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), decoded, bounds, draw.Src, nil)
		return grayToMatrix(scaled), nil
	}

	gray := image.NewGray(image.Rect(0, 0, width, height))
	draw.Draw(gray, gray.Bounds(), decoded, bounds.Min, draw.Src)
	return grayToMatrix(gray), nil
}

// grayToMatrix maps pixel rows to matrix rows, matching the orientation of a
// raster scanned top to bottom.
func grayToMatrix(img *image.Gray) Matrix {
	bounds := img.Bounds()
	rows, cols := bounds.Dy(), bounds.Dx()
	values := make([]float64, rows*cols)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			values[y*cols+x] = float64(img.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y)
		}
	}
	return New(rows, cols, values)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
