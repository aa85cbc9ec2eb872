package render

import (
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"filescape/internal/matrix"
	"filescape/internal/timeline"
)

func rampMatrix(rows, cols int) matrix.Matrix {
	values := make([]float64, rows*cols)
	for i := range values {
		values[i] = float64(i % 97)
	}
	return matrix.New(rows, cols, values)
}

func TestComposeFrameDrawsOntoClearedCanvas(t *testing.T) {
	sequence := []matrix.Matrix{rampMatrix(20, 20), rampMatrix(10, 30)}
	compositor, err := NewCompositor(320, 240, sequence, 30)
	if err != nil {
		t.Fatalf("NewCompositor: %v", err)
	}

	window := timeline.Window{Start: 0, End: 2, Alpha: []float64{0.2, 0.6}}
	img := compositor.ComposeFrame(window, 45)

	if img.Bounds().Dx() != 320 || img.Bounds().Dy() != 240 {
		t.Fatalf("unexpected frame geometry: %v", img.Bounds())
	}

	background := NewCanvas(320, 240)
	background.Clear()
	changed := 0
	for i := range img.Pix {
		if img.Pix[i] != background.Image().Pix[i] {
			changed++
		}
	}
	if changed == 0 {
		t.Fatal("expected surfaces to change pixels against the background")
	}
}

func TestComposeFrameIsDeterministic(t *testing.T) {
	sequence := []matrix.Matrix{rampMatrix(15, 15)}
	compositor, err := NewCompositor(160, 120, sequence, 30)
	if err != nil {
		t.Fatalf("NewCompositor: %v", err)
	}
	window := timeline.Window{Start: 0, End: 1, Alpha: []float64{1.0}}

	first := append([]uint8(nil), compositor.ComposeFrame(window, 90).Pix...)
	second := compositor.ComposeFrame(window, 90).Pix
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("frames differ at byte %d", i)
		}
	}
}

func TestComposeFrameVariesWithAzimuth(t *testing.T) {
	sequence := []matrix.Matrix{rampMatrix(25, 12)}
	compositor, err := NewCompositor(160, 120, sequence, 30)
	if err != nil {
		t.Fatalf("NewCompositor: %v", err)
	}
	window := timeline.Window{Start: 0, End: 1, Alpha: []float64{1.0}}

	a := append([]uint8(nil), compositor.ComposeFrame(window, 0).Pix...)
	b := compositor.ComposeFrame(window, 90).Pix
	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("expected rotation to change the rendered frame")
	}
}

func TestNewCompositorRejectsEmptySequence(t *testing.T) {
	if _, err := NewCompositor(100, 100, nil, 30); err == nil {
		t.Fatal("expected error for empty sequence")
	}
}

func TestHeightColorBoundsAndMonotoneBrightness(t *testing.T) {
	low := heightColor(-1)
	if low != viridisStops[0] {
		t.Fatalf("expected clamp at low end, got %v", low)
	}
	high := heightColor(2)
	if high != viridisStops[len(viridisStops)-1] {
		t.Fatalf("expected clamp at high end, got %v", high)
	}

	prev := -1.0
	for t10 := 0; t10 <= 10; t10++ {
		c := heightColor(float64(t10) / 10)
		brightness := 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
		if brightness <= prev {
			t.Fatalf("expected brightness to rise along the palette at %d/10", t10)
		}
		prev = brightness
	}
}

func TestWriteFrameProducesDecodableJPEG(t *testing.T) {
	dir := t.TempDir()
	sequence := []matrix.Matrix{rampMatrix(8, 8)}
	compositor, err := NewCompositor(96, 64, sequence, 30)
	if err != nil {
		t.Fatalf("NewCompositor: %v", err)
	}
	img := compositor.ComposeFrame(timeline.Window{Start: 0, End: 1, Alpha: []float64{1}}, 10)

	if err := WriteFrame(dir, 0, img); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}

	file, err := os.Open(filepath.Join(dir, "frame000001.jpg"))
	if err != nil {
		t.Fatalf("expected frame file: %v", err)
	}
	defer file.Close()
	decoded, err := jpeg.Decode(file)
	if err != nil {
		t.Fatalf("decode frame: %v", err)
	}
	if decoded.Bounds().Dx() != 96 || decoded.Bounds().Dy() != 64 {
		t.Fatalf("unexpected decoded geometry: %v", decoded.Bounds())
	}
}
