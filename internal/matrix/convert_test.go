package matrix

import (
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"filescape/internal/scan"
)

func record(t *testing.T, dir, name, contents string) scan.FileRecord {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat %s: %v", name, err)
	}
	return scan.FileRecord{Path: path, Size: info.Size(), ModifiedAt: info.ModTime()}
}

func writePNG(t *testing.T, dir, name string, width, height int) scan.FileRecord {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Pix[y*img.Stride+x] = uint8((x + y) % 256)
		}
	}
	path := filepath.Join(dir, name)
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", name, err)
	}
	if err := png.Encode(file, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	if err := file.Close(); err != nil {
		t.Fatalf("close png: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat png: %v", err)
	}
	return scan.FileRecord{Path: path, Size: info.Size(), ModifiedAt: info.ModTime()}
}

func TestKindForPath(t *testing.T) {
	cases := map[string]Kind{
		"photo.JPG":     KindImage,
		"scan.tiff":     KindImage,
		"data.csv":      KindTabular,
		"notes.txt":     KindTabular,
		"readings.dat":  KindTabular,
		"archive.tar":   KindGeneric,
		"no_extension":  KindGeneric,
		"weird.jpg.bak": KindGeneric,
	}
	for path, want := range cases {
		if got := KindForPath(path); got != want {
			t.Fatalf("KindForPath(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestConvertTabular(t *testing.T) {
	dir := t.TempDir()
	converter := NewConverter(nil)

	m := converter.Convert(record(t, dir, "grid.txt", "1 2 3\n4 5 6\n"))
	if m.Rows() != 2 || m.Cols() != 3 {
		t.Fatalf("unexpected shape: %dx%d", m.Rows(), m.Cols())
	}
	if m.At(1, 2) != 6 {
		t.Fatalf("unexpected value: %v", m.At(1, 2))
	}
}

func TestConvertTabularFallsBackToMetadata(t *testing.T) {
	dir := t.TempDir()
	converter := NewConverter(nil)

	rec := record(t, dir, "corrupt.csv", "this is not, numeric data\nat all")
	m := converter.Convert(rec)
	if m.Rows() != 2 || m.Cols() != 2 {
		t.Fatalf("expected 2x2 fallback, got %dx%d", m.Rows(), m.Cols())
	}
	mtime := rec.ModifiedAt.Unix()
	want := [4]float64{
		float64(rec.Size % 100), float64(mtime % 100),
		float64(mtime % 50), float64(rec.Size % 50),
	}
	got := [4]float64{m.At(0, 0), m.At(0, 1), m.At(1, 0), m.At(1, 1)}
	if got != want {
		t.Fatalf("fallback values = %v, want %v", got, want)
	}
}

func TestConvertImageSmallKeepsDimensions(t *testing.T) {
	dir := t.TempDir()
	converter := NewConverter(nil)

	m := converter.Convert(writePNG(t, dir, "small.png", 40, 25))
	if m.Rows() != 25 || m.Cols() != 40 {
		t.Fatalf("unexpected shape: %dx%d", m.Rows(), m.Cols())
	}
	if m.Max() > 255 || m.Min() < 0 {
		t.Fatalf("intensities out of range: [%v, %v]", m.Min(), m.Max())
	}
}

func TestConvertImageDownscalesPreservingAspect(t *testing.T) {
	dir := t.TempDir()
	converter := NewConverter(nil)

	m := converter.Convert(writePNG(t, dir, "large.png", 400, 200))
	if m.Cols() != 100 {
		t.Fatalf("expected larger axis scaled to 100, got %d", m.Cols())
	}
	if math.Abs(float64(m.Rows())-50) > 1 {
		t.Fatalf("expected aspect preserved within 1 unit, got %d rows", m.Rows())
	}
}

func TestConvertImageDecodeFailureFallsBack(t *testing.T) {
	dir := t.TempDir()
	converter := NewConverter(nil)

	m := converter.Convert(record(t, dir, "broken.png", "definitely not a png"))
	if m.Rows() != 10 || m.Cols() != 10 {
		t.Fatalf("expected 10x10 fallback, got %dx%d", m.Rows(), m.Cols())
	}
	if m.Max() != 0 {
		t.Fatalf("expected zero matrix, got max %v", m.Max())
	}
}

func TestConvertGenericShapeAndDeterminism(t *testing.T) {
	rec := scan.FileRecord{
		Path:       "/tmp/blob.bin",
		Size:       12345,
		ModifiedAt: time.Unix(1700000042, 0),
	}
	converter := NewConverter(nil)

	m := converter.Convert(rec)
	wantRows := clampInt(int(rec.Size/1000), 5, 50)
	wantCols := clampInt(int(rec.ModifiedAt.Unix()%100), 5, 50)
	if m.Rows() != wantRows || m.Cols() != wantCols {
		t.Fatalf("unexpected shape: %dx%d, want %dx%d", m.Rows(), m.Cols(), wantRows, wantCols)
	}

	again := converter.Convert(rec)
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			if m.At(i, j) != again.At(i, j) {
				t.Fatalf("conversion not deterministic at (%d,%d)", i, j)
			}
			if m.At(i, j) < 0 || m.At(i, j) >= 255 {
				t.Fatalf("value out of range at (%d,%d): %v", i, j, m.At(i, j))
			}
		}
	}
}

func TestConvertIsTotalOverArbitraryBytes(t *testing.T) {
	dir := t.TempDir()
	converter := NewConverter(nil)

	files := []string{"a.txt", "b.csv", "c.jpg", "d.tiff", "e.mystery", "f"}
	for _, name := range files {
		m := converter.Convert(record(t, dir, name, "\x00\x01binary\xffjunk"))
		if m.Rows() < 1 || m.Cols() < 1 {
			t.Fatalf("%s: conversion produced degenerate matrix %dx%d", name, m.Rows(), m.Cols())
		}
	}
}

func TestSequenceExtent(t *testing.T) {
	matrices := []Matrix{
		New(2, 3, []float64{1, 2, 3, 4, 5, 6}),
		New(4, 1, []float64{9, 0, 0, 0}),
	}
	extent := SequenceExtent(matrices)
	if extent.MaxRows != 4 || extent.MaxCols != 3 || extent.MaxValue != 9 {
		t.Fatalf("unexpected extent: %#v", extent)
	}
}
