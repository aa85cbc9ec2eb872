package render

import (
	"bufio"
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
)

// framePattern is the frame filename layout shared with the encoder.
const framePattern = "frame%06d.jpg"

// FramePattern returns the printf-style frame filename pattern rooted in dir,
// in the form ffmpeg's image2 demuxer expects.
func FramePattern(dir string) string {
	return filepath.Join(dir, framePattern)
}

// WriteFrame encodes one composed frame as JPEG into dir. Frames are numbered
// from 1 to match the encoder's default sequence start.
func WriteFrame(dir string, index int, img image.Image) error {
	path := filepath.Join(dir, fmt.Sprintf(framePattern, index+1))
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create frame %d: %w", index, err)
	}

	writer := bufio.NewWriterSize(file, 1<<20)
	if err := jpeg.Encode(writer, img, &jpeg.Options{Quality: 90}); err != nil {
		_ = file.Close()
		return fmt.Errorf("encode frame %d: %w", index, err)
	}
	if err := writer.Flush(); err != nil {
		_ = file.Close()
		return fmt.Errorf("flush frame %d: %w", index, err)
	}
	return file.Close()
}
