package encode

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"filescape/internal/fileutil"
	"filescape/internal/logging"
	"filescape/internal/timeline"
)

// Muxer assembles the final artifact: silent encode first, then optional
// audio attachment with a silent fallback.
type Muxer struct {
	client  Client
	workDir string
	logger  *slog.Logger
}

// NewMuxer builds a muxer that stages temporary artifacts under workDir.
func NewMuxer(client Client, workDir string, logger *slog.Logger) *Muxer {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Muxer{client: client, workDir: workDir, logger: logging.WithComponent(logger, "muxer")}
}

// Run encodes the frame sequence and produces the output artifact.
//
// The silent stream is always encoded first; its failure fails the run. When
// an audio track is present the silent video goes to a temporary file, audio
// is trimmed to the shorter of the two timelines, and any failure in that
// branch falls back to promoting the silent video instead of aborting.
func (m *Muxer) Run(ctx context.Context, framePattern string, fps int, videoDuration float64, audio *timeline.AudioTrack, outputPath string) (string, error) {
	if audio == nil {
		if err := m.client.EncodeSilent(ctx, framePattern, fps, outputPath); err != nil {
			return "", fmt.Errorf("encode silent video: %w", err)
		}
		return outputPath, nil
	}

	silentPath := filepath.Join(m.workDir, "silent-"+uuid.NewString()+filepath.Ext(outputPath))
	if err := m.client.EncodeSilent(ctx, framePattern, fps, silentPath); err != nil {
		return "", fmt.Errorf("encode silent video: %w", err)
	}
	defer func() {
		_ = os.Remove(silentPath)
	}()

	trim := 0.0
	if audio.DurationSeconds > videoDuration {
		trim = videoDuration
	}

	if err := m.client.AttachAudio(ctx, silentPath, audio.Path, trim, outputPath); err != nil {
		m.logger.Warn("audio mux failed, falling back to silent video",
			logging.FieldPath, audio.Path, "error", err.Error())
		if copyErr := fileutil.CopyFile(silentPath, outputPath); copyErr != nil {
			return "", fmt.Errorf("promote silent video after mux failure: %w", copyErr)
		}
	}
	return outputPath, nil
}
