package testsupport

import (
	"path/filepath"
	"testing"

	"filescape/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// External tools default to binaries that exist on any POSIX host so
// capability probing succeeds without ffmpeg installed.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.CacheDir = filepath.Join(base, "cache")
	cfg.Paths.WorkDir = filepath.Join(base, "work")
	cfg.Render.Width = 120
	cfg.Render.Height = 90
	cfg.Encode.FFmpegBinary = "sh"
	cfg.Encode.FFprobeBinary = "sh"
	cfg.Encode.Output = filepath.Join(base, "out.mp4")
	cfg.Logging.Level = "error"

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithFPS sets the render frame rate on the test config.
func WithFPS(fps int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Render.FPS = fps
	}
}

// WithMaxFiles caps the number of visualized files on the test config.
func WithMaxFiles(max int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Render.MaxFiles = max
	}
}

// WithMatrixCache enables the matrix cache backed by the test cache dir.
func WithMatrixCache() ConfigOption {
	return func(cfg *config.Config) {
		cfg.MatrixCache.Enabled = true
		cfg.MatrixCache.Path = filepath.Join(cfg.Paths.CacheDir, "matrices.db")
	}
}

// WithBinaries overrides the external tool commands on the test config.
func WithBinaries(ffmpeg, ffprobe string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Encode.FFmpegBinary = ffmpeg
		cfg.Encode.FFprobeBinary = ffprobe
	}
}
