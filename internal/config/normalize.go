package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeRender()
	if err := c.normalizeEncode(); err != nil {
		return err
	}
	if err := c.normalizeMatrixCache(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if c.Paths.CacheDir, err = expandPath(c.Paths.CacheDir); err != nil {
		return fmt.Errorf("paths.cache_dir: %w", err)
	}
	if c.Paths.WorkDir, err = expandPath(c.Paths.WorkDir); err != nil {
		return fmt.Errorf("paths.work_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeRender() {
	if c.Render.FPS == 0 {
		c.Render.FPS = defaultFPS
	}
	if c.Render.MaxFiles == 0 {
		c.Render.MaxFiles = defaultMaxFiles
	}
	if c.Render.Width == 0 {
		c.Render.Width = defaultFrameWidth
	}
	if c.Render.Height == 0 {
		c.Render.Height = defaultFrameHeight
	}
	// Encoders reject odd frame dimensions for yuv420p output.
	c.Render.Width += c.Render.Width % 2
	c.Render.Height += c.Render.Height % 2
}

func (c *Config) normalizeEncode() error {
	c.Encode.FFmpegBinary = strings.TrimSpace(c.Encode.FFmpegBinary)
	if c.Encode.FFmpegBinary == "" {
		c.Encode.FFmpegBinary = "ffmpeg"
	}
	c.Encode.FFprobeBinary = strings.TrimSpace(c.Encode.FFprobeBinary)
	if c.Encode.FFprobeBinary == "" {
		c.Encode.FFprobeBinary = "ffprobe"
	}
	if c.Encode.VideoBitrate == 0 {
		c.Encode.VideoBitrate = defaultVideoBitrate
	}
	c.Encode.Output = strings.TrimSpace(c.Encode.Output)
	if c.Encode.Output == "" {
		c.Encode.Output = defaultOutput
	}
	return nil
}

func (c *Config) normalizeMatrixCache() error {
	if strings.TrimSpace(c.MatrixCache.Path) == "" {
		c.MatrixCache.Path = filepath.Join(c.Paths.CacheDir, "matrices.db")
		return nil
	}
	expanded, err := expandPath(c.MatrixCache.Path)
	if err != nil {
		return fmt.Errorf("matrix_cache.path: %w", err)
	}
	c.MatrixCache.Path = expanded
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
