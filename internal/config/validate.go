package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateRender(); err != nil {
		return err
	}
	if err := c.validateEncode(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateRender() error {
	if c.Render.FPS < 1 {
		return errors.New("render.fps must be at least 1")
	}
	if c.Render.MaxFiles < 1 {
		return errors.New("render.max_files must be at least 1")
	}
	if c.Render.Width < 64 || c.Render.Height < 64 {
		return errors.New("render.width and render.height must be at least 64")
	}
	if c.Render.Elevation < -90 || c.Render.Elevation > 90 {
		return errors.New("render.elevation must be between -90 and 90 degrees")
	}
	return nil
}

func (c *Config) validateEncode() error {
	if c.Encode.VideoBitrate < 0 {
		return errors.New("encode.video_bitrate must not be negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be \"console\" or \"json\", got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
	return nil
}
