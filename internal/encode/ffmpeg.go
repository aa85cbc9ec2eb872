package encode

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

var commandContext = exec.CommandContext

// Client defines the external encoder operations the muxer drives.
type Client interface {
	EncodeSilent(ctx context.Context, framePattern string, fps int, outputPath string) error
	AttachAudio(ctx context.Context, videoPath, audioPath string, trimSeconds float64, outputPath string) error
}

// Option configures the CLI client.
type Option func(*CLI)

// WithBinary overrides the default ffmpeg binary name.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// WithBitrate sets the video bitrate in kbit/s for the silent encode pass.
func WithBitrate(kbps int) Option {
	return func(c *CLI) {
		if kbps > 0 {
			c.bitrate = kbps
		}
	}
}

// CLI wraps the ffmpeg command-line encoder.
type CLI struct {
	binary  string
	bitrate int
}

// NewCLI constructs a CLI client using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{binary: "ffmpeg", bitrate: 5000}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// EncodeSilent assembles the numbered frame files into an H.264 stream.
func (c *CLI) EncodeSilent(ctx context.Context, framePattern string, fps int, outputPath string) error {
	if strings.TrimSpace(framePattern) == "" {
		return errors.New("frame pattern required")
	}
	if fps < 1 {
		return fmt.Errorf("invalid fps %d", fps)
	}
	args := []string{
		"-y",
		"-framerate", strconv.Itoa(fps),
		"-i", framePattern,
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		"-b:v", fmt.Sprintf("%dk", c.bitrate),
		"-movflags", "+faststart",
		outputPath,
	}
	return c.run(ctx, args)
}

// AttachAudio muxes the audio track into the silent video with stream copy.
// A positive trimSeconds bounds the output so audio never outlasts video.
func (c *CLI) AttachAudio(ctx context.Context, videoPath, audioPath string, trimSeconds float64, outputPath string) error {
	if videoPath == "" || audioPath == "" {
		return errors.New("video and audio paths required")
	}
	args := []string{
		"-y",
		"-i", videoPath,
		"-i", audioPath,
		"-map", "0:v:0",
		"-map", "1:a:0",
		"-c:v", "copy",
		"-c:a", "aac",
	}
	if trimSeconds > 0 {
		args = append(args, "-t", strconv.FormatFloat(trimSeconds, 'f', 3, 64))
	}
	args = append(args, "-movflags", "+faststart", outputPath)
	return c.run(ctx, args)
}

func (c *CLI) run(ctx context.Context, args []string) error {
	cmd := commandContext(ctx, c.binary, args...) //nolint:gosec
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w: %s", c.binary, err, tail(string(output), 400))
	}
	return nil
}

// tail keeps error output readable; ffmpeg failures bury the cause at the end.
func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n:]
}
