package ffprobe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

var commandContext = exec.CommandContext

// Info summarizes the container metadata a render run cares about.
type Info struct {
	DurationSeconds float64
	AudioStreams    int
	VideoStreams    int
	FormatName      string
}

// HasAudio reports whether the container carries at least one audio stream.
func (i Info) HasAudio() bool {
	return i.AudioStreams > 0
}

type probePayload struct {
	Streams []struct {
		CodecType string `json:"codec_type"`
		Duration  string `json:"duration"`
	} `json:"streams"`
	Format struct {
		Duration   string `json:"duration"`
		FormatName string `json:"format_name"`
	} `json:"format"`
}

// Probe executes ffprobe against the provided path and extracts the duration
// and stream layout from its JSON output.
func Probe(ctx context.Context, binary string, path string) (Info, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return Info{}, errors.New("ffprobe: empty path")
	}

	cmd := commandContext(ctx, binary, "-v", "error", "-hide_banner", "-show_format", "-show_streams", "-of", "json", "--", path)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return Info{}, fmt.Errorf("ffprobe %s: %w: %s", path, err, strings.TrimSpace(string(output)))
	}

	var payload probePayload
	if err := json.Unmarshal(output, &payload); err != nil {
		return Info{}, fmt.Errorf("ffprobe parse: %w", err)
	}

	info := Info{
		DurationSeconds: parseSeconds(payload.Format.Duration),
		FormatName:      payload.Format.FormatName,
	}
	for _, stream := range payload.Streams {
		switch strings.ToLower(stream.CodecType) {
		case "audio":
			info.AudioStreams++
			// Some containers only report duration per stream.
			if info.DurationSeconds == 0 {
				info.DurationSeconds = parseSeconds(stream.Duration)
			}
		case "video":
			info.VideoStreams++
		}
	}

	if info.DurationSeconds <= 0 {
		return info, fmt.Errorf("ffprobe %s: no usable duration", path)
	}
	return info, nil
}

func parseSeconds(value string) float64 {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return 0
	}
	parsed, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || parsed < 0 {
		return 0
	}
	return parsed
}
