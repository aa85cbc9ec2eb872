package timeline

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"filescape/internal/logging"
	"filescape/internal/media/ffprobe"
	"filescape/internal/preflight"
)

// Heuristic duration bounds used when no audio track or explicit duration
// pins the timeline.
const (
	heuristicBaseSeconds = 10.0
	heuristicPerTenFiles = 1.0
	heuristicCapSeconds  = 60.0
)

var audioExtensions = map[string]struct{}{
	".mp3": {}, ".wav": {}, ".ogg": {}, ".aac": {}, ".m4a": {},
}

// AudioTrack describes a resolved, probed audio input.
type AudioTrack struct {
	Path            string
	DurationSeconds float64
}

// DurationSource names how the authoritative duration was chosen.
type DurationSource string

const (
	SourceExplicit  DurationSource = "explicit"
	SourceAudio     DurationSource = "audio"
	SourceHeuristic DurationSource = "heuristic"
)

// Reconciler resolves the optional audio input and negotiates the
// authoritative animation duration between the audio timeline and the
// file-count heuristic.
type Reconciler struct {
	caps   preflight.Capabilities
	logger *slog.Logger
}

// NewReconciler builds a reconciler for the given run capabilities.
func NewReconciler(caps preflight.Capabilities, logger *slog.Logger) *Reconciler {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Reconciler{caps: caps, logger: logging.WithComponent(logger, "reconciler")}
}

// ResolveAudio probes the supplied audio path. Every failure disables audio
// for the run instead of aborting it: the animation still renders, silently.
func (r *Reconciler) ResolveAudio(ctx context.Context, path string) *AudioTrack {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}
	if !r.caps.AudioSupported() {
		r.logger.Warn("audio requested but probing tools are unavailable, rendering silent", logging.FieldPath, path)
		return nil
	}
	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := audioExtensions[ext]; !ok {
		r.logger.Warn("unsupported audio extension, rendering silent", logging.FieldPath, path, "ext", ext)
		return nil
	}

	info, err := ffprobe.Probe(ctx, r.caps.FFprobeBinary, path)
	if err != nil {
		r.logger.Warn("audio probe failed, rendering silent", logging.FieldPath, path, "error", err.Error())
		return nil
	}
	if !info.HasAudio() {
		r.logger.Warn("no audio stream found, rendering silent", logging.FieldPath, path)
		return nil
	}
	return &AudioTrack{Path: path, DurationSeconds: info.DurationSeconds}
}

// ResolveDuration determines the authoritative animation duration.
//
// An explicit duration always wins. Otherwise an available audio track sets
// the pace; without either, the duration ramps linearly with the file count
// and is capped. Muxing later trims audio to the shorter of the two timelines.
func ResolveDuration(explicit float64, audio *AudioTrack, fileCount int) (float64, DurationSource) {
	if explicit > 0 {
		return explicit, SourceExplicit
	}
	if audio != nil && audio.DurationSeconds > 0 {
		return audio.DurationSeconds, SourceAudio
	}
	duration := heuristicBaseSeconds + heuristicPerTenFiles*float64(fileCount)/10
	if duration > heuristicCapSeconds {
		duration = heuristicCapSeconds
	}
	return duration, SourceHeuristic
}
