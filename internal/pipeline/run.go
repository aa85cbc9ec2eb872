package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"filescape/internal/encode"
	"filescape/internal/fileutil"
	"filescape/internal/logging"
	"filescape/internal/matrix"
	"filescape/internal/matrixcache"
	"filescape/internal/preflight"
	"filescape/internal/render"
	"filescape/internal/scan"
	"filescape/internal/timeline"
)

// ErrEmptyScan means the scan root held no regular files to visualize.
var ErrEmptyScan = errors.New("no files found under scan root")

// ErrOutputBusy means another run holds the lock on the same output artifact.
var ErrOutputBusy = errors.New("output artifact is locked by another run")

// Run executes the full render flow and writes the final artifact to the
// request's output path.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Summary, error) {
	started := p.now()
	runID := uuid.NewString()
	logger := logging.WithRunID(p.logger, runID)

	outputPath, err := filepath.Abs(req.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("resolve output path: %w", err)
	}

	caps := preflight.Probe(p.cfg)
	if !caps.FFmpeg {
		return nil, errors.New("ffmpeg not found; install it or set encode.ffmpeg_binary")
	}

	lock := p.outputLock(outputPath)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire output lock: %w", err)
	}
	if !ok {
		return nil, ErrOutputBusy
	}
	defer func() {
		_ = lock.Unlock()
		_ = os.Remove(lock.Path())
	}()

	logger.Info("render run started",
		logging.FieldPath, req.Root,
		"output", outputPath)

	scanResult, err := p.scanStage(logger, req.Root)
	if err != nil {
		return nil, err
	}
	filesScanned := len(scanResult.Files)
	used := scanResult.Truncate(p.cfg.Render.MaxFiles)

	matrices, err := p.convertStage(ctx, logger, used.Files)
	if err != nil {
		return nil, err
	}

	reconciler := timeline.NewReconciler(caps, logger)
	audio := reconciler.ResolveAudio(ctx, req.AudioPath)
	duration, source := timeline.ResolveDuration(req.DurationSeconds, audio, len(used.Files))

	plan, err := timeline.NewPlan(len(matrices), duration, p.cfg.Render.FPS)
	if err != nil {
		return nil, fmt.Errorf("schedule timeline: %w", err)
	}
	logger.Info("timeline resolved",
		"duration_seconds", duration,
		"source", string(source),
		"frames", plan.FrameCount,
		"fps", plan.FPS)

	frameDir, err := fileutil.TempRunDir(p.cfg.Paths.WorkDir, "frames")
	if err != nil {
		return nil, fmt.Errorf("create frame directory: %w", err)
	}
	defer func() {
		_ = os.RemoveAll(frameDir)
	}()

	framesWritten, err := p.renderStage(ctx, logger, matrices, plan, frameDir)
	if err != nil {
		return nil, err
	}

	encoder := p.encoder
	if encoder == nil {
		encoder = encode.NewCLI(
			encode.WithBinary(caps.FFmpegBinary),
			encode.WithBitrate(p.cfg.Encode.VideoBitrate),
		)
	}
	muxer := encode.NewMuxer(encoder, frameDir, logger)
	artifact, err := muxer.Run(ctx, render.FramePattern(frameDir), plan.FPS, duration, audio, outputPath)
	if err != nil {
		return nil, fmt.Errorf("encode artifact: %w", err)
	}

	summary := &Summary{
		RunID:          runID,
		FilesScanned:   filesScanned,
		FilesUsed:      len(used.Files),
		TotalBytes:     used.TotalBytes,
		Timeline:       plan.Timeline,
		DurationSource: source,
		FramesWritten:  framesWritten,
		OutputPath:     artifact,
		Elapsed:        p.now().Sub(started),
	}
	if audio != nil {
		summary.AudioPath = audio.Path
	}
	logger.Info("render run finished",
		"files", summary.FilesUsed,
		"frames", summary.FramesWritten,
		"output", summary.OutputPath,
		"elapsed", summary.Elapsed.Round(10*time.Millisecond))
	return summary, nil
}

func (p *Pipeline) scanStage(logger *slog.Logger, root string) (scan.Result, error) {
	result, err := scan.Run(root)
	if err != nil {
		return scan.Result{}, fmt.Errorf("scan %s: %w", root, err)
	}
	if len(result.Files) == 0 {
		return scan.Result{}, fmt.Errorf("%w: %s", ErrEmptyScan, root)
	}
	logger.Info("scan finished",
		logging.FieldStage, "scan",
		"files", len(result.Files),
		"bytes", result.TotalBytes)
	return result, nil
}

// convertStage turns every scanned file into a matrix. With the cache
// enabled, unchanged files reuse their stored matrix and stale entries are
// pruned after the fresh conversions land.
func (p *Pipeline) convertStage(ctx context.Context, logger *slog.Logger, records []scan.FileRecord) ([]matrix.Matrix, error) {
	converter := matrix.NewConverter(logger)
	if !p.cfg.MatrixCache.Enabled {
		return converter.ConvertAll(records), nil
	}

	cache, err := matrixcache.Open(p.cfg.MatrixCache.Path)
	if err != nil {
		logger.Warn("matrix cache unavailable, converting without it", "error", err.Error())
		return converter.ConvertAll(records), nil
	}
	defer cache.Close()

	matrices := make([]matrix.Matrix, 0, len(records))
	hits := 0
	for _, record := range records {
		if cached, found, getErr := cache.Get(ctx, record); getErr == nil && found {
			matrices = append(matrices, cached)
			hits++
			continue
		}
		m := converter.Convert(record)
		matrices = append(matrices, m)
		if putErr := cache.Put(ctx, record, m); putErr != nil {
			logger.Warn("matrix cache write failed",
				logging.FieldPath, record.Path, "error", putErr.Error())
		}
	}
	if err := cache.Prune(ctx, records); err != nil {
		logger.Warn("matrix cache prune failed", "error", err.Error())
	}
	logger.Info("conversion finished",
		logging.FieldStage, "convert",
		"matrices", len(matrices),
		"cache_hits", hits)
	return matrices, nil
}

func (p *Pipeline) renderStage(ctx context.Context, logger *slog.Logger, matrices []matrix.Matrix, plan *timeline.Plan, frameDir string) (int, error) {
	compositor, err := render.NewCompositor(p.cfg.Render.Width, p.cfg.Render.Height, matrices, p.cfg.Render.Elevation)
	if err != nil {
		return 0, fmt.Errorf("build compositor: %w", err)
	}

	progressEvery := plan.FrameCount / 10
	if progressEvery < 1 {
		progressEvery = 1
	}
	for f := 0; f < plan.FrameCount; f++ {
		if err := ctx.Err(); err != nil {
			return f, fmt.Errorf("render interrupted: %w", err)
		}
		img := compositor.ComposeFrame(plan.WindowFor(f), plan.AzimuthFor(f))
		if err := render.WriteFrame(frameDir, f, img); err != nil {
			return f, fmt.Errorf("write frame %d: %w", f+1, err)
		}
		if (f+1)%progressEvery == 0 || f+1 == plan.FrameCount {
			logger.Info("render progress",
				logging.FieldStage, "render",
				"frame", f+1,
				"total", plan.FrameCount)
		}
	}
	return plan.FrameCount, nil
}
