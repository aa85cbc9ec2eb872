package pipeline

import (
	"context"

	"filescape/internal/matrix"
	"filescape/internal/preflight"
	"filescape/internal/timeline"
)

// PlanReport describes what a render run would do without executing it.
type PlanReport struct {
	Root           string
	FilesScanned   int
	FilesUsed      int
	TotalBytes     int64
	KindCounts     map[string]int
	Timeline       timeline.Timeline
	DurationSource timeline.DurationSource
	AudioPath      string
	WindowSpan     int
}

// Plan resolves the scan, duration, and timeline for a request without
// converting matrices, rendering frames, or touching the output path.
func (p *Pipeline) Plan(ctx context.Context, req Request) (*PlanReport, error) {
	result, err := p.scanStage(p.logger, req.Root)
	if err != nil {
		return nil, err
	}
	filesScanned := len(result.Files)
	used := result.Truncate(p.cfg.Render.MaxFiles)

	kinds := make(map[string]int, 3)
	for _, record := range used.Files {
		kinds[matrix.KindForPath(record.Path).String()]++
	}

	caps := preflight.Probe(p.cfg)
	reconciler := timeline.NewReconciler(caps, p.logger)
	audio := reconciler.ResolveAudio(ctx, req.AudioPath)
	duration, source := timeline.ResolveDuration(req.DurationSeconds, audio, len(used.Files))

	plan, err := timeline.NewPlan(len(used.Files), duration, p.cfg.Render.FPS)
	if err != nil {
		return nil, err
	}

	report := &PlanReport{
		Root:           req.Root,
		FilesScanned:   filesScanned,
		FilesUsed:      len(used.Files),
		TotalBytes:     used.TotalBytes,
		KindCounts:     kinds,
		Timeline:       plan.Timeline,
		DurationSource: source,
		WindowSpan:     plan.WindowFor(0).Len(),
	}
	if audio != nil {
		report.AudioPath = audio.Path
	}
	return report, nil
}
