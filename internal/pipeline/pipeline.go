package pipeline

import (
	"log/slog"
	"time"

	"github.com/gofrs/flock"

	"filescape/internal/config"
	"filescape/internal/encode"
	"filescape/internal/logging"
	"filescape/internal/timeline"
)

// Request carries the per-run inputs a render needs beyond configuration.
type Request struct {
	Root            string
	AudioPath       string
	DurationSeconds float64
	OutputPath      string
}

// Summary reports what a completed render run produced.
type Summary struct {
	RunID          string
	FilesScanned   int
	FilesUsed      int
	TotalBytes     int64
	Timeline       timeline.Timeline
	DurationSource timeline.DurationSource
	AudioPath      string
	FramesWritten  int
	OutputPath     string
	Elapsed        time.Duration
}

// Pipeline drives a full render run: scan, convert, schedule, rasterize,
// encode. One pipeline serves one run at a time; the output lock enforces
// that across processes as well.
type Pipeline struct {
	cfg     *config.Config
	logger  *slog.Logger
	encoder encode.Client
	now     func() time.Time
}

// Option customizes pipeline construction.
type Option func(*Pipeline)

// WithEncoder substitutes the external encoder client.
func WithEncoder(client encode.Client) Option {
	return func(p *Pipeline) {
		p.encoder = client
	}
}

// New builds a pipeline bound to the given configuration.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) *Pipeline {
	if logger == nil {
		logger = logging.NewNop()
	}
	p := &Pipeline{
		cfg:    cfg,
		logger: logging.WithComponent(logger, "pipeline"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Pipeline) outputLock(outputPath string) *flock.Flock {
	return flock.New(outputPath + ".lock")
}
