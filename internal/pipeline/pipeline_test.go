package pipeline

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofrs/flock"

	"filescape/internal/config"
	"filescape/internal/testsupport"
	"filescape/internal/timeline"
)

type fakeEncoder struct {
	silentCalls  int
	attachCalls  int
	framePattern string
	fps          int
	framesSeen   int
}

func (f *fakeEncoder) EncodeSilent(ctx context.Context, framePattern string, fps int, outputPath string) error {
	f.silentCalls++
	f.framePattern = framePattern
	f.fps = fps
	matches, err := filepath.Glob(filepath.Join(filepath.Dir(framePattern), "frame*.jpg"))
	if err != nil {
		return err
	}
	f.framesSeen = len(matches)
	return os.WriteFile(outputPath, []byte("video"), 0o644)
}

func (f *fakeEncoder) AttachAudio(ctx context.Context, videoPath, audioPath string, trimSeconds float64, outputPath string) error {
	f.attachCalls++
	return os.WriteFile(outputPath, []byte("video+audio"), 0o644)
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return testsupport.NewConfig(t, testsupport.WithFPS(10))
}

func fixtureTree(t *testing.T) string {
	t.Helper()
	return testsupport.FixtureTree(t)
}

func TestRunEndToEnd(t *testing.T) {
	cfg := testConfig(t)
	encoder := &fakeEncoder{}
	pipe := New(cfg, nil, WithEncoder(encoder))

	output := filepath.Join(t.TempDir(), "out.mp4")
	summary, err := pipe.Run(context.Background(), Request{
		Root:            fixtureTree(t),
		DurationSeconds: 2,
		OutputPath:      output,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if summary.FilesUsed != 3 {
		t.Fatalf("expected 3 files used, got %d", summary.FilesUsed)
	}
	if summary.DurationSource != timeline.SourceExplicit {
		t.Fatalf("expected explicit duration, got %s", summary.DurationSource)
	}
	if summary.Timeline.FrameCount != 20 {
		t.Fatalf("expected 20 frames for 2s at 10 fps, got %d", summary.Timeline.FrameCount)
	}
	if summary.FramesWritten != 20 {
		t.Fatalf("expected 20 frames written, got %d", summary.FramesWritten)
	}
	if encoder.silentCalls != 1 || encoder.attachCalls != 0 {
		t.Fatalf("expected one silent encode and no mux, got %d/%d", encoder.silentCalls, encoder.attachCalls)
	}
	if encoder.framesSeen != 20 {
		t.Fatalf("encoder saw %d frames on disk, want 20", encoder.framesSeen)
	}
	if encoder.fps != 10 {
		t.Fatalf("encoder fps = %d, want 10", encoder.fps)
	}
	if _, statErr := os.Stat(output); statErr != nil {
		t.Fatalf("expected output artifact: %v", statErr)
	}
	if summary.RunID == "" {
		t.Fatal("expected a run id")
	}
}

func TestRunCleansFrameDirectory(t *testing.T) {
	cfg := testConfig(t)
	pipe := New(cfg, nil, WithEncoder(&fakeEncoder{}))

	output := filepath.Join(t.TempDir(), "out.mp4")
	if _, err := pipe.Run(context.Background(), Request{
		Root:            fixtureTree(t),
		DurationSeconds: 1,
		OutputPath:      output,
	}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	entries, err := os.ReadDir(cfg.Paths.WorkDir)
	if err != nil {
		t.Fatalf("read work dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected scratch directories removed, found %d entries", len(entries))
	}
}

func TestRunEmptyRoot(t *testing.T) {
	pipe := New(testConfig(t), nil, WithEncoder(&fakeEncoder{}))
	_, err := pipe.Run(context.Background(), Request{
		Root:       t.TempDir(),
		OutputPath: filepath.Join(t.TempDir(), "out.mp4"),
	})
	if !errors.Is(err, ErrEmptyScan) {
		t.Fatalf("expected ErrEmptyScan, got %v", err)
	}
}

func TestRunOutputBusy(t *testing.T) {
	output := filepath.Join(t.TempDir(), "out.mp4")
	held := flock.New(output + ".lock")
	locked, err := held.TryLock()
	if err != nil || !locked {
		t.Fatalf("pre-lock: locked=%v err=%v", locked, err)
	}
	defer held.Unlock()

	pipe := New(testConfig(t), nil, WithEncoder(&fakeEncoder{}))
	_, err = pipe.Run(context.Background(), Request{
		Root:            fixtureTree(t),
		DurationSeconds: 1,
		OutputPath:      output,
	})
	if !errors.Is(err, ErrOutputBusy) {
		t.Fatalf("expected ErrOutputBusy, got %v", err)
	}
}

func TestRunWithMatrixCache(t *testing.T) {
	cfg := testConfig(t)
	cfg.MatrixCache.Enabled = true
	cfg.MatrixCache.Path = filepath.Join(cfg.Paths.CacheDir, "matrices.db")

	root := fixtureTree(t)
	pipe := New(cfg, nil, WithEncoder(&fakeEncoder{}))

	for i := 0; i < 2; i++ {
		output := filepath.Join(t.TempDir(), "out.mp4")
		summary, err := pipe.Run(context.Background(), Request{
			Root:            root,
			DurationSeconds: 1,
			OutputPath:      output,
		})
		if err != nil {
			t.Fatalf("Run %d: %v", i, err)
		}
		if summary.FramesWritten != 10 {
			t.Fatalf("Run %d: expected 10 frames, got %d", i, summary.FramesWritten)
		}
	}

	if _, err := os.Stat(cfg.MatrixCache.Path); err != nil {
		t.Fatalf("expected cache database: %v", err)
	}
}

func TestRunHonorsMaxFiles(t *testing.T) {
	cfg := testConfig(t)
	cfg.Render.MaxFiles = 2

	pipe := New(cfg, nil, WithEncoder(&fakeEncoder{}))
	summary, err := pipe.Run(context.Background(), Request{
		Root:            fixtureTree(t),
		DurationSeconds: 1,
		OutputPath:      filepath.Join(t.TempDir(), "out.mp4"),
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.FilesScanned != 3 {
		t.Fatalf("expected 3 files scanned, got %d", summary.FilesScanned)
	}
	if summary.FilesUsed != 2 {
		t.Fatalf("expected 2 files used, got %d", summary.FilesUsed)
	}
}

func TestPlanReport(t *testing.T) {
	cfg := testConfig(t)
	pipe := New(cfg, nil)

	report, err := pipe.Plan(context.Background(), Request{Root: fixtureTree(t)})
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}

	if report.FilesUsed != 3 {
		t.Fatalf("expected 3 files, got %d", report.FilesUsed)
	}
	if report.DurationSource != timeline.SourceHeuristic {
		t.Fatalf("expected heuristic duration, got %s", report.DurationSource)
	}
	if got := report.Timeline.DurationSeconds; math.Abs(got-10.3) > 1e-9 {
		t.Fatalf("expected 10.3s heuristic for 3 files, got %v", got)
	}
	if report.Timeline.FrameCount != 103 {
		t.Fatalf("expected 103 frames, got %d", report.Timeline.FrameCount)
	}
	if report.WindowSpan != 3 {
		t.Fatalf("expected window span 3 for 3 matrices, got %d", report.WindowSpan)
	}
	wantKinds := map[string]int{"tabular": 1, "image": 1, "generic": 1}
	for kind, want := range wantKinds {
		if report.KindCounts[kind] != want {
			t.Fatalf("kind %s: got %d, want %d", kind, report.KindCounts[kind], want)
		}
	}
}

func TestPlanEmptyRoot(t *testing.T) {
	pipe := New(testConfig(t), nil)
	if _, err := pipe.Plan(context.Background(), Request{Root: t.TempDir()}); !errors.Is(err, ErrEmptyScan) {
		t.Fatalf("expected ErrEmptyScan, got %v", err)
	}
}
