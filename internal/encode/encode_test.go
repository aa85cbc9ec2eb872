package encode

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"filescape/internal/timeline"
)

// recordingStub captures ffmpeg invocations and simulates their outcome by
// touching the final (output) argument on success.
type recordingStub struct {
	calls      [][]string
	failSilent bool
	failMux    bool
}

func (s *recordingStub) install(t *testing.T) {
	t.Helper()
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		s.calls = append(s.calls, append([]string{name}, args...))
		fail := false
		if containsArg(args, "-framerate") {
			fail = s.failSilent
		} else {
			fail = s.failMux
		}
		if fail {
			return exec.CommandContext(ctx, "false")
		}
		output := args[len(args)-1]
		return exec.CommandContext(ctx, "sh", "-c", "touch \""+output+"\"")
	}
	t.Cleanup(func() { commandContext = original })
}

func containsArg(args []string, want string) bool {
	for _, arg := range args {
		if arg == want {
			return true
		}
	}
	return false
}

func (s *recordingStub) lastCall() []string {
	if len(s.calls) == 0 {
		return nil
	}
	return s.calls[len(s.calls)-1]
}

func TestEncodeSilentArgs(t *testing.T) {
	stub := &recordingStub{}
	stub.install(t)

	cli := NewCLI(WithBinary("ffmpeg-test"), WithBitrate(2500))
	out := filepath.Join(t.TempDir(), "out.mp4")
	if err := cli.EncodeSilent(context.Background(), "/tmp/frames/frame%06d.jpg", 15, out); err != nil {
		t.Fatalf("EncodeSilent: %v", err)
	}

	call := stub.lastCall()
	if call[0] != "ffmpeg-test" {
		t.Fatalf("unexpected binary: %s", call[0])
	}
	joined := strings.Join(call, " ")
	for _, want := range []string{"-framerate 15", "-c:v libx264", "-pix_fmt yuv420p", "-b:v 2500k"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("expected %q in args: %s", want, joined)
		}
	}
}

func TestEncodeSilentValidation(t *testing.T) {
	cli := NewCLI()
	if err := cli.EncodeSilent(context.Background(), " ", 15, "out.mp4"); err == nil {
		t.Fatal("expected error for empty pattern")
	}
	if err := cli.EncodeSilent(context.Background(), "f%06d.jpg", 0, "out.mp4"); err == nil {
		t.Fatal("expected error for zero fps")
	}
}

func TestMuxerSilentOnly(t *testing.T) {
	stub := &recordingStub{}
	stub.install(t)

	out := filepath.Join(t.TempDir(), "out.mp4")
	muxer := NewMuxer(NewCLI(), t.TempDir(), nil)
	artifact, err := muxer.Run(context.Background(), "/tmp/f/frame%06d.jpg", 10, 20, nil, out)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if artifact != out {
		t.Fatalf("unexpected artifact path: %s", artifact)
	}
	if len(stub.calls) != 1 {
		t.Fatalf("expected a single encode invocation, got %d", len(stub.calls))
	}
}

func TestMuxerTrimsAudioOutlastingVideo(t *testing.T) {
	stub := &recordingStub{}
	stub.install(t)

	work := t.TempDir()
	out := filepath.Join(t.TempDir(), "out.mp4")
	audio := &timeline.AudioTrack{Path: "song.mp3", DurationSeconds: 30}

	muxer := NewMuxer(NewCLI(), work, nil)
	if _, err := muxer.Run(context.Background(), "/tmp/f/frame%06d.jpg", 10, 20, audio, out); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(stub.calls) != 2 {
		t.Fatalf("expected encode then mux, got %d calls", len(stub.calls))
	}
	joined := strings.Join(stub.lastCall(), " ")
	if !strings.Contains(joined, "-t 20.000") {
		t.Fatalf("expected audio trimmed to video duration: %s", joined)
	}
}

func TestMuxerLeavesShortAudioUntrimmed(t *testing.T) {
	stub := &recordingStub{}
	stub.install(t)

	out := filepath.Join(t.TempDir(), "out.mp4")
	audio := &timeline.AudioTrack{Path: "song.mp3", DurationSeconds: 15}

	muxer := NewMuxer(NewCLI(), t.TempDir(), nil)
	if _, err := muxer.Run(context.Background(), "/tmp/f/frame%06d.jpg", 10, 20, audio, out); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if containsArg(stub.lastCall(), "-t") {
		t.Fatalf("expected no trim for short audio: %v", stub.lastCall())
	}
}

func TestMuxerFallsBackToSilentOnMuxFailure(t *testing.T) {
	stub := &recordingStub{failMux: true}
	stub.install(t)

	out := filepath.Join(t.TempDir(), "out.mp4")
	audio := &timeline.AudioTrack{Path: "song.mp3", DurationSeconds: 30}

	muxer := NewMuxer(NewCLI(), t.TempDir(), nil)
	artifact, err := muxer.Run(context.Background(), "/tmp/f/frame%06d.jpg", 10, 20, audio, out)
	if err != nil {
		t.Fatalf("expected silent fallback, got error: %v", err)
	}
	if artifact != out {
		t.Fatalf("unexpected artifact: %s", artifact)
	}
	if _, statErr := os.Stat(out); statErr != nil {
		t.Fatalf("expected promoted silent artifact: %v", statErr)
	}
}

func TestMuxerFailsWhenSilentEncodeFails(t *testing.T) {
	stub := &recordingStub{failSilent: true}
	stub.install(t)

	out := filepath.Join(t.TempDir(), "out.mp4")
	muxer := NewMuxer(NewCLI(), t.TempDir(), nil)
	if _, err := muxer.Run(context.Background(), "/tmp/f/frame%06d.jpg", 10, 20, nil, out); err == nil {
		t.Fatal("expected fatal error when silent encode fails")
	}
	if _, statErr := os.Stat(out); statErr == nil {
		t.Fatal("expected no artifact on fatal failure")
	}
}
