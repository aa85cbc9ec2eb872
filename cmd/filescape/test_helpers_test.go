package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// writeTestConfig builds a self-contained configuration whose directories
// all live under a test temp dir, with external tools stubbed to binaries
// that exist on any POSIX host.
func writeTestConfig(t *testing.T) string {
	t.Helper()
	return writeTestConfigWithBinaries(t, "sh", "sh")
}

func writeTestConfigWithBinaries(t *testing.T, ffmpeg, ffprobe string) string {
	t.Helper()
	base := t.TempDir()
	path := filepath.Join(base, "filescape.toml")
	content := fmt.Sprintf(`[paths]
log_dir = %q
cache_dir = %q
work_dir = %q

[render]
fps = 10
width = 120
height = 90

[encode]
ffmpeg_binary = %q
ffprobe_binary = %q
output = %q

[logging]
format = "console"
level = "error"
`,
		filepath.Join(base, "logs"),
		filepath.Join(base, "cache"),
		filepath.Join(base, "work"),
		ffmpeg,
		ffprobe,
		filepath.Join(base, "out.mp4"),
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write test config: %v", err)
	}
	return path
}

func fixtureDirectory(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "numbers.csv"), []byte("1 2\n3 4\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "notes.bin"), []byte{0x01, 0x02}, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return root
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
