package preflight

import (
	"filescape/internal/config"
	"filescape/internal/deps"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Capabilities records which external tools a render run may rely on. It is
// built once before the pipeline is constructed and passed to the components
// that need it, so "audio disabled" is a property of an explicit input rather
// than hidden global state.
type Capabilities struct {
	FFmpeg        bool
	FFmpegBinary  string
	FFprobe       bool
	FFprobeBinary string
}

// AudioSupported reports whether audio duration probing and muxing are usable.
func (c Capabilities) AudioSupported() bool {
	return c.FFmpeg && c.FFprobe
}

// Probe resolves the configured external binaries into a Capabilities value.
func Probe(cfg *config.Config) Capabilities {
	statuses := deps.CheckBinaries(deps.Requirements(cfg))
	caps := Capabilities{}
	for _, status := range statuses {
		switch status.Name {
		case "FFmpeg":
			caps.FFmpeg = status.Available
			caps.FFmpegBinary = status.Command
		case "FFprobe":
			caps.FFprobe = status.Available
			caps.FFprobeBinary = status.Command
		}
	}
	return caps
}

// RunAll executes every applicable preflight check for the given config and
// scan root. A failed required check means a render run cannot proceed.
func RunAll(cfg *config.Config, root string) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result
	results = append(results, CheckDirectoryAccess("Scan root", root))
	results = append(results, CheckWritableParent("Output location", cfg.Encode.Output))

	for _, status := range deps.CheckBinaries(deps.Requirements(cfg)) {
		result := Result{Name: status.Name, Passed: status.Available, Detail: status.Detail}
		if status.Available {
			result.Detail = status.Command
		}
		if status.Optional && !status.Available {
			// Optional tools report their detail but never block a run.
			result.Passed = true
			result.Detail = status.Detail + " (audio disabled)"
		}
		results = append(results, result)
	}
	return results
}
