package main

import (
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"filescape/internal/pipeline"
	"filescape/internal/preflight"
)

func newRenderCommand(ctx *commandContext) *cobra.Command {
	var audioPath string
	var duration float64
	var fps int
	var maxFiles int
	var output string

	cmd := &cobra.Command{
		Use:   "render [directory]",
		Short: "Scan a directory tree and render it as an animation video",
		Long: "Render walks the directory tree, converts every file into a numeric\n" +
			"matrix, and animates the sequence as a rotating 3D surface. The frame\n" +
			"sequence is encoded with ffmpeg; an optional audio track is muxed in\n" +
			"and trimmed so it never outlasts the video.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := resolveRoot(args)
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if duration < 0 {
				return usageErrorf("--duration must be positive, got %v", duration)
			}
			if fps > 0 {
				cfg.Render.FPS = fps
			}
			if maxFiles > 0 {
				cfg.Render.MaxFiles = maxFiles
			}
			if strings.TrimSpace(output) != "" {
				cfg.Encode.Output = output
			}

			if err := reportPreflight(cmd, preflight.RunAll(cfg, root)); err != nil {
				return err
			}

			logger, err := ctx.newLogger()
			if err != nil {
				return err
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			pipe := pipeline.New(cfg, logger)
			summary, err := pipe.Run(runCtx, pipeline.Request{
				Root:            root,
				AudioPath:       audioPath,
				DurationSeconds: duration,
				OutputPath:      cfg.Encode.Output,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			rows := [][]string{
				{"Files", fmt.Sprintf("%d of %d scanned", summary.FilesUsed, summary.FilesScanned)},
				{"Duration", fmt.Sprintf("%.1fs (%s)", summary.Timeline.DurationSeconds, summary.DurationSource)},
				{"Frames", fmt.Sprintf("%d at %d fps", summary.FramesWritten, summary.Timeline.FPS)},
				{"Audio", orNone(summary.AudioPath)},
				{"Output", summary.OutputPath},
				{"Elapsed", summary.Elapsed.Round(10 * time.Millisecond).String()},
			}
			fmt.Fprintln(out, keyValueTable(rows))
			return nil
		},
	}

	cmd.Flags().StringVarP(&audioPath, "audio", "a", "", "Audio file to mux into the video")
	cmd.Flags().Float64VarP(&duration, "duration", "d", 0, "Animation duration in seconds (default: audio length or file-count heuristic)")
	cmd.Flags().IntVar(&fps, "fps", 0, "Frames per second (overrides configuration)")
	cmd.Flags().IntVar(&maxFiles, "max-files", 0, "Maximum number of files to visualize (overrides configuration)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output video path (overrides configuration)")
	return cmd
}

// reportPreflight prints failed checks and returns an error when any
// required check failed.
func reportPreflight(cmd *cobra.Command, results []preflight.Result) error {
	failed := 0
	for _, result := range results {
		if result.Passed {
			continue
		}
		failed++
		fmt.Fprintf(cmd.ErrOrStderr(), "preflight: %s failed: %s\n", result.Name, result.Detail)
	}
	if failed > 0 {
		return fmt.Errorf("%d preflight check(s) failed", failed)
	}
	return nil
}

func orNone(value string) string {
	if strings.TrimSpace(value) == "" {
		return "none"
	}
	return value
}
