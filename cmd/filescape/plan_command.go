package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"filescape/internal/pipeline"
)

func newPlanCommand(ctx *commandContext) *cobra.Command {
	var audioPath string
	var duration float64
	var fps int
	var maxFiles int

	cmd := &cobra.Command{
		Use:   "plan [directory]",
		Short: "Show what a render run would do without rendering",
		Args:  cobra.MaximumNArgs(1),
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

			pipe := pipeline.New(cfg, nil)
			report, err := pipe.Plan(cmd.Context(), pipeline.Request{
				Root:            root,
				AudioPath:       audioPath,
				DurationSeconds: duration,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			rows := [][]string{
				{"Directory", report.Root},
				{"Files", fmt.Sprintf("%d of %d scanned (%s)", report.FilesUsed, report.FilesScanned, humanBytes(report.TotalBytes))},
				{"Duration", fmt.Sprintf("%.1fs (%s)", report.Timeline.DurationSeconds, report.DurationSource)},
				{"Frames", fmt.Sprintf("%d at %d fps", report.Timeline.FrameCount, report.Timeline.FPS)},
				{"Window", fmt.Sprintf("%d surfaces per frame", report.WindowSpan)},
				{"Audio", orNone(report.AudioPath)},
			}
			fmt.Fprintln(out, keyValueTable(rows))

			kinds := make([]string, 0, len(report.KindCounts))
			for kind := range report.KindCounts {
				kinds = append(kinds, kind)
			}
			sort.Strings(kinds)
			kindRows := make([][]string, 0, len(kinds))
			for _, kind := range kinds {
				kindRows = append(kindRows, []string{kind, fmt.Sprintf("%d", report.KindCounts[kind])})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Kind", "Files"},
				kindRows,
				[]columnAlignment{alignLeft, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().StringVarP(&audioPath, "audio", "a", "", "Audio file to plan the timeline against")
	cmd.Flags().Float64VarP(&duration, "duration", "d", 0, "Animation duration in seconds")
	cmd.Flags().IntVar(&fps, "fps", 0, "Frames per second (overrides configuration)")
	cmd.Flags().IntVar(&maxFiles, "max-files", 0, "Maximum number of files to visualize (overrides configuration)")
	return cmd
}
