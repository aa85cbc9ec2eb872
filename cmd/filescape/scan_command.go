package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"filescape/internal/matrix"
	"filescape/internal/scan"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:         "scan [directory]",
		Short:       "Walk a directory tree and summarize what a render would see",
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := resolveRoot(args)
			if err != nil {
				return err
			}

			result, err := scan.Run(root)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d files, %s under %s\n", len(result.Files), humanBytes(result.TotalBytes), root)

			show := result.Files
			if limit > 0 && len(show) > limit {
				show = show[:limit]
			}
			rows := make([][]string, 0, len(show))
			for _, record := range show {
				rows = append(rows, []string{
					record.Path,
					matrix.KindForPath(record.Path).String(),
					humanBytes(record.Size),
					record.ModifiedAt.Format(time.DateTime),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Path", "Kind", "Size", "Modified"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
			))
			if len(show) < len(result.Files) {
				fmt.Fprintf(out, "... and %d more\n", len(result.Files)-len(show))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 25, "Maximum number of files to list (0 lists everything)")
	return cmd
}
