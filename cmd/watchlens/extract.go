// Watchlens - Watch History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/watchlens

package main

import (
	"github.com/spf13/cobra"

	"github.com/tomtom215/watchlens/internal/export"
)

func newExtractCmd(global *globalOptions) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "extract <watch-history file>",
		Short: "Write the normalised watch events as CSV or Parquet.",
		Long: `Extracts every watch event from the export into the canonical table
(video_id, video_title, video_link, channel_link, channel_id, channel_title,
user_id, timestamp). Without --out the table is printed as CSV; otherwise the
extension of --out selects .csv or .parquet.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, stats, err := loadHistory(cmd.Context(), args[0], global)
			if err != nil {
				return err
			}

			if out == "" {
				return export.WriteCSV(cmd.OutOrStdout(), export.WatchTable(table))
			}
			if err := export.WriteFile(out, table); err != nil {
				return err
			}
			mutedColor.Fprintf(cmd.ErrOrStderr(), "wrote %d events (%s, %d skipped) to %s\n",
				table.Len(), stats.Format, stats.SkippedNoLink+stats.SkippedAds, out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (.csv or .parquet)")
	return cmd
}
