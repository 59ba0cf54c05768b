// Watchlens - Watch History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/watchlens

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/tomtom215/watchlens/internal/history"
	"github.com/tomtom215/watchlens/internal/logging"
)

// Linker flags set at release time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// globalOptions are shared by every subcommand.
type globalOptions struct {
	logLevel string
	userID   string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "watchlens",
		Short: "Analyse a YouTube watch-history export.",
		Long: `watchlens reads the watch-history.html or watch-history.json file from a
Google Takeout export and reports viewing habits: top channels, recurring
proper nouns in video titles, videos per week and videos per hour of day.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if !logging.ValidLevel(opts.logLevel) {
				return fmt.Errorf("invalid --log-level %q", opts.logLevel)
			}
			logging.Init(logging.Config{
				Level:  opts.logLevel,
				Format: "console",
				Output: cmd.ErrOrStderr(),
			})
			return nil
		},
	}

	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&opts.userID, "user-id", "", "user id stamped on every row (default: random UUID)")

	root.AddCommand(newAnalyzeCmd(opts), newExtractCmd(opts), newVersionCmd())
	return root
}

// loadHistory reads and ingests one export file.
func loadHistory(ctx context.Context, path string, opts *globalOptions) (*history.Table, history.ExtractStats, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, history.ExtractStats{}, fmt.Errorf("read %s: %w", path, err)
	}

	userID := opts.userID
	if userID == "" {
		userID = uuid.NewString()
	}

	table, stats, err := history.Ingest(logging.ContextWithUploadID(ctx, userID), data, userID)
	if err != nil {
		return nil, stats, fmt.Errorf("ingest %s: %w", path, err)
	}
	return table, stats, nil
}
