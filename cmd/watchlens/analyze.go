// Watchlens - Watch History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/watchlens

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/watchlens/internal/analytics"
	"github.com/tomtom215/watchlens/internal/entities"
	"github.com/tomtom215/watchlens/internal/export"
	"github.com/tomtom215/watchlens/internal/history"
	"github.com/tomtom215/watchlens/internal/models"
	"github.com/tomtom215/watchlens/internal/validation"
)

// analyzeOptions are the analyze flags. Field names appear in validation
// messages.
type analyzeOptions struct {
	TopN          int    `validate:"min=1,max=1000"`
	Months        int    `validate:"min=1,max=120"`
	NounMonths    int    `validate:"min=1,max=120"`
	Nouns         int    `validate:"min=1,max=1000"`
	HourWeeks     int    `validate:"min=1,max=520"`
	Weeks         int    `validate:"min=0,max=520"`
	RetentionDays int    `validate:"min=1,max=36500"`
	Format        string `validate:"oneof=text json"`
	Model         string `validate:"oneof=prose none"`
	Now           string
	CSVDir        string
}

func newAnalyzeCmd(global *globalOptions) *cobra.Command {
	opts := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze <watch-history file>",
		Short: "Print the viewing reports for one export.",
		Long: `Extracts the export, keeps the last --retention-days days and prints:

- the most watched channels over the last --months months
- proper nouns from video titles, weighted by recency (90-day linear decay)
- videos watched per week (Monday-anchored)
- videos watched per hour of day over the last --hour-weeks weeks`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if verr := validation.ValidateStruct(opts); verr != nil {
				return verr
			}
			return runAnalyze(cmd, args[0], opts, global)
		},
	}

	f := cmd.Flags()
	f.IntVar(&opts.TopN, "top-n", analytics.DefaultTopChannels, "number of channels to report")
	f.IntVar(&opts.Months, "months", analytics.DefaultChannelMonths, "channel window in calendar months")
	f.IntVar(&opts.NounMonths, "noun-months", analytics.DefaultNounMonths, "proper noun window in calendar months")
	f.IntVar(&opts.Nouns, "nouns", analytics.DefaultTopNouns, "number of proper nouns to report")
	f.IntVar(&opts.HourWeeks, "hour-weeks", analytics.DefaultHourWeeks, "hour-of-day window in weeks")
	f.IntVar(&opts.Weeks, "weeks", analytics.MetricsWeeksToKeep, "most recent weeks to print, 0 for all")
	f.IntVar(&opts.RetentionDays, "retention-days", int(analytics.DefaultRetention/(24*time.Hour)), "ignore watches older than this")
	f.StringVar(&opts.Format, "format", "text", "output format: text or json")
	f.StringVar(&opts.Model, "model", "prose", "entity model: prose or none")
	f.StringVar(&opts.Now, "now", "", "reference time instead of the local clock, e.g. 2024-06-15T12:00:00")
	f.StringVar(&opts.CSVDir, "csv-dir", "", "also write each report as CSV into this directory")
	return cmd
}

func runAnalyze(cmd *cobra.Command, path string, opts *analyzeOptions, global *globalOptions) error {
	ctx := cmd.Context()

	clock := analytics.Clock(analytics.LocalClock)
	if opts.Now != "" {
		now, ok := history.ParseJSONTimestamp(opts.Now)
		if !ok {
			return fmt.Errorf("invalid --now %q", opts.Now)
		}
		clock = func() time.Time { return now }
	}

	extractor, err := newExtractor(opts.Model)
	if err != nil {
		return err
	}

	table, stats, err := loadHistory(ctx, path, global)
	if err != nil {
		return err
	}

	snap := analytics.NewSnapshot(table, extractor,
		analytics.WithClock(clock),
		analytics.WithRetention(time.Duration(opts.RetentionDays)*24*time.Hour),
	)

	nouns, err := snap.CommonProperNounsWeighted(ctx, opts.NounMonths, opts.Nouns)
	if err != nil {
		return err
	}
	weeks := snap.VideosWatchedPerWeek()
	if opts.Weeks > 0 && len(weeks) > opts.Weeks {
		weeks = weeks[len(weeks)-opts.Weeks:]
	}
	report := &models.Metrics{
		TopChannels:       snap.TopChannels(opts.TopN, opts.Months),
		CommonProperNouns: nouns,
		VideosPerWeek:     weeks,
		VideosPerHour:     snap.MostVideosHourOfDay(opts.HourWeeks),
	}

	if opts.CSVDir != "" {
		if err := writeReportCSVs(opts.CSVDir, report); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if opts.Format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	printSummary(out, path, stats, table.Len(), snap)
	return printReport(out, report, opts)
}

func newExtractor(model string) (entities.Extractor, error) {
	if model == "none" {
		return entities.Noop{}, nil
	}
	ext, err := entities.NewProseExtractor()
	if err != nil {
		return nil, err
	}
	return ext, nil
}

func writeReportCSVs(dir string, report *models.Metrics) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	files := []struct {
		name  string
		table models.Table
	}{
		{"top_channels.csv", models.ChannelTable(report.TopChannels)},
		{"common_proper_nouns.csv", models.ProperNounTable(report.CommonProperNouns)},
		{"videos_per_week.csv", models.WeekTable(report.VideosPerWeek)},
		{"videos_per_hour.csv", models.HourTable(report.VideosPerHour)},
	}
	for _, f := range files {
		if err := writeCSVFile(filepath.Join(dir, f.name), f.table); err != nil {
			return err
		}
	}
	return nil
}

func writeCSVFile(path string, t models.Table) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return export.WriteCSV(file, t)
}
