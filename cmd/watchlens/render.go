// Watchlens - Watch History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/watchlens

package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/tomtom215/watchlens/internal/analytics"
	"github.com/tomtom215/watchlens/internal/history"
	"github.com/tomtom215/watchlens/internal/models"
)

var (
	headingColor = color.New(color.FgCyan, color.Bold)
	mutedColor   = color.New(color.FgHiBlack)
	warnColor    = color.New(color.FgYellow)
)

func printSummary(w io.Writer, path string, stats history.ExtractStats, events int, snap *analytics.Snapshot) {
	mutedColor.Fprintf(w, "%s (%s): %d entries, %d events, %d in window ending %s\n",
		path, stats.Format, stats.Entries, events, snap.Len(), snap.Now().Format(models.NaiveLayout))

	skipped := stats.SkippedNoLink + stats.SkippedAds + stats.InvalidTimestamps
	if skipped > 0 {
		warnColor.Fprintf(w, "skipped: %d without link, %d ads, %d unparseable timestamps\n",
			stats.SkippedNoLink, stats.SkippedAds, stats.InvalidTimestamps)
	}
}

func printReport(w io.Writer, report *models.Metrics, opts *analyzeOptions) error {
	sections := []struct {
		title string
		table models.Table
	}{
		{fmt.Sprintf("Top %d channels, last %d month(s)", opts.TopN, opts.Months), models.ChannelTable(report.TopChannels)},
		{fmt.Sprintf("Proper nouns, last %d month(s)", opts.NounMonths), models.ProperNounTable(report.CommonProperNouns)},
		{"Videos per week", models.WeekTable(report.VideosPerWeek)},
		{fmt.Sprintf("Videos per hour of day, last %d week(s)", opts.HourWeeks), models.HourTable(report.VideosPerHour)},
	}

	for _, s := range sections {
		fmt.Fprintln(w)
		headingColor.Fprintln(w, s.title)
		if len(s.table.Rows) == 0 {
			mutedColor.Fprintln(w, "  (no data)")
			continue
		}
		if err := renderTable(w, s.table); err != nil {
			return err
		}
	}
	return nil
}

// renderTable prints t as a bordered table with right-aligned cells.
func renderTable(w io.Writer, t models.Table) error {
	table := tablewriter.NewWriter(w)
	defer func() { _ = table.Close() }()
	table.Header(t.Header)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	if err := table.Bulk(t.Rows); err != nil {
		return err
	}
	return table.Render()
}
