// Watchlens - Watch History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/watchlens

package models

import (
	"strconv"
	"time"

	"github.com/goccy/go-json"
)

// ChannelCount is one row of the top channels report.
type ChannelCount struct {
	ChannelTitle string `json:"channel_title"`
	Count        int    `json:"count"`
}

// ProperNounWeight is one row of the recency-weighted named entity report.
type ProperNounWeight struct {
	ProperNoun    string  `json:"proper_noun"`
	WeightedCount float64 `json:"weighted_count"`
}

// WeekCount is one row of the weekly volume report. WeekStart is the
// Monday 00:00 that opens the bucket.
type WeekCount struct {
	WeekStart time.Time `json:"week_start"`
	Count     int       `json:"count"`
}

// MarshalJSON writes WeekStart without a zone suffix.
func (w WeekCount) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		WeekStart string `json:"week_start"`
		Count     int    `json:"count"`
	}{w.WeekStart.Format(NaiveLayout), w.Count})
}

// HourCount is one row of the hour-of-day report. Hour is 0-23.
type HourCount struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// Metrics is the combined payload returned by the metrics endpoints.
type Metrics struct {
	TopChannels       []ChannelCount     `json:"top_channels"`
	CommonProperNouns []ProperNounWeight `json:"common_proper_nouns"`
	VideosPerWeek     []WeekCount        `json:"videos_per_week"`
	VideosPerHour     []HourCount        `json:"videos_per_hour"`
}

// Table is a header plus string rows, used by the CLI and CSV export to
// render any report uniformly.
type Table struct {
	Header []string
	Rows   [][]string
}

// ChannelTable renders a top channels report.
func ChannelTable(rows []ChannelCount) Table {
	t := Table{Header: []string{"channel_title", "count"}}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{r.ChannelTitle, strconv.Itoa(r.Count)})
	}
	return t
}

// ProperNounTable renders a proper noun report.
func ProperNounTable(rows []ProperNounWeight) Table {
	t := Table{Header: []string{"proper_noun", "weighted_count"}}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{r.ProperNoun, strconv.FormatFloat(r.WeightedCount, 'f', 4, 64)})
	}
	return t
}

// WeekTable renders a weekly volume report.
func WeekTable(rows []WeekCount) Table {
	t := Table{Header: []string{"week_start", "count"}}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{r.WeekStart.Format("2006-01-02"), strconv.Itoa(r.Count)})
	}
	return t
}

// HourTable renders an hour-of-day report.
func HourTable(rows []HourCount) Table {
	t := Table{Header: []string{"hour", "count"}}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{strconv.Itoa(r.Hour), strconv.Itoa(r.Count)})
	}
	return t
}
