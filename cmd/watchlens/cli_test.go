// Watchlens - Watch History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/watchlens

package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/goccy/go-json"

	"github.com/tomtom215/watchlens/internal/models"
)

const sampleHistory = `[
  {"header": "YouTube", "title": "Watched Paris trip", "titleUrl": "https://www.youtube.com/watch?v=v1",
   "subtitles": [{"name": "Travel", "url": "https://www.youtube.com/channel/UCtravel"}],
   "time": "2024-06-14T10:00:00Z"},
  {"header": "YouTube", "title": "Watched Paris food", "titleUrl": "https://www.youtube.com/watch?v=v2",
   "subtitles": [{"name": "Travel", "url": "https://www.youtube.com/channel/UCtravel"}],
   "time": "2024-06-13T10:30:00Z"},
  {"header": "YouTube", "title": "Watched Coding live", "titleUrl": "https://www.youtube.com/watch?v=v3",
   "subtitles": [{"name": "Dev", "url": "https://www.youtube.com/channel/UCdev"}],
   "time": "2024-06-10T22:00:00Z"},
  {"header": "YouTube Music", "title": "Watched a promoted clip", "titleUrl": "https://www.youtube.com/watch?v=ad",
   "details": [{"name": "From Google Ads"}],
   "time": "2024-06-12T08:00:00Z"}
]`

func init() {
	color.NoColor = true
}

func writeHistory(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "watch-history.json")
	if err := os.WriteFile(path, []byte(sampleHistory), 0o600); err != nil {
		t.Fatalf("write history: %v", err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestAnalyzeJSON(t *testing.T) {
	path := writeHistory(t)

	stdout, _, err := execute(t, "analyze", path,
		"--model", "none", "--format", "json", "--now", "2024-06-15T12:00:00")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}

	var got struct {
		TopChannels []models.ChannelCount `json:"top_channels"`
		Nouns       []json.RawMessage     `json:"common_proper_nouns"`
		Weeks       []struct {
			WeekStart string `json:"week_start"`
			Count     int    `json:"count"`
		} `json:"videos_per_week"`
		Hours []models.HourCount `json:"videos_per_hour"`
	}
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("decode %q: %v", stdout, err)
	}

	wantChannels := []models.ChannelCount{{ChannelTitle: "Travel", Count: 2}, {ChannelTitle: "Dev", Count: 1}}
	if len(got.TopChannels) != len(wantChannels) {
		t.Fatalf("top_channels = %+v, want %+v", got.TopChannels, wantChannels)
	}
	for i := range wantChannels {
		if got.TopChannels[i] != wantChannels[i] {
			t.Errorf("top_channels[%d] = %+v, want %+v", i, got.TopChannels[i], wantChannels[i])
		}
	}

	if len(got.Nouns) != 0 {
		t.Errorf("common_proper_nouns = %d rows, want 0 with model none", len(got.Nouns))
	}

	if len(got.Weeks) != 1 || got.Weeks[0].WeekStart != "2024-06-10T00:00:00" || got.Weeks[0].Count != 3 {
		t.Errorf("videos_per_week = %+v, want one week 2024-06-10T00:00:00 with 3", got.Weeks)
	}

	wantHours := []models.HourCount{{Hour: 10, Count: 2}, {Hour: 22, Count: 1}}
	if len(got.Hours) != len(wantHours) {
		t.Fatalf("videos_per_hour = %+v, want %+v", got.Hours, wantHours)
	}
	for i := range wantHours {
		if got.Hours[i] != wantHours[i] {
			t.Errorf("videos_per_hour[%d] = %+v, want %+v", i, got.Hours[i], wantHours[i])
		}
	}
}

func TestAnalyzeText(t *testing.T) {
	path := writeHistory(t)
	csvDir := filepath.Join(t.TempDir(), "reports")

	stdout, _, err := execute(t, "analyze", path,
		"--model", "none", "--now", "2024-06-15T12:00:00", "--csv-dir", csvDir)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}

	for _, want := range []string{"Top 10 channels", "Travel", "Videos per week", "2024-06-10", "(no data)", "1 ads"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output missing %q:\n%s", want, stdout)
		}
	}

	f, err := os.Open(filepath.Join(csvDir, "top_channels.csv"))
	if err != nil {
		t.Fatalf("open csv: %v", err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	want := [][]string{{"channel_title", "count"}, {"Travel", "2"}, {"Dev", "1"}}
	if len(records) != len(want) {
		t.Fatalf("csv = %v, want %v", records, want)
	}
	for i := range want {
		if strings.Join(records[i], ",") != strings.Join(want[i], ",") {
			t.Errorf("csv row %d = %v, want %v", i, records[i], want[i])
		}
	}
}

func TestAnalyzeFlagErrors(t *testing.T) {
	path := writeHistory(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"bad format", []string{"--format", "xml"}, "Format"},
		{"zero top-n", []string{"--top-n", "0"}, "TopN"},
		{"bad model", []string{"--model", "spacy"}, "Model"},
		{"bad now", []string{"--now", "yesterday"}, "--now"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"analyze", path, "--model", "none"}, tt.args...)
			_, _, err := execute(t, args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestAnalyzeMissingFile(t *testing.T) {
	_, _, err := execute(t, "analyze", filepath.Join(t.TempDir(), "nope.json"), "--model", "none")
	if err == nil || !strings.Contains(err.Error(), "nope.json") {
		t.Errorf("error = %v, want read failure naming the file", err)
	}
}

func TestExtractCSV(t *testing.T) {
	path := writeHistory(t)

	stdout, _, err := execute(t, "extract", path, "--user-id", "alice")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(stdout)).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("rows = %d, want header plus 3 events", len(records))
	}
	if records[0][0] != "video_id" {
		t.Errorf("header = %v, want video_id first", records[0])
	}
	for _, row := range records[1:] {
		if !strings.Contains(strings.Join(row, ","), "alice") {
			t.Errorf("row %v missing user id", row)
		}
	}
}

func TestExtractParquetFile(t *testing.T) {
	path := writeHistory(t)
	out := filepath.Join(t.TempDir(), "events.parquet")

	_, stderr, err := execute(t, "extract", path, "--out", out)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	info, err := os.Stat(out)
	if err != nil {
		t.Fatalf("stat output: %v", err)
	}
	if info.Size() == 0 {
		t.Error("parquet file is empty")
	}
	if !strings.Contains(stderr, "wrote 3 events") {
		t.Errorf("stderr = %q, want summary", stderr)
	}
}

func TestVersion(t *testing.T) {
	stdout, _, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(stdout, "Version: dev") {
		t.Errorf("output = %q", stdout)
	}
}
