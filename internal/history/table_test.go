// Watchlens - Watch History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/watchlens

package history

import (
	"testing"
	"time"

	"github.com/tomtom215/watchlens/internal/models"
)

func TestBuildTable(t *testing.T) {
	t.Parallel()

	raw := []RawEvent{
		{VideoID: "a", VideoTitle: "A", VideoLink: "https://www.youtube.com/watch?v=a",
			ChannelLink: "https://www.youtube.com/channel/UC1", ChannelID: "UC1", ChannelTitle: "One",
			RawTime: "2024-03-04T21:05:09Z", Source: FormatJSON},
		{VideoTitle: "B", RawTime: "Mar 4, 2024, 9:05:09 PM IST", Source: FormatHTML},
		{VideoTitle: "C", RawTime: "garbage", Source: FormatJSON},
		{VideoID: "a", VideoTitle: "A", RawTime: "2024-03-04T21:05:09Z", Source: FormatJSON},
	}

	table := BuildTable(raw, "user-1", "ignored")
	if table.Len() != 4 {
		t.Fatalf("Len() = %d, want 4 (no dedup)", table.Len())
	}
	if table.InvalidTimestamps() != 1 {
		t.Errorf("InvalidTimestamps() = %d, want 1", table.InvalidTimestamps())
	}

	rows := table.Rows()
	if rows[0].ChannelTitle == nil || *rows[0].ChannelTitle != "One" {
		t.Errorf("row 0 channel = %v, want One", rows[0].ChannelTitle)
	}
	if rows[1].ChannelTitle != nil || rows[1].ChannelID != nil || rows[1].ChannelLink != nil || rows[1].VideoID != nil {
		t.Errorf("empty optional fields should be nil, got %+v", rows[1])
	}
	want := time.Date(2024, 3, 4, 21, 5, 9, 0, time.UTC)
	if rows[1].Timestamp == nil || !rows[1].Timestamp.Equal(want) {
		t.Errorf("row 1 timestamp = %v, want %v", rows[1].Timestamp, want)
	}
	if rows[2].Timestamp != nil {
		t.Errorf("row 2 timestamp = %v, want nil", rows[2].Timestamp)
	}
	for i, r := range rows {
		if r.UserID != "user-1" {
			t.Errorf("row %d UserID = %q, want user-1", i, r.UserID)
		}
	}
}

func TestTableIsImmutable(t *testing.T) {
	t.Parallel()

	table := NewTable([]models.WatchEvent{{VideoTitle: "x"}})
	rows := table.Rows()
	rows[0].VideoTitle = "changed"

	table.Each(func(_ int, e models.WatchEvent) {
		if e.VideoTitle != "x" {
			t.Errorf("VideoTitle = %q, want x", e.VideoTitle)
		}
	})
	if got := table.Columns(); len(got) != 8 || got[0] != "video_id" || got[7] != "timestamp" {
		t.Errorf("Columns() = %v", got)
	}
}
