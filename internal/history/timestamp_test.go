// Watchlens - Watch History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/watchlens

package history

import (
	"testing"
	"time"
)

func TestParseMarkupTimestamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		want   time.Time
		wantOK bool
	}{
		{"evening IST", "Mar 4, 2024, 9:05:09 PM IST", time.Date(2024, 3, 4, 21, 5, 9, 0, time.UTC), true},
		{"midnight", "Jan 1, 2024, 12:00:00 AM EST", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), true},
		{"noon", "Dec 31, 2023, 12:30:00 PM CEST", time.Date(2023, 12, 31, 12, 30, 0, 0, time.UTC), true},
		{"narrow no-break space", "Feb 9, 2024, 7:15:00\u202fAM UTC", time.Date(2024, 2, 9, 7, 15, 0, 0, time.UTC), true},
		{"no zone label", "Feb 9, 2024, 7:15:00 AM", time.Date(2024, 2, 9, 7, 15, 0, 0, time.UTC), true},
		{"garbage", "yesterday-ish", time.Time{}, false},
		{"empty", "", time.Time{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := ParseMarkupTimestamp(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ParseMarkupTimestamp(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseMarkupTimestamp(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if ok && got.Location() != time.UTC {
				t.Errorf("location = %v, want UTC", got.Location())
			}
		})
	}
}

func TestFindMarkupTimestamp(t *testing.T) {
	t.Parallel()

	text := "Watched Some VideoSome ChannelMar 4, 2024, 9:05:09\u202fPM IST"
	if got := FindMarkupTimestamp(text); got != "Mar 4, 2024, 9:05:09 PM IST" {
		t.Errorf("FindMarkupTimestamp = %q", got)
	}
	if got := FindMarkupTimestamp("Watched a video that has been removed"); got != "" {
		t.Errorf("FindMarkupTimestamp without date = %q, want empty", got)
	}
}

func TestParseJSONTimestamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		want   time.Time
		wantOK bool
	}{
		{"zulu millis", "2024-03-04T21:05:09.123Z", time.Date(2024, 3, 4, 21, 5, 9, 123000000, time.UTC), true},
		{"zulu", "2024-03-04T21:05:09Z", time.Date(2024, 3, 4, 21, 5, 9, 0, time.UTC), true},
		{"offset kept as wall clock", "2024-03-04T21:05:09+05:30", time.Date(2024, 3, 4, 21, 5, 9, 0, time.UTC), true},
		{"space separated", "2024-03-04 21:05:09", time.Date(2024, 3, 4, 21, 5, 9, 0, time.UTC), true},
		{"empty", "", time.Time{}, false},
		{"garbage", "not a time at all", time.Time{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := ParseJSONTimestamp(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ParseJSONTimestamp(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseJSONTimestamp(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeTimestampUnknownFormat(t *testing.T) {
	t.Parallel()

	if _, ok := NormalizeTimestamp(Format("csv"), "2024-01-01T00:00:00Z"); ok {
		t.Error("NormalizeTimestamp with unknown format should fail")
	}
}
