// Watchlens - Watch History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/watchlens

package history

import (
	"context"
	"errors"
	"testing"
)

func TestDetectFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    Format
		wantErr bool
	}{
		{"json", `[{"title":"x"}]`, FormatJSON, false},
		{"json with whitespace", "\n\t  [ ]", FormatJSON, false},
		{"json with bom", "\xef\xbb\xbf[]", FormatJSON, false},
		{"html", "<!DOCTYPE html><html></html>", FormatHTML, false},
		{"object goes to json", `{"a":1}`, FormatJSON, false},
		{"empty", "   ", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := DetectFormat([]byte(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("DetectFormat error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrUnsupportedFormat) {
				t.Errorf("error = %v, want ErrUnsupportedFormat", err)
			}
			if got != tt.want {
				t.Errorf("DetectFormat = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIngest(t *testing.T) {
	t.Parallel()

	table, stats, err := Ingest(context.Background(), []byte(takeoutJSON), "u-42")
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if stats.Format != FormatJSON {
		t.Errorf("Format = %q, want json", stats.Format)
	}
	if table.Len() != 3 {
		t.Errorf("Len() = %d, want 3", table.Len())
	}
	if stats.InvalidTimestamps != 0 {
		t.Errorf("InvalidTimestamps = %d, want 0", stats.InvalidTimestamps)
	}

	if _, _, err := Ingest(context.Background(), []byte(`[1, 2`), "u"); !errors.Is(err, ErrMalformedDocument) {
		t.Errorf("Ingest(truncated) error = %v, want ErrMalformedDocument", err)
	}
	if _, _, err := Extract(Format("xml"), nil); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Extract(xml) error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestIngestRejectsNonExports(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"json object", `{"title":"Watched x","titleUrl":"https://www.youtube.com/watch?v=x"}`, ErrMalformedDocument},
		{"zip archive", "PK\x03\x04\x14\x00\x00\x00 binary zip data", ErrUnsupportedFormat},
		{"plain text", "just some text", ErrUnsupportedFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			table, _, err := Ingest(context.Background(), []byte(tt.input), "u")
			if !errors.Is(err, tt.want) {
				t.Fatalf("Ingest error = %v, want %v", err, tt.want)
			}
			if table != nil {
				t.Errorf("Ingest table = %v, want nil", table)
			}
		})
	}
}

func TestIngestEmptyHTMLExport(t *testing.T) {
	t.Parallel()

	page := `<html><body><div class="mdl-grid"></div></body></html>`
	table, stats, err := Ingest(context.Background(), []byte(page), "u")
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if stats.Format != FormatHTML || table.Len() != 0 {
		t.Errorf("Ingest = %s with %d rows, want html with 0 rows", stats.Format, table.Len())
	}
}
