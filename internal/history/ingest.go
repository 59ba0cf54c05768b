// Watchlens - Watch History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/watchlens

package history

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/watchlens/internal/logging"
)

var utf8BOM = []byte{0xef, 0xbb, 0xbf}

// DetectFormat sniffs the export shape: a document whose first
// non-whitespace byte is '[' or '{' is JSON, anything else is treated as
// HTML. A JSON object is not a valid export and fails in ExtractJSON.
func DetectFormat(data []byte) (Format, error) {
	trimmed := bytes.TrimLeft(bytes.TrimPrefix(data, utf8BOM), " \t\r\n")
	if len(trimmed) == 0 {
		return "", fmt.Errorf("%w: empty document", ErrUnsupportedFormat)
	}
	switch trimmed[0] {
	case '[', '{':
		return FormatJSON, nil
	}
	return FormatHTML, nil
}

// Extract runs the extractor for format.
func Extract(format Format, data []byte) ([]RawEvent, ExtractStats, error) {
	switch format {
	case FormatHTML:
		return ExtractHTML(data)
	case FormatJSON:
		return ExtractJSON(data)
	default:
		return nil, ExtractStats{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Ingest detects the format of data, extracts it and builds the canonical
// table stamped with userID.
func Ingest(ctx context.Context, data []byte, userID string) (*Table, ExtractStats, error) {
	start := time.Now()

	format, err := DetectFormat(data)
	if err != nil {
		return nil, ExtractStats{}, err
	}

	raw, stats, err := Extract(format, data)
	if err != nil {
		return nil, stats, err
	}

	table := BuildTable(raw, userID, "")
	stats.InvalidTimestamps = table.InvalidTimestamps()

	logging.Ctx(ctx).Debug().
		Str("format", string(format)).
		Int("entries", stats.Entries).
		Int("extracted", stats.Extracted).
		Int("skipped_no_link", stats.SkippedNoLink).
		Int("skipped_ads", stats.SkippedAds).
		Int("invalid_timestamps", stats.InvalidTimestamps).
		Dur("duration", time.Since(start)).
		Msg("history ingested")

	return table, stats, nil
}
