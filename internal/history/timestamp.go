// Watchlens - Watch History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/watchlens

package history

import (
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// markupLayout is the activity page clock format once the zone label is cut.
const markupLayout = "Jan 2, 2006, 3:04:05 PM"

var (
	markupTimestampRe = regexp.MustCompile(
		`(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\s\d{1,2},\s\d{4},\s\d{1,2}:\d{2}:\d{2}\s[AP]M\s[A-Z]{2,5}`)

	// Newer exports put U+202F before AM/PM and U+00A0 elsewhere.
	spaceReplacer = strings.NewReplacer("\u202f", " ", "\u00a0", " ")
)

// FindMarkupTimestamp returns the first activity-page timestamp inside text,
// or "" when there is none.
func FindMarkupTimestamp(text string) string {
	return markupTimestampRe.FindString(spaceReplacer.Replace(text))
}

// ParseMarkupTimestamp parses "Mar 4, 2024, 9:05:09 PM IST". The zone label
// is informational: the printed wall clock becomes the canonical instant.
func ParseMarkupTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(spaceReplacer.Replace(s))
	if i := strings.LastIndexByte(s, ' '); i > 0 && isZoneLabel(s[i+1:]) {
		s = s[:i]
	}
	t, err := time.Parse(markupLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func isZoneLabel(s string) bool {
	if len(s) < 2 || len(s) > 5 {
		return false
	}
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// ParseJSONTimestamp parses the free-form time of a JSON export entry,
// typically RFC 3339 with a Z or numeric offset. The offset is dropped and
// the wall clock kept.
func ParseJSONTimestamp(s string) (t time.Time, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	defer func() {
		// dateparse panics on a handful of pathological inputs.
		if recover() != nil {
			t, ok = time.Time{}, false
		}
	}()
	parsed, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return stripZone(parsed), true
}

func stripZone(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// NormalizeTimestamp dispatches on the export format the raw string came
// from.
func NormalizeTimestamp(format Format, raw string) (time.Time, bool) {
	switch format {
	case FormatHTML:
		return ParseMarkupTimestamp(raw)
	case FormatJSON:
		return ParseJSONTimestamp(raw)
	default:
		return time.Time{}, false
	}
}
