// Watchlens - Watch History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/watchlens

package history

import (
	"fmt"

	"github.com/goccy/go-json"
)

// adDetailName marks an entry that records an ad impression, not a watch.
const adDetailName = "From Google Ads"

// TakeoutEntry is one element of the JSON activity export.
type TakeoutEntry struct {
	Header    string            `json:"header"`
	Title     string            `json:"title"`
	TitleURL  string            `json:"titleUrl"`
	Subtitles []TakeoutSubtitle `json:"subtitles"`
	Time      string            `json:"time"`
	Products  []string          `json:"products"`
	Details   []TakeoutDetail   `json:"details"`
}

// TakeoutSubtitle carries the channel of a watched video.
type TakeoutSubtitle struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// TakeoutDetail is a free-form annotation on an entry. All keys are kept so
// that ad detection can compare the whole object.
type TakeoutDetail map[string]any

// IsAd reports whether the entry's details are exactly the ad marker:
// one detail holding only {"name": "From Google Ads"}.
func (e *TakeoutEntry) IsAd() bool {
	if len(e.Details) != 1 || len(e.Details[0]) != 1 {
		return false
	}
	name, ok := e.Details[0]["name"].(string)
	return ok && name == adDetailName
}

// ExtractJSON decodes a JSON activity export.
func ExtractJSON(data []byte) ([]RawEvent, ExtractStats, error) {
	var entries []TakeoutEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, ExtractStats{Format: FormatJSON}, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
	}
	events, stats := ExtractEntries(entries)
	return events, stats, nil
}

// ExtractEntries maps decoded entries to raw events, dropping ads.
func ExtractEntries(entries []TakeoutEntry) ([]RawEvent, ExtractStats) {
	stats := ExtractStats{Format: FormatJSON, Entries: len(entries)}
	events := make([]RawEvent, 0, len(entries))

	for i := range entries {
		entry := &entries[i]
		if entry.IsAd() {
			stats.SkippedAds++
			continue
		}

		ev := RawEvent{
			VideoTitle: entry.Title,
			VideoLink:  entry.TitleURL,
			VideoID:    VideoIDFromLink(entry.TitleURL),
			RawTime:    entry.Time,
			Source:     FormatJSON,
		}
		if len(entry.Subtitles) > 0 {
			ev.ChannelLink = entry.Subtitles[0].URL
			ev.ChannelTitle = entry.Subtitles[0].Name
			ev.ChannelID = ChannelIDFromLink(ev.ChannelLink)
		}
		events = append(events, ev)
	}

	stats.Extracted = len(events)
	return events, stats
}
