// Watchlens - Watch History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/watchlens

package history

import (
	"errors"
	"regexp"
	"strings"
)

// Format identifies an export shape.
type Format string

const (
	FormatHTML Format = "html"
	FormatJSON Format = "json"
)

var (
	// ErrMalformedDocument is returned when a document claims a format but
	// cannot be decoded as such.
	ErrMalformedDocument = errors.New("malformed history document")

	// ErrUnsupportedFormat is returned for empty input or an unknown format.
	ErrUnsupportedFormat = errors.New("unsupported history format")
)

var (
	videoIDRe     = regexp.MustCompile(`v=([^&]+)`)
	channelLinkRe = regexp.MustCompile(`^https?://(www\.)?youtube\.com/channel/`)
)

// RawEvent is one extracted watch entry before normalisation. Empty strings
// mean "absent"; RawTime is still in the source format.
type RawEvent struct {
	VideoID      string
	VideoTitle   string
	VideoLink    string
	ChannelLink  string
	ChannelID    string
	ChannelTitle string
	RawTime      string
	Source       Format
}

// ExtractStats counts what an extractor saw and dropped.
type ExtractStats struct {
	Format            Format `json:"format"`
	Entries           int    `json:"entries"`
	Extracted         int    `json:"extracted"`
	SkippedNoLink     int    `json:"skipped_no_link"`
	SkippedAds        int    `json:"skipped_ads"`
	InvalidTimestamps int    `json:"invalid_timestamps"`
}

// VideoIDFromLink returns the v= query value of a watch URL, or "".
func VideoIDFromLink(link string) string {
	m := videoIDRe.FindStringSubmatch(link)
	if m == nil {
		return ""
	}
	return m[1]
}

// ChannelIDFromLink returns the last path segment of a channel URL.
func ChannelIDFromLink(link string) string {
	if link == "" {
		return ""
	}
	return link[strings.LastIndexByte(link, '/')+1:]
}
