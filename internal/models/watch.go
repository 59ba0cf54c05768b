// Watchlens - Watch History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/watchlens

package models

import (
	"time"
)

// NaiveLayout is the wire format of canonical timestamps. Canonical
// instants carry no zone information, so no offset is written.
const NaiveLayout = "2006-01-02T15:04:05"

// WatchEvent is one row of the canonical watch table.
//
// Optional fields are pointers: a nil value means the source entry did not
// carry the field (no channel anchor, no v= parameter, unparseable time).
// VideoID is derived from VideoLink only, ChannelID from ChannelLink only.
//
// Timestamp is UTC-naive: it holds the wall clock printed in the export,
// stored in time.UTC, without any zone conversion.
type WatchEvent struct {
	VideoID      *string    `json:"video_id"`
	VideoTitle   string     `json:"video_title"`
	VideoLink    string     `json:"video_link"`
	ChannelLink  *string    `json:"channel_link"`
	ChannelID    *string    `json:"channel_id"`
	ChannelTitle *string    `json:"channel_title"`
	UserID       string     `json:"user_id"`
	Timestamp    *time.Time `json:"timestamp"`
}

// WatchColumns is the stable column order of the canonical table.
var WatchColumns = []string{
	"video_id",
	"video_title",
	"video_link",
	"channel_link",
	"channel_id",
	"channel_title",
	"user_id",
	"timestamp",
}

// Channel returns the channel title, or "" when absent.
func (e *WatchEvent) Channel() string {
	if e.ChannelTitle == nil {
		return ""
	}
	return *e.ChannelTitle
}

// Record renders the row as strings in WatchColumns order. Absent values
// become empty strings.
func (e *WatchEvent) Record() []string {
	ts := ""
	if e.Timestamp != nil {
		ts = e.Timestamp.Format(NaiveLayout)
	}
	return []string{
		deref(e.VideoID),
		e.VideoTitle,
		e.VideoLink,
		deref(e.ChannelLink),
		deref(e.ChannelID),
		deref(e.ChannelTitle),
		e.UserID,
		ts,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// StringPtr returns nil for the empty string and &s otherwise.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
