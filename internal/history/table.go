// Watchlens - Watch History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/watchlens

package history

import (
	"github.com/tomtom215/watchlens/internal/models"
)

// Table is the canonical, immutable watch table for one ingest.
type Table struct {
	rows              []models.WatchEvent
	invalidTimestamps int
}

// BuildTable normalises raw events into a table. Row order follows the
// input and nothing is deduplicated. The third argument, a user name, is
// accepted for callers that track it but is not stored.
func BuildTable(raw []RawEvent, userID, _ string) *Table {
	t := &Table{rows: make([]models.WatchEvent, 0, len(raw))}
	for i := range raw {
		r := &raw[i]
		ev := models.WatchEvent{
			VideoID:      models.StringPtr(r.VideoID),
			VideoTitle:   r.VideoTitle,
			VideoLink:    r.VideoLink,
			ChannelLink:  models.StringPtr(r.ChannelLink),
			ChannelID:    models.StringPtr(r.ChannelID),
			ChannelTitle: models.StringPtr(r.ChannelTitle),
			UserID:       userID,
		}
		if ts, ok := NormalizeTimestamp(r.Source, r.RawTime); ok {
			ev.Timestamp = &ts
		} else {
			t.invalidTimestamps++
		}
		t.rows = append(t.rows, ev)
	}
	return t
}

// NewTable wraps already canonical rows. The slice is copied.
func NewTable(rows []models.WatchEvent) *Table {
	return &Table{rows: append(make([]models.WatchEvent, 0, len(rows)), rows...)}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// InvalidTimestamps returns how many rows carry no timestamp.
func (t *Table) InvalidTimestamps() int {
	return t.invalidTimestamps
}

// Rows returns a copy of the rows.
func (t *Table) Rows() []models.WatchEvent {
	return append(make([]models.WatchEvent, 0, len(t.rows)), t.rows...)
}

// Each calls fn for every row in order.
func (t *Table) Each(fn func(i int, e models.WatchEvent)) {
	for i := range t.rows {
		fn(i, t.rows[i])
	}
}

// Columns returns the stable column order.
func (t *Table) Columns() []string {
	return append([]string(nil), models.WatchColumns...)
}
