// Watchlens - Watch History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/watchlens

/*
Package models defines the data structures shared by the extraction
pipeline, the analytics engine and the API layer.

Key Components:

  - WatchEvent: one row of the canonical watch table, with nullable
    channel, video id and timestamp columns
  - ChannelCount, ProperNounWeight, WeekCount, HourCount: report rows
  - Metrics: the combined payload of the four reports
  - Table: header plus string rows, used for CSV and terminal rendering

Timestamps:

Canonical timestamps are UTC-naive. They keep the wall clock printed in the
export, stored in time.UTC, and are written with NaiveLayout (no offset).
Comparisons between events and the reference clock are therefore plain
wall-clock comparisons.
*/
package models
