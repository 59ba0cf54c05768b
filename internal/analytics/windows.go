// Watchlens - Watch History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/watchlens

package analytics

import (
	"time"
)

const day = 24 * time.Hour

// SubMonths moves t back by calendar months, clamping the day to the end of
// the target month (Mar 31 minus one month is Feb 29 or Feb 28).
func SubMonths(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	idx := int(m) - 1 - months
	y += floorDiv(idx, 12)
	month := time.Month(idx-floorDiv(idx, 12)*12 + 1)

	if last := daysIn(y, month); d > last {
		d = last
	}
	return time.Date(y, month, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// WeekStart returns Monday 00:00 of the week containing t.
func WeekStart(t time.Time) time.Time {
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(midnight.Weekday()) + 6) % 7
	return midnight.AddDate(0, 0, -offset)
}

// RecencyWeight decays linearly from 1 for an event watched today to 0 for
// one watched DecayWindowDays or more days before now. Age is counted in
// whole days. Events after now weigh 1.
func RecencyWeight(now, ts time.Time) float64 {
	age := now.Sub(ts)
	if age < 0 {
		return 1
	}
	days := int(age / day)
	if days > DecayWindowDays {
		return 0
	}
	return 1 - float64(days)/DecayWindowDays
}
