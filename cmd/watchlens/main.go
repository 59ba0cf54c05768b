// Watchlens - Watch History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/watchlens

// Command watchlens analyses a Takeout watch-history export offline.
//
//	watchlens analyze watch-history.json
//	watchlens analyze watch-history.html --format json --months 3
//	watchlens extract watch-history.html --out events.parquet
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
