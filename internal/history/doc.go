// Watchlens - Watch History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/watchlens

/*
Package history turns a watch-history export into the canonical watch table.

Two export shapes are understood:

  - HTML: the activity page, one content cell per watch. Parsed in a single
    pass over the whole document with goquery.
  - JSON: an array of activity entries. Ad impressions are dropped.

Both extractors emit RawEvent tuples with the timestamp still in its source
form. BuildTable normalises timestamps, turns empty optional fields into nil
and stamps every row with the caller's user id.

	table, stats, err := history.Ingest(ctx, data, userID)
*/
package history
