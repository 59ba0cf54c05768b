// Watchlens - Watch History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/watchlens

/*
Package main is the Watchlens HTTP server.

Watchlens accepts a YouTube watch-history export from Google Takeout
(watch-history.html or watch-history.json) and answers with viewing
analytics: top channels, recency-weighted proper nouns from video titles,
videos per week and videos per hour of day.

Startup order:

 1. Configuration: koanf v2 (defaults, optional YAML, environment)
 2. Logging: zerolog, configured from the logging section
 3. Entity model: prose, loaded once and shared across requests
 4. Router: chi with request IDs, CORS, rate limiting and Prometheus
 5. Supervisor: suture v4 tree running the HTTP server

SIGINT and SIGTERM flip the readiness check to 503 and drain in-flight
uploads within server.shutdown_timeout.
*/
package main
