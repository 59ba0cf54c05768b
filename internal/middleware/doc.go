// Watchlens - Watch History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/watchlens

/*
Package middleware provides HTTP middleware shared by the Watchlens router.

  - RequestID: X-Request-ID propagation into the logging context
  - AccessLog: one structured zerolog line per request
  - PrometheusMetrics: request count, latency and in-flight gauge

The api package mounts them on chi in this order:

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog)
	r.Use(chiMiddleware(middleware.PrometheusMetrics))
*/
package middleware
