// Watchlens - Watch History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/watchlens

// Package supervisor runs the Watchlens services under a suture v4 tree.
//
//	watchlens (root)
//	└── api-layer
//	    └── http-server
//
// Supervisor events are logged through sutureslog on top of the zerolog
// slog adapter, so restarts and backoff show up in the structured log.
package supervisor
