// Watchlens - Watch History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/watchlens

package api

import (
	"net/http"
	"time"
)

// Version is reported by the health endpoint; set at build time.
var Version = "dev"

// welcomeMessage is the body of GET /.
const welcomeMessage = "Welcome to the YouTube Analytics API!"

// HealthStatus is the payload of GET /api/v1/health.
type HealthStatus struct {
	Status      string  `json:"status"`
	Version     string  `json:"version"`
	EntityModel string  `json:"entity_model"`
	Uptime      float64 `json:"uptime_seconds"`
}

// Welcome answers GET / with a greeting.
func (h *Handler) Welcome(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, map[string]string{"message": welcomeMessage})
}

// Health reports overall service status.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	if !h.ready.Load() {
		status = "draining"
	}
	WriteSuccess(w, r, HealthStatus{
		Status:      status,
		Version:     Version,
		EntityModel: h.cfg.Entities.Model,
		Uptime:      time.Since(h.startTime).Seconds(),
	})
}

// HealthLive returns 200 while the process is alive.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady returns 200 when the service accepts uploads and 503 while
// it drains.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if !h.ready.Load() {
		NewResponseWriter(w, r).ServiceUnavailable("Service is shutting down")
		return
	}
	WriteSuccess(w, r, map[string]bool{"ready": true})
}
