// Watchlens - Watch History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/watchlens

package api

import (
	"net/http"

	"github.com/tomtom215/watchlens/internal/logging"
)

// Metrics computes all four reports with default parameters for one
// uploaded document. The weekly series keeps the last twelve weeks.
func (h *Handler) Metrics(w http.ResponseWriter, r *http.Request) {
	u, ok := h.loadSnapshot(w, r)
	if !ok {
		return
	}

	m, err := u.snap.Metrics(u.ctx)
	if err != nil {
		h.writeUploadError(w, r.WithContext(u.ctx), err)
		return
	}

	logging.Ctx(u.ctx).Info().Msg("Metrics calculated successfully")
	NewResponseWriter(w, r).SuccessWithMeta(m, u.meta)
}

// TopChannels returns the n most watched channels over the last m months.
func (h *Handler) TopChannels(w http.ResponseWriter, r *http.Request) {
	p, ok := parseTopChannels(w, r)
	if !ok {
		return
	}
	u, ok := h.loadSnapshot(w, r)
	if !ok {
		return
	}
	NewResponseWriter(w, r).SuccessWithMeta(u.snap.TopChannels(p.N, p.M), u.meta)
}

// ProperNouns returns the recency-weighted proper nouns from video titles.
func (h *Handler) ProperNouns(w http.ResponseWriter, r *http.Request) {
	p, ok := parseProperNouns(w, r)
	if !ok {
		return
	}
	u, ok := h.loadSnapshot(w, r)
	if !ok {
		return
	}

	nouns, err := u.snap.CommonProperNounsWeighted(u.ctx, p.Months, p.TopN)
	if err != nil {
		h.writeUploadError(w, r.WithContext(u.ctx), err)
		return
	}
	NewResponseWriter(w, r).SuccessWithMeta(nouns, u.meta)
}

// VideosPerWeek returns watch counts per Monday-anchored week.
func (h *Handler) VideosPerWeek(w http.ResponseWriter, r *http.Request) {
	p, ok := parseVideosPerWeek(w, r)
	if !ok {
		return
	}
	u, ok := h.loadSnapshot(w, r)
	if !ok {
		return
	}

	weeks := u.snap.VideosWatchedPerWeek()
	if p.Weeks > 0 && len(weeks) > p.Weeks {
		weeks = weeks[len(weeks)-p.Weeks:]
	}
	NewResponseWriter(w, r).SuccessWithMeta(weeks, u.meta)
}

// VideosPerHour returns watch counts per hour of day over the last n weeks.
func (h *Handler) VideosPerHour(w http.ResponseWriter, r *http.Request) {
	p, ok := parseVideosPerHour(w, r)
	if !ok {
		return
	}
	u, ok := h.loadSnapshot(w, r)
	if !ok {
		return
	}
	NewResponseWriter(w, r).SuccessWithMeta(u.snap.MostVideosHourOfDay(p.N), u.meta)
}
