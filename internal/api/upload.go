// Watchlens - Watch History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/watchlens

package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/tomtom215/watchlens/internal/analytics"
	"github.com/tomtom215/watchlens/internal/history"
	"github.com/tomtom215/watchlens/internal/logging"
	"github.com/tomtom215/watchlens/internal/metrics"
)

// multipartMemory is the part of a multipart form kept in memory before
// spilling to temporary files.
const multipartMemory = 8 << 20

// readUpload returns the uploaded document, bounded by the configured
// limit. Multipart requests are read from the configured form field, any
// other content type from the raw body.
func (h *Handler) readUpload(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.Upload.MaxBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		data, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, uploadReadError(err)
		}
		if len(data) == 0 {
			return nil, ErrMissingUpload
		}
		return data, nil
	}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		return nil, uploadReadError(err)
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, _, err := r.FormFile(h.cfg.Upload.FormField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, ErrMissingUpload
		}
		return nil, uploadReadError(err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, uploadReadError(err)
	}
	if len(data) == 0 {
		return nil, ErrMissingUpload
	}
	return data, nil
}

func uploadReadError(err error) error {
	var maxErr *http.MaxBytesError
	// mime/multipart does not always wrap the reader error.
	if errors.As(err, &maxErr) || strings.Contains(err.Error(), "request body too large") {
		return fmt.Errorf("%w: %v", ErrUploadTooLarge, err)
	}
	return fmt.Errorf("%w: %v", ErrInvalidUpload, err)
}

// upload is one ingested document ready for reporting.
type upload struct {
	ctx  context.Context // carries the upload id for logging
	snap *analytics.Snapshot
	meta *APIMeta
}

// loadSnapshot reads and ingests the upload, then freezes an analytics
// snapshot over it. On failure the error response has been written and
// ok is false.
func (h *Handler) loadSnapshot(w http.ResponseWriter, r *http.Request) (u upload, ok bool) {
	data, err := h.readUpload(w, r)
	if err != nil {
		if errors.Is(err, ErrUploadTooLarge) {
			metrics.RecordIngestFailure("", metrics.OutcomeTooLarge)
		}
		h.writeUploadError(w, r, err)
		return upload{}, false
	}

	userID := uuid.NewString()
	ctx := logging.ContextWithUploadID(r.Context(), userID)

	table, stats, err := history.Ingest(ctx, data, userID)
	if err != nil {
		metrics.RecordIngestFailure(string(stats.Format), metrics.OutcomeMalformed)
		h.writeUploadError(w, r.WithContext(ctx), err)
		return upload{}, false
	}
	metrics.RecordIngest(metrics.IngestSummary{
		Format:            string(stats.Format),
		Extracted:         stats.Extracted,
		SkippedNoLink:     stats.SkippedNoLink,
		SkippedAds:        stats.SkippedAds,
		InvalidTimestamps: stats.InvalidTimestamps,
	}, len(data))

	snap := analytics.NewSnapshot(table, h.extractor, h.snapshotOptions()...)

	logging.Ctx(ctx).Info().
		Str("format", string(stats.Format)).
		Int("bytes", len(data)).
		Int("events", table.Len()).
		Int("retained", snap.Len()).
		Msg("History document ingested")

	meta := &APIMeta{
		Upload: &UploadMeta{
			UserID:            userID,
			Format:            string(stats.Format),
			Bytes:             len(data),
			Entries:           stats.Entries,
			Events:            table.Len(),
			Retained:          snap.Len(),
			SkippedNoLink:     stats.SkippedNoLink,
			SkippedAds:        stats.SkippedAds,
			InvalidTimestamps: stats.InvalidTimestamps,
		},
	}
	return upload{ctx: ctx, snap: snap, meta: meta}, true
}
