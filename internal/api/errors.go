// Watchlens - Watch History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/watchlens

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/watchlens/internal/entities"
	"github.com/tomtom215/watchlens/internal/history"
	"github.com/tomtom215/watchlens/internal/logging"
)

// Upload errors
var (
	// ErrMissingUpload indicates the request carried no document.
	ErrMissingUpload = errors.New("no history document in request")

	// ErrUploadTooLarge indicates the body exceeded the configured limit.
	ErrUploadTooLarge = errors.New("history document exceeds size limit")

	// ErrInvalidUpload indicates a malformed multipart request.
	ErrInvalidUpload = errors.New("invalid upload request")
)

// writeUploadError maps an ingest or analytics failure to its HTTP form.
// Unknown errors are logged and hidden behind a generic 500.
func (h *Handler) writeUploadError(w http.ResponseWriter, r *http.Request, err error) {
	rw := NewResponseWriter(w, r)
	switch {
	case errors.Is(err, ErrUploadTooLarge):
		rw.PayloadTooLarge(h.cfg.Upload.MaxBytes)
	case errors.Is(err, ErrMissingUpload):
		rw.Error(http.StatusBadRequest, ErrCodeMissingFile,
			"Expected a multipart field \""+h.cfg.Upload.FormField+"\" or a non-empty request body")
	case errors.Is(err, ErrInvalidUpload):
		rw.BadRequest(err.Error())
	case errors.Is(err, history.ErrUnsupportedFormat), errors.Is(err, history.ErrMalformedDocument):
		rw.Unprocessable(err.Error())
	case errors.Is(err, entities.ErrModelUnavailable):
		logging.Ctx(r.Context()).Error().Err(err).Msg("Entity model unavailable")
		rw.ServiceUnavailable("Entity model unavailable")
	default:
		logging.Ctx(r.Context()).Error().Err(err).Msg("Error processing history upload")
		rw.InternalError("Internal Server Error")
	}
}
