// Watchlens - Watch History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/watchlens

package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	uploadIDKey  contextKey = "upload_id"
)

// GenerateRequestID returns a fresh request ID.
func GenerateRequestID() string {
	return uuid.New().String()
}

// ContextWithRequestID returns a copy of ctx carrying the HTTP request ID.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext returns the request ID, or "" when absent.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// ContextWithUploadID returns a copy of ctx carrying the opaque user id
// assigned to one uploaded history document.
func ContextWithUploadID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, uploadIDKey, id)
}

// UploadIDFromContext returns the upload ID, or "" when absent.
func UploadIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(uploadIDKey).(string); ok {
		return id
	}
	return ""
}

// Ctx returns the global logger enriched with request_id and upload_id
// when ctx carries them.
//
//	logging.Ctx(ctx).Info().Msg("metrics computed")
func Ctx(ctx context.Context) *zerolog.Logger {
	logCtx := Logger().With()
	if id := RequestIDFromContext(ctx); id != "" {
		logCtx = logCtx.Str("request_id", id)
	}
	if id := UploadIDFromContext(ctx); id != "" {
		logCtx = logCtx.Str("upload_id", id)
	}
	l := logCtx.Logger()
	return &l
}
