// Watchlens - Watch History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/watchlens

package api

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/watchlens/internal/config"
	"github.com/tomtom215/watchlens/internal/entities"
)

var testNow = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

// historyJSON holds three watches inside the 30-day window and one older.
const historyJSON = `[
  {"header": "YouTube", "title": "Watched Paris trip", "titleUrl": "https://www.youtube.com/watch?v=v1",
   "subtitles": [{"name": "Travel", "url": "https://www.youtube.com/channel/UCtravel"}],
   "time": "2024-06-14T10:00:00Z"},
  {"header": "YouTube", "title": "Watched Paris food", "titleUrl": "https://www.youtube.com/watch?v=v2",
   "subtitles": [{"name": "Travel", "url": "https://www.youtube.com/channel/UCtravel"}],
   "time": "2024-06-13T10:30:00Z"},
  {"header": "YouTube", "title": "Watched Coding live", "titleUrl": "https://www.youtube.com/watch?v=v3",
   "subtitles": [{"name": "Dev", "url": "https://www.youtube.com/channel/UCdev"}],
   "time": "2024-06-10T22:00:00Z"},
  {"header": "YouTube", "title": "Watched Paris archive", "titleUrl": "https://www.youtube.com/watch?v=v4",
   "subtitles": [{"name": "Old", "url": "https://www.youtube.com/channel/UCold"}],
   "time": "2024-04-01T09:00:00Z"}
]`

const historyHTML = `<html><body><div class="mdl-grid">` +
	`<div class="content-cell mdl-cell mdl-cell--6-col mdl-typography--body-1">Watched <a href="https://www.youtube.com/watch?v=h1">Paris at night</a><br>` +
	`<a href="https://www.youtube.com/channel/UCtravel">Travel</a><br>Jun 14, 2024, 8:15:00 PM IST<br></div>` +
	`</div></body></html>`

// wordExtractor tags every occurrence of known words.
type wordExtractor struct {
	words map[string]string
	err   error
}

func (f *wordExtractor) Extract(_ context.Context, texts []string) ([][]entities.Entity, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]entities.Entity, len(texts))
	for i, text := range texts {
		for _, word := range strings.Fields(text) {
			if label, ok := f.words[word]; ok {
				out[i] = append(out[i], entities.Entity{Text: word, Label: label})
			}
		}
	}
	return out, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Upload: config.UploadConfig{MaxBytes: 1 << 20, FormField: "file"},
		Analytics: config.AnalyticsConfig{
			RetentionDays: 30,
			BatchSize:     2,
			MemoSize:      16,
		},
		Entities: config.EntitiesConfig{Model: "test"},
		Security: config.SecurityConfig{RateLimitDisabled: true},
	}
}

func newTestRouter(t *testing.T, cfg *config.Config, ext entities.Extractor) (*Handler, http.Handler) {
	t.Helper()
	if ext == nil {
		ext = &wordExtractor{words: map[string]string{"Paris": entities.LabelGPE}}
	}
	h := NewHandler(cfg, ext, WithClock(fixedClock))
	return h, NewRouter(h, NewChiMiddleware(NewChiMiddlewareConfig(cfg.Security))).SetupChi()
}

func multipartBody(t *testing.T, field, content string) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, "watch-history")
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := io.WriteString(fw, content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func upload(t *testing.T, router http.Handler, path, content string) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartBody(t, "file", content)
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
	Meta    *APIMeta        `json:"meta"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("Content-Type = %q, want application/json", ct)
	}
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v\n%s", err, rec.Body.String())
	}
	return env
}

func decodeData(t *testing.T, env envelope, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, v); err != nil {
		t.Fatalf("decode data: %v\n%s", err, env.Data)
	}
}

var errBoom = errors.New("boom")
