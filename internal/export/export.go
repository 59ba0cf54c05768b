// Watchlens - Watch History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/watchlens

// Package export writes the canonical watch table and report tables to CSV
// or Parquet.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/tomtom215/watchlens/internal/history"
	"github.com/tomtom215/watchlens/internal/models"
)

// ErrUnknownExtension is returned by WriteFile for paths that are neither
// .csv nor .parquet.
var ErrUnknownExtension = errors.New("unknown export extension")

// WatchRecord is the Parquet row layout of the canonical table.
type WatchRecord struct {
	VideoID      *string    `parquet:"video_id,optional,snappy"`
	VideoTitle   string     `parquet:"video_title,snappy"`
	VideoLink    string     `parquet:"video_link,snappy"`
	ChannelLink  *string    `parquet:"channel_link,optional,snappy"`
	ChannelID    *string    `parquet:"channel_id,optional,snappy"`
	ChannelTitle *string    `parquet:"channel_title,optional,snappy"`
	UserID       string     `parquet:"user_id,snappy"`
	Timestamp    *time.Time `parquet:"timestamp,optional,snappy"`
}

// WatchRecords converts table rows to Parquet records.
func WatchRecords(table *history.Table) []WatchRecord {
	out := make([]WatchRecord, 0, table.Len())
	table.Each(func(_ int, e models.WatchEvent) {
		out = append(out, WatchRecord(e))
	})
	return out
}

// WriteCSV writes a header row followed by the table rows.
func WriteCSV(w io.Writer, t models.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("write csv rows: %w", err)
	}
	return nil
}

// WatchTable renders the canonical table as strings.
func WatchTable(table *history.Table) models.Table {
	t := models.Table{Header: table.Columns(), Rows: make([][]string, 0, table.Len())}
	table.Each(func(_ int, e models.WatchEvent) {
		t.Rows = append(t.Rows, e.Record())
	})
	return t
}

// WriteWatchParquet writes the canonical table as a Parquet file body.
func WriteWatchParquet(w io.Writer, table *history.Table) error {
	writer := parquet.NewGenericWriter[WatchRecord](w)
	if _, err := writer.Write(WatchRecords(table)); err != nil {
		_ = writer.Close()
		return fmt.Errorf("write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return nil
}

// WriteFile exports the canonical table to path, picking the encoding from
// the extension.
func WriteFile(path string, table *history.Table) (err error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".csv" && ext != ".parquet" {
		return fmt.Errorf("%w: %q", ErrUnknownExtension, ext)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if ext == ".csv" {
		return WriteCSV(file, WatchTable(table))
	}
	return WriteWatchParquet(file, table)
}
