// Watchlens - Watch History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/watchlens

package history

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// contentCellClass is the exact class list of a watch entry cell. Sibling
// cells carrying extra classes (the right-aligned product cell) must not
// match.
const contentCellClass = "content-cell mdl-cell mdl-cell--6-col mdl-typography--body-1"

// ExtractHTML parses an activity page export in one pass.
func ExtractHTML(data []byte) ([]RawEvent, ExtractStats, error) {
	stats := ExtractStats{Format: FormatHTML}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, stats, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
	}

	events := make([]RawEvent, 0)
	doc.Find("div").Each(func(_ int, cell *goquery.Selection) {
		if !isContentCell(cell) {
			return
		}
		stats.Entries++

		ev, ok := extractCell(cell)
		if !ok {
			stats.SkippedNoLink++
			return
		}
		events = append(events, ev)
	})

	if stats.Entries == 0 && !hasMarkup(data) {
		return nil, stats, fmt.Errorf("%w: no html markup", ErrUnsupportedFormat)
	}

	stats.Extracted = len(events)
	return events, stats, nil
}

var markupTags = [][]byte{[]byte("<html"), []byte("<div")}

// hasMarkup reports whether data looks like an HTML page at all. goquery
// accepts arbitrary bytes, so plain text or a zip archive parses into an
// empty document.
func hasMarkup(data []byte) bool {
	lower := bytes.ToLower(data)
	for _, tag := range markupTags {
		if bytes.Contains(lower, tag) {
			return true
		}
	}
	return false
}

func isContentCell(s *goquery.Selection) bool {
	class, ok := s.Attr("class")
	if !ok {
		return false
	}
	return strings.Join(strings.Fields(class), " ") == contentCellClass
}

func extractCell(cell *goquery.Selection) (RawEvent, bool) {
	anchors := cell.Find("a")
	first := anchors.First()
	if first.Length() == 0 {
		return RawEvent{}, false
	}

	link := first.AttrOr("href", "")
	ev := RawEvent{
		VideoTitle: first.Text(),
		VideoLink:  link,
		VideoID:    VideoIDFromLink(link),
		RawTime:    FindMarkupTimestamp(cell.Text()),
		Source:     FormatHTML,
	}

	channel := anchors.FilterFunction(func(_ int, a *goquery.Selection) bool {
		return channelLinkRe.MatchString(a.AttrOr("href", ""))
	}).First()
	if channel.Length() > 0 {
		ev.ChannelLink = channel.AttrOr("href", "")
		ev.ChannelTitle = channel.Text()
		ev.ChannelID = ChannelIDFromLink(ev.ChannelLink)
	}

	return ev, true
}
