// Watchlens - Watch History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/watchlens

package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/tomtom215/watchlens/internal/entities"
	"github.com/tomtom215/watchlens/internal/metrics"
	"github.com/tomtom215/watchlens/internal/models"
)

// Report defaults.
const (
	DefaultTopChannels    = 10
	DefaultChannelMonths  = 1
	DefaultNounMonths     = 3
	DefaultTopNouns       = 10
	DefaultHourWeeks      = 3
	MetricsWeeksToKeep    = 12
	hoursPerDay           = 24
	weekDuration          = 7 * day
	operationTopChannels  = "top_channels"
	operationProperNouns  = "common_proper_nouns"
	operationVideosByWeek = "videos_per_week"
	operationVideosByHour = "videos_per_hour"
)

// TopChannels counts watches per channel over the last m calendar months
// and returns the n most watched. Ties keep first-seen order. Rows without a
// channel title are ignored.
func (s *Snapshot) TopChannels(n, m int) []models.ChannelCount {
	defer observe(operationTopChannels, time.Now())

	out := make([]models.ChannelCount, 0)
	if n <= 0 {
		return out
	}

	index := make(map[string]int)
	for _, e := range s.since(SubMonths(s.now, m)) {
		title := e.Channel()
		if title == "" {
			continue
		}
		if i, ok := index[title]; ok {
			out[i].Count++
			continue
		}
		index[title] = len(out)
		out = append(out, models.ChannelCount{ChannelTitle: title, Count: 1})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// CommonProperNounsWeighted extracts named entities from the titles watched
// over the last months calendar months and sums each entity's recency
// weight. Only PERSON, GPE, ORG, PRODUCT and EVENT entities count, minus the
// stoplist. Titles are analysed in batches; the result does not depend on
// the batch size. Ties keep first-seen order.
func (s *Snapshot) CommonProperNounsWeighted(ctx context.Context, months, topN int) ([]models.ProperNounWeight, error) {
	defer observe(operationProperNouns, time.Now())

	out := make([]models.ProperNounWeight, 0)
	if topN <= 0 {
		return out, nil
	}

	rows := s.since(SubMonths(s.now, months))
	titles := make([]string, len(rows))
	weights := make([]float64, len(rows))
	for i, e := range rows {
		titles[i] = e.VideoTitle
		weights[i] = RecencyWeight(s.now, *e.Timestamp)
	}

	index := make(map[string]int)
	for start := 0; start < len(titles); start += s.batchSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		end := min(start+s.batchSize, len(titles))

		found, err := s.extractor.Extract(ctx, titles[start:end])
		if err != nil {
			return nil, fmt.Errorf("extract entities for titles %d-%d: %w", start, end, err)
		}
		metrics.EntityBatches.Inc()
		s.logger.Debug().Int("batch_start", start).Int("batch_end", end).Msg("entity batch analysed")

		for j, ents := range found {
			if start+j >= end {
				break
			}
			w := weights[start+j]
			for _, ent := range ents {
				if !entities.IsProperNoun(ent.Label) || s.isStopword(ent.Text) {
					continue
				}
				if i, ok := index[ent.Text]; ok {
					out[i].WeightedCount += w
					continue
				}
				index[ent.Text] = len(out)
				out = append(out, models.ProperNounWeight{ProperNoun: ent.Text, WeightedCount: w})
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].WeightedCount > out[j].WeightedCount })
	if len(out) > topN {
		out = out[:topN]
	}
	return out, nil
}

// VideosWatchedPerWeek counts retained watches per Monday-anchored week,
// oldest week first.
func (s *Snapshot) VideosWatchedPerWeek() []models.WeekCount {
	defer observe(operationVideosByWeek, time.Now())

	counts := make(map[time.Time]int)
	for _, e := range s.events {
		counts[WeekStart(*e.Timestamp)]++
	}

	out := make([]models.WeekCount, 0, len(counts))
	for week, c := range counts {
		out = append(out, models.WeekCount{WeekStart: week, Count: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WeekStart.Before(out[j].WeekStart) })
	return out
}

// MostVideosHourOfDay counts watches per hour of day over the last n weeks.
// Hours without watches are omitted.
func (s *Snapshot) MostVideosHourOfDay(n int) []models.HourCount {
	defer observe(operationVideosByHour, time.Now())

	var counts [hoursPerDay]int
	for _, e := range s.since(s.now.Add(-time.Duration(n) * weekDuration)) {
		counts[e.Timestamp.Hour()]++
	}

	out := make([]models.HourCount, 0, hoursPerDay)
	for hour, c := range counts {
		if c > 0 {
			out = append(out, models.HourCount{Hour: hour, Count: c})
		}
	}
	return out
}

// Metrics computes all four reports with default parameters. The weekly
// series is cut to its most recent MetricsWeeksToKeep entries.
func (s *Snapshot) Metrics(ctx context.Context) (*models.Metrics, error) {
	nouns, err := s.CommonProperNounsWeighted(ctx, DefaultNounMonths, DefaultTopNouns)
	if err != nil {
		return nil, err
	}

	weeks := s.VideosWatchedPerWeek()
	if len(weeks) > MetricsWeeksToKeep {
		weeks = weeks[len(weeks)-MetricsWeeksToKeep:]
	}

	return &models.Metrics{
		TopChannels:       s.TopChannels(DefaultTopChannels, DefaultChannelMonths),
		CommonProperNouns: nouns,
		VideosPerWeek:     weeks,
		VideosPerHour:     s.MostVideosHourOfDay(DefaultHourWeeks),
	}, nil
}

func observe(operation string, start time.Time) {
	metrics.AnalyticsDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
