// Watchlens - Watch History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/watchlens

package api

import (
	"net/http"
	"strconv"

	"github.com/tomtom215/watchlens/internal/analytics"
	"github.com/tomtom215/watchlens/internal/validation"
)

// topChannelsDefaultMonths is the window /top_channels has always used; the
// engine default is one month.
const topChannelsDefaultMonths = 3

type topChannelsParams struct {
	N int `query:"n" validate:"min=1,max=1000"`
	M int `query:"m" validate:"min=1,max=120"`
}

type properNounsParams struct {
	Months int `query:"months" validate:"min=1,max=120"`
	TopN   int `query:"top_n" validate:"min=1,max=1000"`
}

type videosPerWeekParams struct {
	// Weeks keeps only the most recent weeks; 0 returns every week.
	Weeks int `query:"weeks" validate:"omitempty,min=1,max=520"`
}

type videosPerHourParams struct {
	// N is the look-back window in weeks.
	N int `query:"n" validate:"min=1,max=520"`
}

// paramError is a query parameter that is not an integer.
type paramError struct {
	name  string
	value string
}

func (e *paramError) Error() string {
	return "query parameter " + e.name + " must be an integer, got \"" + e.value + "\""
}

// queryInt reads an integer query parameter, returning def when absent.
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &paramError{name: name, value: raw}
	}
	return v, nil
}

// bindParams fills and validates params. On failure it writes a 400 and
// returns false.
func bindParams(w http.ResponseWriter, r *http.Request, params interface{}, fill func() error) bool {
	if err := fill(); err != nil {
		NewResponseWriter(w, r).BadRequest(err.Error())
		return false
	}
	if verr := validation.ValidateStruct(params); verr != nil {
		apiErr := verr.ToAPIError()
		NewResponseWriter(w, r).ValidationError(apiErr.Code, apiErr.Message, apiErr.Details)
		return false
	}
	return true
}

func parseTopChannels(w http.ResponseWriter, r *http.Request) (topChannelsParams, bool) {
	var p topChannelsParams
	ok := bindParams(w, r, &p, func() (err error) {
		if p.N, err = queryInt(r, "n", analytics.DefaultTopChannels); err != nil {
			return err
		}
		p.M, err = queryInt(r, "m", topChannelsDefaultMonths)
		return err
	})
	return p, ok
}

func parseProperNouns(w http.ResponseWriter, r *http.Request) (properNounsParams, bool) {
	var p properNounsParams
	ok := bindParams(w, r, &p, func() (err error) {
		if p.Months, err = queryInt(r, "months", analytics.DefaultNounMonths); err != nil {
			return err
		}
		p.TopN, err = queryInt(r, "top_n", analytics.DefaultTopNouns)
		return err
	})
	return p, ok
}

func parseVideosPerWeek(w http.ResponseWriter, r *http.Request) (videosPerWeekParams, bool) {
	var p videosPerWeekParams
	ok := bindParams(w, r, &p, func() (err error) {
		p.Weeks, err = queryInt(r, "weeks", 0)
		return err
	})
	return p, ok
}

func parseVideosPerHour(w http.ResponseWriter, r *http.Request) (videosPerHourParams, bool) {
	var p videosPerHourParams
	ok := bindParams(w, r, &p, func() (err error) {
		p.N, err = queryInt(r, "n", analytics.DefaultHourWeeks)
		return err
	})
	return p, ok
}
