// SPDX-FileCopyrightText: 2025 5C Menu contributors
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"context"
	"time"

	"github.com/sapcc/go-bits/logg"
)

// MenuParser is the contract shared by all vendor parsers. Implementations
// are cheap to construct; the menu service builds a fresh one per request.
//
// The FetchRaw/Parse split is load-bearing: FetchRaw owns all network I/O,
// Parse is a pure function that unit tests run against saved fixture files.
type MenuParser interface {
	// HallID returns the hall this parser instance was built for.
	HallID() string

	// FetchRaw retrieves the raw HTML/JSON for the given date from the
	// vendor site. A non-2xx response is an error; redirects are followed.
	FetchRaw(ctx context.Context, targetDate time.Time) (string, error)

	// Parse transforms raw vendor content into the uniform menu model.
	// No I/O happens here.
	Parse(raw string, targetDate time.Time) (Menu, error)

	// Validate reports whether a parsed menu is structurally usable:
	// at least one meal, and each meal has at least MinStationCount stations.
	Validate(menu Menu) bool

	// MinStationCount is the per-meal station minimum used by Validate.
	MinStationCount() int
}

// FetchAndParse runs the full fetch -> parse -> validate pipeline for a
// parser. Fetch and parse failures are returned as errors; a menu that
// parses but fails validation yields (nil, nil). Callers treat both outcomes
// as "no live data" — the error value only feeds run records and logs, it
// never travels to an API client.
func FetchAndParse(ctx context.Context, parser MenuParser, targetDate time.Time) (*Menu, error) {
	raw, err := parser.FetchRaw(ctx, targetDate)
	if err != nil {
		logg.Info("fetch failed for %s on %s: %s", parser.HallID(), targetDate.Format(DateFormat), err.Error())
		return nil, err
	}

	menu, err := parser.Parse(raw, targetDate)
	if err != nil {
		logg.Info("parse failed for %s on %s: %s", parser.HallID(), targetDate.Format(DateFormat), err.Error())
		return nil, err
	}

	if !parser.Validate(menu) {
		return nil, nil
	}
	return &menu, nil
}

// ValidateMenu implements the shared Validate behavior; vendor parsers embed
// it via their common base so that the warning logs are uniform.
func ValidateMenu(hallID string, menu Menu, minStations int) bool {
	if len(menu.Meals) == 0 {
		logg.Info("validation failed for %s: no meals", hallID)
		return false
	}
	for _, meal := range menu.Meals {
		if len(meal.Stations) < minStations {
			logg.Info("validation failed for %s/%s: %d stations < %d minimum",
				hallID, meal.Period, len(meal.Stations), minStations)
			return false
		}
	}
	return true
}
