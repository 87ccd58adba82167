// SPDX-FileCopyrightText: 2025 5C Menu contributors
// SPDX-License-Identifier: Apache-2.0

// Package collector implements the menu acquisition path: run a vendor
// parser, persist the result, and fall back to the last-known-good snapshot
// when the vendor site is down or serves garbage.
package collector

import (
	"context"
	"time"

	"github.com/go-gorp/gorp/v3"
	"github.com/sapcc/go-bits/logg"

	"github.com/fivecmenu/menud/internal/core"
	"github.com/fivecmenu/menud/internal/datamodel"
	"github.com/fivecmenu/menud/internal/db"
)

// Collector provides the menu acquisition methods. The struct contains
// references to the database and a few other things; basically everything
// that needs to be replaced by a mock implementation for the collector's
// unit tests.
type Collector struct {
	DB *gorp.DbMap
	// Usually logg.Error, but can be changed inside unit tests.
	LogError func(msg string, args ...any)
	// Usually time.Now, but can be changed inside unit tests.
	TimeNow func() time.Time
}

// NewCollector creates a Collector instance.
func NewCollector(dbm *gorp.DbMap) *Collector {
	return &Collector{
		DB:       dbm,
		LogError: logg.Error,
		TimeNow:  time.Now,
	}
}

// GetWithFallback fetches a menu through the given parser. On success the
// menu is persisted as a snapshot and returned with isStale = false. When the
// parser errors out (or the vendor serves data that fails validation), the
// most recent valid snapshot is returned with isStale = true instead; if no
// snapshot exists either, the menu is nil.
//
// The returned timestamp says when the returned data was fetched from the
// vendor, and is nil only when the menu is nil.
func (c *Collector) GetWithFallback(ctx context.Context, parser core.MenuParser, targetDate time.Time) (menu *core.Menu, isStale bool, fetchedAt *time.Time, err error) {
	hallID := parser.HallID()
	startedAt := c.TimeNow()

	status := db.RunStatusSuccess
	errorMessage := ""

	fresh, parseErr := core.FetchAndParse(ctx, parser, targetDate)
	switch {
	case parseErr != nil:
		status = db.RunStatusError
		errorMessage = parseErr.Error()
	case fresh == nil:
		status = db.RunStatusNoData
	default:
		now := c.TimeNow()
		persistErr := datamodel.PersistMenu(c.DB, *fresh, now)
		if persistErr != nil {
			// the snapshot store only feeds the fallback path; a broken store
			// must not demote a successful live parse
			c.LogError("failed to persist menu for %s: %s", hallID, persistErr.Error())
		}
		c.recordRun(hallID, targetDate, startedAt, db.RunStatusSuccess, "")
		return fresh, false, &now, nil
	}

	c.recordRun(hallID, targetDate, startedAt, status, errorMessage)

	stored, storedFetchedAt, err := datamodel.LoadLatestMenu(c.DB, hallID, targetDate)
	if err != nil {
		return nil, true, nil, err
	}
	if stored != nil {
		logg.Info("serving fallback menu for %s on %s (fetched at %s)",
			hallID, targetDate.Format(core.DateFormat), storedFetchedAt.Format(time.RFC3339))
	}
	return stored, true, storedFetchedAt, nil
}

// recordRun is best-effort: a full parser_runs table must never take down the
// menu path.
func (c *Collector) recordRun(hallID string, targetDate, startedAt time.Time, status, errorMessage string) {
	parserRunsCounter.WithLabelValues(hallID, status).Inc()
	err := datamodel.RecordParserRun(c.DB, hallID, targetDate, startedAt, c.TimeNow().Sub(startedAt), status, errorMessage)
	if err != nil {
		c.LogError("failed to record parser run for %s: %s", hallID, err.Error())
	}
}
