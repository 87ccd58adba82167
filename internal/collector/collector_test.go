// SPDX-FileCopyrightText: 2025 5C Menu contributors
// SPDX-License-Identifier: Apache-2.0

package collector

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/go-gorp/gorp/v3"
	"github.com/sapcc/go-bits/assert"
	"github.com/sapcc/go-bits/easypg"

	"github.com/fivecmenu/menud/internal/core"
	"github.com/fivecmenu/menud/internal/datamodel"
	"github.com/fivecmenu/menud/internal/db"
	"github.com/fivecmenu/menud/internal/test"
)

func TestMain(m *testing.M) {
	easypg.WithTestDB(m, func() int { return m.Run() })
}

var (
	testDate = time.Date(2026, 2, 7, 0, 0, 0, 0, time.UTC)
	testNow  = time.Date(2026, 2, 7, 11, 45, 0, 0, time.UTC)

	usableMenu = core.Menu{
		HallID: "hoch",
		Date:   testDate,
		Meals: []core.Meal{
			{Period: "lunch", Stations: []core.Station{
				{Name: "Grill", Items: []core.Item{{Name: "Burger", Tags: []string{}}}},
			}},
		},
	}
)

func makeCollector(t *testing.T) (*Collector, *gorp.DbMap) {
	t.Helper()
	dbm := test.InitDatabase(t)
	c := NewCollector(dbm)
	c.TimeNow = func() time.Time { return testNow }
	c.LogError = func(msg string, args ...any) {
		t.Helper()
		t.Fatalf(msg, args...)
	}
	return c, dbm
}

func lastRunStatus(t *testing.T, dbm *gorp.DbMap) (status string, errorMessage *string) {
	t.Helper()
	var runs []db.ParserRun
	_, err := dbm.Select(&runs, `SELECT * FROM parser_runs ORDER BY id`)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) == 0 {
		t.Fatal("expected at least one parser run")
	}
	run := runs[len(runs)-1]
	return run.Status, run.ErrorMessage
}

func TestGetWithFallbackFreshData(t *testing.T) {
	c, dbm := makeCollector(t)
	parser := &test.Parser{Hall: "hoch", Menu: usableMenu}

	menu, isStale, fetchedAt, err := c.GetWithFallback(context.Background(), parser, testDate)
	if err != nil {
		t.Fatal(err)
	}
	assert.DeepEqual(t, "is_stale", isStale, false)
	assert.DeepEqual(t, "fetched_at", fetchedAt.UTC(), testNow)
	assert.DeepEqual(t, "meals", menu.Meals, usableMenu.Meals)

	status, _ := lastRunStatus(t, dbm)
	assert.DeepEqual(t, "run status", status, db.RunStatusSuccess)

	// the fresh menu got persisted for later fallback use
	stored, _, err := datamodel.LoadLatestMenu(dbm, "hoch", testDate)
	if err != nil {
		t.Fatal(err)
	}
	assert.DeepEqual(t, "stored meals", stored.Meals, usableMenu.Meals)
}

func TestGetWithFallbackServesSnapshotOnError(t *testing.T) {
	c, dbm := makeCollector(t)

	snapshotFetchedAt := testNow.Add(-2 * time.Hour)
	err := datamodel.PersistMenu(dbm, usableMenu, snapshotFetchedAt)
	if err != nil {
		t.Fatal(err)
	}

	parser := &test.Parser{Hall: "hoch", FetchErr: errors.New("HTTP 503")}
	menu, isStale, fetchedAt, err := c.GetWithFallback(context.Background(), parser, testDate)
	if err != nil {
		t.Fatal(err)
	}
	assert.DeepEqual(t, "is_stale", isStale, true)
	assert.DeepEqual(t, "fetched_at", fetchedAt.UTC(), snapshotFetchedAt)
	assert.DeepEqual(t, "meals", menu.Meals, usableMenu.Meals)

	status, errorMessage := lastRunStatus(t, dbm)
	assert.DeepEqual(t, "run status", status, db.RunStatusError)
	assert.DeepEqual(t, "run error message", *errorMessage, "HTTP 503")
}

func TestGetWithFallbackNoDataAnywhere(t *testing.T) {
	c, dbm := makeCollector(t)

	// a parse error without any stored snapshot leaves nothing to serve
	parser := &test.Parser{Hall: "hoch", ParseErr: errors.New("could not find menu data")}
	menu, isStale, fetchedAt, err := c.GetWithFallback(context.Background(), parser, testDate)
	if err != nil {
		t.Fatal(err)
	}
	assert.DeepEqual(t, "is_stale", isStale, true)
	if menu != nil || fetchedAt != nil {
		t.Errorf("expected no menu, got %+v", menu)
	}

	status, _ := lastRunStatus(t, dbm)
	assert.DeepEqual(t, "run status", status, db.RunStatusError)
}

func TestGetWithFallbackValidationFailure(t *testing.T) {
	c, dbm := makeCollector(t)

	// the parser returns a structurally empty menu: not an error, but not
	// usable either
	parser := &test.Parser{Hall: "hoch", Menu: core.Menu{HallID: "hoch", Date: testDate}}
	menu, isStale, _, err := c.GetWithFallback(context.Background(), parser, testDate)
	if err != nil {
		t.Fatal(err)
	}
	assert.DeepEqual(t, "is_stale", isStale, true)
	if menu != nil {
		t.Errorf("expected no menu, got %+v", menu)
	}

	status, errorMessage := lastRunStatus(t, dbm)
	assert.DeepEqual(t, "run status", status, db.RunStatusNoData)
	if errorMessage != nil {
		t.Errorf("expected no error message, got %q", *errorMessage)
	}
}

func TestGetWithFallbackPersistFailureKeepsFreshResult(t *testing.T) {
	dbm := test.InitDatabase(t)
	c := NewCollector(dbm)
	c.TimeNow = func() time.Time { return testNow }
	var logged []string
	c.LogError = func(msg string, args ...any) {
		logged = append(logged, fmt.Sprintf(msg, args...))
	}

	// the menu claims a hall without a dining_halls row, so the snapshot
	// insert hits a foreign key violation although the parse itself succeeded
	badMenu := usableMenu
	badMenu.HallID = "ghost"
	parser := &test.Parser{Hall: "hoch", Menu: badMenu}

	menu, isStale, fetchedAt, err := c.GetWithFallback(context.Background(), parser, testDate)
	if err != nil {
		t.Fatal(err)
	}

	// a broken snapshot store must not demote the successful live parse
	assert.DeepEqual(t, "is_stale", isStale, false)
	assert.DeepEqual(t, "fetched_at", fetchedAt.UTC(), testNow)
	assert.DeepEqual(t, "meals", menu.Meals, usableMenu.Meals)
	if len(logged) != 1 {
		t.Fatalf("expected 1 logged error, got %#v", logged)
	}

	status, errorMessage := lastRunStatus(t, dbm)
	assert.DeepEqual(t, "run status", status, db.RunStatusSuccess)
	if errorMessage != nil {
		t.Errorf("expected no error message, got %q", *errorMessage)
	}

	count, err := dbm.SelectInt(`SELECT COUNT(*) FROM menus`)
	if err != nil {
		t.Fatal(err)
	}
	assert.DeepEqual(t, "stored snapshot count", count, int64(0))
}

func TestGetWithFallbackStaleSnapshotOutlivesBadRun(t *testing.T) {
	c, dbm := makeCollector(t)

	// day 1: fresh data
	parser := &test.Parser{Hall: "hoch", Menu: usableMenu}
	_, _, _, err := c.GetWithFallback(context.Background(), parser, testDate)
	if err != nil {
		t.Fatal(err)
	}

	// later: the vendor starts erroring, but the snapshot still serves
	parser.FetchErr = errors.New("connection refused")
	for range 3 {
		menu, isStale, _, err := c.GetWithFallback(context.Background(), parser, testDate)
		if err != nil {
			t.Fatal(err)
		}
		assert.DeepEqual(t, "is_stale", isStale, true)
		assert.DeepEqual(t, "meals", menu.Meals, usableMenu.Meals)
	}
	assert.DeepEqual(t, "fetch count", parser.FetchCount, 4)
}
