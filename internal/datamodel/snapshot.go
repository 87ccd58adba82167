// SPDX-FileCopyrightText: 2025 5C Menu contributors
// SPDX-License-Identifier: Apache-2.0

// Package datamodel contains the business logic for reading and writing menu
// snapshots and parser run records.
package datamodel

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-gorp/gorp/v3"
	"github.com/sapcc/go-bits/sqlext"

	"github.com/fivecmenu/menud/internal/core"
	"github.com/fivecmenu/menud/internal/db"
)

var persistMenuQuery = sqlext.SimplifyWhitespace(`
	INSERT INTO menus (hall_id, date, meal, stations_json, fetched_at, is_valid)
	VALUES ($1, $2, $3, $4, $5, TRUE)
	ON CONFLICT (hall_id, date, meal)
	DO UPDATE SET stations_json = EXCLUDED.stations_json, fetched_at = EXCLUDED.fetched_at, is_valid = TRUE
`)

// PersistMenu stores a parsed menu for later fallback use, one row per meal.
// Existing rows for the same hall/date/meal are overwritten and revalidated.
// All meals commit together; a failure on any meal leaves the previous
// snapshot set untouched.
func PersistMenu(dbm *gorp.DbMap, menu core.Menu, fetchedAt time.Time) error {
	tx, err := dbm.Begin()
	if err != nil {
		return err
	}
	defer sqlext.RollbackUnlessCommitted(tx)

	for _, meal := range menu.Meals {
		buf, err := json.Marshal(meal.Stations)
		if err != nil {
			return fmt.Errorf("serialize stations for %s/%s: %w", menu.HallID, meal.Period, err)
		}
		_, err = tx.Exec(persistMenuQuery, menu.HallID, menu.Date, meal.Period, string(buf), fetchedAt)
		if err != nil {
			return fmt.Errorf("persist menu for %s/%s: %w", menu.HallID, meal.Period, err)
		}
	}
	return tx.Commit()
}

var loadLatestMenuQuery = sqlext.SimplifyWhitespace(`
	SELECT meal, stations_json, fetched_at FROM menus
	WHERE hall_id = $1 AND date = $2 AND is_valid
	ORDER BY fetched_at DESC
`)

// LoadLatestMenu reconstructs the most recent valid menu for a hall and date
// from stored snapshots. When several snapshots exist for the same meal, the
// newest one wins; the returned timestamp is the newest FetchedAt across the
// selected rows. Returns (nil, nil, nil) when nothing is stored.
func LoadLatestMenu(dbi db.Interface, hallID string, targetDate time.Time) (*core.Menu, *time.Time, error) {
	var (
		meals           []core.Meal
		seenMeals       = make(map[string]bool)
		latestFetchedAt *time.Time
	)

	err := sqlext.ForeachRow(dbi, loadLatestMenuQuery, []any{hallID, targetDate}, func(rows *sql.Rows) error {
		var (
			meal         string
			stationsJSON string
			fetchedAt    time.Time
		)
		err := rows.Scan(&meal, &stationsJSON, &fetchedAt)
		if err != nil {
			return err
		}

		if seenMeals[meal] {
			return nil
		}
		seenMeals[meal] = true

		if latestFetchedAt == nil || fetchedAt.After(*latestFetchedAt) {
			latestFetchedAt = &fetchedAt
		}

		var stations []core.Station
		err = json.Unmarshal([]byte(stationsJSON), &stations)
		if err != nil {
			return fmt.Errorf("deserialize stations for %s/%s: %w", hallID, meal, err)
		}
		meals = append(meals, core.Meal{Period: meal, Stations: stations})
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	if len(meals) == 0 {
		return nil, nil, nil
	}
	return &core.Menu{HallID: hallID, Date: targetDate, Meals: meals}, latestFetchedAt, nil
}

var invalidateMenusQuery = sqlext.SimplifyWhitespace(`
	UPDATE menus SET is_valid = FALSE WHERE hall_id = $1 AND date = $2
`)

// InvalidateMenus marks all stored snapshots for a hall and date as unusable
// for fallback, e.g. after the hall reports bogus data.
func InvalidateMenus(dbi db.Interface, hallID string, targetDate time.Time) error {
	_, err := dbi.Exec(invalidateMenusQuery, hallID, targetDate)
	return err
}

// SeedDiningHalls ensures that the dining_halls table contains a row for each
// hall in the registry. Existing rows are updated in place, so renames take
// effect on restart.
func SeedDiningHalls(dbi db.Interface) error {
	query := sqlext.SimplifyWhitespace(`
		INSERT INTO dining_halls (id, name, college, vendor, color) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, college = EXCLUDED.college,
			vendor = EXCLUDED.vendor, color = EXCLUDED.color
	`)
	var errs []error
	for _, hall := range core.AllHalls() {
		_, err := dbi.Exec(query, hall.ID, hall.Name, hall.College, string(hall.Vendor), hall.Color)
		if err != nil {
			errs = append(errs, fmt.Errorf("seed dining hall %s: %w", hall.ID, err))
		}
	}
	return errors.Join(errs...)
}
