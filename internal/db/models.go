// SPDX-FileCopyrightText: 2025 5C Menu contributors
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"time"

	"github.com/go-gorp/gorp/v3"
)

// MenuSnapshot contains a record from the `menus` table. Each record stores
// one meal of one hall on one date; the station/item hierarchy is kept as a
// JSON document in StationsJSON.
type MenuSnapshot struct {
	ID           int64     `db:"id"`
	HallID       string    `db:"hall_id"`
	Date         time.Time `db:"date"`
	Meal         string    `db:"meal"`
	StationsJSON string    `db:"stations_json"`
	FetchedAt    time.Time `db:"fetched_at"`
	IsValid      bool      `db:"is_valid"`
}

// Status values for the `parser_runs` table.
const (
	RunStatusSuccess = "success"
	RunStatusError   = "error"
	RunStatusNoData  = "no_data"
)

// ParserRun contains a record from the `parser_runs` table.
type ParserRun struct {
	ID           int64      `db:"id"`
	HallID       string     `db:"hall_id"`
	StartedAt    time.Time  `db:"started_at"`
	DurationMS   *int64     `db:"duration_ms"`   //pointer type to allow for NULL value
	Status       string     `db:"status"`
	ErrorMessage *string    `db:"error_message"` //pointer type to allow for NULL value
	MenuDate     *time.Time `db:"menu_date"`     //pointer type to allow for NULL value
}

// DiningHall contains a record from the `dining_halls` table.
type DiningHall struct {
	ID      string  `db:"id"`
	Name    string  `db:"name"`
	College string  `db:"college"`
	Vendor  string  `db:"vendor"`
	Color   *string `db:"color"` //pointer type to allow for NULL value
}

// DiningHours contains a record from the `dining_hours` table. Times are
// stored as "HH:MM" strings; with zero-padded 24-hour values, lexicographic
// comparison matches chronological comparison.
type DiningHours struct {
	ID        int64  `db:"id"`
	HallID    string `db:"hall_id"`
	DayOfWeek int    `db:"day_of_week"` // 0=Sunday .. 6=Saturday
	Meal      string `db:"meal"`
	StartTime string `db:"start_time"`
	EndTime   string `db:"end_time"`
	IsActive  bool   `db:"is_active"`
}

// DiningHoursOverride contains a record from the `dining_hours_overrides`
// table. A record with NULL StartTime means the meal is closed on that date;
// a record with times overrides the regular hours (or adds a special opening
// when no regular hours exist).
type DiningHoursOverride struct {
	ID        int64      `db:"id"`
	HallID    string     `db:"hall_id"`
	Date      time.Time  `db:"date"`
	Meal      *string    `db:"meal"`       //pointer type to allow for NULL value
	StartTime *string    `db:"start_time"` //pointer type to allow for NULL value
	EndTime   *string    `db:"end_time"`   //pointer type to allow for NULL value
	Reason    *string    `db:"reason"`     //pointer type to allow for NULL value
}

// initGorp is used by Init() to setup the ORM part of the database connection.
func initGorp(db *gorp.DbMap) {
	db.AddTableWithName(DiningHall{}, "dining_halls").SetKeys(false, "id")
	db.AddTableWithName(MenuSnapshot{}, "menus").SetKeys(true, "id")
	db.AddTableWithName(ParserRun{}, "parser_runs").SetKeys(true, "id")
	db.AddTableWithName(DiningHours{}, "dining_hours").SetKeys(true, "id")
	db.AddTableWithName(DiningHoursOverride{}, "dining_hours_overrides").SetKeys(true, "id")
}
