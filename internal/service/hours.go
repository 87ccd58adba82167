// SPDX-FileCopyrightText: 2025 5C Menu contributors
// SPDX-License-Identifier: Apache-2.0

package service

import (
	"fmt"
	"time"

	"github.com/go-gorp/gorp/v3"
	"github.com/sapcc/go-bits/sqlext"

	"github.com/fivecmenu/menud/internal/db"
)

// OpenHall is one entry in the /v1/open-now response.
type OpenHall struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	College     string  `json:"college"`
	Color       *string `json:"color"`
	CurrentMeal string  `json:"current_meal"`
}

// HoursService evaluates the dining hours schedule.
type HoursService struct {
	DB       *gorp.DbMap
	Location *time.Location
	// Usually time.Now, but can be changed inside unit tests.
	TimeNow func() time.Time
}

// NewHoursService creates a HoursService.
func NewHoursService(dbm *gorp.DbMap, loc *time.Location) *HoursService {
	return &HoursService{
		DB:       dbm,
		Location: loc,
		TimeNow:  time.Now,
	}
}

// timeOfDay renders a wall-clock time in the "HH:MM" format used by the
// dining_hours tables; zero-padded 24-hour values compare correctly as
// strings.
func timeOfDay(t time.Time) string {
	return t.Format("15:04")
}

type hoursKey struct {
	hallID string
	// mealIsNull distinguishes an override without a meal (whole-day record)
	// from one for the empty-string meal; only per-meal overrides can shadow
	// regular hours
	meal       string
	mealIsNull bool
}

var (
	selectOverridesQuery = sqlext.SimplifyWhitespace(`
		SELECT * FROM dining_hours_overrides WHERE date = $1
	`)
	selectRegularHoursQuery = sqlext.SimplifyWhitespace(`
		SELECT * FROM dining_hours WHERE day_of_week = $1 AND is_active ORDER BY hall_id, meal
	`)
)

// GetOpenHalls returns the halls that are open right now, each with the meal
// period currently being served. Date-specific overrides take precedence over
// the weekly schedule: an override without a start time closes the meal, one
// with times replaces the regular times, and one for a meal that has no
// regular row is a special opening. A hall open for several meals at once
// reports the meal that started last.
func (s *HoursService) GetOpenHalls() ([]OpenHall, error) {
	now := s.TimeNow().In(s.Location)
	currentTime := timeOfDay(now)
	// time.Weekday counts Sunday=0 .. Saturday=6, same as the schema
	currentDOW := int(now.Weekday())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var overrides []db.DiningHoursOverride
	_, err := s.DB.Select(&overrides, selectOverridesQuery, today)
	if err != nil {
		return nil, fmt.Errorf("load hours overrides: %w", err)
	}
	overrideMap := make(map[hoursKey]db.DiningHoursOverride, len(overrides))
	for _, o := range overrides {
		key := hoursKey{hallID: o.HallID, mealIsNull: o.Meal == nil}
		if o.Meal != nil {
			key.meal = *o.Meal
		}
		overrideMap[key] = o
	}

	var regularHours []db.DiningHours
	_, err = s.DB.Select(&regularHours, selectRegularHoursQuery, currentDOW)
	if err != nil {
		return nil, fmt.Errorf("load dining hours: %w", err)
	}

	type openEntry struct {
		meal  string
		start string
	}
	openEntries := make(map[string]openEntry)
	var hallOrder []string
	recordOpen := func(hallID, meal, start string) {
		existing, exists := openEntries[hallID]
		if !exists {
			hallOrder = append(hallOrder, hallID)
		}
		if !exists || start > existing.start {
			openEntries[hallID] = openEntry{meal: meal, start: start}
		}
	}

	seenKeys := make(map[hoursKey]bool)
	for _, row := range regularHours {
		key := hoursKey{hallID: row.HallID, meal: row.Meal}
		seenKeys[key] = true

		start, end := row.StartTime, row.EndTime
		if override, ok := overrideMap[key]; ok {
			if override.StartTime == nil {
				continue // explicitly closed for this meal
			}
			start = *override.StartTime
			end = ""
			if override.EndTime != nil {
				end = *override.EndTime
			}
		}

		if start != "" && end != "" && start <= currentTime && currentTime <= end {
			recordOpen(row.HallID, row.Meal, start)
		}
	}

	// special openings: overrides for meals without a regular-hours row
	for key, override := range overrideMap {
		if seenKeys[key] {
			continue
		}
		if override.StartTime == nil || override.EndTime == nil {
			continue // a closure without regular hours is a no-op
		}
		if *override.StartTime <= currentTime && currentTime <= *override.EndTime {
			meal := "special"
			if override.Meal != nil && *override.Meal != "" {
				meal = *override.Meal
			}
			recordOpen(key.hallID, meal, *override.StartTime)
		}
	}

	var hallRows []db.DiningHall
	_, err = s.DB.Select(&hallRows, `SELECT * FROM dining_halls`)
	if err != nil {
		return nil, fmt.Errorf("load dining halls: %w", err)
	}
	hallsByID := make(map[string]db.DiningHall, len(hallRows))
	for _, hall := range hallRows {
		hallsByID[hall.ID] = hall
	}

	results := make([]OpenHall, 0, len(hallOrder))
	for _, hallID := range hallOrder {
		hall, ok := hallsByID[hallID]
		if !ok {
			continue
		}
		entry := openEntries[hallID]
		results = append(results, OpenHall{
			ID:          hall.ID,
			Name:        hall.Name,
			College:     hall.College,
			Color:       hall.Color,
			CurrentMeal: entry.meal,
		})
	}
	return results, nil
}
