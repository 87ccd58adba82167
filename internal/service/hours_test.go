// SPDX-FileCopyrightText: 2025 5C Menu contributors
// SPDX-License-Identifier: Apache-2.0

package service

import (
	"testing"
	"time"

	"github.com/go-gorp/gorp/v3"
	"github.com/sapcc/go-bits/assert"

	"github.com/fivecmenu/menud/internal/db"
	"github.com/fivecmenu/menud/internal/test"
)

// 2026-02-07 is a Saturday (day_of_week = 6).
var hoursTestNow = time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)

func makeHoursService(t *testing.T) (*HoursService, *gorp.DbMap) {
	t.Helper()
	dbm := test.InitDatabase(t)
	s := NewHoursService(dbm, time.UTC)
	s.TimeNow = func() time.Time { return hoursTestNow }
	return s, dbm
}

func addHours(t *testing.T, dbm *gorp.DbMap, hallID string, dow int, meal, start, end string) {
	t.Helper()
	err := dbm.Insert(&db.DiningHours{
		HallID: hallID, DayOfWeek: dow, Meal: meal,
		StartTime: start, EndTime: end, IsActive: true,
	})
	if err != nil {
		t.Fatal(err)
	}
}

func openMeals(halls []OpenHall) map[string]string {
	result := make(map[string]string, len(halls))
	for _, hall := range halls {
		result[hall.ID] = hall.CurrentMeal
	}
	return result
}

func TestGetOpenHallsRegularSchedule(t *testing.T) {
	s, dbm := makeHoursService(t)

	addHours(t, dbm, "hoch", 6, "lunch", "11:30", "13:00")    // open now
	addHours(t, dbm, "frary", 6, "brunch", "10:00", "11:30")  // already closed
	addHours(t, dbm, "collins", 6, "lunch", "12:00", "13:30") // opens right now
	addHours(t, dbm, "hoch", 5, "dinner", "11:00", "19:00")   // wrong weekday

	halls, err := s.GetOpenHalls()
	if err != nil {
		t.Fatal(err)
	}
	assert.DeepEqual(t, "open halls", openMeals(halls), map[string]string{
		"hoch":    "lunch",
		"collins": "lunch",
	})
}

func TestGetOpenHallsLatestMealWins(t *testing.T) {
	s, dbm := makeHoursService(t)

	// overlapping periods: continental breakfast still running, lunch started
	addHours(t, dbm, "hoch", 6, "breakfast", "08:00", "13:00")
	addHours(t, dbm, "hoch", 6, "lunch", "11:30", "13:00")

	halls, err := s.GetOpenHalls()
	if err != nil {
		t.Fatal(err)
	}
	assert.DeepEqual(t, "open halls", openMeals(halls), map[string]string{"hoch": "lunch"})
}

func TestGetOpenHallsOverrides(t *testing.T) {
	s, dbm := makeHoursService(t)
	meal := func(s string) *string { return &s }

	addHours(t, dbm, "hoch", 6, "lunch", "11:30", "13:00")
	addHours(t, dbm, "frary", 6, "lunch", "11:00", "13:00")
	addHours(t, dbm, "collins", 6, "lunch", "11:00", "13:00")

	// hoch: closed today (override without times)
	err := dbm.Insert(&db.DiningHoursOverride{
		HallID: "hoch", Date: hoursTestNow, Meal: meal("lunch"),
	})
	if err != nil {
		t.Fatal(err)
	}
	// frary: shortened lunch that has already ended
	start, end := "11:00", "11:45"
	err = dbm.Insert(&db.DiningHoursOverride{
		HallID: "frary", Date: hoursTestNow, Meal: meal("lunch"),
		StartTime: &start, EndTime: &end,
	})
	if err != nil {
		t.Fatal(err)
	}
	// oldenborg: special opening without any regular row
	specialStart, specialEnd := "11:00", "14:00"
	err = dbm.Insert(&db.DiningHoursOverride{
		HallID: "oldenborg", Date: hoursTestNow, Meal: meal("language_tables"),
		StartTime: &specialStart, EndTime: &specialEnd,
	})
	if err != nil {
		t.Fatal(err)
	}

	halls, err := s.GetOpenHalls()
	if err != nil {
		t.Fatal(err)
	}
	assert.DeepEqual(t, "open halls", openMeals(halls), map[string]string{
		"collins":   "lunch",
		"oldenborg": "language_tables",
	})
}

func TestGetOpenHallsEmptySchedule(t *testing.T) {
	s, _ := makeHoursService(t)

	halls, err := s.GetOpenHalls()
	if err != nil {
		t.Fatal(err)
	}
	assert.DeepEqual(t, "open halls", len(halls), 0)
}
