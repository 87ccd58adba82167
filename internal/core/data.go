// SPDX-FileCopyrightText: 2025 5C Menu contributors
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"strings"
	"time"
)

// Item is a single dish on a station's menu. Items are value types; once a
// parser has produced them, nothing mutates them. Two items are the same dish
// when their names match case-insensitively.
type Item struct {
	Name string   `json:"name"`
	Tags []string `json:"tags"`
}

// Station is a counter within a meal (e.g. "Grill", "Entree").
type Station struct {
	Name  string `json:"name"`
	Items []Item `json:"items"`
}

// Meal is one meal period of a menu, e.g. "lunch". Parsers always lowercase
// the period.
type Meal struct {
	Period   string
	Stations []Station
}

// Menu is a full parsed menu for one hall on one date, with meal periods in
// the order the vendor page listed them.
type Menu struct {
	HallID string
	Date   time.Time
	Meals  []Meal
}

// MealNamed returns the meal with the given period (case-insensitive match),
// or false if the menu does not contain it.
func (m Menu) MealNamed(period string) (Meal, bool) {
	for _, meal := range m.Meals {
		if strings.EqualFold(meal.Period, period) {
			return meal, true
		}
	}
	return Meal{}, false
}

// Meal periods used by the consortium's halls. Parsers do not restrict
// periods to this set; it exists for the hours schedule and for seeding.
const (
	MealBreakfast = "breakfast"
	MealBrunch    = "brunch"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
	MealLateNight = "late_night"
)

// DateFormat is the wire format for menu dates throughout the API.
const DateFormat = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateFormat, s)
}
