// SPDX-FileCopyrightText: 2025 5C Menu contributors
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"testing"

	"github.com/sapcc/go-bits/assert"
)

func TestNormalizeDietaryTags(t *testing.T) {
	// vendor labels map case-insensitively, the result is sorted and deduped
	result := NormalizeDietaryTags([]string{"Vegetarian", "isvegan", "VEGAN", "In Balance"})
	assert.DeepEqual(t, "normalized tags", result, []string{"balanced", "vegan", "vegetarian"})

	// unknown labels are dropped, never passed through
	result = NormalizeDietaryTags([]string{"Chef's Pick", "Seasonal", "halal"})
	assert.DeepEqual(t, "normalized tags", result, []string{"halal"})

	assert.DeepEqual(t, "empty input", NormalizeDietaryTags(nil), []string{})
}

func TestNormalizeDietaryTagsIsIdempotent(t *testing.T) {
	once := NormalizeDietaryTags([]string{
		"isvegan", "isvegetarian", "ismindful",
		"made without gluten-containing ingredients",
		"in balance", "farm to fork", "humane", "halal",
	})
	twice := NormalizeDietaryTags(once)
	assert.DeepEqual(t, "re-normalized tags", twice, once)
}

func TestMealNamed(t *testing.T) {
	menu := Menu{
		Meals: []Meal{
			{Period: "breakfast"},
			{Period: "lunch"},
		},
	}

	meal, ok := menu.MealNamed("Lunch")
	assert.DeepEqual(t, "match found", ok, true)
	assert.DeepEqual(t, "matched period", meal.Period, "lunch")

	_, ok = menu.MealNamed("dinner")
	assert.DeepEqual(t, "match found", ok, false)
}

func TestHallRegistry(t *testing.T) {
	hall, err := HallByID("frary")
	if err != nil {
		t.Fatal(err)
	}
	assert.DeepEqual(t, "hall vendor", hall.Vendor, VendorPomona)

	_, err = HallByID("mudd")
	if err == nil {
		t.Fatal("expected an error for an unknown hall")
	}

	halls := AllHalls()
	assert.DeepEqual(t, "hall count", len(halls), 7)
	assert.DeepEqual(t, "first hall", halls[0].ID, "collins")
	assert.DeepEqual(t, "last hall", halls[6].ID, "oldenborg")
}
