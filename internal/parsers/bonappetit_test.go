// SPDX-FileCopyrightText: 2025 5C Menu contributors
// SPDX-License-Identifier: Apache-2.0

package parsers

import (
	"testing"

	"github.com/sapcc/go-bits/assert"

	"github.com/fivecmenu/menud/internal/core"
)

func TestBonAppetitParse(t *testing.T) {
	parser, err := NewBonAppetitParser("collins")
	if err != nil {
		t.Fatal(err)
	}
	raw := mustReadFixture(t, "bonappetit_day.html")
	targetDate := mustParseDate(t, "2026-02-07")

	menu, err := parser.Parse(raw, targetDate)
	if err != nil {
		t.Fatal(err)
	}

	assert.DeepEqual(t, "hall ID", menu.HallID, "collins")
	assert.DeepEqual(t, "meal count", len(menu.Meals), 3)

	// breakfast: HTML tags stripped from the station label, "Cold Cereals"
	// hidden, item 103 excluded because special=0
	breakfast := menu.Meals[0]
	assert.DeepEqual(t, "first meal period", breakfast.Period, "breakfast")
	assert.DeepEqual(t, "breakfast stations", breakfast.Stations, []core.Station{
		{Name: "Breakfast", Items: []core.Item{
			{Name: "Huevos Rancheros", Tags: []string{"gluten-free", "vegetarian"}},
			{Name: "Steel Cut Oatmeal", Tags: []string{}},
		}},
	})

	// lunch exercises string item IDs, a numeric-string special field,
	// case-insensitive dedup, a dangling item reference, blank labels, the
	// grill->grill special rename (which dodges the grill truncation), and
	// an unknown cor_icon value being dropped
	lunch := menu.Meals[1]
	assert.DeepEqual(t, "second meal period", lunch.Period, "lunch")
	// "@Home" loses its "@" during label cleanup, so it no longer matches the
	// "@home" priority entry and sorts after the listed stations
	assert.DeepEqual(t, "lunch stations", lunch.Stations, []core.Station{
		{Name: "Expo", Items: []core.Item{
			{Name: "Carnitas Burrito", Tags: []string{}},
		}},
		{Name: "sweets", Items: []core.Item{
			{Name: "Fruit Tart", Tags: []string{"vegetarian"}},
		}},
		{Name: "Home", Items: []core.Item{
			{Name: "Chicken Adobo", Tags: []string{"humane"}},
			{Name: "Tofu Stir Fry", Tags: []string{"balanced", "vegan"}},
		}},
		{Name: "grill special", Items: []core.Item{
			{Name: "Cheese Pizza", Tags: []string{"vegetarian"}},
			{Name: "Pepperoni Pizza", Tags: []string{}},
			{Name: "BBQ Chicken Pizza", Tags: []string{}},
			{Name: "Mushroom Pizza", Tags: []string{"vegetarian"}},
		}},
	})

	// the unlabeled daypart falls back to "Unknown"
	assert.DeepEqual(t, "third meal period", menu.Meals[2].Period, "unknown")
	assert.DeepEqual(t, "third meal station count", len(menu.Meals[2].Stations), 1)
}

func TestBonAppetitParseMissingData(t *testing.T) {
	parser, err := NewBonAppetitParser("malott")
	if err != nil {
		t.Fatal(err)
	}
	targetDate := mustParseDate(t, "2026-02-07")

	_, err = parser.Parse("<html><body>nothing here</body></html>", targetDate)
	if err == nil {
		t.Error("expected an error for a page without Bamco.menu_items")
	}

	// menu_items present, dayparts missing
	_, err = parser.Parse(`<script>Bamco.menu_items = {"1":{"label":"x","special":1}};</script>`, targetDate)
	if err == nil {
		t.Error("expected an error for a page without Bamco.dayparts")
	}
}

func TestBonAppetitUnknownHall(t *testing.T) {
	_, err := NewBonAppetitParser("frary")
	if err == nil {
		t.Error("expected an error for a non-BAMCO hall")
	}
}

func TestBonAppetitBuildURL(t *testing.T) {
	testCases := []struct {
		hallID   string
		expected string
	}{
		{"collins", "https://collins-cmc.cafebonappetit.com/cafe/collins/2026-02-07"},
		{"malott", "https://scripps.cafebonappetit.com/cafe/malott-dining-commons/2026-02-07"},
		{"mcconnell", "https://pitzer.cafebonappetit.com/cafe/mcconnell-bistro/2026-02-07"},
	}
	targetDate := mustParseDate(t, "2026-02-07")
	for _, tc := range testCases {
		parser, err := NewBonAppetitParser(tc.hallID)
		if err != nil {
			t.Fatal(err)
		}
		assert.DeepEqual(t, "URL for "+tc.hallID, parser.BuildURL(targetDate), tc.expected)
	}
}

func TestBamcoTruthy(t *testing.T) {
	testCases := []struct {
		raw      string
		expected bool
	}{
		{`1`, true},
		{`0`, false},
		{`"1"`, true},
		{`"0"`, true}, // non-empty string counts as served
		{`""`, false},
		{`null`, false},
		{``, false},
	}
	for _, tc := range testCases {
		assert.DeepEqual(t, "truthiness of "+tc.raw, bamcoTruthy([]byte(tc.raw)), tc.expected)
	}
}
