// SPDX-FileCopyrightText: 2025 5C Menu contributors
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"sort"
	"strings"

	"github.com/sapcc/go-bits/logg"
)

// The closed set of canonical dietary tags. Everything an item can carry is
// one of these; vendor labels that do not map here are dropped.
const (
	TagVegan      = "vegan"
	TagVegetarian = "vegetarian"
	TagGlutenFree = "gluten-free"
	TagHalal      = "halal"
	TagMindful    = "mindful"
	TagBalanced   = "balanced"
	TagFarmToFork = "farm-to-fork"
	TagHumane     = "humane"
)

// dietaryTagMapping translates vendor-specific dietary labels (lowercased)
// into canonical tags. It is shared by all three vendor parsers: Sodexo
// contributes the is* pseudo-labels derived from its boolean fields,
// BonAppetit the cor_icon values, Pomona the dietaryChoice ids.
var dietaryTagMapping = map[string]string{
	// Sodexo boolean fields
	"isvegan":      TagVegan,
	"isvegetarian": TagVegetarian,
	"ismindful":    TagMindful,
	// BonAppetit cor_icon values
	"vegan":      TagVegan,
	"vegetarian": TagVegetarian,
	"made without gluten-containing ingredients": TagGlutenFree,
	"in balance":   TagBalanced,
	"farm to fork": TagFarmToFork,
	"humane":       TagHumane,
	"halal":        TagHalal,
	// Pomona dietaryChoices ("vegan"/"vegetarian" already covered)
	"gluten free": TagGlutenFree,
	// identity mappings, so that normalization is idempotent
	"gluten-free":  TagGlutenFree,
	"mindful":      TagMindful,
	"balanced":     TagBalanced,
	"farm-to-fork": TagFarmToFork,
}

// NormalizeDietaryTags maps raw vendor labels to canonical tags. The result
// is sorted ascending and free of duplicates; unknown labels are dropped with
// a warning. Never fails, and is idempotent.
func NormalizeDietaryTags(rawTags []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(rawTags))
	for _, raw := range rawTags {
		canonical, ok := dietaryTagMapping[strings.ToLower(raw)]
		if !ok {
			logg.Info("dropping unknown dietary tag %q", raw)
			continue
		}
		if !seen[canonical] {
			seen[canonical] = true
			result = append(result, canonical)
		}
	}
	sort.Strings(result)
	return result
}
