// SPDX-FileCopyrightText: 2025 5C Menu contributors
// SPDX-License-Identifier: Apache-2.0

package parsers

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sapcc/go-bits/logg"

	"github.com/fivecmenu/menud/internal/core"
	"github.com/fivecmenu/menud/internal/filter"
)

// pomonaHallNames maps hall IDs to the capitalized names used in the fallback
// feed URL. The page slug equals the hall ID for all three halls.
var pomonaHallNames = map[string]string{
	"frank":     "Frank",
	"frary":     "Frary",
	"oldenborg": "Oldenborg",
}

const (
	pomonaPageURLTemplate     = "https://www.pomona.edu/administration/dining/menus/%s"
	pomonaFallbackURLTemplate = "https://my.pomona.edu/eatec/%s.json"
)

// Oldenborg lists multiple dishes in one recipe name separated by commas or
// slashes; the other halls only ever use commas.
var oldenborgSplitRx = regexp.MustCompile(`[,/]\s*`)

// PomonaParser handles the three Pomona College halls (Frank, Frary,
// Oldenborg). The menu data lives in an EatecExchange JSON feed whose URL is
// discovered from the hall's menu page.
type PomonaParser struct {
	baseParser
	hallName string
}

// NewPomonaParser builds a PomonaParser, or fails if the hall is not one of
// the Pomona halls.
func NewPomonaParser(hallID string) (*PomonaParser, error) {
	hallName, ok := pomonaHallNames[hallID]
	if !ok {
		return nil, fmt.Errorf("unknown Pomona hall: %q", hallID)
	}
	return &PomonaParser{
		baseParser: baseParser{hallID: hallID, minStations: 1},
		hallName:   hallName,
	}, nil
}

// DiscoverJSONURL extracts the feed URL from the menu page HTML, looking for
// the data-dining-menu-json-url attribute on div#dining-menu-from-json. If
// the page does not carry the attribute, the known feed URL pattern is used
// instead.
func (p *PomonaParser) DiscoverJSONURL(pageHTML string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err == nil {
		jsonURL, ok := doc.Find("#dining-menu-from-json").First().Attr("data-dining-menu-json-url")
		if ok && jsonURL != "" {
			return jsonURL
		}
	}

	fallbackURL := fmt.Sprintf(pomonaFallbackURLTemplate, p.hallName)
	logg.Info("could not find data-dining-menu-json-url for %s; falling back to %s", p.hallID, fallbackURL)
	return fallbackURL
}

// FetchRaw implements the core.MenuParser interface. It is a two-step fetch:
// the menu page yields the feed URL, then the feed yields the JSON that Parse
// consumes. The feed always covers the whole current week regardless of date.
func (p *PomonaParser) FetchRaw(ctx context.Context, targetDate time.Time) (string, error) {
	client := newHTTPClient()

	pageHTML, err := fetchText(ctx, client, fmt.Sprintf(pomonaPageURLTemplate, p.hallID))
	if err != nil {
		return "", err
	}

	return fetchText(ctx, client, p.DiscoverJSONURL(pageHTML))
}

// Wire structures for the EatecExchange feed. The feed is XML converted to
// JSON by the upstream system, so singleton elements collapse from lists to
// objects; listOrDict undoes that.
type eatecFeed struct {
	EatecExchange struct {
		Menu json.RawMessage `json:"menu"`
	} `json:"EatecExchange"`
}

type eatecMenuEntry struct {
	ServeDate      string `json:"@servedate"`
	MealPeriodName string `json:"@mealperiodname"`
	MenuBulletin   string `json:"@menubulletin"`
	Recipes        struct {
		Recipe json.RawMessage `json:"recipe"`
	} `json:"recipes"`
}

type eatecRecipe struct {
	// raw so that an absent attribute (displayed) can be told apart from an
	// explicit null (hidden); see recipeDisplayed
	DisplayOnWebsite json.RawMessage `json:"@displayonwebsite"`
	ShortName        string          `json:"@shortName"`
	Category         string          `json:"@category"`
	DietaryChoices   struct {
		DietaryChoice json.RawMessage `json:"dietaryChoice"`
	} `json:"dietaryChoices"`
}

// recipeDisplayed decides whether a recipe appears on the menu. The attribute
// defaults to displayed when missing entirely, but any present value other
// than the string "Y" (including an explicit null) hides the recipe.
func recipeDisplayed(raw json.RawMessage) bool {
	if raw == nil {
		return true
	}
	var value string
	err := json.Unmarshal(raw, &value)
	return err == nil && value == "Y"
}

type eatecDietaryChoice struct {
	ID   string `json:"@id"`
	Text string `json:"#text"`
}

// listOrDict decodes a JSON value that is a list of T when multiple elements
// are present but a bare T when there is exactly one. Absent or null yields
// an empty slice.
func listOrDict[T any](raw json.RawMessage) ([]T, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var list []T
	if json.Unmarshal(raw, &list) == nil {
		return list, nil
	}
	var single T
	err := json.Unmarshal(raw, &single)
	if err != nil {
		return nil, err
	}
	return []T{single}, nil
}

// Parse implements the core.MenuParser interface. Entries for other dates are
// skipped; entries marked closed are skipped; a meal period appearing twice
// has its later stations appended to the first occurrence.
func (p *PomonaParser) Parse(raw string, targetDate time.Time) (core.Menu, error) {
	var feed eatecFeed
	err := json.Unmarshal([]byte(raw), &feed)
	if err != nil {
		return core.Menu{}, fmt.Errorf("decode EatecExchange feed: %w", err)
	}
	entries, err := listOrDict[eatecMenuEntry](feed.EatecExchange.Menu)
	if err != nil {
		return core.Menu{}, fmt.Errorf("decode EatecExchange menu entries: %w", err)
	}

	targetStr := targetDate.Format("20060102")
	mealsByPeriod := make(map[string][]core.Station)
	var mealOrder []string

	for _, entry := range entries {
		if entry.ServeDate != targetStr {
			continue
		}
		if strings.EqualFold(entry.MealPeriodName, "closed") || strings.EqualFold(entry.MenuBulletin, "closed") {
			continue
		}
		if entry.MealPeriodName == "" {
			continue
		}

		recipes, err := listOrDict[eatecRecipe](entry.Recipes.Recipe)
		if err != nil {
			return core.Menu{}, fmt.Errorf("decode recipes for %s %s: %w", entry.ServeDate, entry.MealPeriodName, err)
		}

		filtered := filter.Apply(p.buildStations(recipes), filter.Pomona)

		mealKey := strings.ToLower(entry.MealPeriodName)
		if _, exists := mealsByPeriod[mealKey]; exists {
			mealsByPeriod[mealKey] = append(mealsByPeriod[mealKey], filtered...)
		} else {
			mealsByPeriod[mealKey] = filtered
			mealOrder = append(mealOrder, mealKey)
		}
	}

	var meals []core.Meal
	for _, mealKey := range mealOrder {
		stations := mealsByPeriod[mealKey]
		if len(stations) > 0 {
			meals = append(meals, core.Meal{Period: mealKey, Stations: stations})
		}
	}

	return core.Menu{HallID: p.hallID, Date: targetDate, Meals: meals}, nil
}

// buildStations groups one menu entry's recipes into stations by category,
// preserving first-seen order and first-seen display casing.
func (p *PomonaParser) buildStations(recipes []eatecRecipe) []core.Station {
	stationMap := make(map[string]*core.Station)
	var stationOrder []string

	for _, recipe := range recipes {
		if !recipeDisplayed(recipe.DisplayOnWebsite) {
			continue
		}

		rawName := strings.TrimSpace(recipe.ShortName)
		if rawName == "" {
			continue
		}

		category := strings.TrimSpace(recipe.Category)
		if category == "" {
			category = "Miscellaneous"
		}

		tags := p.extractDietaryTags(recipe)

		for _, itemName := range p.splitItemName(rawName) {
			key := strings.ToLower(category)
			station, ok := stationMap[key]
			if !ok {
				station = &core.Station{Name: category}
				stationMap[key] = station
				stationOrder = append(stationOrder, key)
			}
			station.Items = append(station.Items, core.Item{Name: itemName, Tags: tags})
		}
	}

	stations := make([]core.Station, 0, len(stationOrder))
	for _, key := range stationOrder {
		stations = append(stations, *stationMap[key])
	}
	return stations
}

// splitItemName breaks a recipe name that lists several dishes into separate
// items. Oldenborg splits on both commas and slashes; the other halls only on
// commas.
func (p *PomonaParser) splitItemName(name string) []string {
	var parts []string
	if p.hallID == "oldenborg" {
		parts = oldenborgSplitRx.Split(name, -1)
	} else {
		parts = strings.Split(name, ",")
	}

	result := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			result = append(result, part)
		}
	}
	return result
}

// extractDietaryTags collects the dietary choices marked "Yes" on a recipe.
func (p *PomonaParser) extractDietaryTags(recipe eatecRecipe) []string {
	choices, err := listOrDict[eatecDietaryChoice](recipe.DietaryChoices.DietaryChoice)
	if err != nil {
		return core.NormalizeDietaryTags(nil)
	}

	var rawTags []string
	for _, choice := range choices {
		if choice.Text == "Yes" && choice.ID != "" {
			rawTags = append(rawTags, choice.ID)
		}
	}
	return core.NormalizeDietaryTags(rawTags)
}
