// SPDX-FileCopyrightText: 2025 5C Menu contributors
// SPDX-License-Identifier: Apache-2.0

package parsers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/fivecmenu/menud/internal/core"
	"github.com/fivecmenu/menud/internal/filter"
)

// bamcoURLTemplates maps hall IDs to the cafe pages operated by Bon Appetit
// Management Company. %s receives the ISO date.
var bamcoURLTemplates = map[string]string{
	"collins":   "https://collins-cmc.cafebonappetit.com/cafe/collins/%s",
	"malott":    "https://scripps.cafebonappetit.com/cafe/malott-dining-commons/%s",
	"mcconnell": "https://pitzer.cafebonappetit.com/cafe/mcconnell-bistro/%s",
}

// The cafe pages carry their data in inline JavaScript assignments rather
// than in the DOM, so extraction is regex over the raw page text.
var (
	bamcoMenuItemsRx = regexp.MustCompile(`Bamco\.menu_items\s*=\s*(\{[^;]+\});`)
	bamcoDaypartsRx  = regexp.MustCompile(`Bamco\.dayparts\['(\d+)'\]\s*=\s*(\{[^;]+\});`)
	htmlTagRx        = regexp.MustCompile(`<[^>]+>`)
)

// BonAppetitParser handles the three Bon Appetit halls (Collins, Malott,
// McConnell).
type BonAppetitParser struct {
	baseParser
	urlTemplate string
}

// NewBonAppetitParser builds a BonAppetitParser, or fails if the hall is not
// one of the Bon Appetit halls.
func NewBonAppetitParser(hallID string) (*BonAppetitParser, error) {
	urlTemplate, ok := bamcoURLTemplates[hallID]
	if !ok {
		return nil, fmt.Errorf("unknown Bon Appetit hall: %q", hallID)
	}
	return &BonAppetitParser{
		baseParser:  baseParser{hallID: hallID, minStations: 1},
		urlTemplate: urlTemplate,
	}, nil
}

// BuildURL returns the cafe page URL for the given date.
func (p *BonAppetitParser) BuildURL(targetDate time.Time) string {
	return fmt.Sprintf(p.urlTemplate, targetDate.Format(core.DateFormat))
}

// FetchRaw implements the core.MenuParser interface.
func (p *BonAppetitParser) FetchRaw(ctx context.Context, targetDate time.Time) (string, error) {
	return fetchText(ctx, newHTTPClient(), p.BuildURL(targetDate))
}

// Wire structures for the inline JavaScript objects. Several fields have no
// stable type across the vendor's pages, so they stay as json.RawMessage and
// get interpreted leniently.
type bamcoItem struct {
	Label   string          `json:"label"`
	Special json.RawMessage `json:"special"`
	CorIcon json.RawMessage `json:"cor_icon"`
}

type bamcoDaypart struct {
	Label    string         `json:"label"`
	Stations []bamcoStation `json:"stations"`
}

type bamcoStation struct {
	Label string            `json:"label"`
	Items []json.RawMessage `json:"items"`
}

// Parse implements the core.MenuParser interface. The page serves exactly one
// date, so targetDate only labels the result.
func (p *BonAppetitParser) Parse(raw string, targetDate time.Time) (core.Menu, error) {
	menuItems, err := extractBamcoMenuItems(raw)
	if err != nil {
		return core.Menu{}, err
	}
	dayparts, err := extractBamcoDayparts(raw)
	if err != nil {
		return core.Menu{}, err
	}

	var meals []core.Meal
	for _, daypart := range dayparts {
		label := daypart.Label
		if label == "" {
			label = "Unknown"
		}

		stations := buildBamcoStations(daypart, menuItems)
		filtered := filter.Apply(stations, filter.BonAppetit)
		if len(filtered) > 0 {
			meals = append(meals, core.Meal{Period: strings.ToLower(label), Stations: filtered})
		}
	}

	return core.Menu{HallID: p.hallID, Date: targetDate, Meals: meals}, nil
}

func extractBamcoMenuItems(html string) (map[string]bamcoItem, error) {
	match := bamcoMenuItemsRx.FindStringSubmatch(html)
	if match == nil {
		return nil, errors.New("could not find Bamco.menu_items in page")
	}
	var items map[string]bamcoItem
	err := json.Unmarshal([]byte(match[1]), &items)
	if err != nil {
		return nil, fmt.Errorf("decode Bamco.menu_items: %w", err)
	}
	return items, nil
}

// extractBamcoDayparts collects all Bamco.dayparts assignments in page order.
func extractBamcoDayparts(html string) ([]bamcoDaypart, error) {
	var dayparts []bamcoDaypart
	for _, match := range bamcoDaypartsRx.FindAllStringSubmatch(html, -1) {
		var daypart bamcoDaypart
		err := json.Unmarshal([]byte(match[2]), &daypart)
		if err != nil {
			return nil, fmt.Errorf("decode Bamco.dayparts[%s]: %w", match[1], err)
		}
		dayparts = append(dayparts, daypart)
	}
	if len(dayparts) == 0 {
		return nil, errors.New("could not find Bamco.dayparts in page")
	}
	return dayparts, nil
}

func buildBamcoStations(daypart bamcoDaypart, menuItems map[string]bamcoItem) []core.Station {
	var stations []core.Station
	for _, stationData := range daypart.Stations {
		name := cleanBamcoStationLabel(stationData.Label)
		if name == "" {
			continue
		}

		seenLabels := make(map[string]bool)
		var items []core.Item
		for _, rawID := range stationData.Items {
			item, ok := menuItems[bamcoItemID(rawID)]
			if !ok {
				continue
			}

			// Only items flagged as special are actually being served.
			if !bamcoTruthy(item.Special) {
				continue
			}

			label := strings.TrimSpace(item.Label)
			if label == "" {
				continue
			}

			// Same label twice in one station = vendor duplicate, keep first.
			labelLower := strings.ToLower(label)
			if seenLabels[labelLower] {
				continue
			}
			seenLabels[labelLower] = true

			items = append(items, core.Item{Name: label, Tags: bamcoItemTags(item.CorIcon)})
		}

		// Empty stations stay in; the filter pipeline drops them.
		stations = append(stations, core.Station{Name: name, Items: items})
	}
	return stations
}

// cleanBamcoStationLabel strips embedded HTML tags, surrounding whitespace and
// a leading "@" marker from a station label.
func cleanBamcoStationLabel(rawLabel string) string {
	cleaned := strings.TrimSpace(htmlTagRx.ReplaceAllString(rawLabel, ""))
	if strings.HasPrefix(cleaned, "@") {
		cleaned = strings.TrimSpace(cleaned[1:])
	}
	return cleaned
}

// bamcoItemID renders a station's item reference as the string key used by
// Bamco.menu_items. The references are numbers on some pages and strings on
// others.
func bamcoItemID(raw json.RawMessage) string {
	var asString string
	if json.Unmarshal(raw, &asString) == nil {
		return asString
	}
	return string(bytes.TrimSpace(raw))
}

// bamcoTruthy interprets the "special" field, which appears as 0/1 but also
// shows up as a numeric string on some pages. The number zero, the empty
// string, null and absent all mean "not served"; any non-empty string counts
// as served, including "0".
func bamcoTruthy(raw json.RawMessage) bool {
	switch string(bytes.TrimSpace(raw)) {
	case "", "null", "0", `""`, "false", "{}", "[]":
		return false
	}
	return true
}

// bamcoItemTags extracts dietary tags from cor_icon. The field is an object
// mapping icon IDs to tag names when populated, but degrades to an empty JSON
// array when the vendor has no tags; only the object shape carries data.
func bamcoItemTags(corIcon json.RawMessage) []string {
	var values map[string]string
	if json.Unmarshal(corIcon, &values) != nil {
		return core.NormalizeDietaryTags(nil)
	}
	rawTags := make([]string, 0, len(values))
	for _, value := range values {
		rawTags = append(rawTags, value)
	}
	return core.NormalizeDietaryTags(rawTags)
}
