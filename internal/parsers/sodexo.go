// SPDX-FileCopyrightText: 2025 5C Menu contributors
// SPDX-License-Identifier: Apache-2.0

package parsers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/PuerkitoBio/goquery"

	"github.com/fivecmenu/menud/internal/core"
	"github.com/fivecmenu/menud/internal/filter"
)

// The menuId/locationId pair identifies Hoch-Shanahan; Sodexo returns one
// week of data starting at the given date.
const sodexoURLTemplate = "https://menus.sodexomyway.com/BiteMenu/MenuOnly?menuId=15258&locationId=13147001&startdate=%s"

// nutDataRx is the fallback extractor for when the HTML is too broken for a
// proper parse. Deliberately tolerant: anything between the opening tag and
// the next closing </div>.
var nutDataRx = regexp.MustCompile(`(?s)<div[^>]*id\s*=\s*["']nutData["'][^>]*>(.*?)</div>`)

// SodexoParser handles the single Sodexo-operated hall (Hoch-Shanahan). The
// vendor page embeds a JSON array covering a week inside a #nutData div.
type SodexoParser struct {
	baseParser
}

// NewSodexoParser builds a SodexoParser.
func NewSodexoParser(hallID string) *SodexoParser {
	return &SodexoParser{baseParser{hallID: hallID, minStations: 1}}
}

// BuildURL returns the vendor URL for the given date.
func (p *SodexoParser) BuildURL(targetDate time.Time) string {
	return fmt.Sprintf(sodexoURLTemplate, targetDate.Format("01/02/2006"))
}

// FetchRaw implements the core.MenuParser interface.
func (p *SodexoParser) FetchRaw(ctx context.Context, targetDate time.Time) (string, error) {
	return fetchText(ctx, newHTTPClient(), p.BuildURL(targetDate))
}

// Wire structures for the embedded JSON.
type sodexoDay struct {
	Date     string          `json:"date"` // "2026-02-07T00:00:00"
	DayParts []sodexoDayPart `json:"dayParts"`
}

type sodexoDayPart struct {
	DayPartName string         `json:"dayPartName"`
	Courses     []sodexoCourse `json:"courses"`
}

type sodexoCourse struct {
	CourseName string           `json:"courseName"`
	MenuItems  []sodexoMenuItem `json:"menuItems"`
}

type sodexoMenuItem struct {
	FormalName   string `json:"formalName"`
	IsVegan      bool   `json:"isVegan"`
	IsVegetarian bool   `json:"isVegetarian"`
	IsMindful    bool   `json:"isMindful"`
}

// Parse implements the core.MenuParser interface. The week-sized JSON array
// is filtered down to the target date; a date outside the fetched week yields
// a menu with zero meals, not an error.
func (p *SodexoParser) Parse(raw string, targetDate time.Time) (core.Menu, error) {
	jsonText, err := extractNutData(raw)
	if err != nil {
		return core.Menu{}, err
	}

	var days []sodexoDay
	err = json.Unmarshal([]byte(jsonText), &days)
	if err != nil {
		return core.Menu{}, fmt.Errorf("decode #nutData JSON: %w", err)
	}

	targetStr := targetDate.Format(core.DateFormat)
	var meals []core.Meal
	for _, day := range days {
		if len(day.Date) < 10 || day.Date[:10] != targetStr {
			continue
		}
		for _, dayPart := range day.DayParts {
			meal, ok := p.parseDayPart(dayPart)
			if ok {
				meals = append(meals, meal)
			}
		}
	}

	return core.Menu{HallID: p.hallID, Date: targetDate, Meals: meals}, nil
}

// extractNutData pulls the JSON text out of the #nutData div. Primary path is
// a proper HTML parse; the regex fallback handles pages that goquery cannot
// make sense of.
func extractNutData(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err == nil {
		text := strings.TrimSpace(doc.Find("#nutData").First().Text())
		if text != "" {
			return text, nil
		}
	}

	match := nutDataRx.FindStringSubmatch(html)
	if match != nil {
		text := strings.TrimSpace(match[1])
		if text != "" {
			return text, nil
		}
	}

	return "", errors.New("could not extract menu JSON from Sodexo HTML: #nutData div not found or empty")
}

func (p *SodexoParser) parseDayPart(dayPart sodexoDayPart) (core.Meal, bool) {
	period := strings.ToLower(dayPart.DayPartName)
	if period == "" {
		return core.Meal{}, false
	}

	// Courses with the same normalized name merge within the meal: items
	// append, the first display casing wins.
	stationMap := make(map[string]*core.Station)
	var stationOrder []string

	for _, course := range dayPart.Courses {
		name := NormalizeSodexoStationName(course.CourseName)
		items := parseSodexoItems(course.MenuItems)

		// An unnamed course with nothing in it is vendor noise.
		if name == "Miscellaneous" && len(items) == 0 {
			continue
		}

		key := strings.ToLower(name)
		if existing, ok := stationMap[key]; ok {
			existing.Items = append(existing.Items, items...)
		} else {
			stationMap[key] = &core.Station{Name: name, Items: items}
			stationOrder = append(stationOrder, key)
		}
	}

	stations := make([]core.Station, 0, len(stationOrder))
	for _, key := range stationOrder {
		stations = append(stations, *stationMap[key])
	}

	filtered := filter.Apply(stations, filter.Sodexo)
	if len(filtered) == 0 {
		return core.Meal{}, false
	}
	return core.Meal{Period: period, Stations: filtered}, true
}

func parseSodexoItems(menuItems []sodexoMenuItem) []core.Item {
	var result []core.Item
	for _, item := range menuItems {
		name := strings.TrimSpace(item.FormalName)
		if name == "" {
			continue
		}

		var rawTags []string
		if item.IsVegan {
			rawTags = append(rawTags, "isvegan")
		}
		if item.IsVegetarian {
			rawTags = append(rawTags, "isvegetarian")
		}
		if item.IsMindful {
			rawTags = append(rawTags, "ismindful")
		}

		result = append(result, core.Item{Name: name, Tags: core.NormalizeDietaryTags(rawTags)})
	}
	return result
}

// NormalizeSodexoStationName cleans up a raw Sodexo course name:
//
//   - blank or dash-only names become "Miscellaneous"
//   - a trailing " SCR" suffix is stripped
//   - ALL-CAPS names are title-cased, then " And "/" To " are lowered again
//     and "Hmc" restored to "HMC"
func NormalizeSodexoStationName(rawName string) string {
	name := strings.TrimSpace(rawName)

	if name == "" || name == "-" {
		return "Miscellaneous"
	}

	if strings.HasSuffix(name, " SCR") {
		name = strings.TrimRight(strings.TrimSuffix(name, " SCR"), " ")
	}

	if isAllUpper(name) {
		name = titleCase(name)
		name = strings.ReplaceAll(name, " And ", " and ")
		name = strings.ReplaceAll(name, " To ", " to ")
		name = strings.ReplaceAll(name, "Hmc", "HMC")
	}

	return strings.TrimSpace(name)
}

// isAllUpper reports whether the string contains at least one cased letter
// and no lowercase ones.
func isAllUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			hasLetter = true
		}
	}
	return hasLetter
}

// titleCase uppercases the first letter of every alphabetic run and
// lowercases the rest, so "FISH/SEAFOOD ENTREE" becomes "Fish/Seafood Entree".
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevIsLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevIsLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevIsLetter = true
		} else {
			b.WriteRune(r)
			prevIsLetter = false
		}
	}
	return b.String()
}
