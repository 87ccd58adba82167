// SPDX-FileCopyrightText: 2025 5C Menu contributors
// SPDX-License-Identifier: Apache-2.0

// Package filter implements the data-driven station filter pipeline that all
// vendor parsers feed their station lists through. The pipeline reproduces
// the consortium's long-standing display rules: merge -> hide -> truncate ->
// sort -> drop empty, in exactly that order.
package filter

import (
	"sort"
	"strings"

	"github.com/fivecmenu/menud/internal/core"
)

// Config is the per-vendor station filter configuration. All name keys are
// lowercased except the Combined canonical names, which keep their display
// casing.
type Config struct {
	// Hidden lists stations to drop outright.
	Hidden []string
	// Ordered defines the sort priority; stations not listed sort after all
	// listed stations in their incoming order.
	Ordered []string
	// Truncated caps a station's item count; the value -1 drops the station
	// entirely (equivalent to Hidden).
	Truncated map[string]int
	// Combined maps a canonical display name to the aliases that merge
	// under it.
	Combined map[string][]string
}

// Apply runs the full pipeline over a station list. The input is not
// modified; stations in the result never have zero items.
func Apply(stations []core.Station, cfg Config) []core.Station {
	// 1. merge: resolve aliases to canonical names and group by the
	// lowercased canonical key; the first occurrence's casing wins and later
	// stations append their items
	aliasToCanonical := make(map[string]string)
	for canonical, aliases := range cfg.Combined {
		for _, alias := range aliases {
			aliasToCanonical[strings.ToLower(alias)] = canonical
		}
	}

	merged := make(map[string]*core.Station)
	var mergeOrder []string
	for _, station := range stations {
		canonical, ok := aliasToCanonical[strings.ToLower(station.Name)]
		if !ok {
			canonical = station.Name
		}
		key := strings.ToLower(canonical)
		if existing, exists := merged[key]; exists {
			existing.Items = append(existing.Items, station.Items...)
		} else {
			merged[key] = &core.Station{
				Name:  canonical,
				Items: append([]core.Item(nil), station.Items...),
			}
			mergeOrder = append(mergeOrder, key)
		}
	}

	// 2. hide: drop stations that are hidden or truncated to -1
	hidden := make(map[string]bool, len(cfg.Hidden))
	for _, name := range cfg.Hidden {
		hidden[strings.ToLower(name)] = true
	}
	for name, limit := range cfg.Truncated {
		if limit == -1 {
			hidden[strings.ToLower(name)] = true
		}
	}

	var visible []core.Station
	for _, key := range mergeOrder {
		if hidden[key] {
			continue
		}
		visible = append(visible, *merged[key])
	}

	// 3. truncate: cap item counts where configured
	for i, station := range visible {
		limit, ok := cfg.Truncated[strings.ToLower(station.Name)]
		if ok && limit > 0 && len(station.Items) > limit {
			visible[i].Items = station.Items[:limit]
		}
	}

	// 4. sort: by position in Ordered; unlisted stations keep their relative
	// order after all listed ones (the sort must be stable for that)
	orderIndex := make(map[string]int, len(cfg.Ordered))
	for idx, name := range cfg.Ordered {
		lower := strings.ToLower(name)
		if _, exists := orderIndex[lower]; !exists {
			orderIndex[lower] = idx
		}
	}
	priority := func(s core.Station) int {
		if idx, ok := orderIndex[strings.ToLower(s.Name)]; ok {
			return idx
		}
		return len(cfg.Ordered)
	}
	sort.SliceStable(visible, func(i, j int) bool {
		return priority(visible[i]) < priority(visible[j])
	})

	// 5. drop empty
	result := make([]core.Station, 0, len(visible))
	for _, station := range visible {
		if len(station.Items) > 0 {
			result = append(result, station)
		}
	}
	return result
}
