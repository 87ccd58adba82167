// SPDX-FileCopyrightText: 2025 5C Menu contributors
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"fmt"
	"sort"
)

// VendorType identifies which food-service company operates a hall, and
// therefore which parser understands its web pages.
type VendorType string

const (
	VendorSodexo     VendorType = "sodexo"
	VendorBonAppetit VendorType = "bonappetit"
	VendorPomona     VendorType = "pomona"
)

// Hall describes one dining hall in the consortium.
type Hall struct {
	ID         string
	Name       string
	College    string
	Vendor     VendorType
	// Color is the accent color used by web frontends, as "#rrggbb".
	Color string
}

// HallRegistry is the static registry of all seven halls. The registry is
// compiled in; the dining_halls table is seeded from it at startup so that
// the /v1/halls endpoint and foreign keys have rows to refer to.
var HallRegistry = map[string]Hall{
	"hoch":      {ID: "hoch", Name: "Hoch-Shanahan", College: "hmc", Vendor: VendorSodexo, Color: "#fdb913"},
	"collins":   {ID: "collins", Name: "Collins", College: "cmc", Vendor: VendorBonAppetit, Color: "#981a31"},
	"malott":    {ID: "malott", Name: "Malott", College: "scripps", Vendor: VendorBonAppetit, Color: "#33533a"},
	"mcconnell": {ID: "mcconnell", Name: "McConnell", College: "pitzer", Vendor: VendorBonAppetit, Color: "#f26522"},
	"frank":     {ID: "frank", Name: "Frank", College: "pomona", Vendor: VendorPomona, Color: "#0057b8"},
	"frary":     {ID: "frary", Name: "Frary", College: "pomona", Vendor: VendorPomona, Color: "#0057b8"},
	"oldenborg": {ID: "oldenborg", Name: "Oldenborg", College: "pomona", Vendor: VendorPomona, Color: "#0057b8"},
}

// HallByID looks up a hall in the registry.
func HallByID(hallID string) (Hall, error) {
	hall, ok := HallRegistry[hallID]
	if !ok {
		return Hall{}, fmt.Errorf("%w: %q", ErrUnknownHall, hallID)
	}
	return hall, nil
}

// AllHalls returns the registry contents sorted by hall ID, for deterministic
// seeding and listing.
func AllHalls() []Hall {
	halls := make([]Hall, 0, len(HallRegistry))
	for _, hall := range HallRegistry {
		halls = append(halls, hall)
	}
	sort.Slice(halls, func(i, j int) bool { return halls[i].ID < halls[j].ID })
	return halls
}
