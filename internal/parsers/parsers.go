// SPDX-FileCopyrightText: 2025 5C Menu contributors
// SPDX-License-Identifier: Apache-2.0

// Package parsers contains the three vendor parsers that turn the dining
// halls' incompatible web pages into the uniform menu model. Each parser
// implements core.MenuParser; construction is cheap and happens per request.
package parsers

import (
	"fmt"

	"github.com/fivecmenu/menud/internal/core"
)

// baseParser carries what all three vendor parsers have in common: the hall
// identity and the structural validation rule.
type baseParser struct {
	hallID      string
	minStations int
}

func (p baseParser) HallID() string {
	return p.hallID
}

func (p baseParser) MinStationCount() int {
	return p.minStations
}

func (p baseParser) Validate(menu core.Menu) bool {
	return core.ValidateMenu(p.hallID, menu, p.minStations)
}

// NewForHall builds the parser matching the hall's vendor type.
func NewForHall(hall core.Hall) (core.MenuParser, error) {
	switch hall.Vendor {
	case core.VendorSodexo:
		return NewSodexoParser(hall.ID), nil
	case core.VendorBonAppetit:
		return NewBonAppetitParser(hall.ID)
	case core.VendorPomona:
		return NewPomonaParser(hall.ID)
	default:
		return nil, fmt.Errorf("no parser for vendor type %q (hall %q)", hall.Vendor, hall.ID)
	}
}
