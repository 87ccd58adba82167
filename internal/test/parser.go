// SPDX-FileCopyrightText: 2025 5C Menu contributors
// SPDX-License-Identifier: Apache-2.0

package test

import (
	"context"
	"time"

	"github.com/fivecmenu/menud/internal/core"
)

// Parser is a mock core.MenuParser with scriptable outcomes.
type Parser struct {
	Hall string
	// FetchErr, when set, makes FetchRaw fail.
	FetchErr error
	// ParseErr, when set, makes Parse fail.
	ParseErr error
	// Menu is the result of a successful Parse.
	Menu core.Menu
	// FetchDelay makes FetchRaw take this long, so that concurrent requests
	// reliably overlap.
	FetchDelay time.Duration
	// FetchCount counts FetchRaw invocations, for coalescing assertions.
	FetchCount int
}

func (p *Parser) HallID() string {
	return p.Hall
}

func (p *Parser) FetchRaw(ctx context.Context, targetDate time.Time) (string, error) {
	p.FetchCount++
	if p.FetchDelay > 0 {
		time.Sleep(p.FetchDelay)
	}
	if p.FetchErr != nil {
		return "", p.FetchErr
	}
	return "mock vendor payload", nil
}

func (p *Parser) Parse(raw string, targetDate time.Time) (core.Menu, error) {
	if p.ParseErr != nil {
		return core.Menu{}, p.ParseErr
	}
	return p.Menu, nil
}

func (p *Parser) Validate(menu core.Menu) bool {
	return core.ValidateMenu(p.Hall, menu, p.MinStationCount())
}

func (p *Parser) MinStationCount() int {
	return 1
}
