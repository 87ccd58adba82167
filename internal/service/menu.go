// SPDX-FileCopyrightText: 2025 5C Menu contributors
// SPDX-License-Identifier: Apache-2.0

// Package service composes the parsers, collector, cache and coalescer into
// the operations that the HTTP API exposes.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-gorp/gorp/v3"
	"github.com/sapcc/go-bits/logg"

	"github.com/fivecmenu/menud/internal/cache"
	"github.com/fivecmenu/menud/internal/coalesce"
	"github.com/fivecmenu/menud/internal/collector"
	"github.com/fivecmenu/menud/internal/core"
	"github.com/fivecmenu/menud/internal/parsers"
)

// MenuResponse is the payload served for a menu query. FetchedAt is the
// RFC 3339 timestamp of the vendor fetch that produced the data, or null
// when no data exists at all.
type MenuResponse struct {
	HallID    string         `json:"hall_id"`
	Date      string         `json:"date"`
	Meal      string         `json:"meal"`
	Stations  []core.Station `json:"stations"`
	IsStale   bool           `json:"is_stale"`
	FetchedAt *string        `json:"fetched_at"`
}

// MenuService answers menu queries. Request flow: cache lookup, then a
// coalesced fetch through the collector on a miss, then a cache write.
type MenuService struct {
	Collector *collector.Collector
	Cache     *cache.MenuCache
	Group     *coalesce.Group
	// Usually parsers.NewForHall, but can be changed inside unit tests.
	NewParser func(core.Hall) (core.MenuParser, error)
}

// NewMenuService creates a MenuService.
func NewMenuService(c *collector.Collector, menuCache *cache.MenuCache) *MenuService {
	return &MenuService{
		Collector: c,
		Cache:     menuCache,
		Group:     coalesce.NewGroup(),
		NewParser: parsers.NewForHall,
	}
}

// GetMenu returns the menu for one hall/date/meal, or nil when no data is
// available (neither live nor from a stored snapshot, or the hall does not
// serve that meal on that date). The hall ID and date are validated first;
// failures surface as core.ErrUnknownHall and core.ErrInvalidDate.
func (s *MenuService) GetMenu(ctx context.Context, hallID, dateStr, meal string) (*MenuResponse, error) {
	hall, err := core.HallByID(hallID)
	if err != nil {
		return nil, err
	}
	targetDate, err := core.ParseDate(dateStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", core.ErrInvalidDate, dateStr)
	}

	key := cache.Key(hallID, targetDate, meal)

	cached, err := s.Cache.Get(ctx, key)
	if err != nil {
		// a broken cache slows us down, but must not fail the request
		logg.Error("cache lookup failed for %s: %s", key, err.Error())
		cached = nil
	}
	if cached != nil {
		var response MenuResponse
		err = json.Unmarshal(cached, &response)
		if err == nil {
			return &response, nil
		}
		logg.Error("discarding undecodable cached payload for %s: %s", key, err.Error())
	}

	value, err := s.Group.Do(ctx, key, func(fetchCtx context.Context) (any, error) {
		return s.fetchMenu(fetchCtx, hall, targetDate, dateStr, meal, key)
	})
	if err != nil {
		return nil, err
	}
	return value.(*MenuResponse), nil
}

// fetchMenu is the cache-miss path, executed once per key by the coalescer.
func (s *MenuService) fetchMenu(ctx context.Context, hall core.Hall, targetDate time.Time, dateStr, meal, key string) (*MenuResponse, error) {
	parser, err := s.NewParser(hall)
	if err != nil {
		return nil, err
	}

	menu, isStale, fetchedAt, err := s.Collector.GetWithFallback(ctx, parser, targetDate)
	if err != nil {
		return nil, err
	}
	if menu == nil {
		// nothing to serve; deliberately not cached, so the next request
		// retries the vendor
		return nil, nil
	}

	matchingMeal, ok := menu.MealNamed(meal)
	if !ok {
		// the hall has data for the date, just not for this meal period
		return nil, nil
	}

	response := &MenuResponse{
		HallID:   hall.ID,
		Date:     dateStr,
		Meal:     meal,
		Stations: matchingMeal.Stations,
		IsStale:  isStale,
	}
	if fetchedAt != nil {
		formatted := fetchedAt.Format(time.RFC3339)
		response.FetchedAt = &formatted
	}

	buf, err := json.Marshal(response)
	if err != nil {
		return nil, err
	}
	err = s.Cache.Set(ctx, key, buf)
	if err != nil {
		// a broken cache slows us down, but must not fail the request
		logg.Error("failed to cache payload for %s: %s", key, err.Error())
	}
	return response, nil
}
