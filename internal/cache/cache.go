// SPDX-FileCopyrightText: 2025 5C Menu contributors
// SPDX-License-Identifier: Apache-2.0

// Package cache provides the response cache sitting in front of the menu
// path. Deployments with a Redis share one cache between replicas; without
// one, each process keeps a private in-memory cache.
package cache

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/fivecmenu/menud/internal/core"
)

// Backend stores opaque blobs with a per-entry TTL. Get returns (nil, nil) on
// a miss; expired entries count as misses.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// TTLs are jittered so that entries written in one burst (e.g. after a
// restart) do not all expire in the same instant and stampede the vendors.
const (
	baseTTL   = 30 * time.Minute
	ttlJitter = 5 * time.Minute
)

// MenuCache adds menu-specific key construction and TTL jitter on top of a
// Backend.
type MenuCache struct {
	backend Backend
	// Usually rand.Int63n, but can be changed inside unit tests.
	RandInt63n func(n int64) int64
}

// NewMenuCache creates a MenuCache on top of the given backend.
func NewMenuCache(backend Backend) *MenuCache {
	return &MenuCache{
		backend:    backend,
		RandInt63n: rand.Int63n,
	}
}

// Key builds the cache key for a hall/date/meal combination.
func Key(hallID string, targetDate time.Time, meal string) string {
	return fmt.Sprintf("menu:%s:%s:%s", hallID, targetDate.Format(core.DateFormat), meal)
}

// NextTTL returns the jittered TTL for the next write. The result is always
// within [baseTTL - ttlJitter, baseTTL + ttlJitter].
func (c *MenuCache) NextTTL() time.Duration {
	jitter := time.Duration(c.RandInt63n(int64(2*ttlJitter+1))) - ttlJitter
	return baseTTL + jitter
}

// Get returns the cached payload for a key, or (nil, nil) on a miss.
func (c *MenuCache) Get(ctx context.Context, key string) ([]byte, error) {
	return c.backend.Get(ctx, key)
}

// Set stores a payload under a key with a jittered TTL.
func (c *MenuCache) Set(ctx context.Context, key string, payload []byte) error {
	return c.backend.Set(ctx, key, payload, c.NextTTL())
}
