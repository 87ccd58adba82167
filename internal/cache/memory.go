// SPDX-FileCopyrightText: 2025 5C Menu contributors
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

type memoryBackend struct {
	store *gocache.Cache
}

// NewMemoryBackend creates an in-process Backend. Suitable for single-replica
// deployments and tests.
func NewMemoryBackend() Backend {
	return &memoryBackend{
		store: gocache.New(gocache.NoExpiration, 10*time.Minute),
	}
}

func (b *memoryBackend) Get(_ context.Context, key string) ([]byte, error) {
	value, ok := b.store.Get(key)
	if !ok {
		return nil, nil
	}
	return value.([]byte), nil
}

func (b *memoryBackend) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	b.store.Set(key, value, ttl)
	return nil
}
