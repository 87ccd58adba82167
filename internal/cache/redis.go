// SPDX-FileCopyrightText: 2025 5C Menu contributors
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisBackend struct {
	client *redis.Client
}

// NewRedisBackend creates a Backend talking to the Redis at the given URL
// (redis://[user:pass@]host:port/db). The connection is verified before use.
func NewRedisBackend(ctx context.Context, redisURL string) (Backend, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	client := redis.NewClient(opts)
	err = client.Ping(ctx).Err()
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return &redisBackend{client: client}, nil
}

func (b *redisBackend) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := b.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return value, err
}

func (b *redisBackend) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return b.client.Set(ctx, key, value, ttl).Err()
}
