// SPDX-FileCopyrightText: 2025 5C Menu contributors
// SPDX-License-Identifier: Apache-2.0

// Package coalesce prevents cache-miss stampedes: when several concurrent
// requests miss the cache for the same key, only one of them actually runs
// the expensive fetch and the others wait for its result.
package coalesce

import (
	"context"
	"sync"
	"time"
)

// fetchTimeout bounds one coalesced fetch. It is shared by all waiters: the
// timer starts when the leader starts, not when each waiter joins.
const fetchTimeout = 30 * time.Second

type call struct {
	done  chan struct{}
	value any
	err   error
}

// Group deduplicates concurrent fetches by key. The zero value is not usable;
// use NewGroup.
type Group struct {
	mutex    sync.Mutex
	inflight map[string]*call
	// Usually fetchTimeout, but can be changed inside unit tests.
	Timeout time.Duration
}

// NewGroup creates a Group.
func NewGroup() *Group {
	return &Group{
		inflight: make(map[string]*call),
		Timeout:  fetchTimeout,
	}
}

// Do executes fetch once per key, coalescing concurrent callers: if another
// goroutine is already fetching for the same key, the caller waits for that
// fetch instead of starting its own, and all of them receive the same result
// (or the same error).
//
// The fetch runs on a fresh context detached from any request, so one caller
// disconnecting cannot fail the fetch for the others; ctx only bounds this
// caller's wait. A fetch exceeding the shared timeout fails all waiters with
// context.DeadlineExceeded.
func (g *Group) Do(ctx context.Context, key string, fetch func(ctx context.Context) (any, error)) (any, error) {
	g.mutex.Lock()
	if existing, ok := g.inflight[key]; ok {
		g.mutex.Unlock()
		return existing.wait(ctx)
	}

	leader := &call{done: make(chan struct{})}
	g.inflight[key] = leader
	g.mutex.Unlock()

	go func() {
		fetchCtx, cancel := context.WithTimeout(context.Background(), g.Timeout)
		defer cancel()

		type result struct {
			value any
			err   error
		}
		resultChan := make(chan result, 1)
		go func() {
			value, err := fetch(fetchCtx)
			resultChan <- result{value, err}
		}()

		var value any
		var err error
		select {
		case r := <-resultChan:
			value, err = r.value, r.err
		case <-fetchCtx.Done():
			// the fetch is abandoned; its context is canceled so it can
			// stop wasting a connection
			err = fetchCtx.Err()
		}

		g.mutex.Lock()
		delete(g.inflight, key)
		g.mutex.Unlock()

		leader.value = value
		leader.err = err
		close(leader.done)
	}()

	return leader.wait(ctx)
}

func (c *call) wait(ctx context.Context) (any, error) {
	select {
	case <-c.done:
		return c.value, c.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
