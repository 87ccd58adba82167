// SPDX-FileCopyrightText: 2025 5C Menu contributors
// SPDX-License-Identifier: Apache-2.0

package coalesce

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sapcc/go-bits/assert"
)

func TestDoCoalescesConcurrentCallers(t *testing.T) {
	group := NewGroup()
	ctx := context.Background()

	var fetchCount atomic.Int64
	release := make(chan struct{})
	fetch := func(context.Context) (any, error) {
		fetchCount.Add(1)
		<-release
		return "payload", nil
	}

	const callerCount = 10
	var wg sync.WaitGroup
	results := make([]any, callerCount)
	errs := make([]error, callerCount)
	for i := range callerCount {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = group.Do(ctx, "menu:frary:2026-02-07:lunch", fetch)
		}()
	}

	// wait until one fetch is running, then let it finish
	for fetchCount.Load() == 0 {
		time.Sleep(time.Millisecond)
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.DeepEqual(t, "fetch count", fetchCount.Load(), int64(1))
	for i := range callerCount {
		if errs[i] != nil {
			t.Fatalf("caller %d: %s", i, errs[i].Error())
		}
		assert.DeepEqual(t, "result", results[i], any("payload"))
	}
}

func TestDoSharesErrors(t *testing.T) {
	group := NewGroup()
	fetchErr := errors.New("vendor is on fire")

	value, err := group.Do(context.Background(), "k", func(context.Context) (any, error) {
		return nil, fetchErr
	})
	if value != nil {
		t.Errorf("expected nil value, got %v", value)
	}
	if !errors.Is(err, fetchErr) {
		t.Errorf("expected %q, got %v", fetchErr.Error(), err)
	}
}

func TestDoRunsAgainAfterCompletion(t *testing.T) {
	group := NewGroup()
	ctx := context.Background()

	var fetchCount atomic.Int64
	fetch := func(context.Context) (any, error) {
		return fetchCount.Add(1), nil
	}

	// sequential calls are not coalesced
	first, err := group.Do(ctx, "k", fetch)
	if err != nil {
		t.Fatal(err)
	}
	second, err := group.Do(ctx, "k", fetch)
	if err != nil {
		t.Fatal(err)
	}
	assert.DeepEqual(t, "first result", first, any(int64(1)))
	assert.DeepEqual(t, "second result", second, any(int64(2)))
}

func TestDoTimeout(t *testing.T) {
	group := NewGroup()
	group.Timeout = 50 * time.Millisecond

	start := time.Now()
	_, err := group.Do(context.Background(), "k", func(ctx context.Context) (any, error) {
		<-ctx.Done() // a fetch that never finishes on its own
		time.Sleep(time.Hour)
		return nil, nil
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected DeadlineExceeded, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("waiter was not released at the deadline (took %s)", elapsed)
	}
}

func TestDoWaiterContextCancellation(t *testing.T) {
	group := NewGroup()
	release := make(chan struct{})
	defer close(release)

	leaderCtx := context.Background()
	go func() {
		_, _ = group.Do(leaderCtx, "k", func(context.Context) (any, error) {
			<-release
			return "payload", nil
		})
	}()

	// wait until the leader's call is registered
	for {
		group.mutex.Lock()
		_, inflight := group.inflight["k"]
		group.mutex.Unlock()
		if inflight {
			break
		}
		time.Sleep(time.Millisecond)
	}

	// a waiter with a canceled context gives up without affecting the leader
	waiterCtx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := group.Do(waiterCtx, "k", func(context.Context) (any, error) {
		t.Error("waiter must not start its own fetch")
		return nil, nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected Canceled, got %v", err)
	}
}
