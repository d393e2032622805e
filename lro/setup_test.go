package lro

import (
	"context"
	"errors"
	"sync"
	"time"
)

const testTimeout = time.Second * 5

// fakeClock advances instantly on Sleep and records every requested duration.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	sleeps []time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1700000000, 0)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
	return nil
}

func (c *fakeClock) Sleeps() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Duration(nil), c.sleeps...)
}

// scriptedFetcher replays a list of statuses, repeating the last one forever.
type scriptedFetcher struct {
	id       string
	statuses []Status
	// failAt makes the n-th call (1-based) return errFetch.
	failAt int
	calls  int
}

var errFetch = errors.New("connection reset")

func (f *scriptedFetcher) Fetch(ctx context.Context) (*Operation[string], error) {
	f.calls++
	if f.failAt != 0 && f.calls == f.failAt {
		return nil, errFetch
	}
	i := f.calls - 1
	if i >= len(f.statuses) {
		i = len(f.statuses) - 1
	}
	return &Operation[string]{ID: f.id, Status: f.statuses[i], Result: string(f.statuses[i])}, nil
}
