// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"sort"
	"sync"
	"time"
)

// Fake returns a FakeClock initialized to the given time. Time stands
// still until Advance is called.
//
// FakeClock is safe for concurrent use by multiple goroutines.
func Fake(initial time.Time) *FakeClock {
	clock := &FakeClock{current: initial}
	clock.timersChanged = sync.NewCond(&clock.mu)
	return clock
}

// FakeClock is a deterministic Clock for testing. Timers fire only
// when Advance moves the clock past their deadline.
type FakeClock struct {
	mu            sync.Mutex
	current       time.Time
	timers        []*fakeTimer
	timersChanged *sync.Cond
}

type fakeTimer struct {
	deadline time.Time
	channel  chan time.Time
}

// Now returns the current fake time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// NewTimer registers a timer that fires when the clock advances by at
// least d. If d <= 0 the timer fires immediately without being
// registered.
func (c *FakeClock) NewTimer(d time.Duration) *Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	channel := make(chan time.Time, 1)
	if d <= 0 {
		channel <- c.current
		return &Timer{C: channel, stopFunc: func() bool { return false }}
	}

	timer := &fakeTimer{deadline: c.current.Add(d), channel: channel}
	c.timers = append(c.timers, timer)
	c.timersChanged.Broadcast()

	return &Timer{
		C: channel,
		stopFunc: func() bool {
			c.mu.Lock()
			defer c.mu.Unlock()
			return c.removeLocked(timer)
		},
	}
}

// Advance moves the clock forward by d and fires every pending timer
// whose deadline falls at or before the new time, in deadline order.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.current = c.current.Add(d)
	now := c.current

	var expired, remaining []*fakeTimer
	for _, timer := range c.timers {
		if timer.deadline.After(now) {
			remaining = append(remaining, timer)
		} else {
			expired = append(expired, timer)
		}
	}
	c.timers = remaining
	c.mu.Unlock()

	sort.Slice(expired, func(i, j int) bool {
		return expired[i].deadline.Before(expired[j].deadline)
	})
	for _, timer := range expired {
		timer.channel <- now
	}
}

// WaitForTimers blocks until at least n timers are pending. This
// closes the race between a goroutine registering a timer and the
// test advancing the clock:
//
//	go func() { results <- runner.RunOnce(ctx, request) }()
//	fakeClock.WaitForTimers(1)        // deadline timer registered
//	fakeClock.Advance(request.Timeout) // deterministically expires it
func (c *FakeClock) WaitForTimers(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for len(c.timers) < n {
		c.timersChanged.Wait()
	}
}

// removeLocked drops timer from the pending list. Must be called with
// c.mu held. Returns false if the timer already fired or was stopped.
func (c *FakeClock) removeLocked(timer *fakeTimer) bool {
	for i, pending := range c.timers {
		if pending == timer {
			c.timers = append(c.timers[:i], c.timers[i+1:]...)
			c.timersChanged.Broadcast()
			return true
		}
	}
	return false
}
