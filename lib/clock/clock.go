// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import "time"

// Clock abstracts the time operations the process runner needs so
// that deadline and grace-period handling can be driven
// deterministically in tests. Production code injects Real(); tests
// inject Fake().
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// NewTimer returns a Timer that delivers the current time on its
	// C channel after duration d. If d <= 0, the channel receives
	// immediately.
	NewTimer(d time.Duration) *Timer
}

// Timer is a one-shot timer. Read the fire time from C. Call Stop
// when the timer is no longer needed so that fake clocks stop
// counting it as pending.
type Timer struct {
	// C delivers the fire time. Buffered with capacity 1.
	C <-chan time.Time

	stopFunc func() bool
}

// Stop prevents the Timer from firing. Returns true if the call
// stopped the timer, false if it had already fired or been stopped.
func (t *Timer) Stop() bool { return t.stopFunc() }
