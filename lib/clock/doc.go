// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock abstracts wall-clock time for the codex process
// runner. The runner bounds every child process by a deadline and a
// termination grace period; both are measured through a [Clock] so
// tests can expire them without sleeping.
//
// [Real] delegates to the time package. [Fake] returns a
// [FakeClock] whose timers fire only when [FakeClock.Advance] moves
// time past their deadline. [FakeClock.WaitForTimers] lets a test
// wait until the code under test has armed its timer before
// advancing.
//
// This package has no internal dependencies.
package clock
