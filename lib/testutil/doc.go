// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for codex-mcp
// packages.
//
// [WriteExecutable] writes a POSIX shell script into a test's
// temporary directory and marks it executable. Runner and server
// tests use it to stand in for the codex binary: the script sees the
// exact argument vector and stdin the runner produces, and can write
// to the -o output file, print diagnostics, sleep past a deadline,
// or trap signals.
//
// [RequireReceive] encapsulates the timeout safety valve pattern
// (select with time.After fallback) so that individual tests do not
// need direct time.After calls.
//
// [ProcessAlive] probes the process table with signal 0 so tests can
// assert that a timed-out child was reaped rather than orphaned.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no internal dependencies.
package testutil
