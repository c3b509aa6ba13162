// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codex

import "time"

// Exit codes the runner reports for outcomes where codex never ran to
// completion. Negative codes never come from a real process: a child
// killed by a signal the runner did not send reports 128+signal.
const (
	// ExitTimedOut means the runner terminated the child after its
	// deadline expired.
	ExitTimedOut = -1

	// ExitCancelled means the runner terminated the child because the
	// caller's context was cancelled (server shutdown).
	ExitCancelled = -2

	// ExitNotFound means the codex executable could not be resolved.
	ExitNotFound = 127

	// ExitStagingFailed means the runner could not prepare or start
	// the child (temporary file or fork/exec failure).
	ExitStagingFailed = 1
)

const notFoundMessage = "codex: command not found. Install with: npm i -g @openai/codex"

// Result is the outcome of an invocation.
type Result struct {
	// Output is codex's final message, read from the -o file and
	// trimmed of surrounding whitespace.
	Output string

	// Stderr is codex's diagnostic output, trimmed, or a runner
	// message for not-found, timeout, and staging failures.
	Stderr string

	// Model is the model the returned attempt used. It differs from
	// the requested model when [Runner.Run] fell back.
	Model string

	// ExitCode is the child's exit status or one of the Exit*
	// sentinels.
	ExitCode int

	// Attempts is 1, or 2 when a fallback attempt ran.
	Attempts int

	// Duration is the wall-clock time spent across all attempts.
	Duration time.Duration
}

// Succeeded reports whether the returned attempt exited with status 0.
func (r Result) Succeeded() bool { return r.ExitCode == 0 }

// Terminated reports whether the runner had to stop the child itself
// (deadline expiry or cancellation).
func (r Result) Terminated() bool { return r.ExitCode < 0 }
