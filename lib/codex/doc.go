// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codex runs the OpenAI Codex CLI ("codex exec") as a bounded
// child process and returns its outcome as data.
//
// [Runner.RunOnce] performs a single attempt:
//
//  1. Resolve the codex executable on PATH. When it is missing the
//     attempt returns [ExitNotFound] without creating any file or
//     process.
//  2. Stage the prompt, the final-message output, and stderr through
//     three uniquely named temporary files. The prompt reaches the
//     child on stdin; stdout is discarded; the final message is read
//     back from the file codex writes via -o. Reading files after
//     exit avoids partial reads from a child that buffers its output.
//  3. Wait for exit, bounded by [Request].Timeout. On expiry the
//     child's process group is driven through an explicit
//     terminate-then-kill sequence (see supervise.go) and the attempt
//     returns [ExitTimedOut].
//  4. Remove all staging files on every path.
//
// [Runner.Run] wraps RunOnce with a single fallback: when the primary
// model is rejected with an authorization-style diagnostic, the same
// request is retried once with the fallback model. Codex reports
// restricted model access only through stderr wording, never through
// a distinct exit code, so detection is a text match isolated in
// [AuthFailureMatcher].
//
// Failures never surface as Go errors: every path yields a [Result]
// that the caller can render. A Runner holds no mutable state and is
// safe for concurrent use; concurrent invocations own disjoint
// processes and staging files.
package codex
