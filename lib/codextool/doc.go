// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codextool implements the three codex operations the server
// exposes: Ask (an inline question with optional conversation
// context), Exec (a raw prompt with an optional output schema), and
// Review (a diff reviewed against the published code review prompt
// and the embedded review schema).
//
// Each operation validates its parameters, assembles a prompt, hands
// it to an [Invoker] (in production a [codex.Runner]), and renders the
// [codex.Result] with [Render]. Parameter problems are reported as
// [*InputError] before any process is started. Everything the runner
// observes (timeouts, missing executable, nonzero exits) comes back as
// rendered text, not as an error.
//
// The parameter structs carry json, flag, and desc tags so that the
// MCP tool schemas and the one-shot CLI commands are generated from
// the same declaration.
package codextool
