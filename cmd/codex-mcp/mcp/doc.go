// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package mcp implements a Model Context Protocol server that exposes
// the codex operations as MCP tools over newline-delimited JSON-RPC 2.0
// on stdin/stdout.
//
// Each [Tool] pairs a parameter struct with a call function. The
// server generates the tool's inputSchema from the struct's json,
// desc, and required tags via [cli.ParamsSchema], then overlays the
// defaults that are only known at runtime (the configured model,
// reasoning effort, and timeout).
//
// tools/call requests run concurrently, each in its own goroutine,
// because a single codex invocation can take minutes. Responses are
// written whole, one per line, under a write lock. Caller input errors
// become tool results with isError set and an errorInfo category;
// codex failures are ordinary results whose text carries the exit
// code and diagnostic.
//
// This package implements the 2025-11-25 MCP protocol specification.
package mcp
