// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package process provides the binary entrypoint helper for codex-mcp.
// It centralizes the raw I/O that happens after the structured logger
// is gone: reporting the error that ended main() and choosing the
// process exit code.
package process
