// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for codex-mcp.
//
// Configuration comes from a single file named by either the
// CODEX_MCP_CONFIG environment variable (via [Load]) or a --config
// flag (via [LoadFile]). There is no ~/.config discovery and no
// per-field environment override. Unlike most services, codex-mcp is
// started by MCP clients that rarely pass configuration, so when no
// file is named [Load] returns [Default] rather than failing.
//
// Unknown keys are rejected so a misspelled option fails loudly
// instead of being ignored. Durations use Go syntax ("90s", "10m").
//
// Variable expansion is performed on path fields after loading:
// ${HOME}, ${TMPDIR}, and ${VAR:-default} patterns are expanded.
//
// Key exports:
//
//   - [Config] -- master struct with Codex, Paths, and LogLevel
//   - [Default] -- returns a Config with the built-in defaults
//   - [Load] and [LoadFile] -- the two entry points for loading
//
// This package depends only on lib/codex for its default values.
package config
