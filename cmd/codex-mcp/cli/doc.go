// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for codex-mcp.
//
// The central type is [Command], which represents a named subcommand with
// optional nested [Command.Subcommands], a [pflag.FlagSet] factory, and a
// Run function. Commands are assembled into a tree in cmd/codex-mcp and
// dispatched via [Command.Execute], which handles flag parsing,
// subcommand routing, and structured help output with examples.
//
// When a user types an unknown subcommand or flag, the framework computes
// Levenshtein edit distance against all known names and suggests the
// closest match (threshold: distance <= 3). This is implemented in
// suggest.go.
//
// Parameter structs declare their flags and their MCP input schema in
// one place: [FlagsFromParams] binds the flag/desc/default tags to a
// FlagSet, and [ParamsSchema] turns the json/desc/required tags into
// the JSON Schema that tools/list publishes.
//
// [ToolError] categorizes errors for the MCP errorInfo field,
// [ToolAnnotations] carries MCP behavior hints, and [Styles] renders
// the bracketed annotation lines of a codex response for terminals.
package cli
