// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// codex-mcp exposes the OpenAI Codex CLI to MCP clients as the
// codex_ask, codex_exec, and codex_review tools. "codex-mcp serve" is
// the server an MCP client launches; ask, exec, and review run the
// same operations once from a shell.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bureau-foundation/codex-mcp/cmd/codex-mcp/cli"
	"github.com/bureau-foundation/codex-mcp/lib/process"
)

func main() {
	if err := run(); err != nil {
		process.Fatal(err)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var level slog.LevelVar
	logger := cli.NewCommandLogger(&level)
	return rootCommand(standardStreams(), &level).Execute(ctx, os.Args[1:], logger)
}
