// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/codex-mcp/cmd/codex-mcp/cli"
	"github.com/bureau-foundation/codex-mcp/cmd/codex-mcp/mcp"
)

func serveCommand(stdio streams, level *slog.LevelVar) *cli.Command {
	var flags configFlags
	return &cli.Command{
		Name:    "serve",
		Summary: "Start the MCP server on stdin/stdout",
		Description: `Start a Model Context Protocol server that reads JSON-RPC 2.0
requests from stdin and writes responses to stdout.

The server exposes codex_ask, codex_exec, and codex_review. Each
tools/call runs codex in its own goroutine, so a long review does not
hold up a quick question. SIGINT or SIGTERM terminates every running
codex process group before the server exits.

This command is intended to be launched by an MCP client as a
subprocess. Logs go to stderr.`,
		Usage: "codex-mcp serve [flags]",
		Flags: func() *pflag.FlagSet {
			return flags.bind(pflag.NewFlagSet("serve", pflag.ContinueOnError))
		},
		Examples: []cli.Example{
			{
				Description: "Start the server (normally launched by the MCP client)",
				Command:     "codex-mcp serve",
			},
			{
				Description: "Start with an explicit configuration file",
				Command:     "codex-mcp serve --config ~/.config/codex-mcp/config.yaml",
			},
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("serve takes no arguments, got %q", args)
			}
			env, err := flags.environment(level, logger, nil)
			if err != nil {
				return err
			}

			if stdio.interactive {
				logger.Warn("stdin is a terminal; serve expects an MCP client to send JSON-RPC on stdin")
			}
			if path, err := env.runner.LookPath(); err != nil {
				logger.Warn("codex executable not found; tool calls will report exit code 127",
					"binary", env.config.Codex.Binary)
			} else {
				logger.Info("codex executable resolved", "path", path)
			}

			server, err := mcp.NewServer(mcp.CodexTools(env.service, env.defaults()), logger.With("component", "mcp"))
			if err != nil {
				return cli.Internal("building MCP server: %w", err)
			}
			return server.Run(ctx, stdio.in, stdio.out)
		},
	}
}
