// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/codex-mcp/cmd/codex-mcp/cli"
)

func configCommand(stdio streams, level *slog.LevelVar) *cli.Command {
	var flags configFlags
	return &cli.Command{
		Name:    "config",
		Summary: "Print the effective configuration",
		Description: `Print the configuration codex-mcp would run with, as YAML, after
defaults and ${VAR} expansion. A trailing comment reports whether the
codex executable resolves.`,
		Usage: "codex-mcp config [flags]",
		Flags: func() *pflag.FlagSet {
			return flags.bind(pflag.NewFlagSet("config", pflag.ContinueOnError))
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("config takes no arguments, got %q", args)
			}
			env, err := flags.environment(level, logger, nil)
			if err != nil {
				return err
			}
			data, err := env.config.Marshal()
			if err != nil {
				return cli.Internal("encoding configuration: %w", err)
			}
			fmt.Fprint(stdio.out, string(data))
			if path, err := env.runner.LookPath(); err != nil {
				fmt.Fprintf(stdio.out, "# codex executable: not found (%s)\n", env.config.Codex.Binary)
			} else {
				fmt.Fprintf(stdio.out, "# codex executable: %s\n", path)
			}
			return nil
		},
	}
}
