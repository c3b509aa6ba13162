// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/bureau-foundation/codex-mcp/cmd/codex-mcp/cli"
	"github.com/bureau-foundation/codex-mcp/cmd/codex-mcp/mcp"
	"github.com/bureau-foundation/codex-mcp/lib/codex"
	"github.com/bureau-foundation/codex-mcp/lib/codextool"
	"github.com/bureau-foundation/codex-mcp/lib/config"
	"github.com/bureau-foundation/codex-mcp/lib/version"
)

// streams are the standard streams a command reads and writes. Tests
// substitute buffers.
type streams struct {
	in  io.Reader
	out io.Writer
	err io.Writer

	// interactive is true when in is a terminal, so reading a
	// prompt from it would wait on the user.
	interactive bool
}

func standardStreams() streams {
	return streams{
		in:          os.Stdin,
		out:         os.Stdout,
		err:         os.Stderr,
		interactive: term.IsTerminal(int(os.Stdin.Fd())),
	}
}

// rootCommand builds the codex-mcp command tree. level is raised or
// lowered to the configured log_level once a command loads its
// configuration.
func rootCommand(stdio streams, level *slog.LevelVar) *cli.Command {
	return &cli.Command{
		Name: "codex-mcp",
		Description: `codex-mcp: the OpenAI Codex CLI as MCP tools.

Runs "codex exec" in a read-only sandbox on behalf of an MCP client,
with a per-call deadline, process-group termination, and a fallback
model when the primary model is refused.`,
		Subcommands: []*cli.Command{
			serveCommand(stdio, level),
			askCommand(stdio, level),
			execCommand(stdio, level),
			reviewCommand(stdio, level),
			configCommand(stdio, level),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(_ context.Context, args []string, _ *slog.Logger) error {
					fmt.Fprintf(stdio.out, "codex-mcp %s\n", version.Full())
					return nil
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "Register with an MCP client (the client launches this)",
				Command:     "codex-mcp serve",
			},
			{
				Description: "Ask a one-off question",
				Command:     `codex-mcp ask "Is this regex catastrophic: (a+)+$"`,
			},
			{
				Description: "Review staged changes with a security focus",
				Command:     "git diff --cached | codex-mcp review --focus security",
			},
			{
				Description: "Show the effective configuration",
				Command:     "codex-mcp config",
			},
		},
	}
}

// configFlags selects the configuration file. Every command that runs
// codex binds it alongside its own parameters.
type configFlags struct {
	Path string `flag:"config,c" desc:"configuration file (default: $CODEX_MCP_CONFIG, else built-in defaults)"`
}

// bind adds the configuration flags to flagSet.
func (c *configFlags) bind(flagSet *pflag.FlagSet) *pflag.FlagSet {
	if err := cli.BindFlags(c, flagSet); err != nil {
		panic(fmt.Sprintf("binding config flags: %v", err))
	}
	return flagSet
}

func (c *configFlags) load() (*config.Config, error) {
	if c.Path != "" {
		return config.LoadFile(c.Path)
	}
	return config.Load()
}

// environment is everything a codex-running command needs, built from
// the loaded configuration.
type environment struct {
	config  *config.Config
	runner  *codex.Runner
	service *codextool.Service
}

// environment loads the configuration, applies its log level, and
// builds the runner and service. invoke, when non-nil, wraps the
// runner as the service's invoker.
func (c *configFlags) environment(level *slog.LevelVar, logger *slog.Logger, invoke func(codextool.Invoker) codextool.Invoker) (*environment, error) {
	cfg, err := c.load()
	if err != nil {
		return nil, err
	}
	logLevel, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}
	level.Set(logLevel)

	runner := codex.NewRunner(codex.Options{
		Binary:             cfg.Codex.Binary,
		Model:              cfg.Codex.Model,
		FallbackModel:      cfg.Codex.FallbackModel,
		ReasoningEffort:    cfg.Codex.ReasoningEffort,
		Timeout:            cfg.Codex.Timeout,
		GracePeriod:        cfg.Codex.GracePeriod,
		StagingDirectory:   cfg.Paths.Staging,
		AuthFailureMarkers: cfg.Codex.AuthMarkers,
		Logger:             logger.With("component", "runner"),
	})

	var invoker codextool.Invoker = runner
	if invoke != nil {
		invoker = invoke(runner)
	}
	service := codextool.NewService(invoker, codextool.Options{
		ReviewSchemaPath: cfg.Paths.ReviewSchema,
		SchemaDirectory:  cfg.Paths.Cache,
		Logger:           logger.With("component", "service"),
	})
	return &environment{config: cfg, runner: runner, service: service}, nil
}

// defaults are the runner's effective defaults, as published in the
// MCP tool schemas.
func (e *environment) defaults() mcp.Defaults {
	return mcp.Defaults{
		Model:           e.runner.Model(),
		ReasoningEffort: e.runner.ReasoningEffort(),
		Timeout:         e.runner.Timeout(),
	}
}
