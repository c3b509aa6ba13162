// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/codex-mcp/cmd/codex-mcp/cli"
	"github.com/bureau-foundation/codex-mcp/lib/codex"
	"github.com/bureau-foundation/codex-mcp/lib/codextool"
)

// exitInvalidInput is the exit status for input rejected before codex
// was started.
const exitInvalidInput = 2

// resultRecorder keeps the last result so a one-shot command can exit
// with codex's status.
type resultRecorder struct {
	invoker codextool.Invoker

	mu   sync.Mutex
	last codex.Result
}

func (r *resultRecorder) Run(ctx context.Context, request codex.Request) codex.Result {
	result := r.invoker.Run(ctx, request)
	r.mu.Lock()
	r.last = result
	r.mu.Unlock()
	return result
}

func (r *resultRecorder) result() codex.Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

// oneShot loads the environment with a recording invoker, runs
// operation, and prints its response.
func oneShot(
	stdio streams,
	level *slog.LevelVar,
	logger *slog.Logger,
	flags *configFlags,
	operation func(*codextool.Service) (string, error),
) error {
	recorder := &resultRecorder{}
	env, err := flags.environment(level, logger, func(runner codextool.Invoker) codextool.Invoker {
		recorder.invoker = runner
		return recorder
	})
	if err != nil {
		return err
	}
	response, err := operation(env.service)
	return printResponse(stdio, response, err, recorder.result())
}

// printResponse writes a rendered response to stdout, styled when
// stdout is a terminal. Input errors go to stderr. A nonzero codex
// exit becomes the process exit status. An attempt the runner had to
// stop, or a status outside 1-255, exits 1.
func printResponse(stdio streams, response string, err error, result codex.Result) error {
	var inputErr *codextool.InputError
	if errors.As(err, &inputErr) {
		fmt.Fprintln(stdio.err, err)
		return &cli.ExitError{Code: exitInvalidInput}
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(stdio.out, cli.NewStyles(stdio.out).Response(response))
	switch {
	case result.Succeeded():
		return nil
	case result.Terminated() || result.ExitCode > 255:
		return &cli.ExitError{Code: 1}
	default:
		return &cli.ExitError{Code: result.ExitCode}
	}
}

// textArgument returns the positional arguments joined by spaces, or
// all of stdin when there are none. An interactive stdin is not read:
// the caller must pass the text as arguments.
func textArgument(stdio streams, args []string, name string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if stdio.interactive {
		return "", cli.Validation("%s required: pass it as arguments or pipe it on stdin", name)
	}
	data, err := io.ReadAll(stdio.in)
	if err != nil {
		return "", cli.Internal("reading %s from stdin: %w", name, err)
	}
	return string(data), nil
}

// readSource reads path, where "-" means stdin.
func readSource(stdio streams, path, name string) (string, error) {
	if path == "-" {
		if stdio.interactive {
			return "", cli.Validation("%s required: pipe it on stdin or pass --%s-file", name, name)
		}
		data, err := io.ReadAll(stdio.in)
		if err != nil {
			return "", cli.Internal("reading %s from stdin: %w", name, err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", cli.NotFound("%s file not found: %s", name, path)
		}
		return "", cli.Internal("reading %s: %w", name, err)
	}
	return string(data), nil
}

func withConfig(name string, params any, flags *configFlags) func() *pflag.FlagSet {
	return func() *pflag.FlagSet {
		return flags.bind(cli.FlagsFromParams(name, params))
	}
}

func askCommand(stdio streams, level *slog.LevelVar) *cli.Command {
	var params codextool.AskParams
	var flags configFlags
	return &cli.Command{
		Name:    "ask",
		Summary: "Ask codex a question",
		Description: `Ask codex a question and print its answer, as codex_ask does.

The question is the positional arguments joined by spaces, or stdin
when there are none. The exit status is codex's when it fails.`,
		Usage: "codex-mcp ask [flags] <question>",
		Flags: withConfig("ask", &params, &flags),
		Examples: []cli.Example{
			{
				Description: "Ask with a faster reasoning effort",
				Command:     `codex-mcp ask --reasoning-effort low "What does EINTR mean for read(2)?"`,
			},
			{
				Description: "Ask with context from a file",
				Command:     `codex-mcp ask --context "$(cat notes.md)" "Which approach is simpler?"`,
			},
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			question, err := textArgument(stdio, args, "question")
			if err != nil {
				return err
			}
			params.Question = question
			return oneShot(stdio, level, logger, &flags, func(service *codextool.Service) (string, error) {
				return service.Ask(ctx, params)
			})
		},
	}
}

func execCommand(stdio streams, level *slog.LevelVar) *cli.Command {
	var params codextool.ExecParams
	var flags configFlags
	return &cli.Command{
		Name:    "exec",
		Summary: "Send a raw prompt to codex",
		Description: `Send a prompt to codex verbatim and print the result, as codex_exec
does.

The prompt is the positional arguments joined by spaces, or stdin
when there are none.`,
		Usage: "codex-mcp exec [flags] <prompt>",
		Flags: withConfig("exec", &params, &flags),
		Examples: []cli.Example{
			{
				Description: "Constrain the answer with a JSON schema",
				Command:     "codex-mcp exec --output-schema answer.schema.json < prompt.txt",
			},
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			prompt, err := textArgument(stdio, args, "prompt")
			if err != nil {
				return err
			}
			params.Prompt = prompt
			return oneShot(stdio, level, logger, &flags, func(service *codextool.Service) (string, error) {
				return service.Exec(ctx, params)
			})
		},
	}
}

func reviewCommand(stdio streams, level *slog.LevelVar) *cli.Command {
	var params codextool.ReviewParams
	var flags configFlags
	return &cli.Command{
		Name:    "review",
		Summary: "Review a diff with codex",
		Description: `Review a git diff and print codex's structured findings, as
codex_review does.

The diff is read from --diff-file, which defaults to stdin.`,
		Usage: "codex-mcp review [flags]",
		Flags: withConfig("review", &params, &flags),
		Examples: []cli.Example{
			{
				Description: "Review staged changes",
				Command:     "git diff --cached | codex-mcp review",
			},
			{
				Description: "Review a branch against the project's conventions",
				Command:     "git diff main... > change.diff && codex-mcp review --diff-file change.diff --project-context-file CONTRIBUTING.md",
			},
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("review takes no arguments (pass the diff with --diff-file or on stdin), got %q", args)
			}
			diff, err := readSource(stdio, params.DiffFile, "diff")
			if err != nil {
				return err
			}
			params.Diff = diff
			if params.ProjectContextFile != "" {
				params.ProjectContext, err = readSource(stdio, params.ProjectContextFile, "project-context")
				if err != nil {
					return err
				}
			}
			return oneShot(stdio, level, logger, &flags, func(service *codextool.Service) (string, error) {
				return service.Review(ctx, params)
			})
		},
	}
}
