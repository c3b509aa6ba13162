// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package mcp

import (
	"context"
	"errors"
	"time"

	"github.com/bureau-foundation/codex-mcp/cmd/codex-mcp/cli"
	"github.com/bureau-foundation/codex-mcp/lib/codextool"
)

// Operations is the subset of [codextool.Service] the tools call.
type Operations interface {
	Ask(ctx context.Context, params codextool.AskParams) (string, error)
	Exec(ctx context.Context, params codextool.ExecParams) (string, error)
	Review(ctx context.Context, params codextool.ReviewParams) (string, error)
}

// Defaults are the invocation settings applied when a call leaves them
// out. They are published in every tool's input schema.
type Defaults struct {
	Model           string
	ReasoningEffort string
	Timeout         time.Duration
}

func (d Defaults) schemaDefaults() map[string]any {
	defaults := map[string]any{}
	if d.Model != "" {
		defaults["model"] = d.Model
	}
	if d.ReasoningEffort != "" {
		defaults["reasoning_effort"] = d.ReasoningEffort
	}
	if seconds := int(d.Timeout / time.Second); seconds > 0 {
		defaults["timeout_seconds"] = seconds
	}
	return defaults
}

// CodexTools returns codex_ask, codex_exec, and codex_review backed by
// operations.
func CodexTools(operations Operations, defaults Defaults) []Tool {
	schemaDefaults := defaults.schemaDefaults()
	return []Tool{
		{
			Name:  "codex_ask",
			Title: "Ask Codex",
			Description: `Ask Codex a question inline, like swapping in an OpenAI model for one turn.

USE THIS when the user wants Codex's opinion, wants to "ask codex",
or wants a second perspective on a question mid-conversation.
Pass conversation_context so Codex knows what's been discussed.
Returns plain text, NOT structured JSON.

DO NOT use this for code review (use codex_review instead) or for
raw prompt control with custom schemas (use codex_exec instead).`,
			Annotations: cli.ExternalQuery(),
			Params:      func() any { return &codextool.AskParams{} },
			Defaults:    schemaDefaults,
			Call: func(ctx context.Context, params any) (string, error) {
				return categorize(operations.Ask(ctx, *params.(*codextool.AskParams)))
			},
		},
		{
			Name:  "codex_exec",
			Title: "Run a Codex prompt",
			Description: `Send a raw prompt to Codex with full control over the input.

USE THIS when you need to craft a custom prompt from scratch, or
need structured output via a custom JSON schema. This is the
low-level tool: you control the entire prompt.

DO NOT use this for code review (use codex_review instead) or for
simple questions mid-conversation (use codex_ask instead).`,
			Annotations: cli.ExternalQuery(),
			Params:      func() any { return &codextool.ExecParams{} },
			Defaults:    schemaDefaults,
			Call: func(ctx context.Context, params any) (string, error) {
				return categorize(operations.Exec(ctx, *params.(*codextool.ExecParams)))
			},
		},
		{
			Name:  "codex_review",
			Title: "Review a diff with Codex",
			Description: `Review a git diff for bugs, security issues, and correctness.

USE THIS when you have a git diff to review. Returns structured
JSON with prioritized findings, confidence scores, and exact file
locations. Uses OpenAI's published code review prompt.

DO NOT use this for general questions (use codex_ask) or for
non-review prompts (use codex_exec).`,
			Annotations: cli.ExternalQuery(),
			Params:      func() any { return &codextool.ReviewParams{} },
			Defaults:    schemaDefaults,
			Call: func(ctx context.Context, params any) (string, error) {
				return categorize(operations.Review(ctx, *params.(*codextool.ReviewParams)))
			},
		},
	}
}

// categorize converts codextool errors into tool errors carrying the
// category the client sees in errorInfo. The message text is kept.
func categorize(output string, err error) (string, error) {
	if err == nil {
		return output, nil
	}
	var inputErr *codextool.InputError
	if errors.As(err, &inputErr) {
		if inputErr.Missing {
			return output, &cli.ToolError{Category: cli.CategoryNotFound, Err: err}
		}
		return output, &cli.ToolError{Category: cli.CategoryValidation, Err: err}
	}
	return output, &cli.ToolError{Category: cli.CategoryInternal, Err: err}
}
