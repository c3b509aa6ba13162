// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codextool

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bureau-foundation/codex-mcp/lib/codex"
)

// Invoker runs one full codex invocation. [*codex.Runner] implements
// it; tests substitute a recorder.
type Invoker interface {
	Run(ctx context.Context, request codex.Request) codex.Result
}

// Options configures a Service.
type Options struct {
	// ReviewSchemaPath, when set, replaces the embedded review schema
	// with a file the operator maintains.
	ReviewSchemaPath string

	// SchemaDirectory receives the materialized embedded review
	// schema. Ignored when ReviewSchemaPath is set.
	SchemaDirectory string

	// Logger receives one record per operation. Nil discards them.
	Logger *slog.Logger
}

// Service implements Ask, Exec, and Review on top of an Invoker. It is
// safe for concurrent use.
type Service struct {
	invoker Invoker
	logger  *slog.Logger
	options Options

	schemaMu   sync.Mutex
	schemaPath string
}

// NewService returns a Service that sends every request to invoker.
// The review schema is resolved on the first Review call that needs it;
// a failure is not remembered, so a later Review tries again.
func NewService(invoker Invoker, options Options) *Service {
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		invoker: invoker,
		logger:  logger,
		options: options,
	}
}

// reviewSchema returns the path codex receives as the review output
// schema, resolving it once it can be resolved successfully.
func (s *Service) reviewSchema() (string, error) {
	s.schemaMu.Lock()
	defer s.schemaMu.Unlock()
	if s.schemaPath != "" {
		return s.schemaPath, nil
	}

	var path string
	if s.options.ReviewSchemaPath != "" {
		absolute, err := filepath.Abs(s.options.ReviewSchemaPath)
		if err != nil {
			return "", fmt.Errorf("resolving review_schema %q: %w", s.options.ReviewSchemaPath, err)
		}
		if _, err := os.Stat(absolute); err != nil {
			return "", fmt.Errorf("review_schema: %w", err)
		}
		path = absolute
	} else {
		materialized, err := MaterializeReviewSchema(s.options.SchemaDirectory)
		if err != nil {
			return "", err
		}
		path = materialized
	}
	s.schemaPath = path
	return path, nil
}

// Ask sends a question, framed by the ask preamble and any
// conversation context, and returns the rendered result. The question
// is passed through even when empty; codex decides what to make of it.
func (s *Service) Ask(ctx context.Context, params AskParams) (string, error) {
	request, err := params.InvocationParams.request(askPrompt(params.Question, params.ConversationContext))
	if err != nil {
		return "", err
	}
	return s.run(ctx, "ask", request), nil
}

// Exec sends a caller-authored prompt verbatim. When OutputSchema is
// set it must name an existing file; codex receives its absolute path.
func (s *Service) Exec(ctx context.Context, params ExecParams) (string, error) {
	request, err := params.InvocationParams.request(params.Prompt)
	if err != nil {
		return "", err
	}
	if params.OutputSchema != "" {
		request.OutputSchemaPath, err = existingFile("output_schema", params.OutputSchema)
		if err != nil {
			return "", err
		}
	}
	return s.run(ctx, "exec", request), nil
}

// Review asks codex to review a diff and answer in the review schema.
func (s *Service) Review(ctx context.Context, params ReviewParams) (string, error) {
	if strings.TrimSpace(params.Diff) == "" {
		return "", invalid("diff", "diff is empty. Nothing to review.")
	}
	request, err := params.InvocationParams.request(reviewPrompt(params.Diff, params.Focus, params.ProjectContext))
	if err != nil {
		return "", err
	}
	request.OutputSchemaPath, err = s.reviewSchema()
	if err != nil {
		return "", fmt.Errorf("preparing review schema: %w", err)
	}
	return s.run(ctx, "review", request), nil
}

func (s *Service) run(ctx context.Context, operation string, request codex.Request) string {
	result := s.invoker.Run(ctx, request)
	s.logger.Info("codex operation complete",
		"operation", operation,
		"model", result.Model,
		"exit_code", result.ExitCode,
		"attempts", result.Attempts,
		"duration", result.Duration,
	)
	return Render(result)
}

// maxTimeoutSeconds is the largest timeout_seconds that converts to a
// time.Duration without overflowing.
const maxTimeoutSeconds = math.MaxInt64 / int64(time.Second)

// request converts the shared parameters into a runner request. Empty
// model and effort and a zero timeout are left for the runner to
// default.
func (p InvocationParams) request(prompt string) (codex.Request, error) {
	if p.TimeoutSeconds < 0 {
		return codex.Request{}, invalid("timeout_seconds", "timeout_seconds must be positive, got %d.", p.TimeoutSeconds)
	}
	if int64(p.TimeoutSeconds) > maxTimeoutSeconds {
		return codex.Request{}, invalid("timeout_seconds", "timeout_seconds must be at most %d, got %d.", maxTimeoutSeconds, p.TimeoutSeconds)
	}
	return codex.Request{
		Prompt:          prompt,
		Model:           strings.TrimSpace(p.Model),
		ReasoningEffort: strings.TrimSpace(p.ReasoningEffort),
		Timeout:         time.Duration(p.TimeoutSeconds) * time.Second,
	}, nil
}

// existingFile resolves path to an absolute path and checks that it
// exists. The error message quotes path as the caller wrote it.
func existingFile(parameter, path string) (string, error) {
	absolute, err := filepath.Abs(path)
	if err != nil {
		return "", invalid(parameter, "%s path %q: %v", parameter, path, err)
	}
	if _, err := os.Stat(absolute); err != nil {
		return "", missing(parameter, "%s file not found: %s", parameter, path)
	}
	return absolute, nil
}
