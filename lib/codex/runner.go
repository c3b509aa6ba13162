// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codex

import (
	"context"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/zeebo/blake3"

	"github.com/bureau-foundation/codex-mcp/lib/clock"
)

// Options configures a Runner. Zero fields take the package defaults.
type Options struct {
	// Binary is the codex executable name or path. Names are
	// resolved on PATH at every attempt, so installing codex while
	// the server runs takes effect without a restart.
	Binary string

	// Model is the primary model. Requests that leave Model empty use
	// it, and only requests for this model are eligible for fallback.
	Model string

	// FallbackModel replaces Model for the single retry after an
	// authorization failure.
	FallbackModel string

	// ReasoningEffort is the default reasoning effort.
	ReasoningEffort string

	// Timeout is the default per-attempt deadline.
	Timeout time.Duration

	// GracePeriod is how long a terminated child may take to exit
	// after SIGTERM before it is killed.
	GracePeriod time.Duration

	// StagingDirectory holds the per-attempt temporary files. Empty
	// selects os.TempDir().
	StagingDirectory string

	// AuthFailureMarkers overrides DefaultAuthFailureMarkers.
	AuthFailureMarkers []string

	// Clock measures deadlines and grace periods. Nil selects
	// clock.Real().
	Clock clock.Clock

	// Logger receives attempt lifecycle events. Nil discards them.
	Logger *slog.Logger
}

// Runner launches codex exec invocations. It is immutable after
// construction and safe for concurrent use.
type Runner struct {
	binary           string
	model            string
	fallbackModel    string
	reasoningEffort  string
	timeout          time.Duration
	grace            time.Duration
	stagingDirectory string
	authFailures     AuthFailureMatcher
	clock            clock.Clock
	logger           *slog.Logger
}

// NewRunner returns a Runner with options applied over the defaults.
func NewRunner(options Options) *Runner {
	runner := &Runner{
		binary:           options.Binary,
		model:            options.Model,
		fallbackModel:    options.FallbackModel,
		reasoningEffort:  options.ReasoningEffort,
		timeout:          options.Timeout,
		grace:            options.GracePeriod,
		stagingDirectory: options.StagingDirectory,
		authFailures:     NewAuthFailureMatcher(options.AuthFailureMarkers),
		clock:            options.Clock,
		logger:           options.Logger,
	}
	if runner.binary == "" {
		runner.binary = DefaultBinary
	}
	if runner.model == "" {
		runner.model = DefaultModel
	}
	if runner.fallbackModel == "" {
		runner.fallbackModel = DefaultFallbackModel
	}
	if runner.reasoningEffort == "" {
		runner.reasoningEffort = DefaultReasoningEffort
	}
	if runner.timeout <= 0 {
		runner.timeout = DefaultTimeout
	}
	if runner.grace <= 0 {
		runner.grace = DefaultGracePeriod
	}
	if runner.stagingDirectory == "" {
		runner.stagingDirectory = os.TempDir()
	}
	if runner.clock == nil {
		runner.clock = clock.Real()
	}
	if runner.logger == nil {
		runner.logger = slog.New(slog.DiscardHandler)
	}
	return runner
}

// Model returns the primary model.
func (r *Runner) Model() string { return r.model }

// FallbackModel returns the model used after an authorization failure.
func (r *Runner) FallbackModel() string { return r.fallbackModel }

// ReasoningEffort returns the default reasoning effort.
func (r *Runner) ReasoningEffort() string { return r.reasoningEffort }

// Timeout returns the default per-attempt deadline.
func (r *Runner) Timeout() time.Duration { return r.timeout }

// LookPath resolves the codex executable the way each attempt does.
func (r *Runner) LookPath() (string, error) {
	return exec.LookPath(r.binary)
}

// Run performs one attempt and, when the primary model was refused
// for authorization reasons, exactly one more with the fallback
// model. The fallback attempt's result is returned as-is.
func (r *Runner) Run(ctx context.Context, request Request) Result {
	request = r.withDefaults(request)

	first := r.RunOnce(ctx, request)
	if !r.shouldFallBack(request, first) {
		return first
	}

	r.logger.Info("model refused, retrying with fallback model",
		"model", request.Model,
		"fallback_model", r.fallbackModel,
		"exit_code", first.ExitCode,
	)
	retry := request
	retry.Model = r.fallbackModel
	second := r.RunOnce(ctx, retry)
	second.Attempts = 2
	second.Duration += first.Duration
	return second
}

// shouldFallBack reports whether first qualifies for the fallback
// retry: a nonzero exit, an authorization-failure diagnostic, and a
// request for the primary model with a distinct fallback configured.
func (r *Runner) shouldFallBack(request Request, first Result) bool {
	if first.Succeeded() || !r.authFailures.Match(first.Stderr) {
		return false
	}
	return request.Model == r.model && r.fallbackModel != r.model
}

// RunOnce performs a single attempt without fallback.
func (r *Runner) RunOnce(ctx context.Context, request Request) Result {
	request = r.withDefaults(request)
	logger := r.logger.With(
		"model", request.Model,
		"reasoning_effort", request.ReasoningEffort,
		"prompt_digest", promptDigest(request.Prompt),
	)

	start := r.clock.Now()
	result := r.attempt(ctx, request, logger)
	result.Attempts = 1
	result.Duration = r.clock.Now().Sub(start)

	logger.Info("codex attempt finished",
		"exit_code", result.ExitCode,
		"duration", result.Duration,
		"output_bytes", len(result.Output),
	)
	return result
}

func (r *Runner) attempt(ctx context.Context, request Request, logger *slog.Logger) Result {
	binaryPath, err := exec.LookPath(r.binary)
	if err != nil {
		logger.Warn("codex executable not found", "binary", r.binary, "error", err)
		return Result{Stderr: notFoundMessage, Model: request.Model, ExitCode: ExitNotFound}
	}

	files, err := newStaging(r.stagingDirectory, request.Prompt)
	if err != nil {
		return stagingFailure(request, err)
	}
	defer func() {
		if err := files.remove(); err != nil {
			logger.Warn("removing staging files", "error", err)
		}
	}()

	stdin, err := os.Open(files.promptPath)
	if err != nil {
		return stagingFailure(request, fmt.Errorf("opening prompt file: %w", err))
	}
	defer stdin.Close()

	stderr, err := os.OpenFile(files.stderrPath, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return stagingFailure(request, fmt.Errorf("opening stderr file: %w", err))
	}
	defer stderr.Close()

	argv := commandLine(binaryPath, request, files.outputPath)
	command := exec.Command(argv[0], argv[1:]...)
	command.Stdin = stdin
	command.Stdout = nil
	command.Stderr = stderr

	logger.Info("starting codex attempt", "binary", binaryPath, "timeout", request.Timeout)
	process, err := startSupervised(command, r.clock, r.grace, logger)
	if err != nil {
		return stagingFailure(request, fmt.Errorf("starting codex: %w", err))
	}

	reason, waitErr := process.wait(ctx, request.Timeout)
	switch reason {
	case stopTimedOut:
		return Result{
			Stderr:   timeoutMessage(request.Timeout),
			Model:    request.Model,
			ExitCode: ExitTimedOut,
		}
	case stopCancelled:
		return Result{
			Stderr:   fmt.Sprintf("codex invocation cancelled: %v", context.Cause(ctx)),
			Model:    request.Model,
			ExitCode: ExitCancelled,
		}
	}

	return Result{
		Output:   readTrimmed(files.outputPath),
		Stderr:   readTrimmed(files.stderrPath),
		Model:    request.Model,
		ExitCode: exitCode(waitErr),
	}
}

// withDefaults fills zero request fields from the runner's defaults.
func (r *Runner) withDefaults(request Request) Request {
	if request.Model == "" {
		request.Model = r.model
	}
	if request.ReasoningEffort == "" {
		request.ReasoningEffort = r.reasoningEffort
	}
	if request.Timeout <= 0 {
		request.Timeout = r.timeout
	}
	return request
}

func stagingFailure(request Request, err error) Result {
	return Result{
		Stderr:   fmt.Sprintf("codex: %v", err),
		Model:    request.Model,
		ExitCode: ExitStagingFailed,
	}
}

// timeoutMessage names the elapsed deadline in whole seconds when it
// is one, which is always the case for deadlines set through the MCP
// tools.
func timeoutMessage(timeout time.Duration) string {
	elapsed := timeout.String()
	if timeout%time.Second == 0 {
		elapsed = fmt.Sprintf("%ds", int64(timeout/time.Second))
	}
	return fmt.Sprintf("Codex timed out after %s. Try narrowing the diff scope.", elapsed)
}

// promptDigest identifies a prompt in logs without recording its
// text: the first 8 bytes of its BLAKE3 hash, hex encoded.
func promptDigest(prompt string) string {
	sum := blake3.Sum256([]byte(prompt))
	return hex.EncodeToString(sum[:8])
}
