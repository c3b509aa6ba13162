// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codex

import "time"

// Defaults applied when a Request or Options field is left zero.
const (
	DefaultModel           = "gpt-5.3-codex"
	DefaultFallbackModel   = "gpt-5.2-codex"
	DefaultReasoningEffort = "xhigh"
	DefaultTimeout         = 600 * time.Second
	DefaultGracePeriod     = 5 * time.Second
	DefaultBinary          = "codex"
)

// Request describes one codex invocation.
type Request struct {
	// Prompt is the instruction text, delivered to codex on stdin.
	Prompt string

	// Model is passed as -c model="<Model>". Empty selects the
	// runner's primary model.
	Model string

	// ReasoningEffort is passed as -c model_reasoning_effort="<...>".
	// Empty selects DefaultReasoningEffort.
	ReasoningEffort string

	// OutputSchemaPath, when set, is passed as --output-schema so
	// codex constrains its final message to the JSON schema.
	OutputSchemaPath string

	// Timeout bounds the wall-clock lifetime of each attempt.
	// Non-positive selects DefaultTimeout.
	Timeout time.Duration
}
