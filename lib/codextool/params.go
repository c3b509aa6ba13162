// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codextool

// InvocationParams are the execution settings every operation accepts.
// Zero values select the server's configured defaults.
type InvocationParams struct {
	Model           string `json:"model,omitempty"            flag:"model,m"          desc:"codex model to use"`
	ReasoningEffort string `json:"reasoning_effort,omitempty" flag:"reasoning-effort" desc:"reasoning effort level (minimal, low, medium, high, xhigh)"`
	TimeoutSeconds  int    `json:"timeout_seconds,omitempty"  flag:"timeout-seconds"  desc:"deadline for each codex attempt, in seconds"`
}

// AskParams are the parameters of codex_ask.
type AskParams struct {
	Question            string `json:"question"                       desc:"the question or instruction for codex" required:"true"`
	ConversationContext string `json:"conversation_context,omitempty" flag:"context" desc:"recent conversation history or other context that informs the answer"`
	InvocationParams
}

// ExecParams are the parameters of codex_exec.
type ExecParams struct {
	Prompt       string `json:"prompt"                  desc:"the complete prompt text to send to codex" required:"true"`
	OutputSchema string `json:"output_schema,omitempty" flag:"output-schema" desc:"path to a JSON schema file that constrains the final response"`
	InvocationParams
}

// ReviewParams are the parameters of codex_review. DiffFile and
// ProjectContextFile exist only on the command line, where pasting a
// diff into a flag is impractical.
type ReviewParams struct {
	Diff           string `json:"diff"                      desc:"the git diff text to review" required:"true"`
	Focus          string `json:"focus,omitempty"           flag:"focus" desc:"optional focus area, e.g. security or performance"`
	ProjectContext string `json:"project_context,omitempty" desc:"project conventions and standards, e.g. the contents of CLAUDE.md or CONTRIBUTING.md"`

	DiffFile           string `json:"-" flag:"diff-file"            desc:"read the diff from this file (- for stdin)" default:"-"`
	ProjectContextFile string `json:"-" flag:"project-context-file" desc:"read project conventions from this file"`

	InvocationParams
}
