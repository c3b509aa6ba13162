// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codextool

import (
	"fmt"
	"strings"

	"github.com/bureau-foundation/codex-mcp/lib/codex"
)

// Render formats a result as the single response string every
// operation returns. Lines appear in a fixed order:
//
//	<output>               if non-empty
//	[exit code <code>]     if the code is nonzero
//	[stderr] <diagnostic>  if non-empty
//	[no output]            if none of the above were emitted
//	[model: <model>]       always
//
// Render is pure: equal results render to equal strings.
func Render(result codex.Result) string {
	var lines []string
	if result.Output != "" {
		lines = append(lines, result.Output)
	}
	if result.ExitCode != 0 {
		lines = append(lines, fmt.Sprintf("[exit code %d]", result.ExitCode))
	}
	if result.Stderr != "" {
		lines = append(lines, "[stderr] "+result.Stderr)
	}
	if len(lines) == 0 {
		lines = append(lines, "[no output]")
	}
	lines = append(lines, fmt.Sprintf("[model: %s]", result.Model))
	return strings.Join(lines, "\n")
}
