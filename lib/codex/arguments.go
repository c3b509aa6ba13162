// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codex

import "fmt"

// commandLine returns the full argument vector for one attempt,
// starting with the resolved executable path. The order is fixed:
//
//	<binary> exec -c model="<model>" -c model_reasoning_effort="<effort>"
//	    --sandbox read-only --ephemeral -o <outputPath>
//	    [--output-schema <schema>] -
//
// The trailing "-" makes codex read the prompt from stdin, so prompt
// text never appears on the command line where length limits and
// shell-significant characters would matter.
func commandLine(binaryPath string, request Request, outputPath string) []string {
	arguments := []string{
		binaryPath,
		"exec",
		"-c", fmt.Sprintf("model=%q", request.Model),
		"-c", fmt.Sprintf("model_reasoning_effort=%q", request.ReasoningEffort),
		"--sandbox", "read-only",
		"--ephemeral",
		"-o", outputPath,
	}
	if request.OutputSchemaPath != "" {
		arguments = append(arguments, "--output-schema", request.OutputSchemaPath)
	}
	return append(arguments, "-")
}
