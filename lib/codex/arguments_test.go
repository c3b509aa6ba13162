// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codex

import (
	"slices"
	"testing"
)

func TestCommandLine(t *testing.T) {
	request := Request{Prompt: "ignored", Model: "gpt-5.3-codex", ReasoningEffort: "xhigh"}
	got := commandLine("/usr/bin/codex", request, "/tmp/codex-output-1.txt")
	want := []string{
		"/usr/bin/codex", "exec",
		"-c", `model="gpt-5.3-codex"`,
		"-c", `model_reasoning_effort="xhigh"`,
		"--sandbox", "read-only",
		"--ephemeral",
		"-o", "/tmp/codex-output-1.txt",
		"-",
	}
	if !slices.Equal(got, want) {
		t.Errorf("commandLine() =\n  %q\nwant\n  %q", got, want)
	}
}

func TestCommandLineOutputSchema(t *testing.T) {
	request := Request{
		Model:            "o3",
		ReasoningEffort:  "low",
		OutputSchemaPath: "/cache/review-schema.json",
	}
	got := commandLine("codex", request, "out.txt")

	if got[len(got)-1] != "-" {
		t.Errorf("last argument = %q, want %q", got[len(got)-1], "-")
	}
	index := slices.Index(got, "--output-schema")
	if index < 0 || index+1 >= len(got) {
		t.Fatalf("--output-schema missing from %q", got)
	}
	if got[index+1] != "/cache/review-schema.json" {
		t.Errorf("--output-schema value = %q", got[index+1])
	}
	if output := slices.Index(got, "-o"); output > index {
		t.Errorf("-o at %d should precede --output-schema at %d", output, index)
	}
}

func TestCommandLineNeverCarriesPrompt(t *testing.T) {
	prompt := "rm -rf / ; $(echo pwned) `id`"
	got := commandLine("codex", Request{Prompt: prompt, Model: "m", ReasoningEffort: "e"}, "out")
	for _, argument := range got {
		if argument == prompt {
			t.Fatalf("prompt text appeared in argument vector %q", got)
		}
	}
}

func TestCommandLineQuotesConfigValues(t *testing.T) {
	got := commandLine("codex", Request{Model: `weird"model`, ReasoningEffort: "high"}, "out")
	if got[3] != `model="weird\"model"` {
		t.Errorf("model override = %q, want escaped quote", got[3])
	}
}
