// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codextool

import (
	"strings"
	"testing"
)

func TestAskPrompt(t *testing.T) {
	t.Parallel()

	got := askPrompt("What is 2+2?", "")
	if want := askPreamble + "\n\nWhat is 2+2?"; got != want {
		t.Errorf("askPrompt without context = %q, want %q", got, want)
	}

	got = askPrompt("Is this safe?", "\n  we discussed locking  \n")
	want := askPreamble + "\n\nConversation context:\n---\nwe discussed locking\n---\n\nIs this safe?"
	if got != want {
		t.Errorf("askPrompt with context = %q, want %q", got, want)
	}
}

func TestAskPromptBlankContextOmitted(t *testing.T) {
	t.Parallel()
	if got := askPrompt("q", " \n\t "); strings.Contains(got, "Conversation context") {
		t.Errorf("blank context produced a context block: %q", got)
	}
}

func TestReviewPrompt(t *testing.T) {
	t.Parallel()

	diff := "--- a/x.go\n+++ b/x.go\n@@ -1 +1 @@\n-old\n+new\n"
	got := reviewPrompt(diff, " security ", "Use tabs.")
	want := reviewPreamble + "\n\n" +
		"Project conventions and standards:\n---\nUse tabs.\n---\n\n" +
		"Focus: security\n\n" +
		"Diff to review:\n---\n" + diff + "\n---"
	if got != want {
		t.Errorf("reviewPrompt() =\n%q\nwant\n%q", got, want)
	}
}

func TestReviewPromptMinimal(t *testing.T) {
	t.Parallel()
	got := reviewPrompt("+x", "", "")
	want := reviewPreamble + "\n\nDiff to review:\n---\n+x\n---"
	if got != want {
		t.Errorf("reviewPrompt() = %q, want %q", got, want)
	}
}

func TestReviewPreambleVerbatim(t *testing.T) {
	t.Parallel()
	lines := strings.Split(reviewPreamble, "\n")
	if len(lines) != 7 {
		t.Fatalf("review preamble has %d lines, want 7", len(lines))
	}
	if !strings.HasPrefix(lines[0], "You are acting as a reviewer") {
		t.Errorf("first line = %q", lines[0])
	}
	if !strings.Contains(lines[5], `("patch is correct" or "patch is incorrect")`) {
		t.Errorf("verdict line = %q", lines[5])
	}
}
