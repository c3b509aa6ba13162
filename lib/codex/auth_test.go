// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codex

import (
	"slices"
	"testing"
)

func TestAuthFailureMatcherDefaults(t *testing.T) {
	matcher := NewAuthFailureMatcher(nil)

	tests := []struct {
		name       string
		diagnostic string
		want       bool
	}{
		{"chatgpt account", "Error: The 'gpt-5.3-codex' model is not supported when using Codex with a ChatGPT account.", true},
		{"model not found", `{"error":{"code":"model_not_found"}}`, true},
		{"no access", "Your organization does not have access to this model", true},
		{"case insensitive", "PERMISSION DENIED", true},
		{"unrelated", "rate limit exceeded, retry after 20s", false},
		{"empty", "", false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := matcher.Match(test.diagnostic); got != test.want {
				t.Errorf("Match(%q) = %v, want %v", test.diagnostic, got, test.want)
			}
		})
	}
}

func TestAuthFailureMatcherCustomMarkers(t *testing.T) {
	matcher := NewAuthFailureMatcher([]string{"  Quota Exhausted ", "", "   "})

	if !slices.Equal(matcher.markers, []string{"quota exhausted"}) {
		t.Errorf("markers = %q, want [quota exhausted]", matcher.markers)
	}
	if !matcher.Match("error: QUOTA EXHAUSTED for plan") {
		t.Error("custom marker did not match")
	}
	if matcher.Match("model_not_found") {
		t.Error("custom markers should replace the defaults")
	}
}
