// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"testing"

	"github.com/spf13/pflag"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"abc", "abc", 0},
		{"abc", "abd", 1}, // substitution
		{"abc", "ab", 1},  // deletion
		{"ab", "abc", 1},  // insertion
		{"abc", "bac", 2}, // transposition (counted as 2 edits)
		{"kitten", "sitting", 3},
		{"review", "reveiw", 2},
		{"serve", "serv", 1},
	}

	for _, test := range tests {
		t.Run(test.a+"->"+test.b, func(t *testing.T) {
			got := levenshtein(test.a, test.b)
			if got != test.want {
				t.Errorf("levenshtein(%q, %q) = %d, want %d", test.a, test.b, got, test.want)
			}
		})
	}
}

func TestSuggestCommand(t *testing.T) {
	commands := []*Command{
		{Name: "serve"},
		{Name: "ask"},
		{Name: "exec"},
		{Name: "review"},
		{Name: "config"},
	}

	tests := []struct {
		input string
		want  string
	}{
		{"serv", "serve"},
		{"revew", "review"},
		{"exex", "exec"},
		{"conifg", "config"},
		{"completely-different", ""},
	}
	for _, test := range tests {
		if got := suggestCommand(test.input, commands); got != test.want {
			t.Errorf("suggestCommand(%q) = %q, want %q", test.input, got, test.want)
		}
	}
}

func TestSuggestFlag(t *testing.T) {
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flagSet.StringP("model", "m", "", "")
	flagSet.String("reasoning-effort", "", "")
	flagSet.Int("timeout-seconds", 0, "")

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"--modle", "o3"}, "--model"},
		{[]string{"--timeout-second=5"}, "--timeout-seconds"},
		{[]string{"-m", "o3", "--reasoning-efort", "low"}, "--reasoning-effort"},
		{[]string{"--nothing-like-it"}, ""},
		{[]string{"question", "-", "--", "--modle"}, ""},
	}
	for _, test := range tests {
		if got := suggestFlag(test.args, flagSet); got != test.want {
			t.Errorf("suggestFlag(%v) = %q, want %q", test.args, got, test.want)
		}
	}
}
