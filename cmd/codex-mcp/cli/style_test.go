// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestStylesPlainForNonTerminal(t *testing.T) {
	var buffer bytes.Buffer
	styles := NewStyles(&buffer)

	response := "4\n[exit code 1]\n[stderr] boom\n[model: gpt-5.3-codex]"
	if got := styles.Response(response); got != response {
		t.Errorf("Response() altered text for a non-terminal writer: %q", got)
	}
}

func TestStylesAnnotationRecognition(t *testing.T) {
	styles := NewStyles(&bytes.Buffer{})

	for _, line := range []string{"[model: o3]", "[no output]", "[exit code -1]", "[stderr] x"} {
		if _, ok := styles.annotation(line); !ok {
			t.Errorf("annotation(%q) not recognized", line)
		}
	}
	for _, line := range []string{"[model]", "plain answer", "[note] from the model"} {
		if _, ok := styles.annotation(line); ok {
			t.Errorf("annotation(%q) wrongly recognized", line)
		}
	}
}

func TestNewLoggerHandlerSelection(t *testing.T) {
	var text, structured bytes.Buffer
	newLogger(&text, true, slog.LevelInfo).Info("attempt finished", "exit_code", 0)
	newLogger(&structured, false, slog.LevelInfo).Info("attempt finished", "exit_code", 0)

	if !strings.Contains(text.String(), "msg=\"attempt finished\"") {
		t.Errorf("terminal logger output = %q, want text handler", text.String())
	}
	if !strings.HasPrefix(structured.String(), "{") || !strings.Contains(structured.String(), `"exit_code":0`) {
		t.Errorf("non-terminal logger output = %q, want JSON handler", structured.String())
	}

	var filtered bytes.Buffer
	newLogger(&filtered, false, slog.LevelWarn).Info("hidden")
	if filtered.Len() != 0 {
		t.Errorf("info record written at warn level: %q", filtered.String())
	}
}
