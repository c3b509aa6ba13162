// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"bytes"
	"errors"
	"fmt"
	"testing"
)

type codedError struct{ code int }

func (e *codedError) Error() string { return fmt.Sprintf("exit code %d", e.code) }
func (e *codedError) ExitCode() int { return e.code }

func TestReportPlainError(t *testing.T) {
	var buffer bytes.Buffer
	if code := report(&buffer, errors.New("config: boom")); code != 1 {
		t.Errorf("code = %d, want 1", code)
	}
	if got := buffer.String(); got != "error: config: boom\n" {
		t.Errorf("output = %q", got)
	}
}

func TestReportExitCoder(t *testing.T) {
	var buffer bytes.Buffer
	err := fmt.Errorf("running ask: %w", &codedError{code: 3})
	if code := report(&buffer, err); code != 3 {
		t.Errorf("code = %d, want 3", code)
	}
	if buffer.Len() != 0 {
		t.Errorf("exit-coded error printed %q", buffer.String())
	}
}
