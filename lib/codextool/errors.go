// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codextool

import "fmt"

// InputError reports caller input rejected before codex was started.
// Its message is the direct error string returned to the caller.
type InputError struct {
	// Parameter is the JSON name of the offending parameter.
	Parameter string

	// Missing is true when the parameter names a file that does not
	// exist, as opposed to a value that is malformed or empty.
	Missing bool

	message string
}

func (e *InputError) Error() string { return "Error: " + e.message }

func invalid(parameter, format string, args ...any) *InputError {
	return &InputError{Parameter: parameter, message: fmt.Sprintf(format, args...)}
}

func missing(parameter, format string, args ...any) *InputError {
	return &InputError{Parameter: parameter, Missing: true, message: fmt.Sprintf(format, args...)}
}
