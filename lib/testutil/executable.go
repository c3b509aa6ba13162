// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/sys/unix"
)

// WriteExecutable writes body as a /bin/sh script named name into a
// fresh temporary directory and returns its absolute path. The
// directory is removed when the test completes.
//
//	binary := testutil.WriteExecutable(t, "codex", `
//	while [ "$1" != "-o" ]; do shift; done
//	printf '4' > "$2"
//	`)
func WriteExecutable(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatalf("writing executable %s: %v", path, err)
	}
	return path
}

// ProcessAlive reports whether pid still names a process in the
// process table, reaped or not. A zombie that has not been waited on
// still counts as alive.
func ProcessAlive(t *testing.T, pid int) bool {
	t.Helper()
	err := unix.Kill(pid, 0)
	switch {
	case err == nil:
		return true
	case errors.Is(err, unix.ESRCH):
		return false
	case errors.Is(err, unix.EPERM):
		// The pid exists but belongs to someone else, which means it
		// was recycled after our child was reaped.
		return false
	default:
		t.Fatalf("probing pid %d: %v", pid, err)
		return false
	}
}
