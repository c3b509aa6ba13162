// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"runtime/debug"
	"strings"
	"testing"
)

// withVariables restores the package variables after a test mutates
// them.
func withVariables(t *testing.T, commit, dirty, buildTime string) {
	t.Helper()
	savedCommit, savedDirty, savedTime := GitCommit, GitDirty, BuildTime
	GitCommit, GitDirty, BuildTime = commit, dirty, buildTime
	t.Cleanup(func() {
		GitCommit, GitDirty, BuildTime = savedCommit, savedDirty, savedTime
	})
}

func TestApplyBuildSettingsFillsDefaults(t *testing.T) {
	withVariables(t, "unknown", "false", "unknown")

	applyBuildSettings([]debug.BuildSetting{
		{Key: "vcs.revision", Value: "0123456789abcdef0123"},
		{Key: "vcs.modified", Value: "true"},
		{Key: "vcs.time", Value: "2026-03-01T10:00:00Z"},
		{Key: "GOOS", Value: "linux"},
	})

	if GitCommit != "0123456789ab" {
		t.Errorf("GitCommit = %q, want 12-character prefix", GitCommit)
	}
	if GitDirty != "true" {
		t.Errorf("GitDirty = %q, want true", GitDirty)
	}
	if BuildTime != "2026-03-01T10:00:00Z" {
		t.Errorf("BuildTime = %q", BuildTime)
	}
}

func TestApplyBuildSettingsKeepsLdflags(t *testing.T) {
	withVariables(t, "abc1234", "false", "2026-01-01T00:00:00Z")

	applyBuildSettings([]debug.BuildSetting{
		{Key: "vcs.revision", Value: "ffffffffffff"},
		{Key: "vcs.time", Value: "2020-01-01T00:00:00Z"},
	})

	if GitCommit != "abc1234" || BuildTime != "2026-01-01T00:00:00Z" {
		t.Errorf("ldflags values overwritten: %s %s", GitCommit, BuildTime)
	}
}

func TestInfoFormat(t *testing.T) {
	withVariables(t, "abc1234", "true", "2026-01-01T00:00:00Z")
	stampOnce.Do(func() {})

	if got, want := Info(), Version+" (abc1234-dirty, 2026-01-01T00:00:00Z)"; got != want {
		t.Errorf("Info() = %q, want %q", got, want)
	}
	if full := Full(); !strings.HasPrefix(full, Info()) || !strings.Contains(full, "Go: ") {
		t.Errorf("Full() = %q", full)
	}
	if Short() != Version {
		t.Errorf("Short() = %q, want %q", Short(), Version)
	}
}
