// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/bureau-foundation/codex-mcp/lib/codex"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Codex.Binary != "codex" {
		t.Errorf("expected binary=codex, got %s", cfg.Codex.Binary)
	}
	if cfg.Codex.Model != codex.DefaultModel {
		t.Errorf("expected model=%s, got %s", codex.DefaultModel, cfg.Codex.Model)
	}
	if cfg.Codex.FallbackModel != codex.DefaultFallbackModel {
		t.Errorf("expected fallback_model=%s, got %s", codex.DefaultFallbackModel, cfg.Codex.FallbackModel)
	}
	if cfg.Codex.Timeout != 600*time.Second {
		t.Errorf("expected timeout=10m, got %s", cfg.Codex.Timeout)
	}
	if cfg.Codex.GracePeriod != 5*time.Second {
		t.Errorf("expected grace_period=5s, got %s", cfg.Codex.GracePeriod)
	}
	if filepath.Base(cfg.Paths.Cache) != "codex-mcp" {
		t.Errorf("expected cache dir ending in codex-mcp, got %s", cfg.Paths.Cache)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default() does not validate: %v", err)
	}
}

func TestLoad_WithoutConfigUsesDefaults(t *testing.T) {
	t.Setenv(EnvironmentVariable, "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Codex.Model != codex.DefaultModel {
		t.Errorf("expected default model, got %s", cfg.Codex.Model)
	}
}

func TestLoad_WithConfigEnvironment(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "codex-mcp.yaml")
	configContent := `
codex:
  model: o3
  timeout: 90s
  auth_markers:
    - quota exhausted
paths:
  staging: /test/staging
log_level: debug
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	t.Setenv(EnvironmentVariable, configPath)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Codex.Model != "o3" {
		t.Errorf("expected model=o3, got %s", cfg.Codex.Model)
	}
	if cfg.Codex.Timeout != 90*time.Second {
		t.Errorf("expected timeout=90s, got %s", cfg.Codex.Timeout)
	}
	if !slices.Equal(cfg.Codex.AuthMarkers, []string{"quota exhausted"}) {
		t.Errorf("expected auth_markers=[quota exhausted], got %v", cfg.Codex.AuthMarkers)
	}
	if cfg.Paths.Staging != "/test/staging" {
		t.Errorf("expected staging=/test/staging, got %s", cfg.Paths.Staging)
	}
	// Omitted fields keep their defaults.
	if cfg.Codex.FallbackModel != codex.DefaultFallbackModel {
		t.Errorf("expected default fallback_model, got %s", cfg.Codex.FallbackModel)
	}
	if cfg.Codex.GracePeriod != codex.DefaultGracePeriod {
		t.Errorf("expected default grace_period, got %s", cfg.Codex.GracePeriod)
	}
	level, err := cfg.SlogLevel()
	if err != nil || level != slog.LevelDebug {
		t.Errorf("SlogLevel() = %v, %v; want debug", level, err)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "reading config") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestParse_EmptyDocument(t *testing.T) {
	cfg, err := Parse([]byte("# nothing configured\n"))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if cfg.Codex.Model != codex.DefaultModel {
		t.Errorf("expected default model, got %s", cfg.Codex.Model)
	}
}

func TestParse_RejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte("codex:\n  modle: o3\n"))
	if err == nil {
		t.Fatal("expected error for misspelled key")
	}
	if !strings.Contains(err.Error(), "modle") {
		t.Errorf("error should name the unknown key: %v", err)
	}
}

func TestParse_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"zero timeout", "codex:\n  timeout: 0s\n", "codex.timeout must be positive"},
		{"negative grace", "codex:\n  grace_period: -1s\n", "codex.grace_period must be positive"},
		{"empty model", "codex:\n  model: \"\"\n", "codex.model is required"},
		{"bad log level", "log_level: loud\n", "log_level"},
		{"bad duration", "codex:\n  timeout: soon\n", "parsing config"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Parse([]byte(test.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), test.want) {
				t.Errorf("error %q does not contain %q", err, test.want)
			}
		})
	}
}

func TestExpandVars(t *testing.T) {
	t.Setenv("CODEX_MCP_TEST_DIR", "/from/env")

	vars := map[string]string{"HOME": "/home/test"}
	tests := []struct {
		input string
		want  string
	}{
		{"${HOME}/cache", "/home/test/cache"},
		{"${CODEX_MCP_TEST_DIR}/staging", "/from/env/staging"},
		{"${CODEX_MCP_UNSET_VAR:-/fallback}/x", "/fallback/x"},
		{"${CODEX_MCP_UNSET_VAR}/x", "/x"},
		{"/plain/path", "/plain/path"},
	}
	for _, test := range tests {
		if got := expandVars(test.input, vars); got != test.want {
			t.Errorf("expandVars(%q) = %q, want %q", test.input, got, test.want)
		}
	}
}

func TestParse_ExpandsPaths(t *testing.T) {
	t.Setenv("HOME", "/home/test")

	cfg, err := Parse([]byte("paths:\n  cache: ${HOME}/.cache/codex\n  review_schema: ${HOME}/schema.json\n"))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if cfg.Paths.Cache != "/home/test/.cache/codex" {
		t.Errorf("expected expanded cache, got %s", cfg.Paths.Cache)
	}
	if cfg.Paths.ReviewSchema != "/home/test/schema.json" {
		t.Errorf("expected expanded review_schema, got %s", cfg.Paths.ReviewSchema)
	}
}

func TestMarshal_RoundTrip(t *testing.T) {
	original := Default()
	original.Codex.Model = "o3"
	original.Codex.GracePeriod = 2 * time.Second
	original.Paths.Staging = "/srv/staging"

	data, err := original.Marshal()
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	if !strings.Contains(string(data), "grace_period: 2s") {
		t.Errorf("durations should marshal in Go syntax:\n%s", data)
	}

	parsed, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse(Marshal()) failed: %v", err)
	}
	if parsed.Codex.Model != "o3" || parsed.Codex.GracePeriod != 2*time.Second || parsed.Paths.Staging != "/srv/staging" {
		t.Errorf("round trip lost values: %+v", parsed)
	}
}
