// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/codex-mcp/lib/codex"
)

// EnvironmentVariable names the config file when --config is absent.
const EnvironmentVariable = "CODEX_MCP_CONFIG"

// Config is the master configuration for codex-mcp.
type Config struct {
	// Codex configures how the codex executable is invoked.
	Codex CodexConfig `yaml:"codex"`

	// Paths configures file locations.
	Paths PathsConfig `yaml:"paths"`

	// LogLevel is one of debug, info, warn, error.
	// Default: info
	LogLevel string `yaml:"log_level"`
}

// CodexConfig configures the process runner.
type CodexConfig struct {
	// Binary is the codex executable, a name looked up on PATH or a
	// path. Default: codex
	Binary string `yaml:"binary"`

	// Model is the primary model, used when a call does not name one.
	// Default: gpt-5.3-codex
	Model string `yaml:"model"`

	// FallbackModel is retried once when Model is refused for
	// authorization reasons. Default: gpt-5.2-codex
	FallbackModel string `yaml:"fallback_model"`

	// ReasoningEffort is used when a call does not name one.
	// Default: xhigh
	ReasoningEffort string `yaml:"reasoning_effort"`

	// Timeout bounds each codex attempt when a call does not set
	// timeout_seconds. Default: 10m
	Timeout time.Duration `yaml:"timeout"`

	// GracePeriod is how long codex may take to exit after SIGTERM
	// before it is killed. Default: 5s
	GracePeriod time.Duration `yaml:"grace_period"`

	// AuthMarkers replaces the stderr phrases that identify a model
	// refused for authorization reasons. Empty keeps the built-in list.
	AuthMarkers []string `yaml:"auth_markers,omitempty"`
}

// PathsConfig configures file locations.
type PathsConfig struct {
	// Staging holds per-attempt prompt, output, and stderr files.
	// Default: the system temporary directory
	Staging string `yaml:"staging"`

	// Cache holds the materialized review schema.
	// Default: the user cache directory plus /codex-mcp
	Cache string `yaml:"cache"`

	// ReviewSchema replaces the embedded codex_review response schema.
	// Empty uses the embedded schema.
	ReviewSchema string `yaml:"review_schema,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	cacheRoot, err := os.UserCacheDir()
	if err != nil {
		cacheRoot = os.TempDir()
	}
	return &Config{
		Codex: CodexConfig{
			Binary:          codex.DefaultBinary,
			Model:           codex.DefaultModel,
			FallbackModel:   codex.DefaultFallbackModel,
			ReasoningEffort: codex.DefaultReasoningEffort,
			Timeout:         codex.DefaultTimeout,
			GracePeriod:     codex.DefaultGracePeriod,
		},
		Paths: PathsConfig{
			Staging: os.TempDir(),
			Cache:   filepath.Join(cacheRoot, "codex-mcp"),
		},
		LogLevel: "info",
	}
}

// Load loads the file named by CODEX_MCP_CONFIG, or returns the
// validated defaults when the variable is unset.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		cfg := Default()
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path. Fields the
// file omits keep their defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults, expands path variables, and
// validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.expandVariables()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME":   os.Getenv("HOME"),
		"TMPDIR": os.TempDir(),
	}

	c.Codex.Binary = expandVars(c.Codex.Binary, vars)
	c.Paths.Staging = expandVars(c.Paths.Staging, vars)
	c.Paths.Cache = expandVars(c.Paths.Cache, vars)
	c.Paths.ReviewSchema = expandVars(c.Paths.ReviewSchema, vars)
}

// expandVars expands ${VAR} and ${VAR:-default} patterns.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Codex.Binary) == "" {
		errs = append(errs, fmt.Errorf("codex.binary is required"))
	}
	if strings.TrimSpace(c.Codex.Model) == "" {
		errs = append(errs, fmt.Errorf("codex.model is required"))
	}
	if strings.TrimSpace(c.Codex.FallbackModel) == "" {
		errs = append(errs, fmt.Errorf("codex.fallback_model is required"))
	}
	if strings.TrimSpace(c.Codex.ReasoningEffort) == "" {
		errs = append(errs, fmt.Errorf("codex.reasoning_effort is required"))
	}
	if c.Codex.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("codex.timeout must be positive, got %s", c.Codex.Timeout))
	}
	if c.Codex.GracePeriod <= 0 {
		errs = append(errs, fmt.Errorf("codex.grace_period must be positive, got %s", c.Codex.GracePeriod))
	}
	if c.Paths.Cache == "" && c.Paths.ReviewSchema == "" {
		errs = append(errs, fmt.Errorf("paths.cache is required unless paths.review_schema is set"))
	}
	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// SlogLevel returns LogLevel as a slog.Level. An empty LogLevel is info.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}

// Marshal renders the configuration as YAML, the same shape LoadFile
// accepts.
func (c *Config) Marshal() ([]byte, error) {
	var buffer bytes.Buffer
	encoder := yaml.NewEncoder(&buffer)
	encoder.SetIndent(2)
	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return buffer.Bytes(), nil
}
