// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the run configuration that can be loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Inputs
	JobURL  string `json:"job_url,omitempty" yaml:"job_url,omitempty" validate:"omitempty,url"` // Single job to apply to
	Jobs    string `json:"jobs,omitempty" yaml:"jobs,omitempty"`                                // Path to a file with one job URL per line
	Answers string `json:"answers,omitempty" yaml:"answers,omitempty"`                          // Path to the answer store

	// Behavior
	Mode               string   `json:"mode,omitempty" yaml:"mode,omitempty" validate:"omitempty,oneof=interactive production"`
	TestMode           bool     `json:"test_mode,omitempty" yaml:"test_mode,omitempty"`               // Resolve everything but never submit
	DebugUnresolved    bool     `json:"debug_unresolved,omitempty" yaml:"debug_unresolved,omitempty"` // Collect every unresolved field
	UnknownCheckbox    string   `json:"unknown_checkbox,omitempty" yaml:"unknown_checkbox,omitempty" validate:"omitempty,oneof=check leave violation"`
	TextSkipPatterns   []string `json:"text_skip_patterns,omitempty" yaml:"text_skip_patterns,omitempty"`
	SelectSkipPatterns []string `json:"select_skip_patterns,omitempty" yaml:"select_skip_patterns,omitempty"`
	StallLimit         int      `json:"stall_limit,omitempty" yaml:"stall_limit,omitempty" validate:"gte=0"`
	PollIntervalMS     int      `json:"poll_interval_ms,omitempty" yaml:"poll_interval_ms,omitempty" validate:"gte=0"`

	// Browser
	Headless       bool   `json:"headless,omitempty" yaml:"headless,omitempty"`
	ProfileDir     string `json:"profile_dir,omitempty" yaml:"profile_dir,omitempty"` // Persisted Chrome profile (keeps the login session)
	TimeoutSeconds int    `json:"timeout_seconds,omitempty" yaml:"timeout_seconds,omitempty" validate:"gte=0"`

	// Output
	EventsPath     string `json:"events,omitempty" yaml:"events,omitempty"`
	SummaryPath    string `json:"summary,omitempty" yaml:"summary,omitempty"`
	UnresolvedPath string `json:"unresolved,omitempty" yaml:"unresolved,omitempty"`
	DatabaseURL    string `json:"database_url,omitempty" yaml:"database_url,omitempty"` // PostgreSQL connection URL
	Verbose        bool   `json:"verbose,omitempty" yaml:"verbose,omitempty"`
}

// Defaults returns the values used when neither the config file nor a flag sets a field
func Defaults() Config {
	return Config{
		Mode:            "production",
		UnknownCheckbox: "check",
		StallLimit:      5,
		PollIntervalMS:  1000,
		ProfileDir:      ".easy_apply_profile",
		TimeoutSeconds:  30,
		EventsPath:      "events.jsonl",
		SummaryPath:     "batch_summary.csv",
		UnresolvedPath:  "debug_unresolved.jsonl",
	}
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by extension.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return &ConfigError{Message: "invalid field value", Cause: err}
	}

	// Validate mutually exclusive fields
	if c.JobURL != "" && c.Jobs != "" {
		return &ConfigError{Message: "'job_url' and 'jobs' are mutually exclusive"}
	}

	// Validate file paths exist (if specified)
	if c.Jobs != "" {
		if _, err := os.Stat(c.Jobs); os.IsNotExist(err) {
			return &ConfigError{Message: fmt.Sprintf("jobs file not found: %s", c.Jobs)}
		}
	}
	if c.Answers != "" {
		if _, err := os.Stat(c.Answers); os.IsNotExist(err) {
			return &ConfigError{Message: fmt.Sprintf("answers file not found: %s", c.Answers)}
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	for _, f := range []struct {
		dst *string
		src string
	}{
		{&result.JobURL, defaults.JobURL},
		{&result.Jobs, defaults.Jobs},
		{&result.Answers, defaults.Answers},
		{&result.Mode, defaults.Mode},
		{&result.UnknownCheckbox, defaults.UnknownCheckbox},
		{&result.ProfileDir, defaults.ProfileDir},
		{&result.EventsPath, defaults.EventsPath},
		{&result.SummaryPath, defaults.SummaryPath},
		{&result.UnresolvedPath, defaults.UnresolvedPath},
		{&result.DatabaseURL, defaults.DatabaseURL},
	} {
		if *f.dst == "" {
			*f.dst = f.src
		}
	}

	// Int fields: use default if zero
	if result.StallLimit == 0 {
		result.StallLimit = defaults.StallLimit
	}
	if result.PollIntervalMS == 0 {
		result.PollIntervalMS = defaults.PollIntervalMS
	}
	if result.TimeoutSeconds == 0 {
		result.TimeoutSeconds = defaults.TimeoutSeconds
	}

	// Nil skip lists keep the built-in defaults downstream
	if result.TextSkipPatterns == nil {
		result.TextSkipPatterns = defaults.TextSkipPatterns
	}
	if result.SelectSkipPatterns == nil {
		result.SelectSkipPatterns = defaults.SelectSkipPatterns
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// PollInterval returns the pause between polls of a transient state
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMS) * time.Millisecond
}

// Timeout returns the per-action browser timeout
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
