// SPDX-License-Identifier: MIT

// Package config provides configuration loading for the lvlogic CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// Config represents the complete CLI configuration.
type Config struct {
	Log       LogConfig       `yaml:"log"`
	Report    ReportConfig    `yaml:"report"`
	Knowledge KnowledgeConfig `yaml:"knowledge"`
	Batch     BatchConfig     `yaml:"batch"`
}

// LogConfig configures slog output.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `yaml:"level"`
	// Format is text or json.
	Format string `yaml:"format"`
}

// ReportConfig configures rendered output.
type ReportConfig struct {
	// Format is table (box-drawn) or markdown.
	Format string `yaml:"format"`
	// Top limits how many ranked conclusions are printed in full.
	Top int `yaml:"top"`
}

// KnowledgeConfig selects the knowledge bases.
type KnowledgeConfig struct {
	// Dir, when set, replaces the embedded bases with the YAML files found there.
	Dir string `yaml:"dir"`
	// Pattern is the doublestar glob applied inside Dir.
	Pattern string `yaml:"pattern"`
}

// BatchConfig configures concurrent case evaluation.
type BatchConfig struct {
	// Workers caps concurrently evaluated cases; 0 means no limit.
	Workers int `yaml:"workers"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Report: ReportConfig{
			Format: "table",
			Top:    3,
		},
		Knowledge: KnowledgeConfig{
			Dir:     "", // embedded
			Pattern: "**/*.{yaml,yml}",
		},
		Batch: BatchConfig{
			Workers: 4,
		},
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error, got %q", c.Log.Level)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	if c.Report.Format != "table" && c.Report.Format != "markdown" {
		return fmt.Errorf("report.format must be table or markdown, got %q", c.Report.Format)
	}
	if c.Report.Top < 1 {
		return fmt.Errorf("report.top must be at least 1")
	}
	if c.Knowledge.Pattern == "" {
		return fmt.Errorf("knowledge.pattern is required")
	}
	if !doublestar.ValidatePattern(c.Knowledge.Pattern) {
		return fmt.Errorf("knowledge.pattern %q is not a valid glob", c.Knowledge.Pattern)
	}
	if c.Batch.Workers < 0 {
		return fmt.Errorf("batch.workers must not be negative")
	}

	return nil
}

// LoadFromFile loads configuration from a YAML file over the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// Load returns the defaults when path is empty, the file otherwise, and
// validates the result.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		var err error
		if cfg, err = LoadFromFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a YAML file.
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
