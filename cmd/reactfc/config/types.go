// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package config loads and validates .reactfc.yaml.
package config

import (
	"time"

	"github.com/fe-jhw/reactfc/services/jsx"
	"github.com/fe-jhw/reactfc/services/lint"
)

// Config is the contents of .reactfc.yaml.
type Config struct {
	// Rules maps a rule id to error, warn, info or off.
	Rules map[string]string `yaml:"rules" validate:"dive,keys,required,endkeys,oneof=error err 2 warn warning 1 info off 0"`

	// Extensions lists the file extensions to check, e.g. ".jsx".
	Extensions []string `yaml:"extensions" validate:"dive,required"`

	// Ignore lists directory names skipped while walking.
	Ignore []string `yaml:"ignore" validate:"dive,required"`

	// Workers is the number of files checked in parallel. 0 means one per CPU.
	Workers int `yaml:"workers" validate:"gte=0,lte=256"`

	// MaxFileSize is the largest file, in bytes, that is checked.
	MaxFileSize int64 `yaml:"max_file_size" validate:"gte=0"`

	Cache     CacheConfig     `yaml:"cache"`
	Output    OutputConfig    `yaml:"output"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Watch     WatchConfig     `yaml:"watch"`
}

// CacheConfig controls the on-disk result cache.
type CacheConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir" validate:"required_if=Enabled true"`
}

// OutputConfig controls how reports are printed.
type OutputConfig struct {
	Format string `yaml:"format" validate:"oneof=text json"`
	Color  string `yaml:"color" validate:"oneof=auto always never"`
}

// TelemetryConfig selects exporters.
type TelemetryConfig struct {
	Metrics      string `yaml:"metrics" validate:"oneof=none stdout prometheus"`
	Traces       string `yaml:"traces" validate:"oneof=none stdout otlp"`
	MetricsAddr  string `yaml:"metrics_addr" validate:"omitempty,hostname_port"`
	OTLPEndpoint string `yaml:"otlp_endpoint" validate:"omitempty,hostname_port"`
}

// WatchConfig controls `reactfc watch`.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce" validate:"gte=0"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Rules:       map[string]string{lint.RuleOrder: "error"},
		Extensions:  jsx.Extensions(),
		Ignore:      []string{"node_modules", "dist", "build"},
		MaxFileSize: jsx.DefaultMaxFileSize,
		Cache: CacheConfig{
			Enabled: true,
			Dir:     ".reactfc-cache",
		},
		Output: OutputConfig{
			Format: "text",
			Color:  "auto",
		},
		Telemetry: TelemetryConfig{
			Metrics: "none",
			Traces:  "none",
		},
		Watch: WatchConfig{
			Debounce: 200 * time.Millisecond,
		},
	}
}

// Policy converts Rules into a lint policy.
func (c Config) Policy() (*lint.RulePolicy, error) {
	return lint.PolicyFromRules(c.Rules)
}
