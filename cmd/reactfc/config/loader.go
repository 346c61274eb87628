// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in the working directory.
const FileName = ".reactfc.yaml"

// ErrInvalidConfig indicates a configuration file that parsed but failed validation.
var ErrInvalidConfig = errors.New("invalid configuration")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report yaml key names instead of Go field names.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Load reads the configuration.
//
// Description:
//
//	With an empty path, FileName is looked up in the working directory and
//	DefaultConfig is returned when it does not exist. An explicit path
//	must exist. Values in the file override the defaults.
//
// Outputs:
//
//	Config - The merged configuration.
//	string - The file that was read, or "" when defaults were used.
//	error - Read, parse or validation failure.
func Load(path string) (Config, string, error) {
	explicit := path != ""
	if !explicit {
		path = FileName
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), "", nil
		}
		return Config{}, "", fmt.Errorf("failed to read the config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, "", fmt.Errorf("%s: %w", path, err)
	}
	return cfg, path, nil
}

// Parse decodes YAML on top of DefaultConfig and validates the result.
// Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse the config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field constraints.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "Config.")
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s: %q fails %s=%s", field, fmt.Sprint(fe.Value()), fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s: %q fails %s", field, fmt.Sprint(fe.Value()), fe.Tag()))
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
}

// WriteDefault writes DefaultConfig to path, creating parent directories.
// An existing file is left untouched and os.ErrExist is returned.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s: %w", path, os.ErrExist)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create the config directory: %w", err)
		}
	}

	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
