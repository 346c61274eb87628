// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package lint

import (
	"errors"
	"fmt"
)

// Sentinel errors for the lint package.
var (
	// ErrInvalidInput indicates invalid input to a lint function.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidPolicy indicates a rule severity that cannot be parsed.
	ErrInvalidPolicy = errors.New("invalid policy")
)

// FileError wraps a failure to check a specific file.
//
// Thread Safety: Immutable after creation.
type FileError struct {
	// Path is the file that failed.
	Path string

	// Op is the step that failed (e.g., "read", "parse").
	Op string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *FileError) Unwrap() error {
	return e.Err
}

func newFileError(op, path string, err error) *FileError {
	return &FileError{Path: path, Op: op, Err: err}
}
