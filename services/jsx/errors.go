// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package jsx

import (
	"errors"
	"fmt"
)

// Sentinel errors for parse failures. Check with errors.Is.
var (
	// ErrUnsupportedLanguage indicates the file extension has no grammar.
	ErrUnsupportedLanguage = errors.New("unsupported language")

	// ErrParseFailed indicates tree-sitter produced no usable tree.
	ErrParseFailed = errors.New("parse failed")

	// ErrInvalidContent indicates content that is not valid UTF-8.
	ErrInvalidContent = errors.New("invalid content")

	// ErrFileTooLarge indicates content above the configured size limit.
	ErrFileTooLarge = errors.New("file too large")
)

// ParseError attaches a file location to a parse failure.
type ParseError struct {
	// FilePath is the file being parsed.
	FilePath string

	// Line is the 1-indexed line, 0 when unknown.
	Line int

	// Column is the 1-indexed column, 0 when unknown.
	Column int

	// Message describes the failure.
	Message string

	// Cause is the underlying error, may be nil.
	Cause error
}

// Error returns "file:line:col: message", dropping unknown parts.
func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("%s:%d:%d: %s", e.FilePath, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.FilePath, e.Line, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.FilePath, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// wrapParseError wraps err with file context unless it already is a ParseError.
func wrapParseError(err error, filePath string) error {
	if err == nil {
		return nil
	}
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return err
	}
	return &ParseError{
		FilePath: filePath,
		Message:  err.Error(),
		Cause:    err,
	}
}
