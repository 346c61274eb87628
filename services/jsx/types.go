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
	"path/filepath"
	"strings"

	"github.com/fe-jhw/reactfc/services/order"
)

const (
	// DefaultMaxFileSize is the largest file Parse accepts by default (10MB).
	DefaultMaxFileSize = 10 * 1024 * 1024

	// WarnFileSize is the size above which a warning is logged (1MB).
	WarnFileSize = 1 * 1024 * 1024
)

// Language identifiers.
const (
	LanguageJavaScript = "javascript"
	LanguageTypeScript = "typescript"
	LanguageTSX        = "tsx"
)

var extensionLanguages = map[string]string{
	".js":  LanguageJavaScript,
	".jsx": LanguageJavaScript,
	".mjs": LanguageJavaScript,
	".cjs": LanguageJavaScript,
	".ts":  LanguageTypeScript,
	".mts": LanguageTypeScript,
	".cts": LanguageTypeScript,
	".tsx": LanguageTSX,
}

// LanguageFromPath returns the language for a file path, or "" if unsupported.
// Declaration files (.d.ts) are unsupported since they carry no bodies.
func LanguageFromPath(path string) string {
	base := strings.ToLower(filepath.Base(path))
	if strings.HasSuffix(base, ".d.ts") {
		return ""
	}
	return extensionLanguages[filepath.Ext(base)]
}

// Extensions returns every supported file extension.
func Extensions() []string {
	exts := make([]string, 0, len(extensionLanguages))
	for ext := range extensionLanguages {
		exts = append(exts, ext)
	}
	return exts
}

// Component is one discovered component function.
type Component struct {
	// Name is the capitalized function or binding name.
	Name string

	// Pos is the position of the function (or declarator) that defines it.
	Pos order.Position

	// Body is the lowered list of top-level body statements.
	Body []order.Statement
}

// Check runs the order checker over the component body.
func (c *Component) Check() *order.Violation {
	return order.Check(c.Body)
}

// ParseResult is the outcome of parsing one source file.
type ParseResult struct {
	// FilePath is the path given to Parse.
	FilePath string

	// Language is one of the Language* constants.
	Language string

	// Hash is the hex sha256 of the content.
	Hash string

	// Components are the discovered components in source order.
	Components []Component

	// Errors holds non-fatal problems (e.g. syntax errors tree-sitter recovered from).
	Errors []string
}

// HasErrors reports whether the parse recorded non-fatal problems.
func (r *ParseResult) HasErrors() bool {
	return len(r.Errors) > 0
}
