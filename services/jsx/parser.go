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
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"path/filepath"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// Option configures a Parser instance.
type Option func(*Parser)

// WithMaxFileSize sets the maximum file size the parser will accept.
//
// Example:
//
//	parser := NewParser(WithMaxFileSize(5 * 1024 * 1024)) // 5MB limit
func WithMaxFileSize(bytes int64) Option {
	return func(p *Parser) {
		if bytes > 0 {
			p.maxFileSize = bytes
		}
	}
}

// WithLogger sets the logger used for parse diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// Parser parses JavaScript/TypeScript sources and discovers component functions.
//
// Description:
//
//	Parser uses tree-sitter to build a syntax tree, walks it for component
//	functions (capitalized function declarations and capitalized bindings to
//	function values) and lowers each component body into order.Statement values.
//
// Thread Safety:
//
//	Parser instances are safe for concurrent use. Each Parse call creates its
//	own tree-sitter parser.
type Parser struct {
	maxFileSize int64
	logger      *slog.Logger
}

// NewParser creates a Parser with the given options.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		maxFileSize: DefaultMaxFileSize,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses content and returns the components it defines.
//
// Description:
//
//	Selects a grammar from the file extension (javascript for .js/.jsx/.mjs/.cjs,
//	tsx for .tsx, typescript for .ts/.mts/.cts), parses the content and
//	discovers component functions anywhere in the tree. Tree-sitter recovers
//	from syntax errors, so a file with errors still yields the components it
//	could parse; the problem is noted in ParseResult.Errors.
//
// Inputs:
//
//	ctx - Context for cancellation. Checked before and after parsing.
//	content - Raw source bytes. Must be valid UTF-8.
//	filePath - Path used for grammar selection and error reporting.
//
// Outputs:
//
//	*ParseResult - Discovered components. Never nil on success.
//	error - Non-nil for complete failures:
//	  - ErrUnsupportedLanguage: unknown extension
//	  - ErrFileTooLarge: content exceeds the size limit
//	  - ErrInvalidContent: content is not valid UTF-8
//	  - ErrParseFailed: tree-sitter returned no tree
//	  - context errors
//
// Thread Safety: Safe for concurrent use.
func (p *Parser) Parse(ctx context.Context, content []byte, filePath string) (*ParseResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse canceled before start: %w", err)
	}

	language := LanguageFromPath(filePath)
	if language == "" {
		return nil, wrapParseError(fmt.Errorf("%w: %q", ErrUnsupportedLanguage, filepath.Ext(filePath)), filePath)
	}

	if int64(len(content)) > p.maxFileSize {
		return nil, wrapParseError(fmt.Errorf("%w: size %d exceeds limit %d", ErrFileTooLarge, len(content), p.maxFileSize), filePath)
	}

	if len(content) > WarnFileSize {
		p.logger.Warn("parsing large file",
			slog.String("file", filePath),
			slog.Int("size_bytes", len(content)))
	}

	if !utf8.Valid(content) {
		return nil, wrapParseError(fmt.Errorf("%w: content is not valid UTF-8", ErrInvalidContent), filePath)
	}

	hash := sha256.Sum256(content)

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(grammarFor(language))

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, wrapParseError(fmt.Errorf("%w: %v", ErrParseFailed, err), filePath)
	}
	defer tree.Close()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse canceled after tree-sitter: %w", err)
	}

	root := tree.RootNode()
	if root == nil {
		return nil, wrapParseError(fmt.Errorf("%w: nil root node", ErrParseFailed), filePath)
	}

	result := &ParseResult{
		FilePath:   filePath,
		Language:   language,
		Hash:       hex.EncodeToString(hash[:]),
		Components: make([]Component, 0),
		Errors:     make([]string, 0),
	}

	if root.HasError() {
		result.Errors = append(result.Errors, "source contains syntax errors")
	}

	result.Components = discover(root, content)

	p.logger.Debug("parsed source",
		slog.String("file", filePath),
		slog.String("language", language),
		slog.Int("components", len(result.Components)))

	return result, nil
}

// grammarFor returns the tree-sitter grammar for a language identifier.
func grammarFor(language string) *sitter.Language {
	switch language {
	case LanguageTSX:
		return tsx.GetLanguage()
	case LanguageTypeScript:
		return typescript.GetLanguage()
	default:
		return javascript.GetLanguage()
	}
}
