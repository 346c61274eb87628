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
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fe-jhw/reactfc/services/jsx"
	"github.com/fe-jhw/reactfc/services/order"
)

// MaxWorkers bounds the worker pool size.
const MaxWorkers = 256

// skipDirs are directory names never descended into.
var skipDirs = map[string]bool{
	"node_modules": true,
	"vendor":       true,
}

// =============================================================================
// RUNNER
// =============================================================================

// Runner checks component statement order in source files.
//
// Description:
//
//	Reads files, parses them with the jsx front end, checks every discovered
//	component and applies the rule policy to the findings. Findings are
//	cached by content hash when a Cache is configured.
//
// Thread Safety: Safe for concurrent use.
type Runner struct {
	parser      *jsx.Parser
	policy      *RulePolicy
	cache       Cache
	workers     int
	maxFileSize int64
	extensions  map[string]bool
	ignore      map[string]bool
	logger      *slog.Logger
}

// Option configures the Runner.
type Option func(*Runner)

// WithPolicy sets the rule policy.
func WithPolicy(policy *RulePolicy) Option {
	return func(r *Runner) {
		if policy != nil {
			r.policy = policy
		}
	}
}

// WithCache enables the findings cache.
func WithCache(cache Cache) Option {
	return func(r *Runner) {
		r.cache = cache
	}
}

// WithWorkers sets how many files are checked concurrently (1..MaxWorkers).
func WithWorkers(n int) Option {
	return func(r *Runner) {
		if n > 0 && n <= MaxWorkers {
			r.workers = n
		}
	}
}

// WithMaxFileSize sets the largest file that is checked.
func WithMaxFileSize(bytes int64) Option {
	return func(r *Runner) {
		if bytes > 0 {
			r.maxFileSize = bytes
		}
	}
}

// WithExtensions limits directory walks to these extensions (e.g. ".tsx").
func WithExtensions(exts []string) Option {
	return func(r *Runner) {
		if len(exts) == 0 {
			return
		}
		r.extensions = make(map[string]bool, len(exts))
		for _, ext := range exts {
			ext = strings.ToLower(ext)
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			r.extensions[ext] = true
		}
	}
}

// WithIgnore skips directories and files with these base names.
func WithIgnore(names []string) Option {
	return func(r *Runner) {
		for _, name := range names {
			r.ignore[name] = true
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRunner creates a new runner.
//
// Description:
//
//	Defaults: DefaultPolicy, no cache, one worker per CPU, the parser's
//	default size limit and every extension the front end supports.
//
// Inputs:
//
//	opts - Optional configuration options
//
// Outputs:
//
//	*Runner - The configured runner
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		policy:      &DefaultPolicy,
		workers:     runtime.NumCPU(),
		maxFileSize: jsx.DefaultMaxFileSize,
		ignore:      make(map[string]bool),
		logger:      slog.Default(),
	}
	WithExtensions(jsx.Extensions())(r)

	for _, opt := range opts {
		opt(r)
	}

	r.parser = jsx.NewParser(
		jsx.WithMaxFileSize(r.maxFileSize),
		jsx.WithLogger(r.logger),
	)
	return r
}

// Lint checks a single file.
//
// Description:
//
//	Reads the file and delegates to LintContent.
//
// Inputs:
//
//	ctx - Context for cancellation
//	filePath - Path to the file to check
//
// Outputs:
//
//	*LintResult - The result with categorized issues
//	error - Non-nil if the file could not be checked:
//	  - ErrInvalidInput: nil ctx or empty path
//	  - *FileError wrapping the read or parse failure
//
// Thread Safety: Safe for concurrent use.
func (r *Runner) Lint(ctx context.Context, filePath string) (*LintResult, error) {
	if ctx == nil {
		return nil, fmt.Errorf("%w: ctx must not be nil", ErrInvalidInput)
	}
	if filePath == "" {
		return nil, fmt.Errorf("%w: file path must not be empty", ErrInvalidInput)
	}

	info, err := os.Stat(filePath)
	if err != nil {
		return nil, newFileError("stat", filePath, err)
	}
	if info.Size() > r.maxFileSize {
		return nil, newFileError("read", filePath,
			fmt.Errorf("%w: size %d exceeds limit %d", jsx.ErrFileTooLarge, info.Size(), r.maxFileSize))
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, newFileError("read", filePath, err)
	}

	return r.LintContent(ctx, content, filePath)
}

// LintContent checks source content.
//
// Description:
//
//	The filename selects the grammar and is used in issue locations; the
//	file itself is never read. Findings come from the cache when the same
//	content was checked before.
//
// Inputs:
//
//	ctx - Context for cancellation
//	content - The source code to check
//	filename - Name used for grammar selection and reporting
//
// Outputs:
//
//	*LintResult - The result with categorized issues
//	error - Non-nil if the content could not be parsed
//
// Thread Safety: Safe for concurrent use.
func (r *Runner) LintContent(ctx context.Context, content []byte, filename string) (*LintResult, error) {
	if ctx == nil {
		return nil, fmt.Errorf("%w: ctx must not be nil", ErrInvalidInput)
	}

	ctx, span := startLintSpan(ctx, filename)
	defer span.End()
	start := time.Now()

	language := jsx.LanguageFromPath(filename)
	if language == "" {
		recordLintMetrics(ctx, "unknown", time.Since(start), 0, 0, false, false)
		return nil, newFileError("detect language", filename,
			fmt.Errorf("%w: %q", jsx.ErrUnsupportedLanguage, filepath.Ext(filename)))
	}

	var key string
	if r.cache != nil {
		key = CacheKey(content, language)
		if findings, ok := r.cache.Get(ctx, key); ok {
			result := r.buildResult(filename, findings, start)
			result.Cached = true
			setLintSpanResult(span, result)
			recordLintMetrics(ctx, language, result.Duration, result.Components, len(findings.Issues), true, true)
			r.logger.Debug("Lint served from cache",
				slog.String("file", filename),
				slog.Int("issues", result.IssueCount()))
			return result, nil
		}
	}

	parsed, err := r.parser.Parse(ctx, content, filename)
	if err != nil {
		recordLintMetrics(ctx, language, time.Since(start), 0, 0, false, false)
		return nil, newFileError("parse", filename, err)
	}

	findings := checkComponents(parsed)
	if r.cache != nil {
		r.cache.Put(ctx, key, findings)
	}

	result := r.buildResult(filename, findings, start)
	setLintSpanResult(span, result)
	recordLintMetrics(ctx, language, result.Duration, result.Components, len(findings.Issues), false, true)

	r.logger.Debug("Lint completed",
		slog.String("file", filename),
		slog.Duration("duration", result.Duration),
		slog.Int("components", result.Components),
		slog.Int("errors", len(result.Errors)),
		slog.Int("warnings", len(result.Warnings)),
	)

	return result, nil
}

// checkComponents runs the order check on every component of a parse.
func checkComponents(parsed *jsx.ParseResult) *Findings {
	findings := &Findings{
		Language:    parsed.Language,
		Components:  len(parsed.Components),
		ParseErrors: parsed.Errors,
		Issues:      make([]LintIssue, 0),
	}
	for i := range parsed.Components {
		c := &parsed.Components[i]
		if v := c.Check(); v != nil {
			findings.Issues = append(findings.Issues, issueFromViolation(parsed.FilePath, c.Name, v))
		}
	}
	return findings
}

// issueFromViolation converts a violation into an issue with no severity yet.
func issueFromViolation(file, component string, v *order.Violation) LintIssue {
	pos := v.Pos()
	issue := LintIssue{
		File:          file,
		Line:          pos.Line,
		Column:        pos.Column,
		EndLine:       pos.EndLine,
		EndColumn:     pos.EndColumn,
		Rule:          RuleOrder,
		Message:       v.Message(),
		Component:     component,
		Category:      v.Offender.Category.String(),
		ShouldBeAfter: v.Blocker.Category.String(),
	}
	if v.Blocker.Statement != nil {
		issue.BlockerLine = v.Blocker.Statement.Pos.Line
	}
	return issue
}

// buildResult applies the policy to findings for filename.
func (r *Runner) buildResult(filename string, findings *Findings, start time.Time) *LintResult {
	issues := make([]LintIssue, len(findings.Issues))
	copy(issues, findings.Issues)
	for i := range issues {
		issues[i].File = filename
	}

	errs, warnings, infos := ApplyPolicy(issues, r.policy)
	return &LintResult{
		Valid:       len(errs) == 0,
		Errors:      errs,
		Warnings:    warnings,
		Infos:       infos,
		Duration:    time.Since(start),
		Language:    findings.Language,
		FilePath:    filename,
		Components:  findings.Components,
		ParseErrors: findings.ParseErrors,
	}
}

// LintFiles checks multiple files concurrently.
//
// Description:
//
//	Runs up to the configured number of workers. A file that cannot be
//	checked does not stop the others: its result has Error set. Only
//	context cancellation fails the whole call.
//
// Inputs:
//
//	ctx - Context for cancellation
//	filePaths - Paths to check
//
// Outputs:
//
//	[]*LintResult - One result per input path, in input order
//	error - Non-nil on invalid input or cancellation
//
// Thread Safety: Safe for concurrent use.
func (r *Runner) LintFiles(ctx context.Context, filePaths []string) ([]*LintResult, error) {
	if ctx == nil {
		return nil, fmt.Errorf("%w: ctx must not be nil", ErrInvalidInput)
	}

	results := make([]*LintResult, len(filePaths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i, path := range filePaths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			result, err := r.Lint(gctx, path)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				r.logger.Warn("File check failed",
					slog.String("file", path),
					slog.String("error", err.Error()))
				result = &LintResult{
					Valid:    false,
					Errors:   make([]LintIssue, 0),
					Warnings: make([]LintIssue, 0),
					FilePath: path,
					Error:    err.Error(),
				}
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("lint files: %w", err)
	}
	return results, nil
}

// LintDirectory checks every supported file under root.
//
// Inputs:
//
//	ctx - Context for cancellation
//	root - Directory to walk
//
// Outputs:
//
//	[]*LintResult - One result per file, in walk order
//	error - Non-nil if the walk fails or ctx is canceled
//
// Thread Safety: Safe for concurrent use.
func (r *Runner) LintDirectory(ctx context.Context, root string) ([]*LintResult, error) {
	files, err := r.CollectFiles(ctx, []string{root})
	if err != nil {
		return nil, err
	}
	return r.LintFiles(ctx, files)
}

// CollectFiles expands paths into the list of files to check.
//
// Description:
//
//	Files named explicitly are always included. Directories are walked in
//	lexical order, skipping hidden directories, node_modules, vendor and
//	ignored names, and keeping only configured extensions (declaration
//	files excluded). Duplicates are dropped.
//
// Inputs:
//
//	ctx - Context for cancellation, checked per entry
//	paths - Files and directories
//
// Outputs:
//
//	[]string - Files in discovery order
//	error - Non-nil on invalid input, missing paths or cancellation
func (r *Runner) CollectFiles(ctx context.Context, paths []string) ([]string, error) {
	if ctx == nil {
		return nil, fmt.Errorf("%w: ctx must not be nil", ErrInvalidInput)
	}

	seen := make(map[string]bool)
	files := make([]string, 0)
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, root := range paths {
		if root == "" {
			return nil, fmt.Errorf("%w: path must not be empty", ErrInvalidInput)
		}
		info, err := os.Stat(root)
		if err != nil {
			return nil, newFileError("stat", root, err)
		}
		if !info.IsDir() {
			add(root)
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}

			name := d.Name()
			if d.IsDir() {
				if path != root && (strings.HasPrefix(name, ".") || skipDirs[name] || r.ignore[name]) {
					return filepath.SkipDir
				}
				return nil
			}
			if r.ignore[name] || !r.Supports(path) {
				return nil
			}
			add(path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", root, err)
		}
	}

	return files, nil
}

// Supports reports whether path has a configured, parseable extension.
func (r *Runner) Supports(path string) bool {
	return r.extensions[strings.ToLower(filepath.Ext(path))] && jsx.LanguageFromPath(path) != ""
}
