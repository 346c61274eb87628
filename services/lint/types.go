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
	"fmt"
	"strconv"
	"time"
)

// RuleOrder is the identifier of the component statement-order rule.
const RuleOrder = "reactfc/order"

// =============================================================================
// SEVERITY
// =============================================================================

// Severity represents the severity level of a lint issue.
type Severity int

const (
	// SeverityInfo is reported but never fails a run.
	SeverityInfo Severity = iota

	// SeverityWarning is reported but never fails a run.
	SeverityWarning

	// SeverityError fails the run.
	SeverityError
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// SeverityFromString parses a severity string.
//
// Description:
//
//	Accepts the spellings used by ESLint-style configs. Unknown values
//	default to SeverityWarning.
//
// Inputs:
//
//	s - Severity string (e.g., "error", "warn", "info")
//
// Outputs:
//
//	Severity - The parsed severity level
func SeverityFromString(s string) Severity {
	switch s {
	case "error", "err", "2":
		return SeverityError
	case "warning", "warn", "1":
		return SeverityWarning
	case "info", "note", "hint":
		return SeverityInfo
	default:
		return SeverityWarning
	}
}

// MarshalText encodes the severity as its name.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a severity name.
func (s *Severity) UnmarshalText(text []byte) error {
	switch v := string(text); v {
	case "info", "warning", "error":
		*s = SeverityFromString(v)
		return nil
	default:
		return fmt.Errorf("unknown severity %q", v)
	}
}

// =============================================================================
// LINT RESULT
// =============================================================================

// LintResult contains the result of checking one file.
//
// Thread Safety: Immutable after creation by the runner.
type LintResult struct {
	// Valid is true if no error-severity issues were found.
	Valid bool `json:"valid"`

	// Errors are issues with SeverityError.
	Errors []LintIssue `json:"errors"`

	// Warnings are issues with SeverityWarning.
	Warnings []LintIssue `json:"warnings"`

	// Infos are issues with SeverityInfo.
	Infos []LintIssue `json:"infos,omitempty"`

	// Duration is how long the check took.
	Duration time.Duration `json:"duration"`

	// Language is the grammar used ("javascript", "typescript", "tsx").
	Language string `json:"language,omitempty"`

	// FilePath is the file that was checked.
	FilePath string `json:"file_path"`

	// Components is the number of component functions discovered.
	Components int `json:"components"`

	// ParseErrors are non-fatal parser notes, e.g. recovered syntax errors.
	ParseErrors []string `json:"parse_errors,omitempty"`

	// Cached is true when the findings came from the result cache.
	Cached bool `json:"cached"`

	// Error is set when the file could not be checked at all.
	Error string `json:"error,omitempty"`
}

// HasErrors returns true if there are any error-severity issues.
func (r *LintResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// HasWarnings returns true if there are any warnings.
func (r *LintResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// Failed returns true if the file could not be checked.
func (r *LintResult) Failed() bool {
	return r.Error != ""
}

// AllIssues returns all issues combined, errors first.
func (r *LintResult) AllIssues() []LintIssue {
	issues := make([]LintIssue, 0, r.IssueCount())
	issues = append(issues, r.Errors...)
	issues = append(issues, r.Warnings...)
	issues = append(issues, r.Infos...)
	return issues
}

// IssueCount returns the total number of issues.
func (r *LintResult) IssueCount() int {
	return len(r.Errors) + len(r.Warnings) + len(r.Infos)
}

// =============================================================================
// LINT ISSUE
// =============================================================================

// LintIssue is one ordering violation in one component.
//
// Thread Safety: Immutable after creation.
type LintIssue struct {
	// File is the path to the file containing the issue.
	File string `json:"file"`

	// Line is the 1-indexed line of the offending statement.
	Line int `json:"line"`

	// Column is the 1-indexed column of the offending statement.
	Column int `json:"column"`

	// EndLine is the last line of the offending statement.
	EndLine int `json:"end_line,omitempty"`

	// EndColumn is the column after the end of the offending statement.
	EndColumn int `json:"end_column,omitempty"`

	// Rule is the rule identifier (RuleOrder).
	Rule string `json:"rule"`

	// Severity is the severity assigned by policy.
	Severity Severity `json:"severity"`

	// Message is the human-readable description.
	Message string `json:"message"`

	// Component is the name of the component function.
	Component string `json:"component"`

	// Category is the key of the offending statement's category.
	Category string `json:"category"`

	// ShouldBeAfter is the key of the blocking statement's category.
	ShouldBeAfter string `json:"should_be_after"`

	// BlockerLine is the line of the blocking statement.
	BlockerLine int `json:"blocker_line"`
}

// Location returns a formatted location string (file:line:col).
func (i *LintIssue) Location() string {
	if i.Column > 0 {
		return i.File + ":" + strconv.Itoa(i.Line) + ":" + strconv.Itoa(i.Column)
	}
	return i.File + ":" + strconv.Itoa(i.Line)
}
