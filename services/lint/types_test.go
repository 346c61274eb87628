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
	"encoding/json"
	"testing"
)

func TestSeverity_String(t *testing.T) {
	tests := []struct {
		severity Severity
		want     string
	}{
		{SeverityInfo, "info"},
		{SeverityWarning, "warning"},
		{SeverityError, "error"},
		{Severity(99), "unknown"},
	}

	for _, tt := range tests {
		got := tt.severity.String()
		if got != tt.want {
			t.Errorf("Severity(%d).String() = %q, want %q", tt.severity, got, tt.want)
		}
	}
}

func TestSeverityFromString(t *testing.T) {
	tests := []struct {
		input string
		want  Severity
	}{
		{"error", SeverityError},
		{"err", SeverityError},
		{"2", SeverityError},
		{"warning", SeverityWarning},
		{"warn", SeverityWarning},
		{"1", SeverityWarning},
		{"info", SeverityInfo},
		{"note", SeverityInfo},
		{"hint", SeverityInfo},
		{"unknown", SeverityWarning}, // default
		{"", SeverityWarning},        // default
	}

	for _, tt := range tests {
		got := SeverityFromString(tt.input)
		if got != tt.want {
			t.Errorf("SeverityFromString(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestSeverity_JSON(t *testing.T) {
	issue := LintIssue{File: "a.jsx", Line: 3, Rule: RuleOrder, Severity: SeverityError}

	data, err := json.Marshal(issue)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if raw["severity"] != "error" {
		t.Errorf("expected severity \"error\", got %v", raw["severity"])
	}

	var back LintIssue
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal issue: %v", err)
	}
	if back.Severity != SeverityError {
		t.Errorf("expected SeverityError, got %v", back.Severity)
	}

	var s Severity
	if err := s.UnmarshalText([]byte("fatal")); err == nil {
		t.Error("expected error for unknown severity name")
	}
}

func TestLintIssue_Location(t *testing.T) {
	tests := []struct {
		issue LintIssue
		want  string
	}{
		{LintIssue{File: "src/App.jsx", Line: 12, Column: 5}, "src/App.jsx:12:5"},
		{LintIssue{File: "src/App.jsx", Line: 12}, "src/App.jsx:12"},
	}
	for _, tt := range tests {
		if got := tt.issue.Location(); got != tt.want {
			t.Errorf("Location() = %q, want %q", got, tt.want)
		}
	}
}

func TestLintResult_Counts(t *testing.T) {
	r := &LintResult{
		Errors:   []LintIssue{{Line: 1}},
		Warnings: []LintIssue{{Line: 2}, {Line: 3}},
		Infos:    []LintIssue{{Line: 4}},
	}

	if !r.HasErrors() || !r.HasWarnings() {
		t.Error("expected errors and warnings")
	}
	if r.IssueCount() != 4 {
		t.Errorf("expected 4 issues, got %d", r.IssueCount())
	}
	all := r.AllIssues()
	if len(all) != 4 || all[0].Line != 1 || all[3].Line != 4 {
		t.Errorf("unexpected issue order: %+v", all)
	}
	if r.Failed() {
		t.Error("result without Error should not be failed")
	}
}
