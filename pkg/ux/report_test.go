// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package ux

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fe-jhw/reactfc/services/lint"
	"github.com/fe-jhw/reactfc/services/order"
)

func sampleResult() *lint.LintResult {
	return &lint.LintResult{
		FilePath: "src/Bad.jsx",
		Errors: []lint.LintIssue{{
			File:      "src/Bad.jsx",
			Line:      3,
			Column:    3,
			Rule:      lint.RuleOrder,
			Severity:  lint.SeverityError,
			Message:   "first line\nsecond line",
			Component: "Bad",
		}},
		Warnings: []lint.LintIssue{{
			File:      "src/Bad.jsx",
			Line:      12,
			Column:    5,
			Rule:      lint.RuleOrder,
			Severity:  lint.SeverityWarning,
			Message:   "warned",
			Component: "Other",
		}},
	}
}

func TestParseColorMode(t *testing.T) {
	for _, in := range []string{"auto", "always", "never", "NEVER"} {
		_, err := ParseColorMode(in)
		assert.NoError(t, err, in)
	}
	_, err := ParseColorMode("sometimes")
	assert.Error(t, err)
}

func TestReporter_Result_Plain(t *testing.T) {
	var buf bytes.Buffer
	NewReporter(&buf, ColorNever, false).Result(sampleResult())

	want := "src/Bad.jsx\n" +
		"  3:3   error    first line  reactfc/order (Bad)\n" +
		"                 second line\n" +
		"  12:5  warning  warned  reactfc/order (Other)\n" +
		"\n"
	assert.Equal(t, want, buf.String())
}

func TestReporter_Result_QuietHidesWarnings(t *testing.T) {
	var buf bytes.Buffer
	NewReporter(&buf, ColorNever, true).Result(sampleResult())

	assert.Contains(t, buf.String(), "first line")
	assert.NotContains(t, buf.String(), "warned")
}

func TestReporter_Result_CleanFilePrintsNothing(t *testing.T) {
	var buf bytes.Buffer
	NewReporter(&buf, ColorNever, false).Results([]*lint.LintResult{
		{FilePath: "Good.jsx", Valid: true},
		nil,
	})
	assert.Empty(t, buf.String())
}

func TestReporter_Result_FailedAndNotes(t *testing.T) {
	var buf bytes.Buffer
	NewReporter(&buf, ColorNever, false).Result(&lint.LintResult{
		FilePath:    "Broken.jsx",
		Error:       "parse Broken.jsx: file too large",
		ParseErrors: []string{"source contains syntax errors"},
	})

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Broken.jsx\n"))
	assert.Contains(t, out, "✗ parse Broken.jsx: file too large")
	assert.Contains(t, out, "⚠ source contains syntax errors")
}

func TestReporter_Summary(t *testing.T) {
	tests := []struct {
		name    string
		summary lint.Summary
		want    string
	}{
		{
			name:    "clean",
			summary: lint.Summary{Files: 1},
			want:    "✓ 1 file checked, no problems\n",
		},
		{
			name:    "errors",
			summary: lint.Summary{Files: 1200, ErrorCount: 1, CachedFiles: 3},
			want:    "✗ 1 problem (1 error, 0 warnings) · 1,200 files checked (3 cached)\n",
		},
		{
			name:    "warnings only",
			summary: lint.Summary{Files: 2, WarningCount: 2},
			want:    "⚠ 2 problems (0 errors, 2 warnings) · 2 files checked\n",
		},
		{
			name:    "failed files",
			summary: lint.Summary{Files: 2, FailedFiles: 1},
			want:    "✗ 0 problems (0 errors, 0 warnings), 1 file could not be checked · 2 files checked\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewReporter(&buf, ColorNever, false).Summary(tt.summary)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestReporter_Order(t *testing.T) {
	var buf bytes.Buffer
	NewReporter(&buf, ColorNever, false).Order(order.Categories())

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 7)
	assert.True(t, strings.HasPrefix(lines[0], "1. useState"))
	assert.True(t, strings.HasSuffix(lines[6], "return"))
	assert.Contains(t, lines[6], "JSX return")
}

func TestReporter_ColorAlwaysEmitsANSI(t *testing.T) {
	var buf bytes.Buffer
	NewReporter(&buf, ColorAlways, false).Error(errors.New("boom"))
	assert.Contains(t, buf.String(), "\x1b[")
	assert.Contains(t, buf.String(), "boom")
}
