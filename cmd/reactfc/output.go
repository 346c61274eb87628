// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"encoding/json"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/fe-jhw/reactfc/services/lint"
)

// Exit codes for CLI commands.
const (
	CLIExitSuccess  = 0 // No error-severity findings
	CLIExitFindings = 1 // At least one error-severity finding
	CLIExitError    = 2 // A file or the command itself failed
)

// APIVersion is the version of the JSON envelope.
const APIVersion = "1.0"

// CommandResult wraps command output with metadata.
type CommandResult struct {
	APIVersion string    `json:"api_version"`
	Command    string    `json:"command"`
	RunID      string    `json:"run_id"`
	Timestamp  time.Time `json:"timestamp"`
	DurationMs int64     `json:"duration_ms"`
	Success    bool      `json:"success"`
	Data       any       `json:"data,omitempty"`
	Error      string    `json:"error,omitempty"`
}

// CheckData is the payload of `check` and `watch` envelopes.
type CheckData struct {
	Files        []*lint.LintResult `json:"files"`
	ErrorCount   int                `json:"error_count"`
	WarningCount int                `json:"warning_count"`
	InfoCount    int                `json:"info_count"`
	FailedCount  int                `json:"failed_count"`
	Summary      lint.Summary       `json:"summary"`
}

// OrderEntry is one row of `order --format json`.
type OrderEntry struct {
	Rank  int    `json:"rank"`
	Key   string `json:"key"`
	Label string `json:"label"`
}

func newCheckData(results []*lint.LintResult, summary lint.Summary) CheckData {
	if results == nil {
		results = []*lint.LintResult{}
	}
	return CheckData{
		Files:        results,
		ErrorCount:   summary.ErrorCount,
		WarningCount: summary.WarningCount,
		InfoCount:    summary.InfoCount,
		FailedCount:  summary.FailedFiles,
		Summary:      summary,
	}
}

func newResult(command string, start time.Time, data any, err error) CommandResult {
	res := CommandResult{
		APIVersion: APIVersion,
		Command:    command,
		RunID:      uuid.NewString(),
		Timestamp:  time.Now().UTC(),
		DurationMs: time.Since(start).Milliseconds(),
		Success:    err == nil,
		Data:       data,
	}
	if err != nil {
		res.Error = err.Error()
	}
	return res
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// exitCodeFor maps run totals to an exit code. Failures outrank findings.
func exitCodeFor(s lint.Summary) int {
	switch {
	case s.FailedFiles > 0:
		return CLIExitError
	case s.ErrorCount > 0:
		return CLIExitFindings
	default:
		return CLIExitSuccess
	}
}
