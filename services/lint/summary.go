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

// Summary aggregates the results of one run.
type Summary struct {
	Files           int `json:"files"`
	FilesWithIssues int `json:"files_with_issues"`
	FailedFiles     int `json:"failed_files"`
	CachedFiles     int `json:"cached_files"`
	Components      int `json:"components"`
	ErrorCount      int `json:"error_count"`
	WarningCount    int `json:"warning_count"`
	InfoCount       int `json:"info_count"`
}

// Summarize totals results. Nil entries are skipped.
func Summarize(results []*LintResult) Summary {
	var s Summary
	for _, r := range results {
		if r == nil {
			continue
		}
		s.Files++
		if r.Failed() {
			s.FailedFiles++
		}
		if r.Cached {
			s.CachedFiles++
		}
		if r.IssueCount() > 0 {
			s.FilesWithIssues++
		}
		s.Components += r.Components
		s.ErrorCount += len(r.Errors)
		s.WarningCount += len(r.Warnings)
		s.InfoCount += len(r.Infos)
	}
	return s
}

// Problems returns the number of reported issues.
func (s Summary) Problems() int {
	return s.ErrorCount + s.WarningCount + s.InfoCount
}

// Clean reports whether the run has no error-severity issues and no failures.
func (s Summary) Clean() bool {
	return s.ErrorCount == 0 && s.FailedFiles == 0
}
