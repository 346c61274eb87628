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
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/fe-jhw/reactfc/services/lint"
)

func (a *app) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [paths...]",
		Short: "Check files and directories",
		Long: `Check every supported file (.js, .jsx, .mjs, .cjs, .ts, .tsx, .mts, .cts)
under the given paths. Directories are walked recursively, skipping hidden
directories, node_modules, vendor and the configured ignore names.

Exit Codes:
  0  no error-severity findings
  1  at least one error-severity finding
  2  a file could not be checked, or the command failed`,
		Example: `  reactfc check
  reactfc check src/components --format json
  reactfc check App.jsx --no-cache --quiet`,
		Annotations: map[string]string{annotationTelemetry: "true"},
		RunE:        a.runCheck,
	}
}

func (a *app) runCheck(cmd *cobra.Command, args []string) error {
	start := time.Now()
	ctx := cmd.Context()

	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}

	runner, closeCache, err := a.newRunner()
	if err != nil {
		return err
	}
	defer closeCache()

	files, err := runner.CollectFiles(ctx, paths)
	if err != nil {
		return err
	}
	a.log.Debug("collected files", slog.Int("files", len(files)))

	results, err := runner.LintFiles(ctx, files)
	if err != nil {
		return err
	}

	summary := lint.Summarize(results)
	a.log.Info("check finished",
		slog.Int("files", summary.Files),
		slog.Int("errors", summary.ErrorCount),
		slog.Int("warnings", summary.WarningCount),
		slog.Duration("duration", time.Since(start)))

	if err := a.report("check", start, results, summary); err != nil {
		return err
	}
	a.exitCode = exitCodeFor(summary)
	return nil
}

// report prints results in the configured format.
func (a *app) report(command string, start time.Time, results []*lint.LintResult, summary lint.Summary) error {
	if a.jsonOutput() {
		if err := writeJSON(a.stdout, newResult(command, start, newCheckData(results, summary), nil)); err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
		return nil
	}

	r := a.reporter()
	r.Results(results)
	r.Summary(summary)
	return nil
}
