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
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Package-level tracer and meter for lint operations.
var (
	tracer = otel.Tracer("reactfc.lint")
	meter  = otel.Meter("reactfc.lint")
)

// Metrics for lint operations.
var (
	lintLatency     metric.Float64Histogram
	filesTotal      metric.Int64Counter
	componentsTotal metric.Int64Counter
	violationsTotal metric.Int64Counter
	cacheHitsTotal  metric.Int64Counter

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics initializes the metrics. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		lintLatency, err = meter.Float64Histogram(
			"reactfc_lint_duration_seconds",
			metric.WithDescription("Duration of single-file checks"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		filesTotal, err = meter.Int64Counter(
			"reactfc_files_total",
			metric.WithDescription("Total number of files checked"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		componentsTotal, err = meter.Int64Counter(
			"reactfc_components_total",
			metric.WithDescription("Total number of component functions checked"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		violationsTotal, err = meter.Int64Counter(
			"reactfc_violations_total",
			metric.WithDescription("Total number of ordering violations found"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		cacheHitsTotal, err = meter.Int64Counter(
			"reactfc_cache_hits_total",
			metric.WithDescription("Total number of files served from the result cache"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

// startLintSpan creates a span for a single-file check.
func startLintSpan(ctx context.Context, filePath string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "Runner.LintContent",
		trace.WithAttributes(
			attribute.String("lint.file_path", filePath),
		),
	)
}

// setLintSpanResult sets the result attributes on a lint span.
func setLintSpanResult(span trace.Span, result *LintResult) {
	span.SetAttributes(
		attribute.String("lint.language", result.Language),
		attribute.Int("lint.components", result.Components),
		attribute.Int("lint.error_count", len(result.Errors)),
		attribute.Int("lint.warning_count", len(result.Warnings)),
		attribute.Bool("lint.cached", result.Cached),
	)
}

// recordLintMetrics records metrics for one file.
func recordLintMetrics(ctx context.Context, language string, duration time.Duration, components, violations int, cached, success bool) {
	if err := initMetrics(); err != nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String("language", language),
		attribute.Bool("success", success),
	)

	lintLatency.Record(ctx, duration.Seconds(), attrs)
	filesTotal.Add(ctx, 1, attrs)

	if !success {
		return
	}

	langAttr := metric.WithAttributes(attribute.String("language", language))
	componentsTotal.Add(ctx, int64(components), langAttr)
	violationsTotal.Add(ctx, int64(violations), langAttr)
	if cached {
		cacheHitsTotal.Add(ctx, 1, langAttr)
	}
}
