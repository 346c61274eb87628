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
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/fe-jhw/reactfc/services/lint"
	"github.com/fe-jhw/reactfc/services/server"
	"github.com/fe-jhw/reactfc/services/watch"
)

func (a *app) watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch [dir]",
		Short: "Re-check files as they change",
		Long: `Check the directory once, then re-check supported files whenever they
are created or modified. Changes are debounced (watch.debounce in the config).

With --metrics-addr (or telemetry.metrics_addr) an HTTP server exposes
/metrics in Prometheus format, /status with the last batch totals and
/health. Stop with Ctrl+C.`,
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{annotationTelemetry: "true"},
		RunE:        a.runWatch,
	}
}

// watchSession lints change batches and publishes their totals.
type watchSession struct {
	app    *app
	runner *lint.Runner
	status *server.Server

	// mu serializes output between the initial pass and batches.
	mu sync.Mutex
}

func (a *app) runWatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	runner, closeCache, err := a.newRunner()
	if err != nil {
		return err
	}
	defer closeCache()

	session := &watchSession{app: a, runner: runner}

	if addr := a.cfg.Telemetry.MetricsAddr; addr != "" {
		var metrics http.Handler
		if a.telemetry != nil {
			metrics = a.telemetry.MetricsHandler()
		}
		session.status = server.New(addr, root, metrics, a.log)
		if err := session.status.Start(); err != nil {
			return err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := session.status.Shutdown(shutdownCtx); err != nil {
				a.log.Warn("status server shutdown", slog.String("error", err.Error()))
			}
		}()
	}

	if err := session.initial(ctx, root); err != nil {
		return err
	}

	opts := watch.DefaultOptions()
	opts.Debounce = a.cfg.Watch.Debounce
	opts.Ignore = append(opts.Ignore, a.cfg.Ignore...)
	opts.Filter = runner.Supports
	opts.Logger = a.log

	w, err := watch.New(root, session.handle, opts)
	if err != nil {
		return err
	}
	if err := w.Start(ctx); err != nil {
		return err
	}
	a.log.Info("watching", slog.String("dir", root), slog.Duration("debounce", opts.Debounce))

	<-ctx.Done()
	w.Stop()
	return nil
}

// initial checks the whole tree once.
func (s *watchSession) initial(ctx context.Context, root string) error {
	start := time.Now()
	results, err := s.runner.LintDirectory(ctx, root)
	if err != nil {
		return err
	}
	return s.publish(start, results)
}

// handle is the watch.Handler. Removed files are skipped.
func (s *watchSession) handle(ctx context.Context, changes []watch.Change) {
	start := time.Now()

	paths := make([]string, 0, len(changes))
	for _, c := range changes {
		if c.Op != watch.OpRemove {
			paths = append(paths, c.Path)
		}
	}
	if len(paths) == 0 {
		return
	}

	results, err := s.runner.LintFiles(ctx, paths)
	if err != nil {
		if ctx.Err() == nil {
			s.app.log.Error("lint batch failed", slog.String("error", err.Error()))
		}
		return
	}
	if err := s.publish(start, results); err != nil {
		s.app.log.Error("report batch", slog.String("error", err.Error()))
	}
}

func (s *watchSession) publish(start time.Time, results []*lint.LintResult) error {
	summary := lint.Summarize(results)
	if s.status != nil {
		s.status.Record(summary)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.app.report("watch", start, results, summary)
}
