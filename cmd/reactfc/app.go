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
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/fe-jhw/reactfc/cmd/reactfc/config"
	"github.com/fe-jhw/reactfc/pkg/logging"
	"github.com/fe-jhw/reactfc/pkg/ux"
	"github.com/fe-jhw/reactfc/services/lint"
	"github.com/fe-jhw/reactfc/services/storage/badger"
	"github.com/fe-jhw/reactfc/services/telemetry"
)

// annotationTelemetry marks commands that install otel providers.
const annotationTelemetry = "reactfc/telemetry"

// globalFlags holds the persistent flags. They override .reactfc.yaml only
// when set on the command line.
type globalFlags struct {
	configPath  string
	format      string
	color       string
	workers     int
	noCache     bool
	cacheDir    string
	quiet       bool
	logLevel    string
	logDir      string
	metricsAddr string
}

// app carries state shared by all commands of one invocation.
type app struct {
	stdout io.Writer
	stderr io.Writer
	flags  globalFlags

	cfg       config.Config
	cfgPath   string
	logger    *logging.Logger
	log       *slog.Logger
	telemetry *telemetry.Telemetry

	command  string
	exitCode int
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		stdout: stdout,
		stderr: stderr,
		cfg:    config.DefaultConfig(),
		log:    logging.Discard(),
	}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "reactfc",
		Short: "Check statement order inside React function components",
		Long: `reactfc checks that the top-level statements of every React function
component follow the canonical order:

  useState → custom hook → variable/computed value → handler/method →
  useEffect → conditional rendering → JSX return

The first statement that appears after a statement it should precede is
reported, once per component.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	f := root.PersistentFlags()
	f.StringVar(&a.flags.configPath, "config", "", "path to config file (default ./"+config.FileName+")")
	f.StringVar(&a.flags.format, "format", "text", "output format: text or json")
	f.StringVar(&a.flags.color, "color", "auto", "color output: auto, always or never")
	f.IntVar(&a.flags.workers, "workers", 0, "files checked in parallel (0 = one per CPU)")
	f.BoolVar(&a.flags.noCache, "no-cache", false, "disable the result cache")
	f.StringVar(&a.flags.cacheDir, "cache-dir", "", "result cache directory")
	f.BoolVarP(&a.flags.quiet, "quiet", "q", false, "report errors only")
	f.StringVar(&a.flags.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	f.StringVar(&a.flags.logDir, "log-dir", "", "also write JSON logs to this directory")
	f.StringVar(&a.flags.metricsAddr, "metrics-addr", "", "serve /metrics, /status and /health on this address (watch only)")

	root.AddCommand(
		a.checkCmd(),
		a.watchCmd(),
		a.orderCmd(),
		a.initCmd(),
		a.versionCmd(),
	)
	return root
}

// setup loads configuration, applies flag overrides and builds the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	a.command = cmd.Name()

	cfg, path, err := config.Load(a.flags.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Output.Format = a.flags.format
	}
	if flags.Changed("color") {
		cfg.Output.Color = a.flags.color
	}
	if flags.Changed("workers") {
		cfg.Workers = a.flags.workers
	}
	if flags.Changed("cache-dir") {
		cfg.Cache.Dir = a.flags.cacheDir
	}
	if a.flags.noCache {
		cfg.Cache.Enabled = false
	}
	if flags.Changed("metrics-addr") {
		cfg.Telemetry.MetricsAddr = a.flags.metricsAddr
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg, a.cfgPath = cfg, path

	level, err := logging.ParseLevel(a.flags.logLevel)
	if err != nil {
		return err
	}
	a.logger = logging.New(logging.Config{
		Level:   level,
		Writer:  a.stderr,
		LogDir:  a.flags.logDir,
		Service: cmd.Name(),
	})
	a.log = a.logger.Slog()
	if path != "" {
		a.log.Debug("loaded config", slog.String("path", path))
	}

	if cmd.Annotations[annotationTelemetry] == "true" {
		return a.initTelemetry(cmd.Context(), cmd.Name() == "watch")
	}
	return nil
}

// initTelemetry installs otel providers. Config values other than "none"
// override the OTEL_* environment defaults.
func (a *app) initTelemetry(ctx context.Context, serving bool) error {
	tcfg := telemetry.DefaultConfig()
	tcfg.ServiceVersion = version
	tcfg.Writer = a.stderr
	if m := a.cfg.Telemetry.Metrics; m != telemetry.ExporterNone {
		tcfg.MetricExporter = m
	}
	if t := a.cfg.Telemetry.Traces; t != telemetry.ExporterNone {
		tcfg.TraceExporter = t
	}
	if e := a.cfg.Telemetry.OTLPEndpoint; e != "" {
		tcfg.OTLPEndpoint = e
	}
	if serving && a.cfg.Telemetry.MetricsAddr != "" {
		tcfg.MetricExporter = telemetry.ExporterPrometheus
	}

	tel, err := telemetry.Init(ctx, tcfg)
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	a.telemetry = tel
	return nil
}

// newRunner builds a runner from the effective configuration. The returned
// func closes the cache store, if one was opened.
func (a *app) newRunner() (*lint.Runner, func(), error) {
	policy, err := a.cfg.Policy()
	if err != nil {
		return nil, nil, err
	}

	opts := []lint.Option{
		lint.WithPolicy(policy),
		lint.WithExtensions(a.cfg.Extensions),
		lint.WithIgnore(a.cfg.Ignore),
		lint.WithMaxFileSize(a.cfg.MaxFileSize),
		lint.WithLogger(a.log),
	}
	if a.cfg.Workers > 0 {
		opts = append(opts, lint.WithWorkers(a.cfg.Workers))
	}

	closer := func() {}
	if a.cfg.Cache.Enabled {
		bcfg := badger.DefaultConfig(a.cfg.Cache.Dir)
		bcfg.Logger = a.log
		store, err := badger.Open(bcfg)
		if err != nil {
			// Lint without a cache when the store cannot be opened.
			a.log.Warn("result cache disabled", slog.String("dir", a.cfg.Cache.Dir), slog.String("error", err.Error()))
		} else {
			opts = append(opts, lint.WithCache(lint.NewBadgerCache(store, a.log)))
			closer = func() {
				if err := store.Close(); err != nil {
					a.log.Warn("closing result cache", slog.String("error", err.Error()))
				}
			}
		}
	}

	return lint.NewRunner(opts...), closer, nil
}

func (a *app) jsonOutput() bool {
	return a.cfg.Output.Format == "json"
}

func (a *app) reporter() *ux.Reporter {
	mode, err := ux.ParseColorMode(a.cfg.Output.Color)
	if err != nil {
		mode = ux.ColorAuto
	}
	return ux.NewReporter(a.stdout, mode, a.flags.quiet)
}

// fail reports a command error in the selected format.
func (a *app) fail(err error) {
	if a.jsonOutput() || a.flags.format == "json" {
		command := a.command
		if command == "" {
			command = "reactfc"
		}
		if encErr := writeJSON(a.stdout, newResult(command, time.Now(), nil, err)); encErr == nil {
			return
		}
	}

	mode, parseErr := ux.ParseColorMode(a.flags.color)
	if parseErr != nil {
		mode = ux.ColorNever
	}
	ux.NewReporter(a.stderr, mode, false).Error(err)
}

func (a *app) close() {
	if a.telemetry != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := a.telemetry.Shutdown(ctx); err != nil {
			a.log.Warn("telemetry shutdown", slog.String("error", err.Error()))
		}
		cancel()
	}
	if a.logger != nil {
		_ = a.logger.Close()
	}
}
