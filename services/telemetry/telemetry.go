// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package telemetry wires the OpenTelemetry SDK for the reactfc binary.
//
// Library packages only use the otel API (otel.Tracer, otel.Meter). Until Init
// installs providers those calls are no-ops, so tests and embedders pay
// nothing.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
)

// Exporter names.
const (
	ExporterNone       = "none"
	ExporterStdout     = "stdout"
	ExporterOTLP       = "otlp"
	ExporterPrometheus = "prometheus"
)

var (
	// ErrNilContext indicates Init was called with a nil context.
	ErrNilContext = errors.New("context must not be nil")

	// ErrUnknownExporter indicates an unsupported exporter name.
	ErrUnknownExporter = errors.New("unknown exporter")
)

// Config controls telemetry behavior.
type Config struct {
	// ServiceName identifies this binary in traces and metrics.
	ServiceName string

	// ServiceVersion is the build version.
	ServiceVersion string

	// TraceExporter is "otlp", "stdout" or "none".
	TraceExporter string

	// MetricExporter is "prometheus", "stdout" or "none".
	MetricExporter string

	// OTLPEndpoint is the OTLP gRPC receiver for traces.
	OTLPEndpoint string

	// OTLPInsecure disables TLS for OTLP.
	OTLPInsecure bool

	// Writer receives stdout-exporter output. Defaults to os.Stderr so
	// reports on stdout stay machine readable.
	Writer io.Writer
}

// DefaultConfig returns a configuration with telemetry disabled.
//
// Environment variables override defaults:
//   - OTEL_TRACES_EXPORTER: trace exporter type
//   - OTEL_METRICS_EXPORTER: metric exporter type
//   - OTEL_EXPORTER_OTLP_ENDPOINT: OTLP endpoint
func DefaultConfig() Config {
	return Config{
		ServiceName:    "reactfc",
		ServiceVersion: "dev",
		TraceExporter:  getEnvOr("OTEL_TRACES_EXPORTER", ExporterNone),
		MetricExporter: getEnvOr("OTEL_METRICS_EXPORTER", ExporterNone),
		OTLPEndpoint:   getEnvOr("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		OTLPInsecure:   true,
		Writer:         os.Stderr,
	}
}

// Telemetry holds the installed providers.
type Telemetry struct {
	shutdownFuncs  []func(context.Context) error
	metricsHandler http.Handler
}

// Init installs trace and meter providers.
//
// Description:
//
//	Builds exporters from cfg and sets them as the global otel providers.
//	With the prometheus metric exporter a private registry is created and
//	exposed through MetricsHandler.
//
// Inputs:
//
//	ctx - Context for exporter connections.
//	cfg - Telemetry configuration.
//
// Outputs:
//
//	*Telemetry - Installed providers. Call Shutdown on exit.
//	error - ErrNilContext, ErrUnknownExporter or an exporter failure.
//
// Thread Safety: Call once at startup.
func Init(ctx context.Context, cfg Config) (*Telemetry, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	if cfg.Writer == nil {
		cfg.Writer = os.Stderr
	}

	t := &Telemetry{}
	res := resource.NewWithAttributes(
		"",
		attribute.String("service.name", cfg.ServiceName),
		attribute.String("service.version", cfg.ServiceVersion),
	)

	if cfg.TraceExporter != "" && cfg.TraceExporter != ExporterNone {
		tp, err := initTracer(ctx, cfg, res)
		if err != nil {
			return nil, fmt.Errorf("init tracer: %w", err)
		}
		otel.SetTracerProvider(tp)
		t.shutdownFuncs = append(t.shutdownFuncs, tp.Shutdown)
	}

	if cfg.MetricExporter != "" && cfg.MetricExporter != ExporterNone {
		mp, err := t.initMeter(cfg, res)
		if err != nil {
			_ = t.Shutdown(ctx)
			return nil, fmt.Errorf("init meter: %w", err)
		}
		otel.SetMeterProvider(mp)
		t.shutdownFuncs = append(t.shutdownFuncs, mp.Shutdown)
	}

	return t, nil
}

// Shutdown flushes and stops every installed provider.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error
	for _, fn := range t.shutdownFuncs {
		if err := fn(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	t.shutdownFuncs = nil
	return errors.Join(errs...)
}

// MetricsHandler returns the /metrics handler, or nil unless the prometheus
// exporter is enabled.
func (t *Telemetry) MetricsHandler() http.Handler {
	return t.metricsHandler
}

func initTracer(ctx context.Context, cfg Config, res *resource.Resource) (*trace.TracerProvider, error) {
	var exporter trace.SpanExporter
	var err error

	switch cfg.TraceExporter {
	case ExporterOTLP:
		opts := []otlptracegrpc.Option{
			otlptracegrpc.WithEndpoint(cfg.OTLPEndpoint),
		}
		if cfg.OTLPInsecure {
			opts = append(opts, otlptracegrpc.WithInsecure())
		}
		exporter, err = otlptracegrpc.New(ctx, opts...)

	case ExporterStdout:
		exporter, err = stdouttrace.New(stdouttrace.WithWriter(cfg.Writer))

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownExporter, cfg.TraceExporter)
	}

	if err != nil {
		return nil, fmt.Errorf("create exporter: %w", err)
	}

	return trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(res),
	), nil
}

func (t *Telemetry) initMeter(cfg Config, res *resource.Resource) (*metric.MeterProvider, error) {
	switch cfg.MetricExporter {
	case ExporterPrometheus:
		registry := prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)

		exporter, err := promexporter.New(promexporter.WithRegisterer(registry))
		if err != nil {
			return nil, fmt.Errorf("create prometheus exporter: %w", err)
		}
		t.metricsHandler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

		return metric.NewMeterProvider(
			metric.WithResource(res),
			metric.WithReader(exporter),
		), nil

	case ExporterStdout:
		exporter, err := stdoutmetric.New(stdoutmetric.WithWriter(cfg.Writer))
		if err != nil {
			return nil, fmt.Errorf("create stdout metric exporter: %w", err)
		}

		return metric.NewMeterProvider(
			metric.WithResource(res),
			metric.WithReader(metric.NewPeriodicReader(exporter)),
		), nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownExporter, cfg.MetricExporter)
	}
}

func getEnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
