// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package telemetry

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestInit_None(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TraceExporter = ExporterNone
	cfg.MetricExporter = ExporterNone

	tel, err := Init(context.Background(), cfg)
	require.NoError(t, err)
	assert.Nil(t, tel.MetricsHandler())
	assert.NoError(t, tel.Shutdown(context.Background()))
}

func TestInit_NilContext(t *testing.T) {
	var ctx context.Context
	_, err := Init(ctx, DefaultConfig())
	assert.ErrorIs(t, err, ErrNilContext)
}

func TestInit_UnknownExporter(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TraceExporter = "zipkin"
	_, err := Init(context.Background(), cfg)
	assert.ErrorIs(t, err, ErrUnknownExporter)

	cfg = DefaultConfig()
	cfg.TraceExporter = ExporterNone
	cfg.MetricExporter = "statsd"
	_, err = Init(context.Background(), cfg)
	assert.ErrorIs(t, err, ErrUnknownExporter)
}

func TestInit_Prometheus(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TraceExporter = ExporterNone
	cfg.MetricExporter = ExporterPrometheus

	tel, err := Init(context.Background(), cfg)
	require.NoError(t, err)
	defer tel.Shutdown(context.Background())

	counter, err := otel.Meter("telemetry_test").Int64Counter("reactfc_test_total")
	require.NoError(t, err)
	counter.Add(context.Background(), 3)

	handler := tel.MetricsHandler()
	require.NotNil(t, handler)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "reactfc_test_total")
}

func TestInit_StdoutWritesToWriter(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.TraceExporter = ExporterStdout
	cfg.MetricExporter = ExporterNone
	cfg.Writer = &buf

	tel, err := Init(context.Background(), cfg)
	require.NoError(t, err)

	_, span := otel.Tracer("telemetry_test").Start(context.Background(), "work")
	span.End()

	require.NoError(t, tel.Shutdown(context.Background()))
	assert.Contains(t, buf.String(), "work")
}
