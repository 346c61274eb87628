// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package server exposes watch-mode health, status and metrics over HTTP.
//
// Endpoints:
//
//	GET /health  - liveness
//	GET /status  - totals of the most recent lint batch
//	GET /metrics - Prometheus exposition (only when a metrics handler is set)
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/fe-jhw/reactfc/services/lint"
)

// ServiceName is the otel server name used for request spans.
const ServiceName = "reactfc-watch"

// ErrAlreadyStarted is returned by Start on a running server.
var ErrAlreadyStarted = errors.New("server already started")

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	Root     string       `json:"root"`
	Batches  int          `json:"batches"`
	LastRun  *time.Time   `json:"last_run,omitempty"`
	Summary  lint.Summary `json:"summary"`
	Clean    bool         `json:"clean"`
	Problems int          `json:"problems"`
}

// Server serves the watch-mode endpoints.
//
// Thread Safety: Record may be called concurrently with request handling.
type Server struct {
	addr   string
	root   string
	logger *slog.Logger
	router *gin.Engine

	mu      sync.RWMutex
	batches int
	lastRun time.Time
	summary lint.Summary
	srv     *http.Server
	ln      net.Listener
}

// New builds the router. metrics may be nil, in which case /metrics is not
// registered.
func New(addr, root string, metrics http.Handler, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		addr:   addr,
		root:   root,
		logger: logger,
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(ServiceName))

	router.GET("/health", s.handleHealth)
	router.GET("/status", s.handleStatus)
	if metrics != nil {
		router.GET("/metrics", gin.WrapH(metrics))
	}

	s.router = router
	return s
}

// Handler returns the HTTP handler. Used by tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Record stores the totals of a finished batch.
func (s *Server) Record(summary lint.Summary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batches++
	s.lastRun = time.Now()
	s.summary = summary
}

// Start listens on the configured address and serves in the background.
// Listen errors are returned directly.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.srv != nil {
		return ErrAlreadyStarted
	}

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.ln = ln
	s.srv = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	srv := s.srv
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("status server stopped", slog.String("error", err.Error()))
		}
	}()
	s.logger.Info("status server listening", slog.String("addr", ln.Addr().String()))
	return nil
}

// Addr returns the bound address, or the configured one before Start.
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.ln != nil {
		return s.ln.Addr().String()
	}
	return s.addr
}

// Shutdown gracefully stops a started server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.srv
	s.mu.Unlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

func (s *Server) handleStatus(c *gin.Context) {
	s.mu.RLock()
	resp := StatusResponse{
		Root:     s.root,
		Batches:  s.batches,
		Summary:  s.summary,
		Clean:    s.summary.Clean(),
		Problems: s.summary.Problems(),
	}
	if !s.lastRun.IsZero() {
		last := s.lastRun
		resp.LastRun = &last
	}
	s.mu.RUnlock()

	c.JSON(http.StatusOK, resp)
}
