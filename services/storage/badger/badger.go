// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package badger provides an embedded key/value store backed by BadgerDB.
//
// The lint result cache persists here between runs so unchanged files are
// not parsed again. Keys are namespaced by a caller-chosen prefix and may
// carry a TTL.
//
// License: BadgerDB is Apache 2.0 licensed (github.com/dgraph-io/badger).
package badger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// ErrClosed is returned by operations on a closed Store.
var ErrClosed = errors.New("store is closed")

// Config holds configuration for a Store.
type Config struct {
	// Dir is the directory for database files. Ignored when InMemory is true.
	Dir string

	// InMemory keeps everything in RAM. Used by tests.
	InMemory bool

	// SyncWrites fsyncs every write.
	SyncWrites bool

	// TTL expires entries after the given duration. Zero keeps entries forever.
	TTL time.Duration

	// GCInterval is how often value log GC runs. Zero disables it.
	GCInterval time.Duration

	// GCDiscardRatio is the garbage ratio that triggers a value log rewrite.
	GCDiscardRatio float64

	// Logger receives BadgerDB's internal log lines. Nil silences them.
	Logger *slog.Logger
}

// DefaultConfig returns the configuration for an on-disk cache at dir.
func DefaultConfig(dir string) Config {
	return Config{
		Dir:            dir,
		TTL:            7 * 24 * time.Hour,
		GCInterval:     5 * time.Minute,
		GCDiscardRatio: 0.5,
	}
}

// InMemoryConfig returns a configuration with no disk I/O and no GC.
func InMemoryConfig() Config {
	return Config{InMemory: true}
}

// slogAdapter adapts slog.Logger to badger.Logger.
type slogAdapter struct {
	logger *slog.Logger
}

func (l *slogAdapter) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...), slog.String("component", "badger"))
}

func (l *slogAdapter) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...), slog.String("component", "badger"))
}

func (l *slogAdapter) Infof(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...), slog.String("component", "badger"))
}

func (l *slogAdapter) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...), slog.String("component", "badger"))
}

// Store is a BadgerDB-backed key/value store.
//
// Thread Safety: Safe for concurrent use.
type Store struct {
	db  *badger.DB
	ttl time.Duration

	stopGC    chan struct{}
	gcDone    chan struct{}
	closeOnce sync.Once
	closeErr  error
}

// Open opens a Store with the given configuration.
//
// Description:
//
//	Opens BadgerDB at cfg.Dir (created if missing) or in memory. When
//	GCInterval is positive and the store is on disk, a background goroutine
//	runs value log GC until Close.
//
// Inputs:
//
//	cfg - Store configuration. Dir is required unless InMemory is true.
//
// Outputs:
//
//	*Store - The opened store. Caller must call Close().
//	error - Non-nil if the directory is missing or BadgerDB fails to open.
func Open(cfg Config) (*Store, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if cfg.Dir == "" {
			return nil, errors.New("dir is required for a persistent store")
		}
		if err := os.MkdirAll(cfg.Dir, 0750); err != nil {
			return nil, fmt.Errorf("create store directory %s: %w", cfg.Dir, err)
		}
		opts = badger.DefaultOptions(cfg.Dir)
	}

	opts = opts.WithSyncWrites(cfg.SyncWrites).WithNumVersionsToKeep(1)
	if cfg.Logger != nil {
		opts = opts.WithLogger(&slogAdapter{logger: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger store: %w", err)
	}

	s := &Store{db: db, ttl: cfg.TTL}
	if cfg.GCInterval > 0 && !cfg.InMemory {
		s.stopGC = make(chan struct{})
		s.gcDone = make(chan struct{})
		go s.runGC(cfg.GCInterval, cfg.GCDiscardRatio, cfg.Logger)
	}
	return s, nil
}

// OpenInMemory opens an in-memory Store.
func OpenInMemory() (*Store, error) {
	return Open(InMemoryConfig())
}

// Get returns the value stored under key.
//
// Outputs:
//
//	[]byte - A copy of the value, nil when missing.
//	bool - True when the key exists and has not expired.
//	error - Non-nil on storage failure or cancellation.
func (s *Store) Get(ctx context.Context, key []byte) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if errors.Is(err, badger.ErrDBClosed) {
		return nil, false, ErrClosed
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %q: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key, applying the configured TTL.
func (s *Store) Set(ctx context.Context, key, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry(key, value)
		if s.ttl > 0 {
			entry = entry.WithTTL(s.ttl)
		}
		return txn.SetEntry(entry)
	})
	if errors.Is(err, badger.ErrDBClosed) {
		return ErrClosed
	}
	if err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

// DropPrefix removes every key starting with prefix.
func (s *Store) DropPrefix(prefix []byte) error {
	if err := s.db.DropPrefix(prefix); err != nil {
		return fmt.Errorf("drop prefix %q: %w", prefix, err)
	}
	return nil
}

// Close stops GC and closes the database. Safe to call multiple times.
func (s *Store) Close() error {
	s.closeOnce.Do(func() {
		if s.stopGC != nil {
			close(s.stopGC)
			<-s.gcDone
		}
		s.closeErr = s.db.Close()
	})
	return s.closeErr
}

func (s *Store) runGC(interval time.Duration, ratio float64, logger *slog.Logger) {
	defer close(s.gcDone)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopGC:
			return
		case <-ticker.C:
			// ErrNoRewrite means there was nothing to collect.
			if err := s.db.RunValueLogGC(ratio); err != nil && !errors.Is(err, badger.ErrNoRewrite) && logger != nil {
				logger.Warn("badger value log GC failed", slog.String("error", err.Error()))
			}
		}
	}
}
