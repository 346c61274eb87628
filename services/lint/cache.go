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
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"

	"github.com/fe-jhw/reactfc/services/storage/badger"
)

// RuleVersion is bumped whenever classification or discovery changes so
// cached findings from older binaries are not reused.
const RuleVersion = "1"

const cachePrefix = "reactfc/findings/v" + RuleVersion + "/"

// Findings are the policy-independent results of checking one file's content.
// Policy is applied after a cache hit, so changing severities never requires
// invalidating the cache.
type Findings struct {
	Language    string      `json:"language"`
	Components  int         `json:"components"`
	ParseErrors []string    `json:"parse_errors,omitempty"`
	Issues      []LintIssue `json:"issues"`
}

// Cache stores Findings by content key.
//
// Implementations must be safe for concurrent use. Failures are the
// implementation's to log; a failed Get is a miss.
type Cache interface {
	Get(ctx context.Context, key string) (*Findings, bool)
	Put(ctx context.Context, key string, findings *Findings)
}

// CacheKey returns the cache key for content parsed as language.
func CacheKey(content []byte, language string) string {
	sum := sha256.Sum256(content)
	return cachePrefix + language + "/" + hex.EncodeToString(sum[:])
}

// BadgerCache is a Cache persisted in a badger Store.
//
// Thread Safety: Safe for concurrent use.
type BadgerCache struct {
	store  *badger.Store
	logger *slog.Logger
}

// NewBadgerCache wraps store. The caller keeps ownership of store.
func NewBadgerCache(store *badger.Store, logger *slog.Logger) *BadgerCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &BadgerCache{store: store, logger: logger}
}

// Get implements Cache.
func (c *BadgerCache) Get(ctx context.Context, key string) (*Findings, bool) {
	raw, ok, err := c.store.Get(ctx, []byte(key))
	if err != nil {
		c.logger.Warn("result cache read failed",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var findings Findings
	if err := json.Unmarshal(raw, &findings); err != nil {
		c.logger.Warn("result cache entry is corrupt",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return nil, false
	}
	return &findings, true
}

// Put implements Cache.
func (c *BadgerCache) Put(ctx context.Context, key string, findings *Findings) {
	raw, err := json.Marshal(findings)
	if err != nil {
		c.logger.Warn("result cache encode failed",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return
	}
	if err := c.store.Set(ctx, []byte(key), raw); err != nil {
		c.logger.Warn("result cache write failed",
			slog.String("key", key),
			slog.String("error", err.Error()))
	}
}

// Purge drops every cached entry of every rule version.
func (c *BadgerCache) Purge() error {
	return c.store.DropPrefix([]byte("reactfc/findings/"))
}
