// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package badger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenInMemory(t *testing.T) {
	store, err := OpenInMemory()
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Set(ctx, []byte("key"), []byte("value")))

	got, ok, err := store.Get(ctx, []byte("key"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("value"), got)
}

func TestStore_GetMissing(t *testing.T) {
	store, err := OpenInMemory()
	require.NoError(t, err)
	defer store.Close()

	got, ok, err := store.Get(context.Background(), []byte("missing"))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestOpen_Persistent(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := Open(DefaultConfig(dir))
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, []byte("persistent-key"), []byte("persistent-value")))
	require.NoError(t, store.Close())

	reopened, err := Open(DefaultConfig(dir))
	require.NoError(t, err)
	defer reopened.Close()

	got, ok, err := reopened.Get(ctx, []byte("persistent-key"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("persistent-value"), got)
}

func TestOpen_RequiresDir(t *testing.T) {
	_, err := Open(Config{})
	assert.Error(t, err)
}

func TestStore_DropPrefix(t *testing.T) {
	store, err := OpenInMemory()
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Set(ctx, []byte("a/1"), []byte("x")))
	require.NoError(t, store.Set(ctx, []byte("a/2"), []byte("x")))
	require.NoError(t, store.Set(ctx, []byte("b/1"), []byte("x")))

	require.NoError(t, store.DropPrefix([]byte("a/")))

	_, ok, err := store.Get(ctx, []byte("a/1"))
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = store.Get(ctx, []byte("b/1"))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestStore_CanceledContext(t *testing.T) {
	store, err := OpenInMemory()
	require.NoError(t, err)
	defer store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, store.Set(ctx, []byte("k"), []byte("v")), context.Canceled)
	_, _, err = store.Get(ctx, []byte("k"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStore_CloseIdempotent(t *testing.T) {
	cfg := DefaultConfig(t.TempDir())
	cfg.GCInterval = 10 * time.Millisecond

	store, err := Open(cfg)
	require.NoError(t, err)

	time.Sleep(30 * time.Millisecond)
	require.NoError(t, store.Close())
	assert.NoError(t, store.Close())
}

func TestConfigFunctions(t *testing.T) {
	def := DefaultConfig("/tmp/x")
	assert.Equal(t, "/tmp/x", def.Dir)
	assert.False(t, def.InMemory)
	assert.Positive(t, def.TTL)
	assert.Positive(t, def.GCInterval)

	mem := InMemoryConfig()
	assert.True(t, mem.InMemory)
	assert.Zero(t, mem.GCInterval)
}
