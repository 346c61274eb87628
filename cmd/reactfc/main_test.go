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
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fe-jhw/reactfc/cmd/reactfc/config"
	"github.com/fe-jhw/reactfc/services/lint"
	"github.com/fe-jhw/reactfc/services/watch"
)

const goodComponent = `function Good() {
  const [count, setCount] = useState(0);
  useEffect(() => {}, []);
  return <div>{count}</div>;
}
`

const badComponent = `function Bad() {
  useEffect(() => {}, []);
  const [count, setCount] = useState(0);
  return <div>{count}</div>;
}
`

// cliResult holds the captured output of one invocation.
type cliResult struct {
	code   int
	stdout string
	stderr string
}

// runCLI runs the CLI in a fresh working directory.
func runCLI(t *testing.T, dir string, args ...string) cliResult {
	t.Helper()
	t.Setenv("OTEL_TRACES_EXPORTER", "none")
	t.Setenv("OTEL_METRICS_EXPORTER", "none")
	t.Chdir(dir)

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return cliResult{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func decodeResult(t *testing.T, out string) (CommandResult, CheckData) {
	t.Helper()
	var raw struct {
		CommandResult
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &raw), out)

	var data CheckData
	if len(raw.Data) > 0 {
		require.NoError(t, json.Unmarshal(raw.Data, &data))
	}
	return raw.CommandResult, data
}

// =============================================================================
// check
// =============================================================================

func TestCheck_CleanTree(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "src/Good.jsx", goodComponent)

	res := runCLI(t, dir, "check", "--no-cache", "--color", "never")
	assert.Equal(t, CLIExitSuccess, res.code, res.stderr)
	assert.Equal(t, "✓ 1 file checked, no problems\n", res.stdout)
}

func TestCheck_FindingsText(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Good.jsx", goodComponent)
	writeFile(t, dir, "Bad.jsx", badComponent)

	res := runCLI(t, dir, "check", ".", "--no-cache", "--color", "never")
	assert.Equal(t, CLIExitFindings, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Bad.jsx\n")
	assert.Contains(t, res.stdout, "3:3")
	assert.Contains(t, res.stdout, "The 'useState' block is before a 'useEffect' block.")
	assert.Contains(t, res.stdout, "reactfc/order (Bad)")
	assert.Contains(t, res.stdout, "1 problem (1 error, 0 warnings) · 2 files checked")
	assert.NotContains(t, res.stdout, "Good.jsx")
}

func TestCheck_JSONEnvelope(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "Bad.jsx", badComponent)

	res := runCLI(t, dir, "check", bad, "--no-cache", "--format", "json")
	require.Equal(t, CLIExitFindings, res.code, res.stderr)

	envelope, data := decodeResult(t, res.stdout)
	assert.Equal(t, APIVersion, envelope.APIVersion)
	assert.Equal(t, "check", envelope.Command)
	assert.True(t, envelope.Success)
	_, err := uuid.Parse(envelope.RunID)
	assert.NoError(t, err)
	assert.WithinDuration(t, time.Now(), envelope.Timestamp, time.Minute)

	assert.Equal(t, 1, data.ErrorCount)
	assert.Zero(t, data.WarningCount)
	require.Len(t, data.Files, 1)
	require.Len(t, data.Files[0].Errors, 1)

	issue := data.Files[0].Errors[0]
	assert.Equal(t, bad, issue.File)
	assert.Equal(t, 3, issue.Line)
	assert.Equal(t, 3, issue.Column)
	assert.Equal(t, "Bad", issue.Component)
	assert.Equal(t, "useState", issue.Category)
	assert.Equal(t, "useEffect", issue.ShouldBeAfter)
	assert.Equal(t, 2, issue.BlockerLine)
	assert.Equal(t, lint.SeverityError, issue.Severity)
}

func TestCheck_ConfigDowngradesRule(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Bad.jsx", badComponent)
	writeFile(t, dir, config.FileName, "rules:\n  reactfc/order: warn\ncache: {enabled: false}\n")

	res := runCLI(t, dir, "check", "--color", "never")
	assert.Equal(t, CLIExitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stdout, "warning")

	quiet := runCLI(t, dir, "check", "--color", "never", "--quiet")
	assert.Equal(t, CLIExitSuccess, quiet.code)
	assert.NotContains(t, quiet.stdout, "Bad.jsx")
}

func TestCheck_RuleOff(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Bad.jsx", badComponent)
	writeFile(t, dir, "rules.yaml", "rules:\n  reactfc/order: off\n")

	res := runCLI(t, dir, "check", "--config", "rules.yaml", "--no-cache", "--color", "never")
	assert.Equal(t, CLIExitSuccess, res.code, res.stderr)
	assert.Equal(t, "✓ 1 file checked, no problems\n", res.stdout)
}

func TestCheck_CacheReuse(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Bad.jsx", badComponent)
	cacheDir := filepath.Join(dir, ".cache")

	first := runCLI(t, dir, "check", "--format", "json", "--cache-dir", cacheDir)
	require.Equal(t, CLIExitFindings, first.code, first.stderr)
	_, data := decodeResult(t, first.stdout)
	require.Len(t, data.Files, 1)
	assert.False(t, data.Files[0].Cached)

	second := runCLI(t, dir, "check", "--format", "json", "--cache-dir", cacheDir)
	require.Equal(t, CLIExitFindings, second.code, second.stderr)
	_, data = decodeResult(t, second.stdout)
	require.Len(t, data.Files, 1)
	assert.True(t, data.Files[0].Cached)
	assert.Equal(t, 1, data.ErrorCount)
}

func TestCheck_FailedFileExitsWithError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Bad.jsx", badComponent)
	writeFile(t, dir, "Latin1.jsx", "function A() { return '\xff'; }")

	res := runCLI(t, dir, "check", "--no-cache", "--format", "json")
	assert.Equal(t, CLIExitError, res.code)

	_, data := decodeResult(t, res.stdout)
	assert.Equal(t, 1, data.FailedCount)
	assert.Equal(t, 1, data.ErrorCount)
}

func TestCheck_MissingPath(t *testing.T) {
	dir := t.TempDir()

	res := runCLI(t, dir, "check", "does-not-exist", "--no-cache", "--color", "never")
	assert.Equal(t, CLIExitError, res.code)
	assert.Contains(t, res.stderr, "does-not-exist")
	assert.Empty(t, res.stdout)

	jsonRes := runCLI(t, dir, "check", "does-not-exist", "--no-cache", "--format", "json")
	assert.Equal(t, CLIExitError, jsonRes.code)
	envelope, _ := decodeResult(t, jsonRes.stdout)
	assert.False(t, envelope.Success)
	assert.Equal(t, "check", envelope.Command)
	assert.Contains(t, envelope.Error, "does-not-exist")
}

func TestCheck_InvalidConfigAndFlags(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, config.FileName, "workers: 999\n")

	res := runCLI(t, dir, "check", "--color", "never")
	assert.Equal(t, CLIExitError, res.code)
	assert.Contains(t, res.stderr, "workers")

	res = runCLI(t, t.TempDir(), "check", "--format", "xml", "--color", "never")
	assert.Equal(t, CLIExitError, res.code)
	assert.Contains(t, res.stderr, "output.format")

	res = runCLI(t, t.TempDir(), "check", "--log-level", "loud", "--color", "never")
	assert.Equal(t, CLIExitError, res.code)
	assert.Contains(t, res.stderr, "unknown log level")
}

// =============================================================================
// order, init, version
// =============================================================================

func TestOrder(t *testing.T) {
	res := runCLI(t, t.TempDir(), "order", "--color", "never")
	require.Equal(t, CLIExitSuccess, res.code, res.stderr)
	lines := strings.Split(strings.TrimSpace(res.stdout), "\n")
	require.Len(t, lines, 7)
	assert.True(t, strings.HasPrefix(lines[1], "2. custom hook"))

	jsonRes := runCLI(t, t.TempDir(), "order", "--format", "json")
	require.Equal(t, CLIExitSuccess, jsonRes.code)
	var envelope struct {
		Data []OrderEntry `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(jsonRes.stdout), &envelope))
	require.Len(t, envelope.Data, 7)
	assert.Equal(t, OrderEntry{Rank: 6, Key: "return", Label: "JSX return"}, envelope.Data[6])
}

func TestInit(t *testing.T) {
	dir := t.TempDir()

	res := runCLI(t, dir, "init", "--color", "never")
	require.Equal(t, CLIExitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stdout, "wrote "+config.FileName)

	cfg, path, err := config.Load(filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	assert.NotEmpty(t, path)
	assert.Equal(t, config.DefaultConfig(), cfg)

	again := runCLI(t, dir, "init", "--color", "never")
	assert.Equal(t, CLIExitError, again.code)
	assert.Contains(t, again.stderr, "already exists")
}

func TestVersion(t *testing.T) {
	res := runCLI(t, t.TempDir(), "version")
	require.Equal(t, CLIExitSuccess, res.code)
	assert.True(t, strings.HasPrefix(res.stdout, "reactfc dev ("))
}

func TestUnknownCommand(t *testing.T) {
	res := runCLI(t, t.TempDir(), "lint", "--color", "never")
	assert.Equal(t, CLIExitError, res.code)
	assert.Contains(t, res.stderr, "unknown command")
}

// =============================================================================
// watch
// =============================================================================

func TestWatchSession_HandleBatch(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "Bad.jsx", badComponent)
	gone := filepath.Join(dir, "Gone.jsx")

	var stdout bytes.Buffer
	a := newApp(&stdout, &bytes.Buffer{})
	a.cfg.Output.Color = "never"
	a.cfg.Cache.Enabled = false
	runner, closeCache, err := a.newRunner()
	require.NoError(t, err)
	defer closeCache()

	s := &watchSession{app: a, runner: runner}
	s.handle(context.Background(), []watch.Change{
		{Path: gone, Op: watch.OpRemove},
		{Path: bad, Op: watch.OpWrite},
	})

	out := stdout.String()
	assert.Contains(t, out, "Bad.jsx")
	assert.Contains(t, out, "1 problem (1 error, 0 warnings) · 1 file checked")
	assert.NotContains(t, out, "Gone.jsx")
}

func TestWatchSession_RemovalsOnlyPrintNothing(t *testing.T) {
	var stdout bytes.Buffer
	a := newApp(&stdout, &bytes.Buffer{})
	a.cfg.Cache.Enabled = false
	runner, closeCache, err := a.newRunner()
	require.NoError(t, err)
	defer closeCache()

	s := &watchSession{app: a, runner: runner}
	s.handle(context.Background(), []watch.Change{{Path: "x.jsx", Op: watch.OpRemove}})
	assert.Empty(t, stdout.String())
}

func TestWatch_StopsOnCancel(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Good.jsx", goodComponent)
	t.Setenv("OTEL_TRACES_EXPORTER", "none")
	t.Setenv("OTEL_METRICS_EXPORTER", "none")
	t.Chdir(dir)

	ctx, cancel := context.WithCancel(context.Background())
	var stdout, stderr bytes.Buffer
	done := make(chan int, 1)
	go func() {
		done <- run(ctx, []string{"watch", "--no-cache", "--color", "never"}, &stdout, &stderr)
	}()

	time.Sleep(300 * time.Millisecond)
	cancel()

	select {
	case code := <-done:
		assert.Equal(t, CLIExitSuccess, code, stderr.String())
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}
