// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package watch reports batches of changed source files under a directory.
package watch

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"
)

// Op is the kind of change seen for a file.
type Op int

const (
	// OpCreate indicates a file was created.
	OpCreate Op = iota

	// OpWrite indicates a file was modified.
	OpWrite

	// OpRemove indicates a file was deleted or renamed away.
	OpRemove
)

// String returns the string representation of the operation.
func (op Op) String() string {
	switch op {
	case OpCreate:
		return "create"
	case OpWrite:
		return "write"
	case OpRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// Change is one file change after debouncing.
type Change struct {
	Path string
	Op   Op
	Time time.Time
}

// Handler receives each debounced batch. It runs on the watcher's debounce
// goroutine, so batches never overlap.
type Handler func(ctx context.Context, changes []Change)

// Options configures a Watcher.
type Options struct {
	// Debounce is how long the watcher waits for quiet before flushing.
	Debounce time.Duration

	// Ignore holds base names or globs of directories and files to skip.
	Ignore []string

	// Filter keeps only files it returns true for. Nil keeps everything.
	Filter func(path string) bool

	// MaxBatchesPerSecond caps how often Handler runs. Zero means no cap.
	MaxBatchesPerSecond float64

	// BufferSize is the capacity of the pending-change channel.
	BufferSize int

	// Logger receives watcher errors.
	Logger *slog.Logger
}

// DefaultOptions returns the options used by `reactfc watch`.
func DefaultOptions() Options {
	return Options{
		Debounce:            200 * time.Millisecond,
		Ignore:              []string{".git", "node_modules", "vendor", "*.swp", "*.tmp", "*~"},
		MaxBatchesPerSecond: 4,
		BufferSize:          1024,
	}
}

// Watcher watches a directory tree and delivers debounced batches of changes.
//
// # Description
//
// Every directory under the root is registered with fsnotify; directories
// created later are added as they appear. Events for the same path inside one
// debounce window collapse to the latest one.
//
// # Thread Safety
//
// Start and Stop are safe for concurrent use. Handler is called from a single
// goroutine.
type Watcher struct {
	root    string
	opts    Options
	handler Handler
	fsw     *fsnotify.Watcher
	limiter *rate.Limiter
	logger  *slog.Logger

	changes chan Change
	done    chan struct{}
	wg      sync.WaitGroup

	mu       sync.Mutex
	started  bool
	stopOnce sync.Once
}

// New creates a watcher for root. Call Start to begin watching.
func New(root string, handler Handler, opts Options) (*Watcher, error) {
	if handler == nil {
		return nil, errors.New("handler must not be nil")
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, errors.New("watch root must be a directory: " + root)
	}

	defaults := DefaultOptions()
	if opts.Debounce <= 0 {
		opts.Debounce = defaults.Debounce
	}
	if opts.BufferSize <= 0 {
		opts.BufferSize = defaults.BufferSize
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if opts.MaxBatchesPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.MaxBatchesPerSecond), 1)
	}

	return &Watcher{
		root:    root,
		opts:    opts,
		handler: handler,
		fsw:     fsw,
		limiter: limiter,
		logger:  opts.Logger,
		changes: make(chan Change, opts.BufferSize),
		done:    make(chan struct{}),
	}, nil
}

// Start registers the directory tree and starts the event and debounce
// goroutines. Both exit when ctx is canceled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return nil
	}

	if err := w.addRecursive(w.root); err != nil {
		return err
	}
	w.started = true

	w.wg.Add(2)
	go w.processEvents(ctx)
	go w.debounceLoop(ctx)
	return nil
}

// Stop stops watching and waits for the goroutines to exit.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		if err := w.fsw.Close(); err != nil {
			w.logger.Debug("closing fsnotify watcher", slog.String("error", err.Error()))
		}
		w.wg.Wait()
	})
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && w.ignored(path) {
			return filepath.SkipDir
		}
		return w.fsw.Add(path)
	})
}

// ignored reports whether the base name of path matches an ignore entry.
func (w *Watcher) ignored(path string) bool {
	base := filepath.Base(path)
	for _, pattern := range w.opts.Ignore {
		if base == pattern {
			return true
		}
		if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
	}
	return false
}

func (w *Watcher) processEvents(ctx context.Context) {
	defer w.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("file watcher error", slog.String("error", err.Error()))
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}
	if w.ignored(event.Name) || w.insideIgnoredDir(event.Name) {
		return
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addRecursive(event.Name); err != nil {
				w.logger.Warn("watching new directory", slog.String("dir", event.Name), slog.String("error", err.Error()))
			}
			return
		}
	}

	if w.opts.Filter != nil && !w.opts.Filter(event.Name) {
		return
	}

	change := Change{Path: event.Name, Op: convertOp(event.Op), Time: time.Now()}
	select {
	case w.changes <- change:
	default:
		w.logger.Warn("change buffer full, dropping event", slog.String("file", event.Name))
	}
}

// insideIgnoredDir reports whether any directory between root and path is ignored.
func (w *Watcher) insideIgnoredDir(path string) bool {
	rel, err := filepath.Rel(w.root, filepath.Dir(path))
	if err != nil || rel == "." {
		return false
	}
	for _, part := range strings.Split(rel, string(filepath.Separator)) {
		if w.ignored(part) {
			return true
		}
	}
	return false
}

func convertOp(op fsnotify.Op) Op {
	switch {
	case op.Has(fsnotify.Remove), op.Has(fsnotify.Rename):
		return OpRemove
	case op.Has(fsnotify.Create):
		return OpCreate
	default:
		return OpWrite
	}
}

func (w *Watcher) debounceLoop(ctx context.Context) {
	defer w.wg.Done()

	var batch []Change
	timer := time.NewTimer(w.opts.Debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}
		pending := dedupe(batch)
		batch = nil
		if err := w.limiter.Wait(ctx); err != nil {
			return
		}
		w.handler(ctx, pending)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case change := <-w.changes:
			batch = append(batch, change)
			timer.Reset(w.opts.Debounce)
		case <-timer.C:
			flush()
		}
	}
}

// dedupe keeps the latest change per path, in first-seen order.
func dedupe(changes []Change) []Change {
	seen := make(map[string]int, len(changes))
	out := make([]Change, 0, len(changes))
	for _, c := range changes {
		if i, ok := seen[c.Path]; ok {
			out[i] = c
			continue
		}
		seen[c.Path] = len(out)
		out = append(out, c)
	}
	return out
}
