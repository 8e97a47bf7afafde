// Package watcher keeps the metadata index in step with a vault on disk.
//
// It is used by `fmenu watch` and runs until its context is cancelled.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/aidanlsb/fieldmenu/internal/paths"
	"github.com/aidanlsb/fieldmenu/internal/vault"
)

// Target receives index updates. *metadata.Index implements it.
type Target interface {
	Refresh(ctx context.Context, f vault.File) error
	Remove(ctx context.Context, path string) error
}

// Event reports one processed change.
type Event struct {
	Path    string
	Removed bool
	Err     error
}

// Watcher monitors a vault and refreshes changed notes in the index.
type Watcher struct {
	vault  *vault.Vault
	target Target
	logger *slog.Logger

	debounceDelay time.Duration
	onChange      func(Event)

	fsWatcher *fsnotify.Watcher
	pending   map[string]time.Time
	mu        sync.Mutex

	// updateMu serializes index updates and onChange calls across the event
	// loop and the debounce goroutine.
	updateMu sync.Mutex
}

// Config holds configuration options for the Watcher.
type Config struct {
	Vault         *vault.Vault
	Target        Target
	DebounceDelay time.Duration // Default: 100ms
	Logger        *slog.Logger
	// OnChange is called after each index update. Calls never overlap, but
	// they come from more than one goroutine. Optional.
	OnChange func(Event)
}

// New creates a Watcher.
func New(cfg Config) (*Watcher, error) {
	if cfg.Vault == nil {
		return nil, fmt.Errorf("vault is required")
	}
	if cfg.Target == nil {
		return nil, fmt.Errorf("index target is required")
	}

	debounce := cfg.DebounceDelay
	if debounce == 0 {
		debounce = 100 * time.Millisecond
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Watcher{
		vault:         cfg.Vault,
		target:        cfg.Target,
		logger:        logger,
		debounceDelay: debounce,
		onChange:      cfg.OnChange,
		pending:       make(map[string]time.Time),
	}, nil
}

// Start watches the vault. It blocks until ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	var err error
	w.fsWatcher, err = fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer w.fsWatcher.Close()

	if err := w.addWatchRecursive(w.vault.Root()); err != nil {
		return fmt.Errorf("failed to watch vault: %w", err)
	}
	w.logger.Debug("watching vault", "root", w.vault.Root())

	go w.processDebounced(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ctx, event)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "error", err)
		}
	}
}

// handleEvent schedules writes and removes deleted notes immediately.
func (w *Watcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	abs := event.Name

	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			if !vault.IgnoredDir(info.Name()) && w.fsWatcher != nil {
				_ = w.addWatchRecursive(abs)
			}
			return
		}
	}

	rel, err := paths.Rel(w.vault.Root(), abs)
	if err != nil || !paths.IsMarkdown(rel) || w.ignored(rel) {
		return
	}

	w.logger.Debug("fs event", "op", event.Op.String(), "path", rel)

	switch {
	case event.Op&(fsnotify.Write|fsnotify.Create) != 0:
		w.scheduleRefresh(rel)
	case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		w.mu.Lock()
		delete(w.pending, rel)
		w.mu.Unlock()
		w.update(rel, true, func() error { return w.target.Remove(ctx, rel) })
	}
}

func (w *Watcher) scheduleRefresh(rel string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending[rel] = time.Now()
}

func (w *Watcher) processDebounced(ctx context.Context) {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.processPending(ctx, time.Now())
		}
	}
}

// processPending refreshes files whose last event is older than the debounce delay.
func (w *Watcher) processPending(ctx context.Context, now time.Time) {
	w.mu.Lock()
	var ready []string
	for rel, scheduledAt := range w.pending {
		if now.Sub(scheduledAt) >= w.debounceDelay {
			ready = append(ready, rel)
			delete(w.pending, rel)
		}
	}
	w.mu.Unlock()

	for _, rel := range ready {
		f, err := w.vault.File(rel)
		switch {
		case errors.Is(err, vault.ErrNotFound):
			// Written then deleted within the debounce window.
			w.update(rel, true, func() error { return w.target.Remove(ctx, rel) })
		case err != nil:
			w.update(rel, false, func() error { return err })
		default:
			w.update(rel, false, func() error { return w.target.Refresh(ctx, f) })
		}
	}
}

// update applies one index change and reports it.
func (w *Watcher) update(rel string, removed bool, apply func() error) {
	w.updateMu.Lock()
	defer w.updateMu.Unlock()
	w.report(Event{Path: rel, Removed: removed, Err: apply()})
}

func (w *Watcher) report(e Event) {
	if e.Err != nil {
		w.logger.Warn("index update failed", "path", e.Path, "error", e.Err)
	} else {
		w.logger.Debug("index updated", "path", e.Path, "removed", e.Removed)
	}
	if w.onChange != nil {
		w.onChange(e)
	}
}

func (w *Watcher) addWatchRecursive(root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if p != root && vault.IgnoredDir(d.Name()) {
			return filepath.SkipDir
		}
		if err := w.fsWatcher.Add(p); err != nil {
			w.logger.Debug("failed to watch directory", "path", p, "error", err)
		}
		return nil
	})
}

// ignored reports whether any directory of rel is skipped by the vault.
func (w *Watcher) ignored(rel string) bool {
	for dir := filepath.Dir(filepath.FromSlash(rel)); dir != "." && dir != string(filepath.Separator); dir = filepath.Dir(dir) {
		if vault.IgnoredDir(filepath.Base(dir)) {
			return true
		}
	}
	return false
}
