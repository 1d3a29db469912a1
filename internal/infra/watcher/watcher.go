// Package watcher announces edits made to the outline file outside whiteboard.
package watcher

import (
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/runoshun/whiteboard/internal/domain"
)

// Watcher watches the directory of the outline file, so atomic
// rename-over writes by editors are seen, and notifies once the file has
// been quiet for the debounce period and its content actually changed.
type Watcher struct {
	pending  time.Time
	notifier domain.Notifier
	clock    domain.Clock
	logger   *slog.Logger
	path     string
	debounce time.Duration
	mu       sync.Mutex
	last     [sha256.Size]byte
}

// New creates a Watcher for the outline file at path.
func New(path string, debounce time.Duration, notifier domain.Notifier, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	w := &Watcher{
		path:     filepath.Clean(path),
		debounce: debounce,
		notifier: notifier,
		clock:    domain.RealClock{},
		logger:   logger,
	}
	w.Sync()
	return w
}

// Sync records the current file content as known, so a write made by
// whiteboard itself is not announced as an external edit.
func (w *Watcher) Sync() {
	content, err := os.ReadFile(w.path)
	if err != nil {
		return
	}
	w.mu.Lock()
	w.last = sha256.Sum256(content)
	w.mu.Unlock()
}

// Run watches until ctx is canceled.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = fsw.Close() }()

	dir := filepath.Dir(w.path)
	if err := fsw.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	w.logger.Debug("watching outline file", "path", w.path)

	tick := w.debounce / 2
	if tick <= 0 {
		tick = 10 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "error", err)

		case <-ticker.C:
			w.flush(ctx)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
		return // Ignore chmod and remove
	}
	w.mu.Lock()
	w.pending = w.clock.Now()
	w.mu.Unlock()
}

// flush notifies once the last event is older than the debounce period.
func (w *Watcher) flush(ctx context.Context) {
	w.mu.Lock()
	if w.pending.IsZero() || w.clock.Now().Sub(w.pending) < w.debounce {
		w.mu.Unlock()
		return
	}
	w.pending = time.Time{}
	w.mu.Unlock()

	content, err := os.ReadFile(w.path)
	if err != nil {
		if !os.IsNotExist(err) {
			w.logger.Warn("read outline file", "error", err)
		}
		return
	}
	sum := sha256.Sum256(content)

	w.mu.Lock()
	unchanged := sum == w.last
	w.last = sum
	w.mu.Unlock()
	if unchanged {
		return
	}

	w.logger.Info("outline edited externally", "path", w.path)
	w.notifier.Notify(ctx, domain.Event{
		Time: w.clock.Now(),
		Type: domain.EventExternalEdit,
	})
}
