// Package watch reloads a configuration file when it changes on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after the last change before a reload.
const DefaultDebounce = 100 * time.Millisecond

// Watcher watches a single file. Editors often replace a file rather than
// write it in place, so the watcher follows the file's directory and filters
// events by name.
type Watcher struct {
	path     string
	debounce time.Duration
	logger   *slog.Logger
}

// New creates a watcher for the file at path. A non-positive debounce uses
// DefaultDebounce, and a nil logger uses slog.Default.
func New(path string, debounce time.Duration, logger *slog.Logger) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{path: filepath.Clean(path), debounce: debounce, logger: logger}
}

// Watch calls onReload after each burst of changes to the file until ctx is
// cancelled. Errors from onReload are logged and do not stop watching.
func (w *Watcher) Watch(ctx context.Context, onReload func() error) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer fw.Close()
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("failed to watch %q: %w", w.path, err)
	}

	d := NewDebouncer(w.debounce)
	defer d.Stop()
	w.logger.Info("config watcher started", "path", w.path, "debounce_ms", w.debounce.Milliseconds())
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("config watcher stopped")
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return errors.New("watcher events channel closed")
			}
			if !w.relevant(ev) {
				continue
			}
			w.logger.Debug("config file event", "path", ev.Name, "op", ev.Op.String())
			d.Trigger(func() {
				w.logger.Info("reloading config", "path", w.path)
				if err := onReload(); err != nil {
					w.logger.Error("config reload failed", "error", err)
				}
			})
		case err, ok := <-fw.Errors:
			if !ok {
				return errors.New("watcher errors channel closed")
			}
			w.logger.Error("config watcher error", "error", err)
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}

// Debouncer collects rapid events and runs only the latest callback once a
// quiet period has passed.
type Debouncer struct {
	interval time.Duration
	mu       sync.Mutex
	timer    *time.Timer
	stopped  bool
}

// NewDebouncer creates a debouncer with the given quiet period.
func NewDebouncer(interval time.Duration) *Debouncer {
	return &Debouncer{interval: interval}
}

// Trigger schedules callback to run after the quiet period, replacing any
// callback that has not run yet.
func (d *Debouncer) Trigger(callback func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, callback)
}

// Stop cancels any pending callback. Later triggers are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
