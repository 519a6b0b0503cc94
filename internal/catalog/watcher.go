package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/hammamikhairi/craftbox/internal/logger"
)

// WatcherOption configures the file watcher.
type WatcherOption func(*FileWatcher)

// WithDebounce sets how long the watcher waits after the last change
// before reloading.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *FileWatcher) {
		w.debounce = d
	}
}

// FileWatcher reloads a MemorySource whenever its backing YAML file changes.
// A file that fails to parse leaves the current catalog in place.
type FileWatcher struct {
	path     string
	src      *MemorySource
	log      *logger.Logger
	debounce time.Duration
}

// NewFileWatcher creates a watcher for path feeding src.
func NewFileWatcher(path string, src *MemorySource, log *logger.Logger, opts ...WatcherOption) *FileWatcher {
	w := &FileWatcher{
		path:     filepath.Clean(path),
		src:      src,
		log:      log,
		debounce: 200 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run watches until ctx is cancelled. The parent directory is watched so
// editors that replace the file by rename are still seen.
func (w *FileWatcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(w.path), err)
	}
	w.log.Info("catalog watcher started (%s)", w.path)

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info("catalog watcher stopped")
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			w.log.Debug("catalog file event: %s", ev.Op)
			timer.Reset(w.debounce)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Error("catalog watcher: %v", err)
		case <-timer.C:
			w.reload()
		}
	}
}

func (w *FileWatcher) reload() {
	recipes, err := LoadFile(w.path)
	if err != nil {
		w.log.Warn("catalog reload failed, keeping previous catalog: %v", err)
		return
	}
	w.src.Replace(recipes)
}
