// Package watcher reloads the config file when it changes on disk.
package watcher

import (
	"context"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"nodal/internal/config"
)

// ReloadFunc receives each successfully parsed config
type ReloadFunc func(cfg *config.Config)

// Watcher watches a config file and reloads it after changes settle
type Watcher struct {
	path     string
	onReload ReloadFunc
	debounce time.Duration
}

// New creates a new config watcher
func New(path string, onReload ReloadFunc) *Watcher {
	return &Watcher{
		path:     path,
		onReload: onReload,
		debounce: 500 * time.Millisecond,
	}
}

// WithDebounce sets the debounce duration
func (w *Watcher) WithDebounce(d time.Duration) *Watcher {
	w.debounce = d
	return w
}

// Watch blocks until the context is cancelled or the fsnotify watcher fails.
// A file that does not parse is logged and skipped; the last good config
// stays in effect.
func (w *Watcher) Watch(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	// Watch the directory so editors that replace the file are still seen
	dir := filepath.Dir(w.path)
	filename := filepath.Base(w.path)

	if err := fw.Add(dir); err != nil {
		return err
	}

	log.Printf("Watching %s for changes", w.path)

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != filename {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(w.debounce)

		case <-timer.C:
			w.reload()

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			log.Printf("Watcher error: %v", err)

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (w *Watcher) reload() {
	cfg, _, err := config.LoadFromPath(w.path)
	if err != nil {
		log.Printf("Config reload failed, keeping previous: %v", err)
		return
	}
	log.Printf("Config reloaded: %s", w.path)
	w.onReload(cfg)
}
