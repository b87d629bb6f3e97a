package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nguyentantai21042004/tube-digest/internal/logger"
)

type implWatcher struct {
	dir     string
	exts    map[string]bool
	handler EventHandler
	logger  logger.Logger
	watcher *fsnotify.Watcher
	settle  time.Duration
}

// Start monitors the directory until ctx is cancelled. Editors usually
// write a file in several steps, so the handler runs once per burst after
// no further event arrived for the settle period.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "File watcher started. Monitoring: %s", w.dir)

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	pending := ""

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "File watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
				continue
			}
			if !w.matches(event.Name) {
				w.logger.Debug(ctx, "Ignoring change to %s", event.Name)
				continue
			}

			pending = event.Name
			timer.Reset(w.settle)

		case <-timer.C:
			if pending == "" {
				continue
			}
			w.logger.Debug(ctx, "Change detected: %s", pending)
			if err := w.handler(ctx, pending); err != nil {
				w.logger.Error(ctx, "Failed to handle change of %s: %v", pending, err)
			}
			pending = ""

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

func (w *implWatcher) matches(path string) bool {
	if len(w.exts) == 0 {
		return true
	}
	return w.exts[strings.ToLower(filepath.Ext(path))]
}
