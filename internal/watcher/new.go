package watcher

import (
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nguyentantai21042004/tube-digest/internal/logger"
)

const defaultSettle = 200 * time.Millisecond

// New creates a Watcher on dir that reports changes to files whose
// extension is in exts (all files when exts is empty).
func New(dir string, exts []string, handler EventHandler, log logger.Logger) (Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	normalized := make(map[string]bool, len(exts))
	for _, e := range exts {
		normalized[strings.ToLower(e)] = true
	}

	return &implWatcher{
		dir:     dir,
		exts:    normalized,
		handler: handler,
		logger:  log,
		watcher: watcher,
		settle:  defaultSettle,
	}, nil
}
