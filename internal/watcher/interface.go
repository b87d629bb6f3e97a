package watcher

import "context"

// Watcher defines the interface for file system monitoring
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler is called with the last changed file once a burst of
// changes has settled
type EventHandler func(ctx context.Context, filePath string) error
