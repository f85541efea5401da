package watcher

import "context"

// Watcher monitors the inbox directory
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler handles one created or rewritten inbox file
type EventHandler func(ctx context.Context, filePath string) error
