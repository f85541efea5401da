package watcher

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultSettleDelay = 500 * time.Millisecond

// New creates a Watcher on inputDir that hands inbox files to handler with at
// most maxConcurrent running at once
func New(inputDir string, handler EventHandler, logger *zap.Logger, maxConcurrent int) (Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := fw.Add(inputDir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	if maxConcurrent <= 0 {
		maxConcurrent = 2
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &implWatcher{
		inputDir:      inputDir,
		handler:       handler,
		logger:        logger,
		watcher:       fw,
		maxConcurrent: maxConcurrent,
		semaphore:     make(chan struct{}, maxConcurrent),
		settleDelay:   defaultSettleDelay,
		inflight:      make(map[string]struct{}),
	}, nil
}
