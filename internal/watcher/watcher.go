package watcher

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

type implWatcher struct {
	inputDir      string
	handler       EventHandler
	logger        *zap.Logger
	watcher       *fsnotify.Watcher
	maxConcurrent int
	semaphore     chan struct{}
	settleDelay   time.Duration
	wg            sync.WaitGroup

	mu       sync.Mutex
	inflight map[string]struct{}
}

// Start monitors the inbox until ctx is cancelled. Transcripts and decision
// sidecars are dispatched; everything else, including our own output, is
// ignored.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info("inbox watcher started",
		zap.String("dir", w.inputDir),
		zap.Int("max_concurrent", w.maxConcurrent))

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("waiting for in-flight files")
			w.wg.Wait()
			w.logger.Info("inbox watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if kindOf(event.Name) == kindIgnored {
				continue
			}
			if !w.claim(event.Name) {
				// editors emit several writes per save
				continue
			}

			select {
			case w.semaphore <- struct{}{}:
				w.wg.Add(1)
				go func(filePath string) {
					defer w.wg.Done()
					defer func() { <-w.semaphore }()
					defer w.release(filePath)

					// let the writer finish
					select {
					case <-time.After(w.settleDelay):
					case <-ctx.Done():
						return
					}

					if err := w.handler(ctx, filePath); err != nil {
						w.logger.Error("failed to process inbox file", zap.String("file", filePath), zap.Error(err))
					}
				}(event.Name)
			case <-ctx.Done():
				w.release(event.Name)
				return ctx.Err()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error("watcher error", zap.Error(err))
		}
	}
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

func (w *implWatcher) claim(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, busy := w.inflight[path]; busy {
		return false
	}
	w.inflight[path] = struct{}{}
	return true
}

func (w *implWatcher) release(path string) {
	w.mu.Lock()
	delete(w.inflight, path)
	w.mu.Unlock()
}
