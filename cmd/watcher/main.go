package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-summarizer/internal/app"
	"github.com/johnquangdev/meeting-summarizer/internal/watcher"
	"github.com/johnquangdev/meeting-summarizer/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := app.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if err := os.MkdirAll(cfg.Watcher.Dir, 0o755); err != nil {
		log.Fatalf("Failed to create inbox %s: %v", cfg.Watcher.Dir, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Println("🔧 Initializing dependencies...")
	application, err := app.Build(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer application.Close()

	inbox := watcher.NewInbox(application.Service, logger)
	w, err := watcher.New(cfg.Watcher.Dir, inbox.Handle, logger, cfg.Watcher.Concurrency)
	if err != nil {
		log.Fatalf("Failed to start watcher: %v", err)
	}
	defer w.Stop()

	log.Printf("👀 Watching %s for .txt and .vtt transcripts", cfg.Watcher.Dir)
	if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("watcher exited", zap.Error(err))
	}
	log.Println("✅ Watcher stopped")
}
