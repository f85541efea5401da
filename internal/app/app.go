package app

import (
	"context"
	"fmt"
	"log"

	migrate "github.com/rubenv/sql-migrate"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-summarizer/internal/adapter/repository"
	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
	"github.com/johnquangdev/meeting-summarizer/internal/domain/repositories"
	"github.com/johnquangdev/meeting-summarizer/internal/infrastructure/cache"
	"github.com/johnquangdev/meeting-summarizer/internal/infrastructure/database"
	"github.com/johnquangdev/meeting-summarizer/internal/infrastructure/external/livekit"
	"github.com/johnquangdev/meeting-summarizer/internal/infrastructure/storage"
	"github.com/johnquangdev/meeting-summarizer/internal/usecase/classifier"
	"github.com/johnquangdev/meeting-summarizer/internal/usecase/extraction"
	"github.com/johnquangdev/meeting-summarizer/internal/usecase/gate"
	"github.com/johnquangdev/meeting-summarizer/internal/usecase/meeting"
	"github.com/johnquangdev/meeting-summarizer/internal/usecase/template"
	"github.com/johnquangdev/meeting-summarizer/pkg/ai"
	"github.com/johnquangdev/meeting-summarizer/pkg/config"
)

// NewLogger returns a production logger in production and a development one elsewhere
func NewLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// App holds the wired meeting service and the connections it owns
type App struct {
	Service meeting.Service
	closers []func()
}

// Close releases database and Redis connections
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// Build wires the meeting service from configuration. Integrations without
// credentials are left out: no LLM key disables extraction, no AssemblyAI key
// disables transcript fetching, and so on.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	a := &App{}
	ok := false
	defer func() {
		if !ok {
			a.Close()
		}
	}()

	tax, err := classifier.LoadTaxonomy(cfg.Classifier.TaxonomyFile)
	if err != nil {
		return nil, err
	}
	catalog, err := template.LoadCatalog(cfg.Classifier.ContractsFile)
	if err != nil {
		return nil, err
	}

	var db *gorm.DB
	if cfg.UsesDatabase() {
		log.Println("📦 Connecting to database...")
		db, err = database.NewPostgresDB(cfg)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = database.CloseDB(db) })

		if cfg.Database.AutoMigrate {
			n, err := database.Migrate(db, cfg.Database.MigrationsDir, migrate.Up)
			if err != nil {
				return nil, err
			}
			log.Printf("🔄 Applied %d migration(s)", n)
		}
	}

	records := repository.NewMemoryClassificationRepository()
	if cfg.RecordStore == "postgres" {
		records = repository.NewClassificationRepository(db)
	}

	overrides, err := a.overrideLog(cfg, db)
	if err != nil {
		return nil, err
	}

	deps := meeting.Dependencies{
		Classifier: classifier.New(tax, classifier.ParamsFromConfig(cfg.Classifier)),
		Gate:       gate.New(cfg.Classifier.ConfirmationThreshold, overrides, logger),
		Selector:   template.NewSelector(catalog),
		Records:    records,
		Overrides:  overrides,
	}

	if cfg.LLM.APIKey != "" {
		provider, err := ai.NewProvider(ctx, cfg.LLM, nil)
		if err != nil {
			return nil, err
		}
		deps.Extractor = extraction.NewLLMExtractor(provider, extraction.NewChunker(), logger)
		log.Printf("🤖 Content extraction via %s (%s)", provider.Name(), provider.Model())
	} else {
		log.Println("⚠️  LLM_API_KEY not set; content extraction disabled")
	}

	if cfg.AssemblyAI.APIKey != "" {
		deps.Transcripts = ai.NewTranscriptFetcher(cfg.AssemblyAI.APIKey)
	}

	if cfg.LiveKit.URL != "" && cfg.LiveKit.APIKey != "" {
		deps.Roster = livekit.NewRosterClient(cfg.LiveKit.URL, cfg.LiveKit.APIKey, cfg.LiveKit.APISecret, cfg.LiveKit.InternalEmailDomains)
		log.Printf("🎥 Roster enrichment via %s", cfg.LiveKit.URL)
	}

	if cfg.Storage.Endpoint != "" {
		archive, err := storage.NewReportArchive(ctx, &cfg.Storage)
		if err != nil {
			if logger != nil {
				logger.Warn("report archive unavailable", zap.String("endpoint", cfg.Storage.Endpoint), zap.Error(err))
			}
		} else {
			deps.Archive = archive
		}
	}

	a.Service = meeting.NewService(deps, meeting.Options{
		ExtractionTimeout: cfg.LLM.Timeout,
		MaxRetries:        cfg.LLM.MaxRetries,
		Policy: entities.AdjustmentPolicy{
			Step: cfg.Classifier.OverrideStep,
			Min:  cfg.Classifier.OverrideMin,
			Max:  cfg.Classifier.OverrideMax,
		},
	}, logger)

	ok = true
	return a, nil
}

func (a *App) overrideLog(cfg *config.Config, db *gorm.DB) (repositories.OverrideLog, error) {
	switch cfg.OverrideLog {
	case "redis":
		log.Println("📦 Connecting to Redis...")
		client, err := cache.NewRedisClient(cfg)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = client.Close() })
		return cache.NewRedisOverrideLog(client, cfg.Redis.OverrideStream), nil
	case "postgres":
		return repository.NewOverrideRepository(db), nil
	case "memory":
		return cache.NewMemoryOverrideLog(), nil
	}
	return nil, fmt.Errorf("unknown override log %q", cfg.OverrideLog)
}
