package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	_ "github.com/johnquangdev/meeting-summarizer/docs"
	"github.com/johnquangdev/meeting-summarizer/internal/adapter/handler"
	"github.com/johnquangdev/meeting-summarizer/internal/app"
	httpmw "github.com/johnquangdev/meeting-summarizer/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/meeting-summarizer/pkg/config"
	"github.com/johnquangdev/meeting-summarizer/pkg/jwt"
	pkgvalidator "github.com/johnquangdev/meeting-summarizer/pkg/validator"
)

// @title           Meeting Summarizer API
// @version         1.0
// @description     Classifies meeting transcripts by type, confirms low-confidence results with the user, and extracts type-specific summaries.

// @contact.name   API Support
// @contact.email  support@infoquang.id.vn

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath  /v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

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

	e := echo.New()
	e.Validator = pkgvalidator.New()
	e.HideBanner = true
	e.HidePort = false

	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "Cookie"},
		AllowCredentials: true,
	}))

	log.Println("🔧 Initializing dependencies...")
	initCtx, cancelInit := context.WithTimeout(context.Background(), 30*time.Second)
	application, err := app.Build(initCtx, cfg, logger)
	cancelInit()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer application.Close()

	log.Println("🔑 Initializing JWT verifier...")
	jwtManager := jwt.NewManager(cfg.JWT.AccessSecret, cfg.JWT.Issuer)

	log.Println("🛣️  Setting up routes...")
	classificationHandler := handler.NewClassificationHandler(application.Service, logger)
	router := handler.NewRouter(cfg, classificationHandler, httpmw.EchoAuth(jwtManager))
	router.Setup(e)

	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
