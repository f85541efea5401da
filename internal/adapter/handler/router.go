package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/johnquangdev/meeting-summarizer/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg            *config.Config
	classification *Classification
	authMiddleware echo.MiddlewareFunc
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, classification *Classification, authMiddleware echo.MiddlewareFunc) *Router {
	return &Router{
		cfg:            cfg,
		classification: classification,
		authMiddleware: authMiddleware,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// API v1 group
	v1 := e.Group("/v1")
	if rt.authMiddleware != nil {
		v1.Use(rt.authMiddleware)
	}

	rt.setupClassificationRoutes(v1)
}

// setupClassificationRoutes configures classification routes
func (rt *Router) setupClassificationRoutes(g *echo.Group) {
	classifications := g.Group("/classifications")
	classifications.POST("", rt.classification.Classify)
	classifications.POST("/assemblyai/:transcript_id", rt.classification.ClassifyAssemblyAI)
	classifications.GET("/:id", rt.classification.Get)
	classifications.POST("/:id/decision", rt.classification.Decide)
	classifications.POST("/:id/extraction", rt.classification.Extract)

	g.GET("/meeting-types", rt.classification.MeetingTypes)
	g.GET("/overrides/adjustments", rt.classification.Adjustments)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	environment := ""
	if rt.cfg != nil {
		environment = rt.cfg.Server.Environment
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": environment,
	})
}
