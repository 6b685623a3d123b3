// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"labelprint/internal/config"
	"labelprint/internal/infrastructure/http/v1/handlers"
	"labelprint/internal/infrastructure/http/v1/middleware"
	"labelprint/pkg/logger"
)

// RouterConfig holds the services behind the API. A nil service leaves its
// routes unregistered.
type RouterConfig struct {
	Logger *logger.Logger
	CORS   config.CORSConfig

	// JWTValidator enables bearer authentication. With RequireAuth false,
	// tokens are optional and only attribute requests to an operator.
	JWTValidator middleware.JWTValidator
	RequireAuth  bool

	Health   handlers.HealthDeps
	Configs  handlers.ConfigService
	Labels   handlers.LabelService
	Printing handlers.PrintService
	History  handlers.HistoryService
	Stats    handlers.StatsService
	Settings handlers.SettingsService
	// Files serves stored command files; only set for the local driver.
	Files handlers.FileOpener
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Logger == nil {
		cfg.Logger = logger.Default()
	}

	router := gin.New()

	// Recovery is outermost; ErrorHandler must run after handlers.
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.CORS(cfg.CORS))
	router.Use(middleware.ErrorHandler())

	healthHandler := handlers.NewHealthHandler(cfg.Health)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	v1 := router.Group("/api/v1")
	switch {
	case cfg.JWTValidator != nil && cfg.RequireAuth:
		v1.Use(middleware.Auth(cfg.JWTValidator))
	case cfg.JWTValidator != nil:
		v1.Use(middleware.OptionalAuth(cfg.JWTValidator))
	}

	base := handlers.NewBaseHandler()
	registerConfigRoutes(v1, base, cfg)
	registerLabelRoutes(v1, base, cfg)
	registerPrintRoutes(v1, base, cfg)
	registerHistoryRoutes(v1, base, cfg)
	registerSettingsRoutes(v1, base, cfg)
	registerFileRoutes(v1, base, cfg)

	return router
}
