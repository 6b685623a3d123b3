package v1

import (
	"github.com/gin-gonic/gin"

	"labelprint/internal/infrastructure/http/v1/handlers"
)

// CRUDRouteHandler is a resource with the standard five routes.
type CRUDRouteHandler interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

// RegisterCRUDRoutes registers list/create/get/update/delete on group.
func RegisterCRUDRoutes(group *gin.RouterGroup, handler CRUDRouteHandler) {
	group.GET("", handler.List)
	group.POST("", handler.Create)
	group.GET("/:id", handler.Get)
	group.PUT("/:id", handler.Update)
	group.DELETE("/:id", handler.Delete)
}

func registerConfigRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	if cfg.Configs == nil {
		return
	}
	h := handlers.NewConfigHandler(base, cfg.Configs)

	group := rg.Group("/configs")
	// static segment registered alongside /:id
	group.GET("/recent", h.Recent)
	RegisterCRUDRoutes(group, h)
	group.POST("/:id/generate", h.Generate)
}

func registerLabelRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	if cfg.Labels == nil {
		return
	}
	h := handlers.NewLabelHandler(base, cfg.Labels)

	group := rg.Group("/labels")
	group.GET("/search/:code", h.Search)
	group.GET("/verify/:code", h.Verify)
	group.GET("/by-basename/:baseName", h.ByBaseName)
	group.GET("/export", h.Export)
}

func registerPrintRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	if cfg.Printing == nil {
		return
	}
	h := handlers.NewPrintHandler(base, cfg.Printing)

	group := rg.Group("/print")
	group.POST("/encode", h.Encode)
	group.POST("/jobs", h.Job)
	group.POST("/preview", h.Preview)
}

func registerHistoryRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	group := rg.Group("/print-history")

	if cfg.Stats != nil {
		stats := handlers.NewReportsHandler(base, cfg.Stats)
		group.GET("/stats/summary", stats.Summary)
		group.GET("/stats/daily", stats.Daily)
		group.GET("/stats/top-labels", stats.TopLabels)
	}

	if cfg.History == nil {
		return
	}
	h := handlers.NewHistoryHandler(base, cfg.History)
	group.GET("", h.List)
	group.POST("", h.Create)
	group.POST("/bulk-delete", h.BulkDelete)
	group.GET("/:id", h.Get)
	group.DELETE("/:id", h.Delete)
}

func registerSettingsRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	if cfg.Settings == nil {
		return
	}
	h := handlers.NewSettingsHandler(base, cfg.Settings)

	group := rg.Group("/settings")
	group.GET("/printer", h.GetPrinter)
	group.PUT("/printer", h.UpdatePrinter)
	group.POST("/printer/reset", h.ResetPrinter)
}

func registerFileRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	if cfg.Files == nil {
		return
	}
	h := handlers.NewFileHandler(base, cfg.Files)
	rg.GET("/files/:key", h.Download)
}
