package main

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"labelprint/internal/config"
	"labelprint/internal/domain/auth"
	"labelprint/internal/domain/labelconfig"
	"labelprint/internal/domain/labels"
	"labelprint/internal/domain/printhistory"
	"labelprint/internal/domain/printing"
	"labelprint/internal/domain/reports"
	"labelprint/internal/domain/settings"
	"labelprint/internal/infrastructure/filestore"
	v1 "labelprint/internal/infrastructure/http/v1"
	"labelprint/internal/infrastructure/http/v1/handlers"
	"labelprint/internal/infrastructure/storage/postgres"
	"labelprint/internal/infrastructure/storage/postgres/history_repo"
	"labelprint/internal/infrastructure/storage/postgres/label_repo"
	"labelprint/internal/infrastructure/storage/postgres/labelconfig_repo"
	"labelprint/internal/infrastructure/storage/postgres/report_repo"
	"labelprint/internal/infrastructure/storage/postgres/settings_repo"
	"labelprint/internal/infrastructure/transport"
	"labelprint/pkg/labelcmd"
	"labelprint/pkg/logger"
)

// app owns the long-lived resources of the server.
type app struct {
	pool   *postgres.Pool
	router *gin.Engine
}

func newApp(ctx context.Context, cfg *config.Config, log *logger.Logger) (*app, error) {
	pool, err := postgres.NewPool(ctx, postgres.PoolConfigFrom(cfg.Database))
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	log.Info("database connection established")

	if cfg.Database.Migrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("apply migrations: %w", err)
		}
		log.Info("database migrations applied")
	}

	store, err := filestore.New(ctx, cfg.Storage)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("init file storage: %w", err)
	}
	log.Infow("file storage ready", "driver", cfg.Storage.Driver)

	dialect, err := labelcmd.ParseDialect(cfg.Printing.DefaultDialect)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("printing.default_dialect: %w", err)
	}
	symbology, err := labelcmd.ParseSymbology(cfg.Printing.DefaultSymbology)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("printing.default_symbology: %w", err)
	}

	txm := postgres.NewTxManager(pool)

	labelService := labels.NewService(label_repo.New(txm))
	configService := labelconfig.NewService(labelconfig_repo.New(txm), labelService, txm, cfg.Printing.MaxQuantity)
	historyService := printhistory.NewService(history_repo.New(txm), labelService, txm)
	reportService := reports.NewService(report_repo.NewReportRepo(txm))
	settingsService := settings.NewService(settings_repo.New(txm))

	dispatcher := transport.NewDispatcher(
		transport.TCPDialer(transport.TCPOptions{
			DialTimeout:  cfg.Printing.DialTimeout,
			WriteTimeout: cfg.Printing.WriteTimeout,
			ChunkSize:    cfg.Printing.ChunkSize,
		}),
		transport.Options{
			PerDocument: cfg.Printing.DocumentDelay > 0,
			Delay:       cfg.Printing.DocumentDelay,
		},
	)

	printService := printing.NewService(configService, labelService, historyService, dispatcher, store, printing.Options{
		MaxQuantity:      cfg.Printing.MaxQuantity,
		DefaultDialect:   dialect,
		DefaultSymbology: symbology,
		Border:           cfg.Printing.Border,
		DefaultPort:      cfg.Printing.DefaultPort,
	})

	routerCfg := v1.RouterConfig{
		Logger: log,
		CORS:   cfg.CORS,
		Health: handlers.HealthDeps{
			DB:        txm,
			PoolStats: pool.Stats,
			Labels:    labelService,
			History:   historyService,
			Configs:   configService,
			Printers:  dispatcher,
		},
		Configs:  configService,
		Labels:   labelService,
		Printing: printService,
		History:  historyService,
		Stats:    reportService,
		Settings: settingsService,
	}
	if cfg.Storage.Driver == "local" {
		routerCfg.Files = store
	}
	if cfg.Auth.JWTSecret != "" {
		routerCfg.JWTValidator = auth.NewJWTService(auth.JWTConfig{
			Secret:   cfg.Auth.JWTSecret,
			Issuer:   cfg.Auth.Issuer,
			TokenTTL: cfg.Auth.TokenTTL,
		})
		routerCfg.RequireAuth = cfg.Auth.Enabled
	}

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	return &app{pool: pool, router: v1.NewRouter(routerCfg)}, nil
}

// Close releases the database pool.
func (a *app) Close() {
	a.pool.Close()
}
