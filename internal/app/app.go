package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/gorm"

	"github.com/yungbote/dailytrack-backend/internal/data/db"
	"github.com/yungbote/dailytrack-backend/internal/http"
	"github.com/yungbote/dailytrack-backend/internal/observability"
	"github.com/yungbote/dailytrack-backend/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Pool     *pgxpool.Pool
	Server   *http.Server
	Cfg      Config
	Clients  Clients
	Repos    Repos
	Services Services
	Metrics  *observability.Metrics

	pg           *db.PostgresService
	otelShutdown func(context.Context) error
}

func New(ctx context.Context, log *logger.Logger, cfg Config) (*App, error) {
	a := &App{Log: log, Cfg: cfg}
	a.otelShutdown = observability.InitOTel(ctx, log, cfg.Otel)
	a.Metrics = observability.Init(log)

	pg, err := db.NewPostgresService(log, cfg.DatabaseURL)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("init postgres: %w", err)
	}
	a.pg = pg
	a.DB = pg.DB()
	if cfg.AutoMigrate {
		if err := pg.AutoMigrateAll(); err != nil {
			a.Close()
			return nil, fmt.Errorf("postgres automigrate: %w", err)
		}
	}

	if cfg.StoreDriver == StoreDriverPgx {
		pool, err := db.NewPgxPool(ctx, log, cfg.DatabaseURL)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("init pgx pool: %w", err)
		}
		a.Pool = pool
	}

	a.Clients, err = wireClients(log, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Repos = wireRepos(a.DB, a.Pool, log)
	a.Services, err = wireServices(log, cfg, a.Clients, a.Repos, a.Metrics)
	if err != nil {
		a.Close()
		return nil, err
	}
	handlers := wireHandlers(log, a.Clients, a.Services, a.Metrics)
	a.Server = wireServer(log, cfg, handlers, a.Metrics)
	return a, nil
}

// Run serves until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	if a.Pool != nil {
		a.Metrics.StartPgxCollector(ctx, a.Pool)
	} else if sqlDB, err := a.DB.DB(); err == nil {
		a.Metrics.StartSQLCollector(ctx, sqlDB)
	}
	return a.Server.Run(ctx, ":"+a.Cfg.Port)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	a.Clients.Close()
	if a.Pool != nil {
		a.Pool.Close()
		a.Pool = nil
	}
	if a.pg != nil {
		if err := a.pg.Close(); err != nil && a.Log != nil {
			a.Log.Warn("Closing postgres failed", "error", err)
		}
		a.pg = nil
	}
	if a.otelShutdown != nil {
		if err := a.otelShutdown(context.Background()); err != nil && a.Log != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
		a.otelShutdown = nil
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
