package app

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/yungbote/learnpath-backend/internal/data/db"
	httpserver "github.com/yungbote/learnpath-backend/internal/http"
	"github.com/yungbote/learnpath-backend/internal/observability"
	"github.com/yungbote/learnpath-backend/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Cfg      Config
	Repos    Repos
	Services Services
	Metrics  *observability.Metrics
	Server   *httpserver.Server

	pg           *db.PostgresService
	redis        goredis.UniversalClient
	shutdownOtel func(context.Context) error
	cancel       context.CancelFunc
}

// New connects to Postgres, migrates, and wires the full service.
func New(ctx context.Context, log *logger.Logger) (*App, error) {
	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	pg, err := db.NewPostgresService(cfg.Postgres, log)
	if err != nil {
		return nil, fmt.Errorf("init postgres: %w", err)
	}
	if err := pg.AutoMigrateAll(); err != nil {
		_ = pg.Close()
		return nil, fmt.Errorf("postgres automigrate: %w", err)
	}

	a, err := NewWithDB(ctx, log, cfg, pg.DB())
	if err != nil {
		_ = pg.Close()
		return nil, err
	}
	a.pg = pg
	return a, nil
}

// NewWithDB wires the service over an already migrated handle.
func NewWithDB(ctx context.Context, log *logger.Logger, cfg Config, theDB *gorm.DB) (*App, error) {
	ctx, cancel := context.WithCancel(ctx)

	shutdownOtel := observability.InitOTel(ctx, log, cfg.Otel)

	var metrics *observability.Metrics
	if cfg.MetricsEnabled {
		metrics = observability.NewMetrics()
		metrics.RegisterDBStats(log, theDB, "postgres")
	}

	locker, rdb, err := wireLocker(ctx, log, cfg, metrics)
	if err != nil {
		cancel()
		_ = shutdownOtel(context.Background())
		return nil, err
	}

	reposet := wireRepos(theDB, log)
	serviceset, err := wireServices(theDB, log, cfg, reposet, locker, metrics)
	if err != nil {
		cancel()
		if rdb != nil {
			_ = rdb.Close()
		}
		_ = shutdownOtel(context.Background())
		return nil, err
	}
	handlerset := wireHandlers(theDB, log, serviceset)
	middleware := wireMiddleware(log, serviceset)
	server := wireServer(log, cfg, handlerset, middleware, metrics)

	return &App{
		Log:          log,
		DB:           theDB,
		Cfg:          cfg,
		Repos:        reposet,
		Services:     serviceset,
		Metrics:      metrics,
		Server:       server,
		redis:        rdb,
		shutdownOtel: shutdownOtel,
		cancel:       cancel,
	}, nil
}

// Run serves HTTP until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.Server.Run(ctx, ":"+a.Cfg.Port, a.Cfg.ShutdownTimeout)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	if a.shutdownOtel != nil {
		ctx, cancel := context.WithTimeout(context.Background(), a.Cfg.ShutdownTimeout)
		if err := a.shutdownOtel(ctx); err != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
		cancel()
		a.shutdownOtel = nil
	}
	if a.redis != nil {
		_ = a.redis.Close()
		a.redis = nil
	}
	if a.pg != nil {
		_ = a.pg.Close()
		a.pg = nil
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
