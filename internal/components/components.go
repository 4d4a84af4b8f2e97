package components

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/shalinibhavi525-sudo/border-incident-reporter/internal/api"
	"github.com/shalinibhavi525-sudo/border-incident-reporter/internal/config"
	"github.com/shalinibhavi525-sudo/border-incident-reporter/internal/redis"
	"github.com/shalinibhavi525-sudo/border-incident-reporter/internal/service"
	"github.com/shalinibhavi525-sudo/border-incident-reporter/internal/storage/photostore"
	"github.com/shalinibhavi525-sudo/border-incident-reporter/internal/storage/postgres"
	"github.com/shalinibhavi525-sudo/border-incident-reporter/pkg/logger"
)

// Components owns every constructed dependency. Nothing in the process is
// package-level mutable state; tests can build an isolated instance.
type Components struct {
	logger     *slog.Logger
	HttpServer *api.Server
	Postgres   *postgres.Postgres
	Redis      *redis.Redis
	Photos     *photostore.Store
}

func InitComponents(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Components, error) {
	logger.Info("initializing postgres")
	storage, err := postgres.NewPostgres(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to init postgres: %w", err)
	}

	logger.Info("initializing redis")
	redisClient, err := redis.NewRedis(ctx, cfg, logger)
	if err != nil {
		storage.Close()
		return nil, fmt.Errorf("failed to init redis: %w", err)
	}

	logger.Info("initializing photo store", slog.String("dir", cfg.Upload.Dir))
	photos, err := photostore.New(cfg.Upload.Dir, cfg.Upload.AllowedExts, logger)
	if err != nil {
		storage.Close()
		_ = redisClient.Close()
		return nil, fmt.Errorf("failed to init photo store: %w", err)
	}

	statsCache := redis.NewStatsCache(redisClient, cfg.Stats.CacheTTL)

	intakeSvc := service.NewReportIntake(storage.Incidents(), photos, statsCache, logger)
	querySvc := service.NewIncidentQuery(storage.Incidents(), statsCache, logger)
	statsSvc := service.NewStats(storage.Incidents(), statsCache, logger)

	svc := service.NewService(intakeSvc, querySvc, statsSvc)

	httpServer := api.NewServer(cfg, logger, svc)
	logger.Info("initialized server")

	return &Components{
		logger:     logger,
		HttpServer: httpServer,
		Postgres:   storage,
		Redis:      redisClient,
		Photos:     photos,
	}, nil
}

func (c *Components) ShutdownAll() {
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.logger.Error("redis close failed", slog.Any("error", err))
		}
	}
	if c.Postgres != nil {
		c.Postgres.Close()
	}
}

func SetupLogger(env string) *slog.Logger {
	switch env {
	case "local":
		return logger.SetupPrettySlog()
	case "dev":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	default:
		return slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	}
}
