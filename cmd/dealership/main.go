package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/csemotors/dealership/internal/api"
	"github.com/csemotors/dealership/internal/core/ports"
	"github.com/csemotors/dealership/internal/core/service"
	"github.com/csemotors/dealership/internal/infrastructure/config"
	"github.com/csemotors/dealership/internal/infrastructure/db/gormdb"
	mongodb "github.com/csemotors/dealership/internal/infrastructure/db/mongo"
	redisdb "github.com/csemotors/dealership/internal/infrastructure/db/redis"
	"github.com/csemotors/dealership/internal/infrastructure/queue"
	"github.com/csemotors/dealership/pkg/logger"
)

const (
	shutdownTimeout        = 10 * time.Second
	sessionCleanupInterval = 15 * time.Minute
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := logger.New(logger.Options{})
		boot.Fatal().Err(err).Msg("config")
	}

	log := logger.New(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.IsProduction(),
		Env:    cfg.Env,
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	db, err := gormdb.Connect(ctx, gormdb.Config{
		Driver: cfg.Database.Driver,
		DSN:    cfg.Database.URL,
		Debug:  cfg.LogLevel == "debug",
	})
	if err != nil {
		return err
	}
	if err := gormdb.Migrate(db); err != nil {
		return err
	}
	log.Info().Str("driver", cfg.Database.Driver).Msg("database ready")

	var (
		audit    *mongodb.Store
		activity ports.ActivityRecorder = service.NopRecorder{}
		history  ports.ActivityHistory  = service.NopHistory{}
	)
	if cfg.Mongo.URI != "" {
		audit, err = mongodb.Open(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		defer func() { _ = audit.Close() }()

		repo := mongodb.NewActivityRepository(audit.DB)
		dispatcher := queue.NewDispatcher(cfg.DispatchWorkers, service.NewActivityService(repo), log)
		dispatcher.Start(ctx)
		activity, history = dispatcher, repo
		log.Info().Str("database", cfg.Mongo.Database).Msg("activity audit enabled")
	}

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer func() { _ = rdb.Close() }()
		log.Info().Str("addr", cfg.Redis.Addr).Msg("login throttling enabled")
	}

	store := api.NewSessionStore(cfg, db)
	go store.Cleanup(ctx, sessionCleanupInterval, log)

	e, err := api.NewRouter(api.Options{
		Config:   cfg,
		Log:      log,
		DB:       db,
		Mongo:    audit,
		Redis:    rdb,
		Sessions: store,
		Activity: activity,
		History:  history,
	})
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
