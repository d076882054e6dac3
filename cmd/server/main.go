package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"studybuddy-backend/internal/config"
	"studybuddy-backend/internal/db"
	httpapi "studybuddy-backend/internal/http"
	"studybuddy-backend/internal/logging"
	"studybuddy-backend/internal/migrations"
	"studybuddy-backend/internal/services"
	"studybuddy-backend/internal/storage"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger, cleanupLogs, err := logging.Setup(logging.Options{
		Level:         cfg.LogLevel,
		Format:        cfg.LogFormat,
		Dir:           cfg.LogDir,
		RetentionDays: cfg.LogRetentionDays,
	})
	if err != nil {
		logger.Warn().Err(err).Msg("file logging disabled")
	}
	defer cleanupLogs()

	if err := run(cfg, logger); err != nil {
		logger.Error().Err(err).Msg("server stopped")
		cleanupLogs()
		os.Exit(1)
	}
}

func run(cfg config.Config, logger zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	database, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("db: %w", err)
	}
	defer database.Close()
	if err := migrations.Apply(ctx, database); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}

	store := services.NewRecordStore(database, logger)
	if err := store.CheckSchema(ctx); err != nil {
		return fmt.Errorf("schema: %w", err)
	}

	backend, err := openStorage(cfg)
	if err != nil {
		return fmt.Errorf("upload storage: %w", err)
	}
	if local, ok := backend.(*storage.Local); ok {
		defer local.Close()
		cfg.UploadPath = local.Dir()
	}
	registry, err := services.NewUploadRegistry(backend, cfg.UploadManifest, logger)
	if err != nil {
		return fmt.Errorf("upload registry: %w", err)
	}

	server := httpapi.NewServer(store, registry, cfg, logger)
	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info().Str("addr", httpServer.Addr).Str("backend", cfg.UploadBackend).Msg("listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info().Msg("shutdown complete")
	return nil
}

func openStorage(cfg config.Config) (storage.Storage, error) {
	switch cfg.UploadBackend {
	case config.BackendS3:
		return storage.NewS3Storage(cfg.S3)
	case config.BackendLocal, "":
		return storage.NewLocal(cfg.UploadPath)
	default:
		return nil, fmt.Errorf("unknown upload backend %q", cfg.UploadBackend)
	}
}
