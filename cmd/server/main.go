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

	"github.com/ikkim/brandsite-backend/config"
	"github.com/ikkim/brandsite-backend/internal/app"
	"github.com/ikkim/brandsite-backend/internal/db"
	"github.com/ikkim/brandsite-backend/internal/scheduler"
	"github.com/ikkim/brandsite-backend/internal/storage"
	"github.com/ikkim/brandsite-backend/pkg/logger"
	"github.com/ikkim/brandsite-backend/pkg/redis"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	logFormat := "json"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
		logFormat = "console"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      logFormat,
		EnableColor: true,
	})

	logger.Info("Starting brand site backend", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	if err := db.Migrate(db.GetDB()); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Redis is optional; without it token revocation, rate limiting and
	// shared socket tickets are off.
	if cfg.Redis.Enabled {
		if err := redis.Init(&cfg.Redis); err != nil {
			logger.Warn("Redis unavailable, continuing without it", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			defer redis.Close()
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := newBlobStore(ctx, cfg.Storage)
	if err != nil {
		logger.Fatal("Failed to initialize blob storage", err)
	}

	application := app.New(cfg, db.GetDB(), store)

	if cfg.Admin.Email != "" {
		user, changed, err := application.Auth.EnsureAdmin(cfg.Admin.Email, cfg.Admin.Password, cfg.Admin.Name)
		if err != nil {
			logger.Fatal("Failed to bootstrap admin account", err)
		}
		if changed {
			logger.Info("Admin account ready", map[string]interface{}{
				"user_id": user.ID,
				"email":   user.Email,
			})
		}
	}

	go application.Hub.Run(ctx)

	digest := scheduler.NewContactDigestScheduler(cfg.Scheduler.ContactDigestCron, application.Contacts, application.Hub)
	if err := digest.Start(); err != nil {
		logger.Fatal("Failed to start contact digest scheduler", err)
	}
	defer digest.Stop()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           application.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server started successfully", map[string]interface{}{
			"address": srv.Addr,
			"pid":     os.Getpid(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shut down", err)
	}

	logger.Info("Server stopped successfully")
}

func newBlobStore(ctx context.Context, cfg config.StorageConfig) (storage.BlobStore, error) {
	switch cfg.Driver {
	case "memory":
		logger.Warn("Using in-memory blob storage, uploads are lost on restart")
		return storage.NewMemoryStorage(cfg.BaseURL), nil
	case "s3", "":
		return storage.NewS3Storage(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
