package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/innovation-atlas/internal/config"
	"github.com/innovation-atlas/internal/domain/repository"
	"github.com/innovation-atlas/internal/infrastructure/mapbox"
	"github.com/innovation-atlas/internal/pkg/jwt"
	"github.com/innovation-atlas/internal/pkg/logger"
	"github.com/innovation-atlas/internal/repository/cache"
	"github.com/innovation-atlas/internal/repository/postgres"
	redisRepo "github.com/innovation-atlas/internal/repository/redis"
	"github.com/innovation-atlas/internal/usecase"
	"github.com/innovation-atlas/internal/worker"
	"github.com/innovation-atlas/internal/worker/cleanup"
	"github.com/innovation-atlas/internal/worker/geocoding"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if !cfg.Worker.GeocodingEnabled && !cfg.Worker.SessionCleanupEnabled {
		fmt.Println("All workers are disabled. Set WORKER_GEOCODING_ENABLED or WORKER_SESSION_CLEANUP_ENABLED to true.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Innovation Atlas workers",
		zap.Bool("geocoding", cfg.Worker.GeocodingEnabled),
		zap.Bool("session_cleanup", cfg.Worker.SessionCleanupEnabled),
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.Int("max_retries", cfg.Worker.MaxRetries),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	workerManager := worker.NewWorkerManager(log)

	// 4. Geocoding
	if cfg.Worker.GeocodingEnabled {
		redisClient, err := cache.NewRedis(&cfg.Redis, log)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Failed to close Redis connection", zap.Error(err))
			}
		}()

		var geocoder repository.GeocoderRepository
		if cfg.Mapbox.AccessToken != "" {
			geocoder = mapbox.NewMapboxClient(&cfg.Mapbox, log)
		} else {
			log.Warn("MAPBOX_ACCESS_TOKEN is empty, only Google Maps links will be geocoded")
		}

		geocodingUC := usecase.NewGeocodingUseCase(postgres.NewObjectRepository(db, log), geocoder, log)
		workerManager.Register(geocoding.NewGeocodingWorker(
			redisRepo.NewStreamRepository(redisClient.Client(), log),
			geocodingUC,
			cfg.Worker.ConsumerGroup,
			cfg.Worker.MaxRetries,
			log,
		))
	}

	// 5. Session cleanup
	if cfg.Worker.SessionCleanupEnabled {
		tokens := jwt.NewManager(cfg.Auth.AccessSecret, cfg.Auth.RefreshSecret, cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL)
		authUC := usecase.NewAuthUseCase(
			postgres.NewUserRepository(db, log),
			postgres.NewSessionRepository(db, log),
			tokens,
			cfg.Auth.SessionTTL,
			log,
		)
		workerManager.Register(cleanup.NewSessionCleanupWorker(authUC, cfg.Worker.SessionCleanupInterval, log))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	log.Info("Received shutdown signal")

	cancel()
	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker shutdown complete")
}
