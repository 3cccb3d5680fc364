package main

// @title Innovation Atlas API
// @version 1.0.0
// @description Справочник объектов инновационной инфраструктуры Казахстана на русском, казахском и английском языках.
// @description Публичное чтение объектов и справочников, редактирование через админ-панель по JWT.

// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer access token

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/innovation-atlas/internal/config"
	httpDelivery "github.com/innovation-atlas/internal/delivery/http"
	"github.com/innovation-atlas/internal/delivery/http/handler"
	"github.com/innovation-atlas/internal/pkg/jwt"
	"github.com/innovation-atlas/internal/pkg/logger"
	"github.com/innovation-atlas/internal/repository/cache"
	"github.com/innovation-atlas/internal/repository/postgres"
	redisRepo "github.com/innovation-atlas/internal/repository/redis"
	"github.com/innovation-atlas/internal/usecase"
)

// version подставляется при сборке: -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Innovation Atlas API",
		zap.String("version", version),
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}

	// 5. Repositories
	objectRepo := postgres.NewObjectRepository(db, log)
	dictionaryRepo := postgres.NewDictionaryRepository(db, log)
	userRepo := postgres.NewUserRepository(db, log)
	sessionRepo := postgres.NewSessionRepository(db, log)
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)

	// 6. Use cases
	tokens := jwt.NewManager(cfg.Auth.AccessSecret, cfg.Auth.RefreshSecret, cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL)

	objectUC := usecase.NewObjectUseCase(
		objectRepo,
		cacheRepo,
		streamRepo,
		usecase.ObjectPolicy{RequirePublishedOnUpdate: cfg.Objects.RequirePublishedOnUpdate},
		log,
	)
	dictionaryUC := usecase.NewDictionaryUseCase(dictionaryRepo, cacheRepo, log, cfg.Cache.DictionaryCacheTTL)
	authUC := usecase.NewAuthUseCase(userRepo, sessionRepo, tokens, cfg.Auth.SessionTTL, log)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := authUC.EnsureSuperAdmin(ctx, cfg.Auth.SuperAdminEmail, cfg.Auth.SuperAdminPassword, cfg.Auth.SuperAdminName); err != nil {
		log.Error("Failed to ensure super admin", zap.Error(err))
	}
	cancel()

	// 7. HTTP server
	server := httpDelivery.NewServer(cfg, log, httpDelivery.Handlers{
		Object:     handler.NewObjectHandler(objectUC, log),
		Dictionary: handler.NewDictionaryHandler(dictionaryUC, log),
		Auth:       handler.NewAuthHandler(authUC, log),
		Health: handler.NewHealthHandler(map[string]handler.HealthChecker{
			"postgres": db,
			"redis":    redisClient,
		}, version, log),
	}, tokens)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// 8. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}
	if err := db.Close(); err != nil {
		log.Error("Failed to close PostgreSQL", zap.Error(err))
	}
	if err := redisClient.Close(); err != nil {
		log.Error("Failed to close Redis", zap.Error(err))
	}

	log.Info("Server stopped")
}
