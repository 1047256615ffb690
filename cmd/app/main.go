package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	apiHttp "github.com/gigmarket/backend/internal/api/http"
	"github.com/gigmarket/backend/internal/blob"
	"github.com/gigmarket/backend/internal/cache"
	"github.com/gigmarket/backend/internal/config"
	"github.com/gigmarket/backend/internal/db"
	"github.com/gigmarket/backend/internal/queue/asynqserver"
	"github.com/gigmarket/backend/internal/repository"
	"github.com/gigmarket/backend/internal/server"
	"github.com/gigmarket/backend/internal/service"
	"github.com/gigmarket/backend/internal/telemetry"
	"github.com/gigmarket/backend/pkg/auth"
	"github.com/gigmarket/backend/pkg/hash"
	"github.com/gigmarket/backend/pkg/logger"
	"github.com/gigmarket/backend/pkg/otp"
)

func main() {
	// Init cfg from environment variables
	cfg := config.MustLoad()

	// Dependencies
	appLogger, err := logger.SetupLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	appLogger.Info("starting backend api", zap.String("env", cfg.Env))
	appLogger.Debug("debug messages are enabled")

	ctx := context.Background()

	tracing, err := telemetry.New(ctx, cfg.Telemetry, appLogger)
	if err != nil {
		appLogger.Error("telemetry setup failed", zap.Error(err))
		os.Exit(1)
	}

	// Init database
	dbConn, err := db.New(cfg.Database)
	if err != nil {
		appLogger.Error("database connect problem", zap.String("driver", cfg.Database.Driver), zap.Error(err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			appLogger.Error("error when closing", zap.Error(err))
		}
	}()
	appLogger.Info("database connection done", zap.String("driver", cfg.Database.Driver))

	if cfg.Database.Migrate {
		if err := db.Migrate(ctx, dbConn); err != nil {
			appLogger.Error("database migration failed", zap.Error(err))
			os.Exit(1)
		}
		appLogger.Info("database schema applied")
	}

	// Redis backs the per-user upload lock. Without it uploads still rely on row locks.
	var locker cache.Locker
	redisClient, err := cache.NewRedis(cfg.Cache)
	if err != nil {
		appLogger.Warn("redis unavailable, upload lock disabled", zap.Error(err))
	} else {
		defer func() { _ = redisClient.Close() }()
		locker = cache.NewRedisLocker(redisClient)
	}

	queueClient := asynq.NewClient(asynqserver.RedisOptions(cfg.Cache))
	defer func() { _ = queueClient.Close() }()

	storage, err := blob.New(cfg.Storage)
	if err != nil {
		appLogger.Error("blob storage setup failed", zap.String("driver", cfg.Storage.Driver), zap.Error(err))
		os.Exit(1)
	}

	hasher := hash.NewBcryptHasher(cfg.Auth.PasswordCost)

	tokenManager, err := auth.NewManager(cfg.Auth.JWT)
	if err != nil {
		appLogger.Error("auth manager creation err", zap.Error(err))
		return
	}

	otpGenerator := otp.NewGOTPGenerator()

	// Services, Repos & API Handlers
	repos := repository.NewRepositories(dbConn)
	services := service.NewServices(service.Deps{
		Config:       cfg,
		Hasher:       hasher,
		TokenManager: tokenManager,
		OtpGenerator: otpGenerator,
		Repos:        repos,
		Storage:      storage,
		Locker:       locker,
		Dispatcher:   service.NewQueueDispatcher(queueClient),
		Tracer:       tracing.Tracer(),
	})
	handlers := apiHttp.NewHandlers(services, tokenManager, cfg)

	// HTTP Server
	srv := server.NewServer(cfg, handlers.Init(cfg))
	go func() {
		if err := srv.Run(); !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("error occurred while running http server", zap.Error(err))
		}
	}()
	appLogger.Info("server started", zap.String("port", cfg.HttpServer.Port))

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	<-quit

	const timeout = 5 * time.Second

	shutdownCtx, shutdown := context.WithTimeout(context.Background(), timeout)
	defer shutdown()

	if err := srv.Stop(shutdownCtx); err != nil {
		appLogger.Error("failed to stop server", zap.Error(err))
	}

	if err := tracing.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("failed to flush traces", zap.Error(err))
	}

	appLogger.Info("app stopped")
}
