package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/gigmarket/backend/internal/config"
	"github.com/gigmarket/backend/internal/db"
	"github.com/gigmarket/backend/internal/queue/asynqserver"
	"github.com/gigmarket/backend/internal/repository"
	"github.com/gigmarket/backend/internal/service"
	"github.com/gigmarket/backend/internal/telemetry"
	"github.com/gigmarket/backend/internal/worker"
	"github.com/gigmarket/backend/pkg/email"
	"github.com/gigmarket/backend/pkg/email/smtp"
	"github.com/gigmarket/backend/pkg/hash"
	"github.com/gigmarket/backend/pkg/logger"
	"github.com/gigmarket/backend/pkg/sms"
)

func main() {
	cfg := config.MustLoad()

	appLogger, err := logger.SetupLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	appLogger.Info("starting notification worker", zap.String("env", cfg.Env))

	tracing, err := telemetry.New(context.Background(), cfg.Telemetry, appLogger)
	if err != nil {
		appLogger.Error("telemetry setup failed", zap.Error(err))
		os.Exit(1)
	}

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

	var emailSender email.Sender
	if cfg.Email.Enabled {
		smtpSender, err := smtp.NewSMTPSender(cfg.SMTP.From, cfg.SMTP.Pass, cfg.SMTP.Host, cfg.SMTP.Port)
		if err != nil {
			appLogger.Error("smtp sender creation failed", zap.Error(err))
			os.Exit(1)
		}
		emailSender = smtpSender
	}

	var smsSender sms.Sender
	if cfg.Notification.SMSEnabled {
		twilioSender, err := sms.NewTwilioSender(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken, cfg.Twilio.From)
		if err != nil {
			appLogger.Error("twilio sender creation failed", zap.Error(err))
			os.Exit(1)
		}
		smsSender = twilioSender
	}

	// the worker only stores and reads notifications and users, so no storage, lock or dispatcher
	services := service.NewServices(service.Deps{
		Config: cfg,
		Hasher: hash.NewBcryptHasher(cfg.Auth.PasswordCost),
		Repos:  repository.NewRepositories(dbConn),
		Tracer: tracing.Tracer(),
	})

	workers := worker.NewWorkers(worker.Deps{
		Services:    services,
		EmailSender: emailSender,
		SMSSender:   smsSender,
		Config:      cfg,
	})

	srv, mux := asynqserver.New(cfg.Cache, workers)
	if err := srv.Start(mux); err != nil {
		appLogger.Error("asynq server start failed", zap.Error(err))
		os.Exit(1)
	}
	appLogger.Info("worker started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	<-quit

	srv.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := tracing.Shutdown(ctx); err != nil {
		appLogger.Error("failed to flush traces", zap.Error(err))
	}

	appLogger.Info("worker stopped")
}
