package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/gigmarket/backend/internal/config"
	"github.com/gigmarket/backend/internal/db"
	"github.com/gigmarket/backend/internal/repository"
	"github.com/gigmarket/backend/pkg/logger"
)

const usage = `usage: maintenance <command>

commands:
  migrate                    apply the embedded database schema
  repair-id-verification     reset pending ID verifications that are missing an image
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg := config.MustLoad()

	appLogger, err := logger.SetupLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	dbConn, err := db.New(cfg.Database)
	if err != nil {
		appLogger.Error("database connect problem", zap.String("driver", cfg.Database.Driver), zap.Error(err))
		os.Exit(1)
	}
	defer func() { _ = dbConn.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	switch cmd := os.Args[1]; cmd {
	case "migrate":
		if err := db.Migrate(ctx, dbConn); err != nil {
			appLogger.Error("migration failed", zap.Error(err))
			os.Exit(1)
		}
		appLogger.Info("database schema applied")
	case "repair-id-verification":
		repos := repository.NewRepositories(dbConn)
		repaired, err := repos.IDVerifications.RepairIncomplete(ctx)
		if err != nil {
			appLogger.Error("id verification repair failed", zap.Error(err))
			os.Exit(1)
		}
		appLogger.Info("id verification repair finished", zap.Int64("repaired", repaired))
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", cmd, usage)
		os.Exit(2)
	}
}
