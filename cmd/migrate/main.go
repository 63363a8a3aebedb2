// Command migrate applies or rolls back the embedded database migrations.
//
// Usage:
//
//	migrate [up|down|version]
//
// Defaults to "up". Reads the same configuration as the server.
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/carematch-backend/internal/adapter/postgres"
	"github.com/heartmarshall/carematch-backend/internal/app"
	"github.com/heartmarshall/carematch-backend/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	m, err := postgres.NewMigrator(cfg.Database.DSN)
	if err != nil {
		logger.Error("open migrator", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer m.Close() //nolint:errcheck

	switch cmd {
	case "up":
		applied, err := m.Up(ctx)
		if err != nil {
			logger.Error("migrate up failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("migrate up completed", slog.Any("applied", applied))

	case "down":
		rolled, err := m.Down(ctx)
		if err != nil {
			logger.Error("migrate down failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("migrate down completed", slog.Any("rolled_back", rolled))

	case "version":
		v, err := m.Version(ctx)
		if err != nil {
			logger.Error("read version failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("current schema version", slog.Int64("version", v))

	default:
		logger.Error("unknown command", slog.String("command", cmd))
		os.Exit(1)
	}
}
