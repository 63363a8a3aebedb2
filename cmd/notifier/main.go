// Command notifier consumes the notification stream written by the server
// when NOTIFY_DRIVER=redis and delivers each entry through Kakao Alimtalk.
// Several instances may run against the same consumer group.
//
// Exit codes: 0 = clean shutdown, 1 = error.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/carematch-backend/internal/adapter/provider/alimtalk"
	"github.com/heartmarshall/carematch-backend/internal/adapter/redisstream"
	"github.com/heartmarshall/carematch-backend/internal/app"
	"github.com/heartmarshall/carematch-backend/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	if cfg.Notify.Alimtalk.APIKey == "" {
		logger.Error("ALIMTALK_API_KEY is required")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb := redisstream.NewClient(cfg.Notify.Redis)
	defer rdb.Close() //nolint:errcheck

	consumer := redisstream.NewConsumer(
		logger,
		rdb,
		alimtalk.NewClient(logger, cfg.Notify.Alimtalk),
		cfg.Notify.Redis,
		consumerName(),
	)

	logger.Info("notifier started",
		slog.String("version", app.BuildVersion()),
		slog.String("stream", cfg.Notify.Redis.Stream),
		slog.String("group", cfg.Notify.Redis.Group),
	)

	if err := consumer.Run(ctx); err != nil {
		logger.Error("notifier failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("notifier stopped")
}

// consumerName identifies this process within the consumer group.
func consumerName() string {
	host, err := os.Hostname()
	if err != nil {
		host = "notifier"
	}
	return fmt.Sprintf("%s-%d", host, os.Getpid())
}
