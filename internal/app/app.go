package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/carematch-backend/internal/adapter/notify"
	"github.com/heartmarshall/carematch-backend/internal/adapter/postgres"
	"github.com/heartmarshall/carematch-backend/internal/config"
)

// Run is the application entry point. It loads configuration, connects to
// the database, wires services and serves HTTP until ctx is canceled. Queued
// notifications are drained after the server stops accepting requests.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("notify_driver", cfg.Notify.Driver),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	if cfg.Database.AutoMigrate {
		if err := migrateUp(ctx, logger, cfg.Database.DSN); err != nil {
			return err
		}
	}

	sink, err := newNotificationSink(logger, cfg.Notify)
	if err != nil {
		return err
	}
	defer sink.close(logger)

	dispatcher := notify.NewDispatcher(logger, sink.sender, cfg.Notify)

	svcs := newServices(logger, cfg, pool, dispatcher)
	handler, limiter := newHTTPHandler(logger, cfg, svcs, pool, sink)
	defer limiter.Stop()

	srv := newHTTPServer(cfg.Server, handler)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	})
	runErr := g.Wait()

	drainCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Notify.DrainTimeout)
	defer cancel()
	if err := dispatcher.Close(drainCtx); err != nil {
		logger.Warn("notifications dropped on shutdown", slog.String("error", err.Error()))
	}

	logger.Info("application stopped")
	return runErr
}

func migrateUp(ctx context.Context, logger *slog.Logger, dsn string) error {
	m, err := postgres.NewMigrator(dsn)
	if err != nil {
		return fmt.Errorf("migrator: %w", err)
	}
	defer m.Close() //nolint:errcheck

	start := time.Now()
	applied, err := m.Up(ctx)
	if err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}

	logger.Info("migrations applied",
		slog.Int("count", len(applied)),
		slog.Duration("took", time.Since(start)),
	)
	return nil
}
