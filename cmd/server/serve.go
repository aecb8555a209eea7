package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Ko-stant/robot-path-service/internal/config"
	"github.com/Ko-stant/robot-path-service/internal/logging"
	"github.com/Ko-stant/robot-path-service/internal/store"
	"github.com/Ko-stant/robot-path-service/internal/ws"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP service",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context(), configPath)
	},
}

func runServe(ctx context.Context, path string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	closer, err := logging.Init(cfg.Logging.Path, cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return err
	}
	defer closer.Close()
	logger := slog.Default()

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	defer st.Close()

	StartProfiling(cfg.Profiling, logger)

	metrics := NewPerformanceMetrics()
	hub := ws.NewHub()
	broadcaster := NewBroadcaster(hub, NewSequenceGenerator(), logger)
	engine := NewPathEngine(st, metrics, logger, cfg.Server.MaxCommands)
	handlers := NewHandlers(engine, st, broadcaster, hub, metrics, logger, cfg.Server.MaxBodyBytes, cfg.Server.HistoryLimit)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handlers.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          logging.StdLogger(logger),
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("service listening", "addr", srv.Addr, "storage", cfg.Storage.Driver)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownDuration())
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", "err", err)
		}
	}
	metrics.LogMetrics(logger)
	return nil
}

func openStore(ctx context.Context, cfg config.StorageConfig) (store.Store, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		pg, err := store.NewPostgresStore(ctx, cfg.Postgres.DSN())
		if err != nil {
			return nil, err
		}
		if err := pg.Migrate(ctx); err != nil {
			pg.Close()
			return nil, err
		}
		return pg, nil
	default:
		return store.NewMemoryStore(), nil
	}
}
