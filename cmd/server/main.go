package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/csvadmin/csvadmin/internal/config"
	"github.com/csvadmin/csvadmin/internal/core"
	"github.com/csvadmin/csvadmin/internal/logging"
	"github.com/csvadmin/csvadmin/internal/schema"
	"github.com/csvadmin/csvadmin/internal/store"
	"github.com/csvadmin/csvadmin/internal/web"
)

func main() {
	// Load .env file if present (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"db_max_conns", cfg.Database.MaxConns,
		"max_file_size", cfg.Import.MaxFileSize,
	)

	poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		slog.Error("failed to parse database URL", "error", err)
		os.Exit(1)
	}
	poolConfig.MaxConns = int32(cfg.Database.MaxConns)
	poolConfig.MinConns = int32(cfg.Database.MinConns)
	poolConfig.MaxConnLifetime = cfg.Database.MaxConnLifetime

	ctx := context.Background()
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		slog.Error("failed to ping database", "error", err)
		os.Exit(1)
	}

	registry := core.NewRegistry()
	if err := schema.RegisterAll(registry); err != nil {
		slog.Error("failed to register entity schemas", "error", err)
		os.Exit(1)
	}
	slog.Info("entities registered", "count", registry.Count())

	entityStore := store.New(pool)
	entityStore.SkipExisting = cfg.Import.SkipExisting

	importer := core.NewImporter(entityStore)
	importer.MaxErrorRows = cfg.Import.MaxErrorRows
	importer.LastComerWins = cfg.Import.LastComerWins

	server := web.NewServer(cfg, registry, importer, entityStore)

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil {
		slog.Info("server stopped", "error", err)
	}
}
