package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/JonMunkholm/csvloader/internal/config"
	"github.com/JonMunkholm/csvloader/internal/database"
	"github.com/JonMunkholm/csvloader/internal/fetch"
	"github.com/JonMunkholm/csvloader/internal/ingest"
	"github.com/JonMunkholm/csvloader/internal/logging"
	"github.com/JonMunkholm/csvloader/internal/web"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"db_driver", cfg.Database.Driver,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)

	ctx := context.Background()

	exec, closeDB, err := openExecutor(ctx, cfg)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer closeDB()

	// Verify connection
	if err := exec.Ping(ctx); err != nil {
		slog.Error("failed to ping database", "error", err)
		os.Exit(1)
	}
	slog.Info("connected to database", "driver", cfg.Database.Driver)

	// Wire the ingestion pipeline
	fetcher := fetch.New(cfg.Fetch.Timeout, cfg.Fetch.MaxBytes)
	service := ingest.NewService(fetcher, exec)

	server := web.NewServer(service, exec, cfg)

	// Graceful shutdown
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

	if err := server.Start(cfg.Server.Addr()); err != nil && err != http.ErrServerClosed {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// openExecutor builds the SQL executor for the configured driver and returns
// it along with a close function for the underlying handle.
func openExecutor(ctx context.Context, cfg *config.Config) (database.Executor, func(), error) {
	switch strings.ToLower(cfg.Database.Driver) {
	case "sqlite":
		db, err := sql.Open("sqlite", cfg.Database.URL)
		if err != nil {
			return nil, nil, err
		}
		db.SetMaxOpenConns(cfg.Database.MaxConns)
		db.SetConnMaxLifetime(cfg.Database.MaxConnLifetime)
		db.SetConnMaxIdleTime(cfg.Database.MaxConnIdleTime)
		return database.NewSQLExecutor(db), func() { db.Close() }, nil

	default: // postgres
		poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL)
		if err != nil {
			return nil, nil, err
		}
		poolConfig.MaxConns = int32(cfg.Database.MaxConns)
		poolConfig.MinConns = int32(cfg.Database.MinConns)
		poolConfig.MaxConnLifetime = cfg.Database.MaxConnLifetime
		poolConfig.MaxConnIdleTime = cfg.Database.MaxConnIdleTime

		pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			return nil, nil, err
		}
		return database.NewPgxExecutor(pool), pool.Close, nil
	}
}
