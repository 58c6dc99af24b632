// Package main implements the entry point for the Todo API server.
// It loads configuration, sets up logging, applies database migrations,
// wires the stores and handlers together, and serves HTTP until signalled.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/todoapp/todo-api/internal/api/shared"
	"github.com/todoapp/todo-api/internal/config"
	"github.com/todoapp/todo-api/internal/migrate"
	"github.com/todoapp/todo-api/internal/platform/logger"
	"github.com/todoapp/todo-api/internal/platform/postgres"
	"github.com/todoapp/todo-api/internal/store"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	// Stack traces in 500 bodies are a development-only affordance.
	shared.SetIncludeStack(cfg.Server.IsDevelopment())

	appLogger.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("env", cfg.Server.Env))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := migrate.Up(ctx, cfg.Database.URL); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	appLogger.Info("database connection established")

	users := postgres.NewUserStore(pool, appLogger)
	lists := postgres.NewTodolistStore(pool, appLogger)
	items := postgres.NewTodoitemStore(pool, appLogger)

	router := newRouter(users, lists, items, appLogger)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		appLogger.Info("listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	if cfg.Server.IsDevelopment() {
		logSampleAPIKeys(ctx, users, appLogger)
	}

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	appLogger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	return nil
}

// logSampleAPIKeys logs a few usernames and API keys so the API can be
// exercised by hand right after startup. Development mode only.
func logSampleAPIKeys(ctx context.Context, users store.UserStore, log *slog.Logger) {
	sample, total, err := users.List(ctx, 0, 3)
	if err != nil {
		log.Warn("could not load sample users", slog.String("error", err.Error()))
		return
	}
	if total == 0 {
		log.Debug("no users in the database yet; create some to test the API")
		return
	}
	for _, u := range sample {
		log.Debug("demo API key",
			slog.String("username", u.Username),
			slog.String("api_key", u.APIKey))
	}
}
