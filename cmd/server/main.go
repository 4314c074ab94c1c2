package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/survey/api/internal/adapters/handler/http"
	"github.com/survey/api/internal/adapters/repository/postgres"
	"github.com/survey/api/internal/config"
	"github.com/survey/api/internal/core/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment")
	}

	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Open(ctx, postgres.PoolConfig{
		URL:          cfg.DatabaseURL,
		MaxOpenConns: cfg.DBMaxOpenConns,
		MinIdleConns: cfg.DBMinIdleConns,
		IdleTimeout:  cfg.DBIdleTimeout,
		MaxLifetime:  cfg.DBMaxLifetime,
	})
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	responseRepo := postgres.NewResponseRepository(db)
	responseService := services.NewResponseService(responseRepo)
	healthService := services.NewHealthService(db)

	responseHandler := http.NewResponseHandler(responseService, cfg.IsDevelopment())
	healthHandler := http.NewHealthHandler(healthService, cfg.Environment)

	handler := http.NewHandler(cfg, responseHandler, healthHandler)
	server := &stdhttp.Server{Addr: fmt.Sprintf("0.0.0.0:%d", cfg.Port), Handler: handler}

	go func() {
		slog.Info("server listening", "addr", server.Addr, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("gracefully shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown failed", "error", err)
		os.Exit(1)
	}
}
