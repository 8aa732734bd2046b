package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/diplomas-2025/agro-market/internal/config"
	"github.com/diplomas-2025/agro-market/internal/logging"
	"github.com/diplomas-2025/agro-market/internal/mockapi"
	"github.com/diplomas-2025/agro-market/internal/mockapi/db"
	"github.com/diplomas-2025/agro-market/internal/mockapi/events"
	"github.com/diplomas-2025/agro-market/internal/mockapi/seed"
)

func main() {
	config.LoadEnv(".env")
	cfg := config.LoadMockAPI()
	if cfg.DatabaseURL != "" {
		// shared databases never run with the built-in dev secrets
		config.MustNonEmpty(os.Getenv("JWT_SECRET"), "JWT_SECRET")
		config.MustNonEmpty(os.Getenv("JWT_REFRESH_SECRET"), "JWT_REFRESH_SECRET")
	}
	logger := logging.New(cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	gdb, err := db.Open(ctx, cfg.DatabaseURL, cfg.SQLitePath)
	if err != nil {
		logger.Error("db_open_failed", "error", err)
		os.Exit(1)
	}

	var pub events.Publisher = events.Noop{}
	if len(cfg.KafkaBrokers) > 0 {
		if err := events.EnsureTopics(ctx, cfg.KafkaBrokers[0], events.Topics...); err != nil {
			logger.Warn("kafka_topics_failed", "error", err)
		}
		pub = events.NewProducer(cfg.KafkaBrokers)
	}

	e, err := mockapi.New(ctx, mockapi.Options{
		DB:            gdb,
		AccessSecret:  cfg.JWTAccessSecret,
		RefreshSecret: cfg.JWTRefreshSecret,
		Events:        pub,
		Logger:        logger,
	})
	if err != nil {
		logger.Error("init_failed", "error", err)
		os.Exit(1)
	}

	if cfg.Seed {
		cat, err := seed.Default()
		if err == nil {
			err = seed.Apply(ctx, gdb, cat, cfg.AdminEmail, cfg.AdminPassword)
		}
		if err != nil {
			logger.Error("seed_failed", "error", err)
			os.Exit(1)
		}
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		logger.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http_server_error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting_down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server_shutdown_error", "error", err)
	}
	if sqlDB, err := gdb.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db_close_error", "error", err)
		}
	}
	if err := pub.Close(); err != nil {
		logger.Error("kafka_close_error", "error", err)
	}

	logger.Info("shutdown_complete")
}
