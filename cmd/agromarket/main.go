package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/diplomas-2025/agro-market/internal/api"
	"github.com/diplomas-2025/agro-market/internal/config"
	"github.com/diplomas-2025/agro-market/internal/logging"
	"github.com/diplomas-2025/agro-market/internal/session"
	"github.com/diplomas-2025/agro-market/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	config.LoadEnv(".env")
	cfg := config.LoadClient()

	logger, logFile, err := logging.NewFile(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()

	store, err := session.OpenFile(cfg.SessionPath)
	if err != nil {
		return fmt.Errorf("open session store: %w", err)
	}
	defer store.Close()
	sess := session.NewManager(store)

	client, err := api.New(api.Config{
		BaseURL: cfg.BaseURL,
		Tokens:  sess,
		Timeout: cfg.HTTPTimeout,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	logger.Info("client_started", "base_url", cfg.BaseURL, "authenticated", sess.Valid())
	app := tui.New(ctx, tui.Deps{Gateway: client, Session: sess, Logger: logger})
	if _, err := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
