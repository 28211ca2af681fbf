package main

import (
	"context"
	"log/slog"
	"os"

	"movie-catalog-api/internal/app"
	"movie-catalog-api/internal/config"
	"movie-catalog-api/internal/logger"
)

func main() {
	noColor := os.Getenv("NO_COLOR") != ""
	slog.SetDefault(logger.New(os.Stdout, slog.LevelInfo, noColor))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(logger.New(os.Stdout, cfg.LogLevel, noColor))

	application, err := app.New(context.Background(), cfg)
	if err != nil {
		slog.Error("failed to initialize application", "error", err)
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		slog.Error("application run failed", "error", err)
		os.Exit(1)
	}
}
