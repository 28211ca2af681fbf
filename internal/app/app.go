package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"movie-catalog-api/internal/config"
	"movie-catalog-api/internal/database"
	"movie-catalog-api/internal/handler"
	"movie-catalog-api/internal/metrics"
	"movie-catalog-api/internal/middleware"
	"movie-catalog-api/internal/repository"
	"movie-catalog-api/internal/router"
	"movie-catalog-api/internal/service"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	server *http.Server
	db     *database.DB
}

// New wires every component and makes sure an administrator exists. The
// server is not listening yet when it returns.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	tokenService, err := service.NewTokenService(service.TokenConfig{
		AccessSecret:  cfg.JWTAccessSecret,
		RefreshSecret: cfg.JWTRefreshSecret,
		AccessTTL:     cfg.JWTAccessTTL,
		RefreshTTL:    cfg.JWTRefreshTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}

	slog.Info("connecting to PostgreSQL")
	db, err := database.New(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure database schema: %w", err)
	}

	userRepo := repository.NewUserRepository(db.Pool)
	movieRepo := repository.NewMovieRepository(db.Pool)
	profileRepo := repository.NewProfileRepository(db.Pool)
	watchlistRepo := repository.NewWatchlistRepository(db.Pool)
	slog.Info("database ready")

	hasher := service.NewPasswordHasher(cfg.BcryptCost, cfg.HashConcurrency)
	appMetrics := metrics.New()

	bootstrap := service.NewAdminBootstrap(userRepo, hasher, cfg.Admin)
	if err := bootstrap.EnsureAdmin(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to bootstrap admin: %w", err)
	}

	authService := service.NewAuthService(userRepo, hasher, tokenService, appMetrics)
	userService := service.NewUserService(userRepo)
	movieService := service.NewMovieService(movieRepo)
	profileService := service.NewProfileService(profileRepo)
	watchlistService := service.NewWatchlistService(profileRepo, watchlistRepo)

	appRouter := router.New(cfg, middleware.NewAuthMiddleware(tokenService, appMetrics), router.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		User:      handler.NewUserHandler(userService),
		Movie:     handler.NewMovieHandler(movieService),
		Profile:   handler.NewProfileHandler(profileService),
		Watchlist: handler.NewWatchlistHandler(watchlistService),
		Health:    handler.NewHealthHandler(db),
	}, appMetrics)

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           appRouter,
		ReadHeaderTimeout: cfg.ServerReadHeaderTimeout,
		WriteTimeout:      cfg.ServerWriteTimeout,
		IdleTimeout:       cfg.ServerIdleTimeout,
	}

	return &App{server: server, db: db}, nil
}

// Run serves until SIGINT/SIGTERM, then drains in-flight requests.
func (a *App) Run() error {
	defer a.db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
