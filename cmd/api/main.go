package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shop-catalog/internal/auth"
	"shop-catalog/internal/config"
	"shop-catalog/internal/database"
	"shop-catalog/internal/ecoscore"
	"shop-catalog/internal/handler"
	"shop-catalog/internal/repository"
	"shop-catalog/internal/router"
	"shop-catalog/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting shop catalog API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, pool, logger); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	// Initialize repositories
	categoryRepo := repository.NewCategoryRepository(pool, logger)
	productRepo := repository.NewProductRepository(pool, logger)

	// Initialize ecoscore provider
	provider := ecoscore.Disabled
	if cfg.Ecoscore.Enabled {
		provider = ecoscore.NewHTTPProvider(ecoscore.HTTPConfig{
			BaseURL:    cfg.Ecoscore.BaseURL,
			Timeout:    cfg.Ecoscore.Timeout(),
			MaxRetries: cfg.Ecoscore.MaxRetries,
		}, &http.Client{}, logger)
		logger.Info().
			Str("base_url", cfg.Ecoscore.BaseURL).
			Int("concurrency", cfg.Ecoscore.Concurrency).
			Msg("ecoscore lookups enabled")
	} else {
		logger.Info().Msg("ecoscore lookups disabled, v2 products report null grades")
	}

	// Initialize services
	categoryService := service.NewCategoryService(categoryRepo, logger)
	productService := service.NewProductService(productRepo, provider, cfg.Ecoscore.Concurrency, logger)

	// Initialize HTTP handlers
	handlers := router.Handlers{
		Category:      handler.NewCategoryHandler(categoryService, cfg.Pagination, logger),
		Product:       handler.NewProductHandler(productService, cfg.Pagination, logger),
		AdminCategory: handler.NewAdminCategoryHandler(categoryService, logger),
	}

	// Initialize router
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer)
	mux := router.New(handlers, tokens, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
