package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"shop-catalog/internal/config"
	"shop-catalog/internal/database"
	"shop-catalog/internal/fixture"
	"shop-catalog/internal/repository"
)

// seed loads fixture documents into the catalog database. Paths given as
// arguments replace FIXTURE_PATHS.
func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool, logger); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Initialize fixture loader with S3 and local fallback
	var loader fixture.Loader = fixture.NewFileLoader(logger)
	if cfg.S3.Enabled {
		s3Loader, err := fixture.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
		}
		loader = fixture.NewFallbackLoader(s3Loader, loader, cfg.S3.Prefix, err == nil, logger)
	} else {
		logger.Info().Msg("using local file system for fixture files (S3 disabled)")
	}

	paths := cfg.Fixtures.Paths
	if len(args) > 0 {
		paths = args
	}

	seeder := fixture.NewSeeder(
		loader,
		repository.NewCategoryRepository(pool, logger),
		repository.NewProductRepository(pool, logger),
		logger,
	)

	result, err := seeder.Run(ctx, paths)
	if err != nil {
		return fmt.Errorf("failed to seed fixtures: %w", err)
	}

	logger.Info().
		Strs("paths", paths).
		Int("categories", result.Categories).
		Int("products", result.Products).
		Msg("seeding completed")

	return nil
}
