package fixture

import (
	"context"
	"fmt"

	"shop-catalog/internal/repository"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const maxConcurrentLoads = 4

// Result counts the records written by a seeding run.
type Result struct {
	Categories int
	Products   int
}

// Seeder loads fixture documents and writes their records to the database.
type Seeder struct {
	loader       Loader
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
	logger       zerolog.Logger
}

// NewSeeder creates a new fixture seeder.
func NewSeeder(
	loader Loader,
	categoryRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
	logger zerolog.Logger,
) *Seeder {
	return &Seeder{
		loader:       loader,
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		logger:       logger.With().Str("component", "fixture-seeder").Logger(),
	}
}

// Run loads every document in paths and seeds their combined records.
func (s *Seeder) Run(ctx context.Context, paths []string) (Result, error) {
	set, err := s.LoadAll(ctx, paths)
	if err != nil {
		return Result{}, err
	}
	return s.Seed(ctx, set)
}

// LoadAll loads the documents in paths concurrently and merges them in the
// order given, so later documents override earlier ones.
func (s *Seeder) LoadAll(ctx context.Context, paths []string) (*Set, error) {
	sets := make([]*Set, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLoads)
	for i, path := range paths {
		g.Go(func() error {
			set, err := s.loader.Load(gctx, path)
			if err != nil {
				return fmt.Errorf("failed to load fixture %s: %w", path, err)
			}
			sets[i] = set
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Msg("failed to load fixtures")
		return nil, err
	}

	merged := &Set{}
	for _, set := range sets {
		merged.Merge(set)
	}

	s.logger.Info().
		Int("documents", len(paths)).
		Int("categories", len(merged.Categories)).
		Int("products", len(merged.Products)).
		Msg("fixtures loaded")

	return merged, nil
}

// Seed upserts set in a single transaction, categories before products, and
// moves both identity sequences past the highest stored id.
func (s *Seeder) Seed(ctx context.Context, set *Set) (Result, error) {
	tx, err := s.categoryRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return Result{}, fmt.Errorf("failed to seed fixtures: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	for _, c := range set.Categories {
		if err = s.categoryRepo.Upsert(ctx, tx, c); err != nil {
			s.logger.Error().Err(err).Int64("category_id", c.ID).Msg("failed to seed category")
			return Result{}, fmt.Errorf("failed to seed category %d: %w", c.ID, err)
		}
	}

	for _, p := range set.Products {
		if err = s.productRepo.Upsert(ctx, tx, p); err != nil {
			s.logger.Error().Err(err).Int64("product_id", p.ID).Msg("failed to seed product")
			return Result{}, fmt.Errorf("failed to seed product %d: %w", p.ID, err)
		}
	}

	if err = s.categoryRepo.ResetSequence(ctx, tx); err != nil {
		return Result{}, fmt.Errorf("failed to seed fixtures: %w", err)
	}
	if err = s.productRepo.ResetSequence(ctx, tx); err != nil {
		return Result{}, fmt.Errorf("failed to seed fixtures: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Msg("failed to commit transaction")
		return Result{}, fmt.Errorf("failed to seed fixtures: %w", err)
	}

	result := Result{Categories: len(set.Categories), Products: len(set.Products)}
	s.logger.Info().
		Int("categories", result.Categories).
		Int("products", result.Products).
		Msg("fixtures seeded")

	return result, nil
}
