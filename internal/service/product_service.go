package service

import (
	"context"
	"errors"
	"fmt"

	"shop-catalog/internal/ecoscore"
	"shop-catalog/internal/model"
	"shop-catalog/internal/repository"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const defaultRatingConcurrency = 8

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	ecoscore    ecoscore.Provider
	concurrency int
	logger      zerolog.Logger
}

// NewProductService creates a new product service. Ecoscore lookups for a
// page run with at most concurrency requests in flight.
func NewProductService(
	productRepo repository.ProductRepository,
	provider ecoscore.Provider,
	concurrency int,
	logger zerolog.Logger,
) ProductService {
	if provider == nil {
		provider = ecoscore.Disabled
	}
	if concurrency < 1 {
		concurrency = defaultRatingConcurrency
	}
	return &productService{
		productRepo: productRepo,
		ecoscore:    provider,
		concurrency: concurrency,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// List retrieves every active product matching the category filter.
func (s *productService) List(ctx context.Context, categoryID *int64) ([]model.Product, error) {
	products, err := s.productRepo.List(ctx, model.ProductFilter{CategoryID: categoryID})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list products")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	s.logger.Debug().Int("count", len(products)).Msg("retrieved products")
	return products, nil
}

// Page retrieves one page of active products with their ecoscore grades.
func (s *productService) Page(ctx context.Context, categoryID *int64, req model.PageRequest) (model.Page[model.RatedProduct], error) {
	filter := model.ProductFilter{CategoryID: categoryID}

	total, err := s.productRepo.Count(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to count products")
		return model.Page[model.RatedProduct]{}, fmt.Errorf("failed to count products: %w", err)
	}

	if !req.Within(total) {
		s.logger.Debug().
			Int("page", req.Number).
			Int64("total", total).
			Msg("product page out of range")
		return model.Page[model.RatedProduct]{}, model.ErrInvalidPage
	}

	filter.Limit = req.Size
	filter.Offset = req.Offset()
	products, err := s.productRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Int("page", req.Number).Msg("failed to list products")
		return model.Page[model.RatedProduct]{}, fmt.Errorf("failed to list products: %w", err)
	}

	rated, err := s.rateAll(ctx, products)
	if err != nil {
		return model.Page[model.RatedProduct]{}, err
	}

	return model.Page[model.RatedProduct]{Items: rated, Count: total}, nil
}

// GetByID retrieves a single product by ID.
func (s *productService) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to get product by ID")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if product == nil {
		s.logger.Debug().Int64("product_id", id).Msg("product not found")
		return nil, model.ErrProductNotFound
	}

	return product, nil
}

// GetRatedByID retrieves a single product by ID with its ecoscore grade.
func (s *productService) GetRatedByID(ctx context.Context, id int64) (*model.RatedProduct, error) {
	product, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	rated := s.rate(ctx, *product)
	return &rated, nil
}

// rateAll looks up grades for products concurrently, preserving their order.
func (s *productService) rateAll(ctx context.Context, products []model.Product) ([]model.RatedProduct, error) {
	rated := make([]model.RatedProduct, len(products))

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, p := range products {
		g.Go(func() error {
			rated[i] = s.rate(ctx, p)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("failed to rate products: %w", err)
	}

	return rated, nil
}

// rate attaches the ecoscore grade of p. Lookup failures leave the grade nil.
func (s *productService) rate(ctx context.Context, p model.Product) model.RatedProduct {
	grade, err := s.ecoscore.Grade(ctx, p.ID)
	if err != nil {
		if errors.Is(err, ecoscore.ErrNoData) {
			s.logger.Debug().Int64("product_id", p.ID).Msg("no ecoscore for product")
		} else {
			s.logger.Warn().Err(err).Int64("product_id", p.ID).Msg("ecoscore lookup failed")
		}
		return model.RatedProduct{Product: p}
	}

	return model.RatedProduct{Product: p, Ecoscore: &grade}
}
