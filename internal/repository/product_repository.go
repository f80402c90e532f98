package repository

import (
	"context"
	"errors"
	"fmt"

	"shop-catalog/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

func scanProduct(row pgx.Row) (model.Product, error) {
	var p model.Product
	err := row.Scan(&p.ID, &p.Name, &p.Active, &p.CategoryID, &p.DateCreated, &p.DateUpdated)
	return p, err
}

func logFilter(e *zerolog.Event, filter model.ProductFilter) *zerolog.Event {
	if filter.CategoryID != nil {
		e = e.Int64("category_id", *filter.CategoryID)
	}
	return e.Int("limit", filter.Limit).Int("offset", filter.Offset)
}

// List retrieves active products matching the filter.
func (r *productRepository) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	query, args := NewProductQuery(filter).Select()

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		logFilter(r.logger.Error().Err(err), filter).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// Count returns the number of active products matching the filter.
func (r *productRepository) Count(ctx context.Context, filter model.ProductFilter) (int64, error) {
	query, args := NewProductQuery(filter).Count()

	var count int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		logFilter(r.logger.Error().Err(err), filter).Msg("failed to count products")
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

// GetByID retrieves a single product by its ID, whatever its active flag.
func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p
		WHERE p.id = $1
	`

	p, err := scanProduct(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int64("product_id", id).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &p, nil
}

// Upsert writes a product with an explicit ID.
func (r *productRepository) Upsert(ctx context.Context, tx pgx.Tx, p model.Product) error {
	query := `
		INSERT INTO products (id, name, active, category_id, date_created, date_updated)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name,
			active = EXCLUDED.active,
			category_id = EXCLUDED.category_id,
			date_updated = GREATEST(EXCLUDED.date_updated, products.date_updated)
	`

	_, err := tx.Exec(ctx, query, p.ID, p.Name, p.Active, p.CategoryID, p.DateCreated, p.DateUpdated)
	if err != nil {
		r.logger.Error().
			Err(err).
			Int64("product_id", p.ID).
			Int64("category_id", p.CategoryID).
			Msg("failed to upsert product")
		return fmt.Errorf("failed to upsert product %d: %w", p.ID, err)
	}
	return nil
}

// ResetSequence moves the identity sequence past the highest stored ID.
func (r *productRepository) ResetSequence(ctx context.Context, tx pgx.Tx) error {
	return resetSequence(ctx, tx, "products", r.logger)
}
