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

const categoryColumns = "id, name, description, active, date_created, date_updated"

// categoryRepository implements the CategoryRepository interface using PostgreSQL.
type categoryRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCategoryRepository creates a new PostgreSQL-backed category repository.
func NewCategoryRepository(pool *pgxpool.Pool, logger zerolog.Logger) CategoryRepository {
	return &categoryRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "category").Logger(),
	}
}

func scanCategory(row pgx.Row) (model.Category, error) {
	var c model.Category
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.Active, &c.DateCreated, &c.DateUpdated)
	return c, err
}

// List retrieves categories ordered by creation time.
func (r *categoryRepository) List(ctx context.Context, limit, offset int) ([]model.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		ORDER BY date_created, id
	`
	var args []any
	if limit > 0 {
		if offset < 0 {
			offset = 0
		}
		query += " LIMIT $1 OFFSET $2"
		args = append(args, limit, offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to query categories")
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := []model.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan category row")
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating category rows")
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

// GetByID retrieves a single category by its ID.
func (r *categoryRepository) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE id = $1
	`

	c, err := scanCategory(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int64("category_id", id).Msg("category not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("category_id", id).Msg("failed to query category")
		return nil, fmt.Errorf("failed to query category: %w", err)
	}

	return &c, nil
}

// Count returns the number of stored categories.
func (r *categoryRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM categories`).Scan(&count); err != nil {
		r.logger.Error().Err(err).Msg("failed to count categories")
		return 0, fmt.Errorf("failed to count categories: %w", err)
	}
	return count, nil
}

// BeginTx starts a new database transaction.
func (r *categoryRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// Create inserts a new category within the provided transaction.
func (r *categoryRepository) Create(ctx context.Context, tx pgx.Tx, input model.CategoryInput) (*model.Category, error) {
	query := `
		INSERT INTO categories (name, description, active)
		VALUES ($1, COALESCE($2, ''), COALESCE($3, FALSE))
		RETURNING ` + categoryColumns

	c, err := scanCategory(tx.QueryRow(ctx, query, input.Name, input.Description, input.Active))
	if err != nil {
		r.logger.Error().Err(err).Str("name", input.Name).Msg("failed to create category")
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	r.logger.Debug().Int64("category_id", c.ID).Msg("category created successfully")

	return &c, nil
}

// Update overwrites the writable fields of a category within the provided transaction.
// Omitted description and active keep their stored values.
// date_updated never moves backwards, even if the database clock does.
func (r *categoryRepository) Update(ctx context.Context, tx pgx.Tx, id int64, input model.CategoryInput) (*model.Category, error) {
	query := `
		UPDATE categories
		SET name = $2,
			description = COALESCE($3, description),
			active = COALESCE($4, active),
			date_updated = GREATEST(clock_timestamp(), date_updated)
		WHERE id = $1
		RETURNING ` + categoryColumns

	c, err := scanCategory(tx.QueryRow(ctx, query, id, input.Name, input.Description, input.Active))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int64("category_id", id).Msg("category to update not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("category_id", id).Msg("failed to update category")
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	r.logger.Debug().Int64("category_id", c.ID).Msg("category updated successfully")

	return &c, nil
}

// Upsert writes a category with an explicit ID.
func (r *categoryRepository) Upsert(ctx context.Context, tx pgx.Tx, c model.Category) error {
	query := `
		INSERT INTO categories (id, name, description, active, date_created, date_updated)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name,
			description = EXCLUDED.description,
			active = EXCLUDED.active,
			date_updated = GREATEST(EXCLUDED.date_updated, categories.date_updated)
	`

	_, err := tx.Exec(ctx, query, c.ID, c.Name, c.Description, c.Active, c.DateCreated, c.DateUpdated)
	if err != nil {
		r.logger.Error().Err(err).Int64("category_id", c.ID).Msg("failed to upsert category")
		return fmt.Errorf("failed to upsert category %d: %w", c.ID, err)
	}
	return nil
}

// ResetSequence moves the identity sequence past the highest stored ID.
func (r *categoryRepository) ResetSequence(ctx context.Context, tx pgx.Tx) error {
	return resetSequence(ctx, tx, "categories", r.logger)
}

// resetSequence aligns the identity sequence of table with its current maximum id.
// table is always a package constant, never caller input.
func resetSequence(ctx context.Context, q Querier, table string, logger zerolog.Logger) error {
	query := fmt.Sprintf(
		`SELECT setval(pg_get_serial_sequence('%[1]s', 'id'), COALESCE(MAX(id), 1), MAX(id) IS NOT NULL) FROM %[1]s`,
		table,
	)

	if _, err := q.Exec(ctx, query); err != nil {
		logger.Error().Err(err).Str("table", table).Msg("failed to reset identity sequence")
		return fmt.Errorf("failed to reset %s sequence: %w", table, err)
	}
	return nil
}
