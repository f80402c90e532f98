package repository

import (
	"context"

	"shop-catalog/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the subset of pgxpool.Pool and pgx.Tx used by the repositories,
// so reads can run either on the pool or inside a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// CategoryRepository defines the interface for category data access operations.
type CategoryRepository interface {
	// List retrieves categories ordered by creation time.
	// A non-positive limit returns every category.
	List(ctx context.Context, limit, offset int) ([]model.Category, error)

	// GetByID retrieves a single category by its ID.
	// Returns nil without error when the category does not exist.
	GetByID(ctx context.Context, id int64) (*model.Category, error)

	// Count returns the number of stored categories.
	Count(ctx context.Context) (int64, error)

	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// Create inserts a new category within the provided transaction.
	Create(ctx context.Context, tx pgx.Tx, input model.CategoryInput) (*model.Category, error)

	// Update overwrites the writable fields of a category within the provided transaction.
	// Returns nil without error when the category does not exist.
	Update(ctx context.Context, tx pgx.Tx, id int64, input model.CategoryInput) (*model.Category, error)

	// Upsert writes a category with an explicit ID, used by fixture loading.
	Upsert(ctx context.Context, tx pgx.Tx, category model.Category) error

	// ResetSequence moves the identity sequence past the highest stored ID.
	ResetSequence(ctx context.Context, tx pgx.Tx) error
}

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// List retrieves active products matching the filter, ordered by creation time.
	List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)

	// Count returns the number of active products matching the filter.
	Count(ctx context.Context, filter model.ProductFilter) (int64, error)

	// GetByID retrieves a single product by its ID.
	// Returns nil without error when the product does not exist.
	GetByID(ctx context.Context, id int64) (*model.Product, error)

	// Upsert writes a product with an explicit ID, used by fixture loading.
	Upsert(ctx context.Context, tx pgx.Tx, product model.Product) error

	// ResetSequence moves the identity sequence past the highest stored ID.
	ResetSequence(ctx context.Context, tx pgx.Tx) error
}
