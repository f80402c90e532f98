package service

import (
	"context"

	"shop-catalog/internal/model"
)

// CategoryService defines operations for category management.
type CategoryService interface {
	// List retrieves every category in creation order.
	List(ctx context.Context) ([]model.Category, error)

	// Page retrieves one page of categories.
	Page(ctx context.Context, req model.PageRequest) (model.Page[model.Category], error)

	// GetByID retrieves a single category by ID.
	GetByID(ctx context.Context, id int64) (*model.Category, error)

	// Create validates and stores a new category.
	Create(ctx context.Context, input model.CategoryInput) (*model.Category, error)

	// Update validates and overwrites the writable fields of a category.
	Update(ctx context.Context, id int64, input model.CategoryInput) (*model.Category, error)
}

// ProductService defines read operations for the public product catalog.
type ProductService interface {
	// List retrieves every active product matching the category filter.
	List(ctx context.Context, categoryID *int64) ([]model.Product, error)

	// Page retrieves one page of active products with their ecoscore grades.
	Page(ctx context.Context, categoryID *int64, req model.PageRequest) (model.Page[model.RatedProduct], error)

	// GetByID retrieves a single product by ID.
	GetByID(ctx context.Context, id int64) (*model.Product, error)

	// GetRatedByID retrieves a single product by ID with its ecoscore grade.
	GetRatedByID(ctx context.Context, id int64) (*model.RatedProduct, error)
}
