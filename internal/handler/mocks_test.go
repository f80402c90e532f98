package handler

import (
	"context"
	"time"

	"shop-catalog/internal/config"
	"shop-catalog/internal/model"

	"github.com/stretchr/testify/mock"
)

var (
	testTime       = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	testPagination = config.PaginationConfig{PageSize: 2, MaxPageSize: 5}
)

// MockCategoryService is a mock implementation of CategoryService.
type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) List(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *MockCategoryService) Page(ctx context.Context, req model.PageRequest) (model.Page[model.Category], error) {
	args := m.Called(ctx, req)
	return args.Get(0).(model.Page[model.Category]), args.Error(1)
}

func (m *MockCategoryService) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryService) Create(ctx context.Context, input model.CategoryInput) (*model.Category, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryService) Update(ctx context.Context, id int64, input model.CategoryInput) (*model.Category, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

// MockProductService is a mock implementation of ProductService.
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) List(ctx context.Context, categoryID *int64) ([]model.Product, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductService) Page(ctx context.Context, categoryID *int64, req model.PageRequest) (model.Page[model.RatedProduct], error) {
	args := m.Called(ctx, categoryID, req)
	return args.Get(0).(model.Page[model.RatedProduct]), args.Error(1)
}

func (m *MockProductService) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) GetRatedByID(ctx context.Context, id int64) (*model.RatedProduct, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RatedProduct), args.Error(1)
}

func int64Ptr(v int64) *int64 {
	return &v
}

func stringPtr(v string) *string {
	return &v
}

func boolPtr(v bool) *bool {
	return &v
}
