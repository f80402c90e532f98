package fixture

import (
	"context"

	"shop-catalog/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/mock"
)

// MockCategoryRepository is a mock implementation of CategoryRepository.
// Only the write path used by the seeder records calls.
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) List(ctx context.Context, limit, offset int) ([]model.Category, error) {
	return nil, nil
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	return nil, nil
}

func (m *MockCategoryRepository) Count(ctx context.Context) (int64, error) { return 0, nil }

func (m *MockCategoryRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if tx, ok := args.Get(0).(pgx.Tx); ok {
		return tx, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCategoryRepository) Create(ctx context.Context, tx pgx.Tx, input model.CategoryInput) (*model.Category, error) {
	return nil, nil
}

func (m *MockCategoryRepository) Update(ctx context.Context, tx pgx.Tx, id int64, input model.CategoryInput) (*model.Category, error) {
	return nil, nil
}

func (m *MockCategoryRepository) Upsert(ctx context.Context, tx pgx.Tx, category model.Category) error {
	args := m.Called(ctx, tx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) ResetSequence(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	return nil, nil
}

func (m *MockProductRepository) Count(ctx context.Context, filter model.ProductFilter) (int64, error) {
	return 0, nil
}

func (m *MockProductRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	return nil, nil
}

func (m *MockProductRepository) Upsert(ctx context.Context, tx pgx.Tx, product model.Product) error {
	args := m.Called(ctx, tx, product)
	return args.Error(0)
}

func (m *MockProductRepository) ResetSequence(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// MockTx is a minimal mock implementation of pgx.Tx for testing.
type MockTx struct {
	mock.Mock
	committed  bool
	rolledBack bool
}

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	m.committed = true
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	m.rolledBack = true
	return args.Error(0)
}

func (m *MockTx) Begin(ctx context.Context) (pgx.Tx, error) { return nil, nil }
func (m *MockTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (m *MockTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (m *MockTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (m *MockTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (m *MockTx) Exec(ctx context.Context, sql string, arguments ...any) (commandTag pgconn.CommandTag, err error) {
	return
}
func (m *MockTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (m *MockTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (m *MockTx) Conn() *pgx.Conn                                               { return nil }
