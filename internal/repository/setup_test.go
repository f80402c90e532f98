package repository

import (
	"context"
	"testing"
	"time"

	"shop-catalog/internal/database"
	"shop-catalog/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB creates a PostgreSQL testcontainer with the catalog schema and returns a connection pool.
func setupTestDB(t *testing.T) (*pgxpool.Pool, func()) {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)

	_, err = pool.Exec(ctx, database.Schema)
	require.NoError(t, err)

	cleanup := func() {
		pool.Close()
		_ = pgContainer.Terminate(ctx)
	}

	return pool, cleanup
}

// seedCategory inserts a category and returns it with its generated fields.
func seedCategory(t *testing.T, pool *pgxpool.Pool, name string, active bool) model.Category {
	t.Helper()

	c, err := scanCategory(pool.QueryRow(context.Background(),
		`INSERT INTO categories (name, active) VALUES ($1, $2) RETURNING `+categoryColumns,
		name, active,
	))
	require.NoError(t, err)
	return c
}

// seedProduct inserts a product and returns it with its generated fields.
func seedProduct(t *testing.T, pool *pgxpool.Pool, name string, active bool, categoryID int64) model.Product {
	t.Helper()

	p, err := scanProduct(pool.QueryRow(context.Background(),
		`INSERT INTO products AS p (name, active, category_id) VALUES ($1, $2, $3) RETURNING `+productColumns,
		name, active, categoryID,
	))
	require.NoError(t, err)
	return p
}
