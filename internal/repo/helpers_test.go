package repo

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/talx-hub/gopher-loyalty/internal/service/dbmanager"
	"github.com/talx-hub/gopher-loyalty/internal/utils/pgcontainer"
)

const testDefaultTimeout = 5 * time.Second

var testDB *dbmanager.DBManager

// openTestDB migrates the container database and keeps the manager for
// every test in the package.
func openTestDB(dsn string) (func(), error) {
	ctx, cancel := context.WithTimeout(context.Background(), testDefaultTimeout)
	defer cancel()

	db := dbmanager.New(dsn, slog.Default()).
		WithMaxConns(32).
		Connect(ctx).
		Ping(ctx).
		ApplyMigrations(ctx)
	if err := db.Error(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate %s: %w", dsn, err)
	}
	testDB = db
	return db.Close, nil
}

func loadFixture(t *testing.T, pool *pgxpool.Pool, name string) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), testDefaultTimeout)
	defer cancel()
	require.NoError(t, pgcontainer.ExecFile(ctx, pool, filepath.Join("fixtures", name)))
}

// setupStore returns a store over a freshly truncated schema.
func setupStore(t *testing.T, lockTimeout time.Duration,
) (*Store, context.Context, context.CancelFunc, *pgxpool.Pool) {
	t.Helper()

	pool, err := testDB.GetPool(context.Background())
	require.NoError(t, err)
	loadFixture(t, pool, "truncate.sql")

	ctx, cancel := context.WithTimeout(context.Background(), 4*testDefaultTimeout)
	return NewStore(pool, slog.Default(), lockTimeout), ctx, cancel, pool
}
