package repo

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talx-hub/gopher-loyalty/internal/model"
	"github.com/talx-hub/gopher-loyalty/internal/serviceerrs"
	"github.com/talx-hub/gopher-loyalty/internal/utils/pgcontainer"
)

func TestMain(m *testing.M) {
	log := slog.Default()
	code, err := pgcontainer.Main(m, log, openTestDB)
	if err != nil {
		log.ErrorContext(context.TODO(),
			"unexpected test failure",
			slog.Any(model.KeyLoggerError, err),
		)
	}
	os.Exit(code)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"no rows", pgx.ErrNoRows, serviceerrs.ErrNotFound},
		{"lock timeout", &pgconn.PgError{Code: pgerrcode.LockNotAvailable}, serviceerrs.ErrResourceBusy},
		{"deadlock", &pgconn.PgError{Code: pgerrcode.DeadlockDetected}, serviceerrs.ErrResourceBusy},
		{"serialization", &pgconn.PgError{Code: pgerrcode.SerializationFailure}, serviceerrs.ErrResourceBusy},
		{"unique", &pgconn.PgError{Code: pgerrcode.UniqueViolation}, serviceerrs.ErrConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(tt.err)
			require.ErrorIs(t, got, tt.want)
			require.ErrorIs(t, got, tt.err)
		})
	}

	assert.NoError(t, classify(nil))
	plain := errors.New("boom")
	assert.Equal(t, plain, classify(plain))
}

func TestWithRetry(t *testing.T) {
	prev := retryDelay
	retryDelay = time.Millisecond
	defer func() { retryDelay = prev }()

	connErr := &pgconn.PgError{Code: pgerrcode.ConnectionFailure}

	t.Run("recovers after connection errors", func(t *testing.T) {
		calls := 0
		got, err := WithRetry[int](func() (int, error) {
			calls++
			if calls < 3 {
				return 0, connErr
			}
			return 42, nil
		}, 0)
		require.NoError(t, err)
		assert.Equal(t, 42, got)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up", func(t *testing.T) {
		calls := 0
		_, err := WithRetry[int](func() (int, error) {
			calls++
			return 0, connErr
		}, 0)
		require.ErrorIs(t, err, connErr)
		assert.Equal(t, 4, calls)
	})

	t.Run("does not retry other errors", func(t *testing.T) {
		calls := 0
		_, err := WithRetry[int](func() (int, error) {
			calls++
			return 0, serviceerrs.ErrNotFound
		}, 0)
		require.ErrorIs(t, err, serviceerrs.ErrNotFound)
		assert.Equal(t, 1, calls)
	})
}

func TestWithTX(t *testing.T) {
	_, ctx, cancel, pool := setupStore(t, time.Second)
	defer cancel()

	boom := errors.New("boom")
	_, err := WithTX[struct{}](ctx, pool, slog.Default(),
		func(ctx context.Context, tx connectionPool) (any, error) {
			_, err := tx.Exec(ctx, `INSERT INTO accounts (tenant_id, external_id, joining_date)
				VALUES ('acme', 'rolled-back', now())`)
			require.NoError(t, err)
			return struct{}{}, boom
		})
	require.ErrorIs(t, err, boom)

	got, err := WithTX[int](ctx, pool, slog.Default(),
		func(ctx context.Context, tx connectionPool) (any, error) {
			var n int
			err := tx.QueryRow(ctx, `SELECT count(*) FROM accounts`).Scan(&n)
			return n, err
		})
	require.NoError(t, err)
	assert.Equal(t, 0, got)

	_, err = WithTX[string](ctx, pool, slog.Default(),
		func(context.Context, connectionPool) (any, error) {
			return 1, nil
		})
	require.Error(t, err)
}

func TestLockTimeoutSetting(t *testing.T) {
	assert.Equal(t, "2000ms", lockTimeoutSetting(2*time.Second))
	assert.Equal(t, "20ms", lockTimeoutSetting(20*time.Millisecond))
	assert.Equal(t, "1ms", lockTimeoutSetting(time.Microsecond))
}
