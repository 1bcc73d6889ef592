package dbmanager

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/talx-hub/gopher-loyalty/internal/model"
)

//go:embed migrations/*.sql
var migrations embed.FS

var errNotConnected = errors.New("DB is not connected")

// DBManager is a chainable connection bootstrapper. The first failing step
// records its error; later steps become no-ops and Error reports it.
type DBManager struct {
	log         *slog.Logger
	pool        *pgxpool.Pool
	err         error
	dsn         string
	maxConns    int32
	IsConnected bool
}

func New(dsn string, log *slog.Logger) *DBManager {
	return &DBManager{
		log:      log,
		dsn:      dsn,
		maxConns: 10,
	}
}

// WithMaxConns sizes the pool; it should cover the number of requests that
// may wait on account locks at once.
func (m *DBManager) WithMaxConns(n int32) *DBManager {
	if n > 0 {
		m.maxConns = n
	}
	return m
}

func (m *DBManager) Connect(ctx context.Context) *DBManager {
	if m.err != nil {
		return m
	}

	cfg, err := pgxpool.ParseConfig(m.dsn)
	if err != nil {
		return m.fail(ctx, "failed to parse DSN", err)
	}
	cfg.MinConns = 1
	cfg.MaxConns = m.maxConns
	cfg.ConnConfig.Tracer = &queryTracer{m.log}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return m.fail(ctx, "failed to init pgxpool", err)
	}
	m.pool = pool
	return m
}

func (m *DBManager) Ping(ctx context.Context) *DBManager {
	if m.err != nil {
		return m
	}
	if m.pool == nil {
		return m.fail(ctx, "failed to ping the DB", errNotConnected)
	}
	if err := m.pool.Ping(ctx); err != nil {
		m.IsConnected = false
		return m.fail(ctx, "failed to ping the DB", err)
	}

	m.IsConnected = true
	return m
}

// ApplyMigrations runs the embedded up-migrations. Running it on an
// up-to-date schema is a no-op.
func (m *DBManager) ApplyMigrations(ctx context.Context) *DBManager {
	if m.err != nil {
		return m
	}

	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return m.fail(ctx, "failed to open embedded migrations", err)
	}
	mg, err := migrate.NewWithSourceInstance("iofs", src, m.dsn)
	if err != nil {
		return m.fail(ctx, "failed to init migrations", err)
	}
	defer func() {
		srcErr, dbErr := mg.Close()
		if closeErr := errors.Join(srcErr, dbErr); closeErr != nil {
			m.log.LogAttrs(ctx,
				slog.LevelWarn,
				"failed to close migrator",
				slog.Any(model.KeyLoggerError, closeErr),
			)
		}
	}()

	if err = mg.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return m.fail(ctx, "failed to apply migrations", err)
	}
	m.log.LogAttrs(ctx, slog.LevelInfo, "migrations applied")
	return m
}

func (m *DBManager) Error() error {
	return m.err
}

func (m *DBManager) GetPool(ctx context.Context) (*pgxpool.Pool, error) {
	if m.pool == nil {
		return nil, errNotConnected
	}
	if err := m.pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping the DB: %w", err)
	}
	return m.pool, nil
}

// CheckHealth pings the pool with the request's deadline.
func (m *DBManager) CheckHealth(ctx context.Context) error {
	if m.pool == nil {
		return errNotConnected
	}
	if err := m.pool.Ping(ctx); err != nil {
		m.IsConnected = false
		return fmt.Errorf("DB health check failed: %w", err)
	}
	m.IsConnected = true
	return nil
}

func (m *DBManager) Close() {
	if m.pool == nil {
		return
	}

	m.pool.Close()
	m.IsConnected = false
	m.log.LogAttrs(context.TODO(),
		slog.LevelInfo,
		"connection to DB closed",
	)
}

func (m *DBManager) fail(ctx context.Context, msg string, err error) *DBManager {
	m.log.LogAttrs(ctx,
		slog.LevelError,
		msg,
		slog.Any(model.KeyLoggerError, err),
	)
	m.err = fmt.Errorf("%s: %w", msg, err)
	return m
}
