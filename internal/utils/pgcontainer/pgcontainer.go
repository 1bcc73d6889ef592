// Package pgcontainer starts a disposable postgres in docker for tests.
package pgcontainer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/joho/godotenv"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"github.com/talx-hub/gopher-loyalty/internal/model"
)

const (
	defaultTag     = "17-alpine"
	envFileName    = ".env"
	tagKey         = "POSTGRES_TAG"
	user           = "loyalty"
	password       = "loyalty"
	dbName         = "loyalty"
	expireSeconds  = 180
	maxWaitRetries = 90 * time.Second
)

type Container struct {
	log      *slog.Logger
	pool     *dockertest.Pool
	resource *dockertest.Resource
	dsn      string
}

func New(log *slog.Logger) *Container {
	return &Container{log: log}
}

func (c *Container) RunContainer() error {
	pool, err := dockertest.NewPool("")
	if err != nil {
		return fmt.Errorf("failed to construct docker pool: %w", err)
	}
	if err = pool.Client.Ping(); err != nil {
		return fmt.Errorf("failed to connect to docker: %w", err)
	}
	c.pool = pool

	tag := imageTag()
	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        tag,
		Env: []string{
			"POSTGRES_USER=" + user,
			"POSTGRES_PASSWORD=" + password,
			"POSTGRES_DB=" + dbName,
			"listen_addresses='*'",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		return fmt.Errorf("failed to start postgres:%s: %w", tag, err)
	}
	c.resource = resource
	if err = resource.Expire(expireSeconds); err != nil {
		c.log.LogAttrs(context.TODO(), slog.LevelWarn,
			"failed to set container expiry",
			slog.Any(model.KeyLoggerError, err),
		)
	}

	hostPort := resource.GetHostPort("5432/tcp")
	host, port, err := net.SplitHostPort(hostPort)
	if err != nil {
		return fmt.Errorf("unexpected host port %q: %w", hostPort, err)
	}
	c.dsn = fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=disable",
		user, password, net.JoinHostPort(host, port), dbName)

	pool.MaxWait = maxWaitRetries
	if err = pool.Retry(c.ping); err != nil {
		return fmt.Errorf("postgres did not become ready: %w", err)
	}
	c.log.LogAttrs(context.TODO(), slog.LevelInfo, "postgres container is ready",
		slog.String("tag", tag),
		slog.String("address", hostPort),
	)
	return nil
}

func (c *Container) ping() error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	conn, err := pgx.Connect(ctx, c.dsn)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer func() { _ = conn.Close(ctx) }()
	return conn.Ping(ctx) //nolint: wrapcheck // retried by dockertest
}

func (c *Container) GetDSN() string {
	return c.dsn
}

func (c *Container) Close() {
	if c.pool == nil || c.resource == nil {
		return
	}
	if err := c.pool.Purge(c.resource); err != nil {
		c.log.LogAttrs(context.TODO(), slog.LevelError,
			"failed to purge postgres container",
			slog.Any(model.KeyLoggerError, err),
		)
	}
}

// Main starts a container, passes its DSN to setup and runs the tests.
// The teardown returned by setup runs before the container is purged.
func Main(m interface{ Run() int }, log *slog.Logger,
	setup func(dsn string) (teardown func(), err error),
) (int, error) {
	c := New(log)
	defer c.Close()
	if err := c.RunContainer(); err != nil {
		return 1, fmt.Errorf("failed to run docker container: %w", err)
	}

	if setup != nil {
		teardown, err := setup(c.GetDSN())
		if err != nil {
			return 1, fmt.Errorf("failed to prepare test database: %w", err)
		}
		if teardown != nil {
			defer teardown()
		}
	}
	return m.Run(), nil
}

type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// ExecFile runs the ;-separated statements of a SQL file one by one.
func ExecFile(ctx context.Context, conn Execer, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	for _, stmt := range strings.Split(string(content), ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err = conn.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute [%s]: %w", stmt, err)
		}
	}
	return nil
}

// imageTag reads POSTGRES_TAG from the environment or from the nearest
// .env file up the directory tree.
func imageTag() string {
	if tag := os.Getenv(tagKey); tag != "" {
		return tag
	}
	path, err := findEnvFile()
	if err != nil {
		return defaultTag
	}
	env, err := godotenv.Read(path)
	if err != nil || env[tagKey] == "" {
		return defaultTag
	}
	return env[tagKey]
}

func findEnvFile() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working dir: %w", err)
	}
	for {
		candidate := filepath.Join(dir, envFileName)
		if _, err = os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New(".env not found")
		}
		dir = parent
	}
}
