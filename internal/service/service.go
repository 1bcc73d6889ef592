package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/talx-hub/gopher-loyalty/internal/api/handlers"
	"github.com/talx-hub/gopher-loyalty/internal/ingest"
	"github.com/talx-hub/gopher-loyalty/internal/model"
	"github.com/talx-hub/gopher-loyalty/internal/repo"
	"github.com/talx-hub/gopher-loyalty/internal/repo/memory"
	"github.com/talx-hub/gopher-loyalty/internal/rewards"
	"github.com/talx-hub/gopher-loyalty/internal/router"
	"github.com/talx-hub/gopher-loyalty/internal/service/config"
	"github.com/talx-hub/gopher-loyalty/internal/service/dbmanager"
	"github.com/talx-hub/gopher-loyalty/internal/service/sweeper"
	"github.com/talx-hub/gopher-loyalty/internal/store"
	"github.com/talx-hub/gopher-loyalty/internal/utils/auth"
	"github.com/talx-hub/gopher-loyalty/internal/utils/clock"
	"github.com/talx-hub/gopher-loyalty/internal/utils/logger"
)

const dotEnvPath = ".env"

// memoryHealth reports the in-memory store as always reachable.
type memoryHealth struct{}

func (memoryHealth) CheckHealth(context.Context) error {
	return nil
}

type app struct {
	server    *http.Server
	sweeper   *sweeper.Sweeper
	dbManager *dbmanager.DBManager
	log       *slog.Logger
}

func (a *app) close() {
	if a.dbManager != nil {
		a.dbManager.Close()
	}
}

// openStore picks postgres when a DSN is configured and the in-memory
// store otherwise.
func openStore(ctx context.Context, cfg *config.Config, log *slog.Logger,
) (store.Store, handlers.HealthChecker, *dbmanager.DBManager, error) {
	if cfg.DatabaseURI == "" {
		log.LogAttrs(ctx, slog.LevelWarn, "DATABASE_URI is empty: using in-memory storage")
		return memory.New(cfg.LockTimeout), memoryHealth{}, nil, nil
	}

	const connectTO = 5 * time.Second
	ctx, cancel := context.WithTimeout(ctx, connectTO)
	defer cancel()

	// Every request waiting on an account lock holds a connection.
	maxConns := int32(min(cfg.SweepMaxInFlight+16, 256)) //nolint:gosec // bounded above
	dbManager := dbmanager.New(cfg.DatabaseURI, log).
		WithMaxConns(maxConns).
		Connect(ctx).
		Ping(ctx).
		ApplyMigrations(ctx)
	if err := dbManager.Error(); err != nil {
		dbManager.Close()
		return nil, nil, nil, fmt.Errorf("db connection error: %w", err)
	}
	pool, err := dbManager.GetPool(ctx)
	if err != nil {
		dbManager.Close()
		return nil, nil, nil, fmt.Errorf("failed to get DB pool: %w", err)
	}
	return repo.NewStore(pool, log, cfg.LockTimeout), dbManager, dbManager, nil
}

func initService(ctx context.Context, cfg *config.Config, log *slog.Logger) (*app, error) {
	st, health, dbManager, err := openStore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	clk := clock.Real{}
	ingester := ingest.New(st, clk, log, ingest.Options{
		Location:     cfg.Location(),
		LockAttempts: cfg.LockAttempts,
		RetryBackoff: model.DefaultRetryBackoff,
	})
	rewardService := rewards.New(st, log)

	sw := sweeper.New(rewardService, st, ingester, clk, log, sweeper.Options{
		Location:    cfg.Location(),
		Interval:    cfg.SweepInterval,
		Workers:     cfg.SweepWorkers,
		MaxInFlight: cfg.SweepMaxInFlight,
	})

	rr := router.New([]byte(cfg.SecretKey), log)
	rr.SetRouter(&struct {
		*handlers.AccountHandler
		*handlers.TransactionHandler
		*handlers.RewardHandler
		*handlers.HealthHandler
	}{
		AccountHandler:     handlers.NewAccountHandler(st, clk, log),
		TransactionHandler: handlers.NewTransactionHandler(ingester, log),
		RewardHandler:      handlers.NewRewardHandler(rewardService, log),
		HealthHandler:      handlers.NewHealthHandler(health),
	})

	const readHeaderTO = 5 * time.Second
	return &app{
		server: &http.Server{
			Addr:              cfg.RunAddr,
			Handler:           rr.GetRouter(),
			ReadHeaderTimeout: readHeaderTO,
		},
		sweeper:   sw,
		dbManager: dbManager,
		log:       log,
	}, nil
}

// run serves until ctx is canceled, then drains in-flight requests.
func (a *app) run(ctx context.Context) error {
	defer a.close()

	sweepDone := make(chan struct{})
	go func() {
		defer close(sweepDone)
		a.sweeper.Run(ctx)
	}()

	serveErr := make(chan error, 1)
	go func() {
		a.log.LogAttrs(ctx, slog.LevelInfo, "server started", slog.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var err error
	select {
	case <-ctx.Done():
	case err = <-serveErr:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), model.DefaultShutdownTimeout)
	defer cancel()
	if shutdownErr := a.server.Shutdown(shutdownCtx); shutdownErr != nil {
		a.log.LogAttrs(shutdownCtx,
			slog.LevelError,
			"failed to shut down server gracefully",
			slog.Any(model.KeyLoggerError, shutdownErr),
		)
	}
	<-sweepDone
	a.log.LogAttrs(shutdownCtx, slog.LevelInfo, "server stopped")
	return err
}

func issueToken(cfg *config.Config) error {
	token, err := auth.BuildJWTString(cfg.IssueTokenFor, []byte(cfg.SecretKey), auth.TokenExpire)
	if err != nil {
		return fmt.Errorf("failed to issue token: %w", err)
	}
	_, err = fmt.Fprintln(os.Stdout, token)
	return err //nolint:wrapcheck // stdout write
}

func RunServer() error {
	bootLog := slog.Default()
	builder := config.NewBuilder(bootLog).
		FromDotEnv(dotEnvPath).
		FromEnv().
		FromFlags().
		Validate()
	if err := builder.Error(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	cfg := builder.GetConfig()

	if cfg.IssueTokenFor != "" {
		return issueToken(cfg)
	}

	log := logger.New(logger.ParseLevel(cfg.LogLevel))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := initService(ctx, cfg, log)
	if err != nil {
		log.LogAttrs(ctx,
			slog.LevelError,
			"failed to init service",
			slog.Any(model.KeyLoggerError, err),
		)
		return err
	}
	return a.run(ctx)
}
