// Package sweeper runs the periodic maintenance loop: it expires due
// rewards and issues birthday rewards to accounts that had no transaction
// this month.
package sweeper

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/talx-hub/gopher-loyalty/internal/model"
	"github.com/talx-hub/gopher-loyalty/internal/model/account"
	"github.com/talx-hub/gopher-loyalty/internal/service/sweeper/internal/workerpool"
	"github.com/talx-hub/gopher-loyalty/internal/utils/clock"
	"github.com/talx-hub/gopher-loyalty/internal/utils/semaphore"
)

type Expirer interface {
	ExpireDue(ctx context.Context, now time.Time) (int64, error)
}

type BirthdayLister interface {
	ListAccountsByBirthMonth(ctx context.Context, month time.Month) ([]account.Account, error)
}

type Options struct {
	Location    *time.Location
	Interval    time.Duration
	Workers     int
	MaxInFlight uint64
}

// Report summarises one sweep.
type Report struct {
	Expired  int64
	Accounts int
	Issued   int
	Failed   int
}

type Sweeper struct {
	expirer Expirer
	lister  BirthdayLister
	issuer  workerpool.PeriodicIssuer
	clock   clock.Clock
	sema    *semaphore.Semaphore
	log     *slog.Logger
	options Options
}

func New(expirer Expirer, lister BirthdayLister, issuer workerpool.PeriodicIssuer,
	clk clock.Clock, log *slog.Logger, opts Options,
) *Sweeper {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.MaxInFlight == 0 {
		opts.MaxInFlight = model.DefaultSweepInFlight
	}
	return &Sweeper{
		expirer: expirer,
		lister:  lister,
		issuer:  issuer,
		clock:   clk,
		sema:    semaphore.New(opts.MaxInFlight),
		log:     log,
		options: opts,
	}
}

// Run sweeps once immediately and then every Interval until ctx is done.
func (s *Sweeper) Run(ctx context.Context) {
	if s.options.Interval <= 0 {
		s.log.LogAttrs(ctx, slog.LevelInfo, "sweeper disabled")
		return
	}
	ticker := time.NewTicker(s.options.Interval)
	defer ticker.Stop()

	for {
		s.sweepAndLog(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *Sweeper) sweepAndLog(ctx context.Context) {
	report, err := s.Sweep(ctx)
	if err != nil {
		s.log.LogAttrs(ctx, slog.LevelError, "sweep failed",
			slog.Any(model.KeyLoggerError, err))
		return
	}
	s.log.LogAttrs(ctx, slog.LevelInfo, "sweep finished",
		slog.Int64("expired", report.Expired),
		slog.Int("accounts", report.Accounts),
		slog.Int("issued", report.Issued),
		slog.Int("failed", report.Failed),
	)
}

// Sweep performs one pass.
func (s *Sweeper) Sweep(ctx context.Context) (Report, error) {
	now := s.clock.Now()
	var report Report

	expired, err := s.expirer.ExpireDue(ctx, now)
	if err != nil {
		return report, fmt.Errorf("failed to expire rewards: %w", err)
	}
	report.Expired = expired

	month := now.In(s.options.Location).Month()
	accounts, err := s.lister.ListAccountsByBirthMonth(ctx, month)
	if err != nil {
		return report, fmt.Errorf("failed to list %s birthdays: %w", month, err)
	}
	report.Accounts = len(accounts)
	if len(accounts) == 0 {
		return report, nil
	}

	jobs := make(chan account.Account)
	results := make(chan workerpool.Result)
	pool := workerpool.New(s.issuer, s.sema, jobs, results, s.log)
	if s.options.Workers > 0 {
		pool.Workers = min(s.options.Workers, len(accounts))
	}
	cancel := pool.Start(ctx)
	defer cancel()

	go func() {
		defer close(jobs)
		for _, acc := range accounts {
			select {
			case <-ctx.Done():
				return
			case jobs <- acc:
			}
		}
	}()
	go func() {
		pool.Wait()
		close(results)
	}()

	for res := range results {
		report.Issued += res.Issued
		if res.Err != nil {
			report.Failed++
		}
	}
	if err = ctx.Err(); err != nil {
		return report, fmt.Errorf("sweep interrupted: %w", err)
	}
	return report, nil
}
