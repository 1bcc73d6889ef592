// Package ingest turns an incoming purchase into a persisted transaction,
// accrued points and any rewards it unlocks, as one account-exclusive unit.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/talx-hub/gopher-loyalty/internal/ledger"
	"github.com/talx-hub/gopher-loyalty/internal/model"
	"github.com/talx-hub/gopher-loyalty/internal/model/account"
	"github.com/talx-hub/gopher-loyalty/internal/model/reward"
	"github.com/talx-hub/gopher-loyalty/internal/model/tenant"
	"github.com/talx-hub/gopher-loyalty/internal/model/transaction"
	"github.com/talx-hub/gopher-loyalty/internal/points"
	"github.com/talx-hub/gopher-loyalty/internal/rules"
	"github.com/talx-hub/gopher-loyalty/internal/serviceerrs"
	"github.com/talx-hub/gopher-loyalty/internal/store"
	"github.com/talx-hub/gopher-loyalty/internal/utils/clock"
)

type Request struct {
	AccountExternalID string
	Currency          string
	Amount            decimal.Decimal
	Foreign           bool
}

// Validate reports every offending field at once.
func (r *Request) Validate() error {
	v := serviceerrs.NewValidationError()
	if !r.Amount.IsPositive() {
		v.Add("amount", "must be greater than 0")
	}
	if strings.TrimSpace(r.Currency) == "" {
		v.Add("currency", "can't be blank")
	}
	return v.OrNil()
}

type Result struct {
	Transaction   transaction.Transaction
	PointsEarned  decimal.Decimal
	NewBalance    decimal.Decimal
	RewardsIssued []reward.Reward
}

type Options struct {
	Location     *time.Location
	LockAttempts int
	RetryBackoff time.Duration
}

type Service struct {
	store   store.Store
	ledger  *ledger.Ledger
	engine  *rules.Engine
	clock   clock.Clock
	log     *slog.Logger
	options Options
}

func New(st store.Store, clk clock.Clock, log *slog.Logger, opts Options) *Service {
	if opts.LockAttempts <= 0 {
		opts.LockAttempts = model.DefaultLockAttempts
	}
	return &Service{
		store:   st,
		ledger:  ledger.New(log),
		engine:  rules.NewEngine(log, opts.Location),
		clock:   clk,
		log:     log,
		options: opts,
	}
}

// WithEngine swaps the rule engine.
func (s *Service) WithEngine(e *rules.Engine) *Service {
	s.engine = e
	return s
}

// Create ingests one transaction. Errors are classified with serviceerrs:
// ErrNotFound, *ValidationError, ErrResourceBusy (retryable) and
// ErrConflict/ErrInternal.
func (s *Service) Create(ctx context.Context, t tenant.Context, req Request) (Result, error) {
	if t.IsZero() {
		return Result{}, serviceerrs.ErrNotFound
	}
	acc, err := s.store.FindAccount(ctx, t, req.AccountExternalID)
	if err != nil {
		return Result{}, s.classify(ctx, t, "failed to resolve account", err)
	}
	if err = req.Validate(); err != nil {
		return Result{}, err
	}

	earned := points.Compute(req.Amount, req.Foreign)

	unit := func() (Result, error) {
		return s.createUnit(ctx, t, acc.ID, req, earned)
	}
	res, err := withBusyRetry(ctx, unit, s.options.LockAttempts, s.options.RetryBackoff)
	if err != nil {
		return Result{}, s.classify(ctx, t, "failed to ingest transaction", err)
	}

	s.log.LogAttrs(ctx, slog.LevelInfo, "transaction ingested",
		slog.String("tenant", t.ID),
		slog.Int64("account_id", acc.ID),
		slog.String("transaction_id", res.Transaction.ID.String()),
		slog.String("points", earned.String()),
		slog.Int("rewards", len(res.RewardsIssued)),
	)
	return res, nil
}

func (s *Service) createUnit(ctx context.Context, t tenant.Context, accountID int64,
	req Request, earned decimal.Decimal,
) (Result, error) {
	var res Result
	err := s.store.InTx(ctx, func(ctx context.Context, sess store.Session) error {
		acc, err := s.ledger.Acquire(ctx, sess, t, accountID)
		if err != nil {
			return err
		}
		now := s.clock.Now()

		tx := transaction.Transaction{
			ID:           uuid.New(),
			TenantID:     t.ID,
			AccountID:    accountID,
			Amount:       req.Amount,
			Currency:     strings.ToUpper(strings.TrimSpace(req.Currency)),
			Foreign:      req.Foreign,
			PointsEarned: earned,
			CreatedAt:    now,
		}
		if err = sess.AppendTransaction(ctx, &tx); err != nil {
			return fmt.Errorf("failed to append transaction: %w", err)
		}

		balance, err := s.ledger.Accrue(ctx, sess, t, &acc, earned)
		if err != nil {
			return err
		}

		issued, err := s.issue(ctx, sess, t, &acc, &tx, now)
		if err != nil {
			return err
		}

		res = Result{
			Transaction:   tx,
			PointsEarned:  earned,
			NewBalance:    balance,
			RewardsIssued: issued,
		}
		return nil
	})
	return res, err //nolint: wrapcheck // error from wrapped function
}

// IssuePeriodic evaluates the rules that need no transaction (birthday)
// under the account's exclusion and persists what they produce.
func (s *Service) IssuePeriodic(ctx context.Context, t tenant.Context, accountID int64,
) ([]reward.Reward, error) {
	unit := func() ([]reward.Reward, error) {
		var issued []reward.Reward
		err := s.store.InTx(ctx, func(ctx context.Context, sess store.Session) error {
			acc, err := s.ledger.Acquire(ctx, sess, t, accountID)
			if err != nil {
				return err
			}
			issued, err = s.issue(ctx, sess, t, &acc, nil, s.clock.Now())
			return err
		})
		return issued, err //nolint: wrapcheck // error from wrapped function
	}

	issued, err := withBusyRetry(ctx, unit, s.options.LockAttempts, s.options.RetryBackoff)
	if err != nil {
		return nil, s.classify(ctx, t, "failed to issue periodic rewards", err)
	}
	return issued, nil
}

func (s *Service) issue(ctx context.Context, sess store.Session, t tenant.Context,
	acc *account.Account, tx *transaction.Transaction, now time.Time,
) ([]reward.Reward, error) {
	var intents []rules.Intent
	var err error
	if tx == nil {
		intents, err = s.engine.EvaluatePeriodic(ctx, sess, t, acc, now)
	} else {
		intents, err = s.engine.Evaluate(ctx, sess, t, acc, tx, now)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate rules: %w", err)
	}

	issued := make([]reward.Reward, 0, len(intents))
	for _, intent := range intents {
		r := intent.Reward(acc)
		r.ID = uuid.New()
		if err = sess.InsertReward(ctx, &r); err != nil {
			return nil, fmt.Errorf("failed to insert %s reward: %w", r.Tag, err)
		}
		issued = append(issued, r)
	}
	return issued, nil
}

// classify maps store failures onto the public taxonomy. Conflicts are
// bugs: they are logged and surfaced as internal errors.
func (s *Service) classify(ctx context.Context, t tenant.Context, msg string, err error) error {
	switch {
	case errors.Is(err, serviceerrs.ErrNotFound):
		return serviceerrs.ErrNotFound
	case errors.Is(err, serviceerrs.ErrValidation),
		errors.Is(err, serviceerrs.ErrResourceBusy):
		return fmt.Errorf("%s: %w", msg, err)
	case errors.Is(err, serviceerrs.ErrConflict):
		s.log.LogAttrs(ctx, slog.LevelError, "invariant violated: "+msg,
			slog.String("tenant", t.ID),
			slog.Any(model.KeyLoggerError, err),
		)
		return fmt.Errorf("%s: %w", msg, errors.Join(serviceerrs.ErrInternal, serviceerrs.ErrConflict))
	default:
		s.log.LogAttrs(ctx, slog.LevelError, msg,
			slog.String("tenant", t.ID),
			slog.Any(model.KeyLoggerError, err),
		)
		return fmt.Errorf("%s: %w", msg, serviceerrs.ErrInternal)
	}
}

// withBusyRetry reruns the whole unit while it fails with ErrResourceBusy,
// up to attempts times.
func withBusyRetry[T any](ctx context.Context, unit func() (T, error),
	attempts int, backoff time.Duration,
) (T, error) {
	var zero T
	var err error
	for attempt := range attempts {
		var res T
		res, err = unit()
		if err == nil {
			return res, nil
		}
		if !serviceerrs.IsRetryable(err) {
			return zero, err
		}
		if attempt == attempts-1 || backoff <= 0 {
			continue
		}
		timer := time.NewTimer(backoff * time.Duration(attempt+1))
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, err
		case <-timer.C:
		}
	}
	return zero, fmt.Errorf("gave up after %d attempts: %w", attempts, err)
}
