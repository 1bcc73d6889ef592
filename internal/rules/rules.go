// Package rules decides which rewards a snapshot of an account earns.
//
// The engine never writes. It reads aggregates and existing rewards through
// a store.Snapshot and returns Intents; the caller persists them inside the
// same unit that holds the account's exclusion, so every decision is made
// against the post-accrual state.
package rules

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/talx-hub/gopher-loyalty/internal/model/account"
	"github.com/talx-hub/gopher-loyalty/internal/model/reward"
	"github.com/talx-hub/gopher-loyalty/internal/model/tenant"
	"github.com/talx-hub/gopher-loyalty/internal/model/transaction"
	"github.com/talx-hub/gopher-loyalty/internal/store"
)

const (
	CoffeeExpiry       = 30 * 24 * time.Hour
	MovieTicketsExpiry = 60 * 24 * time.Hour
)

// Intent is a reward the engine wants issued.
type Intent struct {
	IssuedAt    time.Time
	ExpiresAt   time.Time
	Type        reward.Type
	Tag         reward.Tag
	Description string
	Bucket      string
}

// Reward materialises the intent for an account.
func (i Intent) Reward(acc *account.Account) reward.Reward {
	expires := i.ExpiresAt
	return reward.Reward{
		TenantID:    acc.TenantID,
		AccountID:   acc.ID,
		Type:        i.Type,
		Tag:         i.Tag,
		Description: i.Description,
		Status:      reward.StatusActive,
		DedupeKey:   reward.DedupeKey(i.Tag, i.Bucket),
		IssuedAt:    i.IssuedAt,
		ExpiresAt:   &expires,
	}
}

// Input is what a rule sees. Transaction is nil for periodic evaluation.
type Input struct {
	Now         time.Time
	Account     *account.Account
	Transaction *transaction.Transaction
	Tenant      tenant.Context
}

type Rule interface {
	Tag() reward.Tag
	// Periodic rules may also run without a triggering transaction.
	Periodic() bool
	Evaluate(ctx context.Context, snap store.Snapshot, in Input) (*Intent, error)
}

type Engine struct {
	log   *slog.Logger
	loc   *time.Location
	rules []Rule
}

// NewEngine builds the engine with the standard rule set. loc fixes the
// calendar used for monthly windows; nil means UTC.
func NewEngine(log *slog.Logger, loc *time.Location) *Engine {
	if loc == nil {
		loc = time.UTC
	}
	return &Engine{
		log: log,
		loc: loc,
		rules: []Rule{
			MonthlyPointsRule{Threshold: MonthlyPointsThreshold},
			BirthdayRule{},
			NewAccountSpendRule{Threshold: NewAccountSpendThreshold},
		},
	}
}

// WithRules replaces the rule set.
func (e *Engine) WithRules(rules ...Rule) *Engine {
	e.rules = rules
	return e
}

// Evaluate runs every rule against the account after tx has been applied.
func (e *Engine) Evaluate(ctx context.Context, snap store.Snapshot, t tenant.Context,
	acc *account.Account, tx *transaction.Transaction, now time.Time,
) ([]Intent, error) {
	return e.run(ctx, snap, Input{
		Now:         now.In(e.loc),
		Account:     acc,
		Transaction: tx,
		Tenant:      t,
	}, false)
}

// EvaluatePeriodic runs only the rules that do not need a transaction.
func (e *Engine) EvaluatePeriodic(ctx context.Context, snap store.Snapshot, t tenant.Context,
	acc *account.Account, now time.Time,
) ([]Intent, error) {
	return e.run(ctx, snap, Input{
		Now:     now.In(e.loc),
		Account: acc,
		Tenant:  t,
	}, true)
}

func (e *Engine) run(ctx context.Context, snap store.Snapshot, in Input, periodicOnly bool,
) ([]Intent, error) {
	var intents []Intent
	for _, r := range e.rules {
		if periodicOnly && !r.Periodic() {
			continue
		}
		intent, err := r.Evaluate(ctx, snap, in)
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", r.Tag(), err)
		}
		if intent == nil {
			continue
		}
		e.log.LogAttrs(ctx, slog.LevelInfo, "reward earned",
			slog.String("tenant", in.Tenant.ID),
			slog.Int64("account_id", in.Account.ID),
			slog.String("rule", string(r.Tag())),
			slog.String("type", string(intent.Type)),
		)
		intents = append(intents, *intent)
	}
	return intents, nil
}

// MonthWindow is the calendar month of t in t's location, both ends inclusive.
func MonthWindow(t time.Time) reward.Window {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return reward.Window{
		From: start,
		To:   start.AddDate(0, 1, 0).Add(-time.Nanosecond),
	}
}
