// Package ledger owns per-account balance mutation.
//
// The read-add-write of a balance always happens while the unit holds the
// account's exclusion, so concurrent accruals for one account are
// linearized and none is lost. Accounts never share a lock.
package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/talx-hub/gopher-loyalty/internal/model"
	"github.com/talx-hub/gopher-loyalty/internal/model/account"
	"github.com/talx-hub/gopher-loyalty/internal/model/tenant"
	"github.com/talx-hub/gopher-loyalty/internal/store"
)

type Ledger struct {
	log *slog.Logger
}

func New(log *slog.Logger) *Ledger {
	return &Ledger{log: log}
}

// Acquire takes the account's exclusion for the rest of the session.
func (l *Ledger) Acquire(ctx context.Context, s store.Session, t tenant.Context, accountID int64,
) (account.Account, error) {
	acc, err := s.LockAccount(ctx, t, accountID)
	if err != nil {
		return account.Account{}, fmt.Errorf("failed to acquire account %d: %w", accountID, err)
	}
	l.log.LogAttrs(ctx, slog.LevelDebug, "account locked",
		slog.String("tenant", t.ID), slog.Int64("account_id", accountID))
	return acc, nil
}

// Accrue adds delta to acc, which the session must already hold through
// Acquire, writes the new balance and returns it. acc.Points is updated
// in place so rules evaluated later in the unit see the new balance.
func (l *Ledger) Accrue(ctx context.Context, s store.Session, t tenant.Context, acc *account.Account,
	delta decimal.Decimal,
) (decimal.Decimal, error) {
	balance := model.RoundPoints(acc.Points.Add(delta))
	if err := s.UpdateBalance(ctx, t, acc.ID, balance); err != nil {
		return decimal.Zero, fmt.Errorf("failed to write balance for account %d: %w", acc.ID, err)
	}
	acc.Points = balance
	l.log.LogAttrs(ctx, slog.LevelDebug, "points accrued",
		slog.Int64("account_id", acc.ID),
		slog.String("delta", delta.String()),
		slog.String("balance", balance.String()),
	)
	return balance, nil
}
