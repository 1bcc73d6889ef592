// Package store declares the persistence contracts the core calls into.
//
// Two implementations exist: internal/repo (postgres) and
// internal/repo/memory. Every method is scoped by an explicit tenant.Context;
// an account that belongs to another tenant is reported as
// serviceerrs.ErrNotFound exactly like a missing one.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/talx-hub/gopher-loyalty/internal/model/account"
	"github.com/talx-hub/gopher-loyalty/internal/model/reward"
	"github.com/talx-hub/gopher-loyalty/internal/model/tenant"
	"github.com/talx-hub/gopher-loyalty/internal/model/transaction"
)

// Snapshot is the read side of a Session that rules evaluate against.
type Snapshot interface {
	SumPoints(ctx context.Context, t tenant.Context, accountID int64, w reward.Window) (decimal.Decimal, error)
	SumAmount(ctx context.Context, t tenant.Context, accountID int64, w reward.Window) (decimal.Decimal, error)
	RewardExists(ctx context.Context, t tenant.Context, f reward.Filter) (bool, error)
}

// Session is one atomic unit. Writes become visible to other sessions only
// when the enclosing InTx commits.
type Session interface {
	Snapshot

	// LockAccount takes the per-account exclusion and returns the account
	// as seen under the lock. It fails with serviceerrs.ErrResourceBusy when
	// the lock cannot be obtained within the store's lock timeout. Calling
	// it again for a held account is a no-op re-read.
	LockAccount(ctx context.Context, t tenant.Context, accountID int64) (account.Account, error)
	UpdateBalance(ctx context.Context, t tenant.Context, accountID int64, balance decimal.Decimal) error
	AppendTransaction(ctx context.Context, tx *transaction.Transaction) error
	InsertReward(ctx context.Context, r *reward.Reward) error
}

type Store interface {
	FindAccount(ctx context.Context, t tenant.Context, externalID string) (account.Account, error)
	CreateAccount(ctx context.Context, t tenant.Context, a *account.Account) error
	// ListAccounts returns the tenant's accounts ordered by id.
	ListAccounts(ctx context.Context, t tenant.Context) ([]account.Account, error)

	// InTx runs fn as one atomic unit: committed when fn returns nil,
	// rolled back otherwise. Account locks taken inside are released on
	// every exit path.
	InTx(ctx context.Context, fn func(ctx context.Context, s Session) error) error

	ListRewards(ctx context.Context, t tenant.Context, accountID int64) ([]reward.Reward, error)
	TransitionReward(ctx context.Context, t tenant.Context, accountID int64,
		rewardID uuid.UUID, to reward.Status) (reward.Reward, error)
	ExpireRewards(ctx context.Context, now time.Time) (int64, error)

	// ListAccountsByBirthMonth walks every tenant; the returned accounts
	// carry their TenantID so callers can rebuild the scope per job.
	ListAccountsByBirthMonth(ctx context.Context, month time.Month) ([]account.Account, error)
}
