package repo

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/talx-hub/gopher-loyalty/internal/model"
	"github.com/talx-hub/gopher-loyalty/internal/model/account"
	"github.com/talx-hub/gopher-loyalty/internal/model/reward"
	"github.com/talx-hub/gopher-loyalty/internal/model/tenant"
	"github.com/talx-hub/gopher-loyalty/internal/model/transaction"
	"github.com/talx-hub/gopher-loyalty/internal/repo/internal/db"
	"github.com/talx-hub/gopher-loyalty/internal/serviceerrs"
	"github.com/talx-hub/gopher-loyalty/internal/store"
)

const accountsExternalConstraint = "accounts_tenant_external_uidx"

// Store is the postgres store.Store. Per-account exclusion is a row lock
// (SELECT ... FOR UPDATE) bounded by a transaction-local lock_timeout.
type Store struct {
	DB
	lockTimeout time.Duration
}

var _ store.Store = (*Store)(nil)

func NewStore(pool connectionPool, log *slog.Logger, lockTimeout time.Duration) *Store {
	if lockTimeout <= 0 {
		lockTimeout = model.DefaultLockTimeout
	}
	return &Store{
		DB: DB{
			pool: pool,
			log:  log,
		},
		lockTimeout: lockTimeout,
	}
}

func (s *Store) FindAccount(ctx context.Context, t tenant.Context, externalID string,
) (account.Account, error) {
	if t.IsZero() || externalID == "" {
		return account.Account{}, serviceerrs.ErrNotFound
	}

	findLogic := func() (account.Account, error) {
		raw, err := db.New(s.pool).FindAccountByExternalID(ctx, db.FindAccountByExternalIDParams{
			TenantID:   t.ID,
			ExternalID: externalID,
		})
		if err != nil {
			return account.Account{}, classify(err)
		}
		return toAccount(&raw)
	}

	return WithRetry[account.Account](findLogic, 0) //nolint: wrapcheck // error from wrapped function
}

// ListAccounts returns the tenant's accounts ordered by id.
func (s *Store) ListAccounts(ctx context.Context, t tenant.Context) ([]account.Account, error) {
	if t.IsZero() {
		return nil, nil
	}

	listLogic := func() ([]account.Account, error) {
		raw, err := db.New(s.pool).ListAccountsByTenant(ctx, t.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list accounts: %w", err)
		}
		return toAccounts(raw)
	}

	return WithRetry[[]account.Account](listLogic, 0) //nolint: wrapcheck // error from wrapped function
}

func (s *Store) CreateAccount(ctx context.Context, t tenant.Context, a *account.Account) error {
	if t.IsZero() {
		return fmt.Errorf("failed to create account: %w", tenant.ErrEmptyTenant)
	}
	points := model.RoundPoints(a.Points)

	createLogic := func() (int64, error) {
		return db.New(s.pool).CreateAccount(ctx, db.CreateAccountParams{ //nolint: wrapcheck // classified below
			TenantID:    t.ID,
			ExternalID:  a.ExternalID,
			BirthDate:   pgDate(a.BirthDate),
			JoiningDate: pgTime(a.JoiningDate),
			Points:      model.ToPGNumeric(points),
		})
	}
	id, err := WithRetry[int64](createLogic, 0)
	if isUniqueViolation(err, accountsExternalConstraint) {
		v := serviceerrs.NewValidationError()
		v.Add("user_id", "has already been taken")
		return v
	}
	if err != nil {
		return fmt.Errorf("failed to create account in DB: %w", err)
	}

	a.ID = id
	a.TenantID = t.ID
	a.Points = points
	return nil
}

func (s *Store) InTx(ctx context.Context, fn func(ctx context.Context, s store.Session) error) error {
	unit := func(ctx context.Context, tx connectionPool) (any, error) {
		queries := db.New(tx)
		if err := queries.SetLockTimeout(ctx, lockTimeoutSetting(s.lockTimeout)); err != nil {
			return struct{}{}, fmt.Errorf("failed to set lock timeout: %w", err)
		}
		sess := &session{
			queries: queries,
			log:     s.log,
			held:    make(map[int64]struct{}),
		}
		if err := fn(ctx, sess); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	}

	_, err := WithTX[struct{}](ctx, s.pool, s.log, unit)
	return classify(err)
}

func (s *Store) ListRewards(ctx context.Context, t tenant.Context, accountID int64,
) ([]reward.Reward, error) {
	listLogic := func() ([]reward.Reward, error) {
		queries := db.New(s.pool)
		// existence first so an empty list and a foreign account differ
		if _, err := s.lookup(ctx, queries, t, accountID); err != nil {
			return nil, err
		}
		raw, err := queries.ListRewardsByAccount(ctx, db.ListRewardsByAccountParams{
			AccountID: accountID,
			TenantID:  t.ID,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list rewards of account %d: %w", accountID, err)
		}
		out := make([]reward.Reward, len(raw))
		for i := range raw {
			out[i] = toReward(&raw[i])
		}
		return out, nil
	}

	return WithRetry[[]reward.Reward](listLogic, 0) //nolint: wrapcheck // error from wrapped function
}

// lookup checks the account belongs to t without locking it.
func (s *Store) lookup(ctx context.Context, q *db.Queries, t tenant.Context, accountID int64,
) (account.Account, error) {
	raw, err := q.GetAccount(ctx, db.GetAccountParams{ID: accountID, TenantID: t.ID})
	if err != nil {
		return account.Account{}, classify(err)
	}
	return toAccount(&raw)
}

func (s *Store) TransitionReward(ctx context.Context, t tenant.Context, accountID int64,
	rewardID uuid.UUID, to reward.Status,
) (reward.Reward, error) {
	var out reward.Reward
	err := s.InTx(ctx, func(ctx context.Context, sess store.Session) error {
		if _, err := sess.LockAccount(ctx, t, accountID); err != nil {
			return err
		}
		queries := sess.(*session).queries

		current, err := queries.GetRewardForUpdate(ctx, db.GetRewardForUpdateParams{
			ID:        pgUUID(rewardID),
			AccountID: accountID,
			TenantID:  t.ID,
		})
		if err != nil {
			return classify(err)
		}
		from := reward.Status(current.Status)
		if !from.CanTransitionTo(to) {
			return fmt.Errorf("%s -> %s: %w", from, to, serviceerrs.ErrInvalidTransition)
		}

		updated, err := queries.UpdateRewardStatus(ctx, db.UpdateRewardStatusParams{
			ID:     current.ID,
			Status: string(to),
		})
		if err != nil {
			return fmt.Errorf("failed to update reward %s: %w", rewardID, classify(err))
		}
		out = toReward(&updated)
		return nil
	})
	if err != nil {
		return reward.Reward{}, err
	}
	return out, nil
}

func (s *Store) ExpireRewards(ctx context.Context, now time.Time) (int64, error) {
	expireLogic := func() (int64, error) {
		tag, err := db.New(s.pool).ExpireRewards(ctx, pgTime(now))
		if err != nil {
			return 0, fmt.Errorf("failed to expire rewards: %w", classify(err))
		}
		return tag.RowsAffected(), nil
	}

	return WithRetry[int64](expireLogic, 0) //nolint: wrapcheck // error from wrapped function
}

func (s *Store) ListAccountsByBirthMonth(ctx context.Context, month time.Month,
) ([]account.Account, error) {
	listLogic := func() ([]account.Account, error) {
		raw, err := db.New(s.pool).ListAccountsByBirthMonth(ctx, int32(month))
		if err != nil {
			return nil, fmt.Errorf("failed to list accounts born in %s: %w", month, err)
		}
		return toAccounts(raw)
	}

	return WithRetry[[]account.Account](listLogic, 0) //nolint: wrapcheck // error from wrapped function
}

// Transactions returns the persisted transactions of an account, oldest first.
func (s *Store) Transactions(ctx context.Context, t tenant.Context, accountID int64,
) ([]transaction.Transaction, error) {
	raw, err := db.New(s.pool).ListTransactionsByAccount(ctx, db.ListTransactionsByAccountParams{
		AccountID: accountID,
		TenantID:  t.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions of account %d: %w", accountID, err)
	}
	out := make([]transaction.Transaction, len(raw))
	for i := range raw {
		if out[i], err = toTransaction(&raw[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func lockTimeoutSetting(d time.Duration) string {
	ms := d.Milliseconds()
	if ms <= 0 {
		ms = 1
	}
	return strconv.FormatInt(ms, 10) + "ms"
}
