package memory

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/talx-hub/gopher-loyalty/internal/model"
	"github.com/talx-hub/gopher-loyalty/internal/model/account"
	"github.com/talx-hub/gopher-loyalty/internal/model/reward"
	"github.com/talx-hub/gopher-loyalty/internal/model/tenant"
	"github.com/talx-hub/gopher-loyalty/internal/model/transaction"
	"github.com/talx-hub/gopher-loyalty/internal/serviceerrs"
	"github.com/talx-hub/gopher-loyalty/internal/utils/semaphore"
)

var errNotLocked = errors.New("account is not locked by this unit")

type session struct {
	store        *Store
	held         map[int64]*semaphore.Semaphore
	balances     map[int64]decimal.Decimal
	transactions []transaction.Transaction
	rewards      []reward.Reward
}

func (s *session) release() {
	for _, l := range s.held {
		l.Release()
	}
	s.held = nil
}

func (s *session) commit() error {
	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()

	for id, balance := range s.balances {
		a := st.accounts[id]
		a.Points = balance
		st.accounts[id] = a
	}
	for _, tx := range s.transactions {
		st.transactions[tx.AccountID] = append(st.transactions[tx.AccountID], tx)
	}
	for _, r := range s.rewards {
		st.rewards[r.AccountID] = append(st.rewards[r.AccountID], r)
	}
	return nil
}

func (s *session) owned(t tenant.Context, accountID int64) (account.Account, error) {
	s.store.mu.RLock()
	a, ok := s.store.accounts[accountID]
	s.store.mu.RUnlock()
	if !ok || a.TenantID != t.ID {
		return account.Account{}, serviceerrs.ErrNotFound
	}
	if b, staged := s.balances[accountID]; staged {
		a.Points = b
	}
	return a, nil
}

func (s *session) LockAccount(ctx context.Context, t tenant.Context, accountID int64,
) (account.Account, error) {
	if _, err := s.owned(t, accountID); err != nil {
		return account.Account{}, err
	}
	if _, ok := s.held[accountID]; !ok {
		lock := s.store.lockFor(accountID)
		if err := lock.Acquire(ctx, s.store.lockTimeout); err != nil {
			return account.Account{}, busy(accountID, err)
		}
		s.held[accountID] = lock
	}
	// re-read: the balance may have been committed while we waited
	return s.owned(t, accountID)
}

func (s *session) requireHeld(t tenant.Context, accountID int64) error {
	if _, err := s.owned(t, accountID); err != nil {
		return err
	}
	if _, ok := s.held[accountID]; !ok {
		return fmt.Errorf("account %d: %w", accountID, errNotLocked)
	}
	return nil
}

func (s *session) UpdateBalance(_ context.Context, t tenant.Context, accountID int64,
	balance decimal.Decimal,
) error {
	if err := s.requireHeld(t, accountID); err != nil {
		return err
	}
	s.balances[accountID] = model.RoundPoints(balance)
	return nil
}

func (s *session) AppendTransaction(_ context.Context, tx *transaction.Transaction) error {
	t := tenant.Context{ID: tx.TenantID}
	if err := s.requireHeld(t, tx.AccountID); err != nil {
		return err
	}
	s.transactions = append(s.transactions, *tx)
	return nil
}

func (s *session) SumPoints(_ context.Context, t tenant.Context, accountID int64,
	w reward.Window,
) (decimal.Decimal, error) {
	return s.sum(t, accountID, w, func(tx *transaction.Transaction) decimal.Decimal {
		return tx.PointsEarned
	})
}

func (s *session) SumAmount(_ context.Context, t tenant.Context, accountID int64,
	w reward.Window,
) (decimal.Decimal, error) {
	return s.sum(t, accountID, w, func(tx *transaction.Transaction) decimal.Decimal {
		return tx.Amount
	})
}

func (s *session) sum(t tenant.Context, accountID int64, w reward.Window,
	field func(*transaction.Transaction) decimal.Decimal,
) (decimal.Decimal, error) {
	if _, err := s.owned(t, accountID); err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	add := func(tx *transaction.Transaction) {
		if tx.AccountID == accountID && w.Contains(tx.CreatedAt) {
			total = total.Add(field(tx))
		}
	}

	s.store.mu.RLock()
	committed := s.store.transactions[accountID]
	for i := range committed {
		add(&committed[i])
	}
	s.store.mu.RUnlock()

	for i := range s.transactions {
		add(&s.transactions[i])
	}
	return total, nil
}

func (s *session) RewardExists(_ context.Context, t tenant.Context, f reward.Filter,
) (bool, error) {
	if _, err := s.owned(t, f.AccountID); err != nil {
		return false, err
	}

	s.store.mu.RLock()
	committed := s.store.rewards[f.AccountID]
	for i := range committed {
		if f.Matches(&committed[i]) {
			s.store.mu.RUnlock()
			return true, nil
		}
	}
	s.store.mu.RUnlock()

	for i := range s.rewards {
		if f.Matches(&s.rewards[i]) {
			return true, nil
		}
	}
	return false, nil
}

func (s *session) InsertReward(_ context.Context, r *reward.Reward) error {
	t := tenant.Context{ID: r.TenantID}
	if err := s.requireHeld(t, r.AccountID); err != nil {
		return err
	}
	if err := r.Validate(); err != nil {
		return fmt.Errorf("invalid reward: %w", err)
	}
	if s.dedupeTaken(r) {
		return fmt.Errorf("reward %s for account %d: %w",
			r.DedupeKey, r.AccountID, serviceerrs.ErrConflict)
	}
	s.rewards = append(s.rewards, *r)
	return nil
}

// dedupeTaken mirrors the partial unique index of the postgres store.
func (s *session) dedupeTaken(r *reward.Reward) bool {
	if r.DedupeKey == "" {
		return false
	}
	clash := func(o *reward.Reward) bool {
		return o.DedupeKey == r.DedupeKey &&
			(o.Status == reward.StatusActive || o.Status == reward.StatusRedeemed)
	}

	s.store.mu.RLock()
	defer s.store.mu.RUnlock()
	committed := s.store.rewards[r.AccountID]
	for i := range committed {
		if clash(&committed[i]) {
			return true
		}
	}
	for i := range s.rewards {
		if clash(&s.rewards[i]) {
			return true
		}
	}
	return false
}
