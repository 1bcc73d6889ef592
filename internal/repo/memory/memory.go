// Package memory is an in-process store.Store.
//
// Per-account exclusion is a capacity-1 semaphore per account, acquired with
// a bounded timeout. Writes made inside InTx are staged on the session and
// applied under the store mutex at commit, so a failed unit leaves nothing
// behind.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/talx-hub/gopher-loyalty/internal/model"
	"github.com/talx-hub/gopher-loyalty/internal/model/account"
	"github.com/talx-hub/gopher-loyalty/internal/model/reward"
	"github.com/talx-hub/gopher-loyalty/internal/model/tenant"
	"github.com/talx-hub/gopher-loyalty/internal/model/transaction"
	"github.com/talx-hub/gopher-loyalty/internal/serviceerrs"
	"github.com/talx-hub/gopher-loyalty/internal/store"
	"github.com/talx-hub/gopher-loyalty/internal/utils/semaphore"
)

type externalKey struct {
	tenantID   string
	externalID string
}

type Store struct {
	accounts     map[int64]account.Account
	byExternal   map[externalKey]int64
	transactions map[int64][]transaction.Transaction
	rewards      map[int64][]reward.Reward
	locks        map[int64]*semaphore.Semaphore
	lockTimeout  time.Duration
	nextID       int64
	mu           sync.RWMutex
	locksMu      sync.Mutex
}

var _ store.Store = (*Store)(nil)

func New(lockTimeout time.Duration) *Store {
	if lockTimeout <= 0 {
		lockTimeout = model.DefaultLockTimeout
	}
	return &Store{
		accounts:     make(map[int64]account.Account),
		byExternal:   make(map[externalKey]int64),
		transactions: make(map[int64][]transaction.Transaction),
		rewards:      make(map[int64][]reward.Reward),
		locks:        make(map[int64]*semaphore.Semaphore),
		lockTimeout:  lockTimeout,
	}
}

func (s *Store) FindAccount(_ context.Context, t tenant.Context, externalID string,
) (account.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byExternal[externalKey{tenantID: t.ID, externalID: externalID}]
	if !ok {
		return account.Account{}, serviceerrs.ErrNotFound
	}
	return s.accounts[id], nil
}

func (s *Store) ListAccounts(_ context.Context, t tenant.Context) ([]account.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []account.Account
	for _, a := range s.accounts {
		if a.TenantID == t.ID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) CreateAccount(_ context.Context, t tenant.Context, a *account.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := externalKey{tenantID: t.ID, externalID: a.ExternalID}
	if _, exists := s.byExternal[key]; exists {
		v := serviceerrs.NewValidationError()
		v.Add("user_id", "has already been taken")
		return v
	}

	s.nextID++
	a.ID = s.nextID
	a.TenantID = t.ID
	a.Points = model.RoundPoints(a.Points)
	s.accounts[a.ID] = *a
	s.byExternal[key] = a.ID
	return nil
}

func (s *Store) InTx(ctx context.Context, fn func(ctx context.Context, s store.Session) error) error {
	sess := &session{
		store:    s,
		held:     make(map[int64]*semaphore.Semaphore),
		balances: make(map[int64]decimal.Decimal),
	}
	defer sess.release()

	if err := fn(ctx, sess); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("unit aborted before commit: %w", err)
	}
	return sess.commit()
}

func (s *Store) lockFor(accountID int64) *semaphore.Semaphore {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()

	l, ok := s.locks[accountID]
	if !ok {
		l = semaphore.New(1)
		s.locks[accountID] = l
	}
	return l
}

func (s *Store) ListRewards(_ context.Context, t tenant.Context, accountID int64,
) ([]reward.Reward, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if a, ok := s.accounts[accountID]; !ok || a.TenantID != t.ID {
		return nil, serviceerrs.ErrNotFound
	}
	out := make([]reward.Reward, len(s.rewards[accountID]))
	copy(out, s.rewards[accountID])
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].IssuedAt.After(out[j].IssuedAt)
	})
	return out, nil
}

func (s *Store) TransitionReward(ctx context.Context, t tenant.Context, accountID int64,
	rewardID uuid.UUID, to reward.Status,
) (reward.Reward, error) {
	lock := s.lockFor(accountID)
	if err := lock.Acquire(ctx, s.lockTimeout); err != nil {
		return reward.Reward{}, busy(accountID, err)
	}
	defer lock.Release()

	s.mu.Lock()
	defer s.mu.Unlock()

	if a, ok := s.accounts[accountID]; !ok || a.TenantID != t.ID {
		return reward.Reward{}, serviceerrs.ErrNotFound
	}
	rewards := s.rewards[accountID]
	for i := range rewards {
		if rewards[i].ID != rewardID {
			continue
		}
		if !rewards[i].Status.CanTransitionTo(to) {
			return reward.Reward{}, fmt.Errorf("%s -> %s: %w",
				rewards[i].Status, to, serviceerrs.ErrInvalidTransition)
		}
		rewards[i].Status = to
		return rewards[i], nil
	}
	return reward.Reward{}, serviceerrs.ErrNotFound
}

func (s *Store) ExpireRewards(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for _, rewards := range s.rewards {
		for i := range rewards {
			r := &rewards[i]
			if r.Status == reward.StatusActive && r.ExpiresAt != nil && r.ExpiresAt.Before(now) {
				r.Status = reward.StatusExpired
				n++
			}
		}
	}
	return n, nil
}

func (s *Store) ListAccountsByBirthMonth(_ context.Context, month time.Month,
) ([]account.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []account.Account
	for _, a := range s.accounts {
		if a.BirthDate != nil && a.BirthDate.Month() == month {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Transactions returns committed transactions of an account, oldest first.
func (s *Store) Transactions(accountID int64) []transaction.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]transaction.Transaction, len(s.transactions[accountID]))
	copy(out, s.transactions[accountID])
	return out
}

func busy(accountID int64, err error) error {
	if errors.Is(err, serviceerrs.ErrSemaphoreTimeoutExceeded) {
		return fmt.Errorf("lock account %d: %w", accountID, serviceerrs.ErrResourceBusy)
	}
	return fmt.Errorf("lock account %d: %w", accountID, err)
}
