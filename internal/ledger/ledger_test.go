package ledger

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talx-hub/gopher-loyalty/internal/model/account"
	"github.com/talx-hub/gopher-loyalty/internal/model/tenant"
	"github.com/talx-hub/gopher-loyalty/internal/repo/memory"
	"github.com/talx-hub/gopher-loyalty/internal/serviceerrs"
	"github.com/talx-hub/gopher-loyalty/internal/store"
)

var acme = tenant.Context{ID: "acme"}

func newAccount(t *testing.T, st *memory.Store, externalID string) account.Account {
	t.Helper()
	a := account.Account{ExternalID: externalID, JoiningDate: time.Now().UTC()}
	require.NoError(t, st.CreateAccount(context.Background(), acme, &a))
	return a
}

// accrue runs Acquire and Accrue as one unit.
func accrue(ctx context.Context, st *memory.Store, l *Ledger, accountID int64, delta decimal.Decimal,
) (decimal.Decimal, error) {
	var got decimal.Decimal
	err := st.InTx(ctx, func(ctx context.Context, s store.Session) error {
		acc, err := l.Acquire(ctx, s, acme, accountID)
		if err != nil {
			return err
		}
		got, err = l.Accrue(ctx, s, acme, &acc, delta)
		return err
	})
	return got, err
}

func balance(t *testing.T, st *memory.Store, externalID string) decimal.Decimal {
	t.Helper()
	a, err := st.FindAccount(context.Background(), acme, externalID)
	require.NoError(t, err)
	return a.Points
}

func TestLedger_Accrue(t *testing.T) {
	st := memory.New(time.Second)
	l := New(slog.Default())
	a := newAccount(t, st, "u1")

	deltas := []string{"10", "7.5", "0.01", "12.34"}
	want := []string{"10", "17.5", "17.51", "29.85"}
	for i, d := range deltas {
		got, err := accrue(context.Background(), st, l, a.ID, decimal.RequireFromString(d))
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString(want[i]).Equal(got), "step %d: %s", i, got)
	}
	assert.True(t, decimal.RequireFromString("29.85").Equal(balance(t, st, "u1")))
}

func TestLedger_Accrue_rollback(t *testing.T) {
	st := memory.New(time.Second)
	l := New(slog.Default())
	a := newAccount(t, st, "u1")

	boom := errors.New("boom")
	err := st.InTx(context.Background(), func(ctx context.Context, s store.Session) error {
		acc, err := l.Acquire(ctx, s, acme, a.ID)
		if err != nil {
			return err
		}
		if _, err = l.Accrue(ctx, s, acme, &acc, decimal.NewFromInt(50)); err != nil {
			return err
		}
		assert.True(t, decimal.NewFromInt(50).Equal(acc.Points))
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.True(t, balance(t, st, "u1").IsZero())
}

func TestLedger_Accrue_concurrent(t *testing.T) {
	st := memory.New(5 * time.Second)
	l := New(slog.Default())
	a := newAccount(t, st, "u1")
	b := newAccount(t, st, "u2")

	const n = 50
	var wg sync.WaitGroup
	for i := range n {
		for _, id := range []int64{a.ID, b.ID} {
			wg.Add(1)
			go func(accountID int64, i int) {
				defer wg.Done()
				_, err := accrue(context.Background(), st, l, accountID, decimal.New(int64(i+1), -1))
				assert.NoError(t, err)
			}(id, i)
		}
	}
	wg.Wait()

	// 0.1 + 0.2 + ... + 5.0
	want := decimal.RequireFromString("127.5")
	assert.True(t, want.Equal(balance(t, st, "u1")), "u1: %s", balance(t, st, "u1"))
	assert.True(t, want.Equal(balance(t, st, "u2")), "u2: %s", balance(t, st, "u2"))
}

func TestLedger_Acquire_busy(t *testing.T) {
	st := memory.New(20 * time.Millisecond)
	l := New(slog.Default())
	a := newAccount(t, st, "u1")

	locked := make(chan struct{})
	done := make(chan struct{})
	go func() {
		_ = st.InTx(context.Background(), func(ctx context.Context, s store.Session) error {
			if _, err := l.Acquire(ctx, s, acme, a.ID); err != nil {
				return err
			}
			close(locked)
			<-done
			return nil
		})
	}()
	<-locked
	defer close(done)

	_, err := accrue(context.Background(), st, l, a.ID, decimal.NewFromInt(1))
	require.ErrorIs(t, err, serviceerrs.ErrResourceBusy)
}

func TestLedger_Accrue_requiresAcquire(t *testing.T) {
	st := memory.New(time.Second)
	l := New(slog.Default())
	a := newAccount(t, st, "u1")

	err := st.InTx(context.Background(), func(ctx context.Context, s store.Session) error {
		_, err := l.Accrue(ctx, s, acme, &a, decimal.NewFromInt(1))
		return err
	})
	require.Error(t, err)
	assert.True(t, balance(t, st, "u1").IsZero())
}

func TestLedger_Acquire_otherTenant(t *testing.T) {
	st := memory.New(time.Second)
	l := New(slog.Default())
	a := newAccount(t, st, "u1")

	err := st.InTx(context.Background(), func(ctx context.Context, s store.Session) error {
		_, err := l.Acquire(ctx, s, tenant.Context{ID: "globex"}, a.ID)
		return err
	})
	require.ErrorIs(t, err, serviceerrs.ErrNotFound)
}
