package sweeper

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talx-hub/gopher-loyalty/internal/ingest"
	"github.com/talx-hub/gopher-loyalty/internal/model/account"
	"github.com/talx-hub/gopher-loyalty/internal/model/reward"
	"github.com/talx-hub/gopher-loyalty/internal/model/tenant"
	"github.com/talx-hub/gopher-loyalty/internal/repo/memory"
	"github.com/talx-hub/gopher-loyalty/internal/rewards"
	"github.com/talx-hub/gopher-loyalty/internal/utils/clock"
)

var now = time.Date(2026, time.October, 15, 12, 0, 0, 0, time.UTC)

type fixture struct {
	store   *memory.Store
	clock   *clock.Fixed
	ingest  *ingest.Service
	sweeper *Sweeper
}

func newFixture(t *testing.T, opts Options) *fixture {
	t.Helper()

	st := memory.New(time.Second)
	clk := clock.NewFixed(now)
	in := ingest.New(st, clk, slog.Default(), ingest.Options{})
	return &fixture{
		store:   st,
		clock:   clk,
		ingest:  in,
		sweeper: New(rewards.New(st, slog.Default()), st, in, clk, slog.Default(), opts),
	}
}

func (f *fixture) account(t *testing.T, tn tenant.Context, externalID string, birth *time.Time) account.Account {
	t.Helper()
	a := account.Account{ExternalID: externalID, JoiningDate: now.AddDate(-1, 0, 0), BirthDate: birth}
	require.NoError(t, f.store.CreateAccount(context.Background(), tn, &a))
	return a
}

func birthday(month time.Month) *time.Time {
	b := time.Date(1990, month, 10, 0, 0, 0, 0, time.UTC)
	return &b
}

func TestSweeper_Sweep(t *testing.T) {
	f := newFixture(t, Options{Workers: 3, MaxInFlight: 2})
	acme, other := tenant.Context{ID: "acme"}, tenant.Context{ID: "other"}

	born := []account.Account{
		f.account(t, acme, "u1", birthday(time.October)),
		f.account(t, acme, "u2", birthday(time.October)),
		f.account(t, other, "u1", birthday(time.October)),
	}
	f.account(t, acme, "u3", birthday(time.May))
	f.account(t, acme, "u4", nil)

	// u2 already got its birthday coffee through a transaction
	res, err := f.ingest.Create(context.Background(), acme, ingest.Request{
		AccountExternalID: "u2", Amount: decimal.NewFromInt(10), Currency: "USD",
	})
	require.NoError(t, err)
	require.Len(t, res.RewardsIssued, 1)

	report, err := f.sweeper.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Report{Accounts: 3, Issued: 2}, report)

	for _, a := range born {
		list, err := f.store.ListRewards(context.Background(), tenant.Context{ID: a.TenantID}, a.ID)
		require.NoError(t, err)
		require.Len(t, list, 1, a.ExternalID)
		assert.Equal(t, reward.TagBirthday, list[0].Tag)
	}

	// idempotent within the month
	report, err = f.sweeper.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Report{Accounts: 3}, report)

	// coffee lasts 30 days; in November the rewards expire and nobody is born
	f.clock.Set(time.Date(2026, time.November, 20, 0, 0, 0, 0, time.UTC))
	report, err = f.sweeper.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Report{Expired: 3}, report)
}

func TestSweeper_Sweep_location(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	f := newFixture(t, Options{Location: loc})
	f.account(t, tenant.Context{ID: "acme"}, "u1", birthday(time.November))

	// 22:30 UTC on Oct 31 is already November at UTC+3
	f.clock.Set(time.Date(2026, time.October, 31, 22, 30, 0, 0, time.UTC))
	report, err := f.sweeper.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Accounts)
}

type failingExpirer struct{}

func (failingExpirer) ExpireDue(context.Context, time.Time) (int64, error) {
	return 0, errors.New("db down")
}

func TestSweeper_Sweep_expireError(t *testing.T) {
	f := newFixture(t, Options{})
	s := New(failingExpirer{}, f.store, f.ingest, f.clock, slog.Default(), Options{})

	_, err := s.Sweep(context.Background())
	require.Error(t, err)
}

func TestSweeper_Run(t *testing.T) {
	f := newFixture(t, Options{Interval: 10 * time.Millisecond})
	a := f.account(t, tenant.Context{ID: "acme"}, "u1", birthday(time.October))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		f.sweeper.Run(ctx)
	}()

	require.Eventually(t, func() bool {
		list, err := f.store.ListRewards(context.Background(), tenant.Context{ID: "acme"}, a.ID)
		return err == nil && len(list) == 1
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("sweeper did not stop")
	}
}

func TestSweeper_Run_disabled(t *testing.T) {
	f := newFixture(t, Options{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		f.sweeper.Run(context.Background())
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("disabled sweeper should return immediately")
	}
}
