package rules

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talx-hub/gopher-loyalty/internal/model/account"
	"github.com/talx-hub/gopher-loyalty/internal/model/reward"
	"github.com/talx-hub/gopher-loyalty/internal/model/tenant"
	"github.com/talx-hub/gopher-loyalty/internal/model/transaction"
)

const day = 24 * time.Hour

var (
	acme = tenant.Context{ID: "acme"}
	now  = time.Date(2026, time.October, 15, 12, 0, 0, 0, time.UTC)
)

type fakeSnapshot struct {
	err          error
	transactions []transaction.Transaction
	rewards      []reward.Reward
}

func (f *fakeSnapshot) SumPoints(_ context.Context, _ tenant.Context, accountID int64,
	w reward.Window,
) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, tx := range f.transactions {
		if tx.AccountID == accountID && w.Contains(tx.CreatedAt) {
			total = total.Add(tx.PointsEarned)
		}
	}
	return total, f.err
}

func (f *fakeSnapshot) SumAmount(_ context.Context, _ tenant.Context, accountID int64,
	w reward.Window,
) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, tx := range f.transactions {
		if tx.AccountID == accountID && w.Contains(tx.CreatedAt) {
			total = total.Add(tx.Amount)
		}
	}
	return total, f.err
}

func (f *fakeSnapshot) RewardExists(_ context.Context, _ tenant.Context, flt reward.Filter,
) (bool, error) {
	for i := range f.rewards {
		if flt.Matches(&f.rewards[i]) {
			return true, f.err
		}
	}
	return false, f.err
}

func tx(at time.Time, amount, points string) transaction.Transaction {
	return transaction.Transaction{
		AccountID:    1,
		TenantID:     acme.ID,
		CreatedAt:    at,
		Amount:       decimal.RequireFromString(amount),
		PointsEarned: decimal.RequireFromString(points),
		Currency:     "USD",
	}
}

func issued(tp reward.Type, tag reward.Tag, status reward.Status, at time.Time) reward.Reward {
	return reward.Reward{AccountID: 1, Type: tp, Tag: tag, Status: status, IssuedAt: at}
}

func oldAccount() *account.Account {
	return &account.Account{ID: 1, TenantID: acme.ID, JoiningDate: now.Add(-400 * day)}
}

func input(acc *account.Account) Input {
	return Input{Now: now, Account: acc, Tenant: acme}
}

func TestMonthWindow(t *testing.T) {
	w := MonthWindow(now)
	assert.Equal(t, time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC), w.From)
	assert.Equal(t, time.Date(2026, time.October, 31, 23, 59, 59, 999999999, time.UTC), w.To)

	feb := MonthWindow(time.Date(2028, time.February, 29, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 29, feb.To.Day())

	dec := MonthWindow(time.Date(2026, time.December, 31, 23, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC),
		dec.To.Add(time.Nanosecond))
}

func TestMonthlyPointsRule(t *testing.T) {
	rule := MonthlyPointsRule{Threshold: MonthlyPointsThreshold}
	lastMonth := now.AddDate(0, -1, 0)

	tests := []struct {
		name         string
		transactions []transaction.Transaction
		rewards      []reward.Reward
		want         bool
	}{
		{
			name:         "below threshold",
			transactions: []transaction.Transaction{tx(now, "999.9", "99.99")},
		},
		{
			name:         "exactly threshold",
			transactions: []transaction.Transaction{tx(now, "1000", "100")},
			want:         true,
		},
		{
			name: "threshold reached across the month",
			transactions: []transaction.Transaction{
				tx(time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC), "500", "50"),
				tx(now, "500", "50"),
			},
			want: true,
		},
		{
			name: "last month does not count",
			transactions: []transaction.Transaction{
				tx(lastMonth, "900", "90"),
				tx(now, "100", "10"),
			},
		},
		{
			name:         "already issued this month",
			transactions: []transaction.Transaction{tx(now, "2000", "200")},
			rewards: []reward.Reward{
				issued(reward.TypeCoffee, reward.TagMonthlyPoints, reward.StatusActive, now.Add(-day)),
			},
		},
		{
			name:         "already issued and redeemed this month",
			transactions: []transaction.Transaction{tx(now, "2000", "200")},
			rewards: []reward.Reward{
				issued(reward.TypeCoffee, reward.TagMonthlyPoints, reward.StatusRedeemed, now.Add(-day)),
			},
		},
		{
			name:         "expired reward this month does not block",
			transactions: []transaction.Transaction{tx(now, "2000", "200")},
			rewards: []reward.Reward{
				issued(reward.TypeCoffee, reward.TagMonthlyPoints, reward.StatusExpired, now.Add(-day)),
			},
			want: true,
		},
		{
			name:         "last month's reward does not block",
			transactions: []transaction.Transaction{tx(now, "2000", "200")},
			rewards: []reward.Reward{
				issued(reward.TypeCoffee, reward.TagMonthlyPoints, reward.StatusActive, lastMonth),
			},
			want: true,
		},
		{
			name:         "birthday coffee does not block",
			transactions: []transaction.Transaction{tx(now, "2000", "200")},
			rewards: []reward.Reward{
				issued(reward.TypeCoffee, reward.TagBirthday, reward.StatusActive, now),
			},
			want: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := &fakeSnapshot{transactions: tt.transactions, rewards: tt.rewards}
			got, err := rule.Evaluate(context.Background(), snap, input(oldAccount()))
			require.NoError(t, err)
			if !tt.want {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, reward.TypeCoffee, got.Type)
			assert.Equal(t, reward.TagMonthlyPoints, got.Tag)
			assert.Equal(t, "2026-10", got.Bucket)
			assert.Equal(t, now.Add(30*day), got.ExpiresAt)
			assert.Contains(t, got.Description, "Free coffee for earning")
		})
	}
}

func TestBirthdayRule(t *testing.T) {
	october := time.Date(1990, time.October, 20, 0, 0, 0, 0, time.UTC)
	april := time.Date(1990, time.April, 20, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		birthDate *time.Time
		rewards   []reward.Reward
		want      bool
	}{
		{name: "no birth date"},
		{name: "other month", birthDate: &april},
		{name: "birth month", birthDate: &october, want: true},
		{
			name:      "already issued this month",
			birthDate: &october,
			rewards: []reward.Reward{
				issued(reward.TypeCoffee, reward.TagBirthday, reward.StatusRedeemed, now.Add(-day)),
			},
		},
		{
			name:      "issued last year",
			birthDate: &october,
			rewards: []reward.Reward{
				issued(reward.TypeCoffee, reward.TagBirthday, reward.StatusRedeemed, now.AddDate(-1, 0, 0)),
			},
			want: true,
		},
		{
			name:      "monthly coffee does not block",
			birthDate: &october,
			rewards: []reward.Reward{
				issued(reward.TypeCoffee, reward.TagMonthlyPoints, reward.StatusActive, now),
			},
			want: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := oldAccount()
			acc.BirthDate = tt.birthDate
			got, err := BirthdayRule{}.Evaluate(context.Background(),
				&fakeSnapshot{rewards: tt.rewards}, input(acc))
			require.NoError(t, err)
			if !tt.want {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, reward.TypeCoffee, got.Type)
			assert.Equal(t, reward.TagBirthday, got.Tag)
			assert.Equal(t, "Birthday month free coffee", got.Description)
			assert.Equal(t, now.Add(30*day), got.ExpiresAt)
		})
	}
}

func TestNewAccountSpendRule(t *testing.T) {
	rule := NewAccountSpendRule{Threshold: NewAccountSpendThreshold}

	tests := []struct {
		name         string
		joinedAgo    time.Duration
		transactions []transaction.Transaction
		rewards      []reward.Reward
		want         bool
	}{
		{
			name:         "joined 7 days ago, spent 1000",
			joinedAgo:    7 * day,
			transactions: []transaction.Transaction{tx(now, "1000", "100")},
			want:         true,
		},
		{
			name:         "joined 7 days ago, spent 999.99",
			joinedAgo:    7 * day,
			transactions: []transaction.Transaction{tx(now, "999.99", "100")},
		},
		{
			name:      "spending accumulates within the window",
			joinedAgo: 30 * day,
			transactions: []transaction.Transaction{
				tx(now.Add(-20*day), "400", "40"),
				tx(now.Add(-10*day), "400", "40"),
				tx(now, "200", "20"),
			},
			want: true,
		},
		{
			name:         "exactly 60 days",
			joinedAgo:    60 * day,
			transactions: []transaction.Transaction{tx(now, "1000", "100")},
			want:         true,
		},
		{
			name:         "joined at midnight 60 days ago, spending at midday",
			joinedAgo:    60*day + 12*time.Hour,
			transactions: []transaction.Transaction{tx(now, "1000", "100")},
			want:         true,
		},
		{
			name:         "61 days",
			joinedAgo:    61 * day,
			transactions: []transaction.Transaction{tx(now, "5000", "500")},
		},
		{
			name:         "already issued, even if expired",
			joinedAgo:    7 * day,
			transactions: []transaction.Transaction{tx(now, "5000", "500")},
			rewards: []reward.Reward{
				issued(reward.TypeMovieTickets, reward.TagNewAccountSpend, reward.StatusExpired,
					now.AddDate(-1, 0, 0)),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := oldAccount()
			acc.JoiningDate = now.Add(-tt.joinedAgo)
			got, err := rule.Evaluate(context.Background(),
				&fakeSnapshot{transactions: tt.transactions, rewards: tt.rewards}, input(acc))
			require.NoError(t, err)
			if !tt.want {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, reward.TypeMovieTickets, got.Type)
			assert.Equal(t, reward.TagNewAccountSpend, got.Tag)
			assert.Equal(t, "New user spending reward", got.Description)
			assert.Equal(t, now.Add(60*day), got.ExpiresAt)
			assert.Empty(t, got.Bucket)
		})
	}
}

func TestEngine_Evaluate(t *testing.T) {
	october := time.Date(1990, time.October, 20, 0, 0, 0, 0, time.UTC)
	acc := oldAccount()
	acc.JoiningDate = now.Add(-7 * day)
	acc.BirthDate = &october

	current := tx(now, "1000", "100")
	snap := &fakeSnapshot{transactions: []transaction.Transaction{current}}
	e := NewEngine(slog.Default(), time.UTC)

	intents, err := e.Evaluate(context.Background(), snap, acme, acc, &current, now)
	require.NoError(t, err)
	require.Len(t, intents, 3)
	assert.Equal(t, reward.TagMonthlyPoints, intents[0].Tag)
	assert.Equal(t, reward.TagBirthday, intents[1].Tag)
	assert.Equal(t, reward.TagNewAccountSpend, intents[2].Tag)

	periodic, err := e.EvaluatePeriodic(context.Background(), snap, acme, acc, now)
	require.NoError(t, err)
	require.Len(t, periodic, 1)
	assert.Equal(t, reward.TagBirthday, periodic[0].Tag)
}

func TestEngine_Evaluate_location(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	// 22:30 UTC on Oct 31 is already November in UTC+3
	late := time.Date(2026, time.October, 31, 22, 30, 0, 0, time.UTC)
	october := tx(time.Date(2026, time.October, 20, 0, 0, 0, 0, time.UTC), "1000", "100")
	snap := &fakeSnapshot{transactions: []transaction.Transaction{october}}

	intents, err := NewEngine(slog.Default(), time.UTC).
		Evaluate(context.Background(), snap, acme, oldAccount(), nil, late)
	require.NoError(t, err)
	require.Len(t, intents, 1)
	assert.Equal(t, "2026-10", intents[0].Bucket)

	intents, err = NewEngine(slog.Default(), loc).
		Evaluate(context.Background(), snap, acme, oldAccount(), nil, late)
	require.NoError(t, err)
	assert.Empty(t, intents)
}

func TestEngine_Evaluate_error(t *testing.T) {
	boom := errors.New("boom")
	snap := &fakeSnapshot{err: boom, transactions: []transaction.Transaction{tx(now, "1000", "100")}}
	_, err := NewEngine(slog.Default(), nil).
		Evaluate(context.Background(), snap, acme, oldAccount(), nil, now)
	require.ErrorIs(t, err, boom)
}

func TestIntent_Reward(t *testing.T) {
	acc := oldAccount()
	i := Intent{
		Type:        reward.TypeCoffee,
		Tag:         reward.TagMonthlyPoints,
		Description: "coffee",
		Bucket:      "2026-10",
		IssuedAt:    now,
		ExpiresAt:   now.Add(CoffeeExpiry),
	}
	r := i.Reward(acc)
	require.NoError(t, r.Validate())
	assert.Equal(t, reward.StatusActive, r.Status)
	assert.Equal(t, "monthly-points/2026-10", r.DedupeKey)
	assert.Equal(t, acc.ID, r.AccountID)
	assert.Equal(t, acme.ID, r.TenantID)
	require.NotNil(t, r.ExpiresAt)
	assert.Equal(t, now.Add(CoffeeExpiry), *r.ExpiresAt)
}
