package rules

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/talx-hub/gopher-loyalty/internal/model/reward"
	"github.com/talx-hub/gopher-loyalty/internal/store"
)

var NewAccountSpendThreshold = decimal.NewFromInt(1000)

// NewAccountSpendRule gives movie tickets, once ever, to an account that
// spends Threshold within its first 60 days.
type NewAccountSpendRule struct {
	Threshold decimal.Decimal
}

func (NewAccountSpendRule) Tag() reward.Tag { return reward.TagNewAccountSpend }

func (NewAccountSpendRule) Periodic() bool { return false }

func (r NewAccountSpendRule) Evaluate(ctx context.Context, snap store.Snapshot, in Input,
) (*Intent, error) {
	if !in.Account.WithinNewAccountWindow(in.Now) {
		return nil, nil
	}

	exists, err := snap.RewardExists(ctx, in.Tenant, reward.Filter{
		AccountID: in.Account.ID,
		Type:      reward.TypeMovieTickets,
		Tag:       reward.TagNewAccountSpend,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to check movie tickets: %w", err)
	}
	if exists {
		return nil, nil
	}

	from, to := in.Account.NewAccountWindow(in.Now.Location())
	spent, err := snap.SumAmount(ctx, in.Tenant, in.Account.ID, reward.Window{From: from, To: to})
	if err != nil {
		return nil, fmt.Errorf("failed to sum new account spending: %w", err)
	}
	if spent.LessThan(r.Threshold) {
		return nil, nil
	}

	return &Intent{
		Type:        reward.TypeMovieTickets,
		Tag:         reward.TagNewAccountSpend,
		Description: "New user spending reward",
		IssuedAt:    in.Now,
		ExpiresAt:   in.Now.Add(MovieTicketsExpiry),
	}, nil
}
