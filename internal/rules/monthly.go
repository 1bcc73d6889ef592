package rules

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/talx-hub/gopher-loyalty/internal/model/reward"
	"github.com/talx-hub/gopher-loyalty/internal/store"
)

var MonthlyPointsThreshold = decimal.NewFromInt(100)

// MonthlyPointsRule gives one coffee per calendar month once the points
// earned in that month reach Threshold.
type MonthlyPointsRule struct {
	Threshold decimal.Decimal
}

func (MonthlyPointsRule) Tag() reward.Tag { return reward.TagMonthlyPoints }

func (MonthlyPointsRule) Periodic() bool { return false }

func (r MonthlyPointsRule) Evaluate(ctx context.Context, snap store.Snapshot, in Input,
) (*Intent, error) {
	month := MonthWindow(in.Now)

	earned, err := snap.SumPoints(ctx, in.Tenant, in.Account.ID, month)
	if err != nil {
		return nil, fmt.Errorf("failed to sum monthly points: %w", err)
	}
	if earned.LessThan(r.Threshold) {
		return nil, nil
	}

	exists, err := snap.RewardExists(ctx, in.Tenant, reward.Filter{
		AccountID: in.Account.ID,
		Type:      reward.TypeCoffee,
		Tag:       reward.TagMonthlyPoints,
		Statuses:  reward.Held,
		Issued:    &month,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to check monthly coffee: %w", err)
	}
	if exists {
		return nil, nil
	}

	return &Intent{
		Type:        reward.TypeCoffee,
		Tag:         reward.TagMonthlyPoints,
		Description: fmt.Sprintf("Free coffee for earning %s+ points this month", r.Threshold),
		Bucket:      reward.MonthBucket(in.Now),
		IssuedAt:    in.Now,
		ExpiresAt:   in.Now.Add(CoffeeExpiry),
	}, nil
}
