package rules

import (
	"context"
	"fmt"

	"github.com/talx-hub/gopher-loyalty/internal/model/reward"
	"github.com/talx-hub/gopher-loyalty/internal/store"
)

// BirthdayRule gives one coffee during the account's birth month.
type BirthdayRule struct{}

func (BirthdayRule) Tag() reward.Tag { return reward.TagBirthday }

func (BirthdayRule) Periodic() bool { return true }

func (BirthdayRule) Evaluate(ctx context.Context, snap store.Snapshot, in Input,
) (*Intent, error) {
	if !in.Account.BirthdayMonth(in.Now) {
		return nil, nil
	}

	month := MonthWindow(in.Now)
	exists, err := snap.RewardExists(ctx, in.Tenant, reward.Filter{
		AccountID: in.Account.ID,
		Type:      reward.TypeCoffee,
		Tag:       reward.TagBirthday,
		Statuses:  reward.Held,
		Issued:    &month,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to check birthday coffee: %w", err)
	}
	if exists {
		return nil, nil
	}

	return &Intent{
		Type:        reward.TypeCoffee,
		Tag:         reward.TagBirthday,
		Description: "Birthday month free coffee",
		Bucket:      reward.MonthBucket(in.Now),
		IssuedAt:    in.Now,
		ExpiresAt:   in.Now.Add(CoffeeExpiry),
	}, nil
}
