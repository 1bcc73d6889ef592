package repo

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/talx-hub/gopher-loyalty/internal/model"
	"github.com/talx-hub/gopher-loyalty/internal/model/account"
	"github.com/talx-hub/gopher-loyalty/internal/model/reward"
	"github.com/talx-hub/gopher-loyalty/internal/model/transaction"
	"github.com/talx-hub/gopher-loyalty/internal/repo/internal/db"
)

func pgTime(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func pgTimePtr(t *time.Time) pgtype.Timestamptz {
	if t == nil {
		return pgtype.Timestamptz{}
	}
	return pgTime(*t)
}

func pgDate(t *time.Time) pgtype.Date {
	if t == nil {
		return pgtype.Date{}
	}
	return pgtype.Date{Time: *t, Valid: true}
}

func pgUUID(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}

func toAccount(a *db.Account) (account.Account, error) {
	points, err := model.FromPGNumeric(a.Points)
	if err != nil {
		return account.Account{}, fmt.Errorf("invalid points of account %d: %w", a.ID, err)
	}
	acc := account.Account{
		ID:          a.ID,
		TenantID:    a.TenantID,
		ExternalID:  a.ExternalID,
		JoiningDate: a.JoiningDate.Time.UTC(),
		Points:      points,
	}
	if a.BirthDate.Valid {
		birth := a.BirthDate.Time
		acc.BirthDate = &birth
	}
	return acc, nil
}

func toAccounts(raw []db.Account) ([]account.Account, error) {
	out := make([]account.Account, len(raw))
	for i := range raw {
		a, err := toAccount(&raw[i])
		if err != nil {
			return nil, err
		}
		out[i] = a
	}
	return out, nil
}

func toReward(r *db.Reward) reward.Reward {
	out := reward.Reward{
		ID:          uuid.UUID(r.ID.Bytes),
		TenantID:    r.TenantID,
		AccountID:   r.AccountID,
		Type:        reward.Type(r.RewardType),
		Tag:         reward.Tag(r.RuleTag),
		Description: r.Description,
		Status:      reward.Status(r.Status),
		DedupeKey:   r.DedupeKey,
		IssuedAt:    r.IssuedAt.Time.UTC(),
	}
	if r.ExpiresAt.Valid {
		expires := r.ExpiresAt.Time.UTC()
		out.ExpiresAt = &expires
	}
	return out
}

func toTransaction(t *db.Transaction) (transaction.Transaction, error) {
	amount, err := model.FromPGNumeric(t.Amount)
	if err != nil {
		return transaction.Transaction{}, fmt.Errorf("invalid amount: %w", err)
	}
	earned, err := model.FromPGNumeric(t.PointsEarned)
	if err != nil {
		return transaction.Transaction{}, fmt.Errorf("invalid points earned: %w", err)
	}
	return transaction.Transaction{
		ID:           uuid.UUID(t.ID.Bytes),
		TenantID:     t.TenantID,
		AccountID:    t.AccountID,
		Amount:       amount,
		Currency:     t.Currency,
		Foreign:      t.IsForeign,
		PointsEarned: earned,
		CreatedAt:    t.CreatedAt.Time.UTC(),
	}, nil
}
