package repo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/talx-hub/gopher-loyalty/internal/model"
	"github.com/talx-hub/gopher-loyalty/internal/model/account"
	"github.com/talx-hub/gopher-loyalty/internal/model/reward"
	"github.com/talx-hub/gopher-loyalty/internal/model/tenant"
	"github.com/talx-hub/gopher-loyalty/internal/model/transaction"
	"github.com/talx-hub/gopher-loyalty/internal/repo/internal/db"
	"github.com/talx-hub/gopher-loyalty/internal/serviceerrs"
)

var errNotLocked = errors.New("account is not locked by this unit")

type session struct {
	queries *db.Queries
	log     *slog.Logger
	held    map[int64]struct{}
}

func (s *session) LockAccount(ctx context.Context, t tenant.Context, accountID int64,
) (account.Account, error) {
	raw, err := s.queries.LockAccount(ctx, db.LockAccountParams{ID: accountID, TenantID: t.ID})
	if err != nil {
		return account.Account{}, fmt.Errorf("lock account %d: %w", accountID, classify(err))
	}
	s.held[accountID] = struct{}{}
	return toAccount(&raw)
}

func (s *session) requireHeld(accountID int64) error {
	if _, ok := s.held[accountID]; !ok {
		return fmt.Errorf("account %d: %w", accountID, errNotLocked)
	}
	return nil
}

func (s *session) UpdateBalance(ctx context.Context, t tenant.Context, accountID int64,
	balance decimal.Decimal,
) error {
	if err := s.requireHeld(accountID); err != nil {
		return err
	}
	tag, err := s.queries.UpdateAccountPoints(ctx, db.UpdateAccountPointsParams{
		ID:       accountID,
		TenantID: t.ID,
		Points:   model.ToPGNumeric(model.RoundPoints(balance)),
	})
	if err != nil {
		return classify(err)
	}
	if tag.RowsAffected() == 0 {
		return serviceerrs.ErrNotFound
	}
	return nil
}

func (s *session) AppendTransaction(ctx context.Context, tx *transaction.Transaction) error {
	if err := s.requireHeld(tx.AccountID); err != nil {
		return err
	}
	err := s.queries.CreateTransaction(ctx, db.CreateTransactionParams{
		ID:           pgUUID(tx.ID),
		TenantID:     tx.TenantID,
		AccountID:    tx.AccountID,
		Amount:       model.ToPGNumeric(tx.Amount),
		Currency:     tx.Currency,
		IsForeign:    tx.Foreign,
		PointsEarned: model.ToPGNumeric(tx.PointsEarned),
		CreatedAt:    pgTime(tx.CreatedAt),
	})
	return classify(err)
}

func (s *session) SumPoints(ctx context.Context, t tenant.Context, accountID int64,
	w reward.Window,
) (decimal.Decimal, error) {
	total, err := s.queries.SumPoints(ctx, windowParams(t, accountID, w))
	if err != nil {
		return decimal.Zero, classify(err)
	}
	return model.FromPGNumeric(total)
}

func (s *session) SumAmount(ctx context.Context, t tenant.Context, accountID int64,
	w reward.Window,
) (decimal.Decimal, error) {
	total, err := s.queries.SumAmount(ctx, windowParams(t, accountID, w))
	if err != nil {
		return decimal.Zero, classify(err)
	}
	return model.FromPGNumeric(total)
}

func windowParams(t tenant.Context, accountID int64, w reward.Window) db.SumWindowParams {
	return db.SumWindowParams{
		AccountID: accountID,
		TenantID:  t.ID,
		FromTs:    pgTime(w.From),
		ToTs:      pgTime(w.To),
	}
}

func (s *session) RewardExists(ctx context.Context, t tenant.Context, f reward.Filter,
) (bool, error) {
	statuses := make([]string, 0, len(f.Statuses))
	for _, st := range f.Statuses {
		statuses = append(statuses, string(st))
	}
	arg := db.RewardExistsParams{
		AccountID:  f.AccountID,
		TenantID:   t.ID,
		RewardType: string(f.Type),
		RuleTag:    string(f.Tag),
		Statuses:   statuses,
	}
	if f.Issued != nil {
		arg.IssuedFrom = pgTime(f.Issued.From)
		arg.IssuedTo = pgTime(f.Issued.To)
	}

	exists, err := s.queries.RewardExists(ctx, arg)
	if err != nil {
		return false, classify(err)
	}
	return exists, nil
}

func (s *session) InsertReward(ctx context.Context, r *reward.Reward) error {
	if err := s.requireHeld(r.AccountID); err != nil {
		return err
	}
	if err := r.Validate(); err != nil {
		return fmt.Errorf("invalid reward: %w", err)
	}

	err := s.queries.CreateReward(ctx, db.CreateRewardParams{
		ID:          pgUUID(r.ID),
		TenantID:    r.TenantID,
		AccountID:   r.AccountID,
		RewardType:  string(r.Type),
		RuleTag:     string(r.Tag),
		Description: r.Description,
		Status:      string(r.Status),
		DedupeKey:   r.DedupeKey,
		IssuedAt:    pgTime(r.IssuedAt),
		ExpiresAt:   pgTimePtr(r.ExpiresAt),
	})
	if err != nil {
		s.log.LogAttrs(ctx, slog.LevelDebug, "reward insert rejected",
			slog.String("dedupe_key", r.DedupeKey),
			slog.Any(model.KeyLoggerError, err),
		)
		return fmt.Errorf("reward %s for account %d: %w", r.DedupeKey, r.AccountID, classify(err))
	}
	return nil
}
