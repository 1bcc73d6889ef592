// Package rewards exposes the reward lifecycle after issuance: listing,
// redemption and expiry.
package rewards

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/talx-hub/gopher-loyalty/internal/model"
	"github.com/talx-hub/gopher-loyalty/internal/model/reward"
	"github.com/talx-hub/gopher-loyalty/internal/model/tenant"
	"github.com/talx-hub/gopher-loyalty/internal/serviceerrs"
	"github.com/talx-hub/gopher-loyalty/internal/store"
)

type Service struct {
	store store.Store
	log   *slog.Logger
}

func New(st store.Store, log *slog.Logger) *Service {
	return &Service{store: st, log: log}
}

// List returns the account's rewards, newest first.
func (s *Service) List(ctx context.Context, t tenant.Context, externalID string,
) ([]reward.Reward, error) {
	acc, err := s.store.FindAccount(ctx, t, externalID)
	if err != nil {
		return nil, s.classify(ctx, "failed to resolve account", err)
	}
	list, err := s.store.ListRewards(ctx, t, acc.ID)
	if err != nil {
		return nil, s.classify(ctx, "failed to list rewards", err)
	}
	return list, nil
}

// Redeem moves an active reward to redeemed. Redeemed and expired rewards
// are terminal and report ErrInvalidTransition.
func (s *Service) Redeem(ctx context.Context, t tenant.Context, externalID string,
	rewardID uuid.UUID,
) (reward.Reward, error) {
	return s.transition(ctx, t, externalID, rewardID, reward.StatusRedeemed)
}

// Expire moves an active reward to expired ahead of the sweep.
func (s *Service) Expire(ctx context.Context, t tenant.Context, externalID string,
	rewardID uuid.UUID,
) (reward.Reward, error) {
	return s.transition(ctx, t, externalID, rewardID, reward.StatusExpired)
}

func (s *Service) transition(ctx context.Context, t tenant.Context, externalID string,
	rewardID uuid.UUID, to reward.Status,
) (reward.Reward, error) {
	acc, err := s.store.FindAccount(ctx, t, externalID)
	if err != nil {
		return reward.Reward{}, s.classify(ctx, "failed to resolve account", err)
	}
	r, err := s.store.TransitionReward(ctx, t, acc.ID, rewardID, to)
	if err != nil {
		return reward.Reward{}, s.classify(ctx, "failed to transition reward", err)
	}
	s.log.LogAttrs(ctx, slog.LevelInfo, "reward status changed",
		slog.String("tenant", t.ID),
		slog.Int64("account_id", acc.ID),
		slog.String("reward_id", rewardID.String()),
		slog.String("status", string(to)),
	)
	return r, nil
}

// ExpireDue expires every active reward whose expiry has passed, across
// tenants, and returns how many changed.
func (s *Service) ExpireDue(ctx context.Context, now time.Time) (int64, error) {
	n, err := s.store.ExpireRewards(ctx, now)
	if err != nil {
		return 0, s.classify(ctx, "failed to expire rewards", err)
	}
	if n > 0 {
		s.log.LogAttrs(ctx, slog.LevelInfo, "rewards expired", slog.Int64("count", n))
	}
	return n, nil
}

func (s *Service) classify(ctx context.Context, msg string, err error) error {
	switch {
	case errors.Is(err, serviceerrs.ErrNotFound):
		return serviceerrs.ErrNotFound
	case errors.Is(err, serviceerrs.ErrInvalidTransition),
		errors.Is(err, serviceerrs.ErrResourceBusy):
		return fmt.Errorf("%s: %w", msg, err)
	default:
		s.log.LogAttrs(ctx, slog.LevelError, msg, slog.Any(model.KeyLoggerError, err))
		return fmt.Errorf("%s: %w", msg, serviceerrs.ErrInternal)
	}
}
