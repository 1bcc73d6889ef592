// source: rewards.sql

package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

const createReward = `-- name: CreateReward :exec
INSERT INTO rewards (id, tenant_id, account_id, reward_type, rule_tag, description,
                     status, dedupe_key, issued_at, expires_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
`

type CreateRewardParams struct {
	ID          pgtype.UUID
	TenantID    string
	AccountID   int64
	RewardType  string
	RuleTag     string
	Description string
	Status      string
	DedupeKey   string
	IssuedAt    pgtype.Timestamptz
	ExpiresAt   pgtype.Timestamptz
}

func (q *Queries) CreateReward(ctx context.Context, arg CreateRewardParams) error {
	_, err := q.db.Exec(ctx, createReward,
		arg.ID,
		arg.TenantID,
		arg.AccountID,
		arg.RewardType,
		arg.RuleTag,
		arg.Description,
		arg.Status,
		arg.DedupeKey,
		arg.IssuedAt,
		arg.ExpiresAt,
	)
	return err
}

const rewardExists = `-- name: RewardExists :one
SELECT EXISTS (
    SELECT 1
    FROM rewards
    WHERE account_id = $1 AND tenant_id = $2
      AND reward_type = $3 AND rule_tag = $4
      AND (cardinality($5::TEXT[]) = 0 OR status = ANY ($5::TEXT[]))
      AND ($6::TIMESTAMPTZ IS NULL OR issued_at >= $6)
      AND ($7::TIMESTAMPTZ IS NULL OR issued_at <= $7)
)
`

type RewardExistsParams struct {
	AccountID  int64
	TenantID   string
	RewardType string
	RuleTag    string
	Statuses   []string
	IssuedFrom pgtype.Timestamptz
	IssuedTo   pgtype.Timestamptz
}

func (q *Queries) RewardExists(ctx context.Context, arg RewardExistsParams) (bool, error) {
	row := q.db.QueryRow(ctx, rewardExists,
		arg.AccountID,
		arg.TenantID,
		arg.RewardType,
		arg.RuleTag,
		arg.Statuses,
		arg.IssuedFrom,
		arg.IssuedTo,
	)
	var exists bool
	err := row.Scan(&exists)
	return exists, err
}

const listRewardsByAccount = `-- name: ListRewardsByAccount :many
SELECT id, tenant_id, account_id, reward_type, rule_tag, description,
       status, dedupe_key, issued_at, expires_at
FROM rewards
WHERE account_id = $1 AND tenant_id = $2
ORDER BY issued_at DESC, id
`

type ListRewardsByAccountParams struct {
	AccountID int64
	TenantID  string
}

func (q *Queries) ListRewardsByAccount(ctx context.Context, arg ListRewardsByAccountParams,
) ([]Reward, error) {
	rows, err := q.db.Query(ctx, listRewardsByAccount, arg.AccountID, arg.TenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Reward
	for rows.Next() {
		var i Reward
		if err := scanReward(rows, &i); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getRewardForUpdate = `-- name: GetRewardForUpdate :one
SELECT id, tenant_id, account_id, reward_type, rule_tag, description,
       status, dedupe_key, issued_at, expires_at
FROM rewards
WHERE id = $1 AND account_id = $2 AND tenant_id = $3
FOR UPDATE
`

type GetRewardForUpdateParams struct {
	ID        pgtype.UUID
	AccountID int64
	TenantID  string
}

func (q *Queries) GetRewardForUpdate(ctx context.Context, arg GetRewardForUpdateParams,
) (Reward, error) {
	row := q.db.QueryRow(ctx, getRewardForUpdate, arg.ID, arg.AccountID, arg.TenantID)
	var i Reward
	err := scanReward(row, &i)
	return i, err
}

const updateRewardStatus = `-- name: UpdateRewardStatus :one
UPDATE rewards
SET status = $2
WHERE id = $1
RETURNING id, tenant_id, account_id, reward_type, rule_tag, description,
          status, dedupe_key, issued_at, expires_at
`

type UpdateRewardStatusParams struct {
	ID     pgtype.UUID
	Status string
}

func (q *Queries) UpdateRewardStatus(ctx context.Context, arg UpdateRewardStatusParams,
) (Reward, error) {
	row := q.db.QueryRow(ctx, updateRewardStatus, arg.ID, arg.Status)
	var i Reward
	err := scanReward(row, &i)
	return i, err
}

const expireRewards = `-- name: ExpireRewards :execresult
UPDATE rewards
SET status = 'expired'
WHERE status = 'active' AND expires_at IS NOT NULL AND expires_at < $1
`

func (q *Queries) ExpireRewards(ctx context.Context, now pgtype.Timestamptz) (pgconn.CommandTag, error) {
	return q.db.Exec(ctx, expireRewards, now)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReward(row scanner, i *Reward) error {
	return row.Scan(
		&i.ID,
		&i.TenantID,
		&i.AccountID,
		&i.RewardType,
		&i.RuleTag,
		&i.Description,
		&i.Status,
		&i.DedupeKey,
		&i.IssuedAt,
		&i.ExpiresAt,
	)
}
