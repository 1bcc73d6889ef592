// source: transactions.sql

package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createTransaction = `-- name: CreateTransaction :exec
INSERT INTO transactions (id, tenant_id, account_id, amount, currency, is_foreign, points_earned, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

type CreateTransactionParams struct {
	ID           pgtype.UUID
	TenantID     string
	AccountID    int64
	Amount       pgtype.Numeric
	Currency     string
	IsForeign    bool
	PointsEarned pgtype.Numeric
	CreatedAt    pgtype.Timestamptz
}

func (q *Queries) CreateTransaction(ctx context.Context, arg CreateTransactionParams) error {
	_, err := q.db.Exec(ctx, createTransaction,
		arg.ID,
		arg.TenantID,
		arg.AccountID,
		arg.Amount,
		arg.Currency,
		arg.IsForeign,
		arg.PointsEarned,
		arg.CreatedAt,
	)
	return err
}

const sumPoints = `-- name: SumPoints :one
SELECT COALESCE(SUM(points_earned), 0)::NUMERIC AS total
FROM transactions
WHERE account_id = $1 AND tenant_id = $2
  AND created_at >= $3 AND created_at <= $4
`

type SumWindowParams struct {
	AccountID int64
	TenantID  string
	FromTs    pgtype.Timestamptz
	ToTs      pgtype.Timestamptz
}

func (q *Queries) SumPoints(ctx context.Context, arg SumWindowParams) (pgtype.Numeric, error) {
	row := q.db.QueryRow(ctx, sumPoints, arg.AccountID, arg.TenantID, arg.FromTs, arg.ToTs)
	var total pgtype.Numeric
	err := row.Scan(&total)
	return total, err
}

const sumAmount = `-- name: SumAmount :one
SELECT COALESCE(SUM(amount), 0)::NUMERIC AS total
FROM transactions
WHERE account_id = $1 AND tenant_id = $2
  AND created_at >= $3 AND created_at <= $4
`

func (q *Queries) SumAmount(ctx context.Context, arg SumWindowParams) (pgtype.Numeric, error) {
	row := q.db.QueryRow(ctx, sumAmount, arg.AccountID, arg.TenantID, arg.FromTs, arg.ToTs)
	var total pgtype.Numeric
	err := row.Scan(&total)
	return total, err
}

const listTransactionsByAccount = `-- name: ListTransactionsByAccount :many
SELECT id, tenant_id, account_id, amount, currency, is_foreign, points_earned, created_at
FROM transactions
WHERE account_id = $1 AND tenant_id = $2
ORDER BY created_at, id
`

type ListTransactionsByAccountParams struct {
	AccountID int64
	TenantID  string
}

func (q *Queries) ListTransactionsByAccount(ctx context.Context, arg ListTransactionsByAccountParams,
) ([]Transaction, error) {
	rows, err := q.db.Query(ctx, listTransactionsByAccount, arg.AccountID, arg.TenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Transaction
	for rows.Next() {
		var i Transaction
		if err := rows.Scan(
			&i.ID,
			&i.TenantID,
			&i.AccountID,
			&i.Amount,
			&i.Currency,
			&i.IsForeign,
			&i.PointsEarned,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
