// source: accounts.sql

package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

const createAccount = `-- name: CreateAccount :one
INSERT INTO accounts (tenant_id, external_id, birth_date, joining_date, points)
VALUES ($1, $2, $3, $4, $5)
RETURNING id
`

type CreateAccountParams struct {
	TenantID    string
	ExternalID  string
	BirthDate   pgtype.Date
	JoiningDate pgtype.Timestamptz
	Points      pgtype.Numeric
}

func (q *Queries) CreateAccount(ctx context.Context, arg CreateAccountParams) (int64, error) {
	row := q.db.QueryRow(ctx, createAccount,
		arg.TenantID,
		arg.ExternalID,
		arg.BirthDate,
		arg.JoiningDate,
		arg.Points,
	)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const findAccountByExternalID = `-- name: FindAccountByExternalID :one
SELECT id, tenant_id, external_id, birth_date, joining_date, points
FROM accounts
WHERE tenant_id = $1 AND external_id = $2
`

type FindAccountByExternalIDParams struct {
	TenantID   string
	ExternalID string
}

func (q *Queries) FindAccountByExternalID(ctx context.Context, arg FindAccountByExternalIDParams,
) (Account, error) {
	row := q.db.QueryRow(ctx, findAccountByExternalID, arg.TenantID, arg.ExternalID)
	var i Account
	err := row.Scan(
		&i.ID,
		&i.TenantID,
		&i.ExternalID,
		&i.BirthDate,
		&i.JoiningDate,
		&i.Points,
	)
	return i, err
}

const lockAccount = `-- name: LockAccount :one
SELECT id, tenant_id, external_id, birth_date, joining_date, points
FROM accounts
WHERE id = $1 AND tenant_id = $2
FOR UPDATE
`

type LockAccountParams struct {
	ID       int64
	TenantID string
}

func (q *Queries) LockAccount(ctx context.Context, arg LockAccountParams) (Account, error) {
	row := q.db.QueryRow(ctx, lockAccount, arg.ID, arg.TenantID)
	var i Account
	err := row.Scan(
		&i.ID,
		&i.TenantID,
		&i.ExternalID,
		&i.BirthDate,
		&i.JoiningDate,
		&i.Points,
	)
	return i, err
}

const updateAccountPoints = `-- name: UpdateAccountPoints :execresult
UPDATE accounts
SET points = $3
WHERE id = $1 AND tenant_id = $2
`

type UpdateAccountPointsParams struct {
	ID       int64
	TenantID string
	Points   pgtype.Numeric
}

func (q *Queries) UpdateAccountPoints(ctx context.Context, arg UpdateAccountPointsParams,
) (pgconn.CommandTag, error) {
	return q.db.Exec(ctx, updateAccountPoints, arg.ID, arg.TenantID, arg.Points)
}

const listAccountsByBirthMonth = `-- name: ListAccountsByBirthMonth :many
SELECT id, tenant_id, external_id, birth_date, joining_date, points
FROM accounts
WHERE birth_date IS NOT NULL AND EXTRACT(MONTH FROM birth_date)::INT = $1::INT
ORDER BY id
`

func (q *Queries) ListAccountsByBirthMonth(ctx context.Context, month int32) ([]Account, error) {
	rows, err := q.db.Query(ctx, listAccountsByBirthMonth, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Account
	for rows.Next() {
		var i Account
		if err := rows.Scan(
			&i.ID,
			&i.TenantID,
			&i.ExternalID,
			&i.BirthDate,
			&i.JoiningDate,
			&i.Points,
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

const listAccountsByTenant = `-- name: ListAccountsByTenant :many
SELECT id, tenant_id, external_id, birth_date, joining_date, points
FROM accounts
WHERE tenant_id = $1
ORDER BY id
`

func (q *Queries) ListAccountsByTenant(ctx context.Context, tenantID string) ([]Account, error) {
	rows, err := q.db.Query(ctx, listAccountsByTenant, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Account
	for rows.Next() {
		var i Account
		if err := rows.Scan(
			&i.ID,
			&i.TenantID,
			&i.ExternalID,
			&i.BirthDate,
			&i.JoiningDate,
			&i.Points,
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

const setLockTimeout = `-- name: SetLockTimeout :exec
SELECT set_config('lock_timeout', $1::TEXT, true)
`

// SetLockTimeout is scoped to the current transaction.
func (q *Queries) SetLockTimeout(ctx context.Context, timeout string) error {
	_, err := q.db.Exec(ctx, setLockTimeout, timeout)
	return err
}

const getAccount = `-- name: GetAccount :one
SELECT id, tenant_id, external_id, birth_date, joining_date, points
FROM accounts
WHERE id = $1 AND tenant_id = $2
`

type GetAccountParams struct {
	ID       int64
	TenantID string
}

func (q *Queries) GetAccount(ctx context.Context, arg GetAccountParams) (Account, error) {
	row := q.db.QueryRow(ctx, getAccount, arg.ID, arg.TenantID)
	var i Account
	err := row.Scan(
		&i.ID,
		&i.TenantID,
		&i.ExternalID,
		&i.BirthDate,
		&i.JoiningDate,
		&i.Points,
	)
	return i, err
}
