package db

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type Account struct {
	ID          int64
	TenantID    string
	ExternalID  string
	BirthDate   pgtype.Date
	JoiningDate pgtype.Timestamptz
	Points      pgtype.Numeric
}

type Reward struct {
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

type Transaction struct {
	ID           pgtype.UUID
	TenantID     string
	AccountID    int64
	Amount       pgtype.Numeric
	Currency     string
	IsForeign    bool
	PointsEarned pgtype.Numeric
	CreatedAt    pgtype.Timestamptz
}
