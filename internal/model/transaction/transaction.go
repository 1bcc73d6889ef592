package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction is immutable once appended to the store.
type Transaction struct {
	CreatedAt    time.Time       `json:"created_at"`
	TenantID     string          `json:"-"`
	Currency     string          `json:"currency"`
	Amount       decimal.Decimal `json:"amount"`
	PointsEarned decimal.Decimal `json:"points_earned"`
	AccountID    int64           `json:"-"`
	ID           uuid.UUID       `json:"id"`
	Foreign      bool            `json:"foreign"`
}
