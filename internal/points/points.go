// Package points turns a transaction amount into earned points.
package points

import (
	"github.com/shopspring/decimal"

	"github.com/talx-hub/gopher-loyalty/internal/model"
)

// baseShift is the power of ten amounts are scaled by: 10 points per 100.
const baseShift = -1

var foreignMultiplier = decimal.NewFromInt(2)

// Compute returns amount / 100 * 10, doubled for foreign spending,
// rounded once with model.RoundPoints. The scaling is an exact decimal
// shift, so nothing is lost before the rounding. amount must be positive;
// validation belongs to the caller.
func Compute(amount decimal.Decimal, foreign bool) decimal.Decimal {
	earned := amount.Shift(baseShift)
	if foreign {
		earned = earned.Mul(foreignMultiplier)
	}
	return model.RoundPoints(earned)
}
