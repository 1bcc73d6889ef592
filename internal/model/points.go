package model

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// PointsPrecision is the number of decimal places every points value carries.
const PointsPrecision = 2

// RoundPoints applies the single rounding policy for points:
// round half to even at PointsPrecision places.
func RoundPoints(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(PointsPrecision)
}

func ToPGNumeric(d decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{
		Int:   new(big.Int).Set(d.Coefficient()),
		Exp:   d.Exponent(),
		Valid: true,
	}
}

func FromPGNumeric(n pgtype.Numeric) (decimal.Decimal, error) {
	if !n.Valid {
		return decimal.Zero, nil
	}
	if n.NaN || n.InfinityModifier != pgtype.Finite {
		return decimal.Zero, errors.New("numeric value is not finite")
	}
	if n.Int == nil {
		return decimal.Zero, fmt.Errorf("numeric value has no coefficient")
	}
	return decimal.NewFromBigInt(n.Int, n.Exp), nil
}
