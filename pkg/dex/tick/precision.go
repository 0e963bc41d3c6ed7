// Package tick converts discretized price ticks to prices and back for the two concentrated
// liquidity layouts priced by the vote power snapshot.
package tick

import (
	"github.com/shopspring/decimal"
)

// workingPlaces bounds intermediate results. Token amounts are floored to at most 18 places, so the
// digits dropped here never reach a reported amount.
const workingPlaces = 60

// PrecisionBaseSqrt is sqrt(1.0001), the per-tick multiplier of a precision pool's sqrt price.
var PrecisionBaseSqrt = decimal.RequireFromString("1.000049998750062496094023416993798697")

// PriceSqrt returns PrecisionBaseSqrt^tick.
func PriceSqrt(t int64) decimal.Decimal {
	return powInt(PrecisionBaseSqrt, t)
}

// RemovableAmounts returns the token x and token y amounts backing a liquidity position bounded by
// leftSqrt and rightSqrt at the pool's current sqrt price. Each amount is floored to its token's
// divisibility.
func RemovableAmounts(liquidity, priceSqrt, leftSqrt, rightSqrt decimal.Decimal, divX, divY int32) (decimal.Decimal, decimal.Decimal) {
	zero := decimal.Zero

	if priceSqrt.LessThanOrEqual(leftSqrt) {
		x := decimal.Max(div(liquidity, leftSqrt).Sub(div(liquidity, rightSqrt)), zero)
		return floorTo(x, divX), zero
	}

	if priceSqrt.GreaterThanOrEqual(rightSqrt) {
		y := liquidity.Mul(rightSqrt.Sub(leftSqrt))
		return zero, floorTo(y, divY)
	}

	x := decimal.Max(div(liquidity, priceSqrt).Sub(div(liquidity, rightSqrt)), zero)
	y := liquidity.Mul(priceSqrt.Sub(leftSqrt))
	return floorTo(x, divX), floorTo(y, divY)
}

func floorTo(v decimal.Decimal, divisibility int32) decimal.Decimal {
	if divisibility < 0 {
		divisibility = 0
	}
	return v.Truncate(divisibility)
}

func div(a, b decimal.Decimal) decimal.Decimal {
	if b.IsZero() {
		return decimal.Zero
	}
	return a.DivRound(b, workingPlaces)
}

// powInt is square-and-multiply with every product rounded to workingPlaces.
func powInt(base decimal.Decimal, exp int64) decimal.Decimal {
	neg := exp < 0
	if neg {
		exp = -exp
	}
	result := decimal.NewFromInt(1)
	b := base
	for exp > 0 {
		if exp&1 == 1 {
			result = result.Mul(b).Round(workingPlaces)
		}
		exp >>= 1
		if exp > 0 {
			b = b.Mul(b).Round(workingPlaces)
		}
	}
	if neg {
		return div(decimal.NewFromInt(1), result)
	}
	return result
}
