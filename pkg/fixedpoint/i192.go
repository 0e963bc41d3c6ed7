// Package fixedpoint implements the ledger VM's 18-digit Decimal arithmetic.
//
// I192 stores a value as an integer count of 10^-18 units. Every operation truncates toward
// zero at 18 fractional digits right after it is computed, so chained arithmetic drifts exactly
// the way on-ledger math does.
package fixedpoint

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// Scale is the number of fractional digits.
const Scale = 18

var unit = new(big.Int).Exp(big.NewInt(10), big.NewInt(Scale), nil)

// I192 is an immutable fixed-point decimal. The zero value is 0.
type I192 struct {
	v *big.Int
}

// Zero returns 0.
func Zero() I192 { return I192{v: new(big.Int)} }

// One returns 1.
func One() I192 { return I192{v: new(big.Int).Set(unit)} }

// Parse reads a decimal string, truncating anything past 18 fractional digits toward zero.
func Parse(s string) (I192, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return I192{}, fmt.Errorf("parse i192 %q: %w", s, err)
	}
	return FromDecimal(d), nil
}

// MustParse is Parse for constants and tests.
func MustParse(s string) I192 {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// FromDecimal converts d, truncating toward zero at 18 fractional digits.
func FromDecimal(d decimal.Decimal) I192 {
	// BigInt drops the fractional part toward zero.
	return I192{v: d.Shift(Scale).BigInt()}
}

func (a I192) raw() *big.Int {
	if a.v == nil {
		return new(big.Int)
	}
	return a.v
}

// Add returns a + b.
func (a I192) Add(b I192) I192 {
	return I192{v: new(big.Int).Add(a.raw(), b.raw())}
}

// Sub returns a - b.
func (a I192) Sub(b I192) I192 {
	return I192{v: new(big.Int).Sub(a.raw(), b.raw())}
}

// Mul returns a * b truncated toward zero.
func (a I192) Mul(b I192) I192 {
	p := new(big.Int).Mul(a.raw(), b.raw())
	return I192{v: p.Quo(p, unit)}
}

// Div returns a / b truncated toward zero. Division by zero yields zero.
func (a I192) Div(b I192) I192 {
	if b.IsZero() {
		return Zero()
	}
	n := new(big.Int).Mul(a.raw(), unit)
	return I192{v: n.Quo(n, b.raw())}
}

func (a I192) IsZero() bool { return a.raw().Sign() == 0 }

func (a I192) Sign() int { return a.raw().Sign() }

// Cmp compares a and b like big.Int.Cmp.
func (a I192) Cmp(b I192) int { return a.raw().Cmp(b.raw()) }

func (a I192) Equal(b I192) bool { return a.Cmp(b) == 0 }

// Decimal converts to an exact shopspring decimal.
func (a I192) Decimal() decimal.Decimal {
	return decimal.NewFromBigInt(a.raw(), -Scale)
}

// String renders the value with exactly 18 fractional digits.
func (a I192) String() string {
	return a.Decimal().StringFixed(Scale)
}
