package dex

import "github.com/shopspring/decimal"

// TokenKind classifies a resource for XRD conversion.
type TokenKind uint8

const (
	TokenOther TokenKind = iota
	TokenXRD
	TokenLSULP
	TokenLSU
)

// TokenFilter converts pool tokens into XRD. Only XRD, LSULP and validator LSUs carry value.
type TokenFilter struct {
	XRD       string
	LSULP     string
	LSULPRate decimal.Decimal
	// LSURates maps each LSU resource to its XRD redemption value per unit.
	LSURates map[string]decimal.Decimal
}

// Classify returns the kind of resource.
func (f TokenFilter) Classify(resource string) TokenKind {
	switch {
	case resource == f.XRD:
		return TokenXRD
	case f.LSULP != "" && resource == f.LSULP:
		return TokenLSULP
	default:
		if _, ok := f.LSURates[resource]; ok {
			return TokenLSU
		}
		return TokenOther
	}
}

// ToXRD converts amount of resource into XRD. Unrecognized resources are worth zero.
func (f TokenFilter) ToXRD(resource string, amount decimal.Decimal) decimal.Decimal {
	switch f.Classify(resource) {
	case TokenXRD:
		return amount
	case TokenLSULP:
		return amount.Mul(f.LSULPRate)
	case TokenLSU:
		return amount.Mul(f.LSURates[resource])
	default:
		return decimal.Zero
	}
}
