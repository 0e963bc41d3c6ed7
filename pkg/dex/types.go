// Package dex values AMM liquidity positions in XRD.
package dex

import (
	"sort"

	"github.com/canopy-network/votecollector/pkg/gateway"
	"github.com/shopspring/decimal"
)

// divisionPlaces bounds quotients computed outside the fixed-point shape math.
const divisionPlaces = 20

// PoolKind is the closed set of position sources reported in a breakdown.
type PoolKind uint8

const (
	PoolSimple PoolKind = iota + 1
	PoolPrecision
	PoolShape
	PoolLSULP
)

func (k PoolKind) String() string {
	switch k {
	case PoolSimple:
		return "simple"
	case PoolPrecision:
		return "precision"
	case PoolShape:
		return "shape"
	case PoolLSULP:
		return "lsulp"
	default:
		return "unknown"
	}
}

// MarshalText renders the kind by name in JSON breakdowns.
func (k PoolKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// PoolUnitPool is a fungible-LP pool.
type PoolUnitPool struct {
	Name        string `json:"name"`
	PoolAddress string `json:"poolAddress"`
	LPResource  string `json:"lpResourceAddress"`
}

// PrecisionPool is a concentrated-liquidity pool with NFT receipts and continuous ticks.
type PrecisionPool struct {
	Name          string `json:"name"`
	Version       string `json:"version,omitempty"`
	Component     string `json:"componentAddress"`
	LPResource    string `json:"lpResourceAddress"`
	TokenX        string `json:"token_x"`
	TokenY        string `json:"token_y"`
	DivisibilityX int32  `json:"divisibility_x"`
	DivisibilityY int32  `json:"divisibility_y"`
}

// ShapePool is a discrete-bin pool with NFT liquidity receipts.
type ShapePool struct {
	Name             string `json:"name"`
	Component        string `json:"componentAddress"`
	TokenX           string `json:"token_x"`
	TokenY           string `json:"token_y"`
	LiquidityReceipt string `json:"liquidity_receipt"`
}

// Contribution is one pool's XRD value for an account.
type Contribution struct {
	PoolName  string          `json:"poolName"`
	PoolKind  PoolKind        `json:"poolType"`
	Component string          `json:"componentAddress"`
	XRDValue  decimal.Decimal `json:"xrdValue"`
}

// Result is a per-account total plus the pools that produced it.
type Result struct {
	Totals    map[string]decimal.Decimal
	Breakdown map[string][]Contribution
}

// NewResult returns an empty Result.
func NewResult() Result {
	return Result{Totals: map[string]decimal.Decimal{}, Breakdown: map[string][]Contribution{}}
}

// Add records a nonzero contribution for account.
func (r Result) Add(account string, c Contribution) {
	if c.XRDValue.IsZero() {
		return
	}
	r.Totals[account] = r.Totals[account].Add(c.XRDValue)
	r.Breakdown[account] = append(r.Breakdown[account], c)
}

// Total returns the account's total, zero when absent.
func (r Result) Total(account string) decimal.Decimal {
	return r.Totals[account]
}

// Holdings are the fungible and non-fungible balances of a set of accounts at one state version.
type Holdings struct {
	Fungibles    map[string]map[string]decimal.Decimal
	NonFungibles map[string][]gateway.NonFungibleResource
}

// NewHoldings returns empty holdings.
func NewHoldings() Holdings {
	return Holdings{
		Fungibles:    map[string]map[string]decimal.Decimal{},
		NonFungibles: map[string][]gateway.NonFungibleResource{},
	}
}

// SetFungibles records an account's fungible balances.
func (h Holdings) SetFungibles(account string, amounts []gateway.FungibleAmount) {
	m := make(map[string]decimal.Decimal, len(amounts))
	for _, a := range amounts {
		m[a.ResourceAddress] = m[a.ResourceAddress].Add(a.Amount)
	}
	h.Fungibles[account] = m
}

// Balance returns the account's balance of resource, zero when absent.
func (h Holdings) Balance(account, resource string) decimal.Decimal {
	return h.Fungibles[account][resource]
}

// Accounts returns every account with any holdings, sorted.
func (h Holdings) Accounts() []string {
	seen := map[string]bool{}
	for a := range h.Fungibles {
		seen[a] = true
	}
	for a := range h.NonFungibles {
		seen[a] = true
	}
	out := make([]string, 0, len(seen))
	for a := range seen {
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}
