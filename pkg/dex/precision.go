package dex

import (
	"context"
	"fmt"

	"github.com/canopy-network/votecollector/pkg/dex/tick"
	"github.com/canopy-network/votecollector/pkg/gateway"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PrecisionState is a precision pool's current sqrt price.
type PrecisionState struct {
	Pool      PrecisionPool
	PriceSqrt decimal.Decimal
}

// LiquidityPosition is the data of a precision pool receipt NFT.
type LiquidityPosition struct {
	Liquidity  decimal.Decimal
	LeftBound  int64
	RightBound int64
}

// ParseLiquidityPosition reads a receipt's liquidity and tick bounds.
func ParseLiquidityPosition(v gateway.Value) (LiquidityPosition, error) {
	var pos LiquidityPosition
	f, err := v.MustField("liquidity")
	if err != nil {
		return pos, err
	}
	if pos.Liquidity, err = f.Decimal(); err != nil {
		return pos, err
	}
	if f, err = v.MustField("left_bound"); err != nil {
		return pos, err
	}
	if pos.LeftBound, err = f.Int64(); err != nil {
		return pos, err
	}
	if f, err = v.MustField("right_bound"); err != nil {
		return pos, err
	}
	if pos.RightBound, err = f.Int64(); err != nil {
		return pos, err
	}
	return pos, nil
}

// Amounts returns the token amounts backing pos at the pool's current price.
func (s PrecisionState) Amounts(pos LiquidityPosition) (decimal.Decimal, decimal.Decimal) {
	return tick.RemovableAmounts(
		pos.Liquidity,
		s.PriceSqrt,
		tick.PriceSqrt(pos.LeftBound),
		tick.PriceSqrt(pos.RightBound),
		s.Pool.DivisibilityX,
		s.Pool.DivisibilityY,
	)
}

// FetchPrecisionStates reads each pool's price_sqrt, keyed by the pool's receipt resource.
// Pools without readable state are skipped and logged.
func FetchPrecisionStates(ctx context.Context, logger *zap.Logger, reader gateway.Reader, pools []PrecisionPool, stateVersion uint64) (map[string]PrecisionState, error) {
	if len(pools) == 0 {
		return nil, nil
	}
	components := make([]string, 0, len(pools))
	for _, p := range pools {
		components = append(components, p.Component)
	}
	details, err := reader.EntityDetails(ctx, components, gateway.DetailsOpts{}, stateVersion)
	if err != nil {
		return nil, fmt.Errorf("precision pool states: %w", err)
	}
	byAddress := make(map[string]gateway.EntityDetails, len(details))
	for _, d := range details {
		byAddress[d.Address] = d
	}

	out := make(map[string]PrecisionState, len(pools))
	for _, p := range pools {
		d, ok := byAddress[p.Component]
		if !ok || d.State == nil {
			logger.Warn("Precision pool has no state", zap.String("pool", p.Name))
			continue
		}
		f, err := d.State.MustField("price_sqrt")
		if err == nil {
			var price decimal.Decimal
			if price, err = f.Decimal(); err == nil {
				out[p.LPResource] = PrecisionState{Pool: p, PriceSqrt: price}
				continue
			}
		}
		logger.Warn("Skipping unparseable precision pool", zap.String("pool", p.Name), zap.Error(err))
	}
	return out, nil
}

// ValuePrecision values every account's precision receipts.
func ValuePrecision(logger *zap.Logger, states map[string]PrecisionState, holdings Holdings, filter TokenFilter) Result {
	res := NewResult()
	for _, account := range holdings.Accounts() {
		for _, nfr := range holdings.NonFungibles[account] {
			state, ok := states[nfr.ResourceAddress]
			if !ok {
				continue
			}
			xrd := decimal.Zero
			for _, nft := range nfr.Items {
				if nft.Burned || nft.Data == nil {
					continue
				}
				pos, err := ParseLiquidityPosition(*nft.Data)
				if err != nil {
					logger.Debug("Skipping unparseable precision receipt",
						zap.String("resource", nfr.ResourceAddress),
						zap.String("id", nft.ID),
						zap.Error(err))
					continue
				}
				if pos.Liquidity.IsZero() {
					continue
				}
				x, y := state.Amounts(pos)
				xrd = xrd.Add(filter.ToXRD(state.Pool.TokenX, x)).Add(filter.ToXRD(state.Pool.TokenY, y))
			}
			res.Add(account, Contribution{
				PoolName:  fmt.Sprintf("Ociswap Precision %s: %s", versionOrDefault(state.Pool.Version), state.Pool.Name),
				PoolKind:  PoolPrecision,
				Component: state.Pool.Component,
				XRDValue:  xrd,
			})
		}
	}
	return res
}

func versionOrDefault(v string) string {
	if v == "" {
		return "V2"
	}
	return v
}
