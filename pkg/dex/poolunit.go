package dex

import (
	"context"
	"errors"
	"fmt"

	"github.com/alitto/pond/v2"
	"github.com/canopy-network/votecollector/pkg/gateway"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PoolResource is one underlying token of a pool and its amount per LP unit.
type PoolResource struct {
	Resource  string
	UnitValue decimal.Decimal
}

// PoolUnitData is a pool-unit pool priced at one state version.
type PoolUnitData struct {
	Pool        PoolUnitPool
	TotalSupply decimal.Decimal
	Resources   []PoolResource
}

// NewPoolUnitData prices every pool token per LP unit. A pool with no LP supply is worth nothing.
func NewPoolUnitData(pool PoolUnitPool, totalSupply decimal.Decimal, balances []gateway.FungibleAmount) PoolUnitData {
	d := PoolUnitData{Pool: pool, TotalSupply: totalSupply}
	for _, b := range balances {
		unit := decimal.Zero
		if totalSupply.IsPositive() {
			unit = b.Amount.DivRound(totalSupply, divisionPlaces)
		}
		d.Resources = append(d.Resources, PoolResource{Resource: b.ResourceAddress, UnitValue: unit})
	}
	return d
}

// Share returns the underlying token amounts redeemable for lp units of the pool.
func (d PoolUnitData) Share(lp decimal.Decimal) []gateway.FungibleAmount {
	out := make([]gateway.FungibleAmount, 0, len(d.Resources))
	for _, r := range d.Resources {
		out = append(out, gateway.FungibleAmount{ResourceAddress: r.Resource, Amount: lp.Mul(r.UnitValue)})
	}
	return out
}

// FetchPoolUnitData reads pool balances and LP supplies, one balance read per pool on workers.
// Pools whose state cannot be read are skipped and logged. Output keeps the order of pools.
func FetchPoolUnitData(ctx context.Context, logger *zap.Logger, reader gateway.Reader, workers pond.Pool, pools []PoolUnitPool, stateVersion uint64) ([]PoolUnitData, error) {
	if len(pools) == 0 {
		return nil, nil
	}

	lpAddresses := make([]string, 0, len(pools))
	for _, p := range pools {
		lpAddresses = append(lpAddresses, p.LPResource)
	}
	details, err := reader.EntityDetails(ctx, lpAddresses, gateway.DetailsOpts{}, stateVersion)
	if err != nil {
		return nil, fmt.Errorf("lp resource details: %w", err)
	}
	supply := make(map[string]decimal.Decimal, len(details))
	for _, d := range details {
		if d.Type == "FungibleResource" {
			supply[d.Address] = d.TotalSupply
		}
	}

	fetched := make([]*PoolUnitData, len(pools))
	group := workers.NewGroupContext(ctx)
	groupCtx := group.Context()
	for i, p := range pools {
		i, pool := i, p
		group.Submit(func() {
			if groupCtx.Err() != nil {
				return
			}
			balances, err := reader.FungibleBalances(groupCtx, pool.PoolAddress, stateVersion)
			if err != nil {
				if groupCtx.Err() == nil {
					logger.Warn("Skipping pool-unit pool", zap.String("pool", pool.Name), zap.Error(err))
				}
				return
			}
			data := NewPoolUnitData(pool, supply[pool.LPResource], balances)
			fetched[i] = &data
		})
	}
	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, pond.ErrGroupStopped) {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]PoolUnitData, 0, len(pools))
	for _, d := range fetched {
		if d != nil {
			out = append(out, *d)
		}
	}
	return out, nil
}

// ValuePoolUnits values every account's LP holdings across pools.
func ValuePoolUnits(data []PoolUnitData, holdings Holdings, accounts []string, filter TokenFilter) Result {
	res := NewResult()
	for _, account := range accounts {
		for _, pool := range data {
			lp := holdings.Balance(account, pool.Pool.LPResource)
			if lp.IsZero() {
				continue
			}
			xrd := decimal.Zero
			for _, amt := range pool.Share(lp) {
				xrd = xrd.Add(filter.ToXRD(amt.ResourceAddress, amt.Amount))
			}
			name := pool.Pool.Name
			if name == "" {
				name = pool.Pool.PoolAddress
			}
			res.Add(account, Contribution{
				PoolName:  name,
				PoolKind:  PoolSimple,
				Component: pool.Pool.PoolAddress,
				XRDValue:  xrd,
			})
		}
	}
	return res
}
