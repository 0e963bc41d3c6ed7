package dex

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/alitto/pond/v2"
	"github.com/canopy-network/votecollector/pkg/fixedpoint"
	"github.com/canopy-network/votecollector/pkg/gateway"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Bin is the aggregate liquidity of one shape pool tick bin.
type Bin struct {
	Amount     fixedpoint.I192
	TotalClaim fixedpoint.I192
}

// ShapeState is a shape pool's active bin and bin map at one state version.
type ShapeState struct {
	Pool             ShapePool
	HasCurrentTick   bool
	CurrentTick      int64
	BinSpan          int64
	ActiveX          fixedpoint.I192
	ActiveY          fixedpoint.I192
	ActiveTotalClaim fixedpoint.I192
	Bins             map[int64]Bin
}

// Resolve converts receipt claims (tick to claim amount) into token x and token y amounts.
// Bins below the current tick hold only token y, bins above only token x, and the active bin splits
// active_x and active_y by claim share. All math truncates at 18 places.
func (s ShapeState) Resolve(claims map[int64]fixedpoint.I192) (fixedpoint.I192, fixedpoint.I192) {
	x, y := fixedpoint.Zero(), fixedpoint.Zero()
	if !s.HasCurrentTick {
		return x, y
	}
	for t, claim := range claims {
		switch {
		case t < s.CurrentTick:
			if bin, ok := s.Bins[t]; ok {
				y = y.Add(claim.Div(bin.TotalClaim).Mul(bin.Amount))
			}
		case t > s.CurrentTick:
			if bin, ok := s.Bins[t]; ok {
				x = x.Add(claim.Div(bin.TotalClaim).Mul(bin.Amount))
			}
		default:
			share := claim.Div(s.ActiveTotalClaim)
			x = x.Add(s.ActiveX.Mul(share))
			y = y.Add(s.ActiveY.Mul(share))
		}
	}
	return x, y
}

// ParseShapeState reads the component state fields of a shape pool. The bin map is loaded separately.
func ParseShapeState(pool ShapePool, v gateway.Value) (ShapeState, string, error) {
	s := ShapeState{Pool: pool, Bins: map[int64]Bin{}}

	f, err := v.MustField("bin_span")
	if err != nil {
		return s, "", err
	}
	if s.BinSpan, err = f.Int64(); err != nil {
		return s, "", err
	}

	tickIndex, err := v.MustField("tick_index")
	if err != nil {
		return s, "", err
	}
	current, err := tickIndex.MustField("current")
	if err != nil {
		return s, "", err
	}
	inner, some, err := current.Option()
	if err != nil {
		return s, "", err
	}
	if some {
		if inner.Kind == "Tuple" {
			if inner, err = inner.Index(0); err != nil {
				return s, "", err
			}
		}
		if s.CurrentTick, err = inner.Int64(); err != nil {
			return s, "", err
		}
		s.HasCurrentTick = true
	}

	binMap, err := v.MustField("bin_map")
	if err != nil {
		return s, "", err
	}
	binMapAddress, err := binMap.Address()
	if err != nil {
		return s, "", err
	}

	for name, dst := range map[string]*fixedpoint.I192{
		"active_x":           &s.ActiveX,
		"active_y":           &s.ActiveY,
		"active_total_claim": &s.ActiveTotalClaim,
	} {
		f, err := v.MustField(name)
		if err != nil {
			return s, "", err
		}
		d, err := f.Decimal()
		if err != nil {
			return s, "", err
		}
		*dst = fixedpoint.FromDecimal(d)
	}
	return s, binMapAddress, nil
}

// ParseBinEntry reads one bin map entry: a Tuple(tick) key and an {amount, total_claim} value.
func ParseBinEntry(e gateway.KeyValueEntry) (int64, Bin, error) {
	key := e.Key
	if key.Kind == "Tuple" {
		k, err := key.Index(0)
		if err != nil {
			return 0, Bin{}, err
		}
		key = k
	}
	t, err := key.Int64()
	if err != nil {
		return 0, Bin{}, err
	}
	amount, err := decimalField(e.Value, "amount")
	if err != nil {
		return 0, Bin{}, err
	}
	claim, err := decimalField(e.Value, "total_claim")
	if err != nil {
		return 0, Bin{}, err
	}
	return t, Bin{Amount: fixedpoint.FromDecimal(amount), TotalClaim: fixedpoint.FromDecimal(claim)}, nil
}

// ParseLiquidityClaims reads a shape receipt's liquidity_claims map.
func ParseLiquidityClaims(v gateway.Value) (map[int64]fixedpoint.I192, error) {
	f, err := v.MustField("liquidity_claims")
	if err != nil {
		return nil, err
	}
	if f.Kind != "Map" {
		return nil, fmt.Errorf("liquidity_claims is %s, want Map", f.Kind)
	}
	out := make(map[int64]fixedpoint.I192, len(f.Entries))
	for _, e := range f.Entries {
		t, err := e.Key.Int64()
		if err != nil {
			return nil, err
		}
		d, err := e.Value.Decimal()
		if err != nil {
			return nil, err
		}
		out[t] = out[t].Add(fixedpoint.FromDecimal(d))
	}
	return out, nil
}

// FetchShapeStates reads every pool's state and bin map on workers, keyed by the pool's receipt
// resource. Pools that fail to load are skipped and logged.
func FetchShapeStates(ctx context.Context, logger *zap.Logger, reader gateway.Reader, workers pond.Pool, pools []ShapePool, stateVersion uint64) (map[string]ShapeState, error) {
	if len(pools) == 0 {
		return nil, nil
	}
	components := make([]string, 0, len(pools))
	for _, p := range pools {
		components = append(components, p.Component)
	}
	details, err := reader.EntityDetails(ctx, components, gateway.DetailsOpts{}, stateVersion)
	if err != nil {
		return nil, fmt.Errorf("shape pool states: %w", err)
	}
	byAddress := make(map[string]gateway.EntityDetails, len(details))
	for _, d := range details {
		byAddress[d.Address] = d
	}

	var mu sync.Mutex
	out := make(map[string]ShapeState, len(pools))

	group := workers.NewGroupContext(ctx)
	groupCtx := group.Context()
	for _, p := range pools {
		pool := p
		d, ok := byAddress[pool.Component]
		if !ok || d.State == nil {
			logger.Warn("Shape pool has no state", zap.String("pool", pool.Name))
			continue
		}
		group.Submit(func() {
			if groupCtx.Err() != nil {
				return
			}
			state, binMap, err := ParseShapeState(pool, *d.State)
			if err != nil {
				logger.Warn("Skipping unparseable shape pool", zap.String("pool", pool.Name), zap.Error(err))
				return
			}
			entries, err := reader.KeyValueStoreEntries(groupCtx, binMap, stateVersion)
			if err != nil {
				// Matches a missing bin map: positions outside the active bin count as zero.
				logger.Warn("Shape pool bin map unavailable", zap.String("pool", pool.Name), zap.Error(err))
				entries = nil
			}
			for _, e := range entries {
				t, bin, err := ParseBinEntry(e)
				if err != nil {
					logger.Warn("Skipping unparseable bin", zap.String("pool", pool.Name), zap.Error(err))
					continue
				}
				state.Bins[t] = bin
			}
			mu.Lock()
			out[pool.LiquidityReceipt] = state
			mu.Unlock()
		})
	}
	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, pond.ErrGroupStopped) {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ValueShape values every account's shape receipts.
func ValueShape(logger *zap.Logger, states map[string]ShapeState, holdings Holdings, filter TokenFilter) Result {
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
				claims, err := ParseLiquidityClaims(*nft.Data)
				if err != nil {
					logger.Debug("Skipping unparseable shape receipt",
						zap.String("resource", nfr.ResourceAddress),
						zap.String("id", nft.ID),
						zap.Error(err))
					continue
				}
				x, y := state.Resolve(claims)
				xrd = xrd.Add(filter.ToXRD(state.Pool.TokenX, x.Decimal())).Add(filter.ToXRD(state.Pool.TokenY, y.Decimal()))
			}
			res.Add(account, Contribution{
				PoolName:  "CaviarNine Shape: " + state.Pool.Name,
				PoolKind:  PoolShape,
				Component: state.Pool.Component,
				XRDValue:  xrd,
			})
		}
	}
	return res
}

func decimalField(v gateway.Value, name string) (decimal.Decimal, error) {
	f, err := v.MustField(name)
	if err != nil {
		return decimal.Zero, err
	}
	return f.Decimal()
}
