// Package votepower computes the XRD-equivalent voting power of accounts at a ledger state version.
package votepower

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/canopy-network/votecollector/pkg/dex"
	"github.com/canopy-network/votecollector/pkg/gateway"
	"github.com/canopy-network/votecollector/pkg/metrics"
	"github.com/canopy-network/votecollector/pkg/utils"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	lsuNativeKind  = "ValidatorLiquidStakeUnit"
	lsuPlaces      = 2
	lsulpValuation = "dex_valuation_xrd"
	lsulpPoolName  = "LSULP Direct"
)

// Snapshot is the vote power of every account with a nonzero total.
type Snapshot struct {
	Total     map[string]decimal.Decimal
	Breakdown map[string][]dex.Contribution
}

// Power returns the account's total, zero when absent.
func (s Snapshot) Power(account string) decimal.Decimal {
	return s.Total[account]
}

// Snapshotter computes vote power. start selects the source epoch.
type Snapshotter interface {
	Snapshot(ctx context.Context, addresses []string, stateVersion uint64, start time.Time) (Snapshot, error)
}

// Service is the gateway-backed Snapshotter.
type Service struct {
	Logger  *zap.Logger
	Reader  gateway.Reader
	Network Network
	XRD     string
	// LSULPResource and LSULPComponent identify the liquid-staking pool. Ignored off mainnet.
	LSULPResource  string
	LSULPComponent string
	Catalog        Catalog
	// SourceWorkers runs the DEX sources. FetchWorkers runs account and bin map reads and must be
	// a different pool, since source tasks wait on fetch groups.
	SourceWorkers pond.Pool
	FetchWorkers  pond.Pool
	Metrics       *metrics.Metrics
}

var _ Snapshotter = (*Service)(nil)

// Snapshot reads the holdings of addresses at stateVersion and values them with the epoch in
// force at start. A failing DEX source counts as zero; failing account reads fail the snapshot.
func (s *Service) Snapshot(ctx context.Context, addresses []string, stateVersion uint64, start time.Time) (Snapshot, error) {
	out := Snapshot{Total: map[string]decimal.Decimal{}, Breakdown: map[string][]dex.Contribution{}}
	addresses = utils.Unique(addresses)
	if len(addresses) == 0 {
		return out, nil
	}
	epoch := s.Catalog.At(start)
	mainnet := s.Network.IsMainnet()

	filter := dex.TokenFilter{XRD: s.XRD, LSURates: s.lsuRates(ctx, stateVersion)}
	if mainnet && s.LSULPResource != "" {
		filter.LSULP = s.LSULPResource
		filter.LSULPRate = s.lsulpRate(ctx, stateVersion)
		s.Logger.Debug("LSULP rate", zap.String("rate", filter.LSULPRate.String()))
	}
	if err := ctx.Err(); err != nil {
		return out, err
	}

	var nftResources []string
	if mainnet {
		nftResources = epoch.NFTResources()
	}
	holdings, err := s.holdings(ctx, addresses, nftResources, stateVersion)
	if err != nil {
		return out, err
	}

	var sources []dex.Result
	if mainnet {
		sources = s.dexSources(ctx, epoch, holdings, addresses, filter, stateVersion)
		if err := ctx.Err(); err != nil {
			return out, err
		}
	} else {
		s.Logger.Debug("Skipping DEX sources off mainnet", zap.Stringer("network", s.Network))
	}

	for _, account := range addresses {
		total := decimal.Zero
		var breakdown []dex.Contribution

		if epoch.Has(SourceXRD) {
			total = total.Add(holdings.Balance(account, s.XRD))
		}
		if epoch.Has(SourceLSU) {
			for resource, rate := range filter.LSURates {
				bal := holdings.Balance(account, resource)
				if bal.IsZero() {
					continue
				}
				total = total.Add(bal.Mul(rate).Round(lsuPlaces))
			}
		}
		if mainnet && filter.LSULP != "" && epoch.Has(SourceLSULP) {
			lsulp := holdings.Balance(account, filter.LSULP).Mul(filter.LSULPRate)
			if !lsulp.IsZero() {
				total = total.Add(lsulp)
				breakdown = append(breakdown, dex.Contribution{
					PoolName:  lsulpPoolName,
					PoolKind:  dex.PoolLSULP,
					Component: filter.LSULP,
					XRDValue:  lsulp,
				})
			}
		}
		for _, r := range sources {
			total = total.Add(r.Total(account))
			breakdown = append(breakdown, r.Breakdown[account]...)
		}

		if total.IsZero() {
			continue
		}
		out.Total[account] = total
		if len(breakdown) > 0 {
			out.Breakdown[account] = breakdown
		}
	}

	s.Metrics.SnapshotAccounts.Add(float64(len(out.Total)))
	s.Logger.Info("Vote power snapshot complete",
		zap.Uint64("state_version", stateVersion),
		zap.Int("requested", len(addresses)),
		zap.Int("with_power", len(out.Total)),
	)
	return out, nil
}

// lsuRates maps each validator's LSU resource to its redemption value. Failures yield an empty map.
func (s *Service) lsuRates(ctx context.Context, stateVersion uint64) map[string]decimal.Decimal {
	rates := map[string]decimal.Decimal{}
	validators, err := s.Reader.Validators(ctx, stateVersion)
	if err != nil {
		s.Logger.Warn("Failed to list validators", zap.Uint64("state_version", stateVersion), zap.Error(err))
		return rates
	}
	lsus := make([]string, 0, len(validators))
	for _, v := range validators {
		if v.StakeUnitResource != "" {
			lsus = append(lsus, v.StakeUnitResource)
		}
	}
	if len(lsus) == 0 {
		return rates
	}
	details, err := s.Reader.EntityDetails(ctx, lsus, gateway.DetailsOpts{NativeResourceDetails: true}, stateVersion)
	if err != nil {
		s.Logger.Warn("Failed to build LSU converter map", zap.Uint64("state_version", stateVersion), zap.Error(err))
		return rates
	}
	for _, d := range details {
		if d.Type != "FungibleResource" || d.NativeKind != lsuNativeKind {
			continue
		}
		rates[d.Address] = d.RedemptionValue
	}
	s.Logger.Debug("LSU converter map", zap.Int("lsu_count", len(rates)))
	return rates
}

// lsulpRate is the pool's XRD valuation over the LSULP supply. Failures yield zero.
func (s *Service) lsulpRate(ctx context.Context, stateVersion uint64) decimal.Decimal {
	details, err := s.Reader.EntityDetails(ctx, []string{s.LSULPComponent, s.LSULPResource}, gateway.DetailsOpts{}, stateVersion)
	if err != nil {
		s.Logger.Warn("LSULP not readable at state version", zap.Uint64("state_version", stateVersion), zap.Error(err))
		return decimal.Zero
	}
	var valuation, supply decimal.Decimal
	var found bool
	for _, d := range details {
		switch d.Address {
		case s.LSULPComponent:
			if d.State == nil {
				continue
			}
			f, err := d.State.MustField(lsulpValuation)
			if err == nil {
				valuation, err = f.Decimal()
			}
			if err != nil {
				s.Logger.Warn("LSULP component state unreadable", zap.Error(err))
				return decimal.Zero
			}
			found = true
		case s.LSULPResource:
			supply = d.TotalSupply
		}
	}
	if !found {
		s.Logger.Warn("LSULP component not found at state version", zap.Uint64("state_version", stateVersion))
		return decimal.Zero
	}
	if supply.IsZero() {
		return decimal.Zero
	}
	return valuation.DivRound(supply, 20)
}

// holdings reads every account's fungible balances and, when nftResources is non-empty, its
// receipts of those resources. An account unknown to the gateway holds nothing.
func (s *Service) holdings(ctx context.Context, addresses, nftResources []string, stateVersion uint64) (dex.Holdings, error) {
	h := dex.NewHoldings()
	var mu sync.Mutex
	var firstErr error

	group := s.FetchWorkers.NewGroupContext(ctx)
	groupCtx := group.Context()
	for _, a := range addresses {
		account := a
		group.Submit(func() {
			if groupCtx.Err() != nil {
				return
			}
			fungibles, err := s.Reader.FungibleBalances(groupCtx, account, stateVersion)
			if err != nil && !notFound(err) {
				mu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("fungible balances of %s: %w", account, err)
				}
				mu.Unlock()
				return
			}
			var nfts []gateway.NonFungibleResource
			if len(nftResources) > 0 {
				nfts, err = s.Reader.NonFungibles(groupCtx, account, nftResources, stateVersion)
				if err != nil && !notFound(err) {
					mu.Lock()
					if firstErr == nil {
						firstErr = fmt.Errorf("non-fungibles of %s: %w", account, err)
					}
					mu.Unlock()
					return
				}
			}
			mu.Lock()
			h.SetFungibles(account, fungibles)
			if len(nfts) > 0 {
				h.NonFungibles[account] = nfts
			}
			mu.Unlock()
		})
	}
	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, pond.ErrGroupStopped) {
		return h, err
	}
	if err := ctx.Err(); err != nil {
		return h, err
	}
	return h, firstErr
}

// dexSource is one independent position valuator.
type dexSource struct {
	name string
	run  func(ctx context.Context) (dex.Result, error)
}

// dexSources runs the pool valuators concurrently. A failed source is logged and contributes nothing.
func (s *Service) dexSources(ctx context.Context, epoch Epoch, holdings dex.Holdings, addresses []string, filter dex.TokenFilter, stateVersion uint64) []dex.Result {
	sources := []dexSource{
		{name: "pool_unit", run: func(ctx context.Context) (dex.Result, error) {
			data, err := dex.FetchPoolUnitData(ctx, s.Logger, s.Reader, s.FetchWorkers, epoch.PoolUnit, stateVersion)
			if err != nil {
				return dex.Result{}, err
			}
			return dex.ValuePoolUnits(data, holdings, addresses, filter), nil
		}},
		{name: "precision", run: func(ctx context.Context) (dex.Result, error) {
			states, err := dex.FetchPrecisionStates(ctx, s.Logger, s.Reader, epoch.Precision(), stateVersion)
			if err != nil {
				return dex.Result{}, err
			}
			return dex.ValuePrecision(s.Logger, states, holdings, filter), nil
		}},
		{name: "shape", run: func(ctx context.Context) (dex.Result, error) {
			states, err := dex.FetchShapeStates(ctx, s.Logger, s.Reader, s.FetchWorkers, epoch.Shape, stateVersion)
			if err != nil {
				return dex.Result{}, err
			}
			return dex.ValueShape(s.Logger, states, holdings, filter), nil
		}},
	}

	results := make([]dex.Result, len(sources))
	group := s.SourceWorkers.NewGroupContext(ctx)
	groupCtx := group.Context()
	for i, src := range sources {
		i, src := i, src
		group.Submit(func() {
			if groupCtx.Err() != nil {
				return
			}
			res, err := src.run(groupCtx)
			if err != nil {
				if groupCtx.Err() == nil {
					s.Metrics.SnapshotSourceFailures.WithLabelValues(src.name).Inc()
					s.Logger.Warn("Vote power source failed, counting as zero",
						zap.String("source", src.name),
						zap.Uint64("state_version", stateVersion),
						zap.Error(err),
					)
				}
				res = dex.NewResult()
			}
			results[i] = res
		})
	}
	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, pond.ErrGroupStopped) {
		s.Logger.Warn("DEX source group failed", zap.Error(err))
	}

	out := make([]dex.Result, 0, len(results))
	for i, r := range results {
		if r.Totals == nil {
			continue
		}
		s.Logger.Debug("DEX source valued",
			zap.String("source", sources[i].name),
			zap.Int("accounts", len(r.Totals)),
		)
		out = append(out, r)
	}
	return out
}

func notFound(err error) bool {
	var apiErr *gateway.APIError
	return errors.As(err, &apiErr) && apiErr.NotFound()
}
