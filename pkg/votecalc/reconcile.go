package votecalc

import (
	"context"
	"errors"
	"fmt"

	"github.com/alitto/pond/v2"
	"github.com/canopy-network/votecollector/pkg/governance"
	"go.uber.org/zap"
)

// EntityLister reads the governance component's counters and entities at the ledger head.
type EntityLister interface {
	Counts(ctx context.Context, stateVersion uint64) (governance.Counts, error)
	Entity(ctx context.Context, ref governance.EntityRef, stateVersion uint64) (governance.EntitySummary, error)
}

// WatermarkStore returns the stored lastVoteCount of every known entity.
type WatermarkStore interface {
	LastVoteCounts(ctx context.Context) (map[governance.EntityRef]uint64, error)
}

// Reconciler queues every entity whose on-chain vote count is ahead of the store.
type Reconciler struct {
	Logger   *zap.Logger
	Entities EntityLister
	Store    WatermarkStore
	Queue    *Queue
	Pool     pond.Pool
}

// Run walks all temperature checks and proposals and returns the ticket for what it queued.
// An entity that cannot be read is logged and skipped.
func (r *Reconciler) Run(ctx context.Context) (*Ticket, error) {
	counts, err := r.Entities.Counts(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("read governance counts: %w", err)
	}
	stored, err := r.Store.LastVoteCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("read vote watermarks: %w", err)
	}

	refs := make([]governance.EntityRef, 0, counts.TemperatureChecks+counts.Proposals)
	for id := uint64(0); id < counts.TemperatureChecks; id++ {
		refs = append(refs, governance.EntityRef{Kind: governance.KindTemperatureCheck, ID: id})
	}
	for id := uint64(0); id < counts.Proposals; id++ {
		refs = append(refs, governance.EntityRef{Kind: governance.KindProposal, ID: id})
	}

	results := make([]*governance.RecalculationRequest, len(refs))
	group := r.Pool.NewGroupContext(ctx)
	groupCtx := group.Context()
	for i, ref := range refs {
		i, ref := i, ref
		group.Submit(func() {
			if groupCtx.Err() != nil {
				return
			}
			summary, err := r.Entities.Entity(groupCtx, ref, 0)
			if err != nil {
				r.Logger.Warn("Reconciliation could not read entity", zap.Stringer("entity", ref), zap.Error(err))
				return
			}
			if summary.VoteCount <= stored[ref] {
				return
			}
			results[i] = &governance.RecalculationRequest{
				Ref:              ref,
				VoteStore:        summary.VoteStore,
				OnChainVoteCount: summary.VoteCount,
				Start:            summary.Start,
			}
		})
	}
	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, pond.ErrGroupStopped) {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var reqs []governance.RecalculationRequest
	for _, req := range results {
		if req != nil {
			reqs = append(reqs, *req)
		}
	}
	r.Logger.Info("Reconciliation complete",
		zap.Uint64("temperature_checks", counts.TemperatureChecks),
		zap.Uint64("proposals", counts.Proposals),
		zap.Int("queued", len(reqs)))
	return r.Queue.Enqueue(reqs...), nil
}
