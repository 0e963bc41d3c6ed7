// Package votecalc keeps stored vote tallies in step with the on-chain vote lists of governance
// entities.
package votecalc

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/canopy-network/votecollector/pkg/db/postgres/collector"
	"github.com/canopy-network/votecollector/pkg/governance"
	"github.com/canopy-network/votecollector/pkg/metrics"
	"github.com/canopy-network/votecollector/pkg/votepower"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ErrInvariant marks a store state that a correct run can never produce.
var ErrInvariant = errors.New("vote calculation invariant violated")

// maxCommitAttempts bounds retries after a concurrent commit moved the watermark.
const maxCommitAttempts = 3

// VoteStore is the persisted calculation state.
type VoteStore interface {
	GetOrCreateState(ctx context.Context, ref governance.EntityRef) (collector.State, error)
	AccountVotesByAddresses(ctx context.Context, stateID int64, accounts []string) ([]collector.AccountVote, error)
	CommitVotes(ctx context.Context, c collector.Commit) error
}

// VoteSource reads an entity's on-chain vote list by 1-based inclusive index range.
type VoteSource interface {
	VotesByIndex(ctx context.Context, kind governance.EntityKind, store string, from, to uint64) ([]governance.Vote, error)
}

// StateVersionResolver maps a wall-clock instant to the ledger state version in force then.
type StateVersionResolver interface {
	StateVersionAt(ctx context.Context, at time.Time) (uint64, error)
}

// Outcome summarizes one calculation.
type Outcome struct {
	Ref           governance.EntityRef
	Applied       bool
	FirstTime     int
	Revotes       int
	LastVoteCount uint64
}

// Engine applies new on-chain votes to the stored tallies.
type Engine struct {
	Logger   *zap.Logger
	Store    VoteStore
	Votes    VoteSource
	Ledger   StateVersionResolver
	Snapshot votepower.Snapshotter
	Metrics  *metrics.Metrics
}

// Calculate brings the entity's tallies up to req.OnChainVoteCount. A request at or below the
// stored watermark is a no-op, so redundant and stale requests are safe. A commit that loses a race
// with another calculation of the same entity writes nothing and is recomputed from fresh state.
func (e *Engine) Calculate(ctx context.Context, req governance.RecalculationRequest) (out Outcome, err error) {
	kind := req.Ref.Kind.String()
	started := time.Now()
	logger := e.Logger.With(zap.Stringer("entity", req.Ref))
	defer func() {
		result := "applied"
		switch {
		case err != nil:
			result = "failed"
		case !out.Applied:
			result = "noop"
		}
		e.Metrics.Calculations.WithLabelValues(kind, result).Inc()
		e.Metrics.CalculationDuration.WithLabelValues(kind).Observe(time.Since(started).Seconds())
	}()

	for attempt := 1; ; attempt++ {
		out, err = e.calculate(ctx, req, logger)
		if !errors.Is(err, collector.ErrWatermarkMoved) || attempt == maxCommitAttempts {
			return out, err
		}
		// Another calculation committed first; start again from its watermark.
		logger.Info("Vote calculation raced, retrying", zap.Int("attempt", attempt), zap.Error(err))
	}
}

func (e *Engine) calculate(ctx context.Context, req governance.RecalculationRequest, logger *zap.Logger) (out Outcome, err error) {
	out.Ref = req.Ref
	state, err := e.Store.GetOrCreateState(ctx, req.Ref)
	if err != nil {
		if errors.Is(err, collector.ErrStateNotFound) {
			return out, fmt.Errorf("%w: %v", ErrInvariant, err)
		}
		return out, err
	}
	out.LastVoteCount = state.LastVoteCount
	if req.OnChainVoteCount <= state.LastVoteCount {
		logger.Debug("No new votes",
			zap.Uint64("on_chain", req.OnChainVoteCount),
			zap.Uint64("last_vote_count", state.LastVoteCount))
		return out, nil
	}

	raw, err := e.Votes.VotesByIndex(ctx, req.Ref.Kind, req.VoteStore, state.LastVoteCount+1, req.OnChainVoteCount)
	if err != nil {
		return out, fmt.Errorf("fetch votes %d..%d: %w", state.LastVoteCount+1, req.OnChainVoteCount, err)
	}
	votes := DedupLastVote(raw)

	accounts := make([]string, 0, len(votes))
	for _, v := range votes {
		accounts = append(accounts, v.Account)
	}
	existing, err := e.Store.AccountVotesByAddresses(ctx, state.ID, accounts)
	if err != nil {
		return out, err
	}
	prior := map[string][]collector.AccountVote{}
	for _, v := range existing {
		prior[v.Account] = append(prior[v.Account], v)
	}

	var firstTime []string
	for _, a := range accounts {
		if _, ok := prior[a]; !ok {
			firstTime = append(firstTime, a)
		}
	}
	out.FirstTime = len(firstTime)
	out.Revotes = len(accounts) - len(firstTime)

	snap := votepower.Snapshot{}
	if len(firstTime) > 0 {
		sv, err := e.Ledger.StateVersionAt(ctx, req.Start)
		if err != nil {
			return out, fmt.Errorf("resolve state version at %s: %w", req.Start.UTC().Format(time.RFC3339), err)
		}
		logger.Debug("Snapshot state version resolved",
			zap.Uint64("state_version", sv),
			zap.Time("start", req.Start))
		if snap, err = e.Snapshot.Snapshot(ctx, firstTime, sv, req.Start); err != nil {
			return out, fmt.Errorf("snapshot vote power: %w", err)
		}
	}

	commit := BuildCommit(state.ID, req.OnChainVoteCount, votes, prior, snap)
	commit.PrevVoteCount = state.LastVoteCount
	if err := e.Store.CommitVotes(ctx, commit); err != nil {
		if errors.Is(err, collector.ErrStateNotFound) {
			return out, fmt.Errorf("%w: %v", ErrInvariant, err)
		}
		return out, fmt.Errorf("commit votes: %w", err)
	}

	out.Applied = true
	out.LastVoteCount = req.OnChainVoteCount
	logger.Info("Votes calculated",
		zap.Uint64("from", state.LastVoteCount+1),
		zap.Uint64("to", req.OnChainVoteCount),
		zap.Int("voters", len(votes)),
		zap.Int("first_time", out.FirstTime),
		zap.Int("revotes", out.Revotes),
	)
	return out, nil
}

// DedupLastVote keeps each account's last vote. The result is in reverse index order.
func DedupLastVote(votes []governance.Vote) []governance.Vote {
	seen := make(map[string]bool, len(votes))
	out := make([]governance.Vote, 0, len(votes))
	for i := len(votes) - 1; i >= 0; i-- {
		v := votes[i]
		if seen[v.Account] {
			continue
		}
		seen[v.Account] = true
		out = append(out, v)
	}
	return out
}

// BuildCommit turns deduplicated votes into the rows to write. A revoting account keeps the power
// already on record; its old rows become removals. A first-time voter takes its snapshot power,
// zero when it has none.
func BuildCommit(stateID int64, lastVoteCount uint64, votes []governance.Vote, prior map[string][]collector.AccountVote, snap votepower.Snapshot) collector.Commit {
	c := collector.Commit{StateID: stateID, LastVoteCount: lastVoteCount}
	sums := map[string]decimal.Decimal{}
	var order []string

	for _, v := range votes {
		power := snap.Power(v.Account)
		if old, ok := prior[v.Account]; ok {
			power = old[0].Power
			c.Removals = append(c.Removals, old...)
		}
		for _, opt := range v.Options {
			c.AccountVotes = append(c.AccountVotes, collector.AccountVote{Account: v.Account, Option: opt, Power: power})
			if _, ok := sums[opt]; !ok {
				order = append(order, opt)
			}
			sums[opt] = sums[opt].Add(power)
		}
	}

	sort.Strings(order)
	for _, opt := range order {
		c.Results = append(c.Results, collector.Tally{Option: opt, Power: sums[opt]})
	}
	return c
}
